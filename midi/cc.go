package midi

// Controller numbers used by the synthesizer.
const (
	CCBankSelectMSB     uint8 = 0x00
	CCModulationWheel   uint8 = 0x01
	CCBreathController  uint8 = 0x02
	CCFootController    uint8 = 0x04
	CCPortamentoTime    uint8 = 0x05
	CCDataEntryMSB      uint8 = 0x06
	CCVolume            uint8 = 0x07
	CCBalance           uint8 = 0x08
	CCPan               uint8 = 0x0a
	CCExpression        uint8 = 0x0b
	CCBankSelectLSB     uint8 = 0x20
	CCDataEntryLSB      uint8 = 0x26
	CCSustain           uint8 = 0x40
	CCPortamento        uint8 = 0x41
	CCSostenuto         uint8 = 0x42
	CCSoftPedal         uint8 = 0x43
	CCLegatoFootswitch  uint8 = 0x44
	CCHold2             uint8 = 0x45
	CCSoundController1  uint8 = 0x46
	CCResonance         uint8 = 0x47
	CCReleaseTime       uint8 = 0x48
	CCAttackTime        uint8 = 0x49
	CCCutoff            uint8 = 0x4a
	CCDecayTime         uint8 = 0x4b
	CCVibratoRate       uint8 = 0x4c
	CCVibratoDepth      uint8 = 0x4d
	CCVibratoDelay      uint8 = 0x4e
	CCSoundController10 uint8 = 0x4f
	CCHighPassCutoff    uint8 = 0x51
	CCPortamentoControl uint8 = 0x54
	CCReverbSend        uint8 = 0x5b
	CCTremoloDepth      uint8 = 0x5c
	CCChorusSend        uint8 = 0x5d
	CCDelaySend         uint8 = 0x5e
	CCPhaserDepth       uint8 = 0x5f
	CCDataIncrement     uint8 = 0x60
	CCDataDecrement     uint8 = 0x61
	CCNRPNLSB           uint8 = 0x62
	CCNRPNMSB           uint8 = 0x63
	CCRPNLSB            uint8 = 0x64
	CCRPNMSB            uint8 = 0x65
	CCAllSoundOff       uint8 = 0x78
	CCResetControllers  uint8 = 0x79
	CCLocalControl      uint8 = 0x7a
	CCAllNotesOff       uint8 = 0x7b
	CCOmniOff           uint8 = 0x7c
	CCOmniOn            uint8 = 0x7d
	CCMonoOn            uint8 = 0x7e
	CCPolyOn            uint8 = 0x7f
)

// IsChannelMode reports whether cc is a channel mode message (120-127).
func IsChannelMode(cc uint8) bool {
	return cc >= CCAllSoundOff && cc <= CCPolyOn
}

// InitialControllers returns the power-on controller values of a channel.
func InitialControllers() [128]uint8 {
	var v [128]uint8
	v[CCVolume] = 100
	v[CCPan] = 64
	v[CCExpression] = 127
	for cc := CCSoundController1; cc <= CCSoundController10; cc++ {
		v[cc] = 64
	}
	v[CCHighPassCutoff] = 64
	v[CCReverbSend] = 20
	return v
}

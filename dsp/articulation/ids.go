package articulation

// Source identifies a modulation source or control signal. The numeric
// values match the sound-bank format.
type Source uint32

const (
	SourceNone              Source = 0x0000
	SourcePitchWheel        Source = 0x0001
	SourceNoteOnVelocity    Source = 0x0002
	SourceNoteNumber        Source = 0x0003
	SourceVolumeEnvelope    Source = 0x0004
	SourceModulationEnv     Source = 0x0005
	SourceNoteAftertouch    Source = 0x0006
	SourceChannelAftertouch Source = 0x0007
	SourceModulationLFO     Source = 0x0008
	SourceVibratoLFO        Source = 0x0009

	SourceMIDIControlChange Source = 0x00010000
	SourceMIDIRPN           Source = 0x00020000
	SourceMIDINRPN          Source = 0x00040000

	sourceKindMask Source = 0xffff0000
)

// MIDIControlChange returns the source for controller number cc.
func MIDIControlChange(cc uint8) Source { return SourceMIDIControlChange + Source(cc) }

// MIDIRPN returns the source for a registered parameter number.
func MIDIRPN(msb, lsb uint8) Source { return SourceMIDIRPN + Source(msb)<<8 + Source(lsb) }

// MIDINRPN returns the source for a non-registered parameter number.
func MIDINRPN(msb, lsb uint8) Source { return SourceMIDINRPN + Source(msb)<<8 + Source(lsb) }

// IsMIDIControlChange reports whether s is a controller source.
func (s Source) IsMIDIControlChange() bool { return s&sourceKindMask == SourceMIDIControlChange }

// IsMIDIRPN reports whether s is a registered parameter source.
func (s Source) IsMIDIRPN() bool { return s&sourceKindMask == SourceMIDIRPN }

// IsMIDINRPN reports whether s is a non-registered parameter source.
func (s Source) IsMIDINRPN() bool { return s&sourceKindMask == SourceMIDINRPN }

// Destination identifies the synthesis parameter an articulator modifies.
type Destination uint32

const (
	DestNone           Destination = 0x0000
	DestGain           Destination = 0x0001
	DestPitch          Destination = 0x0002
	DestPan            Destination = 0x0003
	DestNoteOnVelocity Destination = 0x0004
	DestNoteNumber     Destination = 0x0005

	DestLeftSend       Destination = 0x0020
	DestRightSend      Destination = 0x0021
	DestCenterSend     Destination = 0x0022
	DestLFEChannelSend Destination = 0x0023
	DestLeftRearSend   Destination = 0x0024
	DestRightRearSend  Destination = 0x0025
	DestReverbSend     Destination = 0x0026
	DestChorusSend     Destination = 0x0027

	DestModulationLFOFrequency  Destination = 0x0100
	DestModulationLFOStartDelay Destination = 0x0101
	DestVibratoLFOFrequency     Destination = 0x0110
	DestVibratoLFOStartDelay    Destination = 0x0111

	DestVolumeEnvDelay    Destination = 0x0200
	DestVolumeEnvAttack   Destination = 0x0201
	DestVolumeEnvHold     Destination = 0x0202
	DestVolumeEnvDecay    Destination = 0x0203
	DestVolumeEnvSustain  Destination = 0x0204
	DestVolumeEnvRelease  Destination = 0x0205
	DestVolumeEnvShutdown Destination = 0x0206

	DestModulationEnvDelay    Destination = 0x0300
	DestModulationEnvAttack   Destination = 0x0301
	DestModulationEnvHold     Destination = 0x0302
	DestModulationEnvDecay    Destination = 0x0303
	DestModulationEnvSustain  Destination = 0x0304
	DestModulationEnvRelease  Destination = 0x0305
	DestModulationEnvShutdown Destination = 0x0306

	DestLowPassCutoff  Destination = 0x0500
	DestLowPassQ       Destination = 0x0501
	DestHighPassCutoff Destination = 0x0600
	DestHighPassQ      Destination = 0x0601
)

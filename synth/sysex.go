package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/midi"
)

var (
	// ErrUnsupportedSysEx is returned for well-formed messages the engine
	// does not implement.
	ErrUnsupportedSysEx = errors.New("synth: unsupported sysex")
	// ErrChecksum is returned for Roland messages with a bad checksum.
	ErrChecksum = errors.New("synth: sysex checksum mismatch")
)

const (
	subIDGeneralMIDI   = 0x09
	subIDDeviceControl = 0x04

	gmSystemOn  = 0x01
	gmSystemOff = 0x02
	gm2SystemOn = 0x03

	dcMasterVolume  = 0x01
	dcMasterBalance = 0x02
	dcFineTuning    = 0x03
	dcCoarseTuning  = 0x04

	rolandModelGS = 0x42
	rolandDT1     = 0x12

	gsAddrReset        = 0x40007f
	gsAddrMasterVolume = 0x400004
	gsAddrKeyShift     = 0x400005
	gsAddrMasterPan    = 0x400006
)

// HandleSysEx applies a system-exclusive message. data excludes the 0xf0
// status, the vendor id and the trailing 0xf7. Messages addressed to another
// device id are ignored without error.
func (e *Engine) HandleSysEx(vendor midi.VendorID, data []byte) error {
	switch vendor {
	case midi.VendorNonRealtime:
		return e.universalNonRealtime(data)
	case midi.VendorRealtime:
		return e.universalRealtime(data)
	case midi.VendorRoland:
		return e.roland(data)
	default:
		return fmt.Errorf("%w: vendor %v", ErrUnsupportedSysEx, vendor)
	}
}

func (e *Engine) forThisDevice(id uint8) bool {
	return id == BroadcastDeviceID || id == e.settings.DeviceID
}

func (e *Engine) universalNonRealtime(data []byte) error {
	if len(data) < 3 {
		return fmt.Errorf("%w: universal non-realtime", midi.ErrShortMessage)
	}
	if !e.forThisDevice(data[0]) {
		return nil
	}
	if data[1] != subIDGeneralMIDI {
		return fmt.Errorf("%w: non-realtime sub-id 0x%02x", ErrUnsupportedSysEx, data[1])
	}
	switch data[2] {
	case gmSystemOn, gm2SystemOn:
		e.GMReset()
	case gmSystemOff:
	default:
		return fmt.Errorf("%w: general midi 0x%02x", ErrUnsupportedSysEx, data[2])
	}
	return nil
}

func (e *Engine) universalRealtime(data []byte) error {
	if len(data) < 3 {
		return fmt.Errorf("%w: universal realtime", midi.ErrShortMessage)
	}
	if !e.forThisDevice(data[0]) {
		return nil
	}
	if data[1] != subIDDeviceControl {
		return fmt.Errorf("%w: realtime sub-id 0x%02x", ErrUnsupportedSysEx, data[1])
	}
	if len(data) < 5 {
		return fmt.Errorf("%w: device control", midi.ErrShortMessage)
	}
	value := int(data[3]&0x7f) | int(data[4]&0x7f)<<7
	switch data[2] {
	case dcMasterVolume:
		e.SetMasterVolume(float64(value) / 0x3fff)
	case dcMasterBalance:
		e.SetMasterPan(float64(value-midi.PitchBendCenter) / midi.PitchBendCenter)
	case dcFineTuning:
		e.SetMasterFineTuning(float64(value-midi.PitchBendCenter) / midi.PitchBendCenter * 100)
	case dcCoarseTuning:
		e.SetMasterCoarseTuning(int(data[4]) - 64)
	default:
		return fmt.Errorf("%w: device control 0x%02x", ErrUnsupportedSysEx, data[2])
	}
	return nil
}

// roland handles GS data set (DT1) messages:
// dev, model, command, address[3], data..., checksum.
func (e *Engine) roland(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("%w: roland", midi.ErrShortMessage)
	}
	if !e.forThisDevice(data[0]) {
		return nil
	}
	if data[1] != rolandModelGS || data[2] != rolandDT1 {
		return fmt.Errorf("%w: roland model 0x%02x command 0x%02x", ErrUnsupportedSysEx, data[1], data[2])
	}
	body := data[3:]
	sum := 0
	for _, b := range body {
		sum += int(b)
	}
	if sum&0x7f != 0 {
		return ErrChecksum
	}

	addr := int(body[0])<<16 | int(body[1])<<8 | int(body[2])
	value := body[3]
	switch addr {
	case gsAddrReset:
		e.GSReset()
	case gsAddrMasterVolume:
		e.SetMasterVolume(float64(value) / 127)
	case gsAddrKeyShift:
		e.SetMasterCoarseTuning(int(value) - 64)
	case gsAddrMasterPan:
		e.SetMasterPan(float64(int(value)-64) / 63)
	default:
		return fmt.Errorf("%w: gs address 0x%06x", ErrUnsupportedSysEx, addr)
	}
	return nil
}

// GMReset is the General MIDI System On reset.
func (e *Engine) GMReset() { e.Reset() }

// GSReset is the Roland GS reset.
func (e *Engine) GSReset() { e.Reset() }

// SetMasterVolume scales the mix by v in [0, 1].
func (e *Engine) SetMasterVolume(v float64) {
	e.masterVolume = unitClamp(v)
}

// MasterVolume returns the master volume in [0, 1].
func (e *Engine) MasterVolume() float64 { return e.masterVolume }

// SetMasterPan balances the mix: -1 is left, 0 centre, 1 right.
func (e *Engine) SetMasterPan(pan float64) {
	if math.IsNaN(pan) {
		pan = 0
	}
	e.masterPan = core.Clamp(pan, -1, 1)
}

// MasterPan returns the master balance in [-1, 1].
func (e *Engine) MasterPan() float64 { return e.masterPan }

// SetMasterFineTuning detunes every voice by cents in [-100, 100].
func (e *Engine) SetMasterFineTuning(cents float64) {
	if math.IsNaN(cents) {
		cents = 0
	}
	e.fineCents = core.Clamp(cents, -100, 100)
	e.updateAll()
}

// SetMasterCoarseTuning transposes every voice by semitones in [-24, 24].
func (e *Engine) SetMasterCoarseTuning(semitones int) {
	e.coarseSemis = float64(core.ClampInt(semitones, -24, 24))
	e.updateAll()
}

// MasterTuning returns the master transposition in semitones.
func (e *Engine) MasterTuning() float64 { return e.coarseSemis + e.fineCents/100 }

func unitClamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return core.Clamp(v, 0, 1)
}

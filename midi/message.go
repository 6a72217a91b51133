package midi

import (
	"errors"
	"fmt"
)

var (
	// ErrShortMessage is returned when a message has fewer data bytes
	// than its status requires.
	ErrShortMessage = errors.New("midi: short message")
	// ErrUnknownStatus is returned for running-status data bytes and
	// system messages other than sysex.
	ErrUnknownStatus = errors.New("midi: unknown status")
)

// Kind identifies a decoded message.
type Kind uint8

const (
	NoteOff Kind = iota
	NoteOn
	PolyAftertouch
	ControlChange
	ProgramChange
	ChannelAftertouch
	PitchBend
	SysEx
)

var kindNames = [...]string{
	NoteOff:           "NoteOff",
	NoteOn:            "NoteOn",
	PolyAftertouch:    "PolyAftertouch",
	ControlChange:     "ControlChange",
	ProgramChange:     "ProgramChange",
	ChannelAftertouch: "ChannelAftertouch",
	PitchBend:         "PitchBend",
	SysEx:             "SysEx",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// PitchBendCenter is the 14-bit pitch bend value of a centered wheel.
const PitchBendCenter = 0x2000

// Message is a decoded MIDI message. Only the fields relevant to Kind are
// set: Key/Velocity for notes, Key/Value for poly aftertouch, Controller/Value
// for control change, Value for program change and channel aftertouch, Bend
// for pitch bend and Vendor/Data for sysex.
type Message struct {
	Kind       Kind
	Channel    uint8
	Key        uint8
	Velocity   uint8
	Controller uint8
	Value      uint8
	Bend       uint16
	Vendor     VendorID
	Data       []byte
}

// BendUnit maps Bend to [-1, 1).
func (m Message) BendUnit() float64 {
	return float64(int(m.Bend)-PitchBendCenter) / PitchBendCenter
}

// dataLen returns the number of data bytes following a channel status.
func dataLen(status uint8) int {
	switch status & 0xf0 {
	case 0xc0, 0xd0:
		return 1
	default:
		return 2
	}
}

// Decode parses one complete message. A note-on with velocity zero decodes
// as NoteOff.
func Decode(msg []byte) (Message, error) {
	if len(msg) == 0 {
		return Message{}, ErrShortMessage
	}
	status := msg[0]
	if status < 0x80 {
		return Message{}, fmt.Errorf("%w: 0x%02x", ErrUnknownStatus, status)
	}
	if status == 0xf0 {
		return decodeSysEx(msg)
	}
	if status >= 0xf0 {
		return Message{}, fmt.Errorf("%w: 0x%02x", ErrUnknownStatus, status)
	}

	if len(msg) < 1+dataLen(status) {
		return Message{}, fmt.Errorf("%w: status 0x%02x has %d data bytes", ErrShortMessage, status, len(msg)-1)
	}

	m := Message{Channel: status & 0x0f}
	switch status & 0xf0 {
	case 0x80:
		m.Kind, m.Key, m.Velocity = NoteOff, msg[1], msg[2]
	case 0x90:
		m.Kind, m.Key, m.Velocity = NoteOn, msg[1], msg[2]
		if m.Velocity == 0 {
			m.Kind = NoteOff
		}
	case 0xa0:
		m.Kind, m.Key, m.Value = PolyAftertouch, msg[1], msg[2]
	case 0xb0:
		m.Kind, m.Controller, m.Value = ControlChange, msg[1], msg[2]
	case 0xc0:
		m.Kind, m.Value = ProgramChange, msg[1]
	case 0xd0:
		m.Kind, m.Value = ChannelAftertouch, msg[1]
	case 0xe0:
		m.Kind = PitchBend
		m.Bend = uint16(msg[1]&0x7f) | uint16(msg[2]&0x7f)<<7
	}
	return m, nil
}

func decodeSysEx(msg []byte) (Message, error) {
	if len(msg) < 2 {
		return Message{}, fmt.Errorf("%w: sysex without vendor id", ErrShortMessage)
	}
	m := Message{Kind: SysEx}
	if msg[1] == 0 {
		if len(msg) < 4 {
			return Message{}, fmt.Errorf("%w: sysex with truncated extended vendor id", ErrShortMessage)
		}
		m.Vendor = ExtendedVendor(msg[2], msg[3])
	} else {
		m.Vendor = StandardVendor(msg[1])
	}
	data := msg[1+m.Vendor.Len():]
	if n := len(data); n > 0 && data[n-1] == 0xf7 {
		data = data[:n-1]
	}
	m.Data = data
	return m, nil
}

package midi

// Handler receives decoded channel and sysex messages.
type Handler interface {
	NoteOn(channel, key, velocity uint8)
	NoteOff(channel, key uint8)
	PolyAftertouch(channel, key, pressure uint8)
	ControlChange(channel, controller, value uint8)
	ProgramChange(channel, program uint8)
	ChannelAftertouch(channel, pressure uint8)
	PitchBend(channel uint8, value uint16)
	SysEx(vendor VendorID, data []byte)
}

// Dispatch decodes msg and forwards it to h.
func Dispatch(h Handler, msg []byte) error {
	m, err := Decode(msg)
	if err != nil {
		return err
	}
	Deliver(h, m)
	return nil
}

// Deliver forwards an already decoded message to h.
func Deliver(h Handler, m Message) {
	switch m.Kind {
	case NoteOff:
		h.NoteOff(m.Channel, m.Key)
	case NoteOn:
		h.NoteOn(m.Channel, m.Key, m.Velocity)
	case PolyAftertouch:
		h.PolyAftertouch(m.Channel, m.Key, m.Value)
	case ControlChange:
		h.ControlChange(m.Channel, m.Controller, m.Value)
	case ProgramChange:
		h.ProgramChange(m.Channel, m.Value)
	case ChannelAftertouch:
		h.ChannelAftertouch(m.Channel, m.Value)
	case PitchBend:
		h.PitchBend(m.Channel, m.Bend)
	case SysEx:
		h.SysEx(m.Vendor, m.Data)
	}
}

// NopHandler ignores every message. Embed it to implement a subset of
// Handler.
type NopHandler struct{}

func (NopHandler) NoteOn(uint8, uint8, uint8) {}
func (NopHandler) NoteOff(uint8, uint8) {}
func (NopHandler) PolyAftertouch(uint8, uint8, uint8) {}
func (NopHandler) ControlChange(uint8, uint8, uint8) {}
func (NopHandler) ProgramChange(uint8, uint8) {}
func (NopHandler) ChannelAftertouch(uint8, uint8) {}
func (NopHandler) PitchBend(uint8, uint16) {}
func (NopHandler) SysEx(VendorID, []byte) {}

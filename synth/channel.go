package synth

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/articulation"
	"github.com/cwbudde/algo-synth/midi"
)

const (
	numChannels     = 16
	drumChannel     = 9
	defaultBendSemi = 2
	rpnNull         = 0x7f
)

// channel is the controller state of one MIDI channel.
type channel struct {
	cc        [128]uint8
	poly      [128]uint8
	pressure  uint8
	bend      uint16
	bendRange float64 // semitones
	program   uint8
	rpnMSB    uint8
	rpnLSB    uint8
	drum      bool
}

func (c *channel) reset(index int) {
	c.cc = midi.InitialControllers()
	c.poly = [128]uint8{}
	c.pressure = 0
	c.bend = midi.PitchBendCenter
	c.bendRange = defaultBendSemi
	c.program = 0
	c.rpnMSB, c.rpnLSB = rpnNull, rpnNull
	c.drum = index == drumChannel
}

// resetControllers implements CC 121: performance controllers return to
// their initial values, while volume, pan, bank select and program stay.
func (c *channel) resetControllers() {
	prev := c.cc
	c.cc = midi.InitialControllers()
	for _, k := range [...]uint8{midi.CCVolume, midi.CCPan, midi.CCBankSelectMSB, midi.CCBankSelectLSB} {
		c.cc[k] = prev[k]
	}
	c.poly = [128]uint8{}
	c.pressure = 0
	c.bend = midi.PitchBendCenter
	c.rpnMSB, c.rpnLSB = rpnNull, rpnNull
}

func (c *channel) sustainDown() bool { return c.cc[midi.CCSustain] >= 64 }

// gain is volume times expression, both on a squared curve.
func (c *channel) gain() float64 {
	v := float64(c.cc[midi.CCVolume]) / 127
	e := float64(c.cc[midi.CCExpression]) / 127
	return v * v * e * e
}

// send reads an effects depth controller (CC 91 reverb, CC 93 chorus) as a
// linear send in [0, 1].
func (c *channel) send(cc uint8) float64 { return float64(c.cc[cc]) / 127 }

// pan maps CC 10 to [-1, 1] with 64 at the centre.
func (c *channel) pan() float64 {
	return math.Max(-1, float64(int(c.cc[midi.CCPan])-64)/63)
}

// bendSemitones is the wheel offset scaled by the bend range.
func (c *channel) bendSemitones() float64 {
	return midi.Message{Bend: c.bend}.BendUnit() * c.bendRange
}

// cutoffScale maps the brightness controller (CC 74) to a cutoff factor of
// +-4 octaves around 64.
func (c *channel) cutoffScale() float64 {
	return math.Exp2(float64(int(c.cc[midi.CCCutoff])-64) / 16)
}

// qScale maps the resonance controller (CC 71) to a Q factor of +-2
// octaves around 64.
func (c *channel) qScale() float64 {
	return math.Exp2(float64(int(c.cc[midi.CCResonance])-64) / 32)
}

// dataEntry applies a data entry to the selected registered parameter.
func (c *channel) dataEntry(lsb bool, value uint8) {
	if c.rpnMSB != 0 || c.rpnLSB != 0 {
		return
	}
	whole := math.Trunc(c.bendRange)
	cents := math.Round((c.bendRange - whole) * 100)
	if lsb {
		cents = float64(min(value, 99))
	} else {
		whole = float64(value)
	}
	c.bendRange = whole + cents/100
}

// inputs returns the articulation source values of this channel for key.
func (c *channel) inputs(key uint8) articulation.Inputs {
	return func(src articulation.Source) float64 {
		switch {
		case src == articulation.SourcePitchWheel:
			return float64(c.bend)
		case src == articulation.SourceChannelAftertouch:
			return float64(c.pressure)
		case src == articulation.SourceNoteAftertouch:
			return float64(c.poly[key&0x7f])
		case src.IsMIDIControlChange():
			return float64(c.cc[uint32(src)&0x7f])
		default:
			return 0
		}
	}
}

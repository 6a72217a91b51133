package bank

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/articulation"
)

// SampleID indexes Bank.Samples.
type SampleID uint32

// InstrumentID indexes Bank.Instruments.
type InstrumentID uint32

// Sample is 16-bit PCM audio, interleaved L R L R when stereo. Offsets are
// in frames.
type Sample struct {
	Name       string
	SampleRate uint32
	Type       SampleType
	PCM        []int16

	Start, End         uint32 // End 0 means the last frame
	LoopStart, LoopEnd uint32
	LoopType           LoopType

	BaseKey    uint8
	Correction int8 // cents
}

// Frames returns the number of frames in PCM.
func (s *Sample) Frames() int { return len(s.PCM) / s.Type.Channels() }

// EndFrame returns the exclusive end of playback.
func (s *Sample) EndFrame() int {
	n := s.Frames()
	if s.End == 0 || int(s.End) > n {
		return n
	}
	return int(s.End)
}

// At returns channel ch of frame i as a float in [-1, 1). Frames outside
// the data read as silence and a mono sample answers for every channel.
func (s *Sample) At(i, ch int) float64 {
	channels := s.Type.Channels()
	if i < 0 || i >= len(s.PCM)/channels {
		return 0
	}
	if ch >= channels {
		ch = channels - 1
	}
	return float64(s.PCM[i*channels+ch]) / 32768
}

// HasLoop reports whether the loop points describe a usable loop.
func (s *Sample) HasLoop() bool {
	return s.LoopType != NoLoop && s.LoopEnd > s.LoopStart && int(s.LoopEnd) <= s.Frames()
}

// Range is an inclusive byte range.
type Range struct {
	Lo, Hi uint8
}

// FullRange covers every key or velocity.
var FullRange = Range{Lo: 0, Hi: 127}

// Contains reports whether v lies in r.
func (r Range) Contains(v uint8) bool { return r.Lo <= v && v <= r.Hi }

// Generator is a raw (operator, amount) pair from the bank.
type Generator struct {
	Op     uint16
	Amount int32
}

// Zone scopes a target to a key and velocity range. For preset zones
// Target is an InstrumentID, for instrument zones a SampleID.
type Zone struct {
	KeyRange     Range
	VelRange     Range
	Target       uint32
	Generators   []Generator
	Articulators []articulation.Articulator
}

// Matches reports whether the zone covers key and velocity.
func (z *Zone) Matches(key, velocity uint8) bool {
	return z.KeyRange.Contains(key) && z.VelRange.Contains(velocity)
}

// Generator returns the amount of the last generator with operator op.
func (z *Zone) Generator(op uint16) (int32, bool) {
	for i := len(z.Generators) - 1; i >= 0; i-- {
		if z.Generators[i].Op == op {
			return z.Generators[i].Amount, true
		}
	}
	return 0, false
}

// Instrument is a set of sample zones.
type Instrument struct {
	Name  string
	Zones []Zone
}

// Preset is a set of instrument zones addressed by bank and program.
type Preset struct {
	Name    string
	Program uint16
	BankMSB uint8
	BankLSB uint8
	Type    PresetType
	Zones   []Zone
}

// Bank owns every sample, instrument and preset.
type Bank struct {
	Samples     []Sample
	Instruments []Instrument
	Presets     []Preset
}

// Sample returns the sample for id.
func (b *Bank) Sample(id SampleID) (*Sample, error) {
	if int(id) >= len(b.Samples) {
		return nil, fmt.Errorf("%w: sample %d", ErrInvalidHandle, id)
	}
	return &b.Samples[id], nil
}

// Instrument returns the instrument for id.
func (b *Bank) Instrument(id InstrumentID) (*Instrument, error) {
	if int(id) >= len(b.Instruments) {
		return nil, fmt.Errorf("%w: instrument %d", ErrInvalidHandle, id)
	}
	return &b.Instruments[id], nil
}

// FindPreset returns the preset for a bank select and program number.
func (b *Bank) FindPreset(bankMSB, bankLSB uint8, program uint16) (*Preset, error) {
	for i := range b.Presets {
		p := &b.Presets[i]
		if p.BankMSB == bankMSB && p.BankLSB == bankLSB && p.Program == program {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: preset %d:%d/%d", ErrInvalidHandle, bankMSB, bankLSB, program)
}

// Region is one playable layer of a note: the matching preset and
// instrument zones and the sample they select.
type Region struct {
	PresetZone     *Zone
	InstrumentZone *Zone
	SampleID       SampleID
	Sample         *Sample
}

// Articulators returns the preset zone's articulators followed by the
// instrument zone's.
func (r Region) Articulators() []articulation.Articulator {
	out := make([]articulation.Articulator, 0, len(r.PresetZone.Articulators)+len(r.InstrumentZone.Articulators))
	out = append(out, r.PresetZone.Articulators...)
	return append(out, r.InstrumentZone.Articulators...)
}

// Resolve returns every region of p that covers key and velocity.
func (b *Bank) Resolve(p *Preset, key, velocity uint8) ([]Region, error) {
	var regions []Region
	for pi := range p.Zones {
		pz := &p.Zones[pi]
		if !pz.Matches(key, velocity) {
			continue
		}
		inst, err := b.Instrument(InstrumentID(pz.Target))
		if err != nil {
			return nil, err
		}
		for ii := range inst.Zones {
			iz := &inst.Zones[ii]
			if !iz.Matches(key, velocity) {
				continue
			}
			sample, err := b.Sample(SampleID(iz.Target))
			if err != nil {
				return nil, err
			}
			regions = append(regions, Region{
				PresetZone:     pz,
				InstrumentZone: iz,
				SampleID:       SampleID(iz.Target),
				Sample:         sample,
			})
		}
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: key %d velocity %d", ErrNoZone, key, velocity)
	}
	return regions, nil
}

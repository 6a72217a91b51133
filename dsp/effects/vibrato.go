package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/lfo"
	"github.com/cwbudde/algo-synth/dsp/param"
)

const (
	defaultVibratoRange     = 5.0
	defaultVibratoRateHz    = 5.5
	defaultVibratoDepth     = 0.1
	vibratoDepthSmoothingMs = 5.0
)

// VibratoOption mutates vibrato construction parameters.
type VibratoOption func(*vibratoConfig) error

type vibratoConfig struct {
	rangeSemis float64
	rateHz     float64
	depth      float64
}

func defaultVibratoConfig() vibratoConfig {
	return vibratoConfig{
		rangeSemis: defaultVibratoRange,
		rateHz:     defaultVibratoRateHz,
		depth:      defaultVibratoDepth,
	}
}

// WithVibratoRange sets the pitch range in semitones reached at full depth.
func WithVibratoRange(semitones float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if !finiteNonNegative(semitones) {
			return fmt.Errorf("vibrato range must be >= 0 and finite: %f", semitones)
		}
		cfg.rangeSemis = semitones
		return nil
	}
}

// WithVibratoRateHz sets the modulation rate in Hz.
func WithVibratoRateHz(rateHz float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if !finiteNonNegative(rateHz) {
			return fmt.Errorf("vibrato rate must be >= 0 and finite: %f", rateHz)
		}
		cfg.rateHz = rateHz
		return nil
	}
}

// WithVibratoDepth sets the modulation depth in [0, 1] as a fraction of the
// range.
func WithVibratoDepth(depth float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if depth < 0 || depth > 1 || math.IsNaN(depth) {
			return fmt.Errorf("vibrato depth must be in [0, 1]: %f", depth)
		}
		cfg.depth = depth
		return nil
	}
}

// Vibrato is a [PitchBend] driven by a sine LFO. Depth changes are ramped
// over a few milliseconds, and the bend stays engaged across the LFO's zero
// crossings while the depth is above zero.
type Vibrato struct {
	bend     *PitchBend
	lfo      *lfo.LFO
	depth    float64
	smoother *param.Smoother
}

var (
	_ MonoEffect  = (*Vibrato)(nil)
	_ BlockEffect = (*Vibrato)(nil)
)

// NewVibrato creates a vibrato with a 5 semitone range, 5.5 Hz rate and
// depth 0.1.
func NewVibrato(sampleRate float64, opts ...VibratoOption) (*Vibrato, error) {
	if err := validSampleRate("vibrato", sampleRate); err != nil {
		return nil, err
	}
	cfg := defaultVibratoConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	bend, err := NewPitchBend(sampleRate)
	if err != nil {
		return nil, err
	}
	bend.SetRange(cfg.rangeSemis)

	osc, err := lfo.New(sampleRate)
	if err != nil {
		return nil, err
	}
	osc.SetFrequency(cfg.rateHz)

	smoother, err := param.NewSmoother(vibratoDepthSmoothingMs, sampleRate)
	if err != nil {
		return nil, err
	}
	smoother.Reset(cfg.depth)

	return &Vibrato{bend: bend, lfo: osc, depth: cfg.depth, smoother: smoother}, nil
}

// SetRange sets the pitch range in semitones, clamped to >= 0.
func (v *Vibrato) SetRange(semitones float64) { v.bend.SetRange(semitones) }

// SetRateHz sets the modulation rate, clamped to >= 0.
func (v *Vibrato) SetRateHz(rateHz float64) { v.lfo.SetFrequency(rateHz) }

// SetDepth sets the target depth, clamped to [0, 1].
func (v *Vibrato) SetDepth(depth float64) { v.depth = unitRange(depth) }

// Range returns the pitch range in semitones.
func (v *Vibrato) Range() float64 { return v.bend.Range() }

// RateHz returns the modulation rate.
func (v *Vibrato) RateHz() float64 { return v.lfo.Frequency() }

// Depth returns the target depth.
func (v *Vibrato) Depth() float64 { return v.depth }

// ProcessSample processes one sample.
func (v *Vibrato) ProcessSample(x float64) float64 {
	depth := v.smoother.Process(v.depth)
	v.bend.hold(v.depth > 0 || depth > 0)
	v.bend.SetPitch(depth * v.lfo.Sine())
	return v.bend.ProcessSample(x)
}

// ProcessInPlace applies the vibrato to buf in place.
func (v *Vibrato) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = v.ProcessSample(x)
	}
}

// Reset restarts the LFO and clears the delay line.
func (v *Vibrato) Reset() {
	v.lfo.Reset()
	v.bend.Reset()
}

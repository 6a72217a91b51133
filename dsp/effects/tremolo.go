package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/lfo"
	"github.com/cwbudde/algo-synth/dsp/param"
)

const (
	defaultTremoloRateHz      = 4.0
	defaultTremoloDepth       = 0.6
	defaultTremoloSmoothingMs = 5.0
)

// TremoloOption mutates tremolo construction parameters.
type TremoloOption func(*tremoloConfig) error

type tremoloConfig struct {
	rateHz      float64
	depth       float64
	smoothingMs float64
}

func defaultTremoloConfig() tremoloConfig {
	return tremoloConfig{
		rateHz:      defaultTremoloRateHz,
		depth:       defaultTremoloDepth,
		smoothingMs: defaultTremoloSmoothingMs,
	}
}

// WithTremoloRateHz sets modulation speed in Hz.
func WithTremoloRateHz(rateHz float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if !finiteNonNegative(rateHz) {
			return fmt.Errorf("tremolo rate must be >= 0 and finite: %f", rateHz)
		}
		cfg.rateHz = rateHz
		return nil
	}
}

// WithTremoloDepth sets modulation depth in [0, 1].
func WithTremoloDepth(depth float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if depth < 0 || depth > 1 || math.IsNaN(depth) {
			return fmt.Errorf("tremolo depth must be in [0, 1]: %f", depth)
		}
		cfg.depth = depth
		return nil
	}
}

// WithTremoloSmoothingMs sets the gain ramp time in milliseconds.
func WithTremoloSmoothingMs(ms float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if !finiteNonNegative(ms) {
			return fmt.Errorf("tremolo smoothing must be >= 0 and finite: %f", ms)
		}
		cfg.smoothingMs = ms
		return nil
	}
}

// Tremolo modulates amplitude with a sine LFO. The gain swings between 1
// and 1-depth and is ramped through a [param.Smoother].
type Tremolo struct {
	lfo      *lfo.LFO
	depth    float64
	smoother *param.Smoother
}

var (
	_ MonoEffect  = (*Tremolo)(nil)
	_ BlockEffect = (*Tremolo)(nil)
)

// NewTremolo creates a tremolo with practical defaults and optional overrides.
func NewTremolo(sampleRate float64, opts ...TremoloOption) (*Tremolo, error) {
	if err := validSampleRate("tremolo", sampleRate); err != nil {
		return nil, err
	}
	cfg := defaultTremoloConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	osc, err := lfo.New(sampleRate)
	if err != nil {
		return nil, err
	}
	osc.SetFrequency(cfg.rateHz)

	smoother, err := param.NewSmoother(cfg.smoothingMs, sampleRate)
	if err != nil {
		return nil, err
	}
	smoother.Reset(1)

	return &Tremolo{lfo: osc, depth: cfg.depth, smoother: smoother}, nil
}

// SetRateHz sets modulation speed, clamped to >= 0.
func (t *Tremolo) SetRateHz(rateHz float64) { t.lfo.SetFrequency(rateHz) }

// SetDepth sets modulation depth, clamped to [0, 1].
func (t *Tremolo) SetDepth(depth float64) { t.depth = unitRange(depth) }

// SetSmoothingMs sets the gain ramp time, clamped to >= 0.
func (t *Tremolo) SetSmoothingMs(ms float64) { t.smoother.SetSmoothingTime(ms) }

// RateHz returns LFO speed in Hz.
func (t *Tremolo) RateHz() float64 { return t.lfo.Frequency() }

// Depth returns modulation depth in [0, 1].
func (t *Tremolo) Depth() float64 { return t.depth }

// Reset restarts the LFO at unity gain.
func (t *Tremolo) Reset() {
	t.lfo.Reset()
	t.smoother.Reset(1)
}

// ProcessSample processes one sample.
func (t *Tremolo) ProcessSample(x float64) float64 {
	target := 1 - t.depth*(1-t.lfo.Sine())/2
	return x * t.smoother.Process(target)
}

// ProcessInPlace applies tremolo to buf in place.
func (t *Tremolo) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = t.ProcessSample(x)
	}
}

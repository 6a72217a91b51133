package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
)

// Chorus ranges. Delay memory is sized for the maxima at construction.
const (
	MinChorusDelayMs = 1.0
	MaxChorusDelayMs = 50.0
	MaxChorusDepthMs = 20.0
	MaxChorusStages  = 8
)

const (
	defaultChorusRateHz  = 0.35
	defaultChorusDepthMs = 3.0
	defaultChorusDelayMs = 18.0
	defaultChorusStages  = 3
	defaultChorusMix     = 0.18
)

// ChorusOption mutates chorus construction parameters.
type ChorusOption func(*chorusConfig) error

type chorusConfig struct {
	rateHz  float64
	depthMs float64
	delayMs float64
	stages  int
	mix     float64
}

func defaultChorusConfig() chorusConfig {
	return chorusConfig{
		rateHz:  defaultChorusRateHz,
		depthMs: defaultChorusDepthMs,
		delayMs: defaultChorusDelayMs,
		stages:  defaultChorusStages,
		mix:     defaultChorusMix,
	}
}

// WithChorusRateHz sets the LFO speed in Hz.
func WithChorusRateHz(hz float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if !finiteNonNegative(hz) {
			return fmt.Errorf("chorus rate must be >= 0 and finite: %f", hz)
		}
		cfg.rateHz = hz
		return nil
	}
}

// WithChorusDepthMs sets how far the delay swings above its base.
func WithChorusDepthMs(ms float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if !finiteNonNegative(ms) || ms > MaxChorusDepthMs {
			return fmt.Errorf("chorus depth must be in [0, %g] ms: %f", MaxChorusDepthMs, ms)
		}
		cfg.depthMs = ms
		return nil
	}
}

// WithChorusDelayMs sets the base delay.
func WithChorusDelayMs(ms float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if math.IsNaN(ms) || ms < MinChorusDelayMs || ms > MaxChorusDelayMs {
			return fmt.Errorf("chorus delay must be in [%g, %g] ms: %f", MinChorusDelayMs, MaxChorusDelayMs, ms)
		}
		cfg.delayMs = ms
		return nil
	}
}

// WithChorusStages sets the number of modulated taps.
func WithChorusStages(n int) ChorusOption {
	return func(cfg *chorusConfig) error {
		if n < 1 || n > MaxChorusStages {
			return fmt.Errorf("chorus stages must be in [1, %d]: %d", MaxChorusStages, n)
		}
		cfg.stages = n
		return nil
	}
}

// WithChorusMix sets the wet share of ProcessSample in [0, 1].
func WithChorusMix(mix float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("chorus mix must be in [0, 1]: %f", mix)
		}
		cfg.mix = mix
		return nil
	}
}

// Chorus sums several taps of one delay line, each swept by a phase-shifted
// sine:
//
//	d_i(t) = delay + depth * 0.5 * (1 + sin(phase + 2*pi*i/stages))
//
// ProcessSample is a mono insert with a dry/wet mix. ProcessSend is fully
// wet and spreads the taps across the stereo field.
type Chorus struct {
	sampleRate float64
	cfg        chorusConfig

	line     *delay.Line
	delay    float64
	depth    float64
	phase    float64
	phaseInc float64

	panL, panR [MaxChorusStages]float64
}

var (
	_ MonoEffect  = (*Chorus)(nil)
	_ BlockEffect = (*Chorus)(nil)
)

// NewChorus creates a chorus with practical defaults and optional overrides.
func NewChorus(sampleRate float64, opts ...ChorusOption) (*Chorus, error) {
	if err := validSampleRate("chorus", sampleRate); err != nil {
		return nil, err
	}
	cfg := defaultChorusConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	line, err := delay.NewLine(core.MsToSamples(MaxChorusDelayMs+MaxChorusDepthMs, sampleRate) + delay.MinLineDelay)
	if err != nil {
		return nil, err
	}
	c := &Chorus{sampleRate: sampleRate, line: line}
	c.SetRateHz(cfg.rateHz)
	c.SetDepthMs(cfg.depthMs)
	c.SetDelayMs(cfg.delayMs)
	c.SetStages(cfg.stages)
	c.SetMix(cfg.mix)
	return c, nil
}

// SetRateHz sets the LFO speed, clamped to >= 0.
func (c *Chorus) SetRateHz(hz float64) {
	c.cfg.rateHz = atLeastZero(hz)
	c.phaseInc = 2 * math.Pi * c.cfg.rateHz / c.sampleRate
}

// SetDepthMs sets the sweep depth, clamped to [0, MaxChorusDepthMs].
func (c *Chorus) SetDepthMs(ms float64) {
	c.cfg.depthMs = math.Min(atLeastZero(ms), MaxChorusDepthMs)
	c.depth = core.MsToSamples(c.cfg.depthMs, c.sampleRate)
}

// SetDelayMs sets the base delay, clamped to [MinChorusDelayMs,
// MaxChorusDelayMs]. NaN is ignored.
func (c *Chorus) SetDelayMs(ms float64) {
	if math.IsNaN(ms) {
		return
	}
	c.cfg.delayMs = core.Clamp(ms, MinChorusDelayMs, MaxChorusDelayMs)
	c.delay = core.MsToSamples(c.cfg.delayMs, c.sampleRate)
}

// SetStages sets the tap count, clamped to [1, MaxChorusStages], and
// spreads the taps evenly from left to right.
func (c *Chorus) SetStages(n int) {
	n = core.ClampInt(n, 1, MaxChorusStages)
	c.cfg.stages = n
	for i := range n {
		theta := math.Pi / 4
		if n > 1 {
			theta = math.Pi / 2 * float64(i) / float64(n-1)
		}
		c.panL[i] = math.Cos(theta)
		c.panR[i] = math.Sin(theta)
	}
}

// SetMix sets the wet share of ProcessSample, clamped to [0, 1].
func (c *Chorus) SetMix(mix float64) { c.cfg.mix = unitRange(mix) }

// RateHz returns the LFO speed in Hz.
func (c *Chorus) RateHz() float64 { return c.cfg.rateHz }

// DepthMs returns the sweep depth in ms.
func (c *Chorus) DepthMs() float64 { return c.cfg.depthMs }

// DelayMs returns the base delay in ms.
func (c *Chorus) DelayMs() float64 { return c.cfg.delayMs }

// Stages returns the number of taps.
func (c *Chorus) Stages() int { return c.cfg.stages }

// Mix returns the wet share of ProcessSample.
func (c *Chorus) Mix() float64 { return c.cfg.mix }

// Reset clears the delay line and restarts the sweep.
func (c *Chorus) Reset() {
	c.line.Reset()
	c.phase = 0
}

// ProcessSend feeds one sample and returns the wet taps panned across the
// stereo field.
func (c *Chorus) ProcessSend(x float64) (left, right float64) {
	c.line.Push(x)
	n := c.cfg.stages
	for i := range n {
		mod := 0.5 * (1 + math.Sin(c.phase+2*math.Pi*float64(i)/float64(n)))
		tap := c.line.Tap(c.delay + c.depth*mod)
		left += tap * c.panL[i]
		right += tap * c.panR[i]
	}
	c.advance()
	g := math.Sqrt2 / float64(n)
	return left * g, right * g
}

// Process feeds the send buffer in and overwrites left and right with the
// wet signal. Only the common prefix is processed.
func (c *Chorus) Process(in, left, right []float64) {
	n := min(len(in), len(left), len(right))
	for i := range n {
		left[i], right[i] = c.ProcessSend(in[i])
	}
}

// ProcessSample processes one sample as a mono insert.
func (c *Chorus) ProcessSample(x float64) float64 {
	c.line.Push(x)
	n := c.cfg.stages
	var wet float64
	for i := range n {
		mod := 0.5 * (1 + math.Sin(c.phase+2*math.Pi*float64(i)/float64(n)))
		wet += c.line.Tap(c.delay + c.depth*mod)
	}
	c.advance()
	wet /= float64(n)
	return x*(1-c.cfg.mix) + wet*c.cfg.mix
}

// ProcessInPlace applies the chorus to buf in place.
func (c *Chorus) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

func (c *Chorus) advance() {
	c.phase += c.phaseInc
	if c.phase >= 2*math.Pi {
		c.phase -= 2 * math.Pi
	}
}

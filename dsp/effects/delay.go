package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/mix"
)

const (
	defaultDelayTimeMs   = 250.0
	defaultDelayLevel    = 0.25
	defaultDelayFeedback = 0.75

	// MaxDelayTimeMs is the longest delay time the ring buffer can hold.
	MaxDelayTimeMs = delay.DefaultMaxSeconds * 1000
)

// DelayOption mutates delay construction parameters.
type DelayOption func(*delayConfig) error

type delayConfig struct {
	timeMs   float64
	level    float64
	feedback float64
}

func defaultDelayConfig() delayConfig {
	return delayConfig{
		timeMs:   defaultDelayTimeMs,
		level:    defaultDelayLevel,
		feedback: defaultDelayFeedback,
	}
}

// WithDelayTimeMs sets the echo time in milliseconds.
func WithDelayTimeMs(ms float64) DelayOption {
	return func(cfg *delayConfig) error {
		if ms < 0 || ms > MaxDelayTimeMs || math.IsNaN(ms) {
			return fmt.Errorf("delay time must be in [0, %g] ms: %f", MaxDelayTimeMs, ms)
		}
		cfg.timeMs = ms
		return nil
	}
}

// WithDelayLevel sets the echo level in [0, 1].
func WithDelayLevel(level float64) DelayOption {
	return func(cfg *delayConfig) error {
		if level < 0 || level > 1 || math.IsNaN(level) {
			return fmt.Errorf("delay level must be in [0, 1]: %f", level)
		}
		cfg.level = level
		return nil
	}
}

// WithDelayFeedback sets the amount of the echo fed back into the line, in
// [0, 1].
func WithDelayFeedback(feedback float64) DelayOption {
	return func(cfg *delayConfig) error {
		if feedback < 0 || feedback > 1 || math.IsNaN(feedback) {
			return fmt.Errorf("delay feedback must be in [0, 1]: %f", feedback)
		}
		cfg.feedback = feedback
		return nil
	}
}

// Delay is a feedback echo. Dry signal and echoes are combined with
// [mix.Two], so the output stays bounded for inputs in [-1, 1].
type Delay struct {
	sampleRate float64
	timeMs     float64
	level      float64
	feedback   float64

	ring *delay.Ring
}

var (
	_ MonoEffect  = (*Delay)(nil)
	_ BlockEffect = (*Delay)(nil)
)

// NewDelay creates a delay of 250 ms with level 0.25 and feedback 0.75.
func NewDelay(sampleRate float64, opts ...DelayOption) (*Delay, error) {
	if err := validSampleRate("delay", sampleRate); err != nil {
		return nil, err
	}
	cfg := defaultDelayConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	ring, err := delay.NewRing(sampleRate, delay.DefaultMaxSeconds)
	if err != nil {
		return nil, err
	}
	d := &Delay{
		sampleRate: sampleRate,
		level:      cfg.level,
		feedback:   cfg.feedback,
		ring:       ring,
	}
	d.SetTime(cfg.timeMs)
	return d, nil
}

// SetTime sets the echo time in ms, clamped to [0, MaxDelayTimeMs]. The
// shortest realizable echo is one sample.
func (d *Delay) SetTime(ms float64) {
	d.timeMs = core.Clamp(atLeastZero(ms), 0, MaxDelayTimeMs)
	n := int(core.MsToSamples(d.timeMs, d.sampleRate))
	if n >= d.ring.Len() {
		n = d.ring.Len() - 1
	}
	d.ring.SetInterval(n)
}

// SetLevel sets the echo level, clamped to [0, 1].
func (d *Delay) SetLevel(level float64) { d.level = unitRange(level) }

// SetFeedback sets the feedback amount, clamped to [0, 1].
func (d *Delay) SetFeedback(feedback float64) { d.feedback = unitRange(feedback) }

// Time returns the echo time in ms.
func (d *Delay) Time() float64 { return d.timeMs }

// Level returns the echo level.
func (d *Delay) Level() float64 { return d.level }

// Feedback returns the feedback amount.
func (d *Delay) Feedback() float64 { return d.feedback }

// DelaySamples returns the echo time in whole samples.
func (d *Delay) DelaySamples() int { return d.ring.Interval() }

// ProcessSample processes one sample.
func (d *Delay) ProcessSample(x float64) float64 {
	echo := d.ring.Read(0)
	out := mix.Two(x, d.level*echo)
	d.ring.Write(mix.Two(x, d.feedback*echo))
	d.ring.Next()
	return out
}

// ProcessInPlace applies the delay to buf in place.
func (d *Delay) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = d.ProcessSample(x)
	}
}

// Reset clears the delay line and keeps the echo time.
func (d *Delay) Reset() { d.ring.Reset() }

package effects

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/envelope"
)

const (
	defaultCompressorThreshold = 0.005
	defaultCompressorRatio     = 4.0
	defaultCompressorMakeup    = 5.0
	compressorAttackMs         = 10.0
	compressorReleaseMs        = 10.0
)

// Compressor reduces the part of the signal above a threshold by a ratio
// that fades in and out with an attack/release envelope, then applies a
// makeup gain.
//
// For an input x with |x| > 0 and envelope level e the output is
//
//	sign(x) * (T + (|x|-T) / (1 + e*(ratio-1))) * makeup
//
// Silent input produces silent output.
type Compressor struct {
	threshold float64
	ratio     float64
	makeup    float64

	env *envelope.AHDSR
}

var _ MonoEffect = (*Compressor)(nil)

// NewCompressor creates a compressor with threshold 0.005, ratio 4 and
// makeup gain 5.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if err := validSampleRate("compressor", sampleRate); err != nil {
		return nil, err
	}
	env, err := envelope.NewAHDSR(sampleRate, envelope.Params{
		Attack:  compressorAttackMs,
		Sustain: 1,
		Release: compressorReleaseMs,
	})
	if err != nil {
		return nil, err
	}
	return &Compressor{
		threshold: defaultCompressorThreshold,
		ratio:     defaultCompressorRatio,
		makeup:    defaultCompressorMakeup,
		env:       env,
	}, nil
}

// SetThreshold sets the linear threshold, clamped to >= 0.
func (c *Compressor) SetThreshold(v float64) { c.threshold = atLeastZero(v) }

// SetRatio sets the compression ratio, clamped to >= 0.
func (c *Compressor) SetRatio(v float64) { c.ratio = atLeastZero(v) }

// SetMakeupGain sets the output gain, clamped to >= 0.
func (c *Compressor) SetMakeupGain(v float64) { c.makeup = atLeastZero(v) }

// Threshold returns the linear threshold.
func (c *Compressor) Threshold() float64 { return c.threshold }

// Ratio returns the compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// MakeupGain returns the output gain.
func (c *Compressor) MakeupGain() float64 { return c.makeup }

// Envelope returns the detector envelope level of the last sample.
func (c *Compressor) Envelope() float64 { return c.env.Level() }

// ProcessSample processes one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	mag := math.Abs(x)
	if mag > c.threshold {
		c.env.Trigger()
	} else {
		c.env.Release()
	}
	reduction := c.env.Process(c.ratio - 1)
	if mag == 0 {
		return 0
	}
	out := c.threshold + (mag-c.threshold)/(1+reduction)
	return x / mag * out * c.makeup
}

// ProcessInPlace applies the compressor to buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

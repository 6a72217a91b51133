package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
)

// Parameter ranges accepted by the setters.
const (
	MinRT60Seconds = 0.05
	MaxRT60Seconds = 30.0
	MaxPreDelayMs  = 250.0
	MaxModDepthMs  = 10.0
	MaxModRateHz   = 10.0
)

const (
	numLines = 8

	defaultRT60Seconds = 1.8
	defaultDamping     = 0.3
	defaultPreDelayMs  = 10.0
	defaultModDepthMs  = 2.0
	defaultModRateHz   = 0.1

	// Line lengths below are in samples at this rate.
	referenceRate = 44100.0
)

// Mutually prime line lengths keep the echo density even.
var lineLengths = [numLines]float64{1537, 1753, 1999, 2251, 2473, 2689, 2851, 3067}

// Option mutates reverb construction parameters.
type Option func(*config) error

type config struct {
	rt60       float64
	damping    float64
	preDelayMs float64
	modDepthMs float64
	modRateHz  float64
}

func defaultConfig() config {
	return config{
		rt60:       defaultRT60Seconds,
		damping:    defaultDamping,
		preDelayMs: defaultPreDelayMs,
		modDepthMs: defaultModDepthMs,
		modRateHz:  defaultModRateHz,
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// WithRT60 sets the time in seconds for the tail to fall by 60 dB.
func WithRT60(seconds float64) Option {
	return func(cfg *config) error {
		if !finite(seconds) || seconds < MinRT60Seconds || seconds > MaxRT60Seconds {
			return fmt.Errorf("reverb RT60 must be in [%g, %g]: %f", MinRT60Seconds, MaxRT60Seconds, seconds)
		}
		cfg.rt60 = seconds
		return nil
	}
}

// WithDamping sets the high-frequency loss in the feedback loop, in [0, 1].
func WithDamping(v float64) Option {
	return func(cfg *config) error {
		if !finite(v) || v < 0 || v > 1 {
			return fmt.Errorf("reverb damping must be in [0,1]: %f", v)
		}
		cfg.damping = v
		return nil
	}
}

// WithPreDelayMs sets the delay before the input enters the network.
func WithPreDelayMs(ms float64) Option {
	return func(cfg *config) error {
		if !finite(ms) || ms < 0 || ms > MaxPreDelayMs {
			return fmt.Errorf("reverb pre-delay must be in [0, %g] ms: %f", MaxPreDelayMs, ms)
		}
		cfg.preDelayMs = ms
		return nil
	}
}

// WithModulation sets the line length modulation depth in ms and its rate
// in Hz.
func WithModulation(depthMs, rateHz float64) Option {
	return func(cfg *config) error {
		if !finite(depthMs) || depthMs < 0 || depthMs > MaxModDepthMs {
			return fmt.Errorf("reverb modulation depth must be in [0, %g] ms: %f", MaxModDepthMs, depthMs)
		}
		if !finite(rateHz) || rateHz < 0 || rateHz > MaxModRateHz {
			return fmt.Errorf("reverb modulation rate must be in [0, %g] Hz: %f", MaxModRateHz, rateHz)
		}
		cfg.modDepthMs = depthMs
		cfg.modRateHz = rateHz
		return nil
	}
}

// Reverb is a fully wet stereo reverb fed from a mono send.
type Reverb struct {
	sampleRate float64
	cfg        config

	lengths  [numLines]float64
	feedback [numLines]float64
	lowpass  [numLines]float64
	lines    [numLines]*delay.Line
	pre      *delay.Line

	preDelay float64
	modDepth float64
	phase    float64
	phaseInc float64
}

// New returns a reverb for sampleRate. Delay memory is sized for the
// maximum pre-delay and modulation depth, so setters never allocate.
func New(sampleRate float64, opts ...Option) (*Reverb, error) {
	if sampleRate <= 0 || !finite(sampleRate) {
		return nil, fmt.Errorf("reverb sample rate must be > 0: %f", sampleRate)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &Reverb{sampleRate: sampleRate, cfg: cfg}
	maxMod := core.MsToSamples(MaxModDepthMs, sampleRate)
	for i, n := range lineLengths {
		r.lengths[i] = n * sampleRate / referenceRate
		l, err := delay.NewLine(r.lengths[i] + maxMod + delay.MinLineDelay)
		if err != nil {
			return nil, err
		}
		r.lines[i] = l
	}
	pre, err := delay.NewLine(core.MsToSamples(MaxPreDelayMs, sampleRate) + delay.MinLineDelay)
	if err != nil {
		return nil, err
	}
	r.pre = pre

	r.SetRT60(cfg.rt60)
	r.SetDamping(cfg.damping)
	r.SetPreDelayMs(cfg.preDelayMs)
	r.SetModulation(cfg.modDepthMs, cfg.modRateHz)
	return r, nil
}

// SampleRate returns the sample rate in Hz.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// RT60 returns the decay time in seconds.
func (r *Reverb) RT60() float64 { return r.cfg.rt60 }

// Damping returns the loop damping in [0, 1].
func (r *Reverb) Damping() float64 { return r.cfg.damping }

// PreDelayMs returns the pre-delay in ms.
func (r *Reverb) PreDelayMs() float64 { return r.cfg.preDelayMs }

// ModDepthMs returns the modulation depth in ms.
func (r *Reverb) ModDepthMs() float64 { return r.cfg.modDepthMs }

// ModRateHz returns the modulation rate in Hz.
func (r *Reverb) ModRateHz() float64 { return r.cfg.modRateHz }

// SetRT60 sets the decay time, clamped to [MinRT60Seconds, MaxRT60Seconds].
// NaN is ignored.
func (r *Reverb) SetRT60(seconds float64) {
	if math.IsNaN(seconds) {
		return
	}
	r.cfg.rt60 = core.Clamp(seconds, MinRT60Seconds, MaxRT60Seconds)
	for i, n := range r.lengths {
		r.feedback[i] = math.Pow(10, -3*n/r.sampleRate/r.cfg.rt60)
	}
}

// SetDamping sets the loop damping, clamped to [0, 1]. NaN is ignored.
func (r *Reverb) SetDamping(v float64) {
	if math.IsNaN(v) {
		return
	}
	r.cfg.damping = core.Clamp(v, 0, 1)
}

// SetPreDelayMs sets the pre-delay, clamped to [0, MaxPreDelayMs]. NaN is
// ignored.
func (r *Reverb) SetPreDelayMs(ms float64) {
	if math.IsNaN(ms) {
		return
	}
	r.cfg.preDelayMs = core.Clamp(ms, 0, MaxPreDelayMs)
	r.preDelay = core.MsToSamples(r.cfg.preDelayMs, r.sampleRate)
}

// SetModulation sets depth and rate, clamped to their ranges. NaN values
// are ignored.
func (r *Reverb) SetModulation(depthMs, rateHz float64) {
	if !math.IsNaN(depthMs) {
		r.cfg.modDepthMs = core.Clamp(depthMs, 0, MaxModDepthMs)
		r.modDepth = core.MsToSamples(r.cfg.modDepthMs, r.sampleRate)
	}
	if !math.IsNaN(rateHz) {
		r.cfg.modRateHz = core.Clamp(rateHz, 0, MaxModRateHz)
		r.phaseInc = 2 * math.Pi * r.cfg.modRateHz / r.sampleRate
	}
}

// Reset clears the tail.
func (r *Reverb) Reset() {
	for i := range r.lines {
		r.lines[i].Reset()
		r.lowpass[i] = 0
	}
	r.pre.Reset()
	r.phase = 0
}

// ProcessSample feeds one send sample and returns the wet stereo output.
// Even lines feed the left channel, odd lines the right.
func (r *Reverb) ProcessSample(in float64) (left, right float64) {
	x := in
	if r.preDelay > 0 {
		x = r.pre.Tap(r.preDelay)
		r.pre.Push(in)
	}

	var v [numLines]float64
	for i := range r.lines {
		mod := 0.5 * (1 + math.Sin(r.phase+2*math.Pi*float64(i)/numLines))
		v[i] = r.lines[i].Tap(r.lengths[i] + r.modDepth*mod)
		if i%2 == 0 {
			left += v[i]
		} else {
			right += v[i]
		}
	}
	r.phase += r.phaseInc
	if r.phase >= 2*math.Pi {
		r.phase -= 2 * math.Pi
	}

	hadamard(&v)
	damp := r.cfg.damping
	for i := range r.lines {
		r.lowpass[i] = v[i]*(1-damp) + r.lowpass[i]*damp
		r.lines[i].Push(x*inputGain + r.lowpass[i]*r.feedback[i])
	}
	return left * outputGain, right * outputGain
}

// Process runs the send buffer in through the reverb and overwrites left
// and right with the wet signal. Only the common prefix is processed.
func (r *Reverb) Process(in, left, right []float64) {
	n := min(len(in), len(left), len(right))
	for i := range n {
		left[i], right[i] = r.ProcessSample(in[i])
	}
}

var (
	matrixScale = 1 / math.Sqrt(numLines)
	inputGain   = 1 / math.Sqrt(numLines)
	outputGain  = 1 / math.Sqrt(numLines/2)
)

// hadamard applies the orthonormal 8x8 Hadamard matrix in place.
func hadamard(v *[numLines]float64) {
	for h := 1; h < numLines; h *= 2 {
		for i := 0; i < numLines; i += 2 * h {
			for j := i; j < i+h; j++ {
				a, b := v[j], v[j+h]
				v[j], v[j+h] = a+b, a-b
			}
		}
	}
	for i := range v {
		v[i] *= matrixScale
	}
}

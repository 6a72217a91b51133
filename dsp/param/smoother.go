// Package param provides per-sample control-value conditioning.
//
// A [Smoother] turns a stepwise control signal (MIDI CC values, knob
// positions, envelope stage targets) into a linear ramp so that parameter
// changes do not produce audible clicks.
package param

import (
	"fmt"
	"math"
)

// Smoother linearly ramps from its current value to the most recently
// requested target over a fixed number of samples.
type Smoother struct {
	sampleRate float64
	window     float64 // smoothing time in samples, >= 1

	current   float64
	target    float64
	slope     float64
	remaining int
}

// NewSmoother returns a smoother with the given ramp time. The ramp is at
// least one sample long, so a zero smoothing time jumps on the next call.
func NewSmoother(smoothingTimeMs, sampleRate float64) (*Smoother, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("smoother sample rate must be > 0: %f", sampleRate)
	}
	s := &Smoother{sampleRate: sampleRate}
	s.SetSmoothingTime(smoothingTimeMs)
	return s, nil
}

// SetSmoothingTime changes the ramp length. A ramp already in progress keeps
// its slope until the next target change.
func (s *Smoother) SetSmoothingTime(ms float64) {
	if ms < 0 || math.IsNaN(ms) {
		ms = 0
	}
	s.window = math.Max(1, ms/1000*s.sampleRate)
}

// SmoothingSamples returns the ramp length in samples.
func (s *Smoother) SmoothingSamples() float64 { return s.window }

// Current returns the most recently produced value.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value being ramped toward.
func (s *Smoother) Target() float64 { return s.target }

// Reset jumps to value without ramping.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.slope = 0
	s.remaining = 0
}

// Process advances the ramp by one sample toward target and returns the
// smoothed value. A new target restarts the ramp from the current value;
// the target is reached exactly after ceil(SmoothingSamples()) calls.
func (s *Smoother) Process(target float64) float64 {
	if target != s.target {
		s.target = target
		s.slope = (target - s.current) / s.window
		s.remaining = int(math.Ceil(s.window))
	}

	if s.slope == 0 {
		return s.current
	}

	s.current += s.slope
	s.remaining--

	crossed := (s.slope > 0 && s.current >= s.target) || (s.slope < 0 && s.current <= s.target)
	if crossed || s.remaining <= 0 {
		s.current = s.target
		s.slope = 0
		s.remaining = 0
	}

	return s.current
}

// ProcessBlock fills dst with consecutive smoothed values toward target.
func (s *Smoother) ProcessBlock(dst []float64, target float64) {
	for i := range dst {
		dst[i] = s.Process(target)
	}
}

package envelope

import (
	"fmt"
	"math"
)

// Generator is the minimal surface shared by the envelope variants.
type Generator interface {
	// Trigger starts the envelope (note on).
	Trigger()
	// Release starts the release stage (note off).
	Release()
	// Advance moves the envelope forward by n samples.
	Advance(n int)
	// Level returns the current gain in [0, 1].
	Level() float64
}

// Params are stage durations in milliseconds and a sustain level in [0, 1].
// Delay is only used by DAHDSR.
type Params struct {
	Delay   float64
	Attack  float64
	Hold    float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultParams is an organ-style gate: every stage instantaneous, full
// sustain.
func DefaultParams() Params {
	return Params{Sustain: 1}
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("envelope sample rate must be > 0: %f", sampleRate)
	}
	return nil
}

func nonNegative(ms float64) float64 {
	if ms > 0 {
		return ms
	}
	return 0
}

func unit(level float64) float64 {
	switch {
	case level > 1:
		return 1
	case level > 0:
		return level
	default:
		return 0
	}
}

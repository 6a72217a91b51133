// Package lfo provides a tick-counting low-frequency oscillator.
package lfo

import (
	"fmt"
	"math"
)

// DefaultFrequency is the frequency of a new LFO in Hz.
const DefaultFrequency = 440.0

// LFO produces periodic waveforms in [-1, 1]. Every call to a waveform
// method advances the oscillator by one sample; the first call returns the
// value at phase 0.
type LFO struct {
	sampleRate float64
	frequency  float64
	period     float64
	tick       float64
}

// New returns an LFO running at DefaultFrequency.
func New(sampleRate float64) (*LFO, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo sample rate must be > 0: %f", sampleRate)
	}
	l := &LFO{sampleRate: sampleRate, tick: -1}
	l.SetFrequency(DefaultFrequency)
	return l, nil
}

// SetFrequency sets the rate in Hz, clamped to >= 0. A zero frequency holds
// the phase-0 value.
func (l *LFO) SetFrequency(hz float64) {
	if !(hz > 0) {
		hz = 0
	}
	l.frequency = hz
	l.period = l.sampleRate / hz
}

// Frequency returns the rate in Hz.
func (l *LFO) Frequency() float64 { return l.frequency }

// Reset rewinds to phase 0.
func (l *LFO) Reset() { l.tick = -1 }

func (l *LFO) next() float64 {
	l.tick++
	return l.tick / l.period
}

// Sine returns sin(2*pi*phase).
func (l *LFO) Sine() float64 {
	return math.Sin(2 * math.Pi * l.next())
}

// Sawtooth ramps from -1 to 1 once per period, centered on phase 0.
func (l *LFO) Sawtooth() float64 {
	p := l.next()
	return 2 * (p - math.Round(p))
}

// Square is the sign of Sine, with 0 counted as positive.
func (l *LFO) Square() float64 {
	if l.Sine() < 0 {
		return -1
	}
	return 1
}

// Triangle folds Sine through arcsin, scaled to [-1, 1].
func (l *LFO) Triangle() float64 {
	return math.Asin(l.Sine()) * 2 / math.Pi
}

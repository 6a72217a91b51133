package effects

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/param"
)

const (
	defaultPitchBendRange = 12.0
	pitchBendWindowMs     = 40.0
	pitchBendGuard        = 2
	pitchBendFadeMs       = 10.0
)

// PitchBend shifts the pitch of a signal by up to ±range semitones.
//
// Two read taps sweep a short window of recent input at a rate set by the
// bend, half a window apart, each faded in and out with a triangular gain so
// that the jump back to the start of the window is inaudible. The taps lag
// the input by half a window, so engaging or releasing the bend crossfades
// between the dry input and the taps over 10 ms. At rest with a bend of zero
// the input passes through unchanged.
type PitchBend struct {
	rangeSemis float64
	pitch      float64
	speed      float64
	held       bool

	ring   *delay.Ring
	window float64
	phase  float64
	wet    *param.Smoother
}

var (
	_ MonoEffect  = (*PitchBend)(nil)
	_ BlockEffect = (*PitchBend)(nil)
)

// NewPitchBend creates a pitch bend with a 12 semitone range and no bend.
func NewPitchBend(sampleRate float64) (*PitchBend, error) {
	if err := validSampleRate("pitch bend", sampleRate); err != nil {
		return nil, err
	}
	window := math.Max(4, math.Round(core.MsToSamples(pitchBendWindowMs, sampleRate)))
	size := int(window) + 2*pitchBendGuard
	ring, err := delay.NewRingSize(size)
	if err != nil {
		return nil, err
	}
	// The newest sample sits at read offset size-1.
	ring.SetInterval(size - 1)

	wet, err := param.NewSmoother(pitchBendFadeMs, sampleRate)
	if err != nil {
		return nil, err
	}

	return &PitchBend{
		rangeSemis: defaultPitchBendRange,
		ring:       ring,
		window:     window,
		wet:        wet,
	}, nil
}

// SetRange sets the bend range in semitones, clamped to >= 0.
func (p *PitchBend) SetRange(semitones float64) {
	p.rangeSemis = atLeastZero(semitones)
	p.updateSpeed()
}

// SetPitch sets the bend position, clamped to [-1, 1]. ±1 bends by the full
// range.
func (p *PitchBend) SetPitch(pitch float64) {
	if math.IsNaN(pitch) {
		pitch = 0
	}
	p.pitch = core.Clamp(pitch, -1, 1)
	p.updateSpeed()
}

// Range returns the bend range in semitones.
func (p *PitchBend) Range() float64 { return p.rangeSemis }

// Pitch returns the bend position in [-1, 1].
func (p *PitchBend) Pitch() float64 { return p.pitch }

// Speed returns the frequency ratio minus one: 2^(range*pitch/12) - 1.
func (p *PitchBend) Speed() float64 { return p.speed }

func (p *PitchBend) updateSpeed() {
	p.speed = math.Exp2(p.rangeSemis*p.pitch/12) - 1
}

// hold keeps the taps mixed in while the bend passes through zero.
func (p *PitchBend) hold(on bool) { p.held = on }

// ProcessSample processes one sample.
func (p *PitchBend) ProcessSample(x float64) float64 {
	p.ring.Write(x)

	target := 0.0
	if p.speed != 0 || p.held {
		target = 1
	}
	wet := p.wet.Process(target)
	if wet == 0 {
		p.ring.Next()
		return x
	}

	out := p.taps()
	if wet < 1 {
		out = x + wet*(out-x)
	}

	p.phase -= p.speed / p.window
	p.phase -= math.Floor(p.phase)
	p.ring.Next()
	return out
}

// taps sums the two faded read taps. Their gains add up to one.
func (p *PitchBend) taps() float64 {
	newest := float64(p.ring.Len() - 1)
	tap := func(phase float64) float64 {
		gain := 1 - math.Abs(2*phase-1)
		lag := pitchBendGuard + phase*p.window
		return gain * p.ring.ReadFractional(newest-lag)
	}
	second := p.phase + 0.5
	if second >= 1 {
		second--
	}
	return tap(p.phase) + tap(second)
}

// ProcessInPlace applies the bend to buf in place.
func (p *PitchBend) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = p.ProcessSample(x)
	}
}

// Reset clears the stored audio and the tap position and returns to the
// dry signal.
func (p *PitchBend) Reset() {
	p.ring.Reset()
	p.phase = 0
	p.wet.Reset(0)
}

package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Line is a delay line read at a fractional distance behind the newest
// sample. It keeps a Ring with the write cursor one sample behind the read
// cursor, so the whole capacity is history.
type Line struct {
	ring *Ring
	max  float64
}

// MinLineDelay is the shortest tap distance; shorter requests are clamped
// so the interpolator never reads the slot about to be overwritten.
const MinLineDelay = 2

// NewLine returns a line that can be tapped up to maxDelay samples back.
func NewLine(maxDelay float64) (*Line, error) {
	if maxDelay < MinLineDelay || math.IsNaN(maxDelay) || math.IsInf(maxDelay, 0) {
		return nil, fmt.Errorf("delay line length must be >= %d: %f", MinLineDelay, maxDelay)
	}
	size := int(math.Ceil(maxDelay)) + 4
	r, err := NewRingSize(size)
	if err != nil {
		return nil, err
	}
	r.SetInterval(size - 1)
	return &Line{ring: r, max: float64(size - 4)}, nil
}

// MaxDelay returns the longest tap distance in samples.
func (l *Line) MaxDelay() float64 { return l.max }

// Tap returns the sample pushed d samples before the newest one, with
// Hermite interpolation between samples. d is clamped to
// [MinLineDelay, MaxDelay()].
func (l *Line) Tap(d float64) float64 {
	d = core.Clamp(d, MinLineDelay, l.max)
	return l.ring.ReadFractional(float64(l.ring.Interval()-1) - d)
}

// Push appends a sample.
func (l *Line) Push(x float64) {
	l.ring.Write(x)
	l.ring.Next()
}

// Reset clears the history.
func (l *Line) Reset() { l.ring.Reset() }

package shaper

import (
	"fmt"
	"math"
)

// WaveShaper applies a transfer curve sample by sample. Inputs outside
// [-1, 1] (and NaN) clamp to the first or last table entry.
type WaveShaper struct {
	curve []float64
	span  float64 // (len-1)/2
}

// NewWaveShaper returns a shaper for curve. The curve is used as is, not
// copied.
func NewWaveShaper(curve []float64) (*WaveShaper, error) {
	w := &WaveShaper{}
	if err := w.SetCurve(curve); err != nil {
		return nil, err
	}
	return w, nil
}

// SetCurve replaces the transfer curve.
func (w *WaveShaper) SetCurve(curve []float64) error {
	if len(curve) < 2 {
		return fmt.Errorf("shaper curve must have at least 2 points: %d", len(curve))
	}
	w.curve = curve
	w.span = float64(len(curve)-1) / 2
	return nil
}

// Curve returns the active curve.
func (w *WaveShaper) Curve() []float64 { return w.curve }

// ProcessSample shapes one sample.
func (w *WaveShaper) ProcessSample(x float64) float64 {
	last := len(w.curve) - 1
	v := w.span * (x + 1)
	switch {
	case !(v >= 0):
		return w.curve[0]
	case v >= float64(last):
		return w.curve[last]
	}

	k := math.Floor(v)
	f := v - k
	i := int(k)
	return (1-f)*w.curve[i] + f*w.curve[i+1]
}

// Process shapes buf in place.
func (w *WaveShaper) Process(buf []float64) {
	for i, x := range buf {
		buf[i] = w.ProcessSample(x)
	}
}

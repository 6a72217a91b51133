package eq

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
	"github.com/cwbudde/algo-synth/dsp/filter/design"
)

// Shape identifies the most recently applied filter response.
type Shape int

const (
	ShapeIdentity Shape = iota
	ShapeLowPass
	ShapeHighPass
	ShapeBandPass
	ShapeNotch
	ShapeLowShelf
	ShapeHighShelf
	ShapePeaking
)

func (s Shape) String() string {
	switch s {
	case ShapeIdentity:
		return "identity"
	case ShapeLowPass:
		return "low-pass"
	case ShapeHighPass:
		return "high-pass"
	case ShapeBandPass:
		return "band-pass"
	case ShapeNotch:
		return "notch"
	case ShapeLowShelf:
		return "low-shelf"
	case ShapeHighShelf:
		return "high-shelf"
	case ShapePeaking:
		return "peaking"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Filter is a biquad whose response is chosen by shape methods.
type Filter struct {
	sampleRate float64
	shape      Shape
	section    biquad.Section
}

// New returns an identity filter for the given sample rate.
func New(sampleRate float64) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("eq sample rate must be > 0: %f", sampleRate)
	}
	f := &Filter{sampleRate: sampleRate}
	f.Clear()
	return f, nil
}

// SampleRate returns the rate the shapes are designed for.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Shape returns the last applied shape.
func (f *Filter) Shape() Shape { return f.shape }

// Coefficients returns the active coefficients.
func (f *Filter) Coefficients() biquad.Coefficients { return f.section.Coefficients }

func (f *Filter) set(s Shape, c biquad.Coefficients) {
	f.shape = s
	f.section.SetCoefficients(c)
}

// Clear restores identity coefficients. The signal history is kept.
func (f *Filter) Clear() { f.set(ShapeIdentity, design.Identity()) }

// LowPass sets a low-pass at freq with quality q.
func (f *Filter) LowPass(freq, q float64) {
	f.set(ShapeLowPass, design.LowPass(freq, q, f.sampleRate))
}

// HighPass sets a high-pass at freq with quality q.
func (f *Filter) HighPass(freq, q float64) {
	f.set(ShapeHighPass, design.HighPass(freq, q, f.sampleRate))
}

// BandPass sets a band-pass at freq, bw octaves wide.
func (f *Filter) BandPass(freq, bw float64) {
	f.set(ShapeBandPass, design.BandPass(freq, bw, f.sampleRate))
}

// Notch sets a band-reject at freq, bw octaves wide.
func (f *Filter) Notch(freq, bw float64) {
	f.set(ShapeNotch, design.Notch(freq, bw, f.sampleRate))
}

// LowShelf sets a low shelf at freq.
func (f *Filter) LowShelf(freq, q, gainDB float64) {
	f.set(ShapeLowShelf, design.LowShelf(freq, q, gainDB, f.sampleRate))
}

// HighShelf sets a high shelf at freq.
func (f *Filter) HighShelf(freq, q, gainDB float64) {
	f.set(ShapeHighShelf, design.HighShelf(freq, q, gainDB, f.sampleRate))
}

// Peaking sets a peaking band at freq, bw octaves wide.
func (f *Filter) Peaking(freq, bw, gainDB float64) {
	f.set(ShapePeaking, design.Peaking(freq, bw, gainDB, f.sampleRate))
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	return f.section.ProcessSample(x)
}

// Process filters buf in place.
func (f *Filter) Process(buf []float64) {
	f.section.ProcessBlock(buf)
}

// Reset clears the signal history without touching the shape.
func (f *Filter) Reset() { f.section.Reset() }

// Stereo runs independent left and right filters with a shared shape.
type Stereo struct {
	L, R *Filter
}

// NewStereo returns an identity stereo filter.
func NewStereo(sampleRate float64) (*Stereo, error) {
	l, err := New(sampleRate)
	if err != nil {
		return nil, err
	}
	r, _ := New(sampleRate)
	return &Stereo{L: l, R: r}, nil
}

// Clear makes both channels pass-through.
func (s *Stereo) Clear() {
	s.L.Clear()
	s.R.Clear()
}

// LowPass configures both channels; see [Filter.LowPass].
func (s *Stereo) LowPass(freq, q float64) {
	s.L.LowPass(freq, q)
	s.R.LowPass(freq, q)
}

// HighPass configures both channels; see [Filter.HighPass].
func (s *Stereo) HighPass(freq, q float64) {
	s.L.HighPass(freq, q)
	s.R.HighPass(freq, q)
}

// BandPass configures both channels; see [Filter.BandPass].
func (s *Stereo) BandPass(freq, bw float64) {
	s.L.BandPass(freq, bw)
	s.R.BandPass(freq, bw)
}

// Notch configures both channels; see [Filter.Notch].
func (s *Stereo) Notch(freq, bw float64) {
	s.L.Notch(freq, bw)
	s.R.Notch(freq, bw)
}

// LowShelf configures both channels; see [Filter.LowShelf].
func (s *Stereo) LowShelf(freq, q, gain float64) {
	s.L.LowShelf(freq, q, gain)
	s.R.LowShelf(freq, q, gain)
}

// HighShelf configures both channels; see [Filter.HighShelf].
func (s *Stereo) HighShelf(freq, q, gain float64) {
	s.L.HighShelf(freq, q, gain)
	s.R.HighShelf(freq, q, gain)
}

// Peaking configures both channels; see [Filter.Peaking].
func (s *Stereo) Peaking(freq, bw, gain float64) {
	s.L.Peaking(freq, bw, gain)
	s.R.Peaking(freq, bw, gain)
}

// ProcessStereo filters one frame.
func (s *Stereo) ProcessStereo(l, r float64) (float64, float64) {
	return s.L.ProcessSample(l), s.R.ProcessSample(r)
}

// Process filters left and right buffers in place.
func (s *Stereo) Process(left, right []float64) {
	s.L.Process(left)
	s.R.Process(right)
}

// Reset clears both histories.
func (s *Stereo) Reset() {
	s.L.Reset()
	s.R.Reset()
}


// Package window generates the analysis windows used by the spectral
// measurements.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackman
	TypeBlackmanHarris
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
)

// cosine-sum terms a0 - a1 cos + a2 cos - a3 cos
var cosineTerms = map[Type][]float64{
	TypeRectangular:    {1},
	TypeHann:           {0.5, 0.5},
	TypeBlackman:       {0.42, 0.5, 0.08},
	TypeBlackmanHarris: {0.35875, 0.48829, 0.14128, 0.01168},
}

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "Rectangular"
	case TypeHann:
		return "Hann"
	case TypeBlackman:
		return "Blackman"
	case TypeBlackmanHarris:
		return "BlackmanHarris"
	default:
		return "Unknown"
	}
}

// MainLobeBins returns the half-width of the main lobe in FFT bins, which
// is how far a pure tone's energy spreads to each side.
func (t Type) MainLobeBins() int {
	terms, ok := cosineTerms[t]
	if !ok {
		return 0
	}
	return len(terms)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic generates the periodic form used for FFT framing instead of
// the symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns size coefficients of window t. Unknown types and
// non-positive sizes return nil.
func Generate(t Type, size int, opts ...Option) []float64 {
	terms, ok := cosineTerms[t]
	if !ok || size <= 0 {
		return nil
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out
	}
	denom := float64(size - 1)
	if cfg.periodic {
		denom = float64(size)
	}
	for n := range out {
		x := 2 * math.Pi * float64(n) / denom
		v, sign := 0.0, 1.0
		for k, a := range terms {
			v += sign * a * math.Cos(float64(k)*x)
			sign = -sign
		}
		out[n] = v
	}
	return out
}

// Apply multiplies buf in place by window t.
func Apply(t Type, buf []float64, opts ...Option) {
	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) || len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, coeffs)
}

// CoherentGain returns sum(w)/N, the window's gain for a bin-centred tone.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	if sum == 0 {
		return 0, errZeroCoherentGain
	}
	return sum / float64(len(coeffs)), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}
	sum := 0.0
	sumSquares := 0.0
	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}
	if sum == 0 {
		return 0, errZeroCoherentGain
	}
	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(e^jw) at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	// Jury conditions for 1 + A1 z^-1 + A2 z^-2.
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// MagnitudeDB returns the cascaded magnitude in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}
	return 20 * math.Log10(cmplx.Abs(h))
}

// ImpulseResponse returns the first n output samples for a unit impulse.
// The section's state is left untouched.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	probe := Section{Coefficients: s.Coefficients}
	ir := make([]float64, n)
	ir[0] = probe.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = probe.ProcessSample(0)
	}
	return ir
}

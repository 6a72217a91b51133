package design

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
)

// Raw holds un-normalized cookbook coefficients.
type Raw struct {
	A0, A1, A2 float64
	B0, B1, B2 float64
}

// Normalize divides every term by A0.
func (r Raw) Normalize() biquad.Coefficients {
	return biquad.Coefficients{
		B0: r.B0 / r.A0,
		B1: r.B1 / r.A0,
		B2: r.B2 / r.A0,
		A1: r.A1 / r.A0,
		A2: r.A2 / r.A0,
	}
}

// Omega returns the normalized angular frequency 2*pi*freq/sampleRate.
func Omega(freq, sampleRate float64) float64 {
	return 2 * math.Pi * freq / sampleRate
}

// QAlpha is the cookbook alpha for a quality factor q.
func QAlpha(omega, q float64) float64 {
	return math.Sin(omega) / (2 * q)
}

// BandwidthAlpha is the cookbook alpha for a bandwidth in octaves.
func BandwidthAlpha(omega, bw float64) float64 {
	s := math.Sin(omega)
	return s * math.Sinh(math.Ln2/2*bw*omega/s)
}

// Identity returns pass-through coefficients.
func Identity() biquad.Coefficients {
	return biquad.Identity
}

// LowPass designs a second-order low-pass at freq.
func LowPass(freq, q, sampleRate float64) biquad.Coefficients {
	return LowPassRaw(freq, q, sampleRate).Normalize()
}

// LowPassRaw is LowPass before normalization.
func LowPassRaw(freq, q, sampleRate float64) Raw {
	w := Omega(freq, sampleRate)
	alpha := QAlpha(w, q)
	cw := math.Cos(w)
	b := 1 - cw
	return Raw{
		A0: 1 + alpha, A1: -2 * cw, A2: 1 - alpha,
		B0: b / 2, B1: b, B2: b / 2,
	}
}

// HighPass designs a second-order high-pass at freq.
func HighPass(freq, q, sampleRate float64) biquad.Coefficients {
	return HighPassRaw(freq, q, sampleRate).Normalize()
}

// HighPassRaw is HighPass before normalization.
func HighPassRaw(freq, q, sampleRate float64) Raw {
	w := Omega(freq, sampleRate)
	alpha := QAlpha(w, q)
	cw := math.Cos(w)
	b := 1 + cw
	return Raw{
		A0: 1 + alpha, A1: -2 * cw, A2: 1 - alpha,
		B0: b / 2, B1: -b, B2: b / 2,
	}
}

// BandPass designs a constant 0 dB peak band-pass with bw octaves of
// bandwidth.
func BandPass(freq, bw, sampleRate float64) biquad.Coefficients {
	w := Omega(freq, sampleRate)
	alpha := BandwidthAlpha(w, bw)
	return Raw{
		A0: 1 + alpha, A1: -2 * math.Cos(w), A2: 1 - alpha,
		B0: alpha, B1: 0, B2: -alpha,
	}.Normalize()
}

// Notch designs a band-reject filter with bw octaves of bandwidth.
func Notch(freq, bw, sampleRate float64) biquad.Coefficients {
	w := Omega(freq, sampleRate)
	alpha := BandwidthAlpha(w, bw)
	cw := math.Cos(w)
	return Raw{
		A0: 1 + alpha, A1: -2 * cw, A2: 1 - alpha,
		B0: 1, B1: -2 * cw, B2: 1,
	}.Normalize()
}

// LowShelf boosts or cuts everything below freq by gainDB.
func LowShelf(freq, q, gainDB, sampleRate float64) biquad.Coefficients {
	w := Omega(freq, sampleRate)
	a := math.Pow(10, gainDB/40)
	beta := math.Sqrt(a) / q
	cw, bs := math.Cos(w), beta*math.Sin(w)
	return Raw{
		A0: (a + 1) + (a-1)*cw + bs,
		A1: -2 * ((a - 1) + (a+1)*cw),
		A2: (a + 1) + (a-1)*cw - bs,
		B0: a * ((a + 1) - (a-1)*cw + bs),
		B1: 2 * a * ((a - 1) - (a+1)*cw),
		B2: a * ((a + 1) - (a-1)*cw - bs),
	}.Normalize()
}

// HighShelf boosts or cuts everything above freq by gainDB.
func HighShelf(freq, q, gainDB, sampleRate float64) biquad.Coefficients {
	w := Omega(freq, sampleRate)
	a := math.Pow(10, gainDB/40)
	beta := math.Sqrt(a) / q
	cw, bs := math.Cos(w), beta*math.Sin(w)
	return Raw{
		A0: (a + 1) - (a-1)*cw + bs,
		A1: 2 * ((a - 1) - (a+1)*cw),
		A2: (a + 1) - (a-1)*cw - bs,
		B0: a * ((a + 1) + (a-1)*cw + bs),
		B1: -2 * a * ((a - 1) + (a+1)*cw),
		B2: a * ((a + 1) + (a-1)*cw - bs),
	}.Normalize()
}

// Peaking boosts or cuts a band of bw octaves around freq by gainDB.
func Peaking(freq, bw, gainDB, sampleRate float64) biquad.Coefficients {
	w := Omega(freq, sampleRate)
	alpha := BandwidthAlpha(w, bw)
	a := math.Pow(10, gainDB/40)
	cw := math.Cos(w)
	return Raw{
		A0: 1 + alpha/a, A1: -2 * cw, A2: 1 - alpha/a,
		B0: 1 + alpha*a, B1: -2 * cw, B2: 1 - alpha*a,
	}.Normalize()
}

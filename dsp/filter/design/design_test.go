package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
)

const sr = 48000.0

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestShapesHaveExpectedResponse(t *testing.T) {
	q := 1 / math.Sqrt2

	lp := LowPass(1000, q, sr)
	if !(lp.MagnitudeDB(100, sr) > lp.MagnitudeDB(10000, sr)) {
		t.Fatal("low-pass passes highs")
	}
	if got := lp.MagnitudeDB(1000, sr); !almostEqual(got, -3.0103, 0.01) {
		t.Fatalf("low-pass at cutoff = %v dB, want -3", got)
	}

	hp := HighPass(1000, q, sr)
	if !(hp.MagnitudeDB(10000, sr) > hp.MagnitudeDB(100, sr)) {
		t.Fatal("high-pass passes lows")
	}

	bp := BandPass(1000, 1, sr)
	if got := bp.MagnitudeDB(1000, sr); !almostEqual(got, 0, 1e-6) {
		t.Fatalf("band-pass center = %v dB, want 0", got)
	}
	if bp.MagnitudeDB(100, sr) > -10 || bp.MagnitudeDB(10000, sr) > -10 {
		t.Fatal("band-pass skirts too high")
	}

	n := Notch(1000, 1, sr)
	if n.MagnitudeDB(1000, sr) > -100 {
		t.Fatalf("notch center = %v dB", n.MagnitudeDB(1000, sr))
	}
	if !almostEqual(n.MagnitudeDB(20, sr), 0, 0.01) {
		t.Fatalf("notch passband = %v dB", n.MagnitudeDB(20, sr))
	}
}

func TestShelvesAndPeakReachGain(t *testing.T) {
	tests := []struct {
		name  string
		c     biquad.Coefficients
		probe float64
		want  float64
	}{
		{name: "low shelf cut", c: LowShelf(720, 1, -6, sr), probe: 1, want: -6},
		{name: "low shelf boost", c: LowShelf(100, 1/math.Sqrt2, 8, sr), probe: 1, want: 8},
		{name: "high shelf cut", c: HighShelf(6500, 1/math.Sqrt2, -40, sr), probe: sr / 2 * 0.999, want: -40},
		{name: "peaking boost", c: Peaking(3900, 1, 6, sr), probe: 3900, want: 6},
		{name: "peaking flat", c: Peaking(1700, 1, 0, sr), probe: 1700, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.MagnitudeDB(tt.probe, sr); !almostEqual(got, tt.want, 0.1) {
				t.Fatalf("gain at %v Hz = %v dB, want %v", tt.probe, got, tt.want)
			}
		})
	}
}

func TestZeroGainPeakingIsIdentity(t *testing.T) {
	c := Peaking(18000, 1, 0, sr)
	id := Identity()
	if !almostEqual(c.B0, id.B0, 1e-12) || !almostEqual(c.B1, c.A1, 1e-12) || !almostEqual(c.B2, c.A2, 1e-12) {
		t.Fatalf("0 dB peaking = %+v, want numerator == denominator", c)
	}
}

func TestLowPassRawMatchesCookbook(t *testing.T) {
	w := Omega(1000, sr)
	alpha := math.Sin(w) / (2 * 0.5)
	r := LowPassRaw(1000, 0.5, sr)
	if !almostEqual(r.A0, 1+alpha, 1e-15) || !almostEqual(r.B1, 1-math.Cos(w), 1e-15) {
		t.Fatalf("LowPassRaw = %+v", r)
	}
	c := r.Normalize()
	if !almostEqual(c.B1, r.B1/r.A0, 1e-15) || !almostEqual(c.A2, r.A2/r.A0, 1e-15) {
		t.Fatalf("Normalize = %+v", c)
	}
}

func TestBandwidthAlphaFormula(t *testing.T) {
	w := Omega(1000, sr)
	want := math.Sin(w) * math.Sinh(math.Ln2/2*2*w/math.Sin(w))
	if got := BandwidthAlpha(w, 2); got != want {
		t.Fatalf("BandwidthAlpha = %v, want %v", got, want)
	}
}

func TestDesignsStableInAudioBand(t *testing.T) {
	for _, f := range []float64{20, 100, 1000, 10000, 20000} {
		for _, c := range []biquad.Coefficients{
			LowPass(f, 0.707, sr),
			HighPass(f, 2, sr),
			BandPass(f, 0.5, sr),
			Notch(f, 1, sr),
			LowShelf(f, 1, -12, sr),
			HighShelf(f, 0.707, 12, sr),
			Peaking(f, 1, 9, sr),
		} {
			if !c.Stable() {
				t.Fatalf("unstable design at %v Hz: %+v", f, c)
			}
		}
	}
}

func TestDegenerateInputsAreNotRejected(t *testing.T) {
	// q = 0 drives alpha to +Inf, leaving Inf/Inf in the feedback terms.
	c := LowPass(1000, 0, sr)
	if !math.IsNaN(c.A2) {
		t.Fatalf("zero q: A2 = %v, want NaN", c.A2)
	}

	// Above Nyquist the formulas still evaluate.
	c = LowPass(30000, 0.707, sr)
	if math.IsNaN(c.B0) {
		t.Fatal("above-Nyquist design produced NaN")
	}
}

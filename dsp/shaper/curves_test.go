package shaper

import (
	"math"
	"testing"
)

func TestNewCurveFactoryValidation(t *testing.T) {
	if _, err := NewCurveFactory(3); err == nil {
		t.Fatal("expected error for tiny resolution")
	}
}

func TestCurveLengths(t *testing.T) {
	f, _ := NewCurveFactory(DefaultResolution)
	if n := len(f.Standard(0)); n != DefaultResolution {
		t.Fatalf("Standard len = %d", n)
	}
	if n := len(f.Asymmetric()); n != DefaultResolution {
		t.Fatalf("Asymmetric len = %d", n)
	}
	if n := len(f.NotSoDistorted(10)); n != DefaultResolution/2 {
		t.Fatalf("NotSoDistorted len = %d, want %d", n, DefaultResolution/2)
	}
}

func TestStandardCurveValues(t *testing.T) {
	f, _ := NewCurveFactory(8)
	c := f.Standard(0)
	// x = -1: 3 * -1 * 57deg / pi
	want := -3 * 57 * deg / math.Pi
	if math.Abs(c[0]-want) > 1e-12 {
		t.Fatalf("Standard(0)[0] = %v, want %v", c[0], want)
	}
	if c[4] != 0 {
		t.Fatalf("Standard(0) at x=0 = %v, want 0", c[4])
	}

	lower := f.StandardLower(0)
	if math.Abs(lower[0]/c[0]-20.0/57) > 1e-12 {
		t.Fatalf("StandardLower ratio = %v", lower[0]/c[0])
	}
}

func TestStandardDriveCompressesDynamics(t *testing.T) {
	f, _ := NewCurveFactory(4096)
	soft, _ := NewWaveShaper(f.Standard(0))
	hard, _ := NewWaveShaper(f.Standard(1500))

	// Ratio of a quiet to a loud input's output: closer to 1 means more
	// clipping.
	ratio := func(w *WaveShaper) float64 {
		return w.ProcessSample(0.1) / w.ProcessSample(0.9)
	}
	if !(ratio(hard) > ratio(soft)) {
		t.Fatalf("drive 1500 ratio %v not above drive 0 ratio %v", ratio(hard), ratio(soft))
	}
}

func TestAsymmetricRegions(t *testing.T) {
	f, _ := NewCurveFactory(DefaultResolution)
	c := f.Asymmetric()

	for i, v := range c {
		x := float64(i)*2/DefaultResolution - 1
		if x >= 0.320018 && v != 0.630035 {
			t.Fatalf("ceiling at x=%v = %v", x, v)
		}
		if x >= -0.08905 && x < 0.320018 {
			if want := -6.153*x*x + 3.9375*x; math.Abs(v-want) > 1e-12 {
				t.Fatalf("parabola at x=%v = %v, want %v", x, v, want)
			}
		}
	}
	if c[0] >= 0 {
		t.Fatalf("negative swing maps to %v, want negative", c[0])
	}
}

func TestNotSoDistortedIsOddAndBounded(t *testing.T) {
	f, _ := NewCurveFactory(2000)
	c := f.NotSoDistorted(300)
	if c[0] != -1 {
		t.Fatalf("curve[0] = %v, want -1", c[0])
	}
	for i, v := range c {
		if math.Abs(v) > 1+1e-12 {
			t.Fatalf("curve[%d] = %v out of [-1, 1]", i, v)
		}
	}
	// x = 0 at index len/2
	if c[len(c)/2] != 0 {
		t.Fatalf("curve at x=0 = %v", c[len(c)/2])
	}
}

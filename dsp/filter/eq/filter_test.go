package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/internal/testutil"
)

const sr = 48000.0

func settledPeak(f *Filter, freq float64) float64 {
	buf := testutil.DeterministicSine(freq, sr, 1, 9600)
	f.Reset()
	f.Process(buf)
	return testutil.Peak(buf[4800:])
}

func TestNewValidation(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := New(rate); err == nil {
			t.Fatalf("New(%v): expected error", rate)
		}
	}
}

func TestNewIsIdentity(t *testing.T) {
	f, err := New(sr)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if f.Shape() != ShapeIdentity {
		t.Fatalf("Shape() = %v, want identity", f.Shape())
	}
	in := testutil.DeterministicNoise(7, 1, 256)
	buf := append([]float64(nil), in...)
	f.Process(buf)
	testutil.RequireSliceNearlyEqual(t, buf, in, 0)
}

func TestClearRestoresIdentity(t *testing.T) {
	f, _ := New(sr)
	f.LowPass(500, 0.707)
	f.Process(testutil.DeterministicNoise(1, 1, 64))
	f.Clear()
	f.Reset()

	in := testutil.DeterministicNoise(2, 1, 128)
	buf := append([]float64(nil), in...)
	f.Process(buf)
	testutil.RequireSliceNearlyEqual(t, buf, in, 0)
}

func TestLowPassPassbandAndMonotonicStopband(t *testing.T) {
	f, _ := New(sr)
	f.LowPass(2000, 1/math.Sqrt2)

	if got := settledPeak(f, 100); math.Abs(got-1) > 0.01 {
		t.Fatalf("100 Hz peak = %v, want ~1", got)
	}

	prev := math.Inf(1)
	for _, freq := range []float64{4000, 6000, 9000, 13000, 18000} {
		got := settledPeak(f, freq)
		if got >= prev {
			t.Fatalf("%v Hz peak = %v, not below previous %v", freq, got, prev)
		}
		prev = got
	}
}

func TestShapeMethodsOverwriteCoefficients(t *testing.T) {
	f, _ := New(sr)
	tests := []struct {
		apply func()
		want  Shape
	}{
		{func() { f.LowPass(1000, 1) }, ShapeLowPass},
		{func() { f.HighPass(1000, 1) }, ShapeHighPass},
		{func() { f.BandPass(1000, 1) }, ShapeBandPass},
		{func() { f.Notch(1000, 1) }, ShapeNotch},
		{func() { f.LowShelf(1000, 1, 6) }, ShapeLowShelf},
		{func() { f.HighShelf(1000, 1, 6) }, ShapeHighShelf},
		{func() { f.Peaking(1000, 1, 6) }, ShapePeaking},
	}

	seen := map[[5]float64]bool{}
	for _, tt := range tests {
		tt.apply()
		if f.Shape() != tt.want {
			t.Fatalf("Shape() = %v, want %v", f.Shape(), tt.want)
		}
		c := f.Coefficients()
		key := [5]float64{c.B0, c.B1, c.B2, c.A1, c.A2}
		if seen[key] {
			t.Fatalf("%v left coefficients of a previous shape", tt.want)
		}
		seen[key] = true
	}
}

func TestProcessSampleMatchesProcess(t *testing.T) {
	a, _ := New(sr)
	b, _ := New(sr)
	a.HighPass(200, 0.707)
	b.HighPass(200, 0.707)

	buf := testutil.DeterministicNoise(3, 1, 300)
	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = a.ProcessSample(x)
	}
	b.Process(buf)
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)
}

func TestStereoSharesShapeAndKeepsChannelsApart(t *testing.T) {
	s, err := NewStereo(sr)
	if err != nil {
		t.Fatalf("NewStereo() error = %v", err)
	}
	s.LowPass(1000, 0.707)
	if s.L.Shape() != ShapeLowPass || s.R.Shape() != ShapeLowPass {
		t.Fatal("stereo channels have different shapes")
	}

	left := testutil.Impulse(32, 0)
	right := make([]float64, 32)
	s.Process(left, right)
	for i, v := range right {
		if v != 0 {
			t.Fatalf("right[%d] = %v, left channel leaked", i, v)
		}
	}

	l, r := s.ProcessStereo(0, 1)
	if r == 0 || l == r {
		t.Fatalf("ProcessStereo = (%v, %v)", l, r)
	}
}

func TestStereoShapeSettersMatchMono(t *testing.T) {
	tests := []struct {
		name   string
		stereo func(*Stereo)
		mono   func(*Filter)
	}{
		{"low pass", func(s *Stereo) { s.LowPass(800, 0.9) }, func(f *Filter) { f.LowPass(800, 0.9) }},
		{"high pass", func(s *Stereo) { s.HighPass(800, 0.9) }, func(f *Filter) { f.HighPass(800, 0.9) }},
		{"band pass", func(s *Stereo) { s.BandPass(800, 1) }, func(f *Filter) { f.BandPass(800, 1) }},
		{"notch", func(s *Stereo) { s.Notch(800, 1) }, func(f *Filter) { f.Notch(800, 1) }},
		{"low shelf", func(s *Stereo) { s.LowShelf(800, 0.7, 6) }, func(f *Filter) { f.LowShelf(800, 0.7, 6) }},
		{"high shelf", func(s *Stereo) { s.HighShelf(800, 0.7, -6) }, func(f *Filter) { f.HighShelf(800, 0.7, -6) }},
		{"peaking", func(s *Stereo) { s.Peaking(800, 1, 3) }, func(f *Filter) { f.Peaking(800, 1, 3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := NewStereo(sr)
			f, _ := New(sr)
			tt.stereo(s)
			tt.mono(f)
			if s.L.Coefficients() != f.Coefficients() || s.R.Coefficients() != f.Coefficients() {
				t.Fatalf("stereo coefficients = (%+v, %+v), want %+v",
					s.L.Coefficients(), s.R.Coefficients(), f.Coefficients())
			}
			if s.L.Shape() != f.Shape() || s.R.Shape() != f.Shape() {
				t.Fatalf("stereo shapes = (%v, %v), want %v", s.L.Shape(), s.R.Shape(), f.Shape())
			}
		})
	}
}

// A cutoff moving in small steps every 16 samples, the way a voice drives its
// filter, must not add steps larger than the filtered signal already has.
func TestLowPassCutoffSweepIsSmooth(t *testing.T) {
	const (
		n        = 9600
		interval = 16
	)
	in := testutil.DeterministicSine(220, sr, 1, n)

	fixed, _ := New(sr)
	fixed.LowPass(2000, 0.707)
	ref := append([]float64(nil), in...)
	fixed.Process(ref)

	var limit float64
	for i := 4801; i < n; i++ {
		limit = max(limit, math.Abs(ref[i]-ref[i-1]))
	}

	swept, _ := New(sr)
	swept.LowPass(2000, 0.707)
	out := make([]float64, n)
	for i, x := range in {
		if i >= 4800 && i%interval == 0 {
			swept.LowPass(2000+float64(i-4800)/4800*2000, 0.707)
		}
		out[i] = swept.ProcessSample(x)
	}
	testutil.RequireFinite(t, out)
	for i := 4801; i < n; i++ {
		if step := math.Abs(out[i] - out[i-1]); step > 1.5*limit {
			t.Fatalf("sample %d: step %v, want <= %v", i, step, 1.5*limit)
		}
	}
}

func TestShapeString(t *testing.T) {
	if ShapePeaking.String() != "peaking" || Shape(99).String() != "Shape(99)" {
		t.Fatalf("unexpected names %q %q", ShapePeaking, Shape(99))
	}
}

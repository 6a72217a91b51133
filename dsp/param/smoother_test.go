package param

import (
	"math"
	"testing"
)

func TestNewSmootherValidation(t *testing.T) {
	if _, err := NewSmoother(10, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewSmoother(10, math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
}

func TestSmootherReachesTargetExactly(t *testing.T) {
	tests := []struct {
		name       string
		ms         float64
		sampleRate float64
		target     float64
	}{
		{name: "integer window", ms: 10, sampleRate: 48000, target: 127},
		{name: "fractional window", ms: 1, sampleRate: 44100, target: 0.3},
		{name: "downward", ms: 5, sampleRate: 48000, target: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSmoother(tt.ms, tt.sampleRate)
			if err != nil {
				t.Fatalf("NewSmoother() error = %v", err)
			}

			calls := int(math.Ceil(s.SmoothingSamples()))
			var got float64
			for i := 0; i < calls; i++ {
				got = s.Process(tt.target)
			}
			if got != tt.target {
				t.Fatalf("after %d calls got %v, want %v", calls, got, tt.target)
			}

			for i := 0; i < 10; i++ {
				if v := s.Process(tt.target); v != tt.target {
					t.Fatalf("value drifted after reaching target: %v", v)
				}
			}
		})
	}
}

func TestSmootherRampIsMonotonic(t *testing.T) {
	s, err := NewSmoother(10, 48000)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	prev := s.Current()
	for i := 0; i < 480; i++ {
		v := s.Process(1)
		if v < prev {
			t.Fatalf("sample %d: %v < previous %v", i, v, prev)
		}
		if v > 1 {
			t.Fatalf("sample %d: overshoot %v", i, v)
		}
		prev = v
	}
}

func TestSmootherRetargetMidRamp(t *testing.T) {
	s, err := NewSmoother(10, 1000) // 10 samples
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		s.Process(10)
	}
	if math.Abs(s.Current()-5) > 1e-12 {
		t.Fatalf("half-way value = %v, want 5", s.Current())
	}

	// Reverse direction: the new ramp starts from 5, not from 10.
	v := s.Process(0)
	if math.Abs(v-4.5) > 1e-12 {
		t.Fatalf("first reversed step = %v, want 4.5", v)
	}
}

func TestSmootherZeroTimeJumps(t *testing.T) {
	s, err := NewSmoother(0, 48000)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}
	if got := s.Process(0.8); got != 0.8 {
		t.Fatalf("zero smoothing time got %v, want 0.8", got)
	}
}

func TestSmootherResetAndBlock(t *testing.T) {
	s, err := NewSmoother(1, 4000) // 4 samples
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}
	s.Reset(1)
	if s.Current() != 1 || s.Target() != 1 {
		t.Fatalf("Reset: current=%v target=%v", s.Current(), s.Target())
	}

	dst := make([]float64, 6)
	s.ProcessBlock(dst, 0)
	want := []float64{0.75, 0.5, 0.25, 0, 0, 0}
	for i := range want {
		if math.Abs(dst[i]-want[i]) > 1e-12 {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func BenchmarkSmootherProcess(b *testing.B) {
	s, _ := NewSmoother(10, 48000)
	target := 0.0
	for i := 0; i < b.N; i++ {
		if i%4800 == 0 {
			target = 1 - target
		}
		s.Process(target)
	}
}

package window

import (
	"math"
	"testing"
)

func TestGenerateSymmetricEndpoints(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeBlackman} {
		w := Generate(typ, 65)
		if math.Abs(w[0]) > 1e-12 || math.Abs(w[64]) > 1e-12 {
			t.Fatalf("%v endpoints = (%v, %v), want 0", typ, w[0], w[64])
		}
		if math.Abs(w[32]-1) > 1e-12 {
			t.Fatalf("%v centre = %v, want 1", typ, w[32])
		}
		for i := range 32 {
			if math.Abs(w[i]-w[64-i]) > 1e-12 {
				t.Fatalf("%v not symmetric at %d", typ, i)
			}
		}
	}
}

func TestGeneratePeriodic(t *testing.T) {
	w := Generate(TypeHann, 8, WithPeriodic())
	if w[0] != 0 {
		t.Fatalf("w[0] = %v, want 0", w[0])
	}
	if math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("w[4] = %v, want 1", w[4])
	}
}

func TestGenerateDegenerate(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if w := Generate(Type(99), 8); w != nil {
		t.Fatalf("Generate(unknown) = %v, want nil", w)
	}
	if w := Generate(TypeBlackman, 1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("Generate(1) = %v, want [1]", w)
	}
}

func TestGainAndENBW(t *testing.T) {
	tests := []struct {
		typ        Type
		gain, enbw float64
	}{
		{TypeRectangular, 1, 1},
		{TypeHann, 0.5, 1.5},
		{TypeBlackman, 0.42, 1.7268},
	}
	for _, tt := range tests {
		w := Generate(tt.typ, 4096, WithPeriodic())
		gain, err := CoherentGain(w)
		if err != nil {
			t.Fatalf("%v: CoherentGain() error = %v", tt.typ, err)
		}
		if math.Abs(gain-tt.gain) > 1e-9 {
			t.Fatalf("%v: CoherentGain() = %v, want %v", tt.typ, gain, tt.gain)
		}
		enbw, err := EquivalentNoiseBandwidth(w)
		if err != nil {
			t.Fatalf("%v: ENBW error = %v", tt.typ, err)
		}
		if math.Abs(enbw-tt.enbw) > 1e-3 {
			t.Fatalf("%v: ENBW = %v, want %v", tt.typ, enbw, tt.enbw)
		}
	}
}

func TestEmptyCoefficients(t *testing.T) {
	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
	if _, err := EquivalentNoiseBandwidth([]float64{0, 0}); err == nil {
		t.Fatal("expected error for zero-sum coefficients")
	}
}

func TestMainLobeBins(t *testing.T) {
	if got := TypeHann.MainLobeBins(); got != 2 {
		t.Fatalf("Hann MainLobeBins() = %d, want 2", got)
	}
	if got := TypeBlackmanHarris.MainLobeBins(); got != 4 {
		t.Fatalf("BlackmanHarris MainLobeBins() = %d, want 4", got)
	}
}

package mix

import (
	"math"
	"testing"
)

func TestTwo(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{name: "both positive", a: 0.5, b: 0.5, want: 0.75},
		{name: "both negative", a: -0.5, b: -0.5, want: -0.75},
		{name: "opposite signs", a: 0.5, b: -0.3, want: 0.2},
		{name: "zero", a: 0, b: 0.4, want: 0.4},
		{name: "full scale", a: 1, b: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Two(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-15 {
				t.Fatalf("Two(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTwoStaysInsideUnitRange(t *testing.T) {
	for a := -1.0; a <= 1.0; a += 0.125 {
		for b := -1.0; b <= 1.0; b += 0.125 {
			if got := Two(a, b); math.Abs(got) > 1+1e-12 {
				t.Fatalf("Two(%v, %v) = %v escapes [-1, 1]", a, b, got)
			}
		}
	}
}

func TestSamples(t *testing.T) {
	if got := Samples(); got != 0 {
		t.Fatalf("Samples() = %v, want 0", got)
	}
	if got := Samples(0.5, 0.5); got != 0.75 {
		t.Fatalf("Samples(0.5, 0.5) = %v, want 0.75", got)
	}
	// ((0.5 ⊕ 0.5) ⊕ 0.5) = 0.75 + 0.5 - 0.375
	if got := Samples(0.5, 0.5, 0.5); math.Abs(got-0.875) > 1e-15 {
		t.Fatalf("Samples(0.5, 0.5, 0.5) = %v, want 0.875", got)
	}
}

func TestBlock(t *testing.T) {
	dst := []float64{0.5, -0.5, 0.5, 0.1}
	Block(dst, []float64{0.5, -0.5, -0.3})

	want := []float64{0.75, -0.75, 0.2, 0.1}
	for i := range want {
		if math.Abs(dst[i]-want[i]) > 1e-15 {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestGainAndSum(t *testing.T) {
	buf := []float64{1, -2, 0.5}
	Gain(buf, 2)
	want := []float64{2, -4, 1}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("Gain: buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	Sum(buf, []float64{1, 1, 1})
	want = []float64{3, -3, 2}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("Sum: buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

package testutil

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Peak returns the largest absolute sample.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.MaxAbs(x)
}

// RMS returns the root-mean-square level.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// ZeroCrossings counts sign changes, treating 0 as positive.
func ZeroCrossings(x []float64) int {
	n := 0
	for i := 1; i < len(x); i++ {
		if (x[i-1] < 0) != (x[i] < 0) {
			n++
		}
	}
	return n
}

// CrestFactor returns Peak/RMS, or 0 for silence.
func CrestFactor(x []float64) float64 {
	rms := RMS(x)
	if rms == 0 {
		return 0
	}
	return Peak(x) / rms
}

package effects

import (
	"fmt"
	"math"
)

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func validSampleRate(name string, sampleRate float64) error {
	if !finitePositive(sampleRate) {
		return fmt.Errorf("%s sample rate must be > 0: %f", name, sampleRate)
	}
	return nil
}

// atLeastZero clamps NaN and negative values to 0.
func atLeastZero(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}

// unitRange clamps v to [0, 1]; NaN becomes 0.
func unitRange(v float64) float64 {
	switch {
	case !(v > 0):
		return 0
	case v > 1:
		return 1
	}
	return v
}

package mix

import vecmath "github.com/cwbudde/algo-vecmath"

// Two mixes two samples.
//
//	a+b-a*b  if both are positive
//	a+b+a*b  if both are negative
//	a+b      otherwise
func Two(a, b float64) float64 {
	switch {
	case a > 0 && b > 0:
		return (a + b) - a*b
	case a < 0 && b < 0:
		return (a + b) + a*b
	default:
		return a + b
	}
}

// Samples folds [Two] pairwise across samples, starting from silence.
func Samples(samples ...float64) float64 {
	var out float64
	for _, s := range samples {
		out = Two(out, s)
	}
	return out
}

// Block mixes src into dst element-wise with [Two]. Only the overlapping
// prefix of the two slices is touched.
func Block(dst, src []float64) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] = Two(dst[i], src[i])
	}
}

// Gain scales buf in place. Unity gain is a no-op.
func Gain(buf []float64, gain float64) {
	if gain == 1 || len(buf) == 0 {
		return
	}
	vecmath.ScaleBlockInPlace(buf, gain)
}

// Sum adds src into dst element-wise without saturation. Both slices must
// have the same length.
func Sum(dst, src []float64) {
	if len(dst) == 0 {
		return
	}
	vecmath.AddBlockInPlace(dst, src)
}

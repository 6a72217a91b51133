package interp

// Interpolator provides configurable fractional interpolation.
type Interpolator struct {
	order int
}

// NewInterpolator creates an interpolator.
// order: 1 = linear, 3 = cubic Hermite. Any other order falls back to linear.
func NewInterpolator(order int) *Interpolator {
	if order != 3 {
		order = 1
	}
	return &Interpolator{order: order}
}

// Order returns the interpolation order (1 or 3).
func (l *Interpolator) Order() int { return l.order }

// Interpolate interpolates around frac in [0,1].
// For order 1, samples must contain at least 2 values and the result lies
// between samples[0] and samples[1].
// For order 3, samples must contain at least 4 values and the result lies
// between samples[1] and samples[2].
func (l *Interpolator) Interpolate(samples []float64, frac float64) float64 {
	switch {
	case len(samples) == 0:
		return 0
	case len(samples) == 1:
		return samples[0]
	case l.order == 3 && len(samples) >= 4:
		return Hermite4(frac, samples[0], samples[1], samples[2], samples[3])
	default:
		return Linear(frac, samples[0], samples[1])
	}
}

// Linear blends x0 and x1 by t without clamping t.
func Linear(t, x0, x1 float64) float64 {
	return (1-t)*x0 + t*x1
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

package shaper

import (
	"fmt"
	"math"
)

// DefaultResolution matches the 44.1 kHz-sized tables the amp voicing was
// tuned with.
const DefaultResolution = 44100

const deg = math.Pi / 180

// CurveFactory builds transfer curves with a fixed number of points.
type CurveFactory struct {
	resolution int
}

// NewCurveFactory returns a factory producing resolution-point curves.
// NotSoDistorted uses half that many points.
func NewCurveFactory(resolution int) (*CurveFactory, error) {
	if resolution < 4 {
		return nil, fmt.Errorf("curve resolution must be >= 4: %d", resolution)
	}
	return &CurveFactory{resolution: resolution}, nil
}

// Resolution returns the table length.
func (c *CurveFactory) Resolution() int { return c.resolution }

// build samples fn over x = 2i/n - 1, i in [0, n).
func build(n int, fn func(x float64) float64) []float64 {
	curve := make([]float64, n)
	for i := range curve {
		curve[i] = fn(float64(i)*2/float64(n) - 1)
	}
	return curve
}

// Standard is the classic (k+3)x*57deg/(pi+k|x|) soft clipper. Larger k
// clips harder; k = 0 is a gentle linear-ish slope.
func (c *CurveFactory) Standard(k float64) []float64 {
	return build(c.resolution, func(x float64) float64 {
		return (k + 3) * x * 57 * deg / (math.Pi + k*math.Abs(x))
	})
}

// StandardLower is Standard with a 20 degree gain, for a quieter output.
func (c *CurveFactory) StandardLower(k float64) []float64 {
	return build(c.resolution, func(x float64) float64 {
		return (k + 3) * x * 20 * deg / (math.Pi + k*math.Abs(x))
	})
}

// Asymmetric is a fixed tube-like curve: a steep polynomial knee for
// negative swings, a parabola around zero, and a flat ceiling above
// x = 0.320018.
func (c *CurveFactory) Asymmetric() []float64 {
	return build(c.resolution, func(x float64) float64 {
		switch {
		case x < -0.08905:
			ax := math.Abs(x)
			return -0.75*(1-math.Pow(1-(ax-0.032857), 12)+(ax-0.032847)/3) + 0.01
		case x < 0.320018:
			return -6.153*x*x + 3.9375*x
		default:
			return 0.630035
		}
	})
}

// NotSoDistorted is a rational saturator with a = (k/150+2)^3. The table
// has half the factory resolution.
func (c *CurveFactory) NotSoDistorted(k float64) []float64 {
	a := math.Pow(k/150+2, 3)
	return build(c.resolution/2, func(x float64) float64 {
		return (a + 1) * x / (1 + a*math.Abs(x))
	})
}

// Identity maps every input onto itself: curve[i] = 2i/(n-1) - 1.
func (c *CurveFactory) Identity() []float64 {
	n := c.resolution
	curve := make([]float64, n)
	for i := range curve {
		curve[i] = 2*float64(i)/float64(n-1) - 1
	}
	return curve
}

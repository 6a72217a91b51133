package articulation

import "math"

// Transform packs a curve shape in the low nibble and flags in the high
// nibble.
type Transform uint8

// Curve shapes.
const (
	Linear  Transform = 0x0
	Concave Transform = 0x1
	Convex  Transform = 0x2
	Switch  Transform = 0x3
)

// Flags.
const (
	Inverted Transform = 0x10
	Bipolar  Transform = 0x20
)

// Shape returns the curve shape.
func (t Transform) Shape() Transform { return t & 0x0f }

// IsInverted reports whether the input is mirrored (1-x) before shaping.
func (t Transform) IsInverted() bool { return t&Inverted != 0 }

// IsBipolar reports whether the input is remapped to [-1, 1] before shaping.
func (t Transform) IsBipolar() bool { return t&Bipolar != 0 }

// concaveKnee is where -5/12*log10(1-x) reaches 1.
var concaveKnee = 1 - math.Pow(10, -12.0/5)

func shape(x float64, s Transform) float64 {
	switch s {
	case Concave, Convex:
		// Convex shares the concave curve.
		if x > concaveKnee {
			return 1
		}
		return -5.0 / 12 * math.Log10(1-x)
	case Switch:
		if x >= 0.5 {
			return 1
		}
		return 0
	default:
		return x
	}
}

// ProcessTransform applies t to a normalized value. Inversion (1-x) comes
// first; a bipolar transform then remaps to [-1, 1] and shapes the
// magnitude, keeping the sign.
func ProcessTransform(value float64, t Transform) float64 {
	if t.IsInverted() {
		value = 1 - value
	}
	if !t.IsBipolar() {
		return shape(value, t.Shape())
	}
	value = 2*value - 1
	mag := shape(math.Abs(value), t.Shape())
	switch {
	case value > 0:
		return mag
	case value < 0:
		return -mag
	default:
		return 0
	}
}

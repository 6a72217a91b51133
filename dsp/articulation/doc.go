// Package articulation routes modulation sources to synthesis parameters.
//
// An [Articulator] takes a source signal and a control signal, normalizes
// both, shapes them through transfer curves, scales their product and
// produces a delta for one destination parameter. A [Unit] applies a list
// of articulators to a [Values] set.
package articulation

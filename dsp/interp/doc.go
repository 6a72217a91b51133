// Package interp provides interpolation primitives used by table lookups and
// delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear]:   2-point linear interpolation (wave-shaper tables)
//   - [Hermite4]: 4-point cubic Hermite (fractional ring-buffer reads)
//
// [Interpolator] selects between them at construction time.
package interp

// Package biquad provides the second-order IIR section used by every
// filter in the synth.
//
// A [Section] runs Direct Form II Transposed on normalized [Coefficients]
// (a0 = 1). Block processing picks an unrolled loop at first use based on
// the CPU features reported by algo-vecmath/cpu. A [Chain] cascades sections
// in series and lets individual stages be redesigned without dropping state.
//
// Coefficient design lives in dsp/filter/design.
package biquad

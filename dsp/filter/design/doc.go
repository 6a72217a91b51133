// Package design derives biquad coefficients from musical parameters using
// the audio-EQ-cookbook formulas.
//
// The designers do not validate their inputs. A frequency at or above
// Nyquist, a zero Q or a zero bandwidth yields coefficients that alias or
// evaluate to NaN/Inf; callers clamp parameters to sane ranges before
// designing.
package design

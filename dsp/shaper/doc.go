// Package shaper provides table-driven waveshaping distortion.
//
// A [WaveShaper] maps each sample in [-1, 1] onto a transfer curve with
// linear interpolation. A [CurveFactory] builds the amp-simulator curves at
// an explicit table resolution.
package shaper

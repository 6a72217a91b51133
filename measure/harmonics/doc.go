// Package harmonics measures the harmonic content of a periodic signal.
//
// Analyze windows the signal, transforms it with algo-fft and sums the power
// around the fundamental and each harmonic. Levels are amplitude estimates,
// so a full-scale sine reports a fundamental level of 1 regardless of the
// window or FFT size.
package harmonics

// Package effects provides the synth's per-sample and per-block audio
// effects: distortion, drive, compression, feedback delay, pitch bend,
// vibrato and tremolo.
//
// Effects are configured with functional options at construction time and
// with clamping setters afterwards. Processing methods never return errors.
package effects

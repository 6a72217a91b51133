// Package eq provides the stateful shape-selectable biquad used by the
// synth's effects and voices.
//
// A [Filter] starts as an identity pass-through. Each shape method derives a
// full coefficient set from the filter's sample rate and replaces the
// previous one; [Filter.Clear] goes back to identity. [Stereo] runs two
// filters with a shared shape over a left/right pair.
package eq

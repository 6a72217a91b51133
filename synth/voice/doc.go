// Package voice renders one sounding note: pitched sample playback with
// cubic interpolation and forward loops, a resonant low-pass filter, a
// DAHDSR volume envelope and constant-power panning.
//
// Parameters come from the region's articulation values, computed once at
// Attack from the note and the channel's controller state.
package voice

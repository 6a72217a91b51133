// Package synth is the sample-based MIDI synthesizer engine: it keeps
// per-channel controller state, allocates voices from a fixed pool on note
// events, renders them in fixed-size blocks and pushes the mixed stereo
// stream to an output.Sink.
//
// An Engine is not safe for concurrent use. Feed it MIDI and pull audio from
// the same goroutine.
package synth

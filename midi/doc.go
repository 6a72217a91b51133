// Package midi decodes raw MIDI 1.0 channel and system-exclusive messages
// and dispatches them to a Handler.
//
// Decoding is allocation-free for channel messages. System-exclusive payloads
// alias the input slice.
package midi

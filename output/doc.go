// Package output defines the frame sink the synthesizer pushes rendered
// stereo audio into, plus stream and discard implementations.
package output

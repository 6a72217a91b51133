// Package reverb provides the synth's send reverb: a modulated eight-line
// feedback delay network with one-pole damping in the loop and a mono input
// spread to a stereo output.
package reverb

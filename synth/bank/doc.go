// Package bank holds the read-only sound-bank model the synth plays from:
// samples, instruments and presets, each made of key/velocity zones.
//
// Objects refer to each other by index handles into the owning [Bank]
// rather than by pointer. A bank is immutable once built and may be shared
// by any number of voices.
package bank

// Package amp simulates a guitar amplifier as a fixed chain of shelving
// filters, two waveshapers and a four-band tone stack.
//
// Every stage processes the whole buffer before the next stage runs.
package amp

package synth

import (
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/mix"
)

// sendEffect is a fully wet mono-in, stereo-out effect.
type sendEffect interface {
	Process(in, left, right []float64)
	Reset()
}

// bus collects per-voice sends for one effect and mixes its return.
type bus struct {
	fx         sendEffect
	in         []float64
	wetL, wetR []float64
	active     bool
}

func newBus(fx sendEffect, blockSize int) bus {
	return bus{
		fx:   fx,
		in:   make([]float64, blockSize),
		wetL: make([]float64, blockSize),
		wetR: make([]float64, blockSize),
	}
}

// begin starts a block of n frames. A bus with zero return level is
// skipped for the whole block.
func (b *bus) begin(n int, level float64) {
	b.active = level > 0
	if b.active {
		core.Zero(b.in[:n])
	}
}

// add sends the mono sum of a voice block at amount.
func (b *bus) add(left, right []float64, amount float64) {
	if !b.active || amount <= 0 {
		return
	}
	in := b.in[:len(left)]
	for i := range in {
		in[i] += 0.5 * amount * (left[i] + right[i])
	}
}

// finish runs the effect and mixes its return into left and right.
func (b *bus) finish(left, right []float64, level float64) {
	if !b.active {
		return
	}
	n := len(left)
	wl, wr := b.wetL[:n], b.wetR[:n]
	b.fx.Process(b.in[:n], wl, wr)
	mix.Gain(wl, level)
	mix.Gain(wr, level)
	mix.Block(left, wl)
	mix.Block(right, wr)
}

package main

import (
	"github.com/cwbudde/algo-synth/dsp/lfo"
)

// ToneCmd plays an LFO waveform on both channels.
type ToneCmd struct {
	Shape      string  `default:"square" enum:"sine,square,sawtooth,triangle" help:"Waveform (sine, square, sawtooth, triangle)."`
	Frequency  float64 `default:"261.6256" help:"Frequency in Hz."`
	Amplitude  float64 `default:"0.5" help:"Peak amplitude."`
	Seconds    float64 `default:"2" help:"Duration in seconds."`
	SampleRate float64 `default:"48000" help:"Sample rate in Hz."`

	sinkFlags `embed:""`
}

func (c *ToneCmd) Run(rc *runContext) error {
	osc, err := lfo.New(c.SampleRate)
	if err != nil {
		return err
	}
	osc.SetFrequency(c.Frequency)

	next := osc.Square
	switch c.Shape {
	case "sine":
		next = osc.Sine
	case "sawtooth":
		next = osc.Sawtooth
	case "triangle":
		next = osc.Triangle
	}

	sink, err := c.open(rc, c.SampleRate)
	if err != nil {
		return err
	}
	frames := int(c.Seconds * c.SampleRate)
	rc.log.Info("playing tone", "shape", c.Shape, "hz", osc.Frequency(), "frames", frames, "realtime", sink.Realtime())
	for range frames {
		x := next() * c.Amplitude
		if err := sink.Send(x, x); err != nil {
			_ = sink.Close()
			return err
		}
	}
	return sink.Close()
}

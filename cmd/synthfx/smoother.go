package main

import (
	"bufio"
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/param"
)

// SmootherCmd prints "sample value" pairs of a smoothed step, optionally
// retargeted mid-ramp.
type SmootherCmd struct {
	SampleRate float64 `default:"1000" help:"Samples per second."`
	Time       float64 `default:"50" help:"Smoothing time in ms."`
	From       float64 `default:"0" help:"Start value."`
	To         float64 `default:"1" help:"Target value."`
	Retarget   float64 `default:"0" help:"Second target, applied at --retarget-at."`
	RetargetAt int     `default:"-1" help:"Sample index of the retarget (-1 disables)."`
	Samples    int     `default:"100" help:"Number of samples to print."`
}

func (c *SmootherCmd) Run(rc *runContext) error {
	s, err := param.NewSmoother(c.Time, c.SampleRate)
	if err != nil {
		return err
	}
	s.Reset(c.From)
	rc.log.Debug("smoothing", "window_samples", s.SmoothingSamples())

	w := bufio.NewWriter(rc.stdout)
	fmt.Fprintf(w, "# smoothing %g ms at %g Hz\n# sample value\n", c.Time, c.SampleRate)
	target := c.To
	for i := range c.Samples {
		if i == c.RetargetAt {
			target = c.Retarget
		}
		fmt.Fprintf(w, "%d %.6f\n", i, s.Process(target))
	}
	return w.Flush()
}

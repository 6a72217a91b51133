package main

import (
	"bufio"
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/envelope"
)

// EnvelopeCmd prints "time_ms level" pairs of a gated envelope.
type EnvelopeCmd struct {
	Kind       string  `default:"dahdsr" enum:"ahdsr,dahdsr" help:"Envelope variant (ahdsr, dahdsr)."`
	Mode       string  `default:"normal" enum:"normal,dls" help:"DAHDSR timing mode (normal, dls)."`
	SampleRate float64 `default:"1000" help:"Ticks per second."`

	Delay   float64 `default:"0" help:"Delay in ms (dahdsr only)."`
	Attack  float64 `default:"100" help:"Attack in ms."`
	Hold    float64 `default:"50" help:"Hold in ms."`
	Decay   float64 `default:"200" help:"Decay in ms."`
	Sustain float64 `default:"0.5" help:"Sustain level (0-1)."`
	Release float64 `default:"300" help:"Release in ms."`

	Gate  float64 `default:"600" help:"Time of the note-off in ms."`
	Total float64 `default:"1200" help:"Length of the trace in ms."`
	Log   bool    `help:"Print the logarithmic level of the dahdsr."`
}

func (c *EnvelopeCmd) Run(rc *runContext) error {
	p := envelope.Params{
		Delay:   c.Delay,
		Attack:  c.Attack,
		Hold:    c.Hold,
		Decay:   c.Decay,
		Sustain: c.Sustain,
		Release: c.Release,
	}

	var (
		gen   envelope.Generator
		level func() float64
	)
	switch c.Kind {
	case "ahdsr":
		e, err := envelope.NewAHDSR(c.SampleRate, p)
		if err != nil {
			return err
		}
		gen, level = e, e.Level
	default:
		mode := envelope.ModeNormal
		if c.Mode == "dls" {
			mode = envelope.ModeDLS
		}
		e, err := envelope.NewDAHDSR(c.SampleRate, mode, p)
		if err != nil {
			return err
		}
		gen, level = e, e.Level
		if c.Log {
			level = e.LogScaleLevel
		}
	}

	ticks := int(c.Total / 1000 * c.SampleRate)
	gate := int(c.Gate / 1000 * c.SampleRate)
	rc.log.Debug("tracing envelope", "kind", c.Kind, "ticks", ticks, "gate", gate)

	w := bufio.NewWriter(rc.stdout)
	fmt.Fprintf(w, "# %s %+v\n# time_ms level\n", c.Kind, p)
	gen.Trigger()
	for i := range ticks {
		if i == gate {
			gen.Release()
		}
		gen.Advance(1)
		fmt.Fprintf(w, "%g %.6f\n", float64(i)*1000/c.SampleRate, level())
	}
	return w.Flush()
}

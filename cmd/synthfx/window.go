package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-synth/dsp/window"
)

// WindowCmd prints the spectral properties of the analysis windows.
type WindowCmd struct {
	Size     int      `default:"1024" help:"Window length in samples."`
	Periodic bool     `help:"Use the periodic (FFT) form instead of the symmetric one."`
	List     bool     `help:"List available window names."`
	Names    []string `arg:"" optional:"" help:"Windows to show (default: all)."`
}

func (c *WindowCmd) Run(rc *runContext) error {
	names := make([]string, 0, len(windowByName))
	for name := range windowByName {
		names = append(names, name)
	}
	sort.Strings(names)

	if c.List {
		for _, n := range names {
			fmt.Fprintln(rc.stdout, n)
		}
		return nil
	}
	if len(c.Names) > 0 {
		names = names[:0]
		for _, n := range c.Names {
			n = strings.ToLower(strings.TrimSpace(n))
			if _, ok := windowByName[n]; !ok {
				rc.log.Warn("unknown window", "name", n)
				continue
			}
			names = append(names, n)
		}
		if len(names) == 0 {
			return fmt.Errorf("no matching window types")
		}
	}

	var opts []window.Option
	if c.Periodic {
		opts = append(opts, window.WithPeriodic())
	}

	tw := tabwriter.NewWriter(rc.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tMain Lobe [bins]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t----------------\n")
	for _, n := range names {
		t := windowByName[n]
		coeffs := window.Generate(t, c.Size, opts...)
		cg, err := window.CoherentGain(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%d\n", n, c.Size, cg, enbw, t.MainLobeBins())
	}
	return tw.Flush()
}

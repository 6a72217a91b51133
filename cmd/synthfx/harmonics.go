package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-synth/dsp/effects/amp"
	"github.com/cwbudde/algo-synth/dsp/window"
	"github.com/cwbudde/algo-synth/measure/harmonics"
)

// HarmonicsCmd drives the amp simulator with a sine and reports its
// harmonic distortion for each drive setting.
type HarmonicsCmd struct {
	Drive      []float64 `default:"0,100,300,1500" help:"Amp drive settings to measure."`
	Frequency  float64   `default:"1000" help:"Test tone frequency in Hz."`
	Amplitude  float64   `default:"0.1" help:"Test tone amplitude."`
	SampleRate float64   `default:"48000" help:"Sample rate in Hz."`
	Length     int       `default:"16384" help:"Analysed samples after the warm-up."`
	Harmonics  int       `default:"9" help:"Number of harmonics to measure."`
	Window     string    `default:"blackman-harris" enum:"hann,blackman,blackman-harris" help:"Analysis window (hann, blackman, blackman-harris)."`
	Flat       bool      `help:"Flatten the tone stack to 0 dB so only the shapers colour the tone."`
}

var windowByName = map[string]window.Type{
	"rectangular":     window.TypeRectangular,
	"hann":            window.TypeHann,
	"blackman":        window.TypeBlackman,
	"blackman-harris": window.TypeBlackmanHarris,
}

func (c *HarmonicsCmd) Run(rc *runContext) error {
	warmup := int(c.SampleRate / 10)
	tw := tabwriter.NewWriter(rc.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Drive\tTHD [%%]\tTHD [dB]\tH2 [dB]\tH3 [dB]\tPeak\n")
	fmt.Fprintf(tw, "-----\t-------\t--------\t-------\t-------\t----\n")

	for _, drive := range c.Drive {
		sim, err := amp.New(c.SampleRate)
		if err != nil {
			return err
		}
		sim.SetDrive(drive)
		if c.Flat {
			sim.SetBassGainDB(0)
			sim.SetTrebleGainDB(0)
			sim.SetPresenceGainDB(0)
		}

		buf := make([]float64, warmup+c.Length)
		for i := range buf {
			buf[i] = c.Amplitude * math.Sin(2*math.Pi*c.Frequency*float64(i)/c.SampleRate)
		}
		sim.Process(buf)

		res, err := harmonics.Analyze(buf[warmup:], harmonics.Config{
			SampleRate:   c.SampleRate,
			Fundamental:  c.Frequency,
			MaxHarmonics: c.Harmonics,
			Window:       windowByName[c.Window],
		})
		if err != nil {
			return fmt.Errorf("drive %g: %w", drive, err)
		}
		rc.log.Debug("measured", "drive", drive, "fundamental", res.Fundamental, "level", res.FundamentalLevel)
		fmt.Fprintf(tw, "%g\t%.3f\t%.1f\t%.1f\t%.1f\t%.3f\n",
			drive, 100*res.THD, res.THDdB(), harmonicDB(res, 0), harmonicDB(res, 1), res.Peak)
	}
	return tw.Flush()
}

func harmonicDB(r harmonics.Result, i int) float64 {
	if i >= len(r.Harmonics) || r.Harmonics[i] <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(r.Harmonics[i])
}

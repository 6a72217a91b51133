// Command synthfx exercises the synthesizer's DSP blocks from the shell.
//
// Usage:
//
//	synthfx [--verbose] <command> [flags]
//
// Examples:
//
//	synthfx tone --shape square | aplay -f FLOAT_LE -c 2 -r 48000
//	synthfx tone --device
//	synthfx amp guitar.f32 --output out.f32 --amp-drive 900
//	synthfx envelope --attack 50 --decay 100 --sustain 0.6 > env.dat
//	synthfx smoother --time 20 --to 1 > ramp.dat
//	synthfx render --notes 60,64,67 --device
//	synthfx harmonics --drive 0,300,1500
//	synthfx window --size 4096 hann blackman
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable debug logging."`
	Version kong.VersionFlag `help:"Show version information."`

	Amp       AmpCmd       `cmd:"" help:"Run f32le stereo audio through distortion and the guitar amp simulator."`
	Envelope  EnvelopeCmd  `cmd:"" help:"Print an envelope trace as gnuplot data."`
	Smoother  SmootherCmd  `cmd:"" help:"Print a parameter smoother ramp as gnuplot data."`
	Tone      ToneCmd      `cmd:"" help:"Play an LFO test tone."`
	Render    RenderCmd    `cmd:"" help:"Play a note sequence through the synth engine."`
	Harmonics HarmonicsCmd `cmd:"" help:"Measure harmonic distortion of the amp simulator."`
	Window    WindowCmd    `cmd:"" help:"Print properties of the analysis windows."`
}

// runContext is bound into every command's Run method.
type runContext struct {
	log    *slog.Logger
	stdout io.Writer
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("synthfx"),
		kong.Description("Test bench for the algo-synth DSP core"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	rc := &runContext{log: newLogger(os.Stderr, cli.Verbose), stdout: os.Stdout}
	err := ctx.Run(rc)
	if err != nil {
		rc.log.Error("command failed", "command", ctx.Command(), "err", err)
		os.Exit(1)
	}
}

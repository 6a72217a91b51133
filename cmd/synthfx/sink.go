package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-synth/output"
	"github.com/cwbudde/algo-synth/output/otosink"
)

// sinkFlags selects where rendered audio goes.
type sinkFlags struct {
	Output    string `short:"o" default:"-" help:"Output file for raw float32 stereo frames (- for stdout)."`
	BigEndian bool   `help:"Write big-endian float32 instead of little-endian."`
	Device    bool   `short:"d" help:"Play on the default audio device instead of writing frames."`
}

func (f sinkFlags) open(rc *runContext, sampleRate float64) (output.Sink, error) {
	if f.Device {
		rc.log.Debug("opening audio device", "sample_rate", sampleRate)
		return otosink.New(int(sampleRate))
	}

	endian := output.LittleEndian
	if f.BigEndian {
		endian = output.BigEndian
	}
	if f.Output == "-" {
		return output.NewPipe(rc.stdout, endian), nil
	}
	file, err := os.Create(f.Output)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	rc.log.Debug("writing frames", "path", f.Output, "endian", f.BigEndian)
	return output.NewPipe(file, endian), nil
}

package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-synth/dsp/effects"
	"github.com/cwbudde/algo-synth/dsp/effects/amp"
	"github.com/cwbudde/algo-synth/output"
)

// AmpCmd runs a raw f32le stereo file through Distortion and the guitar amp
// simulator on both channels.
type AmpCmd struct {
	Input      string  `arg:"" type:"existingfile" help:"Raw float32 little-endian stereo input."`
	SampleRate float64 `default:"48000" help:"Sample rate of the input in Hz."`

	Drive     float64 `default:"1" help:"Distortion drive (>= 0)."`
	Volume    float64 `default:"1" help:"Distortion output volume (0-1)."`
	PreFilter bool    `default:"true" negatable:"" help:"High-pass the input at 100 Hz before clipping."`

	AmpDrive float64 `default:"300" help:"Amp simulator drive (0-1500)."`
	Bass     float64 `default:"-8" help:"Bass gain in dB."`
	Mid      float64 `default:"0" help:"Mid gain in dB."`
	Treble   float64 `default:"-40" help:"Treble gain in dB."`
	Presence float64 `default:"6" help:"Presence gain in dB."`
	Master   float64 `default:"1" help:"Master gain (>= 0)."`

	sinkFlags `embed:""`
}

type ampChannel struct {
	dist *effects.Distortion
	amp  *amp.GuitarAmpSimulator
}

func (c *AmpCmd) newChannel() (ampChannel, error) {
	dist, err := effects.NewDistortion(c.SampleRate,
		effects.WithDistortionDrive(c.Drive),
		effects.WithDistortionVolume(c.Volume),
		effects.WithDistortionPreFilter(c.PreFilter),
	)
	if err != nil {
		return ampChannel{}, err
	}
	sim, err := amp.New(c.SampleRate)
	if err != nil {
		return ampChannel{}, err
	}
	sim.SetDrive(c.AmpDrive)
	sim.SetBassGainDB(c.Bass)
	sim.SetMidGainDB(c.Mid)
	sim.SetTrebleGainDB(c.Treble)
	sim.SetPresenceGainDB(c.Presence)
	sim.SetMasterGain(c.Master)
	return ampChannel{dist: dist, amp: sim}, nil
}

func (c ampChannel) process(buf []float64) {
	c.dist.ProcessInPlace(buf)
	c.amp.Process(buf)
}

func (c *AmpCmd) Run(rc *runContext) error {
	raw, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	left, right := decodeStereoF32LE(raw)
	rc.log.Info("loaded input", "path", c.Input, "frames", len(left))

	l, err := c.newChannel()
	if err != nil {
		return err
	}
	r, err := c.newChannel()
	if err != nil {
		return err
	}
	l.process(left)
	r.process(right)
	rc.log.Debug("processed", "drive", c.Drive, "amp_drive", c.AmpDrive)

	sink, err := c.open(rc, c.SampleRate)
	if err != nil {
		return err
	}
	if err := output.SendBlock(sink, left, right); err != nil {
		_ = sink.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return sink.Close()
}

// decodeStereoF32LE splits interleaved float32 little-endian frames. A
// trailing partial frame is dropped.
func decodeStereoF32LE(raw []byte) ([]float64, []float64) {
	frames := len(raw) / 8
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := range frames {
		left[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[8*i:])))
		right[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[8*i+4:])))
	}
	return left, right
}

package main

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/midi"
	"github.com/cwbudde/algo-synth/synth"
	"github.com/cwbudde/algo-synth/synth/bank"
)

// RenderCmd plays notes one after another on a looping sine instrument.
type RenderCmd struct {
	Notes      []uint8 `default:"60,64,67,72" help:"MIDI note numbers to play in order."`
	Chord      bool    `help:"Start all notes together instead of in sequence."`
	NoteMs     float64 `default:"400" help:"Length of each note in ms."`
	TailMs     float64 `default:"200" help:"Silence rendered after the last note-off in ms."`
	Velocity   uint8   `default:"100" help:"Note-on velocity (1-127)."`
	Channel    uint8   `default:"0" help:"MIDI channel (0-15)."`
	SampleRate float64 `default:"48000" help:"Sample rate in Hz."`
	Polyphony  int     `default:"64" help:"Voice pool size."`
	BufferSize int     `default:"128" help:"Render buffer size in frames."`
	Gain       float64 `default:"1" help:"Output gain (0-20)."`
	Reverb     float64 `default:"0" help:"Reverb return level (0-1)."`
	ReverbSend uint8   `default:"40" help:"Channel reverb send, CC 91 (0-127)."`
	RT60       float64 `name:"rt60" default:"1.8" help:"Reverb decay time in seconds."`
	Chorus     float64 `default:"0" help:"Chorus return level (0-1)."`
	ChorusSend uint8   `default:"40" help:"Channel chorus send, CC 93 (0-127)."`

	sinkFlags `embed:""`
}

func (c *RenderCmd) Run(rc *runContext) error {
	if c.Velocity == 0 || c.Velocity > 127 {
		return fmt.Errorf("velocity must be in 1-127: %d", c.Velocity)
	}
	b := bank.SingleSample(bank.SineSample("sine", uint32(c.SampleRate), 69, 64))

	sink, err := c.open(rc, c.SampleRate)
	if err != nil {
		return err
	}
	create := synth.DefaultCreateSettings()
	create.Polyphony = c.Polyphony
	create.RenderBufferSize = c.BufferSize
	eng, err := synth.NewEngine(b, sink, create, core.WithSampleRate(c.SampleRate))
	if err != nil {
		_ = sink.Close()
		return err
	}
	return errors.Join(c.play(rc, eng), eng.Close())
}

func (c *RenderCmd) play(rc *runContext, eng *synth.Engine) error {
	s := eng.Settings()
	s.OutputGain = c.Gain
	s.ReverbLevel = c.Reverb
	s.ChorusLevel = c.Chorus
	eng.SetSettings(s)
	eng.Reverb().SetRT60(c.RT60)

	ch := c.Channel & 0x0f
	noteFrames := int(core.MsToSamples(c.NoteMs, c.SampleRate))
	send := func(msg ...byte) error {
		if err := eng.HandleMessage(msg); err != nil {
			return fmt.Errorf("midi % x: %w", msg, err)
		}
		return nil
	}

	if err := send(0xb0|ch, midi.CCReverbSend, c.ReverbSend&0x7f); err != nil {
		return err
	}
	if err := send(0xb0|ch, midi.CCChorusSend, c.ChorusSend&0x7f); err != nil {
		return err
	}
	rc.log.Info("rendering", "notes", len(c.Notes), "chord", c.Chord, "block", eng.BlockSize(), "rate", eng.SampleRate())
	if c.Chord {
		for _, n := range c.Notes {
			if err := send(0x90|ch, n&0x7f, c.Velocity); err != nil {
				return err
			}
		}
		if err := eng.Stream(noteFrames); err != nil {
			return err
		}
		rc.log.Debug("chord sounding", "voices", eng.ActiveVoices())
		for _, n := range c.Notes {
			if err := send(0x80|ch, n&0x7f, 0); err != nil {
				return err
			}
		}
	} else {
		for _, n := range c.Notes {
			if err := send(0x90|ch, n&0x7f, c.Velocity); err != nil {
				return err
			}
			if err := eng.Stream(noteFrames); err != nil {
				return err
			}
			if err := send(0x80|ch, n&0x7f, 0); err != nil {
				return err
			}
			rc.log.Debug("note done", "key", n, "voices", eng.ActiveVoices())
		}
	}
	if err := send(0xb0|ch, midi.CCAllNotesOff, 0); err != nil {
		return err
	}
	if err := eng.Stream(int(core.MsToSamples(c.TailMs, c.SampleRate))); err != nil {
		return err
	}

	for _, v := range eng.Voices() {
		rc.log.Debug("voice still sounding", "key", v.Key, "score", v.Score)
	}
	rc.log.Info("done", "frames", eng.Frames(), "dropped", eng.Dropped())
	return nil
}

package synth

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/effects"
	"github.com/cwbudde/algo-synth/dsp/effects/reverb"
	"github.com/cwbudde/algo-synth/dsp/mix"
	"github.com/cwbudde/algo-synth/midi"
	"github.com/cwbudde/algo-synth/output"
	"github.com/cwbudde/algo-synth/synth/bank"
	"github.com/cwbudde/algo-synth/synth/voice"
)

// ErrNoSink is returned by Stream when the engine has no output.
var ErrNoSink = errors.New("synth: no output sink")

type slot struct {
	v       *voice.Voice
	channel uint8

	pendingOff bool // note-off arrived before the minimum note length
	sustained  bool // note-off held by the sustain pedal

	baseCutoff float64
	baseQ      float64
	basePan    float64
}

// Engine renders MIDI performance data with the instruments of a bank.
type Engine struct {
	cfg      core.ProcessorConfig
	create   CreateSettings
	settings Settings
	bank     *bank.Bank
	sink     output.Sink
	reverb   *reverb.Reverb
	chorus   *effects.Chorus

	channels [numChannels]channel
	slots    []slot

	masterVolume float64
	masterPan    float64
	coarseSemis  float64
	fineCents    float64

	minNoteSamples int
	dropped        int
	frames         int64

	voiceL, voiceR []float64
	outL, outR     []float64
	reverbBus      bus
	chorusBus      bus
}

var _ midi.Handler = (*Engine)(nil)

// NewEngine returns an engine playing b into sink. sink may be nil when the
// caller only uses Render. create is clamped to its ranges; its
// RenderBufferSize becomes the block size unless opts override it.
func NewEngine(b *bank.Bank, sink output.Sink, create CreateSettings, opts ...core.ProcessorOption) (*Engine, error) {
	if b == nil {
		return nil, errors.New("synth engine requires a bank")
	}
	create = create.Clamped()
	all := append([]core.ProcessorOption{core.WithBlockSize(create.RenderBufferSize)}, opts...)
	cfg := core.ApplyProcessorOptions(all...)
	create.RenderBufferSize = cfg.BlockSize

	e := &Engine{
		cfg:            cfg,
		create:         create,
		settings:       DefaultSettings(),
		bank:           b,
		sink:           sink,
		slots:          make([]slot, create.Polyphony),
		minNoteSamples: int(core.MsToSamples(float64(create.MinNoteLengthMs), cfg.SampleRate)),
		voiceL:         make([]float64, cfg.BlockSize),
		voiceR:         make([]float64, cfg.BlockSize),
		outL:           make([]float64, cfg.BlockSize),
		outR:           make([]float64, cfg.BlockSize),
	}
	rev, err := reverb.New(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("synth reverb: %w", err)
	}
	cho, err := effects.NewChorus(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("synth chorus: %w", err)
	}
	e.reverb, e.chorus = rev, cho
	e.reverbBus = newBus(rev, cfg.BlockSize)
	e.chorusBus = newBus(cho, cfg.BlockSize)
	for i := range e.slots {
		v, err := voice.New(cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("synth voice %d: %w", i, err)
		}
		e.slots[i].v = v
	}
	e.Reset()
	return e, nil
}

// SampleRate returns the render sample rate.
func (e *Engine) SampleRate() float64 { return e.cfg.SampleRate }

// BlockSize returns the number of frames rendered per block.
func (e *Engine) BlockSize() int { return e.cfg.BlockSize }

// CreateSettings returns the clamped construction settings.
func (e *Engine) CreateSettings() CreateSettings { return e.create }

// Settings returns the runtime settings.
func (e *Engine) Settings() Settings { return e.settings }

// SetSettings replaces the runtime settings, clamped to their ranges.
func (e *Engine) SetSettings(s Settings) { e.settings = s.Clamped() }

// Reverb returns the send reverb so its decay and damping can be tuned.
func (e *Engine) Reverb() *reverb.Reverb { return e.reverb }

// Chorus returns the send chorus.
func (e *Engine) Chorus() *effects.Chorus { return e.chorus }

// Dropped returns how many note layers could not start because no preset,
// zone or free voice was available.
func (e *Engine) Dropped() int { return e.dropped }

// Frames returns the number of frames rendered so far.
func (e *Engine) Frames() int64 { return e.frames }

// Reset silences every voice and returns channels and master controls to
// their power-on state.
func (e *Engine) Reset() {
	for i := range e.slots {
		e.slots[i].v.Kill()
		e.slots[i].pendingOff = false
		e.slots[i].sustained = false
	}
	for i := range e.channels {
		e.channels[i].reset(i)
	}
	e.reverb.Reset()
	e.chorus.Reset()
	e.masterVolume = 1
	e.masterPan = 0
	e.coarseSemis = 0
	e.fineCents = 0
}

// HandleMessage decodes and applies one raw MIDI message.
func (e *Engine) HandleMessage(msg []byte) error {
	m, err := midi.Decode(msg)
	if err != nil {
		return err
	}
	if m.Kind == midi.SysEx {
		return e.HandleSysEx(m.Vendor, m.Data)
	}
	midi.Deliver(e, m)
	return nil
}

// NoteOn starts every region of the channel's preset that covers key and
// velocity. A velocity of 0 is a note-off.
func (e *Engine) NoteOn(ch, key, velocity uint8) {
	if velocity == 0 {
		e.NoteOff(ch, key)
		return
	}
	ch &= 0x0f
	preset, err := e.preset(ch)
	if err != nil {
		e.dropped++
		return
	}
	regions, err := e.bank.Resolve(preset, key, velocity)
	if err != nil {
		e.dropped++
		return
	}

	for i := range e.slots {
		s := &e.slots[i]
		if s.v.Active() && s.channel == ch && s.v.Key() == key && !s.v.Released() {
			e.release(s)
		}
	}

	c := &e.channels[ch]
	for _, r := range regions {
		s := e.freeSlot()
		if s == nil {
			e.dropped++
			continue
		}
		s.channel = ch
		s.pendingOff = false
		s.sustained = false
		s.v.Load(r, c.inputs(key))
		s.v.Attack(key, velocity)
		vals := s.v.Values()
		s.baseCutoff = vals.LowPassCutoffHz()
		s.baseQ = vals.LowPassQFactor()
		s.basePan = vals.PanPosition()
		e.applyChannel(s)
	}
}

// NoteOff releases the sounding voices of key, deferring the release while
// the sustain pedal is down or the note is shorter than the minimum length.
func (e *Engine) NoteOff(ch, key uint8) {
	ch &= 0x0f
	c := &e.channels[ch]
	for i := range e.slots {
		s := &e.slots[i]
		if !s.v.Active() || s.channel != ch || s.v.Key() != key || s.v.Released() || s.sustained || s.pendingOff {
			continue
		}
		switch {
		case c.sustainDown():
			s.sustained = true
		case s.v.Age() < e.minNoteSamples:
			s.pendingOff = true
		default:
			s.v.Release()
		}
	}
}

func (e *Engine) PolyAftertouch(ch, key, pressure uint8) {
	e.channels[ch&0x0f].poly[key&0x7f] = pressure
}

func (e *Engine) ChannelAftertouch(ch, pressure uint8) {
	e.channels[ch&0x0f].pressure = pressure
}

// ProgramChange selects the preset used by the next notes on ch.
func (e *Engine) ProgramChange(ch, program uint8) {
	e.channels[ch&0x0f].program = program
}

// PitchBend moves the pitch of every voice on ch.
func (e *Engine) PitchBend(ch uint8, value uint16) {
	ch &= 0x0f
	e.channels[ch].bend = min(value, 0x3fff)
	e.updateChannel(ch)
}

// ControlChange stores the controller value and applies its effect.
func (e *Engine) ControlChange(ch, cc, value uint8) {
	ch &= 0x0f
	cc &= 0x7f
	c := &e.channels[ch]
	if !midi.IsChannelMode(cc) {
		c.cc[cc] = value
	}

	switch cc {
	case midi.CCSustain:
		if value < 64 {
			e.releaseSustained(ch)
		}
	case midi.CCRPNMSB:
		c.rpnMSB = value
	case midi.CCRPNLSB:
		c.rpnLSB = value
	case midi.CCNRPNMSB, midi.CCNRPNLSB:
		c.rpnMSB, c.rpnLSB = rpnNull, rpnNull
	case midi.CCDataEntryMSB:
		c.dataEntry(false, value)
		e.updateChannel(ch)
	case midi.CCDataEntryLSB:
		c.dataEntry(true, value)
		e.updateChannel(ch)
	case midi.CCPan, midi.CCCutoff, midi.CCResonance:
		e.updateChannel(ch)
	case midi.CCAllSoundOff:
		for i := range e.slots {
			if e.slots[i].channel == ch {
				e.slots[i].v.Kill()
			}
		}
	case midi.CCResetControllers:
		c.resetControllers()
		e.releaseSustained(ch)
		e.updateChannel(ch)
	case midi.CCAllNotesOff, midi.CCOmniOff, midi.CCOmniOn, midi.CCMonoOn, midi.CCPolyOn:
		for i := range e.slots {
			s := &e.slots[i]
			if s.v.Active() && s.channel == ch {
				e.release(s)
			}
		}
	}
}

// SysEx implements midi.Handler. Unsupported messages are ignored; use
// HandleSysEx to see why.
func (e *Engine) SysEx(vendor midi.VendorID, data []byte) {
	_ = e.HandleSysEx(vendor, data)
}

func (e *Engine) release(s *slot) {
	s.pendingOff = false
	s.sustained = false
	s.v.Release()
}

func (e *Engine) releaseSustained(ch uint8) {
	for i := range e.slots {
		s := &e.slots[i]
		if s.v.Active() && s.channel == ch && s.sustained {
			e.release(s)
		}
	}
}

func (e *Engine) freeSlot() *slot {
	for i := range e.slots {
		if e.slots[i].v.Finished() {
			return &e.slots[i]
		}
	}
	return nil
}

// preset finds the channel's preset, falling back to bank 0 and then to
// program 0. Drum channels look for drum presets first.
func (e *Engine) preset(ch uint8) (*bank.Preset, error) {
	c := &e.channels[ch]
	if c.drum {
		var first *bank.Preset
		for i := range e.bank.Presets {
			p := &e.bank.Presets[i]
			if p.Type != bank.Drum {
				continue
			}
			if uint8(p.Program) == c.program {
				return p, nil
			}
			if first == nil {
				first = p
			}
		}
		if first != nil {
			return first, nil
		}
	}
	p, err := e.bank.FindPreset(c.cc[midi.CCBankSelectMSB], c.cc[midi.CCBankSelectLSB], uint16(c.program))
	if err == nil {
		return p, nil
	}
	if p, err = e.bank.FindPreset(0, 0, uint16(c.program)); err == nil {
		return p, nil
	}
	return e.bank.FindPreset(0, 0, 0)
}

func (e *Engine) applyChannel(s *slot) {
	c := &e.channels[s.channel]
	s.v.SetPitchBend(c.bendSemitones() + e.coarseSemis + e.fineCents/100)
	s.v.SetPan(core.Clamp(s.basePan+c.pan(), -1, 1))
	s.v.SetFilterCutoff(s.baseCutoff * c.cutoffScale())
	s.v.SetFilterQ(s.baseQ * c.qScale())
}

func (e *Engine) updateChannel(ch uint8) {
	for i := range e.slots {
		s := &e.slots[i]
		if s.v.Active() && s.channel == ch {
			e.applyChannel(s)
		}
	}
}

func (e *Engine) updateAll() {
	for i := range e.slots {
		if s := &e.slots[i]; s.v.Active() {
			e.applyChannel(s)
		}
	}
}

// ActiveVoices returns the number of sounding voices.
func (e *Engine) ActiveVoices() int {
	n := 0
	for i := range e.slots {
		if e.slots[i].v.Active() {
			n++
		}
	}
	return n
}

// Render fills left and right with the next frames of the mix. Only the
// common prefix of the two slices is written.
func (e *Engine) Render(left, right []float64) {
	n := min(len(left), len(right))
	for off := 0; off < n; off += e.cfg.BlockSize {
		end := min(off+e.cfg.BlockSize, n)
		e.renderBlock(left[off:end], right[off:end])
	}
}

func (e *Engine) renderBlock(left, right []float64) {
	n := len(left)
	core.Zero(left)
	core.Zero(right)
	vl, vr := e.voiceL[:n], e.voiceR[:n]
	e.reverbBus.begin(n, e.settings.ReverbLevel)
	e.chorusBus.begin(n, e.settings.ChorusLevel)

	for i := range e.slots {
		s := &e.slots[i]
		if !s.v.Active() {
			continue
		}
		s.v.Render(vl, vr)
		ch := &e.channels[s.channel]
		g := ch.gain()
		mix.Gain(vl, g)
		mix.Gain(vr, g)
		mix.Block(left, vl)
		mix.Block(right, vr)
		e.reverbBus.add(vl, vr, ch.send(midi.CCReverbSend))
		e.chorusBus.add(vl, vr, ch.send(midi.CCChorusSend))
	}
	e.reverbBus.finish(left, right, e.settings.ReverbLevel)
	e.chorusBus.finish(left, right, e.settings.ChorusLevel)

	g := e.settings.OutputGain * e.masterVolume
	mix.Gain(left, g*min(1, 1-e.masterPan))
	mix.Gain(right, g*min(1, 1+e.masterPan))

	for i := range e.slots {
		s := &e.slots[i]
		if s.pendingOff && s.v.Active() && s.v.Age() >= e.minNoteSamples {
			if e.channels[s.channel].sustainDown() {
				s.pendingOff = false
				s.sustained = true
			} else {
				e.release(s)
			}
		}
	}
	e.frames += int64(n)
}

// Stream renders frames and pushes them to the sink block by block.
func (e *Engine) Stream(frames int) error {
	if e.sink == nil {
		return ErrNoSink
	}
	for frames > 0 {
		n := min(frames, e.cfg.BlockSize)
		e.Render(e.outL[:n], e.outR[:n])
		if err := output.SendBlock(e.sink, e.outL[:n], e.outR[:n]); err != nil {
			return err
		}
		frames -= n
	}
	return nil
}

// Close closes the sink.
func (e *Engine) Close() error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Close()
}

// VoiceInfo describes one sounding voice.
type VoiceInfo struct {
	Channel    uint8
	Key        uint8
	Velocity   uint8
	AgeSeconds float64
	Level      float64
	Percussion bool
	Released   bool
	Sustained  bool

	// Score is the overflow priority; lower is dropped first.
	Score float64
}

// Voices reports every sounding voice with its overflow priority score.
func (e *Engine) Voices() []VoiceInfo {
	var out []VoiceInfo
	for i := range e.slots {
		s := &e.slots[i]
		if !s.v.Active() {
			continue
		}
		info := VoiceInfo{
			Channel:    s.channel,
			Key:        s.v.Key(),
			Velocity:   s.v.Velocity(),
			AgeSeconds: float64(s.v.Age()) / e.cfg.SampleRate,
			Level:      s.v.Level(),
			Percussion: e.channels[s.channel].drum,
			Released:   s.v.Released(),
			Sustained:  s.sustained,
		}
		info.Score = e.settings.Overflow.PriorityScore(info.AgeSeconds, info.Level, info.Percussion, info.Released, info.Sustained)
		out = append(out, info)
	}
	return out
}

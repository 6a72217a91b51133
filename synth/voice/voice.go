package voice

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/articulation"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/filter/eq"
	"github.com/cwbudde/algo-synth/dsp/interp"
	"github.com/cwbudde/algo-synth/dsp/param"
	"github.com/cwbudde/algo-synth/synth/bank"
)

const (
	// controlInterval is how many samples share one set of filter
	// coefficients while the cutoff glides.
	controlInterval = 16

	defaultCutoffSmoothingMs = 5.0

	minCutoffHz = 20.0
)

// Voice plays one region. The zero value is not usable; call New.
type Voice struct {
	sampleRate float64

	region bank.Region
	unit   articulation.Unit
	inputs articulation.Inputs
	values articulation.Values

	key      uint8
	velocity uint8

	pos      float64
	step     float64
	bend     float64
	looping  bool
	active   bool
	released bool
	age      int

	gain         float64
	panL, panR   float64
	cutoffTarget float64
	cutoff       float64
	q            float64

	env      *envelope.DAHDSR
	filterL  *eq.Filter
	filterR  *eq.Filter
	smoother *param.Smoother
	cutoffs  []float64
}

// New returns an idle voice rendering at sampleRate.
func New(sampleRate float64) (*Voice, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("voice sample rate must be > 0: %f", sampleRate)
	}
	env, err := envelope.NewDAHDSR(sampleRate, envelope.ModeDLS, envelope.DefaultParams())
	if err != nil {
		return nil, err
	}
	filterL, err := eq.New(sampleRate)
	if err != nil {
		return nil, err
	}
	filterR, err := eq.New(sampleRate)
	if err != nil {
		return nil, err
	}
	smoother, err := param.NewSmoother(defaultCutoffSmoothingMs, sampleRate)
	if err != nil {
		return nil, err
	}
	v := &Voice{
		sampleRate: sampleRate,
		values:     articulation.DefaultValues(),
		env:        env,
		filterL:    filterL,
		filterR:    filterR,
		smoother:   smoother,
		q:          math.Sqrt2 / 2,
	}
	v.cutoffTarget = core.Clamp(v.values.LowPassCutoffHz(), minCutoffHz, 0.45*sampleRate)
	v.cutoff = v.cutoffTarget
	v.filterL.LowPass(v.cutoff, v.q)
	v.filterR.LowPass(v.cutoff, v.q)
	v.SetPan(0)
	return v, nil
}

// Load assigns the region the next Attack plays. inputs supplies the
// channel's controller state for the region's articulators; nil reads every
// source as 0.
func (v *Voice) Load(r bank.Region, inputs articulation.Inputs) {
	v.region = r
	v.unit = articulation.Unit{Articulators: r.Articulators()}
	if inputs == nil {
		inputs = func(articulation.Source) float64 { return 0 }
	}
	v.inputs = inputs
}

// Attack starts the loaded region at key and velocity. Velocity scales the
// amplitude linearly on top of the articulated gain.
func (v *Voice) Attack(key, velocity uint8) {
	s := v.region.Sample
	if s == nil {
		return
	}
	v.key, v.velocity = key, velocity

	v.values = articulation.DefaultValues()
	v.unit.Apply(&v.values, v.noteInputs)

	v.env.Reset()
	p := v.values.VolumeEnvelope()
	v.env.SetDelay(p.Delay)
	v.env.SetAttack(p.Attack)
	v.env.SetHold(p.Hold)
	v.env.SetDecay(p.Decay)
	v.env.SetSustain(p.Sustain)
	v.env.SetRelease(p.Release)
	v.env.Trigger()

	v.gain = v.values.GainLinear() * float64(velocity) / 127
	v.SetPan(v.values.PanPosition())

	v.q = v.values.LowPassQFactor()
	v.cutoffTarget = v.clampCutoff(v.values.LowPassCutoffHz())
	v.smoother.Reset(v.cutoffTarget)
	v.cutoff = v.cutoffTarget
	v.filterL.LowPass(v.cutoff, v.q)
	v.filterR.LowPass(v.cutoff, v.q)
	v.filterL.Reset()
	v.filterR.Reset()

	root := float64(s.BaseKey) - float64(s.Correction)/100
	semis := float64(key) - root + v.values.PitchSemitones()
	v.step = float64(s.SampleRate) / v.sampleRate * math.Exp2(semis/12)

	v.pos = float64(s.Start)
	v.looping = s.HasLoop()
	v.active = true
	v.released = false
	v.age = 0
}

func (v *Voice) noteInputs(src articulation.Source) float64 {
	switch src {
	case articulation.SourceNoteOnVelocity:
		return float64(v.velocity)
	case articulation.SourceNoteNumber:
		return float64(v.key)
	default:
		return v.inputs(src)
	}
}

// Release enters the envelope release. Until-released loops stop looping
// and play out to the sample end.
func (v *Voice) Release() {
	if !v.active || v.released {
		return
	}
	v.released = true
	if v.region.Sample != nil && v.region.Sample.LoopType == bank.UntilReleased {
		v.looping = false
	}
	v.env.Release()
}

// Kill silences the voice immediately.
func (v *Voice) Kill() {
	v.active = false
	v.env.Reset()
}

// SetFilterCutoff glides the low-pass corner to hz.
func (v *Voice) SetFilterCutoff(hz float64) {
	v.cutoffTarget = v.clampCutoff(hz)
}

// SetFilterQ sets the low-pass quality factor (> 0).
func (v *Voice) SetFilterQ(q float64) {
	if q > 0 && !math.IsInf(q, 0) {
		v.q = q
		v.filterL.LowPass(v.cutoff, v.q)
		v.filterR.LowPass(v.cutoff, v.q)
	}
}

// SetPitchBend offsets playback pitch by semitones.
func (v *Voice) SetPitchBend(semitones float64) {
	if math.IsNaN(semitones) {
		semitones = 0
	}
	v.bend = semitones
}

// SetPan places the voice in [-1, 1] with a constant-power law.
func (v *Voice) SetPan(pos float64) {
	if math.IsNaN(pos) {
		pos = 0
	}
	angle := (core.Clamp(pos, -1, 1) + 1) * math.Pi / 4
	v.panL, v.panR = math.Cos(angle), math.Sin(angle)
}

// SetSmoothingTime sets the cutoff glide time in ms.
func (v *Voice) SetSmoothingTime(ms float64) { v.smoother.SetSmoothingTime(ms) }

func (v *Voice) clampCutoff(hz float64) float64 {
	if math.IsNaN(hz) {
		return v.cutoffTarget
	}
	return core.Clamp(hz, minCutoffHz, 0.45*v.sampleRate)
}

// Key returns the note number of the last Attack.
func (v *Voice) Key() uint8 { return v.key }

// Velocity returns the velocity of the last Attack.
func (v *Voice) Velocity() uint8 { return v.velocity }

// Values returns the articulated parameters computed at the last Attack.
func (v *Voice) Values() articulation.Values { return v.values }

// Active reports whether the voice is producing sound.
func (v *Voice) Active() bool { return v.active }

// Released reports whether Release was called since the last Attack.
func (v *Voice) Released() bool { return v.released }

// Finished reports whether the voice has nothing more to play.
func (v *Voice) Finished() bool { return !v.active }

// Age returns the number of samples rendered since Attack.
func (v *Voice) Age() int { return v.age }

// Level returns the current envelope gain.
func (v *Voice) Level() float64 { return v.env.LogScaleLevel() }

// Envelope exposes the volume envelope.
func (v *Voice) Envelope() *envelope.DAHDSR { return v.env }

// Render overwrites left and right with the voice output. Idle voices
// render silence. Only the common prefix of the two slices is written.
func (v *Voice) Render(left, right []float64) {
	n := min(len(left), len(right))
	core.Zero(left[:n])
	core.Zero(right[:n])
	if !v.active {
		return
	}

	v.cutoffs = core.EnsureLen(v.cutoffs, n)
	v.smoother.ProcessBlock(v.cutoffs, v.cutoffTarget)

	s := v.region.Sample
	stereo := s.Type == bank.Stereo
	ratio := math.Exp2(v.bend / 12)

	for i := range n {
		if i%controlInterval == 0 && v.cutoffs[i] != v.cutoff {
			v.cutoff = v.cutoffs[i]
			v.filterL.LowPass(v.cutoff, v.q)
			v.filterR.LowPass(v.cutoff, v.q)
		}

		v.env.Process(1)
		if v.env.Status() == envelope.StatusFinished || !v.inRange() {
			v.active = false
			return
		}
		amp := v.env.LogScaleLevel() * v.gain

		l := v.filterL.ProcessSample(v.read(0))
		if stereo {
			r := v.filterR.ProcessSample(v.read(1))
			left[i] = l * amp * math.Sqrt2 * v.panL
			right[i] = r * amp * math.Sqrt2 * v.panR
		} else {
			left[i] = l * amp * v.panL
			right[i] = l * amp * v.panR
		}

		v.advance(ratio)
		v.age++
	}
}

func (v *Voice) inRange() bool {
	return v.pos < float64(v.region.Sample.EndFrame())
}

func (v *Voice) advance(ratio float64) {
	v.pos += v.step * ratio
	if v.looping {
		s := v.region.Sample
		start, end := float64(s.LoopStart), float64(s.LoopEnd)
		for v.pos >= end {
			v.pos -= end - start
		}
	}
}

// read interpolates channel ch at the current position.
func (v *Voice) read(ch int) float64 {
	i := int(v.pos)
	frac := v.pos - float64(i)
	return interp.Hermite4(frac, v.frame(i-1, ch), v.frame(i, ch), v.frame(i+1, ch), v.frame(i+2, ch))
}

// frame returns frame i, wrapping past the loop end while looping.
func (v *Voice) frame(i, ch int) float64 {
	s := v.region.Sample
	if v.looping {
		start, end := int(s.LoopStart), int(s.LoopEnd)
		for i >= end {
			i -= end - start
		}
	}
	if i < int(s.Start) || i >= s.EndFrame() {
		return 0
	}
	return s.At(i, ch)
}

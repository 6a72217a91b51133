package amp

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
	"github.com/cwbudde/algo-synth/dsp/filter/design"
	"github.com/cwbudde/algo-synth/dsp/filter/eq"
	"github.com/cwbudde/algo-synth/dsp/mix"
	"github.com/cwbudde/algo-synth/dsp/shaper"
)

// MaxDrive is the largest accepted drive amount.
const MaxDrive = 1500.0

// MaxToneGainDB bounds the tone stack and cut filter gains to
// [-MaxToneGainDB, MaxToneGainDB].
const MaxToneGainDB = 60.0

const (
	bassFreq     = 100.0
	midFreq      = 1700.0
	trebleFreq   = 6500.0
	presenceFreq = 3900.0
	highCutFreq  = 18000.0
	lowCutFreq   = 60.0

	defaultBassDB     = -8.0
	defaultMidDB      = 0.0
	defaultTrebleDB   = -40.0
	defaultPresenceDB = 6.0

	toneQ  = math.Sqrt2 / 2
	toneBW = 1.0
)

// Tone stack stage order.
const (
	stageBass = iota
	stageMid
	stageTreble
	stagePresence
	stageHighCut
	stageLowCut
	numStages
)

// Option mutates simulator construction parameters.
type Option func(*config) error

type config struct {
	resolution int
}

// WithCurveResolution sets the number of points in the waveshaper tables.
func WithCurveResolution(n int) Option {
	return func(cfg *config) error {
		if n < 4 {
			return fmt.Errorf("amp curve resolution must be >= 4: %d", n)
		}
		cfg.resolution = n
		return nil
	}
}

// GuitarAmpSimulator is the amp chain:
//
//	input gain → low shelf 720 Hz → low shelf 320 Hz → preamp gain →
//	asymmetric shaper → high-pass 6 Hz → low shelf 720 Hz → preamp gain →
//	drive shaper → output gain → bass / mid / treble / presence →
//	high cut / low cut → master gain
//
// Only the drive shaper, the tone stack and the master gain change after
// construction.
type GuitarAmpSimulator struct {
	sampleRate float64

	inputGain  float64
	lowShelf1  *eq.Filter
	lowShelf2  *eq.Filter
	preamp1    float64
	shaper1    *shaper.WaveShaper
	highPass   *eq.Filter
	lowShelf3  *eq.Filter
	preamp2    float64
	shaper2    *shaper.WaveShaper
	outputGain float64

	curves *shaper.CurveFactory
	drive  float64

	tone       *biquad.Chain
	bassDB     float64
	midDB      float64
	trebleDB   float64
	presenceDB float64
	highCutDB  float64
	lowCutDB   float64

	masterGain float64
}

// New creates an amp with drive 0 and the default tone stack.
func New(sampleRate float64, opts ...Option) (*GuitarAmpSimulator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("amp sample rate must be > 0: %f", sampleRate)
	}
	cfg := config{resolution: shaper.DefaultResolution}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	curves, err := shaper.NewCurveFactory(cfg.resolution)
	if err != nil {
		return nil, err
	}

	a := &GuitarAmpSimulator{
		sampleRate: sampleRate,
		inputGain:  1,
		preamp1:    1,
		preamp2:    1,
		outputGain: 1,
		masterGain: 1,
		curves:     curves,
		bassDB:     defaultBassDB,
		midDB:      defaultMidDB,
		trebleDB:   defaultTrebleDB,
		presenceDB: defaultPresenceDB,
	}

	if a.lowShelf1, err = newFilter(sampleRate, func(f *eq.Filter) { f.LowShelf(720, 1, -6) }); err != nil {
		return nil, err
	}
	if a.lowShelf2, err = newFilter(sampleRate, func(f *eq.Filter) { f.LowShelf(320, 1, -5) }); err != nil {
		return nil, err
	}
	if a.highPass, err = newFilter(sampleRate, func(f *eq.Filter) { f.HighPass(6, toneQ) }); err != nil {
		return nil, err
	}
	if a.lowShelf3, err = newFilter(sampleRate, func(f *eq.Filter) { f.LowShelf(720, 1, -6) }); err != nil {
		return nil, err
	}
	if a.shaper1, err = shaper.NewWaveShaper(curves.Asymmetric()); err != nil {
		return nil, err
	}
	if a.shaper2, err = shaper.NewWaveShaper(curves.Standard(0)); err != nil {
		return nil, err
	}

	coeffs := make([]biquad.Coefficients, numStages)
	a.tone = biquad.NewChain(coeffs...)
	for stage := range numStages {
		a.redesign(stage)
	}
	return a, nil
}

func newFilter(sampleRate float64, shape func(*eq.Filter)) (*eq.Filter, error) {
	f, err := eq.New(sampleRate)
	if err != nil {
		return nil, err
	}
	shape(f)
	return f, nil
}

func (a *GuitarAmpSimulator) redesign(stage int) {
	fs := a.sampleRate
	var c biquad.Coefficients
	switch stage {
	case stageBass:
		c = design.LowShelf(bassFreq, toneQ, a.bassDB, fs)
	case stageMid:
		c = design.Peaking(midFreq, toneBW, a.midDB, fs)
	case stageTreble:
		c = design.HighShelf(trebleFreq, toneQ, a.trebleDB, fs)
	case stagePresence:
		c = design.Peaking(presenceFreq, toneBW, a.presenceDB, fs)
	case stageHighCut:
		c = design.Peaking(highCutFreq, toneBW, a.highCutDB, fs)
	case stageLowCut:
		c = design.Peaking(lowCutFreq, toneBW, a.lowCutDB, fs)
	}
	a.tone.SetStage(stage, c)
}

// SetDrive sets the drive of the second shaper, clamped to [0, MaxDrive],
// and rebuilds its curve.
func (a *GuitarAmpSimulator) SetDrive(drive float64) {
	if math.IsNaN(drive) {
		drive = 0
	}
	a.drive = core.Clamp(drive, 0, MaxDrive)
	// Curves from the factory always satisfy the shaper's length check.
	_ = a.shaper2.SetCurve(a.curves.Standard(a.drive))
}

// Drive returns the current drive.
func (a *GuitarAmpSimulator) Drive() float64 { return a.drive }

// toneGain clamps db to the tone gain range. NaN keeps the current gain.
func toneGain(current, db float64) float64 {
	if math.IsNaN(db) {
		return current
	}
	return core.Clamp(db, -MaxToneGainDB, MaxToneGainDB)
}

// SetBassGainDB sets the 100 Hz low-shelf gain. Gains are clamped to
// ±MaxToneGainDB and NaN is ignored, here and in the other tone setters.
func (a *GuitarAmpSimulator) SetBassGainDB(db float64) {
	a.bassDB = toneGain(a.bassDB, db)
	a.redesign(stageBass)
}

// SetMidGainDB sets the 1.7 kHz peaking gain.
func (a *GuitarAmpSimulator) SetMidGainDB(db float64) {
	a.midDB = toneGain(a.midDB, db)
	a.redesign(stageMid)
}

// SetTrebleGainDB sets the 6.5 kHz high-shelf gain.
func (a *GuitarAmpSimulator) SetTrebleGainDB(db float64) {
	a.trebleDB = toneGain(a.trebleDB, db)
	a.redesign(stageTreble)
}

// SetPresenceGainDB sets the 3.9 kHz peaking gain.
func (a *GuitarAmpSimulator) SetPresenceGainDB(db float64) {
	a.presenceDB = toneGain(a.presenceDB, db)
	a.redesign(stagePresence)
}

// SetHighCutGainDB sets the 18 kHz cut filter gain. It is flat (0 dB) by
// default.
func (a *GuitarAmpSimulator) SetHighCutGainDB(db float64) {
	a.highCutDB = toneGain(a.highCutDB, db)
	a.redesign(stageHighCut)
}

// SetLowCutGainDB sets the 60 Hz cut filter gain. It is flat (0 dB) by
// default.
func (a *GuitarAmpSimulator) SetLowCutGainDB(db float64) {
	a.lowCutDB = toneGain(a.lowCutDB, db)
	a.redesign(stageLowCut)
}

// SetMasterGain sets the final linear gain, clamped to >= 0.
func (a *GuitarAmpSimulator) SetMasterGain(gain float64) {
	if !(gain > 0) {
		gain = 0
	}
	a.masterGain = gain
}

// BassGainDB returns the bass gain.
func (a *GuitarAmpSimulator) BassGainDB() float64 { return a.bassDB }

// MidGainDB returns the mid gain.
func (a *GuitarAmpSimulator) MidGainDB() float64 { return a.midDB }

// TrebleGainDB returns the treble gain.
func (a *GuitarAmpSimulator) TrebleGainDB() float64 { return a.trebleDB }

// PresenceGainDB returns the presence gain.
func (a *GuitarAmpSimulator) PresenceGainDB() float64 { return a.presenceDB }

// HighCutGainDB returns the high cut filter gain.
func (a *GuitarAmpSimulator) HighCutGainDB() float64 { return a.highCutDB }

// LowCutGainDB returns the low cut filter gain.
func (a *GuitarAmpSimulator) LowCutGainDB() float64 { return a.lowCutDB }

// MasterGain returns the final linear gain.
func (a *GuitarAmpSimulator) MasterGain() float64 { return a.masterGain }

// ToneStack returns the coefficients of the six tone stages in processing
// order: bass, mid, treble, presence, high cut, low cut.
func (a *GuitarAmpSimulator) ToneStack() []biquad.Coefficients {
	out := make([]biquad.Coefficients, a.tone.Len())
	for i := range out {
		out[i] = a.tone.Stage(i).Coefficients
	}
	return out
}

// Process runs buf through the amp in place.
func (a *GuitarAmpSimulator) Process(buf []float64) {
	mix.Gain(buf, a.inputGain)
	a.lowShelf1.Process(buf)
	a.lowShelf2.Process(buf)
	mix.Gain(buf, a.preamp1)
	a.shaper1.Process(buf)
	a.highPass.Process(buf)

	a.lowShelf3.Process(buf)
	mix.Gain(buf, a.preamp2)
	a.shaper2.Process(buf)
	mix.Gain(buf, a.outputGain)

	a.tone.ProcessBlock(buf)
	mix.Gain(buf, a.masterGain)
}

// ProcessInPlace is an alias for Process.
func (a *GuitarAmpSimulator) ProcessInPlace(buf []float64) { a.Process(buf) }

// Reset clears all filter state.
func (a *GuitarAmpSimulator) Reset() {
	a.lowShelf1.Reset()
	a.lowShelf2.Reset()
	a.highPass.Reset()
	a.lowShelf3.Reset()
	a.tone.Reset()
}

package envelope

import (
	"fmt"
	"math"
)

// Status is the stage a DAHDSR envelope is in.
type Status int

const (
	StatusWaiting Status = iota
	StatusDelay
	StatusAttack
	StatusHold
	StatusDecay
	StatusSustain
	StatusReleased
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusDelay:
		return "delay"
	case StatusAttack:
		return "attack"
	case StatusHold:
		return "hold"
	case StatusDecay:
		return "decay"
	case StatusSustain:
		return "sustain"
	case StatusReleased:
		return "released"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Mode selects how decay and release durations are interpreted.
type Mode int

const (
	// ModeNormal: decay runs from 1 to the sustain level in the decay time,
	// release runs from the sustain level to 0 in the release time.
	ModeNormal Mode = iota
	// ModeDLS: decay and release times are the time a full 1 to 0 ramp
	// would take.
	ModeDLS
)

// DAHDSR is a delay/attack/hold/decay/sustain/release envelope that adds a
// fixed per-sample slope and checks stage boundaries once per tick.
type DAHDSR struct {
	sampleRate float64
	mode       Mode

	delayTicks   float64
	attackTicks  float64
	holdTicks    float64
	decayTicks   float64
	sustain      float64
	releaseTicks float64

	decayStartsAt float64
	releaseEndsAt float64

	tick   float64
	level  float64
	slope  float64
	status Status
}

var _ Generator = (*DAHDSR)(nil)

// NewDAHDSR returns a waiting envelope.
func NewDAHDSR(sampleRate float64, mode Mode, p Params) (*DAHDSR, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	e := &DAHDSR{sampleRate: sampleRate, mode: mode}
	e.SetDelay(p.Delay)
	e.SetAttack(p.Attack)
	e.SetHold(p.Hold)
	e.SetDecay(p.Decay)
	e.SetSustain(p.Sustain)
	e.SetRelease(p.Release)
	return e, nil
}

func (e *DAHDSR) ticks(ms float64) float64 {
	return nonNegative(ms) / 1000 * e.sampleRate
}

// SetDelay sets the time between Trigger and the start of the attack.
func (e *DAHDSR) SetDelay(ms float64) { e.delayTicks = e.ticks(ms) }

// SetAttack sets the attack time in ms (>= 0).
func (e *DAHDSR) SetAttack(ms float64) {
	e.attackTicks = e.ticks(ms)
	e.decayStartsAt = e.attackTicks + e.holdTicks
}

// SetHold sets the hold time in ms (>= 0).
func (e *DAHDSR) SetHold(ms float64) {
	e.holdTicks = e.ticks(ms)
	e.decayStartsAt = e.attackTicks + e.holdTicks
}

// SetDecay sets the decay time in ms (>= 0).
func (e *DAHDSR) SetDecay(ms float64) { e.decayTicks = e.ticks(ms) }

// SetSustain sets the sustain level, clamped to [0, 1].
func (e *DAHDSR) SetSustain(level float64) { e.sustain = unit(level) }

// SetRelease sets the release time in ms (>= 0).
func (e *DAHDSR) SetRelease(ms float64) { e.releaseTicks = e.ticks(ms) }

// Mode returns the timing interpretation.
func (e *DAHDSR) Mode() Mode { return e.mode }

// Status returns the current stage.
func (e *DAHDSR) Status() Status { return e.status }

// Level returns the raw level in [0, 1].
func (e *DAHDSR) Level() float64 { return e.level }

// LogScaleLevel maps the level onto a 100 dB range: 1 is 0 dBFS and 0 is
// silence.
func (e *DAHDSR) LogScaleLevel() float64 {
	if e.level <= 0 {
		return 0
	}
	return math.Pow(10, (e.level*100-100)/20)
}

// Reset parks the envelope in Waiting at level 0.
func (e *DAHDSR) Reset() {
	e.tick = 0
	e.level = 0
	e.slope = 0
	e.status = StatusWaiting
}

// Trigger restarts from silence, including from the middle of a release.
func (e *DAHDSR) Trigger() {
	e.tick = -e.delayTicks
	e.level = 0
	e.slope = 0
	e.status = StatusDelay
}

// Release ramps toward zero from any sounding stage. The slope is derived
// from the configured sustain level, not from the level at the moment of
// release, so releasing mid-attack or mid-decay stretches or shortens the
// ramp. A release with no slope (zero release time, or sustain 0 in
// ModeNormal) finishes after the release time.
func (e *DAHDSR) Release() {
	if e.status == StatusWaiting || e.status == StatusFinished {
		return
	}

	e.status = StatusReleased
	e.releaseEndsAt = e.tick + e.releaseTicks - 1
	if e.releaseTicks <= 0 {
		e.slope = 0
		return
	}
	if e.mode == ModeDLS {
		e.slope = -1 / e.releaseTicks
	} else {
		e.slope = -e.sustain / e.releaseTicks
	}
}

// Advance is Process for the Generator interface.
func (e *DAHDSR) Advance(n int) { e.Process(n) }

// Process advances the envelope by count ticks. It does nothing while
// Waiting or Finished.
func (e *DAHDSR) Process(count int) {
	for range count {
		if e.status == StatusWaiting || e.status == StatusFinished {
			return
		}
		e.step()
	}
}

func (e *DAHDSR) step() {
	e.level += e.slope

	if e.status == StatusDelay && e.tick >= 0 {
		e.status = StatusAttack
		if e.attackTicks > 0 {
			e.slope = 1 / e.attackTicks
		} else {
			e.level = 1
		}
	}

	if e.status == StatusAttack && e.level >= 1 {
		e.level = 1
		e.slope = 0
		e.status = StatusHold
	}

	if e.status == StatusHold && e.tick >= e.decayStartsAt {
		e.status = StatusDecay
		switch {
		case e.decayTicks <= 0:
			e.level = e.sustain
		case e.mode == ModeDLS:
			e.slope = -1 / e.decayTicks
		default:
			e.slope = (e.sustain - 1) / e.decayTicks
		}
	}

	if e.status == StatusDecay && e.level <= e.sustain {
		e.level = e.sustain
		e.slope = 0
		e.status = StatusSustain
	}

	if e.status == StatusReleased && e.releaseDone() {
		e.level = 0
		e.slope = 0
		e.status = StatusFinished
	}

	e.tick++
}

// releaseEpsilon absorbs the accumulation error of a ramp that lands on zero.
const releaseEpsilon = 1e-9

func (e *DAHDSR) releaseDone() bool {
	if e.level <= releaseEpsilon {
		return true
	}
	return e.slope == 0 && e.tick >= e.releaseEndsAt
}

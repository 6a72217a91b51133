package envelope

// AHDSR recomputes its level from elapsed time on every sample.
type AHDSR struct {
	sampleRate float64

	attack  float64
	hold    float64
	decay   float64
	sustain float64
	release float64

	tick          float64
	lastLevel     float64
	startLevel    float64
	released      bool
	releasedTick  float64
	releasedLevel float64
	ended         bool
}

var _ Generator = (*AHDSR)(nil)

// NewAHDSR returns an envelope that stays silent until Trigger.
func NewAHDSR(sampleRate float64, p Params) (*AHDSR, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	e := &AHDSR{sampleRate: sampleRate, released: true}
	e.SetAttack(p.Attack)
	e.SetHold(p.Hold)
	e.SetDecay(p.Decay)
	e.SetSustain(p.Sustain)
	e.SetRelease(p.Release)
	return e, nil
}

// SetAttack sets the attack time in ms (>= 0).
func (e *AHDSR) SetAttack(ms float64) { e.attack = nonNegative(ms) }

// SetHold sets the hold time in ms (>= 0).
func (e *AHDSR) SetHold(ms float64) { e.hold = nonNegative(ms) }

// SetDecay sets the decay time in ms (>= 0). A zero decay skips both the
// decay and the sustain level: the envelope holds at 1.
func (e *AHDSR) SetDecay(ms float64) { e.decay = nonNegative(ms) }

// SetSustain sets the sustain level, clamped to [0, 1].
func (e *AHDSR) SetSustain(level float64) { e.sustain = unit(level) }

// SetRelease sets the release time in ms (>= 0).
func (e *AHDSR) SetRelease(ms float64) { e.release = nonNegative(ms) }

// Params returns the current configuration.
func (e *AHDSR) Params() Params {
	return Params{Attack: e.attack, Hold: e.hold, Decay: e.decay, Sustain: e.sustain, Release: e.release}
}

// Trigger restarts the envelope if it is released. The attack ramps from the
// most recent level so fast re-triggers do not click.
func (e *AHDSR) Trigger() {
	if !e.released {
		return
	}
	e.tick = 0
	e.released = false
	e.ended = false
	e.startLevel = e.lastLevel
}

// Release anchors a linear ramp to zero at the current level.
func (e *AHDSR) Release() {
	if e.released {
		return
	}
	e.released = true
	e.releasedTick = e.tick
	e.releasedLevel = e.lastLevel
}

// Released reports whether the envelope is in (or past) its release stage.
func (e *AHDSR) Released() bool { return e.released }

// Ended reports whether the release ramp has reached zero.
func (e *AHDSR) Ended() bool { return e.ended }

// Level returns the level produced by the last Process call.
func (e *AHDSR) Level() float64 { return e.lastLevel }

// Advance runs n samples of the envelope without an input signal.
func (e *AHDSR) Advance(n int) {
	for range n {
		e.next()
	}
}

// Process applies the envelope to one sample and advances it.
func (e *AHDSR) Process(input float64) float64 {
	return e.next() * input
}

// ProcessBlock applies the envelope to buf in place.
func (e *AHDSR) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = e.next() * x
	}
}

func (e *AHDSR) next() float64 {
	ms := e.tick / e.sampleRate * 1000

	level := e.sustain
	if e.decay == 0 {
		level = 1
	}

	holdEnd := e.attack + e.hold
	switch {
	case e.attack != 0 && ms <= e.attack:
		level = e.startLevel + (1-e.startLevel)*ms/e.attack
	case e.decay != 0 && e.attack <= ms && ms <= holdEnd:
		level = 1
	case e.decay != 0 && holdEnd <= ms && ms <= holdEnd+e.decay:
		level = 1 - (1-e.sustain)*(ms-holdEnd)/e.decay
	}

	if e.released {
		if e.release == 0 {
			e.ended = true
			level = 0
		} else {
			since := (e.tick - e.releasedTick) / e.sampleRate * 1000
			level = e.releasedLevel * (1 - since/e.release)
			if level < 0 {
				e.ended = true
				level = 0
			}
		}
	}

	e.tick++
	e.lastLevel = level
	return level
}

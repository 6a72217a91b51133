package envelope

import (
	"math"
	"testing"
)

func newDAHDSR(t *testing.T, sr float64, mode Mode, p Params) *DAHDSR {
	t.Helper()
	e, err := NewDAHDSR(sr, mode, p)
	if err != nil {
		t.Fatalf("NewDAHDSR() error = %v", err)
	}
	return e
}

func TestNewDAHDSRValidation(t *testing.T) {
	if _, err := NewDAHDSR(math.Inf(1), ModeNormal, DefaultParams()); err == nil {
		t.Fatal("expected error for infinite sample rate")
	}
}

func TestDAHDSRWaitingDoesNotAdvance(t *testing.T) {
	e := newDAHDSR(t, 48000, ModeNormal, Params{Attack: 1, Sustain: 1})
	e.Process(1000)
	if e.Status() != StatusWaiting || e.Level() != 0 {
		t.Fatalf("status=%v level=%v", e.Status(), e.Level())
	}
	e.Release()
	if e.Status() != StatusWaiting {
		t.Fatalf("Release while waiting moved to %v", e.Status())
	}
}

func TestDAHDSRInstantStagesReachSustainInOneTick(t *testing.T) {
	const sr = 48000.0
	e := newDAHDSR(t, sr, ModeNormal, Params{Sustain: 1, Release: 100})
	e.Trigger()
	e.Process(1)
	if e.Level() != 1 || e.Status() != StatusSustain {
		t.Fatalf("after one tick: level=%v status=%v, want 1 sustain", e.Level(), e.Status())
	}

	e.Release()
	e.Process(int(100 / 1000.0 * sr))
	if e.Status() != StatusFinished {
		t.Fatalf("after release ticks: status=%v level=%v", e.Status(), e.Level())
	}
	if e.Level() != 0 {
		t.Fatalf("finished level = %v, want 0", e.Level())
	}
}

func TestDAHDSRStageSequence(t *testing.T) {
	// 1 tick = 1 ms
	e := newDAHDSR(t, 1000, ModeNormal, Params{Delay: 3, Attack: 4, Hold: 2, Decay: 4, Sustain: 0.5, Release: 10})
	e.Trigger()
	if e.Status() != StatusDelay {
		t.Fatalf("status after Trigger = %v", e.Status())
	}

	var statuses []Status
	var levels []float64
	for i := 0; i < 20; i++ {
		e.Process(1)
		statuses = append(statuses, e.Status())
		levels = append(levels, e.Level())
	}

	// ticks -3..-1 delay, tick 0 enters attack.
	if statuses[2] != StatusDelay || statuses[3] != StatusAttack {
		t.Fatalf("delay->attack statuses %v", statuses[:5])
	}
	// level reaches 1 after four slope steps.
	if statuses[7] != StatusHold || levels[7] != 1 {
		t.Fatalf("tick 7: %v level %v, want hold at 1", statuses[7], levels[7])
	}
	if statuses[9] != StatusDecay {
		t.Fatalf("tick 9: %v, want decay", statuses[9])
	}
	if statuses[13] != StatusSustain || levels[13] != 0.5 {
		t.Fatalf("tick 13: %v level %v, want sustain at 0.5", statuses[13], levels[13])
	}
	for i := 1; i < len(levels); i++ {
		if statuses[i] < statuses[i-1] {
			t.Fatalf("status went backwards at %d: %v -> %v", i, statuses[i-1], statuses[i])
		}
	}
}

func TestDAHDSRDLSDecaySlope(t *testing.T) {
	e := newDAHDSR(t, 1000, ModeDLS, Params{Decay: 100, Sustain: 0.5, Release: 100})
	e.Trigger()
	e.Process(1) // attack and hold are instant, decay starts
	if e.Status() != StatusDecay {
		t.Fatalf("status = %v, want decay", e.Status())
	}
	e.Process(10)
	if got := e.Level(); math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("DLS decay level after 10 ticks = %v, want 0.9", got)
	}
	e.Process(45)
	if e.Status() != StatusSustain || e.Level() != 0.5 {
		t.Fatalf("status=%v level=%v, want sustain 0.5", e.Status(), e.Level())
	}

	// DLS release covers 1..0 in the release time, so 0.5 takes just
	// over half of it.
	e.Release()
	e.Process(51)
	if e.Status() != StatusFinished {
		t.Fatalf("status = %v, want finished after half the release", e.Status())
	}
}

func TestDAHDSRReleaseSlopeUsesConfiguredSustain(t *testing.T) {
	e := newDAHDSR(t, 1000, ModeNormal, Params{Attack: 100, Sustain: 0.25, Release: 100})
	e.Trigger()
	e.Process(51) // mid-attack, level 0.5
	if math.Abs(e.Level()-0.5) > 1e-9 {
		t.Fatalf("level = %v, want 0.5", e.Level())
	}

	e.Release()
	e.Process(10)
	// slope is -0.25/100 per tick regardless of the 0.5 actually held.
	if got := e.Level(); math.Abs(got-(0.5-10*0.0025)) > 1e-9 {
		t.Fatalf("level after 10 release ticks = %v, want %v", got, 0.5-10*0.0025)
	}

	// The ramp runs on to zero: 0.5 at 0.0025 per tick takes 200 ticks.
	e.Process(189)
	if e.Status() != StatusReleased {
		t.Fatalf("status after 199 release ticks = %v, want released", e.Status())
	}
	if got := e.Level(); math.Abs(got-0.0025) > 1e-9 {
		t.Fatalf("level after 199 release ticks = %v, want 0.0025", got)
	}
	e.Process(1)
	if e.Status() != StatusFinished || e.Level() != 0 {
		t.Fatalf("status=%v level=%v, want finished at 0", e.Status(), e.Level())
	}
}

func TestDAHDSRReleaseAboveSustainHasNoStep(t *testing.T) {
	e := newDAHDSR(t, 1000, ModeNormal, Params{Attack: 1, Hold: 100, Decay: 100, Sustain: 0.5, Release: 100})
	e.Trigger()
	e.Process(50) // holding at 1
	e.Release()

	prev := e.Level()
	for i := range 300 {
		e.Process(1)
		if step := prev - e.Level(); step > 0.005+1e-9 {
			t.Fatalf("tick %d: level fell by %v, want at most 0.005", i, step)
		}
		prev = e.Level()
		if e.Status() == StatusFinished {
			if i != 199 {
				t.Fatalf("finished after %d release ticks, want 200", i+1)
			}
			return
		}
	}
	t.Fatalf("status = %v after 300 release ticks, want finished", e.Status())
}

func TestDAHDSRReleaseWithoutSlopeFinishesAfterReleaseTime(t *testing.T) {
	e := newDAHDSR(t, 1000, ModeNormal, Params{Attack: 100, Sustain: 0, Release: 20})
	e.Trigger()
	e.Process(51)
	e.Release()
	e.Process(19)
	if e.Status() != StatusReleased {
		t.Fatalf("status = %v, want released before the release time", e.Status())
	}
	e.Process(1)
	if e.Status() != StatusFinished || e.Level() != 0 {
		t.Fatalf("status=%v level=%v, want finished at 0", e.Status(), e.Level())
	}
}

func TestDAHDSRZeroSustainNormalReleaseFinishes(t *testing.T) {
	e := newDAHDSR(t, 1000, ModeNormal, Params{Decay: 10, Sustain: 0, Release: 20})
	e.Trigger()
	e.Process(30)
	e.Release()
	e.Process(20)
	if e.Status() != StatusFinished {
		t.Fatalf("status = %v, want finished", e.Status())
	}
}

func TestDAHDSRRetriggerMidRelease(t *testing.T) {
	e := newDAHDSR(t, 1000, ModeNormal, Params{Attack: 10, Sustain: 1, Release: 100})
	e.Trigger()
	e.Process(20)
	e.Release()
	e.Process(5)
	e.Trigger()
	if e.Status() != StatusDelay || e.Level() != 0 {
		t.Fatalf("retrigger: status=%v level=%v", e.Status(), e.Level())
	}
}

func TestDAHDSRFinishedIsAbsorbing(t *testing.T) {
	e := newDAHDSR(t, 1000, ModeNormal, Params{Sustain: 1, Release: 1})
	e.Trigger()
	e.Process(2)
	e.Release()
	e.Process(5)
	if e.Status() != StatusFinished {
		t.Fatalf("status = %v", e.Status())
	}
	e.Process(100)
	e.Release()
	if e.Status() != StatusFinished || e.Level() != 0 {
		t.Fatalf("finished state changed: %v %v", e.Status(), e.Level())
	}
}

func TestDAHDSRResetAndLogScale(t *testing.T) {
	e := newDAHDSR(t, 1000, ModeNormal, Params{Sustain: 1})
	e.Trigger()
	e.Process(1)
	if got := e.LogScaleLevel(); math.Abs(got-1) > 1e-12 {
		t.Fatalf("LogScaleLevel at full = %v, want 1", got)
	}

	e.level = 0.8
	if got := e.LogScaleLevel(); math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("LogScaleLevel(0.8) = %v, want 0.1 (-20 dB)", got)
	}

	e.Reset()
	if e.Status() != StatusWaiting || e.Level() != 0 || e.LogScaleLevel() != 0 {
		t.Fatalf("after Reset: %v %v", e.Status(), e.Level())
	}
}

func TestGeneratorsShareInterface(t *testing.T) {
	a, _ := NewAHDSR(1000, Params{Attack: 10, Sustain: 1, Release: 10})
	b, _ := NewDAHDSR(1000, ModeNormal, Params{Attack: 10, Sustain: 1, Release: 10})

	for _, g := range []Generator{a, b} {
		g.Trigger()
		g.Advance(30)
		if g.Level() != 1 {
			t.Fatalf("%T level after attack = %v, want 1", g, g.Level())
		}
		g.Release()
		g.Advance(30)
		if g.Level() != 0 {
			t.Fatalf("%T level after release = %v, want 0", g, g.Level())
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusSustain.String() != "sustain" || Status(42).String() != "Status(42)" {
		t.Fatal("unexpected status names")
	}
}

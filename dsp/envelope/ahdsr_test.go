package envelope

import (
	"math"
	"testing"
)

func newAHDSR(t *testing.T, sr float64, p Params) *AHDSR {
	t.Helper()
	e, err := NewAHDSR(sr, p)
	if err != nil {
		t.Fatalf("NewAHDSR() error = %v", err)
	}
	return e
}

func TestNewAHDSRValidation(t *testing.T) {
	if _, err := NewAHDSR(0, DefaultParams()); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestAHDSRSilentUntilTriggered(t *testing.T) {
	e := newAHDSR(t, 48000, Params{Attack: 10, Sustain: 1, Release: 10})
	for i := 0; i < 100; i++ {
		if got := e.Process(1); got != 0 {
			t.Fatalf("sample %d = %v before Trigger", i, got)
		}
	}
}

func TestAHDSRAttackReachesFullLevel(t *testing.T) {
	const sr = 48000.0
	for _, attackMs := range []float64{1, 10, 25.5} {
		e := newAHDSR(t, sr, Params{Attack: attackMs, Sustain: 0.5, Release: 10})
		e.Trigger()

		ticks := int(math.Round(attackMs / 1000 * sr))
		e.Advance(ticks)

		step := 1000 / sr / attackMs
		if got := e.Level(); math.Abs(got-1) > step+1e-12 {
			t.Fatalf("attack %v ms: level after %d ticks = %v, want within %v of 1", attackMs, ticks, got, step)
		}
	}
}

func TestAHDSRStages(t *testing.T) {
	// 1 tick = 1 ms
	e := newAHDSR(t, 1000, Params{Attack: 10, Hold: 5, Decay: 10, Sustain: 0.5, Release: 20})
	e.Trigger()

	levels := make([]float64, 40)
	for i := range levels {
		e.Advance(1)
		levels[i] = e.Level()
	}

	tests := []struct {
		tick int
		want float64
	}{
		{0, 0},
		{5, 0.5},
		{10, 1},
		{13, 1},
		{15, 1},
		{20, 0.75},
		{25, 0.5},
		{39, 0.5},
	}
	for _, tt := range tests {
		if math.Abs(levels[tt.tick]-tt.want) > 1e-12 {
			t.Fatalf("tick %d: level %v, want %v", tt.tick, levels[tt.tick], tt.want)
		}
	}

	e.Release()
	e.Advance(10)
	if got := e.Level(); math.Abs(got-0.5*(1-9.0/20)) > 1e-12 {
		t.Fatalf("mid-release level = %v", got)
	}
	e.Advance(15)
	if !e.Ended() || e.Level() != 0 {
		t.Fatalf("after release: ended=%v level=%v", e.Ended(), e.Level())
	}
}

func TestAHDSRZeroDecayIgnoresSustain(t *testing.T) {
	e := newAHDSR(t, 1000, Params{Attack: 0, Decay: 0, Sustain: 0.2, Release: 10})
	e.Trigger()
	e.Advance(50)
	if got := e.Level(); got != 1 {
		t.Fatalf("level = %v, want 1 with zero decay", got)
	}
}

func TestAHDSRZeroReleaseEndsImmediately(t *testing.T) {
	e := newAHDSR(t, 1000, Params{Sustain: 1})
	e.Trigger()
	e.Advance(5)
	e.Release()
	if got := e.Process(1); got != 0 || !e.Ended() {
		t.Fatalf("Process after zero release = %v, ended=%v", got, e.Ended())
	}
}

func TestAHDSRRetriggerStartsFromLastLevel(t *testing.T) {
	e := newAHDSR(t, 1000, Params{Attack: 10, Sustain: 1, Decay: 0, Release: 100})
	e.Trigger()
	e.Advance(20)
	e.Release()
	e.Advance(51) // level = 1 * (1 - 50/100)

	e.Trigger()
	if got := e.Process(1); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("first sample after retrigger = %v, want 0.5", got)
	}
	e.Advance(5)
	if got := e.Level(); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("level 5 ms after retrigger = %v, want 0.75", got)
	}
}

func TestAHDSRTriggerIgnoredWhileHeld(t *testing.T) {
	e := newAHDSR(t, 1000, Params{Attack: 10, Sustain: 1, Release: 10})
	e.Trigger()
	e.Advance(5)
	before := e.Level()
	e.Trigger()
	e.Advance(1)
	if e.Level() <= before {
		t.Fatalf("Trigger while held restarted the attack: %v -> %v", before, e.Level())
	}
}

func TestAHDSRSettersClamp(t *testing.T) {
	e := newAHDSR(t, 48000, DefaultParams())
	e.SetAttack(-5)
	e.SetSustain(3)
	e.SetRelease(-1)
	p := e.Params()
	if p.Attack != 0 || p.Sustain != 1 || p.Release != 0 {
		t.Fatalf("Params() = %+v", p)
	}
	e.SetSustain(-0.5)
	if e.Params().Sustain != 0 {
		t.Fatalf("sustain = %v, want 0", e.Params().Sustain)
	}
}

func TestAHDSRProcessBlock(t *testing.T) {
	e := newAHDSR(t, 1000, Params{Attack: 4, Sustain: 1})
	e.Trigger()
	buf := []float64{2, 2, 2, 2, 2, 2}
	e.ProcessBlock(buf)
	want := []float64{0, 0.5, 1, 1.5, 2, 2}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

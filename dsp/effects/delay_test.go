package effects

import (
	"testing"

	"github.com/cwbudde/algo-synth/internal/testutil"
)

func TestNewDelayValidation(t *testing.T) {
	if _, err := NewDelay(-1); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
	for _, opt := range []DelayOption{
		WithDelayTimeMs(-1),
		WithDelayTimeMs(MaxDelayTimeMs + 1),
		WithDelayLevel(1.1),
		WithDelayFeedback(-0.1),
	} {
		if _, err := NewDelay(48000, opt); err == nil {
			t.Fatal("expected option error")
		}
	}
}

func TestDelayDefaults(t *testing.T) {
	d, err := NewDelay(48000)
	if err != nil {
		t.Fatalf("NewDelay() error = %v", err)
	}
	if d.Time() != 250 || d.Level() != 0.25 || d.Feedback() != 0.75 {
		t.Fatalf("defaults = (%v, %v, %v), want (250, 0.25, 0.75)", d.Time(), d.Level(), d.Feedback())
	}
	if d.DelaySamples() != 12000 {
		t.Fatalf("DelaySamples() = %d, want 12000", d.DelaySamples())
	}
}

func TestDelayImpulseEchoes(t *testing.T) {
	d, err := NewDelay(1000, WithDelayTimeMs(10))
	if err != nil {
		t.Fatalf("NewDelay() error = %v", err)
	}

	buf := testutil.Impulse(31, 0)
	d.ProcessInPlace(buf)

	want := map[int]float64{0: 1, 10: 0.25, 20: 0.1875, 30: 0.140625}
	for i, got := range buf {
		if got != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, got, want[i])
		}
	}
}

func TestDelayTimeClamps(t *testing.T) {
	d, _ := NewDelay(1000)

	d.SetTime(MaxDelayTimeMs * 2)
	if d.Time() != MaxDelayTimeMs {
		t.Fatalf("Time() = %v, want %v", d.Time(), MaxDelayTimeMs)
	}
	if d.DelaySamples() != 3999 {
		t.Fatalf("DelaySamples() = %d, want 3999", d.DelaySamples())
	}

	d.SetTime(-5)
	if d.Time() != 0 || d.DelaySamples() != 1 {
		t.Fatalf("got (%v, %d), want (0, 1)", d.Time(), d.DelaySamples())
	}
}

func TestDelayOutputStaysBounded(t *testing.T) {
	d, _ := NewDelay(8000, WithDelayTimeMs(3), WithDelayLevel(1), WithDelayFeedback(1))
	buf := testutil.DeterministicNoise(11, 1, 16000)
	d.ProcessInPlace(buf)
	testutil.RequireFinite(t, buf)
	if peak := testutil.Peak(buf); peak > 1 {
		t.Fatalf("peak = %v, want <= 1", peak)
	}
}

func TestDelayResetKeepsTime(t *testing.T) {
	d, _ := NewDelay(1000, WithDelayTimeMs(5))
	d.ProcessSample(1)
	d.Reset()
	for i := range 20 {
		if got := d.ProcessSample(0); got != 0 {
			t.Fatalf("sample %d after Reset = %v, want 0", i, got)
		}
	}
	if d.DelaySamples() != 5 {
		t.Fatalf("DelaySamples() = %d, want 5", d.DelaySamples())
	}
}

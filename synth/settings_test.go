package synth

import (
	"math"
	"testing"
)

func TestCreateSettingsClamped(t *testing.T) {
	tests := []struct {
		name string
		in   CreateSettings
		want CreateSettings
	}{
		{"defaults unchanged", DefaultCreateSettings(), DefaultCreateSettings()},
		{"zeroes raised", CreateSettings{}, CreateSettings{MaxWorkerThreads: 1, MinNoteLengthMs: 1, Polyphony: 1, RenderBufferSize: 1}},
		{
			"large lowered",
			CreateSettings{MaxWorkerThreads: 8, MinNoteLengthMs: 1 << 20, Polyphony: 1 << 20, RenderBufferSize: 1 << 20},
			CreateSettings{MaxWorkerThreads: 8, MinNoteLengthMs: 65535, Polyphony: 65535, RenderBufferSize: 2048},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Clamped(); got != tc.want {
				t.Fatalf("Clamped() = %+v, want %+v", got, tc.want)
			}
		})
	}

	d := DefaultCreateSettings()
	if d.MaxWorkerThreads != 1 || d.MinNoteLengthMs != 10 || d.Polyphony != 384 || d.RenderBufferSize != 128 {
		t.Fatalf("DefaultCreateSettings() = %+v", d)
	}
}

func TestSettingsClamped(t *testing.T) {
	d := DefaultSettings()
	if d.DeviceID != 0x10 || d.OutputGain != 1 || d.ReverbLevel != 0 || d.ChorusLevel != 0 || d.Overflow != DefaultOverflowScores() {
		t.Fatalf("DefaultSettings() = %+v", d)
	}

	tests := []struct {
		gain, wantGain float64
		id, wantID     uint8
	}{
		{-1, 0, 0, 0},
		{25, 20, 127, 126},
		{math.NaN(), 0, 0x7f, 126},
		{3.5, 3.5, 0x20, 0x20},
	}
	for _, tc := range tests {
		got := Settings{DeviceID: tc.id, OutputGain: tc.gain}.Clamped()
		if got.OutputGain != tc.wantGain || got.DeviceID != tc.wantID {
			t.Fatalf("Clamped(%v, %d) = (%v, %d), want (%v, %d)", tc.gain, tc.id, got.OutputGain, got.DeviceID, tc.wantGain, tc.wantID)
		}
	}
}

func TestSettingsClampEffectLevels(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{-0.5, 0}, {0.25, 0.25}, {3, 1}, {math.NaN(), 0},
	} {
		got := Settings{ReverbLevel: tc.in, ChorusLevel: tc.in}.Clamped()
		if got.ReverbLevel != tc.want || got.ChorusLevel != tc.want {
			t.Fatalf("Clamped() levels for %v = (%v, %v), want %v", tc.in, got.ReverbLevel, got.ChorusLevel, tc.want)
		}
	}
}

func TestPriorityScore(t *testing.T) {
	o := DefaultOverflowScores()
	tests := []struct {
		name                            string
		age, volume                     float64
		percussion, released, sustained bool
		want                            float64
	}{
		{"one second full volume", 1, 1, false, false, false, 1500},
		{"old quiet", 10, 0, false, false, false, 100},
		{"percussion", 2, 0.5, true, false, false, 500 + 250 + 4000},
		{"released", 1, 0, false, true, false, 1000 - 2000},
		{"sustained beats released", 1, 0, false, true, true, 1000 - 1000},
		{"brand new voice stays finite", 0, 0, false, false, false, 1000 / minScoredAge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := o.PriorityScore(tc.age, tc.volume, tc.percussion, tc.released, tc.sustained)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("PriorityScore() = %v, want %v", got, tc.want)
			}
		})
	}
}

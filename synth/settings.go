package synth

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Ranges of the engine settings.
const (
	MinPolyphony        = 1
	MaxPolyphony        = 65535
	MinNoteLengthMs     = 1
	MaxNoteLengthMs     = 65535
	MaxDeviceID         = 126
	MaxOutputGain       = 20.0
	BroadcastDeviceID   = 0x7f
	DefaultDeviceID     = 0x10
	defaultPolyphony    = 384
	defaultMinNoteMs    = 10
	defaultRenderBuffer = 128
)

// CreateSettings are fixed for the lifetime of an Engine.
type CreateSettings struct {
	// MaxWorkerThreads bounds auxiliary render goroutines (>= 1).
	MaxWorkerThreads int
	// MinNoteLengthMs is how long a note sounds at least, even when the
	// note-off arrives immediately (1-65535).
	MinNoteLengthMs int
	// Polyphony is the voice pool size (1-65535).
	Polyphony int
	// RenderBufferSize is the number of frames rendered per block (1-2048).
	RenderBufferSize int
}

// DefaultCreateSettings returns one worker, 10 ms minimum note length,
// 384 voices and 128-frame blocks.
func DefaultCreateSettings() CreateSettings {
	return CreateSettings{
		MaxWorkerThreads: 1,
		MinNoteLengthMs:  defaultMinNoteMs,
		Polyphony:        defaultPolyphony,
		RenderBufferSize: defaultRenderBuffer,
	}
}

// Clamped returns s with every field forced into its range.
func (s CreateSettings) Clamped() CreateSettings {
	s.MaxWorkerThreads = max(s.MaxWorkerThreads, 1)
	s.MinNoteLengthMs = core.ClampInt(s.MinNoteLengthMs, MinNoteLengthMs, MaxNoteLengthMs)
	s.Polyphony = core.ClampInt(s.Polyphony, MinPolyphony, MaxPolyphony)
	s.RenderBufferSize = core.ClampInt(s.RenderBufferSize, core.MinBlockSize, core.MaxBlockSize)
	return s
}

// OverflowScores weight the priority of a sounding voice when the pool is
// exhausted. Lower scores are dropped first. The values are plain scores
// with no bounds.
type OverflowScores struct {
	// Age is divided by the voice age in seconds.
	Age float64
	// Volume is multiplied by the current voice level.
	Volume float64
	// Percussion is added for voices on a drum channel.
	Percussion float64
	// Released is added for voices in their release stage.
	Released float64
	// Sustained is added for released voices held by the sustain pedal.
	Sustained float64
}

// DefaultOverflowScores returns age 1000, volume 500, percussion 4000,
// released -2000 and sustained -1000.
func DefaultOverflowScores() OverflowScores {
	return OverflowScores{
		Age:        1000,
		Volume:     500,
		Percussion: 4000,
		Released:   -2000,
		Sustained:  -1000,
	}
}

// minScoredAge keeps the age term finite for voices that just started.
const minScoredAge = 0.001

// PriorityScore rates one voice. ageSeconds is how long it has sounded and
// volume its current level. A voice kept alive by the sustain pedal scores
// Sustained instead of Released.
func (o OverflowScores) PriorityScore(ageSeconds, volume float64, percussion, released, sustained bool) float64 {
	score := o.Age / math.Max(ageSeconds, minScoredAge)
	score += o.Volume * volume
	if percussion {
		score += o.Percussion
	}
	switch {
	case sustained:
		score += o.Sustained
	case released:
		score += o.Released
	}
	return score
}

// Settings can change while rendering.
type Settings struct {
	// DeviceID filters device-addressed sysex (0-126). Messages for 0x7f
	// are always accepted.
	DeviceID uint8
	// OutputGain scales the mixed output (0-20).
	OutputGain float64
	// ReverbLevel and ChorusLevel scale the effect returns (0-1). A bus
	// at 0 is not rendered.
	ReverbLevel float64
	ChorusLevel float64
	Overflow    OverflowScores
}

// DefaultSettings returns device id 0x10, unity gain, silent effect
// returns and the default overflow scores.
func DefaultSettings() Settings {
	return Settings{
		DeviceID:   DefaultDeviceID,
		OutputGain: 1,
		Overflow:   DefaultOverflowScores(),
	}
}

// Clamped returns s with DeviceID and the gains forced into range. NaN
// gains become 0.
func (s Settings) Clamped() Settings {
	s.DeviceID = min(s.DeviceID, MaxDeviceID)
	if math.IsNaN(s.OutputGain) {
		s.OutputGain = 0
	}
	s.OutputGain = core.Clamp(s.OutputGain, 0, MaxOutputGain)
	s.ReverbLevel = unitLevel(s.ReverbLevel)
	s.ChorusLevel = unitLevel(s.ChorusLevel)
	return s
}

func unitLevel(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return core.Clamp(v, 0, 1)
}

package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/eq"
)

const (
	defaultDistortionDrive  = 50.0
	defaultDistortionVolume = 0.5
	distortionPreFilterHz   = 100.0
)

// DistortionOption mutates distortion construction parameters.
type DistortionOption func(*distortionConfig) error

type distortionConfig struct {
	drive     float64
	volume    float64
	preFilter bool
}

func defaultDistortionConfig() distortionConfig {
	return distortionConfig{
		drive:     defaultDistortionDrive,
		volume:    defaultDistortionVolume,
		preFilter: true,
	}
}

// WithDistortionDrive sets the input gain applied before clipping (>= 0).
func WithDistortionDrive(drive float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if !finiteNonNegative(drive) {
			return fmt.Errorf("distortion drive must be >= 0 and finite: %f", drive)
		}
		cfg.drive = drive
		return nil
	}
}

// WithDistortionVolume sets the output gain in [0, 1].
func WithDistortionVolume(volume float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if volume < 0 || volume > 1 || math.IsNaN(volume) {
			return fmt.Errorf("distortion volume must be in [0, 1]: %f", volume)
		}
		cfg.volume = volume
		return nil
	}
}

// WithDistortionPreFilter enables or disables the 100 Hz high-pass run
// before the clipper.
func WithDistortionPreFilter(enabled bool) DistortionOption {
	return func(cfg *distortionConfig) error {
		cfg.preFilter = enabled
		return nil
	}
}

// Distortion is a hard clipper: clamp(x*drive, -1, 1) * volume, with an
// optional high-pass in front that removes rumble before it is amplified.
type Distortion struct {
	drive     float64
	volume    float64
	preFilter bool
	filter    *eq.Filter
}

var (
	_ MonoEffect  = (*Distortion)(nil)
	_ BlockEffect = (*Distortion)(nil)
)

// NewDistortion creates a distortion with drive 50, volume 0.5 and the
// pre-filter enabled.
func NewDistortion(sampleRate float64, opts ...DistortionOption) (*Distortion, error) {
	if err := validSampleRate("distortion", sampleRate); err != nil {
		return nil, err
	}
	cfg := defaultDistortionConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f, err := eq.New(sampleRate)
	if err != nil {
		return nil, err
	}
	f.HighPass(distortionPreFilterHz, math.Sqrt2/2)

	return &Distortion{
		drive:     cfg.drive,
		volume:    cfg.volume,
		preFilter: cfg.preFilter,
		filter:    f,
	}, nil
}

// SetDrive sets the input gain, clamped to >= 0.
func (d *Distortion) SetDrive(drive float64) { d.drive = atLeastZero(drive) }

// SetVolume sets the output gain, clamped to [0, 1].
func (d *Distortion) SetVolume(volume float64) { d.volume = unitRange(volume) }

// SetPreFilter toggles the high-pass pre-filter. Re-enabling it starts from
// a cleared filter state.
func (d *Distortion) SetPreFilter(enabled bool) {
	if enabled && !d.preFilter {
		d.filter.Reset()
	}
	d.preFilter = enabled
}

// Drive returns the input gain.
func (d *Distortion) Drive() float64 { return d.drive }

// Volume returns the output gain.
func (d *Distortion) Volume() float64 { return d.volume }

// PreFilter reports whether the high-pass pre-filter is enabled.
func (d *Distortion) PreFilter() bool { return d.preFilter }

// ProcessSample processes one sample.
func (d *Distortion) ProcessSample(x float64) float64 {
	if d.preFilter {
		x = d.filter.ProcessSample(x)
	}
	return core.Clamp(x*d.drive, -1, 1) * d.volume
}

// ProcessInPlace applies the distortion to buf in place.
func (d *Distortion) ProcessInPlace(buf []float64) {
	if d.preFilter {
		d.filter.Process(buf)
	}
	for i, x := range buf {
		buf[i] = core.Clamp(x*d.drive, -1, 1) * d.volume
	}
}

// Reset clears the pre-filter state.
func (d *Distortion) Reset() { d.filter.Reset() }

package effects

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/eq"
)

const (
	defaultDriveGain   = 300.0
	defaultDriveVolume = 0.3
	drivePreFilterHz   = 200.0
)

// Drive is a per-sample overdrive: a 200 Hz high-pass followed by a hard
// clip with a high input gain.
type Drive struct {
	drive  float64
	volume float64
	filter *eq.Filter
}

var _ MonoEffect = (*Drive)(nil)

// NewDrive creates a drive with gain 300 and volume 0.3.
func NewDrive(sampleRate float64) (*Drive, error) {
	if err := validSampleRate("drive", sampleRate); err != nil {
		return nil, err
	}
	f, err := eq.New(sampleRate)
	if err != nil {
		return nil, err
	}
	f.HighPass(drivePreFilterHz, math.Sqrt2/2)
	return &Drive{drive: defaultDriveGain, volume: defaultDriveVolume, filter: f}, nil
}

// SetDrive sets the input gain, clamped to >= 0.
func (d *Drive) SetDrive(drive float64) { d.drive = atLeastZero(drive) }

// SetVolume sets the output gain, clamped to [0, 1].
func (d *Drive) SetVolume(volume float64) { d.volume = unitRange(volume) }

// Drive returns the input gain.
func (d *Drive) Drive() float64 { return d.drive }

// Volume returns the output gain.
func (d *Drive) Volume() float64 { return d.volume }

// ProcessSample processes one sample.
func (d *Drive) ProcessSample(x float64) float64 {
	return core.Clamp(d.filter.ProcessSample(x)*d.drive, -1, 1) * d.volume
}

// ProcessInPlace applies the drive to buf in place.
func (d *Drive) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = d.ProcessSample(x)
	}
}

// Reset clears the filter state.
func (d *Drive) Reset() { d.filter.Reset() }

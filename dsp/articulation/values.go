package articulation

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/envelope"
)

// MinTime is the time value that converts to (effectively) zero.
const MinTime = math.MinInt32

// Values is the destination parameter set an articulation unit modifies.
//
// Units:
//   - gain: 0.001 dB (-144000 = -144 dB)
//   - pitch: 0.1 cent (12000 = 12 semitones)
//   - pan: -10000 (left) to 10000 (right)
//   - send coefficients and sustain levels: 0.01 % (10000 = 100 %)
//   - times: 2^(v/10000) ms
//   - frequencies: 2^(v/10000) Hz
//   - filter Q: 0.001 dB of resonance
type Values struct {
	Gain  int32
	Pitch int32
	Pan   int32

	ReverbSend int32
	ChorusSend int32

	ModulationLFOFrequency  int32
	ModulationLFOStartDelay int32
	VibratoLFOFrequency     int32
	VibratoLFOStartDelay    int32

	VolumeEnvDelay   int32
	VolumeEnvAttack  int32
	VolumeEnvHold    int32
	VolumeEnvDecay   int32
	VolumeEnvSustain int32
	VolumeEnvRelease int32

	ModulationEnvDelay   int32
	ModulationEnvAttack  int32
	ModulationEnvHold    int32
	ModulationEnvDecay   int32
	ModulationEnvSustain int32
	ModulationEnvRelease int32

	LowPassCutoff  int32
	LowPassQ       int32
	HighPassCutoff int32
	HighPassQ      int32
}

// DefaultValues returns the neutral parameter set: unity gain, no pitch
// offset, centred, instant envelopes with full sustain, the low-pass open
// at about 20 kHz and the high-pass off.
func DefaultValues() Values {
	return Values{
		ReverbSend: 10000,
		ChorusSend: 10000,

		ModulationLFOStartDelay: MinTime,
		VibratoLFOStartDelay:    MinTime,

		VolumeEnvDelay:   MinTime,
		VolumeEnvAttack:  MinTime,
		VolumeEnvHold:    MinTime,
		VolumeEnvDecay:   MinTime,
		VolumeEnvSustain: 10000,
		VolumeEnvRelease: MinTime,

		ModulationEnvDelay:   MinTime,
		ModulationEnvAttack:  MinTime,
		ModulationEnvHold:    MinTime,
		ModulationEnvDecay:   MinTime,
		ModulationEnvSustain: 10000,
		ModulationEnvRelease: MinTime,

		LowPassCutoff:  143000,
		HighPassCutoff: MinTime,
	}
}

// field returns the storage for d, or nil for destinations without one.
func (v *Values) field(d Destination) *int32 {
	switch d {
	case DestGain:
		return &v.Gain
	case DestPitch:
		return &v.Pitch
	case DestPan:
		return &v.Pan
	case DestReverbSend:
		return &v.ReverbSend
	case DestChorusSend:
		return &v.ChorusSend
	case DestModulationLFOFrequency:
		return &v.ModulationLFOFrequency
	case DestModulationLFOStartDelay:
		return &v.ModulationLFOStartDelay
	case DestVibratoLFOFrequency:
		return &v.VibratoLFOFrequency
	case DestVibratoLFOStartDelay:
		return &v.VibratoLFOStartDelay
	case DestVolumeEnvDelay:
		return &v.VolumeEnvDelay
	case DestVolumeEnvAttack:
		return &v.VolumeEnvAttack
	case DestVolumeEnvHold:
		return &v.VolumeEnvHold
	case DestVolumeEnvDecay:
		return &v.VolumeEnvDecay
	case DestVolumeEnvSustain:
		return &v.VolumeEnvSustain
	case DestVolumeEnvRelease:
		return &v.VolumeEnvRelease
	case DestModulationEnvDelay:
		return &v.ModulationEnvDelay
	case DestModulationEnvAttack:
		return &v.ModulationEnvAttack
	case DestModulationEnvHold:
		return &v.ModulationEnvHold
	case DestModulationEnvDecay:
		return &v.ModulationEnvDecay
	case DestModulationEnvSustain:
		return &v.ModulationEnvSustain
	case DestModulationEnvRelease:
		return &v.ModulationEnvRelease
	case DestLowPassCutoff:
		return &v.LowPassCutoff
	case DestLowPassQ:
		return &v.LowPassQ
	case DestHighPassCutoff:
		return &v.HighPassCutoff
	case DestHighPassQ:
		return &v.HighPassQ
	default:
		return nil
	}
}

// Add offsets destination d by delta, rounded and saturated to int32. It
// reports false for destinations that have no field.
func (v *Values) Add(d Destination, delta float64) bool {
	p := v.field(d)
	if p == nil {
		return false
	}
	if math.IsNaN(delta) {
		return true
	}
	sum := math.Round(float64(*p) + delta)
	switch {
	case sum > math.MaxInt32:
		*p = math.MaxInt32
	case sum < math.MinInt32:
		*p = math.MinInt32
	default:
		*p = int32(sum)
	}
	return true
}

// Get returns the value stored for d, or 0.
func (v *Values) Get(d Destination) int32 {
	if p := v.field(d); p != nil {
		return *p
	}
	return 0
}

// TimeToMs converts a time value to milliseconds.
func TimeToMs(v int32) float64 { return math.Exp2(float64(v) / 10000) }

// FrequencyToHz converts a frequency value to Hz.
func FrequencyToHz(v int32) float64 { return math.Exp2(float64(v) / 10000) }

// PercentToUnit converts a 0.01 % value to a fraction.
func PercentToUnit(v int32) float64 { return float64(v) / 10000 }

// GainLinear returns the gain as a linear factor.
func (v Values) GainLinear() float64 { return math.Pow(10, float64(v.Gain)/20000) }

// PitchSemitones returns the pitch offset in semitones.
func (v Values) PitchSemitones() float64 { return float64(v.Pitch) / 1000 }

// PanPosition returns the pan position in [-1, 1].
func (v Values) PanPosition() float64 {
	return math.Max(-1, math.Min(1, float64(v.Pan)/10000))
}

// VolumeEnvelope returns the volume envelope stage times in ms.
func (v Values) VolumeEnvelope() envelope.Params {
	return envelope.Params{
		Delay:   TimeToMs(v.VolumeEnvDelay),
		Attack:  TimeToMs(v.VolumeEnvAttack),
		Hold:    TimeToMs(v.VolumeEnvHold),
		Decay:   TimeToMs(v.VolumeEnvDecay),
		Sustain: PercentToUnit(v.VolumeEnvSustain),
		Release: TimeToMs(v.VolumeEnvRelease),
	}
}

// ModulationEnvelope returns the modulation envelope stage times in ms.
func (v Values) ModulationEnvelope() envelope.Params {
	return envelope.Params{
		Delay:   TimeToMs(v.ModulationEnvDelay),
		Attack:  TimeToMs(v.ModulationEnvAttack),
		Hold:    TimeToMs(v.ModulationEnvHold),
		Decay:   TimeToMs(v.ModulationEnvDecay),
		Sustain: PercentToUnit(v.ModulationEnvSustain),
		Release: TimeToMs(v.ModulationEnvRelease),
	}
}

// LowPassCutoffHz returns the low-pass corner frequency.
func (v Values) LowPassCutoffHz() float64 { return FrequencyToHz(v.LowPassCutoff) }

// LowPassQFactor returns the low-pass quality factor: 1/sqrt(2) raised by the
// resonance gain.
func (v Values) LowPassQFactor() float64 {
	return math.Sqrt2 / 2 * math.Pow(10, float64(v.LowPassQ)/20000)
}

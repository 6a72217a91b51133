package harmonics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-synth/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const defaultLowerHz = 20.0

var errEmptySignal = errors.New("harmonics: signal must not be empty")

// Config holds analysis parameters.
type Config struct {
	SampleRate float64
	// Fundamental in Hz. Zero selects the strongest bin above 20 Hz.
	Fundamental float64
	// MaxHarmonics limits the harmonics measured, counting from the second.
	// Zero measures every harmonic below Nyquist.
	MaxHarmonics int
	// Window applied before the FFT. The zero value selects Hann.
	Window window.Type
}

// Result holds the measured levels.
type Result struct {
	// Fundamental is the analysed fundamental frequency in Hz.
	Fundamental float64
	// FundamentalLevel is the amplitude of the fundamental.
	FundamentalLevel float64
	// Harmonics holds the amplitude of harmonics 2, 3, ... relative to the
	// fundamental.
	Harmonics []float64
	// THD is sqrt(sum(h^2)) over Harmonics.
	THD    float64
	OddHD  float64
	EvenHD float64
	// Peak is the largest absolute sample of the unwindowed signal.
	Peak float64
}

// THDdB returns THD in dB, or -Inf for a pure tone.
func (r Result) THDdB() float64 {
	if r.THD <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(r.THD)
}

// Spectrum is a one-sided power spectrum with the scale needed to turn
// summed bin power back into amplitude.
type Spectrum struct {
	Power    []float64 // bins 0..N/2
	BinHz    float64
	MainLobe int
	scale    float64
}

// Amplitude converts the power summed over bins [lo, hi] to a sine
// amplitude.
func (s *Spectrum) Amplitude(lo, hi int) float64 {
	lo = max(lo, 0)
	hi = min(hi, len(s.Power)-1)
	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += s.Power[i]
	}
	return 2 * math.Sqrt(sum/s.scale)
}

// NewSpectrum windows signal, zero-pads it to a power of two and returns
// its power spectrum.
func NewSpectrum(signal []float64, sampleRate float64, win window.Type) (*Spectrum, error) {
	if len(signal) == 0 {
		return nil, errEmptySignal
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("harmonics sample rate must be > 0: %f", sampleRate)
	}

	n := nextPowerOf2(len(signal))
	coeffs := window.Generate(win, len(signal), window.WithPeriodic())
	if coeffs == nil {
		return nil, fmt.Errorf("harmonics: unknown window %d", win)
	}

	in := make([]complex128, n)
	windowPower := 0.0
	for i, x := range signal {
		in[i] = complex(x*coeffs[i], 0)
		windowPower += coeffs[i] * coeffs[i]
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("harmonics: fft plan: %w", err)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("harmonics: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	pad := (n + len(signal) - 1) / len(signal)
	return &Spectrum{
		Power:    power,
		BinHz:    sampleRate / float64(n),
		MainLobe: win.MainLobeBins() * pad,
		scale:    float64(n) * windowPower,
	}, nil
}

// Analyze measures the fundamental and harmonic levels of signal.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if cfg.Window == window.TypeRectangular {
		cfg.Window = window.TypeHann
	}
	spec, err := NewSpectrum(signal, cfg.SampleRate, cfg.Window)
	if err != nil {
		return Result{}, err
	}

	res := Result{Peak: vecmath.MaxAbs(signal)}
	maxBin := len(spec.Power) - 1
	lobe := spec.MainLobe

	fundBin := spec.fundamentalBin(cfg.Fundamental)
	if fundBin <= lobe || fundBin > maxBin {
		return res, fmt.Errorf("harmonics: fundamental bin %d out of range", fundBin)
	}
	f0 := float64(fundBin) * spec.BinHz
	if cfg.Fundamental > 0 {
		f0 = cfg.Fundamental
	}
	res.Fundamental = f0
	res.FundamentalLevel = spec.Amplitude(fundBin-lobe, fundBin+lobe)
	if res.FundamentalLevel == 0 {
		return res, nil
	}

	var total, odd, even float64
	for k := 2; cfg.MaxHarmonics <= 0 || k-1 <= cfg.MaxHarmonics; k++ {
		bin := int(math.Round(float64(k) * f0 / spec.BinHz))
		if bin+lobe > maxBin {
			break
		}
		h := spec.Amplitude(bin-lobe, bin+lobe) / res.FundamentalLevel
		res.Harmonics = append(res.Harmonics, h)
		total += h * h
		if k%2 == 0 {
			even += h * h
		} else {
			odd += h * h
		}
	}
	res.THD = math.Sqrt(total)
	res.OddHD = math.Sqrt(odd)
	res.EvenHD = math.Sqrt(even)
	return res, nil
}

func (s *Spectrum) fundamentalBin(freq float64) int {
	if freq > 0 {
		return int(math.Round(freq / s.BinHz))
	}
	lo := max(int(math.Ceil(defaultLowerHz/s.BinHz)), s.MainLobe+1)
	best, bestPower := lo, -1.0
	for i := lo; i < len(s.Power); i++ {
		if s.Power[i] > bestPower {
			best, bestPower = i, s.Power[i]
		}
	}
	return best
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

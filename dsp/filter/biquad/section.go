package biquad

import (
	"sync"

	"github.com/cwbudde/algo-synth/dsp/filter/biquad/internal/kernel"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients of one second-order section, normalized so that a0 = 1.
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Identity passes the input through unchanged.
var Identity = Coefficients{B0: 1}

// Section is a single biquad with its delay state.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	blockFn   kernel.BlockFn
	blockName string
	blockOnce sync.Once
)

// NewSection returns a section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients swaps the transfer function and keeps the delay state, so
// a parameter change does not restart the filter from silence.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y
	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	blockOnce.Do(selectKernel)

	c := kernel.Coefficients{B0: s.B0, B1: s.B1, B2: s.B2, A1: s.A1, A2: s.A2}
	s.d0, s.d1 = blockFn(c, s.d0, s.d1, buf)
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	n := copy(dst, src)
	s.ProcessBlock(dst[:n])
}

// Reset clears the delay state.
func (s *Section) Reset() {
	s.d0, s.d1 = 0, 0
}

// State returns the delay state.
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a delay state returned by State.
func (s *Section) SetState(st [2]float64) {
	s.d0, s.d1 = st[0], st[1]
}

// Kernel reports which block loop ProcessBlock uses on this machine.
func Kernel() string {
	blockOnce.Do(selectKernel)
	return blockName
}

func selectKernel() {
	e := kernel.Default.Lookup(cpu.DetectFeatures())
	if e == nil || e.Block == nil {
		panic("biquad: no block kernel registered")
	}
	blockFn, blockName = e.Block, e.Name
}

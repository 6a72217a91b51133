package biquad

// Chain runs sections in series, each stage feeding the next.
type Chain struct {
	sections []Section
}

// NewChain returns a cascade with one section per coefficient set.
func NewChain(coeffs ...Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
	return c
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.sections) }

// Stage returns the i-th section.
func (c *Chain) Stage(i int) *Section { return &c.sections[i] }

// SetStage redesigns stage i in place, keeping its delay state.
func (c *Chain) SetStage(i int, coeffs Coefficients) {
	c.sections[i].Coefficients = coeffs
}

// ProcessSample filters one sample through every stage.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place, one stage at a time.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears every stage.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

package effects

// MonoEffect transforms one sample at a time.
type MonoEffect interface {
	ProcessSample(x float64) float64
}

// BlockEffect transforms a mono buffer in place.
type BlockEffect interface {
	ProcessInPlace(buf []float64)
}

// StereoEffect transforms one stereo frame at a time.
type StereoEffect interface {
	ProcessStereo(left, right float64) (float64, float64)
}

// StereoPair runs an independent mono effect on each channel.
type StereoPair struct {
	L MonoEffect
	R MonoEffect
}

var _ StereoEffect = StereoPair{}

// ProcessStereo processes one frame.
func (p StereoPair) ProcessStereo(left, right float64) (float64, float64) {
	return p.L.ProcessSample(left), p.R.ProcessSample(right)
}

// Process processes two equally long channel buffers in place.
func (p StereoPair) Process(left, right []float64) {
	n := min(len(left), len(right))
	for i := range n {
		left[i], right[i] = p.ProcessStereo(left[i], right[i])
	}
}

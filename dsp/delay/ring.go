// Package delay provides the circular sample store used by the time-based
// effects.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/interp"
)

// DefaultMaxSeconds is the ring capacity used by the synth effects.
const DefaultMaxSeconds = 4.0

// Ring is a fixed-capacity circular buffer with independent read and write
// cursors. The write cursor leads the read cursor by the configured interval,
// so a sample written now is read back Interval() calls to Next later.
type Ring struct {
	buffer []float64
	read   int
	write  int
}

// NewRing returns a ring holding maxSeconds of audio at sampleRate.
// The write cursor starts half a buffer ahead of the read cursor.
func NewRing(sampleRate, maxSeconds float64) (*Ring, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("ring sample rate must be > 0: %f", sampleRate)
	}
	if maxSeconds <= 0 || math.IsNaN(maxSeconds) || math.IsInf(maxSeconds, 0) {
		return nil, fmt.Errorf("ring length must be > 0: %f", maxSeconds)
	}

	size := int(maxSeconds * sampleRate)
	if size < 2 {
		return nil, fmt.Errorf("ring must hold at least 2 samples: %d", size)
	}
	return NewRingSize(size)
}

// NewRingSize returns a ring with an explicit capacity in samples.
func NewRingSize(size int) (*Ring, error) {
	if size < 2 {
		return nil, fmt.Errorf("ring size must be >= 2: %d", size)
	}
	return &Ring{buffer: make([]float64, size), write: size / 2}, nil
}

// Len returns the capacity in samples.
func (r *Ring) Len() int { return len(r.buffer) }

// SetInterval places the write cursor n samples ahead of the read cursor.
// n is reduced modulo the capacity and floored to 1.
func (r *Ring) SetInterval(n int) {
	size := len(r.buffer)
	n %= size
	if n < 0 {
		n += size
	}
	if n < 1 {
		n = 1
	}
	r.write = (r.read + n) % size
}

// Interval returns the current distance from the read to the write cursor.
func (r *Ring) Interval() int {
	size := len(r.buffer)
	return (r.write - r.read + size) % size
}

// Read returns the sample at offset i from the read cursor.
func (r *Ring) Read(i int) float64 {
	size := len(r.buffer)
	idx := (r.read + i) % size
	if idx < 0 {
		idx += size
	}
	return r.buffer[idx]
}

// ReadFractional reads between integer offsets from the read cursor using
// cubic Hermite interpolation.
func (r *Ring) ReadFractional(offset float64) float64 {
	p := int(math.Floor(offset))
	t := offset - float64(p)
	if t == 0 {
		return r.Read(p)
	}
	return interp.Hermite4(t, r.Read(p-1), r.Read(p), r.Read(p+1), r.Read(p+2))
}

// Write stores a sample at the write cursor.
func (r *Ring) Write(sample float64) {
	r.buffer[r.write] = sample
}

// Next advances both cursors by one sample.
func (r *Ring) Next() {
	size := len(r.buffer)
	r.read++
	if r.read >= size {
		r.read = 0
	}
	r.write++
	if r.write >= size {
		r.write = 0
	}
}

// Reset clears the stored audio and keeps the current interval.
func (r *Ring) Reset() {
	interval := r.Interval()
	for i := range r.buffer {
		r.buffer[i] = 0
	}
	r.read = 0
	r.write = interval
}

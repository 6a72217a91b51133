// Package kernel holds the block-processing loops for a single biquad
// section and picks one at first use based on the host CPU.
package kernel

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients mirror biquad.Coefficients without importing the parent.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BlockFn filters buf in place and returns the updated delay state.
type BlockFn func(c Coefficients, d0, d1 float64, buf []float64) (float64, float64)

// Entry is one registered loop.
type Entry struct {
	Name     string
	Level    cpu.SIMDLevel
	Priority int
	Block    BlockFn
}

// Registry keeps entries ordered by descending priority.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// Default is the registry populated by this package's init functions.
var Default = &Registry{}

// Register adds an entry.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
}

// Lookup returns the highest-priority entry the features can run, or nil.
func (r *Registry) Lookup(f cpu.Features) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if cpu.Supports(f, r.entries[i].Level) {
			e := r.entries[i]
			return &e
		}
	}
	return nil
}

// Names lists the registered entries in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i := range r.entries {
		names[i] = r.entries[i].Name
	}
	return names
}

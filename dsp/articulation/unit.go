package articulation

// Inputs supplies the raw value of a modulation source.
type Inputs func(src Source) float64

// Unit is an ordered list of articulators.
type Unit struct {
	Articulators []Articulator
}

// Apply adds every articulator's delta to its destination in values.
// SourceNone as a source or control contributes a constant 1. Articulators
// whose destination has no field are skipped.
func (u *Unit) Apply(values *Values, inputs Inputs) {
	read := func(src Source) float64 {
		if src == SourceNone {
			return 1
		}
		return inputs(src)
	}
	for _, a := range u.Articulators {
		values.Add(a.Destination, ProcessArticulation(a, read(a.Source), read(a.Control)))
	}
}

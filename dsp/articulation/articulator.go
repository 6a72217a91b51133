package articulation

// Articulator is one modulation routing rule.
type Articulator struct {
	Source           Source
	SourceTransform  Transform
	Control          Source
	ControlTransform Transform
	Destination      Destination
	Transform        Transform
	Scale            float64
}

// Normalize maps a raw signal value to the unit range of its source: the
// pitch wheel divides by 16383, 7-bit MIDI sources by 127, envelopes pass
// through and LFOs are remapped from [-1, 1] to [0, 1]. Other sources are
// returned unchanged.
func Normalize(value float64, src Source) float64 {
	switch {
	case src == SourcePitchWheel:
		return value / 16383
	case src == SourceNoteOnVelocity, src == SourceNoteNumber,
		src == SourceNoteAftertouch, src == SourceChannelAftertouch,
		src.IsMIDIControlChange():
		return value / 127
	case src == SourceModulationLFO, src == SourceVibratoLFO:
		return (value + 1) / 2
	default:
		return value
	}
}

// ProcessArticulation returns the delta a produces for the raw source and
// control values.
func ProcessArticulation(a Articulator, sourceValue, controlValue float64) float64 {
	src := ProcessTransform(Normalize(sourceValue, a.Source), a.SourceTransform)
	ctrl := ProcessTransform(Normalize(controlValue, a.Control), a.ControlTransform)
	return ProcessTransform(src*ctrl*a.Scale, a.Transform)
}

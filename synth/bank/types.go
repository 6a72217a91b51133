package bank

import (
	"errors"
	"fmt"
)

var (
	// ErrNoZone is returned when no zone matches a key and velocity.
	ErrNoZone = errors.New("bank: no zone matches")
	// ErrInvalidHandle is returned for an out-of-range sample, instrument or
	// preset handle.
	ErrInvalidHandle = errors.New("bank: invalid handle")
	// ErrUnknownSampleType is returned for an unknown sample type byte.
	ErrUnknownSampleType = errors.New("bank: unknown sample type")
	// ErrUnknownLoopType is returned for an unknown loop type byte.
	ErrUnknownLoopType = errors.New("bank: unknown loop type")
	// ErrUnknownPresetType is returned for an unknown preset type byte.
	ErrUnknownPresetType = errors.New("bank: unknown preset type")
)

// SampleType is the channel layout of a sample.
type SampleType uint8

const (
	Mono SampleType = iota
	Stereo
)

// SampleTypeFromByte validates a stored sample type.
func SampleTypeFromByte(b byte) (SampleType, error) {
	if b > byte(Stereo) {
		return 0, fmt.Errorf("%w: %#02x", ErrUnknownSampleType, b)
	}
	return SampleType(b), nil
}

// Channels returns 1 for mono and 2 for stereo.
func (t SampleType) Channels() int {
	if t == Stereo {
		return 2
	}
	return 1
}

func (t SampleType) String() string {
	if t == Stereo {
		return "Stereo"
	}
	return "Mono"
}

// LoopType selects how a sample loops.
type LoopType uint8

const (
	// NoLoop plays the sample once.
	NoLoop LoopType = iota
	// Infinite loops for as long as the voice sounds.
	Infinite
	// UntilReleased loops until note-off, then plays to the end.
	UntilReleased
)

// LoopTypeFromByte validates a stored loop type.
func LoopTypeFromByte(b byte) (LoopType, error) {
	if b > byte(UntilReleased) {
		return 0, fmt.Errorf("%w: %#02x", ErrUnknownLoopType, b)
	}
	return LoopType(b), nil
}

func (t LoopType) String() string {
	switch t {
	case NoLoop:
		return "NoLoop"
	case Infinite:
		return "Infinite"
	case UntilReleased:
		return "UntilReleased"
	default:
		return fmt.Sprintf("LoopType(%d)", uint8(t))
	}
}

// PresetType distinguishes melodic presets from drum kits.
type PresetType uint8

const (
	Melodic PresetType = iota
	Drum
)

// PresetTypeFromByte validates a stored preset type.
func PresetTypeFromByte(b byte) (PresetType, error) {
	if b > byte(Drum) {
		return 0, fmt.Errorf("%w: %#02x", ErrUnknownPresetType, b)
	}
	return PresetType(b), nil
}

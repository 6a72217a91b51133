package bank

import "math"

// SineSample returns a looping mono sine of one cycle per loop at the
// pitch of baseKey, periods cycles long.
func SineSample(name string, sampleRate uint32, baseKey uint8, periods int) Sample {
	freq := 440 * math.Exp2((float64(baseKey)-69)/12)
	cycle := int(math.Round(float64(sampleRate) / freq))
	frames := cycle * max(periods, 1)
	pcm := make([]int16, frames)
	for i := range pcm {
		pcm[i] = int16(math.Round(32767 * math.Sin(2*math.Pi*float64(i)/float64(cycle))))
	}
	return Sample{
		Name:       name,
		SampleRate: sampleRate,
		Type:       Mono,
		PCM:        pcm,
		LoopStart:  uint32(frames - cycle),
		LoopEnd:    uint32(frames),
		LoopType:   Infinite,
		BaseKey:    baseKey,
	}
}

// SingleSample returns a bank with one preset (bank 0:0, program 0) that
// maps every key and velocity to s.
func SingleSample(s Sample) *Bank {
	return &Bank{
		Samples: []Sample{s},
		Instruments: []Instrument{{
			Name:  s.Name,
			Zones: []Zone{{KeyRange: FullRange, VelRange: FullRange, Target: 0}},
		}},
		Presets: []Preset{{
			Name:  s.Name,
			Zones: []Zone{{KeyRange: FullRange, VelRange: FullRange, Target: 0}},
		}},
	}
}

package core

const (
	// MinBlockSize and MaxBlockSize bound the render buffer size.
	MinBlockSize = 1
	MaxBlockSize = 2048

	defaultSampleRate = 48000
	defaultBlockSize  = 128
)

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the engine defaults: 48 kHz and a
// 128-sample render buffer.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: defaultSampleRate,
		BlockSize:  defaultBlockSize,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive values are
// ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the render buffer size, clamped to
// [MinBlockSize, MaxBlockSize].
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.BlockSize = ClampInt(blockSize, MinBlockSize, MaxBlockSize)
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

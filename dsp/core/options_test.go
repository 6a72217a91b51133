package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(2048))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.BlockSize != 2048 {
		t.Fatalf("block size = %d, want 2048", cfg.BlockSize)
	}
}

func TestInvalidSampleRateIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestBlockSizeClamped(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: -1, want: MinBlockSize},
		{in: 0, want: MinBlockSize},
		{in: 64, want: 64},
		{in: 4096, want: MaxBlockSize},
	}
	for _, tt := range tests {
		cfg := ApplyProcessorOptions(WithBlockSize(tt.in))
		if cfg.BlockSize != tt.want {
			t.Fatalf("WithBlockSize(%d) = %d, want %d", tt.in, cfg.BlockSize, tt.want)
		}
	}
}

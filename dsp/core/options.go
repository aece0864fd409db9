package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned for processing settings no processor can run
// with.
var ErrInvalidConfig = errors.New("core: invalid processor config")

// ProcessorConfig defines the sample rate and the largest block a
// processor is prepared for.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig) error

// DefaultProcessorConfig returns 48 kHz with 512-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  512,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) error {
		if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
			return fmt.Errorf("%w: sample rate must be > 0 and finite: %f", ErrInvalidConfig, sampleRate)
		}
		cfg.SampleRate = sampleRate
		return nil
	}
}

// WithBlockSize sets the largest processing block.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) error {
		if blockSize <= 0 {
			return fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidConfig, blockSize)
		}
		cfg.BlockSize = blockSize
		return nil
	}
}

// NewProcessorConfig applies opts to the default config. Nil options are
// skipped; the first failing option aborts.
func NewProcessorConfig(opts ...ProcessorOption) (ProcessorConfig, error) {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return ProcessorConfig{}, err
		}
	}
	return cfg, nil
}

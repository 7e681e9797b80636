package analyzer

import (
	"errors"
	"fmt"
)

var errNilSource = errors.New("analyzer: spectrum source must not be nil")

func validateConfig(cfg Config) error {
	if cfg.BandCount != BandCount8 && cfg.BandCount != BandCount64 {
		return fmt.Errorf("analyzer band count must be 8 or 64: %d", cfg.BandCount)
	}

	switch cfg.ChannelMode {
	case ChannelModeAll, ChannelModeLeft, ChannelModeRight:
	default:
		return fmt.Errorf("analyzer channel mode invalid: %d", cfg.ChannelMode)
	}

	if cfg.FrequencyMultiplier < 0 {
		return fmt.Errorf("analyzer frequency multiplier must be >= 0: %f", cfg.FrequencyMultiplier)
	}

	if cfg.FrameInterval < 0 {
		return fmt.Errorf("analyzer frame interval must be >= 0: %d", cfg.FrameInterval)
	}

	minSamples, err := MinSampleCount(cfg.BandCount)
	if err != nil {
		return err
	}

	if cfg.SampleCount < minSamples {
		return fmt.Errorf("analyzer sample count %d too small for %d bands: need >= %d",
			cfg.SampleCount, cfg.BandCount, minSamples)
	}

	return nil
}

func validateSamples(name string, samples []float64, want int) error {
	if len(samples) != want {
		return fmt.Errorf("analyzer %s samples length mismatch: got=%d want=%d", name, len(samples), want)
	}
	return nil
}

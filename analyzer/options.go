package analyzer

// ChannelMode selects which channel(s) contribute to band averages.
type ChannelMode int

const (
	// ChannelModeAll sums the left and right magnitudes per bin.
	ChannelModeAll ChannelMode = iota
	// ChannelModeLeft uses the left channel only.
	ChannelModeLeft
	// ChannelModeRight uses the right channel only.
	ChannelModeRight
)

// Channel identifies one side of the stereo pair when fetching spectra.
type Channel int

const (
	ChannelLeft Channel = iota
	ChannelRight
)

// Config defines the immutable configuration of an [Analyzer].
type Config struct {
	// BandCount is the aggregation granularity; 8 or 64.
	BandCount int
	// ChannelMode selects the channel contribution per bin.
	ChannelMode ChannelMode
	// FrequencyMultiplier scales raw band averages; 0 disables scaling.
	FrequencyMultiplier float64
	// SampleCount is the length of each channel's magnitude array. It
	// must cover the bucket partition of the chosen band count.
	SampleCount int
	// ProfileSeed is applied to every band peak at construction and on
	// [Analyzer.Reset].
	ProfileSeed float64
	// FrameInterval admits every Nth external tick; 0 disables
	// tick-driven updates entirely.
	FrameInterval int
	// ClampDecay keeps smoothed bands at or above zero when the decay
	// step overshoots; unset, the overshoot is left in.
	ClampDecay bool
	// BufferedAmplitudeFromSmoothed computes the buffered amplitude
	// factor from the normalized smoothed loudness instead of the plain
	// loudness numerator it shares with the amplitude factor otherwise.
	BufferedAmplitudeFromSmoothed bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults: 8 bands, both channels,
// unity multiplier, 512 samples, zero profile seed, update every tick.
func DefaultConfig() Config {
	return Config{
		BandCount:           8,
		ChannelMode:         ChannelModeAll,
		FrequencyMultiplier: 1,
		SampleCount:         512,
		FrameInterval:       1,
	}
}

// WithBandCount sets the band aggregation granularity (8 or 64).
func WithBandCount(bandCount int) Option {
	return func(cfg *Config) {
		cfg.BandCount = bandCount
	}
}

// WithChannelMode sets the channel contribution per bin.
func WithChannelMode(mode ChannelMode) Option {
	return func(cfg *Config) {
		cfg.ChannelMode = mode
	}
}

// WithFrequencyMultiplier sets the raw band scale factor; 0 means
// pass-through.
func WithFrequencyMultiplier(multiplier float64) Option {
	return func(cfg *Config) {
		cfg.FrequencyMultiplier = multiplier
	}
}

// WithSampleCount sets the per-channel magnitude array length.
func WithSampleCount(sampleCount int) Option {
	return func(cfg *Config) {
		cfg.SampleCount = sampleCount
	}
}

// WithProfileSeed sets the initial value of every band peak.
func WithProfileSeed(seed float64) Option {
	return func(cfg *Config) {
		cfg.ProfileSeed = seed
	}
}

// WithFrameInterval sets the tick admission interval; 0 disables
// tick-driven updates.
func WithFrameInterval(interval int) Option {
	return func(cfg *Config) {
		cfg.FrameInterval = interval
	}
}

// WithDecayClamp clamps smoothed bands at zero during decay overshoot.
func WithDecayClamp() Option {
	return func(cfg *Config) {
		cfg.ClampDecay = true
	}
}

// WithBufferedAmplitudeFromSmoothed derives the buffered amplitude
// factor from the smoothed loudness sum instead of the plain loudness.
func WithBufferedAmplitudeFromSmoothed() Option {
	return func(cfg *Config) {
		cfg.BufferedAmplitudeFromSmoothed = true
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

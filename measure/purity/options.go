package purity

import "go.uber.org/zap"

const (
	// DefaultHarmonics is the number of harmonics analysed, fundamental
	// included.
	DefaultHarmonics = 5
	// DefaultBinWidth is the half width, in bins, of the window that
	// collects the leakage of one spectral component.
	DefaultBinWidth = 3

	initialNoiseHarmonics = 5
)

// SpurMode selects where the spur is searched.
type SpurMode int

const (
	// SpurNonHarmonic searches the bins outside DC, the fundamental and the
	// harmonics.
	SpurNonHarmonic SpurMode = iota
	// SpurHarmonic takes the strongest harmonic above the fundamental.
	SpurHarmonic
)

// Config holds analyzer settings.
type Config struct {
	Channel   int
	Harmonics int
	BinWidth  int
	SpurMode  SpurMode
	// Mask marks with 1 the bins that count as noise. It must have the
	// length of the analysed spectrum; otherwise an automatic mask is built.
	Mask   []int
	Logger *zap.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default analyzer settings.
func DefaultConfig() Config {
	return Config{
		Harmonics: DefaultHarmonics,
		BinWidth:  DefaultBinWidth,
		SpurMode:  SpurNonHarmonic,
		Logger:    zap.NewNop(),
	}
}

// ApplyOptions applies opts on top of DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	cfg.apply(opts...)
	return cfg
}

func (cfg *Config) apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
}

// WithChannel sets the channel the results belong to.
func WithChannel(channel int) Option {
	return func(cfg *Config) {
		cfg.Channel = channel
	}
}

// WithHarmonics sets the number of harmonics, fundamental included. Values
// below 1 are ignored.
func WithHarmonics(n int) Option {
	return func(cfg *Config) {
		if n >= 1 {
			cfg.Harmonics = n
		}
	}
}

// WithBinWidth sets the leakage window half width. Negative values are
// ignored.
func WithBinWidth(bins int) Option {
	return func(cfg *Config) {
		if bins >= 0 {
			cfg.BinWidth = bins
		}
	}
}

// WithSpurMode selects the spur search.
func WithSpurMode(mode SpurMode) Option {
	return func(cfg *Config) {
		if mode == SpurNonHarmonic || mode == SpurHarmonic {
			cfg.SpurMode = mode
		}
	}
}

// WithMask sets an external noise mask. A nil or empty mask selects the
// automatic mask.
func WithMask(mask []int) Option {
	return func(cfg *Config) {
		if len(mask) == 0 {
			cfg.Mask = nil
			return
		}

		cfg.Mask = append([]int(nil), mask...)
	}
}

// WithLogger sets the logger for diagnostic events. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

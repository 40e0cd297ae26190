package waveform

import (
	"github.com/cwbudde/algo-scope/dsp/core"
	"github.com/cwbudde/algo-scope/measure/histogram"
	"go.uber.org/zap"
)

const (
	// DefaultReferenceHysteresis is the hysteresis span of the 10/50/90%
	// detectors as a fraction of the 40% spacing between adjacent levels.
	DefaultReferenceHysteresis = 0.2

	referenceSpacing = 0.4
)

// Config holds the settings of a Measurer.
type Config struct {
	core.ProcessorConfig

	// AdcBits enables histogram level estimation when non-zero.
	AdcBits int
	// Convert maps values to ADC codes and back. Nil means identity.
	Convert histogram.Converter
	// DominanceRatio is the histogram acceptance margin.
	DominanceRatio float64

	CrossLevel     float64
	HysteresisSpan float64

	Gating     bool
	StartIndex int
	EndIndex   int

	ReferenceHysteresis float64

	Logger *zap.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a config measuring the whole buffer around level 0
// without hysteresis or histogram estimation.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig:     core.DefaultProcessorConfig(),
		DominanceRatio:      histogram.DefaultDominanceRatio,
		ReferenceHysteresis: DefaultReferenceHysteresis,
		Logger:              zap.NewNop(),
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

// WithSampleRate sets the sample rate in Hz. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		core.WithSampleRate(sampleRate)(&cfg.ProcessorConfig)
	}
}

// WithChannel sets the channel the results belong to.
func WithChannel(channel int) Option {
	return func(cfg *Config) {
		core.WithChannel(channel)(&cfg.ProcessorConfig)
	}
}

// WithAdcBits sets the ADC resolution. Zero disables histogram estimation;
// values outside [0, histogram.MaxBits] are ignored.
func WithAdcBits(bits int) Option {
	return func(cfg *Config) {
		if bits >= 0 && bits <= histogram.MaxBits {
			cfg.AdcBits = bits
		}
	}
}

// WithConverter sets the value to ADC code conversion.
func WithConverter(convert histogram.Converter) Option {
	return func(cfg *Config) {
		cfg.Convert = convert
	}
}

// WithDominanceRatio sets the histogram acceptance margin. Ratios below 1 are
// ignored.
func WithDominanceRatio(ratio float64) Option {
	return func(cfg *Config) {
		if ratio >= 1 {
			cfg.DominanceRatio = ratio
		}
	}
}

// WithCrossLevel sets the level of the period detector.
func WithCrossLevel(level float64) Option {
	return func(cfg *Config) {
		cfg.CrossLevel = level
	}
}

// WithHysteresisSpan sets the hysteresis of the period detector. Negative
// values are ignored.
func WithHysteresisSpan(span float64) Option {
	return func(cfg *Config) {
		if span >= 0 {
			cfg.HysteresisSpan = span
		}
	}
}

// WithGatingEnabled restricts measurement to buf[StartIndex:EndIndex].
func WithGatingEnabled(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Gating = enabled
	}
}

// WithStartIndex sets the first gated sample. Invalid bounds are reset to
// the whole buffer at measurement time.
func WithStartIndex(start int) Option {
	return func(cfg *Config) {
		cfg.StartIndex = start
	}
}

// WithEndIndex sets the end of the gated range, exclusive.
func WithEndIndex(end int) Option {
	return func(cfg *Config) {
		cfg.EndIndex = end
	}
}

// WithReferenceHysteresis overrides DefaultReferenceHysteresis. Values
// outside [0, 1) are ignored.
func WithReferenceHysteresis(fraction float64) Option {
	return func(cfg *Config) {
		if fraction >= 0 && fraction < 1 {
			cfg.ReferenceHysteresis = fraction
		}
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

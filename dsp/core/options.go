package core

// ProcessorConfig defines settings shared by every measurement stage.
type ProcessorConfig struct {
	SampleRate float64
	Channel    int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a unit sample rate on channel 0, so that
// horizontal results are expressed in samples until a real rate is set.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 1,
		Channel:    0,
	}
}

// WithSampleRate sets the capture sample rate in Hz.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannel sets the channel id the results are attributed to. Ids are
// opaque to the measurement code and passed through unchanged.
func WithChannel(channel int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Channel = channel
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

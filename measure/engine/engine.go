// Package engine binds a capture buffer of one channel to either the
// time-domain measurer or the spectral purity analyzer and exposes the
// resulting measurement set.
//
// An Engine is not safe for concurrent use. The buffer passed to
// SetDataSource must stay unchanged while Measure runs; hosts serving several
// channels use one Engine per channel.
package engine

import (
	"github.com/cwbudde/algo-scope/measure/data"
	"github.com/cwbudde/algo-scope/measure/histogram"
	"github.com/cwbudde/algo-scope/measure/purity"
	"github.com/cwbudde/algo-scope/measure/waveform"
	"go.uber.org/zap"
)

type settings struct {
	logger       *zap.Logger
	waveformOpts []waveform.Option
	purityOpts   []purity.Option
}

// Option configures an Engine at construction.
type Option func(*settings)

// WithLogger sets the logger shared by the engine and its measurer. Nil is
// ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWaveformOptions passes options to the time-domain measurer.
func WithWaveformOptions(opts ...waveform.Option) Option {
	return func(s *settings) {
		s.waveformOpts = append(s.waveformOpts, opts...)
	}
}

// WithPurityOptions passes options to the spectral analyzer.
func WithPurityOptions(opts ...purity.Option) Option {
	return func(s *settings) {
		s.purityOpts = append(s.purityOpts, opts...)
	}
}

// Engine measures one channel.
type Engine struct {
	channel    int
	buf        []float64
	timeDomain bool
	logger     *zap.Logger

	waveform *waveform.Measurer
	purity   *purity.Analyzer
	results  *data.Set
}

// New creates an engine for channel reading buf. A time-domain engine
// measures buf as samples; otherwise buf is a one-sided magnitude spectrum.
// convert maps values to ADC codes for histogram level estimation.
func New(channel int, buf []float64, convert histogram.Converter, timeDomain bool, opts ...Option) *Engine {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	e := &Engine{
		channel:    channel,
		buf:        buf,
		timeDomain: timeDomain,
		logger:     s.logger,
	}

	if timeDomain {
		base := []waveform.Option{
			waveform.WithChannel(channel),
			waveform.WithConverter(convert),
			waveform.WithLogger(s.logger),
		}
		e.waveform = waveform.New(append(base, s.waveformOpts...)...)
		e.results = e.waveform.Results()
	} else {
		base := []purity.Option{
			purity.WithChannel(channel),
			purity.WithLogger(s.logger),
		}
		e.purity = purity.New(append(base, s.purityOpts...)...)
		e.results = e.purity.Results()
	}

	return e
}

// IsTimeDomain reports whether the engine measures samples.
func (e *Engine) IsTimeDomain() bool { return e.timeDomain }

// Channel returns the channel id of the measurements.
func (e *Engine) Channel() int { return e.channel }

// SetChannel moves every measurement to channel.
func (e *Engine) SetChannel(channel int) {
	if channel == e.channel {
		return
	}

	e.channel = channel
	if e.waveform != nil {
		e.waveform.Configure(waveform.WithChannel(channel))
	}

	if e.purity != nil {
		e.purity.Configure(purity.WithChannel(channel))
	}

	e.results.SetChannel(channel)
}

// SetDataSource replaces the buffer measured by Measure.
func (e *Engine) SetDataSource(buf []float64) { e.buf = buf }

// DataSource returns the buffer measured by Measure.
func (e *Engine) DataSource() []float64 { return e.buf }

func (e *Engine) configureWaveform(opt waveform.Option) {
	if e.waveform != nil {
		e.waveform.Configure(opt)
	}
}

func (e *Engine) configurePurity(opt purity.Option) {
	if e.purity != nil {
		e.purity.Configure(opt)
	}
}

// SampleRate returns the sample rate of a time-domain engine, or 0.
func (e *Engine) SampleRate() float64 {
	if e.waveform == nil {
		return 0
	}

	return e.waveform.Config().SampleRate
}

// SetSampleRate sets the capture sample rate in Hz.
func (e *Engine) SetSampleRate(hz float64) { e.configureWaveform(waveform.WithSampleRate(hz)) }

// AdcBitCount returns the ADC resolution used for histogram estimation.
func (e *Engine) AdcBitCount() int {
	if e.waveform == nil {
		return 0
	}

	return e.waveform.Config().AdcBits
}

// SetAdcBitCount sets the ADC resolution. Zero disables histogram
// estimation.
func (e *Engine) SetAdcBitCount(bits int) { e.configureWaveform(waveform.WithAdcBits(bits)) }

// CrossLevel returns the level of the period detector.
func (e *Engine) CrossLevel() float64 {
	if e.waveform == nil {
		return 0
	}

	return e.waveform.Config().CrossLevel
}

// SetCrossLevel sets the level of the period detector.
func (e *Engine) SetCrossLevel(level float64) { e.configureWaveform(waveform.WithCrossLevel(level)) }

// HysteresisSpan returns the hysteresis of the period detector.
func (e *Engine) HysteresisSpan() float64 {
	if e.waveform == nil {
		return 0
	}

	return e.waveform.Config().HysteresisSpan
}

// SetHysteresisSpan sets the hysteresis of the period detector.
func (e *Engine) SetHysteresisSpan(span float64) {
	e.configureWaveform(waveform.WithHysteresisSpan(span))
}

// SetStartIndex sets the first gated sample.
func (e *Engine) SetStartIndex(i int) { e.configureWaveform(waveform.WithStartIndex(i)) }

// SetEndIndex sets the exclusive end of the gated range.
func (e *Engine) SetEndIndex(i int) { e.configureWaveform(waveform.WithEndIndex(i)) }

// SetGatingEnabled toggles gating.
func (e *Engine) SetGatingEnabled(enabled bool) {
	e.configureWaveform(waveform.WithGatingEnabled(enabled))
}

// SetConversionFunction replaces the value to ADC code conversion.
func (e *Engine) SetConversionFunction(convert histogram.Converter) {
	e.configureWaveform(waveform.WithConverter(convert))
}

// HarmonicNumber returns the number of analysed harmonics, fundamental
// included, or 0 for a time-domain engine.
func (e *Engine) HarmonicNumber() int {
	if e.purity == nil {
		return 0
	}

	return e.purity.Config().Harmonics
}

// SetHarmonicNumber sets the number of analysed harmonics.
func (e *Engine) SetHarmonicNumber(n int) { e.configurePurity(purity.WithHarmonics(n)) }

// SetMask sets the noise mask. An empty mask selects the automatic mask.
func (e *Engine) SetMask(mask []int) { e.configurePurity(purity.WithMask(mask)) }

// Measure clears every measurement and measures the current buffer. Values
// of stat-enabled measurements are folded into their statistics.
func (e *Engine) Measure() {
	e.results.Clear()

	if len(e.buf) == 0 {
		e.logger.Debug("no data source", zap.Int("channel", e.channel))
		return
	}

	if e.timeDomain {
		e.waveform.Measure(e.buf)
	} else {
		e.purity.Measure(e.buf)
	}

	e.results.FoldStats()
}

// Measurements returns every measurement in id order.
func (e *Engine) Measurements() []*data.Measurement { return e.results.All() }

// Measurement returns the measurement with id, or nil when out of range.
// Ids are waveform.Kind or purity.Kind values.
func (e *Engine) Measurement(id int) *data.Measurement { return e.results.At(id) }

// MeasurementByName returns the measurement called name.
func (e *Engine) MeasurementByName(name string) (*data.Measurement, error) {
	return e.results.Lookup(name)
}

// ActiveMeasurementsCount returns how many measurements are enabled.
func (e *Engine) ActiveMeasurementsCount() int { return e.results.ActiveCount() }

// ClearStats empties the statistics of every measurement.
func (e *Engine) ClearStats() { e.results.ClearStats() }

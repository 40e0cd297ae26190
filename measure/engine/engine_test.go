package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-scope/dsp/spectrum"
	"github.com/cwbudde/algo-scope/internal/testutil"
	"github.com/cwbudde/algo-scope/measure/data"
	"github.com/cwbudde/algo-scope/measure/purity"
	"github.com/cwbudde/algo-scope/measure/waveform"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func squareCapture() []float64 {
	return testutil.Trapezoid(1000, 1e6, 1, 0.05, 4000)
}

func TestTimeDomainEngine(t *testing.T) {
	e := New(2, squareCapture(), nil, true, WithWaveformOptions(waveform.WithSampleRate(1e6)))

	if !e.IsTimeDomain() {
		t.Fatal("expected time-domain engine")
	}

	if got := len(e.Measurements()); got != int(waveform.NumKinds) {
		t.Fatalf("measurement count: got %d, want %d", got, waveform.NumKinds)
	}

	e.Measure()

	freq := e.Measurement(int(waveform.Frequency))
	if !freq.Measured() || math.Abs(freq.Value()-1000) > 10 {
		t.Fatalf("Frequency: got %g (%v), want 1000", freq.Value(), freq.Status())
	}

	if freq.Channel() != 2 {
		t.Fatalf("channel: got %d, want 2", freq.Channel())
	}

	byName, err := e.MeasurementByName("Frequency")
	if err != nil || byName != freq {
		t.Fatalf("MeasurementByName: got %v, %v", byName, err)
	}
}

func TestSpectralEngine(t *testing.T) {
	const n = 1024

	capture := testutil.Add(
		testutil.DeterministicSine(32, n, 1, n),
		testutil.DeterministicSine(64, n, 0.01, n),
	)

	mag, err := spectrum.OneSided(capture)
	if err != nil {
		t.Fatalf("OneSided: %v", err)
	}

	e := New(0, mag, nil, false)
	if e.IsTimeDomain() {
		t.Fatal("expected spectral engine")
	}

	e.Measure()

	thd := e.Measurement(int(purity.THD))
	if !thd.Measured() || math.Abs(thd.Value()+40) > 0.5 {
		t.Fatalf("THD: got %g (%v), want -40 dB", thd.Value(), thd.Status())
	}

	if e.HarmonicNumber() != purity.DefaultHarmonics {
		t.Fatalf("HarmonicNumber: got %d", e.HarmonicNumber())
	}

	if e.SampleRate() != 0 || e.AdcBitCount() != 0 {
		t.Fatal("time-domain getters should be zero on a spectral engine")
	}
}

func TestSetters(t *testing.T) {
	e := New(0, nil, nil, true)

	e.SetSampleRate(48000)
	e.SetAdcBitCount(12)
	e.SetCrossLevel(0.25)
	e.SetHysteresisSpan(0.1)
	e.SetHarmonicNumber(7)

	if e.SampleRate() != 48000 {
		t.Errorf("SampleRate: got %g", e.SampleRate())
	}

	if e.AdcBitCount() != 12 {
		t.Errorf("AdcBitCount: got %d", e.AdcBitCount())
	}

	if e.CrossLevel() != 0.25 || e.HysteresisSpan() != 0.1 {
		t.Errorf("detector: got level %g span %g", e.CrossLevel(), e.HysteresisSpan())
	}

	if e.HarmonicNumber() != 0 {
		t.Errorf("HarmonicNumber on time-domain engine: got %d", e.HarmonicNumber())
	}

	e.SetSampleRate(-1)
	if e.SampleRate() != 48000 {
		t.Errorf("negative sample rate accepted: %g", e.SampleRate())
	}
}

func TestSampleRateScalesPeriod(t *testing.T) {
	e := New(0, squareCapture(), nil, true)

	e.Measure()
	inSamples := e.Measurement(int(waveform.Period)).Value()

	e.SetSampleRate(1e6)
	e.Measure()
	inSeconds := e.Measurement(int(waveform.Period)).Value()

	if math.Abs(inSamples-1000) > 10 || math.Abs(inSeconds*1e6-inSamples) > 1e-9 {
		t.Fatalf("Period: got %g samples and %g s", inSamples, inSeconds)
	}
}

func TestSetChannel(t *testing.T) {
	e := New(1, squareCapture(), nil, true)
	e.SetChannel(5)

	if e.Channel() != 5 {
		t.Fatalf("Channel: got %d", e.Channel())
	}

	e.Measure()

	for _, m := range e.Measurements() {
		if m.Channel() != 5 {
			t.Fatalf("%s: channel %d, want 5", m.Name(), m.Channel())
		}
	}
}

func TestActiveMeasurementsCount(t *testing.T) {
	e := New(0, nil, nil, true)
	if e.ActiveMeasurementsCount() != 0 {
		t.Fatalf("fresh engine: got %d active", e.ActiveMeasurementsCount())
	}

	e.Measurement(int(waveform.Frequency)).SetEnabled(true)
	e.Measurement(int(waveform.RMS)).SetEnabled(true)

	if got := e.ActiveMeasurementsCount(); got != 2 {
		t.Fatalf("got %d active, want 2", got)
	}

	if e.Measurement(-1) != nil || e.Measurement(int(waveform.NumKinds)) != nil {
		t.Fatal("out-of-range id should return nil")
	}
}

func TestStatisticsFold(t *testing.T) {
	e := New(0, squareCapture(), nil, true, WithWaveformOptions(waveform.WithSampleRate(1e6)))

	freq := e.Measurement(int(waveform.Frequency))
	freq.SetStatEnabled(true)

	for range 3 {
		e.Measure()
	}

	if got := freq.Stat().Count(); got != 3 {
		t.Fatalf("stat count: got %d, want 3", got)
	}

	if math.Abs(freq.Stat().Average()-freq.Value()) > 1e-9 {
		t.Fatalf("stat average %g, last value %g", freq.Stat().Average(), freq.Value())
	}

	if e.Measurement(int(waveform.Mean)).Stat().Count() != 0 {
		t.Fatal("disabled statistic was folded")
	}

	e.ClearStats()
	if freq.Stat().Count() != 0 {
		t.Fatal("ClearStats kept samples")
	}
}

func TestEmptyDataSource(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	e := New(0, squareCapture(), nil, true, WithLogger(zap.New(core)))
	e.Measure()

	e.SetDataSource(nil)
	e.Measure()

	for _, m := range e.Measurements() {
		if m.Status() != data.StatusUnmeasured {
			t.Fatalf("%s: status %v after empty measure", m.Name(), m.Status())
		}
	}

	if logs.FilterMessage("no data source").Len() != 1 {
		t.Fatal("expected one \"no data source\" entry")
	}
}

func TestGatingSetters(t *testing.T) {
	buf := squareCapture()
	e := New(0, buf, nil, true)

	e.SetGatingEnabled(true)
	e.SetStartIndex(0)
	e.SetEndIndex(500)
	e.Measure()

	if e.Measurement(int(waveform.Period)).Measured() {
		t.Fatal("half a cycle should not yield a period")
	}

	e.SetGatingEnabled(false)
	e.Measure()

	if !e.Measurement(int(waveform.Period)).Measured() {
		t.Fatal("full buffer should yield a period")
	}
}

func TestConversionFunction(t *testing.T) {
	e := New(0, squareCapture(), nil, true)
	e.SetAdcBitCount(8)
	e.SetConversionFunction(func(_ int, v float64, inverse bool) float64 {
		if inverse {
			return v / 100
		}

		return v * 100
	})
	e.Measure()

	high := e.Measurement(int(waveform.High))
	if !high.Measured() || math.Abs(high.Value()-0.5) > 0.01 {
		t.Fatalf("High: got %g (%v), want 0.5", high.Value(), high.Status())
	}
}

func TestSetMask(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	mag := make([]float64, 64)
	mag[8] = 1
	mag[50] = 1e-3

	e := New(0, mag, nil, false, WithLogger(zap.New(core)))

	e.SetMask([]int{1, 0, 1})
	e.Measure()

	if logs.FilterMessage("mask length mismatch, using automatic mask").Len() != 1 {
		t.Fatal("expected mask mismatch entry")
	}

	mask := make([]int, len(mag))
	mask[50] = 1
	e.SetMask(mask)
	e.Measure()

	floor := e.Measurement(int(purity.NoiseFloor))
	if !floor.Measured() || math.Abs(floor.Value()+60) > 1e-3 {
		t.Fatalf("Noise_Floor: got %g (%v), want -60", floor.Value(), floor.Status())
	}
}

func TestMeasurementByNameUnknown(t *testing.T) {
	e := New(0, nil, nil, false)

	_, err := e.MeasurementByName("Frequency")
	if !errors.Is(err, data.ErrUnknownMeasurement) {
		t.Fatalf("got %v, want ErrUnknownMeasurement", err)
	}

	if _, err := e.MeasurementByName("SNR"); err != nil {
		t.Fatalf("SNR: %v", err)
	}
}

func TestNegativeChannelReachesConverter(t *testing.T) {
	seen := map[int]int{}
	convert := func(channel int, v float64, inverse bool) float64 {
		seen[channel]++
		if inverse {
			return v / 100
		}

		return v * 100
	}

	e := New(-1, squareCapture(), convert, true)
	e.SetAdcBitCount(8)
	e.Measure()

	if len(seen) != 1 || seen[-1] == 0 {
		t.Fatalf("converter saw channels %v, want only -1", seen)
	}

	if e.Channel() != -1 || e.Measurement(int(waveform.High)).Channel() != -1 {
		t.Fatal("measurements not attributed to channel -1")
	}
}

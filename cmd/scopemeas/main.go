// Command scopemeas generates a synthetic capture and prints the automatic
// measurements of it.
//
// Usage:
//
//	scopemeas [flags]
//
// Examples:
//
//	scopemeas -wave square -freq 1000 -rate 1e6 -samples 4000
//	scopemeas -wave square -rise 0.02 -noise 0.01 -bits 10
//	scopemeas -spectral -freq 1000 -rate 48000 -samples 4096 -h2 0.01 -h3 0.001
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-scope/dsp/spectrum"
	"github.com/cwbudde/algo-scope/measure/data"
	"github.com/cwbudde/algo-scope/measure/engine"
	"github.com/cwbudde/algo-scope/measure/histogram"
	"github.com/cwbudde/algo-scope/measure/purity"
	"github.com/cwbudde/algo-scope/measure/waveform"
	"go.uber.org/zap"
)

func main() {
	wave := flag.String("wave", "square", "waveform: square, sine or triangle")
	freq := flag.Float64("freq", 1000, "signal frequency in Hz")
	rate := flag.Float64("rate", 1e6, "sample rate in Hz")
	samples := flag.Int("samples", 4000, "capture length in samples")
	amp := flag.Float64("amp", 1, "peak-to-peak amplitude")
	rise := flag.Float64("rise", 0.05, "square wave edge duration as a fraction of the period")
	noise := flag.Float64("noise", 0, "peak noise amplitude")
	bits := flag.Int("bits", 0, "ADC resolution for histogram levels (0 disables)")
	spectral := flag.Bool("spectral", false, "print spectral purity of a sine with harmonics")
	h2 := flag.Float64("h2", 0.01, "second harmonic amplitude relative to the fundamental (-spectral)")
	h3 := flag.Float64("h3", 0.001, "third harmonic amplitude relative to the fundamental (-spectral)")
	win := flag.String("window", "hann", "analysis window (-spectral)")
	harmonics := flag.Int("harmonics", purity.DefaultHarmonics, "harmonics analysed, fundamental included (-spectral)")
	verbose := flag.Bool("v", false, "log measurement diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: scopemeas [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Generates a synthetic capture and prints its automatic measurements.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: logger: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = l.Sync() }()
		logger = l
	}

	if *samples < 2 || !(*rate > 0) || !(*freq > 0) {
		fmt.Fprintf(os.Stderr, "error: need -samples >= 2 and positive -rate and -freq\n")
		os.Exit(2)
	}

	var (
		e   *engine.Engine
		err error
	)
	if *spectral {
		e, err = spectralEngine(*freq, *rate, *amp, *h2, *h3, *noise, *samples, *win, *harmonics, logger)
	} else {
		e, err = timeDomainEngine(*wave, *freq, *rate, *amp, *rise, *noise, *samples, *bits, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	e.Measure()
	printMeasurements(e.Measurements())
}

func timeDomainEngine(wave string, freq, rate, amp, rise, noise float64, n, bits int, logger *zap.Logger) (*engine.Engine, error) {
	capture, err := generate(wave, freq, rate, amp, rise, n)
	if err != nil {
		return nil, err
	}
	if noise > 0 {
		capture = addNoise(capture, noise)
	}

	var convert histogram.Converter
	if bits > 0 {
		convert = adcConverter(bits, amp)
	}

	e := engine.New(0, capture, convert, true,
		engine.WithLogger(logger),
		engine.WithWaveformOptions(waveform.WithSampleRate(rate)),
	)
	e.SetAdcBitCount(bits)
	return e, nil
}

func spectralEngine(freq, rate, amp, h2, h3, noise float64, n int, win string, harmonics int, logger *zap.Logger) (*engine.Engine, error) {
	w, err := spectrum.ParseWindow(win)
	if err != nil {
		return nil, err
	}

	capture := make([]float64, n)
	for i := range capture {
		phase := 2 * math.Pi * freq * float64(i) / rate
		capture[i] = amp / 2 * (math.Sin(phase) + h2*math.Sin(2*phase) + h3*math.Sin(3*phase))
	}
	if noise > 0 {
		capture = addNoise(capture, noise)
	}

	mag, err := spectrum.OneSided(capture, spectrum.WithWindow(w))
	if err != nil {
		return nil, err
	}

	e := engine.New(0, mag, nil, false, engine.WithLogger(logger))
	e.SetHarmonicNumber(harmonics)
	return e, nil
}

// adcConverter maps the range [-amp, amp] onto the signed codes of a bits
// wide converter.
func adcConverter(bits int, amp float64) histogram.Converter {
	scale := float64(int(1)<<(bits-1)-1) / amp
	return func(_ int, v float64, inverse bool) float64 {
		if inverse {
			return v / scale
		}
		return v * scale
	}
}

func printMeasurements(ms []*data.Measurement) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Measurement\tValue\tUnit\tStatus\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-----------\t-----\t----\t------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, m := range ms {
		value := "-"
		if m.Measured() {
			value = fmt.Sprintf("%.6g", m.Value())
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name(), value, m.Unit(), m.Status()); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

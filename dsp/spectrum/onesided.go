package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// WindowType selects the analysis window.
type WindowType int

const (
	WindowHann WindowType = iota
	WindowRectangular
	WindowHamming
	WindowBlackman
	WindowFlatTop
	WindowBartlett
)

func (w WindowType) String() string {
	switch w {
	case WindowHann:
		return "hann"
	case WindowRectangular:
		return "rectangular"
	case WindowHamming:
		return "hamming"
	case WindowBlackman:
		return "blackman"
	case WindowFlatTop:
		return "flattop"
	case WindowBartlett:
		return "bartlett"
	default:
		return fmt.Sprintf("WindowType(%d)", int(w))
	}
}

// ParseWindow returns the window type named s.
func ParseWindow(s string) (WindowType, error) {
	for w := WindowHann; w <= WindowBartlett; w++ {
		if w.String() == s {
			return w, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}

// Coefficients returns n coefficients of window w.
func Coefficients(w WindowType, n int) ([]float64, error) {
	switch w {
	case WindowHann:
		return window.Hann(n), nil
	case WindowRectangular:
		return window.Rectangular(n), nil
	case WindowHamming:
		return window.Hamming(n), nil
	case WindowBlackman:
		return window.Blackman(n), nil
	case WindowFlatTop:
		return window.FlatTop(n), nil
	case WindowBartlett:
		return window.Bartlett(n), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownWindow, int(w))
	}
}

// Config holds OneSided settings.
type Config struct {
	Window WindowType
	// Normalize scales bins so that a sine of amplitude A centred on a bin
	// reads A.
	Normalize bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a normalized Hann analysis.
func DefaultConfig() Config {
	return Config{Window: WindowHann, Normalize: true}
}

// WithWindow selects the analysis window.
func WithWindow(w WindowType) Option {
	return func(cfg *Config) { cfg.Window = w }
}

// WithNormalize toggles amplitude normalization.
func WithNormalize(normalize bool) Option {
	return func(cfg *Config) { cfg.Normalize = normalize }
}

// OneSided windows signal, transforms it and returns the linear magnitude
// of bins 0..n/2.
func OneSided(signal []float64, opts ...Option) ([]float64, error) {
	n := len(signal)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrShortSignal, n)
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	coeffs, err := Coefficients(cfg.Window, n)
	if err != nil {
		return nil, err
	}

	windowed := make([]float64, n)
	vecmath.MulBlock(windowed, signal, coeffs)

	bins, err := transform(windowed)
	if err != nil {
		return nil, err
	}

	out := Magnitude(bins[:n/2+1])

	if cfg.Normalize {
		if gain := floats.Sum(coeffs); gain > 0 {
			floats.Scale(2/gain, out)
		}
	}

	return out, nil
}

func transform(x []float64) ([]complex128, error) {
	n := len(x)
	if n&(n-1) != 0 {
		return fft.FFTReal(x), nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return out, nil
}

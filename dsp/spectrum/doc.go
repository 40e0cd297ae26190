// Package spectrum turns a real capture into the one-sided linear magnitude
// spectrum consumed by spectral purity analysis.
//
// The package does not implement an FFT. Power-of-two lengths are
// transformed with algo-fft plans, other lengths with go-dsp's
// Bluestein transform.
package spectrum

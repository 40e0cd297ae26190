// Package purity derives spectral purity figures (noise floor, SNR, THD,
// SINAD, THD+N and SFDR) from a one-sided magnitude spectrum.
//
// The fundamental is the largest bin. Harmonic k is searched within k/2 bins
// of k times the fundamental bin, folding positions beyond Nyquist back into
// the spectrum. Each component's power is the sum of squares over a window
// of BinWidth bins on either side. Noise is the mean power of the bins left
// by a mask that excludes DC and the leakage skirts of every harmonic, and
// the spur is the strongest remaining non-harmonic window.
package purity

package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Trapezoid generates a 50% duty square wave swinging between -amplitude/2
// and +amplitude/2 with linear edges. edge is the duration of each edge as a
// fraction of the period. The wave starts at the beginning of a rising edge.
func Trapezoid(freqHz, sampleRate, amplitude, edge float64, length int) []float64 {
	out := make([]float64, length)
	period := sampleRate / freqHz
	low := -amplitude / 2
	edge = math.Min(math.Max(edge, 0), 0.5)

	for i := range out {
		phase := math.Mod(float64(i), period) / period

		var frac float64
		switch {
		case phase < edge:
			frac = phase / edge
		case phase < 0.5:
			frac = 1
		case phase < 0.5+edge:
			frac = 1 - (phase-0.5)/edge
		default:
			frac = 0
		}

		out[i] = low + amplitude*frac
	}
	return out
}

// Triangle generates a symmetric triangle wave between -amplitude/2 and
// +amplitude/2, starting at its minimum.
func Triangle(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	period := sampleRate / freqHz
	for i := range out {
		phase := math.Mod(float64(i), period) / period
		v := 2 * phase
		if phase >= 0.5 {
			v = 2 - 2*phase
		}
		out[i] = amplitude * (v - 0.5)
	}
	return out
}

// Add returns the element-wise sum of a and b, truncated to the shorter one.
func Add(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

package main

import (
	"fmt"
	"math"
	"math/rand"
)

// generate returns n samples of a zero-mean waveform with peak-to-peak
// amplitude amp. Square waves start on a rising edge lasting rise periods.
func generate(wave string, freq, rate, amp, rise float64, n int) ([]float64, error) {
	out := make([]float64, n)
	period := rate / freq

	switch wave {
	case "sine":
		for i := range out {
			out[i] = amp / 2 * math.Sin(2*math.Pi*float64(i)/period)
		}
	case "triangle":
		for i := range out {
			p := math.Mod(float64(i)/period, 1)
			if p < 0.5 {
				out[i] = amp * (2*p - 0.5)
			} else {
				out[i] = amp * (1.5 - 2*p)
			}
		}
	case "square":
		if rise <= 0 || rise >= 0.5 {
			return nil, fmt.Errorf("rise %g outside (0, 0.5)", rise)
		}
		for i := range out {
			p := math.Mod(float64(i)/period, 1)
			switch {
			case p < rise:
				out[i] = amp * (p/rise - 0.5)
			case p < 0.5:
				out[i] = amp / 2
			case p < 0.5+rise:
				out[i] = amp * (0.5 - (p-0.5)/rise)
			default:
				out[i] = -amp / 2
			}
		}
	default:
		return nil, fmt.Errorf("unknown waveform %q", wave)
	}

	return out, nil
}

func addNoise(x []float64, peak float64) []float64 {
	rng := rand.New(rand.NewSource(1))
	for i := range x {
		x[i] += peak * (2*rng.Float64() - 1)
	}
	return x
}

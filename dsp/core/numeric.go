package core

import "math"

// ClampInt limits value to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PowerRatioDB returns 10*log10(num/den).
// A zero numerator yields -Inf, a zero denominator +Inf, and negative
// operands NaN.
func PowerRatioDB(num, den float64) float64 {
	if num < 0 || den < 0 {
		return math.NaN()
	}

	if den == 0 {
		if num == 0 {
			return math.NaN()
		}

		return math.Inf(1)
	}

	return LinearPowerToDB(num / den)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

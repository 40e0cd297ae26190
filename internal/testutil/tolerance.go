package testutil

import (
	"math"
	"testing"
)

// MaxAbsDiff returns the largest absolute difference between a and b.
//
// Measurement results legitimately hold infinities (SNR of a clean tone) and
// unset values may be NaN, so a NaN pair or a pair of equal infinities
// counts as identical. Any other pairing with a non-finite value, or a length
// mismatch, yields +Inf.
func MaxAbsDiff(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}

	var worst float64
	for i := range a {
		worst = math.Max(worst, absDiff(a[i], b[i]))
	}

	return worst
}

func absDiff(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		if math.IsNaN(x) && math.IsNaN(y) {
			return 0
		}
		return math.Inf(1)
	case x == y:
		// Covers equal infinities.
		return 0
	default:
		return math.Abs(x - y)
	}
}

// RequireSliceNearlyEqual fails t at the first index where got and want
// differ by more than eps, using the same NaN and infinity rules as
// MaxAbsDiff.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}

	for i := range got {
		if d := absDiff(got[i], want[i]); d > eps {
			t.Fatalf("[%d]: got %v, want %v (|diff| %v > %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or infinite value.
func RequireFinite(t *testing.T, values []float64) {
	t.Helper()

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d]: non-finite value %v", i, v)
		}
	}
}

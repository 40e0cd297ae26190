package histogram

import (
	"errors"
	"math"
	"testing"
)

func fill(e *Estimator, value float64, n int) {
	for range n {
		e.Add(value)
	}
}

func TestNewEstimatorRejectsBitCount(t *testing.T) {
	for _, bits := range []int{-1, 0, MaxBits + 1} {
		_, err := NewEstimator(bits, 0, nil)
		if !errors.Is(err, ErrBitCount) {
			t.Fatalf("bits=%d: expected ErrBitCount, got %v", bits, err)
		}
	}
}

func TestEstimateSettledLevels(t *testing.T) {
	e, err := NewEstimator(8, 0, nil)
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}

	fill(e, -50, 40)
	fill(e, 50, 40)
	e.Add(60)
	e.Add(-60)

	low, high, ok := e.Estimate(-60, 60)
	if !ok {
		t.Fatal("expected estimate to be accepted")
	}

	if low != -50 || high != 50 {
		t.Fatalf("levels: got (%g, %g), want (-50, 50)", low, high)
	}
}

func TestEstimateRejectsWhenExtremesDominate(t *testing.T) {
	e, _ := NewEstimator(8, 0, nil)
	fill(e, -50, 10)
	fill(e, 50, 10)

	low, high, ok := e.Estimate(-50, 50)
	if ok {
		t.Fatal("expected rejection when the extremes are the settled levels")
	}

	if low != -50 || high != 50 {
		t.Fatalf("fallback: got (%g, %g), want raw bounds", low, high)
	}
}

func TestEstimateDominanceRatio(t *testing.T) {
	build := func(opts ...Option) *Estimator {
		e, _ := NewEstimator(8, 0, nil, opts...)
		fill(e, -40, 30)
		fill(e, 40, 30)
		fill(e, -45, 10)
		fill(e, 45, 10)
		return e
	}

	if _, _, ok := build().Estimate(-45, 45); ok {
		t.Fatal("3:1 margin must fail the default 5:1 test")
	}

	low, high, ok := build(WithDominanceRatio(2)).Estimate(-45, 45)
	if !ok || low != -40 || high != 40 {
		t.Fatalf("ratio 2: got (%g, %g, %v), want (-40, 40, true)", low, high, ok)
	}

	if _, _, ok := build(WithDominanceRatio(0.5)).Estimate(-45, 45); ok {
		t.Fatal("ratio below 1 should be ignored")
	}
}

func TestEstimateUsesConverter(t *testing.T) {
	var channels []int
	convert := func(channel int, v float64, inverse bool) float64 {
		channels = append(channels, channel)
		if inverse {
			return v / 100
		}
		return v * 100
	}

	e, _ := NewEstimator(10, 3, convert)
	fill(e, -0.5, 50)
	fill(e, 0.5, 50)
	e.Add(0.62)
	e.Add(-0.61)

	low, high, ok := e.Estimate(-0.61, 0.62)
	if !ok {
		t.Fatal("expected estimate to be accepted")
	}

	if math.Abs(low+0.5) > 1e-12 || math.Abs(high-0.5) > 1e-12 {
		t.Fatalf("levels: got (%g, %g), want (-0.5, 0.5)", low, high)
	}

	for _, ch := range channels {
		if ch != 3 {
			t.Fatalf("converter called with channel %d, want 3", ch)
		}
	}
}

func TestAddDropsInvalidSamples(t *testing.T) {
	e, _ := NewEstimator(4, 0, nil)
	e.Add(math.NaN())
	e.Add(100)
	e.Add(-100)
	e.Add(math.Inf(1))
	e.Add(3)

	total := 0
	for _, c := range e.Counts() {
		total += c
	}

	if total != 1 {
		t.Fatalf("counted samples: got %d, want 1", total)
	}

	if e.Counts()[3+8] != 1 {
		t.Fatalf("code 3 should land in bin 11")
	}

	e.Reset()
	for i, c := range e.Counts() {
		if c != 0 {
			t.Fatalf("bin %d not cleared after Reset", i)
		}
	}
}

func TestEstimateClampsBoundsOutsideCodeRange(t *testing.T) {
	// 4 bits: codes -8..7.
	e, err := NewEstimator(4, 0, nil)
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}

	fill(e, -3, 40)
	fill(e, 3, 40)
	fill(e, -8, 1)
	fill(e, 7, 1)

	low, high, ok := e.Estimate(-100, 100)
	if !ok || low != -3 || high != 3 {
		t.Fatalf("got (%g, %g, %v), want (-3, 3, true)", low, high, ok)
	}
}

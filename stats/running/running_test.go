package running

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestStatisticEmpty(t *testing.T) {
	var s Statistic
	if s.Count() != 0 || s.Sum() != 0 || s.Average() != 0 || s.Min() != 0 || s.Max() != 0 {
		t.Fatalf("zero value not empty: %+v", s.Snapshot())
	}
}

func TestStatisticPush(t *testing.T) {
	var s Statistic
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Push(v)
	}

	if s.Count() != 8 {
		t.Errorf("Count: got %d, want 8", s.Count())
	}

	if s.Sum() != 40 {
		t.Errorf("Sum: got %g, want 40", s.Sum())
	}

	if s.Min() != 2 || s.Max() != 9 {
		t.Errorf("Min/Max: got %g/%g, want 2/9", s.Min(), s.Max())
	}

	if s.Average() != 5 {
		t.Errorf("Average: got %g, want 5", s.Average())
	}

	if !almostEqual(s.StdDev(), 2, 1e-12) {
		t.Errorf("StdDev: got %g, want 2", s.StdDev())
	}
}

func TestStatisticNegativeFirstValue(t *testing.T) {
	var s Statistic
	s.Push(-3)
	s.Push(-1)

	if s.Min() != -3 || s.Max() != -1 {
		t.Fatalf("Min/Max: got %g/%g, want -3/-1", s.Min(), s.Max())
	}
}

func TestStatisticIgnoresNonFinite(t *testing.T) {
	var s Statistic
	s.Push(1)
	s.Push(math.NaN())
	s.Push(math.Inf(1))
	s.Push(3)

	if s.Count() != 2 || s.Average() != 2 {
		t.Fatalf("got count=%d avg=%g, want 2 and 2", s.Count(), s.Average())
	}
}

func TestStatisticClear(t *testing.T) {
	var s Statistic
	s.Push(4)
	s.Clear()

	if s.Count() != 0 || s.Sum() != 0 || s.Max() != 0 {
		t.Fatalf("Clear left state behind: %+v", s.Snapshot())
	}

	s.Push(-7)
	if s.Min() != -7 || s.Max() != -7 {
		t.Fatalf("after Clear: got %g/%g", s.Min(), s.Max())
	}
}

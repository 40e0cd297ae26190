// Package running accumulates repeated measurement values across capture
// cycles.
package running

import (
	"math"

	"github.com/cwbudde/algo-scope/dsp/core"
)

// Statistic is a running min/max/average accumulator. The zero value is
// empty and ready to use.
type Statistic struct {
	count int
	sum   float64
	min   float64
	max   float64
	mean  float64
	m2    float64
}

// Push adds one value. Non-finite values are ignored.
func (s *Statistic) Push(v float64) {
	if !core.IsFinite(v) {
		return
	}

	s.count++
	s.sum += v

	if s.count == 1 {
		s.min = v
		s.max = v
	} else {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}

	// Welford update.
	delta := v - s.mean
	s.mean += delta / float64(s.count)
	s.m2 += delta * (v - s.mean)
}

// Clear empties the accumulator.
func (s *Statistic) Clear() {
	*s = Statistic{}
}

// Count returns the number of values pushed.
func (s *Statistic) Count() int { return s.count }

// Sum returns the sum of all values.
func (s *Statistic) Sum() float64 { return s.sum }

// Min returns the smallest value, or 0 when empty.
func (s *Statistic) Min() float64 { return s.min }

// Max returns the largest value, or 0 when empty.
func (s *Statistic) Max() float64 { return s.max }

// Average returns sum/count, or 0 when empty.
func (s *Statistic) Average() float64 {
	if s.count == 0 {
		return 0
	}

	return s.sum / float64(s.count)
}

// StdDev returns the population standard deviation of the pushed values.
func (s *Statistic) StdDev() float64 {
	if s.count < 2 {
		return 0
	}

	return math.Sqrt(s.m2 / float64(s.count))
}

// Snapshot is a copy of the accumulated figures.
type Snapshot struct {
	Count   int
	Sum     float64
	Min     float64
	Max     float64
	Average float64
	StdDev  float64
}

// Snapshot returns the current figures.
func (s *Statistic) Snapshot() Snapshot {
	return Snapshot{
		Count:   s.count,
		Sum:     s.sum,
		Min:     s.min,
		Max:     s.max,
		Average: s.Average(),
		StdDev:  s.StdDev(),
	}
}

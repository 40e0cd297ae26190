package waveform

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-scope/internal/testutil"
)

func BenchmarkMeasure(b *testing.B) {
	sizes := []int{1024, 4096, 16384, 65536}
	for _, n := range sizes {
		// Sixteen cycles per buffer.
		buf := testutil.Trapezoid(16, float64(n), 1, 0.05, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			m := New(WithHysteresisSpan(0.1))
			for range b.N {
				m.Measure(buf)
			}
		})
	}
}

func BenchmarkMeasureHistogram(b *testing.B) {
	const n = 16384
	buf := testutil.Trapezoid(16, n, 2, 0.05, n)
	convert := func(_ int, v float64, inverse bool) float64 {
		if inverse {
			return v / 1000
		}
		return v * 1000
	}

	b.ReportAllocs()
	b.SetBytes(n * 8)

	m := New(WithAdcBits(12), WithConverter(convert), WithHysteresisSpan(0.1))
	for range b.N {
		m.Measure(buf)
	}
}

package spectrum

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-scope/internal/testutil"
)

func BenchmarkOneSided(b *testing.B) {
	for _, n := range []int{1000, 1024, 4096, 16384} {
		signal := testutil.DeterministicSine(50, float64(n), 1, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				_, _ = OneSided(signal)
			}
		})
	}
}

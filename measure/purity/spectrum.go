package purity

// spectrum indexes a one-sided spectrum of n bins as the first half of a
// 2(n-1) point periodic spectrum, so that any integer bin position folds
// back into [0, n).
type spectrum struct {
	mag    []float64
	nyq    int
	period int
}

func newSpectrum(mag []float64) spectrum {
	return spectrum{
		mag:    mag,
		nyq:    len(mag) - 1,
		period: 2 * (len(mag) - 1),
	}
}

func (s spectrum) fold(i int) int {
	i %= s.period
	if i < 0 {
		i += s.period
	}

	if i > s.nyq {
		i = s.period - i
	}

	return i
}

// window appends to dst the distinct folded bins of [center-bw, center+bw].
func (s spectrum) window(dst []int, center, bw int) []int {
	for i := center - bw; i <= center+bw; i++ {
		b := s.fold(i)
		if !contains(dst, b) {
			dst = append(dst, b)
		}
	}

	return dst
}

// avg3 is the mean magnitude of the three bins around center.
func (s spectrum) avg3(center int) float64 {
	return (s.mag[s.fold(center-1)] + s.mag[s.fold(center)] + s.mag[s.fold(center+1)]) / 3
}

// maskedPower sums the squared magnitude of the bins around center that
// mask includes.
func (s spectrum) maskedPower(mask []int, center, bw int, scratch []int) (float64, int, []int) {
	scratch = s.window(scratch[:0], center, bw)

	var power float64
	count := 0
	for _, b := range scratch {
		if mask[b] != 0 {
			power += s.mag[b] * s.mag[b]
			count++
		}
	}

	return power, count, scratch
}

// maskedPeak returns the largest included bin around center, or center
// folded when none is included.
func (s spectrum) maskedPeak(mask []int, center, bw int) int {
	best := -1
	for i := center - bw; i <= center+bw; i++ {
		b := s.fold(i)
		if mask[b] == 0 {
			continue
		}

		if best < 0 || s.mag[b] > s.mag[best] {
			best = b
		}
	}

	if best < 0 {
		return s.fold(center)
	}

	return best
}

func contains(bins []int, b int) bool {
	for _, x := range bins {
		if x == b {
			return true
		}
	}

	return false
}

func onesMask(n int) []int {
	mask := make([]int, n)
	for i := range mask {
		mask[i] = 1
	}

	return mask
}

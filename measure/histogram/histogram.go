// Package histogram estimates the settled low and high rails of a quantized
// waveform from the distribution of its ADC codes.
//
// Raw minimum and maximum of a square-ish capture are dominated by overshoot
// and ringing. When the capture comes from an ADC of known resolution, the
// most populated code in each half of the observed range is a better
// estimate of the rail, provided it clearly dominates the extremes.
package histogram

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-scope/dsp/core"
)

// DefaultDominanceRatio is how many times more samples a settled level must
// collect than the raw extreme on the same side.
const DefaultDominanceRatio = 5.0

// MaxBits bounds the histogram size.
const MaxBits = 24

// Converter maps a value of channel to its signed ADC code (inverse=false) or
// a signed code back to a value (inverse=true).
type Converter func(channel int, value float64, inverse bool) float64

// Identity treats values as ADC codes.
func Identity(_ int, value float64, _ bool) float64 { return value }

// Option configures an Estimator.
type Option func(*Estimator)

// WithDominanceRatio overrides DefaultDominanceRatio. Ratios below 1 are
// ignored.
func WithDominanceRatio(ratio float64) Option {
	return func(e *Estimator) {
		e.SetDominanceRatio(ratio)
	}
}

// Estimator accumulates an ADC code histogram over one buffer pass.
type Estimator struct {
	bits    int
	half    int
	channel int
	convert Converter
	ratio   float64
	counts  []int
}

// NewEstimator allocates a histogram of 2^bits bins. Values are mapped to
// codes with convert, offset by half the code span so that bin 0 holds the
// most negative code. A nil convert means values already are codes.
func NewEstimator(bits, channel int, convert Converter, opts ...Option) (*Estimator, error) {
	if bits < 1 || bits > MaxBits {
		return nil, fmt.Errorf("%w: %d", ErrBitCount, bits)
	}

	span := 1 << bits
	e := &Estimator{
		bits:    bits,
		half:    span / 2,
		channel: channel,
		ratio:   DefaultDominanceRatio,
		counts:  make([]int, span),
	}
	e.SetConverter(convert)

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e, nil
}

// SetChannel changes the channel passed to the converter.
func (e *Estimator) SetChannel(channel int) { e.channel = channel }

// SetConverter replaces the converter. Nil means identity.
func (e *Estimator) SetConverter(convert Converter) {
	if convert == nil {
		convert = Identity
	}

	e.convert = convert
}

// SetDominanceRatio changes the acceptance margin. Ratios below 1 are
// ignored.
func (e *Estimator) SetDominanceRatio(ratio float64) {
	if ratio >= 1 {
		e.ratio = ratio
	}
}

// DominanceRatio returns the acceptance margin.
func (e *Estimator) DominanceRatio() float64 { return e.ratio }

// Bits returns the ADC resolution.
func (e *Estimator) Bits() int { return e.bits }

// Counts returns the histogram bins. The slice is owned by the estimator.
func (e *Estimator) Counts() []int { return e.counts }

// Reset clears all bins.
func (e *Estimator) Reset() {
	for i := range e.counts {
		e.counts[i] = 0
	}
}

// Add records one sample. NaN samples and codes outside the ADC range are
// dropped.
func (e *Estimator) Add(v float64) {
	if math.IsNaN(v) {
		return
	}

	bin, ok := e.bin(v)
	if ok {
		e.counts[bin]++
	}
}

func (e *Estimator) bin(v float64) (int, bool) {
	code := e.convert(e.channel, v, false)
	if !core.IsFinite(code) {
		return 0, false
	}

	bin := int(math.Round(code)) + e.half
	if bin < 0 || bin >= len(e.counts) {
		return bin, false
	}

	return bin, true
}

func (e *Estimator) clampedBin(v float64) int {
	bin, _ := e.bin(v)
	return core.ClampInt(bin, 0, len(e.counts)-1)
}

// Estimate searches the lower half of [min, max] for the most populated code
// (low) and the upper half for the most populated code (high). The result is
// accepted only when each level holds at least ratio times the samples of the
// raw extreme on its side; otherwise ok is false and min, max are returned.
func (e *Estimator) Estimate(min, max float64) (low, high float64, ok bool) {
	minBin := e.clampedBin(min)
	maxBin := e.clampedBin(max)
	if minBin > maxBin {
		minBin, maxBin = maxBin, minBin
	}

	midBin := minBin + (maxBin-minBin)/2

	lowBin := argmax(e.counts, minBin, midBin)
	highBin := argmax(e.counts, midBin, maxBin)

	if float64(e.counts[lowBin]) < e.ratio*float64(e.counts[minBin]) ||
		float64(e.counts[highBin]) < e.ratio*float64(e.counts[maxBin]) {
		return min, max, false
	}

	low = e.convert(e.channel, float64(lowBin-e.half), true)
	high = e.convert(e.channel, float64(highBin-e.half), true)

	return low, high, true
}

// argmax returns the first index of the largest count in counts[lo..hi].
func argmax(counts []int, lo, hi int) int {
	best := lo
	for i := lo + 1; i <= hi; i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}

	return best
}

package purity

import (
	"math"

	"github.com/cwbudde/algo-scope/dsp/core"
	"github.com/cwbudde/algo-scope/measure/data"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Component is one spectral line with its leakage window.
type Component struct {
	Bin   int
	Power float64 // sum of squares over the window, noise-corrected
	Bins  int     // bins summed into Power
}

// Result holds the intermediate and final figures of one analysis.
type Result struct {
	// Harmonics holds the fundamental at index 0 and harmonic k at k-1.
	Harmonics []Component
	Spur      Component

	Mask         []int
	NoiseBins    int
	AverageNoise float64 // mean noise power per bin
	Noise        float64 // noise power over the whole band

	Signal     float64
	Distortion float64

	NoiseFloor float64
	SNR        float64
	THD        float64
	SINAD      float64
	THDN       float64
	// SFDR is +Inf, not 0, when no spur power remains after noise
	// correction.
	SFDR float64

	// Valid is false when the spectrum is shorter than two bins or holds
	// no fundamental power; the figures are then undefined.
	Valid bool
}

// Analyzer computes spectral purity figures into a data.Set.
type Analyzer struct {
	cfg     Config
	results *data.Set
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	cfg := ApplyOptions(opts...)
	return &Analyzer{
		cfg:     cfg,
		results: data.NewSet(cfg.Channel, Definitions()),
	}
}

// Config returns the current configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Configure applies opts on top of the current configuration.
func (a *Analyzer) Configure(opts ...Option) {
	a.cfg.apply(opts...)
	a.results.SetChannel(a.cfg.Channel)
}

// Results returns the measurement set. Its values are rewritten by every
// call to Measure.
func (a *Analyzer) Results() *data.Set { return a.results }

// Measurement returns the result of kind k.
func (a *Analyzer) Measurement(k Kind) *data.Measurement { return a.results.At(int(k)) }

// Measure clears every result, analyses mag and stores the figures.
func (a *Analyzer) Measure(mag []float64) Result {
	a.results.Clear()

	r := a.Analyze(mag)
	if len(mag) < 2 {
		return r
	}

	if !r.Valid {
		for _, m := range a.results.All() {
			m.MarkDegenerate()
		}

		return r
	}

	a.set(NoiseFloor, r.NoiseFloor)
	a.set(SNR, r.SNR)
	a.set(THD, r.THD)
	a.set(SINAD, r.SINAD)
	a.set(THDN, r.THDN)
	a.set(SFDR, r.SFDR)

	return r
}

func (a *Analyzer) set(k Kind, v float64) {
	a.results.At(int(k)).SetValue(v)
}

// Analyze computes the purity figures of the linear magnitude spectrum mag.
func (a *Analyzer) Analyze(mag []float64) Result {
	if len(mag) < 2 {
		return Result{}
	}

	s := newSpectrum(mag)
	harmonics := a.findHarmonics(s)
	spur := a.findSpur(s, harmonics)

	mask := a.cfg.Mask
	if mask != nil && len(mask) != len(mag) {
		a.cfg.Logger.Debug("mask length mismatch, using automatic mask",
			zap.Int("mask", len(mask)), zap.Int("spectrum", len(mag)))
		mask = nil
	}

	if mask == nil {
		mask = a.autoMask(s, harmonics)
	}

	var noiseSum float64
	noiseBins := 0
	for b, m := range mask {
		if m != 0 {
			noiseSum += mag[b] * mag[b]
			noiseBins++
		}
	}

	avgNoise := noiseSum / float64(max(noiseBins, 1))

	for i := range harmonics {
		harmonics[i].Power -= avgNoise * float64(harmonics[i].Bins)
	}

	spur.Power -= avgNoise * float64(spur.Bins)

	r := Result{
		Harmonics:    harmonics,
		Spur:         spur,
		Mask:         mask,
		NoiseBins:    noiseBins,
		AverageNoise: avgNoise,
		Noise:        avgNoise * float64(len(mag)-1),
		Signal:       harmonics[0].Power,
	}

	for _, h := range harmonics[1:] {
		r.Distortion += h.Power
	}

	if !(r.Signal > 0) {
		return r
	}

	r.Valid = true
	r.NoiseFloor = core.PowerRatioDB(r.AverageNoise, r.Signal)
	r.SNR = core.PowerRatioDB(r.Signal, r.Noise)

	if r.Distortion > 0 {
		r.THD = core.PowerRatioDB(r.Distortion, r.Signal)
	}

	impairment := r.Distortion + r.Noise
	if impairment > 0 {
		r.SINAD = core.PowerRatioDB(r.Signal, impairment)
		r.THDN = core.PowerRatioDB(impairment, r.Signal)
	} else {
		r.SINAD = math.Inf(1)
	}

	if r.Spur.Power > 0 {
		r.SFDR = core.PowerRatioDB(r.Signal, r.Spur.Power)
	} else {
		r.SFDR = math.Inf(1)
	}

	return r
}

// findHarmonics locates the fundamental and its harmonics and sums their
// raw window power. Bins already claimed by a lower harmonic's window are
// not counted again.
func (a *Analyzer) findHarmonics(s spectrum) []Component {
	bw := a.cfg.BinWidth
	out := make([]Component, a.cfg.Harmonics)
	claimed := make([]bool, len(s.mag))

	fund := floats.MaxIdx(s.mag)

	var win []int
	for h := 1; h <= len(out); h++ {
		bin := fund
		if h > 1 {
			bin = s.harmonicPeak(h*fund, h/2, out[:h-1])
		}

		c := Component{Bin: bin}

		win = s.window(win[:0], bin, bw)
		for _, b := range win {
			if claimed[b] {
				continue
			}

			c.Power += s.mag[b] * s.mag[b]
			c.Bins++
		}

		for _, b := range win {
			claimed[b] = true
		}

		out[h-1] = c
	}

	return out
}

// harmonicPeak returns the largest bin within half of nominal that is not
// the bin of a lower harmonic.
func (s spectrum) harmonicPeak(nominal, half int, lower []Component) int {
	best := -1
	for i := nominal - half; i <= nominal+half; i++ {
		b := s.fold(i)
		if isHarmonicBin(lower, b) {
			continue
		}

		if best < 0 || s.mag[b] > s.mag[best] {
			best = b
		}
	}

	if best < 0 {
		return s.fold(nominal)
	}

	return best
}

func isHarmonicBin(harmonics []Component, b int) bool {
	for _, h := range harmonics {
		if h.Bin == b {
			return true
		}
	}

	return false
}

// autoMask excludes DC and the leakage skirt of every harmonic. A skirt
// grows outward from the harmonic while the mean of three adjacent bins
// stays above a provisional noise level.
func (a *Analyzer) autoMask(s spectrum, harmonics []Component) []int {
	n := len(s.mag)
	mask := onesMask(n)

	var win []int
	for _, h := range harmonics[:min(initialNoiseHarmonics, len(harmonics))] {
		win = s.window(win[:0], h.Bin, a.cfg.BinWidth)
		for _, b := range win {
			mask[b] = 0
		}
	}

	mask[0] = 0

	var sum float64
	count := 0
	for b, m := range mask {
		if m != 0 {
			sum += s.mag[b]
			count++
		}
	}

	var estimate float64
	if count > 0 {
		estimate = sum / float64(count)
	}

	for i := range mask {
		mask[i] = 1
	}

	mask[0] = 0
	mask[s.fold(1)] = 0

	for _, c := range harmonics {
		h := c.Bin
		if mask[h] == 0 {
			continue
		}

		j := 1
		for h-j > 0 && mask[h-j] != 0 && s.avg3(h-j+1) > estimate {
			j++
		}

		lo := h - j + 1

		j = 1
		for h+j < n && mask[h+j] != 0 && s.avg3(h+j-1) > estimate {
			j++
		}

		hi := h + j - 1

		for b := lo; b <= hi; b++ {
			mask[b] = 0
		}
	}

	return mask
}

// findSpur returns the spur with its raw window power.
func (a *Analyzer) findSpur(s spectrum, harmonics []Component) Component {
	if a.cfg.SpurMode == SpurHarmonic {
		if len(harmonics) < 2 {
			return Component{}
		}

		best := harmonics[1]
		for _, h := range harmonics[2:] {
			if h.Power > best.Power {
				best = h
			}
		}

		return best
	}

	bw := a.cfg.BinWidth
	mask := onesMask(len(s.mag))
	mask[0] = 0
	mask[s.fold(1)] = 0

	var win []int
	for _, h := range harmonics {
		win = s.window(win[:0], h.Bin, bw)
		for _, b := range win {
			mask[b] = 0
		}
	}

	best := -1
	var bestPower float64
	for i, m := range mask {
		if m == 0 {
			continue
		}

		var p float64
		p, _, win = s.maskedPower(mask, i, bw, win)
		if best < 0 || p > bestPower {
			best = i
			bestPower = p
		}
	}

	if best < 0 {
		return Component{}
	}

	bin := s.maskedPeak(mask, best, bw)
	power, count, _ := s.maskedPower(mask, bin, bw, win)

	return Component{Bin: bin, Power: power, Bins: count}
}

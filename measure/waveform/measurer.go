package waveform

import (
	"math"

	"github.com/cwbudde/algo-scope/measure/crossing"
	"github.com/cwbudde/algo-scope/measure/data"
	"github.com/cwbudde/algo-scope/measure/histogram"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

var edgeSequence = []string{"LR", "MR", "HR", "HF", "MF", "LF"}

// Measurer computes time-domain measurements into a data.Set.
type Measurer struct {
	cfg     Config
	results *data.Set

	primary *crossing.Detector
	low     *crossing.Detector
	mid     *crossing.Detector
	high    *crossing.Detector
	hist    *histogram.Estimator
}

// New creates a Measurer.
func New(opts ...Option) *Measurer {
	cfg := ApplyOptions(opts...)
	m := &Measurer{
		results: data.NewSet(cfg.Channel, Definitions()),
		primary: crossing.NewDetector(0, 0, "P"),
		low:     crossing.NewDetector(0, 0, "L"),
		mid:     crossing.NewDetector(0, 0, "M"),
		high:    crossing.NewDetector(0, 0, "H"),
	}
	m.setConfig(cfg)

	return m
}

// Config returns the current configuration.
func (m *Measurer) Config() Config { return m.cfg }

// Configure applies opts on top of the current configuration.
func (m *Measurer) Configure(opts ...Option) {
	cfg := m.cfg
	cfg.apply(opts...)
	m.setConfig(cfg)
}

// setConfig applies cfg. The histogram is reallocated only when the ADC
// resolution changes; its other settings are updated in place.
func (m *Measurer) setConfig(cfg Config) {
	m.cfg = cfg
	m.results.SetChannel(cfg.Channel)

	if cfg.AdcBits == 0 {
		m.hist = nil
		return
	}

	if m.hist != nil && m.hist.Bits() == cfg.AdcBits {
		m.hist.SetChannel(cfg.Channel)
		m.hist.SetConverter(cfg.Convert)
		m.hist.SetDominanceRatio(cfg.DominanceRatio)
		return
	}

	hist, err := histogram.NewEstimator(cfg.AdcBits, cfg.Channel, cfg.Convert,
		histogram.WithDominanceRatio(cfg.DominanceRatio))
	if err != nil {
		m.hist = nil
		cfg.Logger.Warn("histogram disabled", zap.Int("bits", cfg.AdcBits), zap.Error(err))
		return
	}

	m.hist = hist
}

// Results returns the measurement set. Its values are rewritten by every
// call to Measure.
func (m *Measurer) Results() *data.Set { return m.results }

// Measurement returns the result of kind k.
func (m *Measurer) Measurement(k Kind) *data.Measurement { return m.results.At(int(k)) }

// aggregate holds the single-pass sums over the valid samples.
type aggregate struct {
	count int
	sum   float64
	sumSq float64
	min   float64
	max   float64
}

func (a *aggregate) add(x float64) {
	if a.count == 0 {
		a.min, a.max = x, x
	} else {
		a.min = math.Min(a.min, x)
		a.max = math.Max(a.max, x)
	}

	a.count++
	a.sum += x
	a.sumSq += x * x
}

// Measure clears every result and measures buf. buf must not be modified
// while Measure runs.
func (m *Measurer) Measure(buf []float64) {
	m.results.Clear()

	start, end := m.gate(len(buf))
	if start >= end {
		return
	}

	m.primary.Reset()
	m.primary.SetLevel(m.cfg.CrossLevel)
	m.primary.SetHysteresisSpan(m.cfg.HysteresisSpan)

	if m.hist != nil {
		m.hist.Reset()
	}

	var agg aggregate
	for i := start; i < end; i++ {
		x := buf[i]
		if math.IsNaN(x) {
			continue
		}

		m.primary.Step(buf, i)
		agg.add(x)

		if m.hist != nil {
			m.hist.Add(x)
		}
	}

	if agg.count == 0 {
		m.cfg.Logger.Debug("no valid samples", zap.Int("start", start), zap.Int("end", end))
		return
	}

	n := float64(agg.count)
	mean := agg.sum / n

	m.set(Min, agg.min)
	m.set(Max, agg.max)
	m.set(PeakPeak, math.Abs(agg.max-agg.min))
	m.set(Mean, mean)
	m.set(RMS, math.Sqrt(agg.sumSq/n))
	m.set(ACRMS, math.Sqrt(math.Max(0, agg.sumSq-2*mean*agg.sum+n*mean*mean)/n))

	low, high := agg.min, agg.max
	if m.hist != nil {
		l, h, ok := m.hist.Estimate(agg.min, agg.max)
		if ok {
			low, high = l, h
		} else {
			m.cfg.Logger.Debug("histogram levels rejected",
				zap.Float64("min", agg.min), zap.Float64("max", agg.max))
		}
	}

	amplitude := high - low
	m.set(Low, low)
	m.set(High, high)
	m.set(Middle, low+amplitude/2)
	m.set(Amplitude, amplitude)

	if amplitude > 0 {
		m.set(PosOvershoot, (agg.max-high)/amplitude*100)
		m.set(NegOvershoot, (low-agg.min)/amplitude*100)
	} else {
		m.Measurement(PosOvershoot).MarkDegenerate()
		m.Measurement(NegOvershoot).MarkDegenerate()
	}

	points := m.primary.Points()
	if len(points) < 3 {
		return
	}

	period := averagePeriod(points) / m.cfg.SampleRate
	if !(period > 0) {
		return
	}

	m.set(Period, period)
	m.set(Frequency, 1/period)

	if amplitude <= 0 {
		return
	}

	m.measureEdges(buf, points[0].Index, points[2].Index, low, amplitude, period, agg.sum)
}

// measureEdges runs the reference level detectors over the cycle
// buf[first:next] and derives the edge timings.
func (m *Measurer) measureEdges(buf []float64, first, next int, low, amplitude, period, sum float64) {
	length := next - first
	if length < 2 {
		return
	}

	span := m.cfg.ReferenceHysteresis * referenceSpacing * amplitude
	refs := []*crossing.Detector{m.low, m.mid, m.high}
	for i, frac := range []float64{0.1, 0.5, 0.9} {
		refs[i].Reset()
		refs[i].SetLevel(low + frac*amplitude)
		refs[i].SetHysteresisSpan(span)
	}

	// Two laps around the cycle so that edges straddling its boundary are
	// seen whole.
	for j := 0; j <= 2*length; j++ {
		idx := first + j%length
		for _, d := range refs {
			d.Step(buf, idx)
		}
	}

	timeline := crossing.Merge(refs...)

	pos, ok := crossing.FindSequence(timeline, edgeSequence...)
	if !ok {
		m.cfg.Logger.Debug("edge sequence not found",
			zap.Int("first", first), zap.Int("length", length), zap.Int("events", len(timeline)))
		return
	}

	lowRising := timeline[pos]
	midRising := timeline[pos+1]
	highRising := timeline[pos+2]
	highFalling := timeline[pos+3]
	midFalling := timeline[pos+4]
	lowFalling := timeline[pos+5]

	cycleSum, cycleSumSq, cycleCount := cycleSums(buf[first:next])
	if cycleCount > 0 {
		m.set(CycleMean, cycleSum/float64(cycleCount))
		m.set(CycleRMS, math.Sqrt(cycleSumSq/float64(cycleCount)))
	}

	rate := m.cfg.SampleRate
	m.set(Area, sum/rate)
	m.set(CycleArea, cycleSum/rate)

	m.set(Rise, float64(wrap(highRising.Index-lowRising.Index, length))/rate)
	m.set(Fall, float64(wrap(lowFalling.Index-highFalling.Index, length))/rate)

	width := float64(wrap(midFalling.Index-midRising.Index, length)) / rate
	m.set(PosWidth, width)
	m.set(NegWidth, period-width)
	m.set(PosDuty, width/period*100)
	m.set(NegDuty, (period-width)/period*100)
}

func (m *Measurer) set(k Kind, v float64) {
	m.results.At(int(k)).SetValue(v)
}

// gate returns the analysed range. Out-of-range bounds fall back to the
// buffer limits and an empty or inverted range to the whole buffer.
func (m *Measurer) gate(n int) (int, int) {
	if !m.cfg.Gating {
		return 0, n
	}

	start, end := m.cfg.StartIndex, m.cfg.EndIndex
	if start < 0 || start > n {
		start = 0
	}

	if end < 0 || end > n {
		end = n
	}

	if start >= end {
		start, end = 0, n
	}

	if start != m.cfg.StartIndex || end != m.cfg.EndIndex {
		m.cfg.Logger.Debug("gating range reset",
			zap.Int("start", m.cfg.StartIndex), zap.Int("end", m.cfg.EndIndex), zap.Int("length", n))
	}

	return start, end
}

// averagePeriod returns the period in samples as the sum of the mean
// even-numbered and mean odd-numbered half cycles between points.
func averagePeriod(points []crossing.Point) float64 {
	var first, second float64
	var nFirst, nSecond int

	for i := 0; i+1 < len(points); i++ {
		diff := float64(points[i+1].Index - points[i].Index)
		if i%2 == 0 {
			first += diff
			nFirst++
		} else {
			second += diff
			nSecond++
		}
	}

	if nFirst == 0 || nSecond == 0 {
		return 0
	}

	return first/float64(nFirst) + second/float64(nSecond)
}

func cycleSums(cycle []float64) (sum, sumSq float64, count int) {
	if !floats.HasNaN(cycle) {
		return floats.Sum(cycle), floats.Dot(cycle, cycle), len(cycle)
	}

	for _, x := range cycle {
		if math.IsNaN(x) {
			continue
		}

		sum += x
		sumSq += x * x
		count++
	}

	return sum, sumSq, count
}

func wrap(d, length int) int {
	d %= length
	if d < 0 {
		d += length
	}

	return d
}

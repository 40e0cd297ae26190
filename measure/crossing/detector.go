package crossing

import (
	"math"
	"sort"
	"strings"
)

// Point is one debounced level crossing.
type Point struct {
	Value  float64 // sample value at Index
	Index  int     // buffer index of the sample nearest to the level
	Rising bool
	Label  string  // detector name followed by "R" or "F"
	Level  float64 // level of the detector that emitted the point
	Tick   int     // count of valid samples fed when the point was emitted
}

// Detector finds rising and falling crossings of one level.
type Detector struct {
	band Band
	name string

	pos Tracker
	neg Tracker

	posFound bool
	negFound bool
	posPoint int
	negPoint int

	prev    int
	hasPrev bool
	ticks   int

	points []Point
}

// NewDetector creates a detector for level with the given hysteresis span.
// name prefixes the label of every emitted point.
func NewDetector(level, span float64, name string) *Detector {
	return &Detector{
		band: NewBand(level, span),
		name: name,
		pos:  NewTracker(Rising),
		neg:  NewTracker(Falling),
	}
}

// Name returns the label prefix.
func (d *Detector) Name() string { return d.name }

// Band returns the current threshold pair.
func (d *Detector) Band() Band { return d.band }

// Level returns the crossing level.
func (d *Detector) Level() float64 { return d.band.Level() }

// SetLevel moves the crossing level.
func (d *Detector) SetLevel(level float64) { d.band.SetLevel(level) }

// HysteresisSpan returns the hysteresis span.
func (d *Detector) HysteresisSpan() float64 { return d.band.Span() }

// SetHysteresisSpan changes the hysteresis span.
func (d *Detector) SetHysteresisSpan(span float64) { d.band.SetSpan(span) }

// Points returns the crossings detected so far, in emission order.
func (d *Detector) Points() []Point { return d.points }

// Reset clears the tracker state and the detected points.
func (d *Detector) Reset() {
	d.pos.Reset()
	d.neg.Reset()
	d.posFound = false
	d.negFound = false
	d.posPoint = 0
	d.negPoint = 0
	d.prev = 0
	d.hasPrev = false
	d.ticks = 0
	d.points = d.points[:0]
}

// Step feeds data[i] to the detector.
//
// NaN samples are skipped. Every transition is classified against the last
// valid sample fed, which need not be data[i-1]: callers may skip indices or
// wrap around a window. The first valid sample only primes the detector.
func (d *Detector) Step(data []float64, i int) {
	x := data[i]
	if math.IsNaN(x) {
		return
	}

	d.ticks++

	if !d.hasPrev {
		d.prev = i
		d.hasPrev = true
		return
	}

	prev := d.prev
	d.prev = i

	ev := d.band.Classify(x, data[prev])

	if d.pos.Between() {
		d.posPoint = d.closer(data, prev, i, d.posPoint)
	}

	if d.neg.Between() {
		d.negPoint = d.closer(data, prev, i, d.negPoint)
	}

	if ev == NoCross {
		return
	}

	if !d.posFound {
		wasBetween := d.pos.Between()
		crossed := d.pos.Update(ev)

		if !wasBetween && d.pos.Between() {
			d.posPoint = d.nearest(data, prev, i)
		}

		if crossed {
			d.posFound = true
			d.negFound = false
			d.neg.Reset()

			if ev == PosCrossFull {
				d.posPoint = i
			}

			d.emit(data, d.posPoint, true)
		}
	}

	if !d.negFound {
		wasBetween := d.neg.Between()
		crossed := d.neg.Update(ev)

		if !wasBetween && d.neg.Between() {
			d.negPoint = d.nearest(data, prev, i)
		}

		if crossed {
			d.negFound = true
			d.posFound = false
			d.pos.Reset()

			if ev == NegCrossFull {
				d.negPoint = prev
			}

			d.emit(data, d.negPoint, false)
		}
	}
}

func (d *Detector) emit(data []float64, idx int, rising bool) {
	suffix := "F"
	if rising {
		suffix = "R"
	}

	d.points = append(d.points, Point{
		Value:  data[idx],
		Index:  idx,
		Rising: rising,
		Label:  d.name + suffix,
		Level:  d.band.Level(),
		Tick:   d.ticks,
	})
}

// nearest returns whichever of a, b holds the sample closest to the level.
// Ties go to b.
func (d *Detector) nearest(data []float64, a, b int) int {
	level := d.band.Level()
	if math.Abs(data[a]-level) < math.Abs(data[b]-level) {
		return a
	}

	return b
}

// closer keeps current unless a or b is strictly closer to the level.
func (d *Detector) closer(data []float64, a, b, current int) int {
	level := d.band.Level()
	idx := d.nearest(data, a, b)

	if math.Abs(data[idx]-level) < math.Abs(data[current]-level) {
		return idx
	}

	return current
}

// Merge interleaves the points of detectors that were fed the same sample
// sequence into one timeline ordered by emission tick.
//
// Points emitted on the same tick, or recorded at the same buffer index in
// the same direction, are ordered by level: ascending on rising edges and
// descending on falling edges. The detectors are not modified.
func Merge(detectors ...*Detector) []Point {
	n := 0
	for _, d := range detectors {
		n += len(d.points)
	}

	out := make([]Point, 0, n)
	for _, d := range detectors {
		out = append(out, d.points...)
	}

	sort.SliceStable(out, func(a, b int) bool {
		pa, pb := out[a], out[b]
		if pa.Tick != pb.Tick {
			return pa.Tick < pb.Tick
		}

		return levelBefore(pa, pb)
	})

	for i := 1; i < len(out); i++ {
		p0, p1 := out[i-1], out[i]
		if p0.Index == p1.Index && p0.Rising == p1.Rising && levelBefore(p1, p0) {
			out[i-1], out[i] = p1, p0
		}
	}

	return out
}

func levelBefore(a, b Point) bool {
	if a.Rising != b.Rising {
		return false
	}

	if a.Rising {
		return a.Level < b.Level
	}

	return a.Level > b.Level
}

// FindSequence searches points for a contiguous run whose labels equal
// labels, returning the index of its first point.
func FindSequence(points []Point, labels ...string) (int, bool) {
	if len(labels) == 0 || len(labels) > len(points) {
		return 0, false
	}

	var sb strings.Builder

	offsets := make(map[int]int, len(points))
	for i, p := range points {
		offsets[sb.Len()] = i
		sb.WriteString(p.Label)
	}

	timeline := sb.String()
	want := strings.Join(labels, "")

	for from := 0; from <= len(timeline)-len(want); {
		pos := strings.Index(timeline[from:], want)
		if pos < 0 {
			return 0, false
		}

		pos += from
		if start, ok := offsets[pos]; ok && start+len(labels) <= len(points) && labelsMatch(points[start:], labels) {
			return start, true
		}

		from = pos + 1
	}

	return 0, false
}

func labelsMatch(points []Point, labels []string) bool {
	for i, l := range labels {
		if points[i].Label != l {
			return false
		}
	}

	return true
}

package crossing

// Event classifies one sample transition relative to a [Band].
type Event int

const (
	NoCross Event = iota
	PosCrossLow
	PosCrossHigh
	PosCrossFull
	NegCrossLow
	NegCrossHigh
	NegCrossFull
)

var eventNames = [...]string{
	NoCross:      "NoCross",
	PosCrossLow:  "PosCrossLow",
	PosCrossHigh: "PosCrossHigh",
	PosCrossFull: "PosCrossFull",
	NegCrossLow:  "NegCrossLow",
	NegCrossHigh: "NegCrossHigh",
	NegCrossFull: "NegCrossFull",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "Event(?)"
	}

	return eventNames[e]
}

// Band is a hysteresis threshold pair centred on a level:
// low = level - span/2, high = level + span/2.
//
// The pair is recomputed as a whole by every setter.
type Band struct {
	level float64
	span  float64
	low   float64
	high  float64
}

// NewBand returns a band around level with the given hysteresis span.
func NewBand(level, span float64) Band {
	var b Band
	b.set(level, span)
	return b
}

func (b *Band) set(level, span float64) {
	b.level = level
	b.span = span
	b.low = level - span/2
	b.high = level + span/2
}

// Level returns the nominal crossing level.
func (b Band) Level() float64 { return b.level }

// Span returns the hysteresis span.
func (b Band) Span() float64 { return b.span }

// Low returns the low threshold.
func (b Band) Low() float64 { return b.low }

// High returns the high threshold.
func (b Band) High() float64 { return b.high }

// SetLevel moves the band to a new level, keeping its span.
func (b *Band) SetLevel(level float64) { b.set(level, b.span) }

// SetSpan changes the hysteresis span around the current level.
func (b *Band) SetSpan(span float64) { b.set(b.level, span) }

// Classify reports which thresholds the transition prev -> sample crosses.
// Touching a threshold counts as crossing it. A transition over both
// thresholds collapses to the Full variant.
func (b Band) Classify(sample, prev float64) Event {
	switch {
	case sample > prev:
		low := prev <= b.low && sample >= b.low
		high := prev <= b.high && sample >= b.high

		switch {
		case low && high:
			return PosCrossFull
		case low:
			return PosCrossLow
		case high:
			return PosCrossHigh
		}
	case sample < prev:
		low := prev >= b.low && sample <= b.low
		high := prev >= b.high && sample <= b.high

		switch {
		case low && high:
			return NegCrossFull
		case low:
			return NegCrossLow
		case high:
			return NegCrossHigh
		}
	}

	return NoCross
}

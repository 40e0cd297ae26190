package crossing

// Direction selects which edge a [Tracker] debounces.
type Direction int

const (
	Rising Direction = iota
	Falling
)

func (d Direction) String() string {
	if d == Falling {
		return "Falling"
	}

	return "Rising"
}

// Tracker debounces one edge direction of a hysteresis band.
//
// A rising tracker enters the band on PosCrossLow and reports a crossing on
// the following PosCrossHigh; NegCrossLow abandons a half-formed edge.
// A falling tracker is the mirror image.
type Tracker struct {
	dir     Direction
	between bool
}

// NewTracker returns a tracker for the given edge direction.
func NewTracker(dir Direction) Tracker {
	return Tracker{dir: dir}
}

// Direction returns the edge direction the tracker debounces.
func (t *Tracker) Direction() Direction { return t.dir }

// Between reports whether the signal entered the band and has not yet left
// it on either side.
func (t *Tracker) Between() bool { return t.between }

// Reset clears the tracker state.
func (t *Tracker) Reset() { t.between = false }

// Update feeds one event and reports whether it completes an edge.
func (t *Tracker) Update(e Event) bool {
	if t.dir == Falling {
		return t.update(e, NegCrossHigh, NegCrossLow, NegCrossFull, PosCrossHigh)
	}

	return t.update(e, PosCrossLow, PosCrossHigh, PosCrossFull, NegCrossLow)
}

func (t *Tracker) update(e, enter, complete, full, abort Event) bool {
	switch e {
	case enter:
		t.between = true
	case complete:
		if t.between {
			t.between = false
			return true
		}
	case full:
		return true
	case abort:
		t.between = false
	}

	return false
}

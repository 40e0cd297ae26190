package data

import "fmt"

// Set is an ordered, fixed collection of measurements. The position of a
// measurement is its id.
type Set struct {
	items  []*Measurement
	byName map[string]int
}

// NewSet creates one measurement per definition on channel.
func NewSet(channel int, defs []Definition) *Set {
	s := &Set{
		items:  make([]*Measurement, len(defs)),
		byName: make(map[string]int, len(defs)),
	}

	for i, def := range defs {
		s.items[i] = NewMeasurement(def, channel)
		s.byName[def.Name] = i
	}

	return s
}

// Len returns the number of measurements.
func (s *Set) Len() int { return len(s.items) }

// All returns every measurement in id order. The slice is owned by the set.
func (s *Set) All() []*Measurement { return s.items }

// At returns the measurement with the given id, or nil when out of range.
func (s *Set) At(id int) *Measurement {
	if id < 0 || id >= len(s.items) {
		return nil
	}

	return s.items[id]
}

// Lookup returns the measurement named name.
func (s *Set) Lookup(name string) (*Measurement, error) {
	i, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeasurement, name)
	}

	return s.items[i], nil
}

// ActiveCount returns how many measurements are enabled.
func (s *Set) ActiveCount() int {
	n := 0
	for _, m := range s.items {
		if m.enabled {
			n++
		}
	}

	return n
}

// SetChannel moves every measurement to channel.
func (s *Set) SetChannel(channel int) {
	for _, m := range s.items {
		m.channel = channel
	}
}

// Clear marks every measurement unmeasured.
func (s *Set) Clear() {
	for _, m := range s.items {
		m.Clear()
	}
}

// FoldStats pushes the value of every measured, stat-enabled measurement
// into its statistic.
func (s *Set) FoldStats() {
	for _, m := range s.items {
		if m.statEnabled && m.status == StatusMeasured {
			m.stat.Push(m.value)
		}
	}
}

// ClearStats empties every statistic.
func (s *Set) ClearStats() {
	for _, m := range s.items {
		m.stat.Clear()
	}
}

// Package data holds named, channel-scoped measurement results.
//
// A Set is created once per engine with a fixed list of measurement kinds.
// Every measurement pass clears all values and stores the ones it could
// compute; consumers read Value only when Status is StatusMeasured.
package data

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-scope/stats/running"
)

// Axis tells on which display axis a measurement is expressed.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
	HorizontalSpectral
	VerticalSpectral
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case HorizontalSpectral:
		return "horizontal-spectral"
	case VerticalSpectral:
		return "vertical-spectral"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// UnitType classifies a unit string.
type UnitType int

const (
	Metric UnitType = iota
	Time
	Percentage
	Decibels
	DecibelsToCarrier
	Dimensionless
)

func (u UnitType) String() string {
	switch u {
	case Metric:
		return "metric"
	case Time:
		return "time"
	case Percentage:
		return "percentage"
	case Decibels:
		return "decibels"
	case DecibelsToCarrier:
		return "decibels-to-carrier"
	case Dimensionless:
		return "dimensionless"
	default:
		return fmt.Sprintf("UnitType(%d)", int(u))
	}
}

// UnitTypeOf derives the unit type from a unit string.
func UnitTypeOf(unit string) UnitType {
	switch strings.ToLower(unit) {
	case "":
		return Dimensionless
	case "%":
		return Percentage
	case "s", "seconds":
		return Time
	case "db", "decibels":
		return Decibels
	case "dbc", "decibels_to_carrier":
		return DecibelsToCarrier
	default:
		return Metric
	}
}

// Status is the outcome of the last measurement pass.
type Status int

const (
	// StatusUnmeasured means the pass could not produce a value.
	StatusUnmeasured Status = iota
	// StatusMeasured means Value holds a valid result.
	StatusMeasured
	// StatusDegenerate means the input made the figure undefined, such as
	// an overshoot ratio of a flat signal.
	StatusDegenerate
)

func (s Status) String() string {
	switch s {
	case StatusUnmeasured:
		return "unmeasured"
	case StatusMeasured:
		return "measured"
	case StatusDegenerate:
		return "degenerate"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Definition describes one measurement kind.
type Definition struct {
	Name string
	Axis Axis
	Unit string
}

// Measurement is the result holder of one measurement kind.
type Measurement struct {
	name     string
	axis     Axis
	unit     string
	unitType UnitType
	channel  int

	value  float64
	status Status

	enabled     bool
	statEnabled bool
	stat        running.Statistic
}

// NewMeasurement creates a disabled, unmeasured result holder.
func NewMeasurement(def Definition, channel int) *Measurement {
	return &Measurement{
		name:     def.Name,
		axis:     def.Axis,
		unit:     def.Unit,
		unitType: UnitTypeOf(def.Unit),
		channel:  channel,
	}
}

// Name returns the display name, which is also the lookup key.
func (m *Measurement) Name() string { return m.name }

// Axis returns the display axis.
func (m *Measurement) Axis() Axis { return m.axis }

// Unit returns the unit string, such as "V" or "dBc".
func (m *Measurement) Unit() string { return m.unit }

// UnitType returns the unit classification derived from Unit.
func (m *Measurement) UnitType() UnitType { return m.unitType }

// Channel returns the channel the measurement belongs to.
func (m *Measurement) Channel() int { return m.channel }

// Value returns the last stored value. It is meaningful only when Measured
// reports true.
func (m *Measurement) Value() float64 { return m.value }

// Status returns the outcome of the last measurement pass.
func (m *Measurement) Status() Status { return m.status }

// Enabled reports whether a consumer displays the measurement.
func (m *Measurement) Enabled() bool { return m.enabled }

// StatEnabled reports whether measured values are folded into Stat.
func (m *Measurement) StatEnabled() bool { return m.statEnabled }

// Measured reports whether Value is valid.
func (m *Measurement) Measured() bool { return m.status == StatusMeasured }

// SetChannel moves the measurement to another channel.
func (m *Measurement) SetChannel(channel int) { m.channel = channel }

// SetEnabled toggles whether a consumer displays the measurement.
func (m *Measurement) SetEnabled(enabled bool) { m.enabled = enabled }

// SetStatEnabled toggles whether measured values are folded into Stat.
func (m *Measurement) SetStatEnabled(enabled bool) { m.statEnabled = enabled }

// Stat returns the statistic accumulated over measurement passes.
func (m *Measurement) Stat() *running.Statistic { return &m.stat }

// SetValue stores a measured value.
func (m *Measurement) SetValue(v float64) {
	m.value = v
	m.status = StatusMeasured
}

// MarkDegenerate flags the value as undefined for the current input.
func (m *Measurement) MarkDegenerate() {
	m.value = 0
	m.status = StatusDegenerate
}

// Clear marks the measurement unmeasured.
func (m *Measurement) Clear() {
	m.value = 0
	m.status = StatusUnmeasured
}

func (m *Measurement) String() string {
	if m.status != StatusMeasured {
		return fmt.Sprintf("%s: %s", m.name, m.status)
	}

	return fmt.Sprintf("%s: %g %s", m.name, m.value, m.unit)
}

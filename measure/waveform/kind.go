package waveform

import "github.com/cwbudde/algo-scope/measure/data"

// Kind identifies a time-domain measurement. Its value is the measurement id
// inside the result set.
type Kind int

const (
	Period Kind = iota
	Frequency
	Min
	Max
	PeakPeak
	Mean
	CycleMean
	RMS
	CycleRMS
	ACRMS
	Area
	CycleArea
	Low
	High
	Amplitude
	Middle
	PosOvershoot
	NegOvershoot
	Rise
	Fall
	PosWidth
	NegWidth
	PosDuty
	NegDuty

	NumKinds
)

var definitions = [NumKinds]data.Definition{
	Period:       {Name: "Period", Axis: data.Horizontal, Unit: "s"},
	Frequency:    {Name: "Frequency", Axis: data.Horizontal, Unit: "Hz"},
	Min:          {Name: "Min", Axis: data.Vertical, Unit: "V"},
	Max:          {Name: "Max", Axis: data.Vertical, Unit: "V"},
	PeakPeak:     {Name: "Peak-peak", Axis: data.Vertical, Unit: "V"},
	Mean:         {Name: "Mean", Axis: data.Vertical, Unit: "V"},
	CycleMean:    {Name: "Cycle Mean", Axis: data.Vertical, Unit: "V"},
	RMS:          {Name: "RMS", Axis: data.Vertical, Unit: "V"},
	CycleRMS:     {Name: "Cycle RMS", Axis: data.Vertical, Unit: "V"},
	ACRMS:        {Name: "AC RMS", Axis: data.Vertical, Unit: "V"},
	Area:         {Name: "Area", Axis: data.Vertical, Unit: "Vs"},
	CycleArea:    {Name: "Cycle Area", Axis: data.Vertical, Unit: "Vs"},
	Low:          {Name: "Low", Axis: data.Vertical, Unit: "V"},
	High:         {Name: "High", Axis: data.Vertical, Unit: "V"},
	Amplitude:    {Name: "Amplitude", Axis: data.Vertical, Unit: "V"},
	Middle:       {Name: "Middle", Axis: data.Vertical, Unit: "V"},
	PosOvershoot: {Name: "+Over", Axis: data.Vertical, Unit: "%"},
	NegOvershoot: {Name: "-Over", Axis: data.Vertical, Unit: "%"},
	Rise:         {Name: "Rise", Axis: data.Horizontal, Unit: "s"},
	Fall:         {Name: "Fall", Axis: data.Horizontal, Unit: "s"},
	PosWidth:     {Name: "+Width", Axis: data.Horizontal, Unit: "s"},
	NegWidth:     {Name: "-Width", Axis: data.Horizontal, Unit: "s"},
	PosDuty:      {Name: "+Duty", Axis: data.Horizontal, Unit: "%"},
	NegDuty:      {Name: "-Duty", Axis: data.Horizontal, Unit: "%"},
}

// Definitions returns the definition of every kind in id order.
func Definitions() []data.Definition {
	out := make([]data.Definition, NumKinds)
	copy(out, definitions[:])
	return out
}

// String returns the measurement name.
func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "Kind(?)"
	}

	return definitions[k].Name
}

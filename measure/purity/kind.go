package purity

import "github.com/cwbudde/algo-scope/measure/data"

// Kind identifies a spectral measurement. Its value is the measurement id
// inside the result set.
type Kind int

const (
	NoiseFloor Kind = iota
	SINAD
	SNR
	THD
	THDN
	SFDR

	NumKinds
)

var definitions = [NumKinds]data.Definition{
	NoiseFloor: {Name: "Noise_Floor", Axis: data.HorizontalSpectral, Unit: "dB"},
	SINAD:      {Name: "SINAD", Axis: data.HorizontalSpectral, Unit: "dB"},
	SNR:        {Name: "SNR", Axis: data.HorizontalSpectral, Unit: "dB"},
	THD:        {Name: "THD", Axis: data.HorizontalSpectral, Unit: "dB"},
	THDN:       {Name: "THDN", Axis: data.HorizontalSpectral, Unit: "dB"},
	SFDR:       {Name: "SFDR", Axis: data.VerticalSpectral, Unit: "dBc"},
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

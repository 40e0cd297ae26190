// Package waveform measures the time-domain parameters of a captured buffer:
// period, frequency, settled levels, overshoot, rise and fall times, pulse
// widths, duty cycles and the usual aggregate values.
//
// One pass over the buffer accumulates the aggregates and feeds a crossing
// detector at the configured level. When at least one full cycle was seen,
// a second pass over exactly one period runs detectors at 10%, 50% and 90% of
// the amplitude. Edge timings are reported only when their merged timeline
// contains a complete low-rising to low-falling edge pair; anything less
// leaves them unmeasured.
package waveform

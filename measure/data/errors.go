package data

import "errors"

// ErrUnknownMeasurement is returned by Lookup for a name not in the set.
var ErrUnknownMeasurement = errors.New("data: unknown measurement")

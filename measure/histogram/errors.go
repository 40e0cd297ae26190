package histogram

import "errors"

// ErrBitCount is returned for a bit width outside [1, MaxBits].
var ErrBitCount = errors.New("histogram: invalid ADC bit count")

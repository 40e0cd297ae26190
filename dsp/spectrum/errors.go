package spectrum

import "errors"

var (
	// ErrShortSignal is returned for captures shorter than two samples.
	ErrShortSignal = errors.New("spectrum: signal needs at least 2 samples")
	// ErrUnknownWindow is returned for an unsupported window type.
	ErrUnknownWindow = errors.New("spectrum: unknown window type")
)

package correlation

import "errors"

// Sentinel kinds for correlation errors.
var (
	ErrUnknownLabel = errors.New("unknown matrix label")
	ErrEmpty        = errors.New("no columns to correlate")
)

package radar

import "errors"

// Sentinel kinds for radar chart errors.
var (
	// ErrValidation reports labels and segment scores that do not line up.
	ErrValidation = errors.New("radar validation failed")
)

package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	// ErrDataLoad covers a missing, unreadable or malformed workbook.
	ErrDataLoad = errors.New("data load failed")
	// ErrSchema reports an expected column that is absent.
	ErrSchema = errors.New("schema mismatch")
)

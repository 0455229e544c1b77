package dataset

import "errors"

// Sentinel errors reported at the dataset API boundary.
// Callers match them with errors.Is.
var (
	// ErrBatchTooSmall reports a requested rows-per-batch below
	// MinBatchRows.
	ErrBatchTooSmall = errors.New("batch size below minimum")

	// ErrIndexOutOfRange reports a sample or batch index outside the
	// collection.
	ErrIndexOutOfRange = errors.New("index out of range")
)

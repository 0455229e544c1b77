package tensor

import "errors"

// Sentinel errors reported by tensor construction and views.
// Callers match them with errors.Is.
var (
	// ErrInvalidShape reports a negative dimension or an element count
	// that overflows int.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrShapeMismatch reports an element-count or shape disagreement
	// between a tensor and its source, view, or operand.
	ErrShapeMismatch = errors.New("shape mismatch")
)

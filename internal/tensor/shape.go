// Package tensor provides the pooled, shape-tagged float32 buffers that
// back the minibatch pipeline.
package tensor

import (
	"fmt"
	"math"
)

// Shape tags a buffer with its NCHW layout: sample count, channels,
// height, width. Storage is row-major with W fastest.
type Shape struct {
	N, C, H, W int
}

// NumElements returns the total element count N*C*H*W.
func (s Shape) NumElements() int {
	return s.N * s.C * s.H * s.W
}

// PerSample returns C*H*W, the element count of one sample.
func (s Shape) PerSample() int {
	return s.C * s.H * s.W
}

// Validate checks that all dimensions are non-negative and that the
// element count does not overflow int.
func (s Shape) Validate() error {
	dims := [4]int{s.N, s.C, s.H, s.W}
	n := 1
	for i, d := range dims {
		if d < 0 {
			return fmt.Errorf("%w: dimension %d is %d (must be >= 0)", ErrInvalidShape, i, d)
		}
		if d != 0 && n > math.MaxInt/d {
			return fmt.Errorf("%w: element count of %v overflows int", ErrInvalidShape, s)
		}
		n *= d
	}
	return nil
}

// String renders the shape as (N C H W).
func (s Shape) String() string {
	return fmt.Sprintf("(%d %d %d %d)", s.N, s.C, s.H, s.W)
}

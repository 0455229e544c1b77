// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the pooled, shape-tagged buffers that hold
// batch contents and intermediate values.
//
// A Tensor is a view over a reference-counted arena block tagged with
// an NCHW shape. Reshape returns a zero-copy alias; Clone copies;
// Release returns the storage to the arena once the last alias is
// released.
//
// Example:
//
//	t, err := tensor.New(tensor.Shape{N: 2, C: 3, H: 1, W: 1}, tensor.ZeroFilled)
//	if err != nil {
//	    return err
//	}
//	defer t.Release()
//
//	view, err := t.Reshape(3, 2, 1, 1) // same storage, new shape
//	if err != nil {
//	    return err
//	}
//	defer view.Release()
package tensor

import (
	"github.com/born-ml/minibatch/internal/tensor"
)

// Shape tags a buffer with its NCHW layout.
type Shape = tensor.Shape

// Mode selects how freshly allocated storage is prepared.
type Mode = tensor.Mode

// Allocation modes.
const (
	Uninitialized Mode = tensor.Uninitialized
	ZeroFilled    Mode = tensor.ZeroFilled
)

// DefaultTolerance is the per-element tolerance used by Tensor.Equal.
const DefaultTolerance = tensor.DefaultTolerance

// Tensor is a shape-tagged view over one arena block.
type Tensor = tensor.Tensor

// Arena recycles storage blocks by size class.
type Arena = tensor.Arena

// Sentinel errors, matched with errors.Is.
var (
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrShapeMismatch = tensor.ErrShapeMismatch
)

// New allocates a tensor from the default arena.
func New(shape Shape, mode Mode) (*Tensor, error) {
	return tensor.New(shape, mode)
}

// NewArena creates an isolated arena.
func NewArena() *Arena {
	return tensor.NewArena()
}

// Like allocates a tensor with the same shape as other.
func Like(other *Tensor, mode Mode) (*Tensor, error) {
	return tensor.Like(other, mode)
}

// FromSlice copy-constructs a tensor of shape (len 1 1 1).
func FromSlice(values []float32) (*Tensor, error) {
	return tensor.FromSlice(values)
}

// FromSliceShape copy-constructs a tensor of shape (n c h w).
func FromSliceShape(values []float32, n, c, h, w int) (*Tensor, error) {
	return tensor.FromSliceShape(values, n, c, h, w)
}

package tensor

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Mode selects how freshly allocated storage is prepared.
type Mode int

const (
	// Uninitialized leaves recycled storage as-is. Fastest; contents
	// are undefined until written.
	Uninitialized Mode = iota
	// ZeroFilled clears the storage before the tensor is handed out.
	ZeroFilled
)

// DefaultTolerance is the per-element tolerance used by Equal.
const DefaultTolerance = 1e-4

// block is the reference-counted unit of arena storage. Reshaped views
// share one block; the arena gets the storage back when the last
// reference is released.
type block struct {
	data  []float32
	refs  atomic.Int32
	arena *Arena
}

// Tensor is a shape-tagged view over one arena block.
//
// Every handle, whether obtained from a constructor or from Reshape,
// holds its own reference to the block and must be released exactly
// once. The storage returns to the arena when the last reference is
// dropped.
type Tensor struct {
	block *block
	shape Shape
}

// New allocates a tensor from the default arena.
func New(shape Shape, mode Mode) (*Tensor, error) {
	return Default.New(shape, mode)
}

// New allocates a tensor with the given shape from this arena.
// Fails with ErrInvalidShape on negative dimensions or overflow.
func (a *Arena) New(shape Shape, mode Mode) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	data := a.get(shape.NumElements())
	if mode == ZeroFilled {
		clear(data)
	}
	b := &block{data: data, arena: a}
	b.refs.Store(1)
	return &Tensor{block: b, shape: shape}, nil
}

// Like allocates a tensor with the same shape as other, from the same
// arena other came from.
func Like(other *Tensor, mode Mode) (*Tensor, error) {
	return other.block.arena.New(other.shape, mode)
}

// FromSlice copies values into a new tensor of shape (len 1 1 1).
func FromSlice(values []float32) (*Tensor, error) {
	return FromSliceShape(values, len(values), 1, 1, 1)
}

// FromSliceShape copies values into a new tensor of shape (n c h w).
// Fails with ErrShapeMismatch if the source length does not equal the
// shape's element count.
func FromSliceShape(values []float32, n, c, h, w int) (*Tensor, error) {
	shape := Shape{n, c, h, w}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("%w: shape %v wants %d elements, source has %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(values))
	}
	t, err := Default.New(shape, Uninitialized)
	if err != nil {
		return nil, err
	}
	copy(t.block.data, values)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// ByteSize returns the storage footprint in bytes.
func (t *Tensor) ByteSize() int {
	return t.NumElements() * 4
}

// Data returns the tensor's flat storage. Zero-copy: writes are
// visible through every view of the same block.
func (t *Tensor) Data() []float32 {
	return t.block.data
}

// Reshape returns a view with a new shape over the same storage.
// No data is copied. The view holds its own block reference; release
// it independently of the original handle.
func (t *Tensor) Reshape(n, c, h, w int) (*Tensor, error) {
	shape := Shape{n, c, h, w}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != t.shape.NumElements() {
		return nil, fmt.Errorf("%w: cannot view %v as %v", ErrShapeMismatch, t.shape, shape)
	}
	t.block.refs.Add(1)
	return &Tensor{block: t.block, shape: shape}, nil
}

// CopyFrom overwrites t element-wise with the contents of src.
// Fails with ErrShapeMismatch unless the shapes are identical.
func (t *Tensor) CopyFrom(src *Tensor) error {
	if t.shape != src.shape {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, t.shape, src.shape)
	}
	copy(t.block.data, src.block.data)
	return nil
}

// Clone allocates new storage with the same shape and copies contents.
func (t *Tensor) Clone() (*Tensor, error) {
	dup, err := t.block.arena.New(t.shape, Uninitialized)
	if err != nil {
		return nil, err
	}
	copy(dup.block.data, t.block.data)
	return dup, nil
}

// Equal reports whether other has the same shape and every element
// pair differs by at most DefaultTolerance. Meant for assertions, not
// hot-path code.
func (t *Tensor) Equal(other *Tensor) bool {
	return t.EqualTol(other, DefaultTolerance)
}

// EqualTol is Equal with an explicit tolerance. Shape mismatch is
// reported as unequal without touching the data.
func (t *Tensor) EqualTol(other *Tensor, tol float64) bool {
	if t.shape != other.shape {
		return false
	}
	for i, v := range t.block.data {
		if math.Abs(float64(v)-float64(other.block.data[i])) > tol {
			return false
		}
	}
	return true
}

// Release drops this handle's reference. The storage returns to the
// arena once every handle sharing the block has been released. Each
// handle must be released exactly once.
func (t *Tensor) Release() {
	if t.block.refs.Add(-1) == 0 {
		t.block.arena.put(t.block.data)
		t.block.data = nil
	}
}

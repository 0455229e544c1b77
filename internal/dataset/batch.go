// Package dataset implements the minibatch pipeline: partitioning a
// dataset of paired input/output rows into batches, re-partitioning to
// a new batch size, and the epoch-boundary cross-shuffle.
package dataset

import (
	"fmt"

	"github.com/born-ml/minibatch/internal/tensor"
)

// Row is one sample: an input vector paired with its expected output.
type Row struct {
	In  []float32
	Out []float32
}

// Generator lazily produces one sample.
type Generator func() (Row, error)

// Batch is one contiguous group of samples: a dense row-major input
// matrix X paired with a dense output matrix Y, both batch-owned.
// No aliasing of the construction source survives past construction.
type Batch struct {
	x, y      *tensor.Tensor
	rows      int
	inW, outW int
}

// newBatchFromDense builds one batch by copying a contiguous run of
// rows out of row-major slices.
func newBatchFromDense(xSlice, ySlice []float32, inW, outW int) (*Batch, error) {
	if inW <= 0 || outW <= 0 {
		return nil, fmt.Errorf("%w: feature widths must be positive, got %d and %d",
			tensor.ErrShapeMismatch, inW, outW)
	}
	if len(xSlice)%inW != 0 || len(ySlice)%outW != 0 {
		return nil, fmt.Errorf("%w: slice lengths %d/%d are not multiples of widths %d/%d",
			tensor.ErrShapeMismatch, len(xSlice), len(ySlice), inW, outW)
	}
	rows := len(xSlice) / inW
	if rows != len(ySlice)/outW {
		return nil, fmt.Errorf("%w: %d input rows vs %d output rows",
			tensor.ErrShapeMismatch, rows, len(ySlice)/outW)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: a batch needs at least one row", tensor.ErrShapeMismatch)
	}

	x, err := tensor.FromSliceShape(xSlice, rows, inW, 1, 1)
	if err != nil {
		return nil, err
	}
	y, err := tensor.FromSliceShape(ySlice, rows, outW, 1, 1)
	if err != nil {
		x.Release()
		return nil, err
	}
	return &Batch{x: x, y: y, rows: rows, inW: inW, outW: outW}, nil
}

// newBatchFromRows builds one batch from a finite sequence of row
// pairs, copying every row into freshly allocated dense matrices.
func newBatchFromRows(rows []Row) (*Batch, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: a batch needs at least one row", tensor.ErrShapeMismatch)
	}
	inW, outW := len(rows[0].In), len(rows[0].Out)
	if inW == 0 || outW == 0 {
		return nil, fmt.Errorf("%w: rows must carry input and output values", tensor.ErrShapeMismatch)
	}

	x, err := tensor.New(tensor.Shape{N: len(rows), C: inW, H: 1, W: 1}, tensor.Uninitialized)
	if err != nil {
		return nil, err
	}
	y, err := tensor.New(tensor.Shape{N: len(rows), C: outW, H: 1, W: 1}, tensor.Uninitialized)
	if err != nil {
		x.Release()
		return nil, err
	}

	b := &Batch{x: x, y: y, rows: len(rows), inW: inW, outW: outW}
	for i, r := range rows {
		if len(r.In) != inW || len(r.Out) != outW {
			b.release()
			return nil, fmt.Errorf("%w: row %d has widths %d/%d, batch has %d/%d",
				tensor.ErrShapeMismatch, i, len(r.In), len(r.Out), inW, outW)
		}
		copy(b.InputRow(i), r.In)
		copy(b.OutputRow(i), r.Out)
	}
	return b, nil
}

// Rows returns the number of samples in the batch.
func (b *Batch) Rows() int {
	return b.rows
}

// InputWidth returns the input feature width.
func (b *Batch) InputWidth() int {
	return b.inW
}

// OutputWidth returns the output feature width.
func (b *Batch) OutputWidth() int {
	return b.outW
}

// Input returns the batch's input tensor, shape (rows inW 1 1).
// The batch keeps ownership; the caller must not release it.
func (b *Batch) Input() *tensor.Tensor {
	return b.x
}

// Output returns the batch's output tensor, shape (rows outW 1 1).
func (b *Batch) Output() *tensor.Tensor {
	return b.y
}

// InputRow returns a zero-copy view of sample i's input vector.
func (b *Batch) InputRow(i int) []float32 {
	return b.x.Data()[i*b.inW : (i+1)*b.inW]
}

// OutputRow returns a zero-copy view of sample i's output vector.
func (b *Batch) OutputRow(i int) []float32 {
	return b.y.Data()[i*b.outW : (i+1)*b.outW]
}

// ByteSize returns the bytes occupied by the batch's row data.
func (b *Batch) ByteSize() int {
	return b.x.ByteSize() + b.y.ByteSize()
}

// copyRowFrom overwrites sample dst with sample src of other. Both
// the input and the output vector move together.
func (b *Batch) copyRowFrom(dst int, other *Batch, src int) {
	copy(b.InputRow(dst), other.InputRow(src))
	copy(b.OutputRow(dst), other.OutputRow(src))
}

// release returns both tensors to the arena.
func (b *Batch) release() {
	b.x.Release()
	b.y.Release()
}

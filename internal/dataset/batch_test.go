package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minibatch/internal/tensor"
)

func TestNewBatchFromDense(t *testing.T) {
	x := []float32{1, 2, 3, 4, 5, 6} // 3 rows of width 2
	y := []float32{10, 20, 30}       // 3 rows of width 1

	b, err := newBatchFromDense(x, y, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, b.Rows())
	assert.Equal(t, 2, b.InputWidth())
	assert.Equal(t, 1, b.OutputWidth())
	assert.Equal(t, []float32{3, 4}, b.InputRow(1))
	assert.Equal(t, []float32{30}, b.OutputRow(2))

	// The batch owns its storage: mutating the source must not show.
	x[0] = 99
	assert.Equal(t, []float32{1, 2}, b.InputRow(0))
}

func TestNewBatchFromDenseErrors(t *testing.T) {
	// Slice length not a multiple of the width.
	_, err := newBatchFromDense([]float32{1, 2, 3}, []float32{1}, 2, 1)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	// Implied row counts differ.
	_, err = newBatchFromDense([]float32{1, 2, 3, 4}, []float32{1}, 2, 1)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	// Empty.
	_, err = newBatchFromDense(nil, nil, 2, 1)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNewBatchFromRows(t *testing.T) {
	rows := []Row{
		{In: []float32{1, 2}, Out: []float32{10}},
		{In: []float32{3, 4}, Out: []float32{20}},
	}

	b, err := newBatchFromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Rows())
	assert.Equal(t, []float32{3, 4}, b.InputRow(1))
	assert.Equal(t, []float32{10}, b.OutputRow(0))

	// Rows are copied, not aliased.
	rows[0].In[0] = 99
	assert.Equal(t, []float32{1, 2}, b.InputRow(0))
}

func TestNewBatchFromRowsRagged(t *testing.T) {
	rows := []Row{
		{In: []float32{1, 2}, Out: []float32{10}},
		{In: []float32{3}, Out: []float32{20}},
	}
	_, err := newBatchFromRows(rows)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestBatchByteSize(t *testing.T) {
	b, err := newBatchFromDense(make([]float32, 12), make([]float32, 3), 4, 1)
	require.NoError(t, err)
	assert.Equal(t, (12+3)*4, b.ByteSize())
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minibatch/dataset"
)

// TestTrainingLoop drives the pipeline the way a training loop does:
// build, iterate, re-partition, shuffle between epochs.
func TestTrainingLoop(t *testing.T) {
	rows := make([]dataset.Row, 64)
	for i := range rows {
		rows[i] = dataset.Row{
			In:  []float32{float32(i), float32(i) * 2},
			Out: []float32{float32(i) * 10},
		}
	}

	d, err := dataset.FromRows(rows, 16, dataset.WithSeed(1))
	require.NoError(t, err)
	defer d.Release()

	assert.Equal(t, 64, d.Count())
	assert.Equal(t, 4, d.BatchSize())
	assert.Equal(t, 2, d.InputFeatures())
	assert.Equal(t, 1, d.OutputFeatures())

	for epoch := 0; epoch < 3; epoch++ {
		seen := 0
		for _, b := range d.Batches() {
			assert.Equal(t, b.Input().Shape().N, b.Rows())
			seen += b.Rows()
		}
		assert.Equal(t, 64, seen)
		require.NoError(t, d.CrossShuffle())
	}

	require.NoError(t, d.SetBatchSize(32))
	assert.Equal(t, 2, d.BatchSize())
	assert.Equal(t, 64, d.Count())
}

func TestFacadeValidation(t *testing.T) {
	_, err := dataset.FromRows(nil, 5)
	assert.ErrorIs(t, err, dataset.ErrBatchTooSmall)
}

func TestWithWorkers(t *testing.T) {
	rows := make([]dataset.Row, 30)
	for i := range rows {
		rows[i] = dataset.Row{In: []float32{float32(i)}, Out: []float32{0}}
	}

	// Both the sequential and the bounded-worker paths must agree on
	// the resulting partition.
	a, err := dataset.FromRows(rows, 10, dataset.WithWorkers(1))
	require.NoError(t, err)
	b, err := dataset.FromRows(rows, 10, dataset.WithWorkers(4))
	require.NoError(t, err)

	require.Equal(t, a.BatchSize(), b.BatchSize())
	for i := 0; i < a.Count(); i++ {
		ax, _, err := a.Sample(i)
		require.NoError(t, err)
		bx, _, err := b.Sample(i)
		require.NoError(t, err)
		assert.Equal(t, ax, bx)
	}
}

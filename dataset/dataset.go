// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides the minibatch pipeline for iterative
// gradient-based training: partitioning paired input/output rows into
// fixed-size batches, re-partitioning to a new batch size, and the
// epoch-boundary cross-shuffle.
//
// Example:
//
//	d, err := dataset.FromDense(x, y, 32)
//	if err != nil {
//	    return err
//	}
//	defer d.Release()
//
//	for epoch := 0; epoch < epochs; epoch++ {
//	    for _, b := range d.Batches() {
//	        step(b.Input(), b.Output())
//	    }
//	    if err := d.CrossShuffle(); err != nil {
//	        return err
//	    }
//	}
package dataset

import (
	"github.com/born-ml/minibatch/internal/dataset"
	"github.com/born-ml/minibatch/internal/parallel"
	"github.com/born-ml/minibatch/tensor"
)

// MinBatchRows is the smallest rows-per-batch a collection accepts.
const MinBatchRows = dataset.MinBatchRows

// Core types.
type (
	// Dataset is an ordered sequence of batches over one sample set.
	Dataset = dataset.Dataset
	// Batch is one contiguous group of samples with batch-owned X/Y
	// matrices.
	Batch = dataset.Batch
	// Row is one sample: an input vector paired with its output.
	Row = dataset.Row
	// Generator lazily produces one sample.
	Generator = dataset.Generator
	// Option configures a Dataset at construction.
	Option = dataset.Option
)

// Sentinel errors, matched with errors.Is.
var (
	ErrBatchTooSmall   = dataset.ErrBatchTooSmall
	ErrIndexOutOfRange = dataset.ErrIndexOutOfRange
)

// FromDense partitions a dense dataset into batches of targetRows
// each, preserving row order.
func FromDense(x, y *tensor.Tensor, targetRows int, opts ...Option) (*Dataset, error) {
	return dataset.FromDense(x, y, targetRows, opts...)
}

// FromRows partitions an ordered sequence of row pairs.
func FromRows(rows []Row, targetRows int, opts ...Option) (*Dataset, error) {
	return dataset.FromRows(rows, targetRows, opts...)
}

// FromGenerators evaluates one generator per sample in parallel, then
// partitions the results in submission order.
func FromGenerators(gens []Generator, targetRows int, opts ...Option) (*Dataset, error) {
	return dataset.FromGenerators(gens, targetRows, opts...)
}

// WithSeed fixes the random source for reproducible shuffles.
func WithSeed(seed int64) Option {
	return dataset.WithSeed(seed)
}

// WithWorkers bounds construction and shuffle parallelism to n
// workers; n <= 1 disables forking entirely.
func WithWorkers(n int) Option {
	if n <= 1 {
		return dataset.WithParallelism(parallel.Sequential())
	}
	return dataset.WithParallelism(parallel.Config{
		Enabled:    true,
		NumWorkers: n,
		MinUnits:   2,
	})
}

package dataset

import (
	"fmt"

	"github.com/born-ml/minibatch/internal/parallel"
	"github.com/born-ml/minibatch/internal/random"
	"github.com/born-ml/minibatch/internal/tensor"
)

// MinBatchRows is the smallest rows-per-batch a collection accepts.
const MinBatchRows = 10

// Dataset is an ordered sequence of batches over one logical sample
// set. The training loop iterates Batches for gradient steps and
// calls CrossShuffle between epochs.
type Dataset struct {
	batches []*Batch
	rowsPer int // uniform rows per batch, fixed at partition time
	rng     *random.Source
	cfg     parallel.Config
}

// Option configures a Dataset at construction.
type Option func(*Dataset)

// WithSeed fixes the random source, making shuffles reproducible when
// parallelism is disabled.
func WithSeed(seed int64) Option {
	return func(d *Dataset) { d.rng = random.New(seed) }
}

// WithParallelism overrides the execution config for construction,
// re-partitioning and shuffling.
func WithParallelism(cfg parallel.Config) Option {
	return func(d *Dataset) { d.cfg = cfg }
}

func newDataset(opts []Option) *Dataset {
	d := &Dataset{
		rng: random.NewTime(),
		cfg: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func validateTarget(rowsPerBatch int) error {
	if rowsPerBatch < MinBatchRows {
		return fmt.Errorf("%w: %d rows per batch (minimum %d)",
			ErrBatchTooSmall, rowsPerBatch, MinBatchRows)
	}
	return nil
}

// partition builds ceil(total/targetRows) batches with build, running
// batch construction in parallel. The final batch receives the
// remainder; no empty batch is ever created. On failure every batch
// built so far is released and the error is returned.
func partition(total, targetRows int, cfg parallel.Config, build func(start, end int) (*Batch, error)) ([]*Batch, error) {
	if total == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", tensor.ErrShapeMismatch)
	}
	numBatches := (total + targetRows - 1) / targetRows
	batches := make([]*Batch, numBatches)

	err := parallel.ForErr(numBatches, func(i int) error {
		start := i * targetRows
		end := min(start+targetRows, total)
		b, err := build(start, end)
		if err != nil {
			return fmt.Errorf("batch %d: %w", i, err)
		}
		batches[i] = b
		return nil
	}, cfg)
	if err != nil {
		releaseAll(batches)
		return nil, err
	}
	return batches, nil
}

// install swaps in a freshly partitioned batch array and records its
// uniform row count.
func (d *Dataset) install(batches []*Batch) {
	d.batches = batches
	d.rowsPer = batches[0].Rows()
}

func releaseAll(batches []*Batch) {
	for _, b := range batches {
		if b != nil {
			b.release()
		}
	}
}

// FromDense partitions a dense dataset into batches of targetRows
// each, preserving row order. x and y hold one sample per leading
// dimension; their per-sample element counts become the feature
// widths. Fails with ErrBatchTooSmall if targetRows < MinBatchRows
// and with tensor.ErrShapeMismatch if x and y disagree on row count.
func FromDense(x, y *tensor.Tensor, targetRows int, opts ...Option) (*Dataset, error) {
	if err := validateTarget(targetRows); err != nil {
		return nil, err
	}
	rows := x.Shape().N
	if rows != y.Shape().N {
		return nil, fmt.Errorf("%w: %d input rows vs %d output rows",
			tensor.ErrShapeMismatch, rows, y.Shape().N)
	}
	inW, outW := x.Shape().PerSample(), y.Shape().PerSample()
	xd, yd := x.Data(), y.Data()

	d := newDataset(opts)
	batches, err := partition(rows, targetRows, d.cfg, func(start, end int) (*Batch, error) {
		return newBatchFromDense(xd[start*inW:end*inW], yd[start*outW:end*outW], inW, outW)
	})
	if err != nil {
		return nil, err
	}
	d.install(batches)
	return d, nil
}

// FromRows partitions an ordered sequence of row pairs into batches
// of targetRows each, copying every row.
func FromRows(rows []Row, targetRows int, opts ...Option) (*Dataset, error) {
	if err := validateTarget(targetRows); err != nil {
		return nil, err
	}
	d := newDataset(opts)
	batches, err := partition(len(rows), targetRows, d.cfg, func(start, end int) (*Batch, error) {
		return newBatchFromRows(rows[start:end])
	})
	if err != nil {
		return nil, err
	}
	d.install(batches)
	return d, nil
}

// FromGenerators evaluates one generator per sample in parallel, then
// partitions the results. Rows land at their submission index, so
// batch order follows generator order regardless of scheduling.
// Generator failures surface as a single aggregated error.
func FromGenerators(gens []Generator, targetRows int, opts ...Option) (*Dataset, error) {
	if err := validateTarget(targetRows); err != nil {
		return nil, err
	}
	d := newDataset(opts)

	rows := make([]Row, len(gens))
	err := parallel.ForErr(len(gens), func(i int) error {
		r, err := gens[i]()
		if err != nil {
			return fmt.Errorf("generator %d: %w", i, err)
		}
		rows[i] = r
		return nil
	}, d.cfg)
	if err != nil {
		return nil, err
	}

	batches, err := partition(len(rows), targetRows, d.cfg, func(start, end int) (*Batch, error) {
		return newBatchFromRows(rows[start:end])
	})
	if err != nil {
		return nil, err
	}
	d.install(batches)
	return d, nil
}

// Count returns the total number of rows across all batches.
func (d *Dataset) Count() int {
	total := 0
	for _, b := range d.batches {
		total += b.Rows()
	}
	return total
}

// InputFeatures returns the input feature width shared by all batches.
func (d *Dataset) InputFeatures() int {
	return d.batches[0].InputWidth()
}

// OutputFeatures returns the output feature width shared by all
// batches.
func (d *Dataset) OutputFeatures() int {
	return d.batches[0].OutputWidth()
}

// BatchSize returns the number of batches. The name is the externally
// visible knob of the collection: the getter counts batches while
// SetBatchSize takes a rows-per-batch target.
func (d *Dataset) BatchSize() int {
	return len(d.batches)
}

// RowsPerBatch returns the uniform batch row count (the remainder
// batch may hold fewer). The value is fixed at partition time;
// shuffling reorders batches but never changes it.
func (d *Dataset) RowsPerBatch() int {
	return d.rowsPer
}

// Batch returns batch i in iteration order.
func (d *Dataset) Batch(i int) (*Batch, error) {
	if i < 0 || i >= len(d.batches) {
		return nil, fmt.Errorf("%w: batch %d of %d", ErrIndexOutOfRange, i, len(d.batches))
	}
	return d.batches[i], nil
}

// Batches returns the batch array in iteration order. CrossShuffle
// and SetBatchSize mutate it in place; callers must not hold the
// slice across those calls.
func (d *Dataset) Batches() []*Batch {
	return d.batches
}

// ByteSize returns the total bytes occupied by row data across all
// batches.
func (d *Dataset) ByteSize() int {
	total := 0
	for _, b := range d.batches {
		total += b.ByteSize()
	}
	return total
}

// Sample returns a zero-copy read view of the i-th logical sample.
// Index validity is checked against Count.
func (d *Dataset) Sample(i int) (in, out []float32, err error) {
	if i < 0 || i >= d.Count() {
		return nil, nil, fmt.Errorf("%w: sample %d of %d", ErrIndexOutOfRange, i, d.Count())
	}
	v := newRowView(d.batches)
	r := v.row(i)
	return r.In, r.Out, nil
}

// SetBatchSize re-partitions the collection to rowsPerBatch rows per
// batch, preserving row order. Rows are read through a zero-copy view
// of the live batches; the new batch array replaces the old one only
// after it is fully built, so a failed call leaves the collection in
// its prior valid state. This operation never shuffles.
func (d *Dataset) SetBatchSize(rowsPerBatch int) error {
	if err := validateTarget(rowsPerBatch); err != nil {
		return err
	}

	view := newRowView(d.batches)
	fresh, err := partition(view.count, rowsPerBatch, d.cfg, func(start, end int) (*Batch, error) {
		rows := make([]Row, end-start)
		for i := range rows {
			rows[i] = view.row(start + i)
		}
		return newBatchFromRows(rows)
	})
	if err != nil {
		return err
	}

	old := d.batches
	d.install(fresh)
	releaseAll(old)
	return nil
}

// Release returns every batch's storage to the arena. The dataset
// must not be used afterwards.
func (d *Dataset) Release() {
	releaseAll(d.batches)
	d.batches = nil
}

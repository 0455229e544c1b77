package dataset

import (
	"fmt"

	"github.com/born-ml/minibatch/internal/parallel"
	"github.com/born-ml/minibatch/internal/random"
	"github.com/born-ml/minibatch/internal/tensor"
)

// CrossShuffle re-randomizes the collection in place between epochs:
// it permutes batch order and mixes rows both within and across
// paired batches. Count, feature widths, per-batch row counts and the
// multiset of rows are preserved; only positions change.
//
// Pair kernels run in parallel over disjoint batch pairs. If a kernel
// fails the shuffle aborts with the aggregated error and the
// collection may be partially mutated; callers needing all-or-nothing
// semantics must snapshot around this call.
func (d *Dataset) CrossShuffle() error {
	nb := len(d.batches)
	if nb == 0 {
		return nil
	}

	// Random permutation of batch indices; contents do not move yet.
	perm := make([]int, nb)
	for i := range perm {
		perm[i] = i
	}
	fisherYates(len(perm), d.rng, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	// Consecutive entries of the permutation form disjoint pairs; an
	// odd trailing batch sits this phase out. Each pair touches only
	// its own two batches, so the kernels need no locking.
	pairs := nb / 2
	err := parallel.ForErr(pairs, func(p int) error {
		return crossShufflePair(d.batches[perm[2*p]], d.batches[perm[2*p+1]], d.rng)
	}, d.cfg)
	// ForErr waits for every kernel; that barrier must hold before the
	// whole-array reorder below may touch the batch slice.
	if err != nil {
		return fmt.Errorf("cross shuffle: %w", err)
	}

	// Second, independent permutation of the batch array itself; this
	// sets training iteration order for the next epoch.
	fisherYates(nb, d.rng, func(i, j int) {
		d.batches[i], d.batches[j] = d.batches[j], d.batches[i]
	})
	return nil
}

// fisherYates runs an in-place Fisher-Yates shuffle over n slots.
func fisherYates(n int, rng *random.Source, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, rng.Intn(i+1))
	}
}

// crossShufflePair mixes rows between batches a and b with a
// Fisher-Yates variant generalized to two logical arrays. Each
// iteration draws a victim slot k, picks the two participating
// batches by independent coin flips, and rotates three row slots
// through a scratch row. The flips may select the same batch twice;
// that degenerate draw shuffles a batch against itself and is part of
// the sampled distribution.
func crossShufflePair(a, b *Batch, rng *random.Source) error {
	if a.InputWidth() != b.InputWidth() || a.OutputWidth() != b.OutputWidth() {
		return fmt.Errorf("%w: paired batches disagree on widths (%d/%d vs %d/%d)",
			tensor.ErrShapeMismatch, a.InputWidth(), a.OutputWidth(), b.InputWidth(), b.OutputWidth())
	}

	scratchIn := make([]float32, a.InputWidth())
	scratchOut := make([]float32, a.OutputWidth())

	bound := min(a.Rows(), b.Rows())
	for bound > 1 {
		k := rng.Intn(bound)
		bound--

		targetA, targetB := a, b
		if rng.Coin() {
			targetA = b
		}
		if rng.Coin() {
			targetB = a
		}

		// Rotate: row k of targetA -> scratch, row bound of targetB ->
		// row k of targetA, scratch -> row bound of targetB. A sample's
		// input and output vectors always move together.
		copy(scratchIn, targetA.InputRow(k))
		copy(scratchOut, targetA.OutputRow(k))
		targetA.copyRowFrom(k, targetB, bound)
		copy(targetB.InputRow(bound), scratchIn)
		copy(targetB.OutputRow(bound), scratchOut)
	}
	return nil
}

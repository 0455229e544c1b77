package dataset

// rowView is an ordered, zero-copy view of every logical row across a
// live batch array. SetBatchSize re-partitions through it so rows are
// referenced in their existing storage instead of being staged through
// an intermediate buffer.
type rowView struct {
	batches []*Batch
	offsets []int // offsets[b] = logical index of batch b's first row
	per     int   // leading batch's row count, the division guess
	count   int
}

func newRowView(batches []*Batch) *rowView {
	v := &rowView{
		batches: batches,
		offsets: make([]int, len(batches)),
	}
	if len(batches) > 0 {
		v.per = batches[0].Rows()
	}
	for i, b := range batches {
		v.offsets[i] = v.count
		v.count += b.Rows()
	}
	return v
}

// row returns the i-th logical row, aliasing batch storage.
func (v *rowView) row(i int) Row {
	// Division locates the batch when the remainder batch is last.
	// After a cross-shuffle it can sit anywhere, so correct the guess
	// against the real offsets.
	b := min(i/v.per, len(v.batches)-1)
	for v.offsets[b] > i {
		b--
	}
	for v.offsets[b]+v.batches[b].Rows() <= i {
		b++
	}
	local := i - v.offsets[b]
	return Row{In: v.batches[b].InputRow(local), Out: v.batches[b].OutputRow(local)}
}

package bitvec

// SelectBits compacts bv by mask: the result holds, in ascending
// order, the bits of bv at the positions where mask is set, limited
// to positions below bv.Size(). This is the parallel-compaction step
// used when a selection is applied on top of another selection.
func (bv *BitVector) SelectBits(mask *BitVector) *BitVector {
	limit := min(bv.size, mask.size)
	b := NewBuilder(mask.CountSetBitsBefore(limit))
	for it := mask.IterateSetBits(); it.Valid() && it.Index() < bv.size; it.Next() {
		b.Append(bv.IsSet(it.Index()))
	}
	return b.Build()
}

// IntersectRange extracts the bits of bv in [rangeStart, rangeEnd)
// into a new BitVector: result bit i equals bv bit rangeStart+i, and
// the result size is min(rangeEnd, Size()) - rangeStart (empty if
// rangeStart is at or past the clamped end).
//
// The aligned interior is copied word-by-word; only the unaligned
// head and tail pay a per-bit cost.
func (bv *BitVector) IntersectRange(rangeStart, rangeEnd uint32) *BitVector {
	end := min(rangeEnd, bv.size)
	if rangeStart >= end {
		return &BitVector{}
	}

	b := NewOffsetBuilder(end, rangeStart)
	cur := rangeStart
	frontBits := b.BitsUntilWordBoundaryOrFull()
	for i := uint32(0); i < frontBits; i++ {
		b.Append(bv.IsSet(cur))
		cur++
	}

	fullWords := b.BitsInCompleteWordsUntilFull() / WordBits
	curWord := cur / WordBits
	for w := uint32(0); w < fullWords; w++ {
		b.AppendWord(bv.words[curWord+w])
	}
	cur += fullWords * WordBits

	lastBits := b.BitsUntilFull()
	for i := uint32(0); i < lastBits; i++ {
		b.Append(bv.IsSet(cur))
		cur++
	}

	return b.Build()
}

// FromSortedIndexes builds a BitVector with exactly the given bits
// set. indices must be ascending; an empty slice yields an empty
// vector. The result size is the last index + 1, so the final bit is
// always set. Bits are written straight into a fresh word array and
// the rank array is computed in one pass, avoiding the per-append
// bookkeeping of the incremental paths.
func FromSortedIndexes(indices []int64) *BitVector {
	if len(indices) == 0 {
		return &BitVector{}
	}

	size := uint32(indices[len(indices)-1] + 1)
	words := make([]uint64, blockCount(size)*BlockWords)
	for _, i := range indices {
		words[i/WordBits] |= uint64(1) << (i % WordBits)
	}

	bv := &BitVector{
		size:   size,
		counts: make([]uint32, blockCount(size)),
		words:  words,
	}
	bv.recomputeCounts()
	return bv
}

// GetSetBitIndices returns the positions of all set bits in ascending
// order.
func (bv *BitVector) GetSetBitIndices() []uint32 {
	out := make([]uint32, 0, bv.CountSetBits())
	for it := bv.IterateSetBits(); it.Valid(); it.Next() {
		out = append(out, it.Index())
	}
	return out
}

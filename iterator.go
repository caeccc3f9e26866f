package bitvec

import "iter"

// iterBatchSize is the number of upcoming set-bit positions the
// iterator prefetches per scan (two cache lines of uint32 indices).
const iterBatchSize = 128

// SetBitsIterator is a lazy cursor over the positions of set bits, in
// ascending order. It prefetches positions in small batches and uses
// the rank array to skip entirely-empty blocks without touching their
// words.
//
// The iterator borrows the BitVector: mutating the source while an
// iterator is live is undefined behavior and is not guarded against.
//
//	for it := bv.IterateSetBits(); it.Valid(); it.Next() {
//		use(it.Index())
//	}
type SetBitsIterator struct {
	bv          *BitVector
	index       uint32 // position of the current set bit
	setBitCount uint32 // total set bits in the source
	setBitIndex uint32 // ordinal of the current set bit
	batch       [iterBatchSize]uint32
}

// IterateSetBits returns an iterator positioned on the first set bit,
// if any.
func (bv *BitVector) IterateSetBits() *SetBitsIterator {
	it := &SetBitsIterator{bv: bv, setBitCount: bv.CountSetBits()}
	if it.setBitCount > 0 {
		it.readBatch(0)
		it.index = it.batch[0]
	}
	return it
}

// Valid reports whether the iterator is on a set bit.
func (it *SetBitsIterator) Valid() bool {
	return it.setBitIndex < it.setBitCount
}

// Index returns the position of the current set bit. Only meaningful
// while Valid.
func (it *SetBitsIterator) Index() uint32 {
	return it.index
}

// Next advances to the following set bit, refilling the batch when
// the current one is drained.
func (it *SetBitsIterator) Next() {
	it.setBitIndex++
	if !it.Valid() {
		return
	}
	if it.setBitIndex%iterBatchSize == 0 {
		it.readBatch(it.index + 1)
	}
	it.index = it.batch[it.setBitIndex%iterBatchSize]
}

// readBatch scans forward from startIdx filling the batch with set
// bit positions. When the rank entry at the end of a block matches
// the running count, the block holds no further set bits and is
// skipped wholesale.
func (it *SetBitsIterator) readBatch(startIdx uint32) {
	countUntil := it.setBitIndex
	for i := startIdx; i < it.bv.size; i++ {
		addr := indexToAddress(i)

		// The last block has no successor rank entry; its end count
		// is the vector total.
		var toEndOfBlock uint32
		if addr.block == uint32(len(it.bv.counts))-1 {
			toEndOfBlock = it.setBitCount
		} else {
			toEndOfBlock = it.bv.counts[addr.block+1]
		}
		if toEndOfBlock == countUntil {
			i = addressToIndex(address{block: addr.block, offset: lastBlockOffset})
			continue
		}

		if !it.bv.blockAt(addr.block).isSet(addr.offset) {
			continue
		}

		batchIdx := countUntil % iterBatchSize
		countUntil++
		it.batch[batchIdx] = i
		if batchIdx == iterBatchSize-1 {
			return
		}
	}
}

// SetBits returns the set-bit positions as a range-over-func
// sequence.
func (bv *BitVector) SetBits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for it := bv.IterateSetBits(); it.Valid(); it.Next() {
			if !yield(it.Index()) {
				return
			}
		}
	}
}

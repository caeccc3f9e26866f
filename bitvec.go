package bitvec

import (
	"fmt"
	"math/bits"
)

// BitVector is a mutable, dynamically-resizable bitset with an
// embedded per-block rank index. It is the selection/nullability
// primitive of a columnar engine: bit i answers "is row/cell i
// present" in O(1), and the rank index answers "how many are present
// before i" in O(1).
//
// Memory layout:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  Block 0 (64B)   │  Block 1 (64B)   │  Block 2 (64B)  ...│
//	│  8 × uint64      │  8 × uint64      │  8 × uint64        │
//	│  bits [0,511]    │  bits [512,1023] │  bits [1024,1535]  │
//	└──────────────────────────────────────────────────────────┘
//
// counts[i] holds the number of set bits in blocks [0, i); counts[0]
// is always 0. words is always a whole number of blocks long, and
// every bit at index >= Size() in the final block is zero.
//
// The zero value is an empty, ready-to-use BitVector. BitVector is
// not safe for concurrent mutation; plain assignment shares the
// backing storage, use Copy for an independent clone.
type BitVector struct {
	size   uint32
	counts []uint32
	words  []uint64
}

// New returns an empty BitVector.
func New() *BitVector {
	return &BitVector{}
}

// NewFilled returns a BitVector of n bits, all set to value.
func NewFilled(n uint32, value bool) *BitVector {
	bv := &BitVector{}
	bv.Resize(n, value)
	return bv
}

// FromBools returns a BitVector holding the given bits in order.
func FromBools(values ...bool) *BitVector {
	bv := &BitVector{}
	for _, v := range values {
		if v {
			bv.AppendTrue()
		} else {
			bv.AppendFalse()
		}
	}
	return bv
}

// Size returns the logical number of bits.
func (bv *BitVector) Size() uint32 {
	return bv.size
}

// Copy returns a deep copy that shares no storage with bv.
func (bv *BitVector) Copy() *BitVector {
	out := &BitVector{size: bv.size}
	if len(bv.words) > 0 {
		out.words = append([]uint64(nil), bv.words...)
		out.counts = append([]uint32(nil), bv.counts...)
	}
	return out
}

// Equal reports whether bv and other hold the same bits.
func (bv *BitVector) Equal(other *BitVector) bool {
	if bv.size != other.size {
		return false
	}
	for i, w := range bv.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// IsSet reports whether bit i is set. Panics if i >= Size().
func (bv *BitVector) IsSet(i uint32) bool {
	if i >= bv.size {
		panic(fmt.Sprintf("bitvec: index %d out of range [0, %d)", i, bv.size))
	}
	addr := indexToAddress(i)
	return bv.blockAt(addr.block).isSet(addr.offset)
}

// Set sets bit i to 1, updating the rank index. Panics if i >= Size().
func (bv *BitVector) Set(i uint32) {
	if i >= bv.size {
		panic(fmt.Sprintf("bitvec: index %d out of range [0, %d)", i, bv.size))
	}
	addr := indexToAddress(i)
	b := bv.blockAt(addr.block)
	if b.isSet(addr.offset) {
		return
	}
	b.set(addr.offset)
	for j := addr.block + 1; j < uint32(len(bv.counts)); j++ {
		bv.counts[j]++
	}
}

// Clear sets bit i to 0, updating the rank index. Panics if i >= Size().
func (bv *BitVector) Clear(i uint32) {
	if i >= bv.size {
		panic(fmt.Sprintf("bitvec: index %d out of range [0, %d)", i, bv.size))
	}
	addr := indexToAddress(i)
	b := bv.blockAt(addr.block)
	if !b.isSet(addr.offset) {
		return
	}
	b.clear(addr.offset)
	for j := addr.block + 1; j < uint32(len(bv.counts)); j++ {
		bv.counts[j]--
	}
}

// CountSetBits returns the total number of set bits in O(1).
func (bv *BitVector) CountSetBits() uint32 {
	if bv.size == 0 {
		return 0
	}
	last := uint32(len(bv.counts)) - 1
	return bv.counts[last] + bv.blockAt(last).countSetBits()
}

// CountSetBitsBefore returns the number of set bits at indices
// strictly below end. end may equal Size(). Panics if end > Size().
func (bv *BitVector) CountSetBitsBefore(end uint32) uint32 {
	if end > bv.size {
		panic(fmt.Sprintf("bitvec: prefix end %d out of range [0, %d]", end, bv.size))
	}
	if end == 0 {
		return 0
	}
	addr := indexToAddress(end - 1)
	n := bv.counts[addr.block]
	base := addr.block * BlockWords
	for w := uint32(0); w < addr.offset.word; w++ {
		n += uint32(bits.OnesCount64(bv.words[base+w]))
	}
	mask := ^uint64(0) >> (WordBits - 1 - addr.offset.bit)
	return n + uint32(bits.OnesCount64(bv.words[base+addr.offset.word]&mask))
}

// AppendTrue appends a single set bit. Amortized O(1).
func (bv *BitVector) AppendTrue() {
	addr := indexToAddress(bv.size)
	if int(addr.block) == len(bv.counts) {
		bv.appendBlock()
	}
	bv.blockAt(addr.block).set(addr.offset)
	bv.size++
}

// AppendFalse appends a single unset bit. Amortized O(1).
func (bv *BitVector) AppendFalse() {
	addr := indexToAddress(bv.size)
	if int(addr.block) == len(bv.counts) {
		bv.appendBlock()
	}
	// The bit is already zero by the trailing-padding invariant.
	bv.size++
}

// Resize grows or shrinks the vector in place to newSize bits. Newly
// added bits are set to filler. Shrinking zeroes the bits cut off so
// later growth starts from clean storage. Resize(0, ...) releases all
// backing storage.
func (bv *BitVector) Resize(newSize uint32, filler bool) {
	oldSize := bv.size
	if newSize == oldSize {
		return
	}

	// Empty bitvectors stay memory efficient: drop everything.
	if newSize == 0 {
		bv.words = nil
		bv.counts = nil
		bv.size = 0
		return
	}

	oldTotal := bv.CountSetBits()
	oldBlocks := uint32(len(bv.counts))
	lastAddr := indexToAddress(newSize - 1)
	newBlocks := lastAddr.block + 1
	bv.setBlockCount(newBlocks)

	if newSize > oldSize {
		if filler {
			start := indexToAddress(oldSize)
			bv.setRange(oldSize, newSize)

			// Blocks fully inside the grown range hold BlockBits set
			// bits each, so the rank entries can be filled with a
			// running total instead of a per-bit recount. Seed the
			// total with the bits set between oldSize and the end of
			// the first affected block.
			if start.block >= oldBlocks {
				bv.counts[start.block] = oldTotal
			}
			endOfBlock := address{block: start.block, offset: lastBlockOffset}
			setCount := oldTotal + addressToIndex(endOfBlock) - oldSize + 1
			for i := start.block + 1; i <= lastAddr.block; i++ {
				bv.counts[i] = setCount
				setCount += BlockBits
			}
		} else {
			// New bits are zero, so every new block sees the same
			// prefix count.
			for i := oldBlocks; i < newBlocks; i++ {
				bv.counts[i] = oldTotal
			}
		}
	} else {
		// Throw away the bits after the new last bit so lookups and
		// appends never see trailing garbage.
		bv.blockAt(lastAddr.block).clearAfter(lastAddr.offset)
	}

	bv.size = newSize
}

// Not complements every bit in place. The rank entries are rewritten
// as i*BlockBits - counts[i]: a block's set count and its complement's
// set count always sum to the block width.
func (bv *BitVector) Not() {
	if bv.size == 0 {
		return
	}
	for i := range bv.words {
		bv.words[i] = ^bv.words[i]
	}
	lastAddr := indexToAddress(bv.size - 1)
	bv.blockAt(lastAddr.block).clearAfter(lastAddr.offset)

	for i := 1; i < len(bv.counts); i++ {
		bv.counts[i] = uint32(i)*BlockBits - bv.counts[i]
	}
}

// Or sets bv to the bitwise union of bv and other.
// Panics unless both vectors have the same size.
func (bv *BitVector) Or(other *BitVector) {
	if bv.size != other.size {
		panic(fmt.Sprintf("bitvec: Or size mismatch: %d != %d", bv.size, other.size))
	}
	for i := range bv.words {
		bv.words[i] |= other.words[i]
	}
	bv.recomputeCounts()
}

// And sets bv to the bitwise intersection of bv and other, first
// narrowing bv to the shorter of the two sizes.
func (bv *BitVector) And(other *BitVector) {
	bv.Resize(min(bv.size, other.size), false)
	for i := range bv.words {
		bv.words[i] &= other.words[i]
	}
	bv.recomputeCounts()
}

// blockAt returns a mutable view of block i.
func (bv *BitVector) blockAt(i uint32) block {
	return block(bv.words[i*BlockWords : (i+1)*BlockWords])
}

// appendBlock grows the storage by one zeroed block whose rank entry
// is the current total set-bit count.
func (bv *BitVector) appendBlock() {
	total := bv.CountSetBits()
	bv.counts = append(bv.counts, total)
	bv.words = append(bv.words, make([]uint64, BlockWords)...)
}

// setBlockCount resizes words/counts to exactly n blocks, zeroing any
// dropped words so regrown storage never exposes stale bits.
func (bv *BitVector) setBlockCount(n uint32) {
	cur := uint32(len(bv.counts))
	if n == cur {
		return
	}
	if n < cur {
		for i := n * BlockWords; i < cur*BlockWords; i++ {
			bv.words[i] = 0
		}
		bv.words = bv.words[:n*BlockWords]
		bv.counts = bv.counts[:n]
		return
	}
	bv.words = append(bv.words, make([]uint64, (n-cur)*BlockWords)...)
	bv.counts = append(bv.counts, make([]uint32, n-cur)...)
}

// setRange sets every bit in [start, end) without touching counts.
func (bv *BitVector) setRange(start, end uint32) {
	if start >= end {
		return
	}
	startWord := start / WordBits
	endWord := (end - 1) / WordBits
	startMask := ^uint64(0) << (start % WordBits)
	endMask := ^uint64(0) >> (WordBits - 1 - (end-1)%WordBits)

	if startWord == endWord {
		bv.words[startWord] |= startMask & endMask
		return
	}
	bv.words[startWord] |= startMask
	for w := startWord + 1; w < endWord; w++ {
		bv.words[w] = ^uint64(0)
	}
	bv.words[endWord] |= endMask
}

// recomputeCounts rebuilds the rank array from per-block popcounts in
// a single O(blocks) prefix-sum pass. counts[0] stays 0.
func (bv *BitVector) recomputeCounts() {
	for i := 1; i < len(bv.counts); i++ {
		bv.counts[i] = bv.counts[i-1] + bv.blockAt(uint32(i-1)).countSetBits()
	}
}

package bitvec

import "math/bits"

const (
	// WordBits is the number of bits in one storage word.
	WordBits = 64

	// BlockWords is the number of uint64 words per rank block
	// (512 bits = 64 bytes, one cache line).
	BlockWords = 8

	// BlockBits is the number of bits per rank block.
	BlockBits = BlockWords * WordBits
)

// blockOffset is the position of a bit inside a single block.
type blockOffset struct {
	word uint32 // word within the block, [0, BlockWords)
	bit  uint32 // bit within the word, [0, WordBits)
}

// address is the fully decomposed position of a global bit index.
// It is a computed view over the storage, never stored itself.
type address struct {
	block  uint32
	offset blockOffset
}

func indexToAddress(i uint32) address {
	return address{
		block: i / BlockBits,
		offset: blockOffset{
			word: (i % BlockBits) / WordBits,
			bit:  i % WordBits,
		},
	}
}

func addressToIndex(a address) uint32 {
	return a.block*BlockBits + a.offset.word*WordBits + a.offset.bit
}

// lastBlockOffset addresses the final bit of a block.
var lastBlockOffset = blockOffset{word: BlockWords - 1, bit: WordBits - 1}

// block is a mutable view over the BlockWords words of one rank block.
// Individual words are plain uint64s manipulated with math/bits; a
// block adds the popcount and truncation operations the rank array
// needs at block granularity.
type block []uint64

func (b block) isSet(off blockOffset) bool {
	return b[off.word]&(uint64(1)<<off.bit) != 0
}

func (b block) set(off blockOffset) {
	b[off.word] |= uint64(1) << off.bit
}

func (b block) clear(off blockOffset) {
	b[off.word] &^= uint64(1) << off.bit
}

func (b block) countSetBits() uint32 {
	var n int
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return uint32(n)
}

// clearAfter zeroes every bit strictly after off within the block.
// Used to re-establish the trailing-padding invariant after truncation
// or complement.
func (b block) clearAfter(off blockOffset) {
	b[off.word] &= ^uint64(0) >> (WordBits - 1 - off.bit)
	for w := off.word + 1; w < BlockWords; w++ {
		b[w] = 0
	}
}

// wordCount returns the number of words needed to hold size bits.
func wordCount(size uint32) uint32 {
	return (size + WordBits - 1) / WordBits
}

// blockCount returns the number of blocks needed to hold size bits.
func blockCount(size uint32) uint32 {
	return (size + BlockBits - 1) / BlockBits
}

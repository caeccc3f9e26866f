package bitvec

import "fmt"

// Builder constructs a BitVector bit-by-bit or word-by-word without
// paying a rank update per append: the rank array is computed once by
// Build. The final size is declared up front; bits never appended
// stay zero.
//
// For sub-range extraction the builder tracks a global cursor that
// starts at a declared offset. The three cursor queries drive the
// usual aligned fill pattern: append single bits until the global
// cursor reaches a word boundary, copy whole source words, then
// append the unaligned tail bit-by-bit.
//
// A Builder is consumed by Build; touching it afterwards panics.
type Builder struct {
	words  []uint64
	size   uint32 // final logical size of the built vector
	offset uint32 // global index of the first appended bit
	pos    uint32 // number of bits appended so far
	built  bool
}

// NewBuilder returns a Builder for a BitVector of size bits.
func NewBuilder(size uint32) *Builder {
	return NewOffsetBuilder(size, 0)
}

// NewOffsetBuilder returns a Builder for a BitVector of end-start
// bits whose global cursor starts at start. Bit k of the built vector
// corresponds to global position start+k. Panics if end < start.
func NewOffsetBuilder(end, start uint32) *Builder {
	if end < start {
		panic(fmt.Sprintf("bitvec: builder range [%d, %d) is inverted", start, end))
	}
	size := end - start
	return &Builder{
		words:  make([]uint64, blockCount(size)*BlockWords),
		size:   size,
		offset: start,
	}
}

// Append appends one bit. Amortized O(1); meant for the unaligned
// head and tail around word-aligned regions.
func (b *Builder) Append(value bool) {
	b.checkUsable()
	if b.pos == b.size {
		panic(fmt.Sprintf("bitvec: append past declared size %d", b.size))
	}
	if value {
		b.words[b.pos/WordBits] |= uint64(1) << (b.pos % WordBits)
	}
	b.pos++
}

// AppendWord appends 64 bits at once. Legal only when the global
// cursor sits on a word boundary and at least one complete word
// remains; use BitsInCompleteWordsUntilFull to size the aligned body.
func (b *Builder) AppendWord(word uint64) {
	b.checkUsable()
	if (b.offset+b.pos)%WordBits != 0 {
		panic("bitvec: AppendWord on unaligned cursor")
	}
	if b.pos+WordBits > b.size {
		panic(fmt.Sprintf("bitvec: AppendWord past declared size %d", b.size))
	}
	// The destination is shifted by offset%WordBits relative to the
	// source, so the word may straddle two destination words.
	shift := b.pos % WordBits
	b.words[b.pos/WordBits] |= word << shift
	if shift != 0 {
		b.words[b.pos/WordBits+1] |= word >> (WordBits - shift)
	}
	b.pos += WordBits
}

// BitsUntilWordBoundaryOrFull returns how many single bits must be
// appended before the global cursor reaches a word boundary, capped
// at the bits remaining.
func (b *Builder) BitsUntilWordBoundaryOrFull() uint32 {
	b.checkUsable()
	untilBoundary := (WordBits - (b.offset+b.pos)%WordBits) % WordBits
	return min(untilBoundary, b.size-b.pos)
}

// BitsInCompleteWordsUntilFull returns the number of remaining bits
// that fit in whole 64-bit words.
func (b *Builder) BitsInCompleteWordsUntilFull() uint32 {
	b.checkUsable()
	return (b.size - b.pos) / WordBits * WordBits
}

// BitsUntilFull returns the number of bits still to be appended.
func (b *Builder) BitsUntilFull() uint32 {
	b.checkUsable()
	return b.size - b.pos
}

// Build computes the rank array in one O(blocks) pass and returns the
// finished BitVector. The Builder must not be used afterwards.
func (b *Builder) Build() *BitVector {
	b.checkUsable()
	b.built = true

	counts := make([]uint32, blockCount(b.size))
	bv := &BitVector{size: b.size, counts: counts, words: b.words}
	b.words = nil
	bv.recomputeCounts()
	return bv
}

func (b *Builder) checkUsable() {
	if b.built {
		panic("bitvec: Builder used after Build")
	}
}

package bitvec

import (
	"fmt"
	"math/bits"

	"github.com/hupe1980/bitvec/internal/pdep"
)

// UpdateSetBits replaces the k-th set bit of bv with the k-th bit of
// update, for every k; bits of bv that were unset stay unset. update
// must be no longer than bv.CountSetBits(), or UpdateSetBits panics.
//
// If either update or bv has no set bits at all, bv is reset to the
// empty BitVector. This is an intentional shortcut carried over from
// the engine this was extracted from; do not rely on it generalizing
// to other operations.
func (bv *BitVector) UpdateSetBits(update *BitVector) {
	if update.CountSetBits() == 0 || bv.CountSetBits() == 0 {
		*bv = BitVector{}
		return
	}
	if update.size > bv.CountSetBits() {
		panic(fmt.Sprintf("bitvec: update size %d exceeds set-bit count %d",
			update.size, bv.CountSetBits()))
	}

	words := bv.words[:wordCount(bv.size)]
	upd := update.words[:wordCount(update.size)]

	// Word boundaries of bv almost never line up with multiples of
	// each word's popcount, so bits read from update but not yet
	// consumed are carried into the next iteration: unusedBits holds
	// unusedCount bits at the bottom describing how the next
	// unusedCount set bits of bv should change.
	var unusedBits uint64
	var unusedCount uint32
	next := 0

	// For each word of bv, gather enough update bits to cover its set
	// bits, then scatter them into the set-bit positions in one
	// deposit step.
	for i, current := range words {
		if current == 0 {
			continue
		}
		popcount := uint32(bits.OnesCount64(current))

		updateForCurrent := unusedBits
		if unusedCount >= popcount {
			// The carry window already covers this word.
			unusedCount -= popcount
			unusedBits >>= popcount
		} else {
			var nextUpdate uint64
			if next < len(upd) {
				nextUpdate = upd[next]
				next++
			}
			// Top up the window from the next update word. Only
			// popcount bits get used by the deposit; masking off the
			// excess costs more than leaving it.
			updateForCurrent |= nextUpdate << unusedCount
			usedNextBits := popcount - unusedCount
			unusedBits = nextUpdate >> usedNextBits
			unusedCount = WordBits - usedNextBits
		}

		words[i] = pdep.Deposit(updateForCurrent, current)
	}

	bv.recomputeCounts()
}

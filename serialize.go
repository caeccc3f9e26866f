package bitvec

import (
	"encoding/binary"
	"fmt"
)

// Binary layout, all fields little-endian regardless of host order:
//
//	size   uint32
//	counts [blocks]uint32   only present when size > 0
//	words  [blocks*8]uint64 only present when size > 0
//
// The block count is implied by size, so the arrays carry no length
// prefixes of their own. An empty vector serializes to the four size
// bytes alone.

const serializedSizeLen = 4

// SerializedLen returns the exact byte length Serialize will produce
// for a vector of the given logical size.
func SerializedLen(size uint32) int {
	bc := int(blockCount(size))
	return serializedSizeLen + bc*4 + bc*BlockWords*8
}

// Serialize returns the binary form of bv.
func (bv *BitVector) Serialize() []byte {
	out := make([]byte, 0, SerializedLen(bv.size))
	out = binary.LittleEndian.AppendUint32(out, bv.size)
	for _, c := range bv.counts {
		out = binary.LittleEndian.AppendUint32(out, c)
	}
	for _, w := range bv.words {
		out = binary.LittleEndian.AppendUint64(out, w)
	}
	return out
}

// Deserialize parses the binary form produced by Serialize. Malformed
// input is rejected with a *DecodeError; the data is never silently
// truncated or zero-padded.
func Deserialize(data []byte) (*BitVector, error) {
	if len(data) < serializedSizeLen {
		return nil, &DecodeError{Reason: fmt.Sprintf("%d bytes is too short for the size field", len(data))}
	}
	size := binary.LittleEndian.Uint32(data)
	rest := data[serializedSizeLen:]

	bc := blockCount(size)
	countsLen := int(bc) * 4
	wordsLen := int(bc) * BlockWords * 8
	if len(rest) != countsLen+wordsLen {
		return nil, &DecodeError{Reason: fmt.Sprintf(
			"size %d implies %d payload bytes, got %d", size, countsLen+wordsLen, len(rest))}
	}
	if size == 0 {
		return &BitVector{}, nil
	}

	bv := &BitVector{
		size:   size,
		counts: make([]uint32, bc),
		words:  make([]uint64, bc*BlockWords),
	}
	for i := range bv.counts {
		bv.counts[i] = binary.LittleEndian.Uint32(rest[i*4:])
	}
	rest = rest[countsLen:]
	for i := range bv.words {
		bv.words[i] = binary.LittleEndian.Uint64(rest[i*8:])
	}
	return bv, nil
}

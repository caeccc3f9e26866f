package bitvec

import "github.com/RoaringBitmap/roaring/v2"

// ToRoaring converts the set-bit positions into a roaring bitmap, for
// handing selections to layers that speak roaring (row-level filters,
// metadata indexes).
//
// The logical size is not representable in a roaring bitmap; only the
// set positions survive the conversion.
func (bv *BitVector) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	rb.AddMany(bv.GetSetBitIndices())
	return rb
}

// FromRoaring builds a BitVector from a roaring bitmap via the bulk
// sorted-index path. The result is sized to the highest contained
// value plus one; a nil or empty bitmap yields an empty vector.
func FromRoaring(rb *roaring.Bitmap) *BitVector {
	if rb == nil || rb.IsEmpty() {
		return &BitVector{}
	}
	values := rb.ToArray()
	indices := make([]int64, len(values))
	for i, v := range values {
		indices[i] = int64(v)
	}
	return FromSortedIndexes(indices)
}

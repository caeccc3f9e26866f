package bitvec

import (
	"math/rand"
	"slices"
	"testing"
)

func TestSelectBits(t *testing.T) {
	v := FromBools(true, false, true, true, false)
	mask := FromBools(true, true, false, true, false)

	got := v.SelectBits(mask)
	checkInvariants(t, got)

	// v's bits at mask positions 0, 1, 3.
	want := FromBools(true, false, true)
	if !got.Equal(want) {
		t.Errorf("SelectBits = %v, want %v", got.GetSetBitIndices(), want.GetSetBitIndices())
	}
}

func TestSelectBits_MaskLongerThanSource(t *testing.T) {
	v := FromBools(true, false, true)
	mask := FromSortedIndexes([]int64{0, 2, 5, 9})

	got := v.SelectBits(mask)
	checkInvariants(t, got)

	// Mask positions past v's size are ignored.
	want := FromBools(true, true)
	if !got.Equal(want) {
		t.Errorf("SelectBits = size %d bits %v", got.Size(), got.GetSetBitIndices())
	}
}

func TestSelectBits_MatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	v := randomBitVector(rng, 3*BlockBits+100, 0.4)
	mask := randomBitVector(rng, 3*BlockBits+100, 0.4)

	got := v.SelectBits(mask)
	checkInvariants(t, got)

	var want []bool
	for _, idx := range mask.GetSetBitIndices() {
		want = append(want, v.IsSet(idx))
	}
	if got.Size() != uint32(len(want)) {
		t.Fatalf("size %d, want %d", got.Size(), len(want))
	}
	for i, w := range want {
		if got.IsSet(uint32(i)) != w {
			t.Fatalf("bit %d wrong", i)
		}
	}
}

func TestIntersectRange(t *testing.T) {
	v := FromBools(true, false, true, true, false)

	got := v.IntersectRange(1, 4)
	checkInvariants(t, got)

	if !got.Equal(FromBools(false, true, true)) {
		t.Errorf("IntersectRange(1,4) = size %d bits %v", got.Size(), got.GetSetBitIndices())
	}
}

func TestIntersectRange_Bounds(t *testing.T) {
	v := FromBools(true, true, true)

	if got := v.IntersectRange(2, 2); got.Size() != 0 {
		t.Errorf("empty range yielded size %d", got.Size())
	}
	if got := v.IntersectRange(5, 10); got.Size() != 0 {
		t.Errorf("out-of-range start yielded size %d", got.Size())
	}
	// End clamps to size.
	if got := v.IntersectRange(1, 100); got.Size() != 2 {
		t.Errorf("clamped range yielded size %d, want 2", got.Size())
	}
}

func TestIntersectRange_MatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	v := randomBitVector(rng, 4*BlockBits+200, 0.5)

	ranges := []struct{ start, end uint32 }{
		{0, v.Size()},          // aligned start, full copy
		{64, 64 + 3*64},        // word-aligned both ends
		{13, 2*BlockBits + 57}, // unaligned, crosses blocks
		{BlockBits, BlockBits + 64},
		{1, 63}, // head only, no complete word
		{v.Size() - 5, v.Size()},
	}
	for _, r := range ranges {
		got := v.IntersectRange(r.start, r.end)
		checkInvariants(t, got)

		if got.Size() != r.end-r.start {
			t.Fatalf("[%d,%d): size %d", r.start, r.end, got.Size())
		}
		for i := uint32(0); i < got.Size(); i++ {
			if got.IsSet(i) != v.IsSet(r.start+i) {
				t.Fatalf("[%d,%d): bit %d wrong", r.start, r.end, i)
			}
		}
	}
}

func TestFromSortedIndexes(t *testing.T) {
	tests := []struct {
		name     string
		indices  []int64
		wantSize uint32
	}{
		{"empty", nil, 0},
		{"single", []int64{0}, 1},
		{"small", []int64{2, 5, 9}, 10},
		{"multi block", []int64{0, 100, BlockBits, 3*BlockBits + 11}, 3*BlockBits + 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bv := FromSortedIndexes(tt.indices)
			checkInvariants(t, bv)

			if bv.Size() != tt.wantSize {
				t.Fatalf("Size = %d, want %d", bv.Size(), tt.wantSize)
			}
			if got := bv.CountSetBits(); got != uint32(len(tt.indices)) {
				t.Errorf("CountSetBits = %d, want %d", got, len(tt.indices))
			}

			want := make([]uint32, len(tt.indices))
			for i, idx := range tt.indices {
				want[i] = uint32(idx)
			}
			if got := bv.GetSetBitIndices(); !slices.Equal(got, want) {
				t.Errorf("set bits %v, want %v", got, want)
			}
		})
	}
}

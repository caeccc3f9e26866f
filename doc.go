// Package bitvec provides the selection/nullability primitive of a
// columnar trace-analysis engine: a compact, mutable bitset with an
// embedded per-block rank index.
//
// A BitVector answers membership in O(1), prefix set-bit counts in
// O(1), iterates only its set positions with whole-block skipping,
// composes with other vectors via Not/Or/And, and supports the bulk
// restructuring operations query execution needs: compaction by mask
// (SelectBits), sub-range extraction (IntersectRange) and scatter
// update of the selected positions (UpdateSetBits).
//
// # Construction
//
// Point construction:
//
//	bv := bitvec.FromBools(true, false, true, true, false)
//	bv.AppendTrue()
//
// Bulk construction goes through FromSortedIndexes or a Builder, both
// of which defer the rank computation to a single finalization pass:
//
//	b := bitvec.NewBuilder(n)
//	for ... { b.Append(bit) }
//	bv := b.Build()
//
// # Iteration
//
//	for idx := range bv.SetBits() {
//		...
//	}
//
// # Concurrency
//
// BitVector is a single-owner structure with no internal locking.
// Concurrent reads are safe only while no writer is active; plain
// assignment shares storage, Copy does not.
package bitvec

// Package bitset implements the dense bit containers used across routekit:
// a dynamic Bitset with forward set-bit iteration, and ArcSet, a compact
// membership filter over all N² ordered vertex pairs of an instance.
//
// Both containers are plain value types backed by a []uint64 word slice.
// They are not goroutine-safe; the solvers that use them are single-threaded
// by contract.
//
// Complexity summary:
//   - Set/Clear/Test: O(1)
//   - NextSet: O(words) worst case, O(1) amortized over a full scan
//   - Clone: O(words)
package bitset

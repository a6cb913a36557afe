// Package permutation applies index permutations to slices in place.
//
// Apply uses cycle decomposition: each cycle of the permutation is walked
// once with pairwise swaps, so the whole rearrangement costs O(n) time and
// O(n) bits of bookkeeping, with no second slice of the element type.
package permutation

// Apply rearranges vec so that the element previously at position perm[i]
// ends up at position i. perm must be a permutation of [0, len(vec));
// mismatched lengths or repeated indices are the caller's contract violation.
//
// Complexity: O(n) time, O(n) bool bookkeeping.
func Apply[T any](vec []T, perm []int) {
	done := make([]bool, len(vec))
	for i := range vec {
		if done[i] {
			continue
		}
		done[i] = true
		prev := i
		j := perm[i]
		for i != j {
			vec[prev], vec[j] = vec[j], vec[prev]
			done[j] = true
			prev = j
			j = perm[j]
		}
	}
}

// Package movecache maintains globally sorted candidate-move lists that
// repair operators consult instead of re-pricing the whole solution.
//
// Two caches exist:
//
//   - RemovalCache tracks the single-vertex removal move of every non-depot
//     node, sorted by cost delta.
//   - InsertionCache tracks, per registered vertex, every insertion position
//     in the current solution; per-vertex lists are sorted and global
//     iteration merges them lazily through a k-way min-selector.
//
// Both support Rebuild (full, linear in total route length) and
// InvalidateRoute, which partitions out the entries of one route, rewrites
// exactly that route's moves and restores the sort order: O(cache) for the
// partition plus O(route · log cache) for the re-sort, instead of a full
// rebuild.
//
// Invariant after InvalidateRoute(r): the entries with location in r equal
// exactly the move set a full rebuild would produce for r, and the whole
// cache remains sorted by delta.
package movecache

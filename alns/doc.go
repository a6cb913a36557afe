// Package alns implements the adaptive large-neighborhood layer: weighted
// pools of destroy and repair operators, roulette selection, and
// feedback-smoothed weight adaptation.
//
// One Generate call destroys k customers with a sampled destroy operator and
// hands the orphaned vertices to a sampled repair operator. Callers report
// how good the resulting solution turned out via CollectScore; on
// AdaptOperatorWeights each operator's weight moves towards its mean period
// score under a fixed smoothing factor, steering future sampling towards
// operators that earn.
//
// The standard operators are RandomRemoval (reservoir-sampled positions)
// and RandomInsertion (batched random insertion points). On top of the move
// caches, WorstRemoval removes the vertices whose absence saves the most
// and BestInsertion repairs at the cheapest positions; RouteRemoval drops
// whole routes, RelatedRemoval grows removal clusters along a relatedness
// matrix, and ClusterRemoval removes pluggable spatial clusters. Greedy
// choices are tempered by move selectors (first, nth, blink, random).
//
// Errors:
//
//	ErrEmptyOperatorPool - Generate with an empty destroy or repair pool.
//	ErrSamplingExhausted - asked to remove more nodes than the solution has.
package alns

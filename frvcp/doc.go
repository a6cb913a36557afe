// Package frvcp solves the fixed-route vehicle charging problem: given a
// customer sequence, find the minimum-cost embedding of charging-station
// visits between consecutive customers.
//
// The solver is a label-setting dynamic program over an expanded graph:
// every customer of the input sequence becomes one DP vertex, and before
// each customer a full layer of station DP vertices is inserted, connected
// from the previous customer, to the next customer, and to every other
// station of the same layer.
//
// The algorithm is generic over the label type. A problem supplies a
// Propagator that creates, extends, orders and dominates labels; the solver
// owns the buckets (settled and heap-ordered unsettled labels per DP
// vertex), the global vertex queue keyed by each bucket's cheapest label,
// and the label arena whose entries (predecessor links included) stay valid
// until the next Optimize call.
//
// If the queue drains without reaching a final label, the input sequence is
// returned unchanged: infeasibility is an answer, not an error.
//
// Errors:
//
//	ErrMalformedRoute - the input sequence does not start and end at the depot.
package frvcp

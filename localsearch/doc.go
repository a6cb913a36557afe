// Package localsearch implements the neighborhood exploration engine:
// pluggable move-generating operators, pivoting rules deciding which
// improving move to accept, and the outer improvement loop.
//
// The engine prices candidate moves through the routing evaluation kernel,
// so a single candidate costs O(1)–O(segment length) rather than a route
// rebuild. Operators enumerate deterministically and resume strictly after
// the previously returned move, which guarantees termination of a sweep.
//
// A large operator family is indexed by generator arcs: the ordered
// (origin, target) node pair a move would introduce. GeneratorArcOperator
// walks all such pairs in canonical quadratic order (origin route, origin
// position, target route, target position) and defers pricing to a
// move factory. SwapOperator (segment swaps and relocations), and
// InterRouteTwoOptOperator (tail exchanges) build on it; the station
// operators use the simpler consecutive-arc enumeration.
//
// Numerical policy: a move only counts as improving when its delta is below
// −ε (DefaultEps unless configured), so floating-point noise cannot drive
// endless loops.
//
// Errors:
//
//	ErrInvalidMove - a move was applied against a solution state it no longer addresses.
package localsearch

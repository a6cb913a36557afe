// Package routing defines the central data model of routekit (instances,
// vertices, arcs, nodes, routes and solutions) together with the
// evaluation kernel that prices arbitrary concatenations of route segments.
//
// The model is deliberately problem-agnostic: vertices and arcs carry opaque
// payloads, and resource states live in opaque forward/backward labels that
// only an Evaluation implementation can interpret. Routes keep their labels
// consistent after every mutation, which is what makes neighborhood pricing
// O(1) amortized per candidate move.
//
// Invariants maintained by this package:
//
//   - A route always starts and ends with a depot sentinel; the sentinels
//     cannot be removed, moved, or crossed by a segment edit.
//   - After every public mutation, each node's forward label equals the
//     propagation of the start depot's initial label along the prefix, and
//     its backward label the symmetric propagation along the suffix.
//   - A solution's vertex-lookup index always lists exactly the positions at
//     which each vertex occurs.
//
// Errors:
//
//	ErrVertexOrdering  - instance vertices violate the depot/customers/stations layout.
//	ErrFleetSize       - non-positive fleet size at instance construction.
//	ErrArcTable        - arc table is not N×N.
//	ErrDepotMove       - a mutation would remove or relocate a depot sentinel.
//	ErrInvalidLocation - a position or NodeLocation does not refer to a live node.
//	ErrSegmentOverlap  - intra-route segment exchange with overlapping ranges.
//
// Concurrency: none. Routes and solutions are single-writer containers; the
// engine layers above never share a mutable solution between goroutines.
package routing

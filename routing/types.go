package routing

import "errors"

// VertexID is the dense integer identifier of a vertex. Identifiers are
// unique and contiguous in [0, N): the depot is always 0, customers form the
// following prefix and stations the trailing suffix.
type VertexID int

// Sentinel errors for the routing data model.
var (
	// ErrVertexOrdering indicates instance vertices are not laid out as
	// [depot, customers..., stations...] with sequential ids.
	ErrVertexOrdering = errors.New("routing: vertices must be ordered depot, customers, stations with sequential ids")

	// ErrFleetSize indicates a non-positive fleet size.
	ErrFleetSize = errors.New("routing: fleet size must be greater than 0")

	// ErrArcTable indicates the arc table does not cover all N×N ordered pairs.
	ErrArcTable = errors.New("routing: arc table must be N×N")

	// ErrDepotMove indicates a mutation would remove, insert across, or
	// exchange a depot sentinel.
	ErrDepotMove = errors.New("routing: depot sentinels may not be moved")

	// ErrInvalidLocation indicates a position or NodeLocation does not refer
	// to a live node.
	ErrInvalidLocation = errors.New("routing: location does not refer to a live node")

	// ErrSegmentOverlap indicates an intra-route exchange with overlapping
	// sub-ranges.
	ErrSegmentOverlap = errors.New("routing: intra-route segments overlap")
)

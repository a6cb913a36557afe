package localsearch

import "github.com/katalvlaran/routekit/routing"

// RelocateMove moves the segment of length nodes starting at the target
// location to directly after the origin node, creating the generator arc
// (origin, target).
type RelocateMove struct {
	generatorArc
	length int
}

// NewRelocateMove builds a relocation of a segment of the given length.
func NewRelocateMove(origin, target routing.NodeLocation, length int) *RelocateMove {
	return &RelocateMove{generatorArc: generatorArc{origin: origin, target: target}, length: length}
}

// CostDelta prices the relocation. Structurally invalid arcs price as 0.
func (m *RelocateMove) CostDelta(e routing.Evaluation, inst *routing.Instance, sol *routing.Solution) float64 {
	ri, po := m.origin.Route, m.origin.Position
	rt, pt := m.target.Route, m.target.Position
	insertRoute, removalRoute := sol.Route(ri), sol.Route(rt)
	lenI, lenT := insertRoute.Len(), removalRoute.Len()

	movedBegin := pt
	movedEnd := pt + m.length

	switch {
	case movedEnd > lenT-1:
		// The segment would take the end depot with it.
		return 0
	case movedBegin == 0:
		// Moving the start depot is equally forbidden.
		return 0
	case po >= lenI-1:
		// No insertion after the end depot.
		return 0
	}

	if ri != rt {
		// Removal and insertion price independently.
		delta := routing.Concatenate(e, inst,
			removalRoute.Segment(0, movedBegin),
			removalRoute.Segment(movedEnd, lenT))
		delta += routing.Concatenate(e, inst,
			insertRoute.Segment(0, po+1),
			removalRoute.Segment(movedBegin, movedEnd),
			insertRoute.Segment(po+1, lenI))
		return delta - insertRoute.Cost() - removalRoute.Cost()
	}

	// Intra-route: skip arcs that move the insertion position itself, and
	// the no-op of re-inserting right where the segment already sits.
	if po >= movedBegin && po <= movedEnd-1 {
		return 0
	}
	if po == movedBegin-1 {
		return 0
	}

	var delta float64
	if po < movedBegin {
		// [..x..] [..y..] [b..e] [..z..] becomes [..x..] [b..e] [..y..] [..z..]
		delta = routing.Concatenate(e, inst,
			insertRoute.Segment(0, po+1),
			insertRoute.Segment(movedBegin, movedEnd),
			insertRoute.Segment(po+1, movedBegin),
			insertRoute.Segment(movedEnd, lenI))
	} else {
		// [..x..] [b..e] [..y..] [..z..] becomes [..x..] [..y..] [b..e] [..z..]
		delta = routing.Concatenate(e, inst,
			insertRoute.Segment(0, movedBegin),
			insertRoute.Segment(movedEnd, po+1),
			insertRoute.Segment(movedBegin, movedEnd),
			insertRoute.Segment(po+1, lenI))
	}
	return delta - insertRoute.Cost()
}

// Apply performs the relocation as an exchange with an empty segment.
func (m *RelocateMove) Apply(inst *routing.Instance, sol *routing.Solution) error {
	return sol.ExchangeSegment(
		m.origin.Route, m.origin.Position+1, m.origin.Position+1,
		m.target.Route, m.target.Position, m.target.Position+m.length)
}

package localsearch

import (
	"github.com/katalvlaran/routekit/bitset"
	"github.com/katalvlaran/routekit/routing"
)

// InterRouteTwoOptMove exchanges the tails of two routes after the origin
// and target nodes, creating the arc (origin, first node of target's old
// tail successor). Only arcs with origin route strictly before target route
// are priced, which halves the symmetric neighborhood.
type InterRouteTwoOptMove struct {
	generatorArc
}

// NewInterRouteTwoOptMove builds a tail exchange for the generator arc.
func NewInterRouteTwoOptMove(origin, target routing.NodeLocation) *InterRouteTwoOptMove {
	return &InterRouteTwoOptMove{generatorArc: generatorArc{origin: origin, target: target}}
}

// CostDelta prices the tail exchange; invalid arcs price as 0.
func (m *InterRouteTwoOptMove) CostDelta(e routing.Evaluation, inst *routing.Instance, sol *routing.Solution) float64 {
	ro, po := m.origin.Route, m.origin.Position
	rt, pt := m.target.Route, m.target.Position
	if ro >= rt {
		return 0
	}
	originRoute, targetRoute := sol.Route(ro), sol.Route(rt)
	lenO, lenT := originRoute.Len(), targetRoute.Len()
	switch {
	case po >= lenO-2:
		return 0
	case pt >= lenT-2:
		return 0
	case pt == 1:
		// Exchanging right after the first visit mirrors a cheaper arc
		// already enumerated elsewhere.
		return 0
	}

	delta := routing.Concatenate(e, inst,
		originRoute.Segment(0, po+1),
		targetRoute.Segment(pt+1, lenT))
	delta += routing.Concatenate(e, inst,
		targetRoute.Segment(0, pt+1),
		originRoute.Segment(po+1, lenO))
	return delta - originRoute.Cost() - targetRoute.Cost()
}

// Apply exchanges the two tails, excluding the end depots.
func (m *InterRouteTwoOptMove) Apply(inst *routing.Instance, sol *routing.Solution) error {
	ro, po := m.origin.Route, m.origin.Position
	rt, pt := m.target.Route, m.target.Position
	return sol.ExchangeSegment(
		ro, po+1, sol.Route(ro).Len()-1,
		rt, pt+1, sol.Route(rt).Len()-1)
}

// NewInterRouteTwoOptOperator enumerates tail exchanges over the
// generator-arc neighborhood.
func NewInterRouteTwoOptOperator(inst *routing.Instance, arcs *bitset.ArcSet) *GeneratorArcOperator {
	return NewGeneratorArcOperator(inst, arcs, func(origin, target routing.NodeLocation) GeneratorArcMove {
		return NewInterRouteTwoOptMove(origin, target)
	})
}

package localsearch

import (
	"github.com/katalvlaran/routekit/bitset"
	"github.com/katalvlaran/routekit/routing"
)

// SwapMove exchanges the segment of originLen nodes following the origin
// node with the segment of targetLen nodes starting at the target node.
// The generator arc (origin, target) is the arc the move introduces.
//
// With equal segment lengths the move is symmetric; deltas for arcs whose
// origin sorts after their target are reported as 0 so each equivalence
// class is inspected exactly once.
type SwapMove struct {
	generatorArc
	originLen int
	targetLen int
}

// NewSwapMove builds a swap of originLen-for-targetLen segments; both
// lengths must be at least 1 (use RelocateMove for pure relocation).
func NewSwapMove(origin, target routing.NodeLocation, originLen, targetLen int) *SwapMove {
	return &SwapMove{generatorArc: generatorArc{origin: origin, target: target}, originLen: originLen, targetLen: targetLen}
}

// CostDelta prices the swap through segment concatenation. Structurally
// invalid arcs (depot-crossing, overlapping, out of range) price as 0.
func (m *SwapMove) CostDelta(e routing.Evaluation, inst *routing.Instance, sol *routing.Solution) float64 {
	ro, po := m.origin.Route, m.origin.Position
	rt, pt := m.target.Route, m.target.Position
	originRoute, targetRoute := sol.Route(ro), sol.Route(rt)
	lenO, lenT := originRoute.Len(), targetRoute.Len()

	originBegin := po + 1
	originEnd := originBegin + m.originLen
	targetBegin := pt
	targetEnd := targetBegin + m.targetLen

	// Any move that would swap a depot sentinel is invalid.
	switch {
	case targetBegin == 0:
		return 0
	case po >= lenO-1:
		return 0
	case targetEnd > lenT-1:
		return 0
	case originEnd > lenO-1:
		return 0
	}

	// Symmetric operator: visit each unordered pair once, by index order.
	if m.originLen == m.targetLen {
		if ro > rt {
			return 0
		}
		if ro == rt && po > pt {
			return 0
		}
	}

	if ro != rt {
		// Independent exchanges: price each route's new composition.
		delta := routing.Concatenate(e, inst,
			originRoute.Segment(0, originBegin),
			targetRoute.Segment(targetBegin, targetEnd),
			originRoute.Segment(originEnd, lenO))
		delta += routing.Concatenate(e, inst,
			targetRoute.Segment(0, targetBegin),
			originRoute.Segment(originBegin, originEnd),
			targetRoute.Segment(targetEnd, lenT))
		return delta - originRoute.Cost() - targetRoute.Cost()
	}

	// Intra-route: overlapping segments cannot be exchanged.
	originLast := originEnd - 1
	targetLast := targetEnd - 1
	if !(targetLast < originBegin || originLast < targetBegin) {
		return 0
	}

	var delta float64
	if targetLast < originBegin {
		// [..x..] [tb..tl] [te..] [ob..ol] [oe..] becomes
		// [..x..] [ob..ol] [te..] [tb..tl] [oe..]
		delta = routing.Concatenate(e, inst,
			originRoute.Segment(0, targetBegin),
			originRoute.Segment(originBegin, originEnd),
			originRoute.Segment(targetEnd, originBegin),
			originRoute.Segment(targetBegin, targetEnd),
			originRoute.Segment(originEnd, lenO))
	} else {
		// [..x..] [ob..ol] [oe..] [tb..tl] [te..] becomes
		// [..x..] [tb..tl] [oe..] [ob..ol] [te..]
		delta = routing.Concatenate(e, inst,
			originRoute.Segment(0, originBegin),
			originRoute.Segment(targetBegin, targetEnd),
			originRoute.Segment(originEnd, targetBegin),
			originRoute.Segment(originBegin, originEnd),
			originRoute.Segment(targetEnd, lenO))
	}
	return delta - originRoute.Cost()
}

// Apply performs the exchange through the owning solution.
func (m *SwapMove) Apply(inst *routing.Instance, sol *routing.Solution) error {
	return sol.ExchangeSegment(
		m.origin.Route, m.origin.Position+1, m.origin.Position+1+m.originLen,
		m.target.Route, m.target.Position, m.target.Position+m.targetLen)
}

// NewSwapOperator enumerates SwapMoves (or RelocateMoves when originLen is
// 0) of fixed segment lengths over the generator-arc neighborhood.
func NewSwapOperator(inst *routing.Instance, arcs *bitset.ArcSet, originLen, targetLen int) *GeneratorArcOperator {
	if originLen == 0 {
		return NewGeneratorArcOperator(inst, arcs, func(origin, target routing.NodeLocation) GeneratorArcMove {
			return NewRelocateMove(origin, target, targetLen)
		})
	}
	return NewGeneratorArcOperator(inst, arcs, func(origin, target routing.NodeLocation) GeneratorArcMove {
		return NewSwapMove(origin, target, originLen, targetLen)
	})
}

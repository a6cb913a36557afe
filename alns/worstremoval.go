package alns

import (
	"github.com/katalvlaran/routekit/movecache"
	"github.com/katalvlaran/routekit/routing"
)

// WorstRemoval destroys vertices one at a time according to the benefit of
// removing them, consulting the removal cache and delegating the actual
// choice to a move selector (pure greed with SelectFirst, tempered greed
// with SelectBlink or SelectNth).
type WorstRemoval struct {
	instance *routing.Instance
	cache    *movecache.RemovalCache

	// Selector chooses among the cached moves, cheapest first. Exposed so
	// callers can swap strategies between applications.
	Selector MoveSelector[movecache.RemovalMove]
}

// NewWorstRemoval builds the operator; selector must not be nil.
func NewWorstRemoval(inst *routing.Instance, selector MoveSelector[movecache.RemovalMove]) *WorstRemoval {
	return &WorstRemoval{
		instance: inst,
		cache:    movecache.NewRemovalCache(inst),
		Selector: selector,
	}
}

// Name implements DestroyOperator.
func (op *WorstRemoval) Name() string { return "WorstRemoval" }

// CanApplyTo implements DestroyOperator.
func (op *WorstRemoval) CanApplyTo(sol *routing.Solution) bool {
	return sol.NodeCount(false) > 0
}

// Apply removes k vertices, invalidating only the touched route after each
// removal.
func (op *WorstRemoval) Apply(e routing.Evaluation, sol *routing.Solution, k int) ([]routing.VertexID, error) {
	if k > sol.NodeCount(false) {
		return nil, ErrSamplingExhausted
	}
	op.cache.Rebuild(e, sol)
	removed := make([]routing.VertexID, 0, k)
	for len(removed) < k {
		move := op.Selector(op.cache.Moves())
		if err := sol.RemoveVertex(move.Location); err != nil {
			return nil, err
		}
		op.cache.InvalidateRoute(sol.Route(move.Location.Route), move.Location.Route)
		removed = append(removed, move.Vertex)
	}
	return removed, nil
}

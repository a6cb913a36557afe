package alns

import (
	"github.com/katalvlaran/routekit/movecache"
	"github.com/katalvlaran/routekit/routing"
)

// BestInsertion repairs by inserting the missing vertices one at a time at
// positions drawn from the insertion cache, cheapest first, filtered
// through a move selector. Station vertices among the missing list are
// ignored; recharge placement belongs to the station operators and the DP.
type BestInsertion struct {
	instance *routing.Instance
	cache    *movecache.InsertionCache

	// Selector chooses among a vertex's insertion positions, cheapest
	// first.
	Selector MoveSelector[movecache.InsertionMove]
}

// NewBestInsertion builds the operator; selector must not be nil.
func NewBestInsertion(inst *routing.Instance, selector MoveSelector[movecache.InsertionMove]) *BestInsertion {
	return &BestInsertion{
		instance: inst,
		cache:    movecache.NewInsertionCache(inst),
		Selector: selector,
	}
}

// Name implements RepairOperator.
func (op *BestInsertion) Name() string { return "BestInsertion" }

// CanApplyTo implements RepairOperator.
func (op *BestInsertion) CanApplyTo(sol *routing.Solution) bool { return sol.Len() > 0 }

// Apply inserts every missing non-station vertex, invalidating only the
// touched route between insertions.
func (op *BestInsertion) Apply(e routing.Evaluation, sol *routing.Solution, missing []routing.VertexID) error {
	vertices := make([]routing.VertexID, 0, len(missing))
	for _, id := range missing {
		if !op.instance.Vertex(id).IsStation {
			vertices = append(vertices, id)
		}
	}
	op.cache.Rebuild(e, sol, vertices)
	for _, id := range vertices {
		move := op.Selector(op.cache.BestInsertionsForVertex(id))
		op.cache.StopTracking(id)
		if err := sol.InsertVertexAfter(move.After, id); err != nil {
			return err
		}
		op.cache.InvalidateRoute(sol.Route(move.After.Route), move.After.Route)
	}
	return nil
}

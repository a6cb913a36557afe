package alns

import (
	"github.com/katalvlaran/routekit/rng"
	"github.com/katalvlaran/routekit/routing"
)

// RouteRemoval destroys whole randomly chosen routes until at least k
// customers have been freed (or no routes remain).
type RouteRemoval struct {
	rand *rng.RNG
}

// NewRouteRemoval builds the operator around the shared generator.
func NewRouteRemoval(rand *rng.RNG) *RouteRemoval { return &RouteRemoval{rand: rand} }

// Name implements DestroyOperator.
func (op *RouteRemoval) Name() string { return "RouteRemoval" }

// CanApplyTo implements DestroyOperator.
func (op *RouteRemoval) CanApplyTo(sol *routing.Solution) bool { return sol.Len() > 0 }

// Apply removes routes until k vertices are freed and returns their ids.
func (op *RouteRemoval) Apply(_ routing.Evaluation, sol *routing.Solution, k int) ([]routing.VertexID, error) {
	var removed []routing.VertexID
	for len(removed) < k && sol.Len() > 0 {
		index := op.rand.IntRange(0, sol.Len()-1)
		route := sol.Route(index)
		for pos := 1; pos <= route.Len()-2; pos++ {
			removed = append(removed, route.Node(pos).VertexID())
		}
		if err := sol.RemoveRoute(index); err != nil {
			return nil, err
		}
	}
	return removed, nil
}

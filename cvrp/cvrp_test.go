package cvrp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routekit/cvrp"
	"github.com/katalvlaran/routekit/routing"
)

func buildInstance(t *testing.T, dist [][]float64, demands []float64) *routing.Instance {
	t.Helper()
	n := len(dist)
	depot := routing.Vertex{ID: 0, Name: "D", IsDepot: true, Data: cvrp.VertexData{Demand: demands[0]}}
	var customers []routing.Vertex
	for i := 1; i < n; i++ {
		customers = append(customers, routing.Vertex{
			ID: routing.VertexID(i), Name: string(rune('0' + i)), Data: cvrp.VertexData{Demand: demands[i]},
		})
	}
	arcs := make([]routing.Arc, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			arcs = append(arcs, routing.Arc{Data: cvrp.ArcData{Distance: dist[i][j]}})
		}
	}
	inst, err := routing.NewInstance(depot, customers, nil, arcs, 1)
	require.NoError(t, err)
	return inst
}

func fixture(t *testing.T) *routing.Instance {
	return buildInstance(t,
		[][]float64{
			{0, 2, 4, 3},
			{2, 0, 1, 5},
			{4, 1, 0, 2},
			{3, 5, 2, 0},
		},
		[]float64{0, 2, 3, 4})
}

func TestCostAndComponents(t *testing.T) {
	inst := fixture(t)
	eval := cvrp.New(10)

	r, err := routing.NewRouteFromVertices(eval, inst, []routing.VertexID{1, 2, 3})
	require.NoError(t, err)
	// D->1->2->3->D = 2+1+2+3 = 8; load 9 ≤ 10.
	require.InDelta(t, 8, r.Cost(), 1e-9)
	require.True(t, r.Feasible())
	require.Equal(t, []float64{8, 0}, r.CostComponents())
}

func TestOverloadPenalty(t *testing.T) {
	inst := fixture(t)
	eval := cvrp.New(5)

	r, err := routing.NewRouteFromVertices(eval, inst, []routing.VertexID{1, 2, 3})
	require.NoError(t, err)
	require.False(t, r.Feasible())
	require.Equal(t, []float64{8, 4}, r.CostComponents())
	require.InDelta(t, 12, r.Cost(), 1e-9)

	eval.SetPenaltyFactors([2]float64{1, 10})
	require.InDelta(t, 48, r.Cost(), 1e-9)
	require.Equal(t, [2]float64{1, 10}, eval.PenaltyFactors())
}

// TestConcatenationIdentity: pricing any partition through the junction
// formula equals the realized route cost, feasible or not.
func TestConcatenationIdentity(t *testing.T) {
	inst := fixture(t)
	for _, capacity := range []float64{10, 5} {
		eval := cvrp.New(capacity)
		r, err := routing.NewRouteFromVertices(eval, inst, []routing.VertexID{3, 1, 2})
		require.NoError(t, err)

		for i := 1; i < r.Len(); i++ {
			got := eval.Evaluate(inst, []routing.Segment{r.Segment(0, i), r.Segment(i, r.Len())})
			require.InDelta(t, r.Cost(), got, 1e-9, "capacity %v cut %d", capacity, i)
		}
	}
}

func TestEmptyRouteCostsDepotLoop(t *testing.T) {
	inst := fixture(t)
	eval := cvrp.New(10)
	r := routing.NewRoute(eval, inst)
	require.InDelta(t, 0, r.Cost(), 1e-9, "depot self-arc has zero distance")
	require.True(t, r.Feasible())
}

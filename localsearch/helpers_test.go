package localsearch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routekit/cvrp"
	"github.com/katalvlaran/routekit/routing"
)

// buildInstance assembles a CVRP instance from a full directed distance
// matrix. Vertex 0 is the depot; the last numStations vertices are stations.
func buildInstance(t *testing.T, dist [][]float64, demands []float64, numStations, fleetSize int) *routing.Instance {
	t.Helper()
	n := len(dist)
	numCustomers := n - 1 - numStations

	depot := routing.Vertex{ID: 0, Name: "D", IsDepot: true, Data: cvrp.VertexData{Demand: demands[0]}}
	var customers, stations []routing.Vertex
	for i := 1; i <= numCustomers; i++ {
		customers = append(customers, routing.Vertex{
			ID: routing.VertexID(i), Name: string(rune('0' + i)), Data: cvrp.VertexData{Demand: demands[i]},
		})
	}
	for i := 1 + numCustomers; i < n; i++ {
		stations = append(stations, routing.Vertex{
			ID: routing.VertexID(i), Name: "S", IsStation: true, Data: cvrp.VertexData{Demand: demands[i]},
		})
	}

	arcs := make([]routing.Arc, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			arcs = append(arcs, routing.Arc{Data: cvrp.ArcData{Distance: dist[i][j]}})
		}
	}
	inst, err := routing.NewInstance(depot, customers, stations, arcs, fleetSize)
	require.NoError(t, err)
	return inst
}

func unitDemands(n int) []float64 {
	d := make([]float64, n)
	for i := 1; i < n; i++ {
		d[i] = 1
	}
	return d
}

// constMatrix returns an n×n matrix filled with fill (0 on the diagonal).
func constMatrix(n int, fill float64) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = fill
			}
		}
	}
	return m
}

// lineMatrix returns |i−j| distances, modelling vertices on a line.
func lineMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i > j {
				m[i][j] = float64(i - j)
			} else {
				m[i][j] = float64(j - i)
			}
		}
	}
	return m
}

// lineEval returns a CVRP evaluator with slack capacity, for line fixtures
// where only distances matter.
func lineEval(t *testing.T) *cvrp.Evaluation {
	t.Helper()
	return cvrp.New(100)
}

func mustRoute(t *testing.T, e routing.Evaluation, inst *routing.Instance, ids ...routing.VertexID) *routing.Route {
	t.Helper()
	r, err := routing.NewRouteFromVertices(e, inst, ids)
	require.NoError(t, err)
	return r
}

func mustSolution(t *testing.T, e routing.Evaluation, inst *routing.Instance, routes ...[]routing.VertexID) *routing.Solution {
	t.Helper()
	rs := make([]*routing.Route, 0, len(routes))
	for _, ids := range routes {
		rs = append(rs, mustRoute(t, e, inst, ids...))
	}
	return routing.NewSolutionFromRoutes(e, inst, rs)
}

// swapFixture is the two-route swap scenario: swapping customers 2 and 3
// improves the cost by exactly 6 and is the only improving 1-1 swap.
// Directed arcs break the mirrored swap (1↔4) on purpose.
func swapFixture(t *testing.T) (*routing.Instance, *cvrp.Evaluation, *routing.Solution) {
	t.Helper()
	dist := [][]float64{
		// D   1   2   3   4
		{0, 1, 5, 5, 5},
		{1, 0, 7, 4, 9},
		{5, 7, 0, 9, 4},
		{5, 20, 9, 0, 7},
		{5, 9, 20, 7, 0},
	}
	inst := buildInstance(t, dist, unitDemands(5), 0, 2)
	eval := cvrp.New(100)
	sol := mustSolution(t, eval, inst, []routing.VertexID{1, 2}, []routing.VertexID{3, 4})
	return inst, eval, sol
}

package routing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routekit/cvrp"
	"github.com/katalvlaran/routekit/routing"
)

// buildInstance assembles a CVRP instance from a symmetric distance matrix
// and per-vertex demands. Vertex 0 is the depot; the last numStations
// vertices are stations, everything in between a customer.
func buildInstance(t *testing.T, dist [][]float64, demands []float64, numStations, fleetSize int) *routing.Instance {
	t.Helper()
	n := len(dist)
	require.Len(t, demands, n)

	numCustomers := n - 1 - numStations
	depot := routing.Vertex{ID: 0, Name: "D", IsDepot: true, Data: cvrp.VertexData{Demand: demands[0]}}
	customers := make([]routing.Vertex, 0, numCustomers)
	for i := 1; i <= numCustomers; i++ {
		customers = append(customers, routing.Vertex{
			ID: routing.VertexID(i), Name: name(i), Data: cvrp.VertexData{Demand: demands[i]},
		})
	}
	stations := make([]routing.Vertex, 0, numStations)
	for i := 1 + numCustomers; i < n; i++ {
		stations = append(stations, routing.Vertex{
			ID: routing.VertexID(i), Name: name(i), IsStation: true, Data: cvrp.VertexData{Demand: demands[i]},
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

func name(i int) string { return string(rune('A' + i - 1)) }

// gridInstance returns a 5-vertex customer-only instance on a line:
// positions D=0, A=1, B=2, C=3, E=4 with |i-j| distances and unit demands.
func gridInstance(t *testing.T, capacity ...float64) (*routing.Instance, *cvrp.Evaluation) {
	t.Helper()
	const n = 5
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i > j {
				dist[i][j] = float64(i - j)
			} else {
				dist[i][j] = float64(j - i)
			}
		}
	}
	demands := []float64{0, 1, 1, 1, 1}
	cap := 100.0
	if len(capacity) > 0 {
		cap = capacity[0]
	}
	return buildInstance(t, dist, demands, 0, 2), cvrp.New(cap)
}

func mustRoute(t *testing.T, e routing.Evaluation, inst *routing.Instance, ids ...routing.VertexID) *routing.Route {
	t.Helper()
	r, err := routing.NewRouteFromVertices(e, inst, ids)
	require.NoError(t, err)
	return r
}

// requireConsistentLabels verifies the central route invariant: the
// incrementally maintained labels equal a from-scratch rebuild of the same
// vertex sequence.
func requireConsistentLabels(t *testing.T, e routing.Evaluation, inst *routing.Instance, r *routing.Route) {
	t.Helper()
	ids := r.VertexIDs()
	fresh := mustRoute(t, e, inst, ids[1:len(ids)-1]...)
	require.Equal(t, r.Len(), fresh.Len())
	for i := 0; i < r.Len(); i++ {
		require.Equal(t, fresh.Node(i).ForwardLabel(), r.Node(i).ForwardLabel(), "forward label at %d", i)
		require.Equal(t, fresh.Node(i).BackwardLabel(), r.Node(i).BackwardLabel(), "backward label at %d", i)
	}
}

// requireConsistentLookup verifies the solution index invariant: Find(v)
// lists exactly the positions at which v appears.
func requireConsistentLookup(t *testing.T, s *routing.Solution, inst *routing.Instance) {
	t.Helper()
	want := make(map[routing.VertexID][]routing.NodeLocation)
	for ri := 0; ri < s.Len(); ri++ {
		r := s.Route(ri)
		for pos := 0; pos < r.Len(); pos++ {
			id := r.Node(pos).VertexID()
			want[id] = append(want[id], routing.NodeLocation{Route: ri, Position: pos})
		}
	}
	for id := routing.VertexID(0); int(id) < inst.NumVertices(); id++ {
		got := s.Find(id)
		if len(want[id]) == 0 {
			require.Empty(t, got, "vertex %d", id)
			continue
		}
		require.ElementsMatch(t, want[id], got, "vertex %d", id)
	}
}

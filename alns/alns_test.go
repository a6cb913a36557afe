package alns_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routekit/alns"
	"github.com/katalvlaran/routekit/cvrp"
	"github.com/katalvlaran/routekit/rng"
	"github.com/katalvlaran/routekit/routing"
)

func buildInstance(t *testing.T, dist [][]float64, fleetSize int) *routing.Instance {
	t.Helper()
	n := len(dist)
	depot := routing.Vertex{ID: 0, Name: "D", IsDepot: true, Data: cvrp.VertexData{}}
	var customers []routing.Vertex
	for i := 1; i < n; i++ {
		customers = append(customers, routing.Vertex{
			ID: routing.VertexID(i), Name: string(rune('0' + i)), Data: cvrp.VertexData{Demand: 1},
		})
	}
	arcs := make([]routing.Arc, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			arcs = append(arcs, routing.Arc{Data: cvrp.ArcData{Distance: dist[i][j]}})
		}
	}
	inst, err := routing.NewInstance(depot, customers, nil, arcs, fleetSize)
	require.NoError(t, err)
	return inst
}

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

func lineSolution(t *testing.T, n int, routes ...[]routing.VertexID) (*routing.Instance, *cvrp.Evaluation, *routing.Solution) {
	t.Helper()
	inst := buildInstance(t, lineMatrix(n), len(routes))
	eval := cvrp.New(100)
	rs := make([]*routing.Route, 0, len(routes))
	for _, ids := range routes {
		r, err := routing.NewRouteFromVertices(eval, inst, ids)
		require.NoError(t, err)
		rs = append(rs, r)
	}
	return inst, eval, routing.NewSolutionFromRoutes(eval, inst, rs)
}

// buildStationInstance returns a line instance with customers 1,2 and
// station 3.
func buildStationInstance(t *testing.T) *routing.Instance {
	t.Helper()
	dist := lineMatrix(4)
	depot := routing.Vertex{ID: 0, Name: "D", IsDepot: true, Data: cvrp.VertexData{}}
	customers := []routing.Vertex{
		{ID: 1, Name: "1", Data: cvrp.VertexData{Demand: 1}},
		{ID: 2, Name: "2", Data: cvrp.VertexData{Demand: 1}},
	}
	stations := []routing.Vertex{{ID: 3, Name: "S", IsStation: true, Data: cvrp.VertexData{}}}
	arcs := make([]routing.Arc, 0, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			arcs = append(arcs, routing.Arc{Data: cvrp.ArcData{Distance: dist[i][j]}})
		}
	}
	inst, err := routing.NewInstance(depot, customers, stations, arcs, 1)
	require.NoError(t, err)
	return inst
}

func stationEval() *cvrp.Evaluation { return cvrp.New(100) }

// countingDestroy removes nothing but records invocations.
type countingDestroy struct {
	name      string
	applied   int
	canApply  bool
	removeIDs []routing.VertexID
}

func (d *countingDestroy) Apply(_ routing.Evaluation, _ *routing.Solution, _ int) ([]routing.VertexID, error) {
	d.applied++
	return d.removeIDs, nil
}
func (d *countingDestroy) Name() string                        { return d.name }
func (d *countingDestroy) CanApplyTo(_ *routing.Solution) bool { return d.canApply }

type countingRepair struct {
	name     string
	applied  int
	canApply bool
}

func (r *countingRepair) Apply(_ routing.Evaluation, _ *routing.Solution, _ []routing.VertexID) error {
	r.applied++
	return nil
}
func (r *countingRepair) Name() string                        { return r.name }
func (r *countingRepair) CanApplyTo(_ *routing.Solution) bool { return r.canApply }

func TestGenerateFailsOnEmptyPool(t *testing.T) {
	a := alns.New(rng.New(1), 0.5)
	_, _, sol := lineSolution(t, 4, []routing.VertexID{1, 2, 3})

	_, err := a.Generate(sol.Evaluation(), sol, 1)
	require.ErrorIs(t, err, alns.ErrEmptyOperatorPool)

	a.AddDestroyOperator(&countingDestroy{name: "d", canApply: true})
	_, err = a.Generate(sol.Evaluation(), sol, 1)
	require.ErrorIs(t, err, alns.ErrEmptyOperatorPool)
}

func TestGenerateResamplesRefusedOperators(t *testing.T) {
	a := alns.New(rng.New(7), 0.5)
	refusing := &countingDestroy{name: "refuses", canApply: false}
	accepting := &countingDestroy{name: "accepts", canApply: true}
	a.AddDestroyOperator(refusing)
	a.AddDestroyOperator(accepting)
	repair := &countingRepair{name: "r", canApply: true}
	a.AddRepairOperator(repair)

	_, _, sol := lineSolution(t, 4, []routing.VertexID{1, 2, 3})
	for i := 0; i < 10; i++ {
		pick, err := a.Generate(sol.Evaluation(), sol, 0)
		require.NoError(t, err)
		require.Equal(t, "accepts", pick.Destroy().Name())
	}
	require.Zero(t, refusing.applied)
	require.Equal(t, 10, accepting.applied)
	require.Equal(t, 10, repair.applied)
}

// TestAdaptOperatorWeights drives one period in which the operators earn
// very different mean scores; with λ=1 the weights become exactly those
// means, which must show up in the sampling proportions.
func TestAdaptOperatorWeights(t *testing.T) {
	a := alns.New(rng.New(3), 1.0)
	good := &countingDestroy{name: "good", canApply: true}
	poor := &countingDestroy{name: "poor", canApply: true}
	a.AddDestroyOperator(good)
	a.AddDestroyOperator(poor)
	repair := &countingRepair{name: "r", canApply: true}
	a.AddRepairOperator(repair)

	_, _, sol := lineSolution(t, 4, []routing.VertexID{1, 2, 3})
	for i := 0; i < 50; i++ {
		pick, err := a.Generate(sol.Evaluation(), sol, 0)
		require.NoError(t, err)
		if pick.Destroy().Name() == "good" {
			a.CollectScore(pick, 99)
		} else {
			a.CollectScore(pick, 1)
		}
	}
	a.AdaptOperatorWeights()

	counts := map[string]int{}
	const draws = 2000
	for i := 0; i < draws; i++ {
		pick, err := a.Generate(sol.Evaluation(), sol, 0)
		require.NoError(t, err)
		counts[pick.Destroy().Name()]++
	}
	require.Greater(t, counts["good"], counts["poor"]*10,
		"weights must track the 99:1 mean period scores")
}

// TestNewOperatorJoinsAtAverageWeight verifies the average-weight rule via
// sampling proportions: after heavy adaptation, a newcomer must be sampled
// roughly at the mean rate, not at weight 1.
func TestNewOperatorJoinsAtAverageWeight(t *testing.T) {
	a := alns.New(rng.New(11), 1.0)
	heavy := &countingDestroy{name: "heavy", canApply: true}
	light := &countingDestroy{name: "light", canApply: true}
	a.AddDestroyOperator(heavy)
	a.AddDestroyOperator(light)
	repair := &countingRepair{name: "r", canApply: true}
	a.AddRepairOperator(repair)

	_, _, sol := lineSolution(t, 4, []routing.VertexID{1, 2, 3})

	// One period: heavy earns 9, light earns 1.
	for i := 0; i < 2; i++ {
		pick, err := a.Generate(sol.Evaluation(), sol, 0)
		require.NoError(t, err)
		if pick.Destroy().Name() == "heavy" {
			a.CollectScore(pick, 9)
		} else {
			a.CollectScore(pick, 1)
		}
	}
	// Force known weights: λ=1 replaces weights by mean period scores; an
	// operator never invoked drops to weight 0.
	a.AdaptOperatorWeights()

	newcomer := &countingDestroy{name: "new", canApply: true}
	a.AddDestroyOperator(newcomer)
	require.Equal(t, 3, a.NumDestroyOperators())

	counts := map[string]int{}
	const draws = 3000
	for i := 0; i < draws; i++ {
		pick, err := a.Generate(sol.Evaluation(), sol, 0)
		require.NoError(t, err)
		counts[pick.Destroy().Name()]++
	}
	// The newcomer's weight equals the incumbent average, so it must take a
	// non-trivial share of the draws.
	require.Greater(t, counts["new"], draws/10)
}

func TestResetOperatorWeights(t *testing.T) {
	a := alns.New(rng.New(5), 1.0)
	d1 := &countingDestroy{name: "d1", canApply: true}
	d2 := &countingDestroy{name: "d2", canApply: true}
	a.AddDestroyOperator(d1)
	a.AddDestroyOperator(d2)
	repair := &countingRepair{name: "r", canApply: true}
	a.AddRepairOperator(repair)

	_, _, sol := lineSolution(t, 4, []routing.VertexID{1, 2, 3})

	// Skew weights hard towards d1, then reset and expect a rough 50/50.
	for i := 0; i < 4; i++ {
		pick, err := a.Generate(sol.Evaluation(), sol, 0)
		require.NoError(t, err)
		if pick.Destroy().Name() == "d1" {
			a.CollectScore(pick, 100)
		}
	}
	a.AdaptOperatorWeights()
	a.ResetOperatorWeights()

	counts := map[string]int{}
	const draws = 2000
	for i := 0; i < draws; i++ {
		pick, err := a.Generate(sol.Evaluation(), sol, 0)
		require.NoError(t, err)
		counts[pick.Destroy().Name()]++
	}
	require.InDelta(t, draws/2, counts["d1"], float64(draws)/4)
}

func TestRemoveOperator(t *testing.T) {
	a := alns.New(rng.New(5), 0.5)
	d := &countingDestroy{name: "d", canApply: true}
	h := a.AddDestroyOperator(d)
	require.Equal(t, 1, a.NumDestroyOperators())
	require.True(t, a.RemoveDestroyOperator(h))
	require.Zero(t, a.NumDestroyOperators())
	require.False(t, a.RemoveDestroyOperator(h))
}

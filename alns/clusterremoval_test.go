package alns_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routekit/alns"
	"github.com/katalvlaran/routekit/rng"
	"github.com/katalvlaran/routekit/routing"
)

func lineDistance(a, b *routing.Vertex) float64 {
	return math.Abs(float64(a.ID - b.ID))
}

func TestRelatedRemovalGrowsCluster(t *testing.T) {
	_, eval, sol := lineSolution(t, 7, []routing.VertexID{1, 2, 3}, []routing.VertexID{4, 5, 6})

	matrix := alns.BuildRelatednessMatrix(sol.Instance(), func(i, j routing.VertexID) float64 {
		return 1 / (1 + math.Abs(float64(i-j)))
	})
	op := alns.NewRelatedRemoval(matrix, 2,
		alns.SelectFirst[alns.RelatedVertex],
		alns.SelectFirst[alns.RelatedVertex],
		alns.SelectFirst[routing.NodeLocation])
	require.True(t, op.CanApplyTo(sol))

	// Initial seed is the first occurrence (vertex 1); the most related
	// remaining vertices on the line are 2 and 3.
	removed, err := op.Apply(eval, sol, 3)
	require.NoError(t, err)
	require.ElementsMatch(t, []routing.VertexID{1, 2, 3}, removed)
	require.True(t, sol.Route(0).Empty())
	require.Equal(t, []routing.VertexID{0, 4, 5, 6, 0}, sol.Route(1).VertexIDs())
}

func TestRelatedRemovalOverdraw(t *testing.T) {
	_, eval, sol := lineSolution(t, 4, []routing.VertexID{1, 2, 3})
	matrix := alns.BuildRelatednessMatrix(sol.Instance(), func(i, j routing.VertexID) float64 { return 1 })
	op := alns.NewRelatedRemoval(matrix, 1,
		alns.SelectFirst[alns.RelatedVertex],
		alns.SelectFirst[alns.RelatedVertex],
		alns.SelectFirst[routing.NodeLocation])

	_, err := op.Apply(eval, sol, 4)
	require.ErrorIs(t, err, alns.ErrSamplingExhausted)
}

func TestClusterRemovalAroundFixedSeed(t *testing.T) {
	inst, eval, sol := lineSolution(t, 7, []routing.VertexID{1, 2, 3}, []routing.VertexID{4, 5, 6})

	// Deterministic seed: always the first customer of route 0.
	seed := func(_ routing.Evaluation, _ *routing.Solution, _ []routing.NodeLocation) (routing.NodeLocation, bool) {
		return routing.NodeLocation{Route: 0, Position: 1}, true
	}
	// Fixed radius of 2 line units (max pairwise distance 6, factor 1/3).
	members := alns.DistanceBasedClusterMemberSelector(inst, lineDistance, 1.0/3, 1.0/3, rng.New(3))

	op := alns.NewClusterRemoval(seed, members)
	removed, err := op.Apply(eval, sol, 3)
	require.NoError(t, err)
	require.ElementsMatch(t, []routing.VertexID{1, 2, 3}, removed,
		"vertices within distance 2 of the seed form the cluster")
	require.True(t, sol.Route(0).Empty())
}

func TestClusterRemovalStopsWhenSeedsDrain(t *testing.T) {
	_, eval, sol := lineSolution(t, 7, []routing.VertexID{1, 2, 3}, []routing.VertexID{4, 5, 6})

	// Seeds drain after one pick; the cluster holds just the seed itself.
	picks := 0
	seed := func(_ routing.Evaluation, _ *routing.Solution, _ []routing.NodeLocation) (routing.NodeLocation, bool) {
		picks++
		if picks > 1 {
			return routing.NodeLocation{}, false
		}
		return routing.NodeLocation{Route: 1, Position: 2}, true
	}
	members := func(_ routing.Evaluation, _ *routing.Solution, s routing.NodeLocation) []routing.NodeLocation {
		return []routing.NodeLocation{s}
	}

	op := alns.NewClusterRemoval(seed, members)
	removed, err := op.Apply(eval, sol, 5)
	require.NoError(t, err)
	require.Equal(t, []routing.VertexID{5}, removed, "fewer than k when the pool drains")
	require.Equal(t, []routing.VertexID{0, 4, 6, 0}, sol.Route(1).VertexIDs())
}

func TestClusterRemovalRandomSeedsCoverSolution(t *testing.T) {
	inst, eval, sol := lineSolution(t, 7, []routing.VertexID{1, 2, 3}, []routing.VertexID{4, 5, 6})

	op := alns.NewClusterRemoval(
		alns.RandomSeedSelector(rng.New(91)),
		alns.DistanceBasedClusterMemberSelector(inst, lineDistance, 0, 0, rng.New(92)))

	// Radius 0 clusters contain exactly the seed vertex's occurrences, so
	// six seeds remove everything.
	removed, err := op.Apply(eval, sol, 6)
	require.NoError(t, err)
	require.Len(t, removed, 6)
	require.Zero(t, sol.NodeCount(false))
}

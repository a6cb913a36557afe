package alns

import (
	"github.com/katalvlaran/routekit/rng"
	"github.com/katalvlaran/routekit/routing"
)

// SeedSelector picks the next cluster seed, skipping the occurrences already
// selected for removal. The second return value is false when no eligible
// seed remains.
type SeedSelector func(e routing.Evaluation, sol *routing.Solution, selected []routing.NodeLocation) (routing.NodeLocation, bool)

// ClusterMemberSelector expands a seed occurrence into the cluster of
// occurrences that should be removed with it. The seed joins the cluster
// only if the selector includes it.
type ClusterMemberSelector func(e routing.Evaluation, sol *routing.Solution, seed routing.NodeLocation) []routing.NodeLocation

// ClusterRemoval removes whole clusters of vertices: it alternates between
// picking a seed and collecting that seed's cluster until enough vertices
// are selected or no seed remains.
type ClusterRemoval struct {
	seedSelector   SeedSelector
	memberSelector ClusterMemberSelector
}

// NewClusterRemoval builds the operator; neither selector may be nil.
func NewClusterRemoval(seedSelector SeedSelector, memberSelector ClusterMemberSelector) *ClusterRemoval {
	return &ClusterRemoval{seedSelector: seedSelector, memberSelector: memberSelector}
}

// Name implements DestroyOperator.
func (op *ClusterRemoval) Name() string { return "ClusterRemoval" }

// CanApplyTo implements DestroyOperator.
func (op *ClusterRemoval) CanApplyTo(sol *routing.Solution) bool {
	return sol.NodeCount(false) > 0
}

// Apply grows clusters until k vertices are selected, then removes them.
// Fewer than k vertices are removed when the seed pool drains first.
func (op *ClusterRemoval) Apply(e routing.Evaluation, sol *routing.Solution, k int) ([]routing.VertexID, error) {
	var selected []routing.NodeLocation
	seen := make(map[routing.NodeLocation]bool)
	for len(selected) < k {
		seed, ok := op.seedSelector(e, sol, selected)
		if !ok {
			break
		}
		for _, member := range op.memberSelector(e, sol, seed) {
			if seen[member] {
				continue
			}
			seen[member] = true
			selected = append(selected, member)
			if len(selected) == k {
				break
			}
		}
	}

	removedIDs := make([]routing.VertexID, len(selected))
	for i, loc := range selected {
		node, err := sol.NodeAt(loc)
		if err != nil {
			return nil, err
		}
		removedIDs[i] = node.VertexID()
	}
	if err := sol.RemoveVertices(selected); err != nil {
		return nil, err
	}
	return removedIDs, nil
}

// RandomSeedSelector draws uniformly among the non-depot occurrences not
// yet selected.
func RandomSeedSelector(rand *rng.RNG) SeedSelector {
	return func(_ routing.Evaluation, sol *routing.Solution, selected []routing.NodeLocation) (routing.NodeLocation, bool) {
		taken := make(map[routing.NodeLocation]bool, len(selected))
		for _, loc := range selected {
			taken[loc] = true
		}
		var eligible []routing.NodeLocation
		for routeIndex := 0; routeIndex < sol.Len(); routeIndex++ {
			route := sol.Route(routeIndex)
			for pos := 1; pos <= route.Len()-2; pos++ {
				loc := routing.NodeLocation{Route: routeIndex, Position: pos}
				if !taken[loc] {
					eligible = append(eligible, loc)
				}
			}
		}
		if len(eligible) == 0 {
			return routing.NodeLocation{}, false
		}
		return eligible[rand.IntN(len(eligible))], true
	}
}

// DistanceBasedClusterMemberSelector clusters every occurrence of a vertex
// within a sampled radius of the seed vertex. The radius is drawn uniformly
// between minRadiusFactor and maxRadiusFactor times the largest pairwise
// vertex distance.
func DistanceBasedClusterMemberSelector(inst *routing.Instance,
	distance func(a, b *routing.Vertex) float64,
	minRadiusFactor, maxRadiusFactor float64, rand *rng.RNG) ClusterMemberSelector {
	var maxDistance float64
	for i := 0; i < inst.NumVertices(); i++ {
		for j := 0; j < inst.NumVertices(); j++ {
			if d := distance(inst.Vertex(routing.VertexID(i)), inst.Vertex(routing.VertexID(j))); d > maxDistance {
				maxDistance = d
			}
		}
	}

	return func(_ routing.Evaluation, sol *routing.Solution, seed routing.NodeLocation) []routing.NodeLocation {
		node, err := sol.NodeAt(seed)
		if err != nil {
			return nil
		}
		radius := rand.Uniform(minRadiusFactor, maxRadiusFactor) * maxDistance
		seedVertex := node.Vertex()

		var members []routing.NodeLocation
		for i := 0; i < inst.NumVertices(); i++ {
			candidate := inst.Vertex(routing.VertexID(i))
			if candidate.IsDepot || distance(seedVertex, candidate) > radius {
				continue
			}
			for _, loc := range sol.Find(candidate.ID) {
				members = append(members, loc)
			}
		}
		return members
	}
}

package alns

import (
	"sort"

	"github.com/katalvlaran/routekit/routing"
)

// RelatednessFunc measures how related two vertices are; higher is more
// related.
type RelatednessFunc func(i, j routing.VertexID) float64

// BuildRelatednessMatrix evaluates the relatedness function over all ordered
// vertex pairs of the instance. The diagonal stays zero.
func BuildRelatednessMatrix(inst *routing.Instance, f RelatednessFunc) [][]float64 {
	n := inst.NumVertices()
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		for j := range matrix[i] {
			if i != j {
				matrix[i][j] = f(routing.VertexID(i), routing.VertexID(j))
			}
		}
	}
	return matrix
}

// RelatedVertex is one removal candidate of RelatedRemoval: a vertex
// occurrence with its relatedness to the current seed.
type RelatedVertex struct {
	Vertex      routing.VertexID
	Relatedness float64
	Location    routing.NodeLocation
}

// RelatedRemoval removes clusters of mutually related vertices: starting
// from an initial seed occurrence, it repeatedly picks a seed among the
// vertices already removed and adds the most related remaining occurrences,
// clusterSize at a time.
type RelatedRemoval struct {
	matrix      [][]float64
	clusterSize int

	// Selector picks the next removal among candidates ordered by
	// descending relatedness to the seed.
	Selector MoveSelector[RelatedVertex]
	// SeedSelector picks the next seed among the already removed vertices.
	SeedSelector MoveSelector[RelatedVertex]
	// InitialSeedSelector picks the first seed among all occurrences.
	InitialSeedSelector MoveSelector[routing.NodeLocation]
}

// NewRelatedRemoval builds the operator; clusterSize must be positive and
// no selector may be nil. See BuildRelatednessMatrix for the matrix.
func NewRelatedRemoval(matrix [][]float64, clusterSize int,
	selector MoveSelector[RelatedVertex],
	seedSelector MoveSelector[RelatedVertex],
	initialSeedSelector MoveSelector[routing.NodeLocation]) *RelatedRemoval {
	return &RelatedRemoval{
		matrix:              matrix,
		clusterSize:         clusterSize,
		Selector:            selector,
		SeedSelector:        seedSelector,
		InitialSeedSelector: initialSeedSelector,
	}
}

// Name implements DestroyOperator.
func (op *RelatedRemoval) Name() string { return "RelatedRemoval" }

// CanApplyTo implements DestroyOperator.
func (op *RelatedRemoval) CanApplyTo(sol *routing.Solution) bool {
	return sol.NodeCount(false) > 0
}

// nonDepotLocations lists every non-depot occurrence with its vertex id.
func nonDepotLocations(sol *routing.Solution) []RelatedVertex {
	var nodes []RelatedVertex
	for routeIndex := 0; routeIndex < sol.Len(); routeIndex++ {
		route := sol.Route(routeIndex)
		for pos := 1; pos <= route.Len()-2; pos++ {
			nodes = append(nodes, RelatedVertex{
				Vertex:   route.Node(pos).VertexID(),
				Location: routing.NodeLocation{Route: routeIndex, Position: pos},
			})
		}
	}
	return nodes
}

// Apply removes k vertices grown from relatedness clusters.
func (op *RelatedRemoval) Apply(_ routing.Evaluation, sol *routing.Solution, k int) ([]routing.VertexID, error) {
	nodes := nonDepotLocations(sol)
	if k > len(nodes) {
		return nil, ErrSamplingExhausted
	}

	locations := make([]routing.NodeLocation, len(nodes))
	for i, n := range nodes {
		locations[i] = n.Location
	}
	seedLocation := op.InitialSeedSelector(locations)
	seedNode, err := sol.NodeAt(seedLocation)
	if err != nil {
		return nil, err
	}

	removed := []RelatedVertex{{Vertex: seedNode.VertexID(), Relatedness: 1, Location: seedLocation}}
	taken := map[routing.NodeLocation]bool{seedLocation: true}

	for len(removed) < k {
		grow := op.clusterSize
		if remaining := k - len(removed); grow > remaining {
			grow = remaining
		}
		seed := op.SeedSelector(removed)

		// Candidates still in the solution, most related first.
		related := make([]RelatedVertex, 0, len(nodes))
		for _, n := range nodes {
			if taken[n.Location] {
				continue
			}
			n.Relatedness = op.matrix[seed.Vertex][n.Vertex]
			related = append(related, n)
		}
		sort.SliceStable(related, func(i, j int) bool {
			return related[i].Relatedness > related[j].Relatedness
		})

		for ; grow > 0; grow-- {
			next := op.Selector(related)
			removed = append(removed, next)
			taken[next.Location] = true
			for i := range related {
				if related[i].Location == next.Location {
					related = append(related[:i], related[i+1:]...)
					break
				}
			}
		}
	}

	removedLocations := make([]routing.NodeLocation, len(removed))
	removedIDs := make([]routing.VertexID, len(removed))
	for i, move := range removed {
		removedLocations[i] = move.Location
		removedIDs[i] = move.Vertex
	}
	if err := sol.RemoveVertices(removedLocations); err != nil {
		return nil, err
	}
	return removedIDs, nil
}

package alns

import (
	"fmt"

	"github.com/katalvlaran/routekit/rng"
	"github.com/katalvlaran/routekit/routing"
)

// SamplePositions draws k distinct node positions from the solution without
// replacement, by reservoir sampling over all non-depot nodes. With
// includeDepot, start-depot positions participate too (useful when sampling
// insertion points rather than removal victims).
//
// Complexity: O(total nodes) with O(k) space.
func SamplePositions(sol *routing.Solution, rand *rng.RNG, k int, includeDepot bool) ([]routing.NodeLocation, error) {
	if k == 0 {
		return nil, nil
	}
	n := sol.NodeCount(includeDepot)
	if k > n {
		return nil, fmt.Errorf("%w: want %d of %d", ErrSamplingExhausted, k, n)
	}

	first := 1
	if includeDepot {
		first = 0
	}
	sample := make([]routing.NodeLocation, 0, k)
	i := 0
	for routeIndex := 0; routeIndex < sol.Len(); routeIndex++ {
		route := sol.Route(routeIndex)
		for pos := first; pos <= route.Len()-2; pos++ {
			loc := routing.NodeLocation{Route: routeIndex, Position: pos}
			if len(sample) < k {
				sample = append(sample, loc)
			} else if j := rand.IntRange(0, i); j < k {
				sample[j] = loc
			}
			i++
		}
	}
	return sample, nil
}

// RandomRemoval destroys k uniformly sampled non-depot nodes.
type RandomRemoval struct {
	rand *rng.RNG
}

// NewRandomRemoval builds the operator around the shared generator.
func NewRandomRemoval(rand *rng.RNG) *RandomRemoval { return &RandomRemoval{rand: rand} }

// Name implements DestroyOperator.
func (op *RandomRemoval) Name() string { return "RandomRemoval" }

// CanApplyTo implements DestroyOperator.
func (op *RandomRemoval) CanApplyTo(sol *routing.Solution) bool {
	return sol.NodeCount(false) > 0
}

// Apply removes k sampled nodes and returns their vertex ids, in sample
// order.
func (op *RandomRemoval) Apply(_ routing.Evaluation, sol *routing.Solution, k int) ([]routing.VertexID, error) {
	positions, err := SamplePositions(sol, op.rand, k, false)
	if err != nil {
		return nil, err
	}
	removed := make([]routing.VertexID, len(positions))
	for i, loc := range positions {
		node, err := sol.NodeAt(loc)
		if err != nil {
			return nil, err
		}
		removed[i] = node.VertexID()
	}
	if err := sol.RemoveVertices(positions); err != nil {
		return nil, err
	}
	return removed, nil
}

// RandomInsertion repairs by batch-inserting the missing vertices at
// uniformly sampled insertion points. Batches are sized to the current
// number of insertion points so every round samples up-to-date positions.
type RandomInsertion struct {
	rand *rng.RNG
}

// NewRandomInsertion builds the operator around the shared generator.
func NewRandomInsertion(rand *rng.RNG) *RandomInsertion { return &RandomInsertion{rand: rand} }

// Name implements RepairOperator.
func (op *RandomInsertion) Name() string { return "RandomInsertion" }

// CanApplyTo implements RepairOperator.
func (op *RandomInsertion) CanApplyTo(sol *routing.Solution) bool { return sol.Len() > 0 }

// Apply inserts every missing vertex.
func (op *RandomInsertion) Apply(_ routing.Evaluation, sol *routing.Solution, missing []routing.VertexID) error {
	inserted := 0
	for inserted < len(missing) {
		batch := sol.NodeCount(true)
		if remaining := len(missing) - inserted; batch > remaining {
			batch = remaining
		}
		positions, err := SamplePositions(sol, op.rand, batch, true)
		if err != nil {
			return err
		}
		items := make([]routing.VertexInsertion, batch)
		for i := 0; i < batch; i++ {
			items[i] = routing.VertexInsertion{Vertex: missing[inserted+i], After: positions[i]}
		}
		if err := sol.InsertVerticesAfter(items); err != nil {
			return err
		}
		inserted += batch
	}
	return nil
}

package routing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routekit/routing"
)

// TestEvaluatePartitionsMatchRouteCost is the §8 concatenation invariant:
// for any partition of a route into segments, Evaluate over the segments
// equals the cost read from the end depot's forward label.
func TestEvaluatePartitionsMatchRouteCost(t *testing.T) {
	inst, eval := gridInstance(t)
	r := mustRoute(t, eval, inst, 1, 2, 3, 4)
	want := r.Cost()

	n := r.Len()
	// All two-cut partitions [0,i) [i,j) [j,n).
	for i := 1; i < n; i++ {
		for j := i; j < n; j++ {
			segments := []routing.Segment{
				r.Segment(0, i),
				r.Segment(i, j),
				r.Segment(j, n),
			}
			got := eval.Evaluate(inst, segments)
			require.InDelta(t, want, got, 1e-9, "cuts at %d,%d", i, j)
		}
	}
}

func TestEvaluateForwardAgreesWithConcatenation(t *testing.T) {
	inst, eval := gridInstance(t)
	r := mustRoute(t, eval, inst, 1, 3, 2, 4)
	segments := []routing.Segment{r.Segment(0, 2), r.Segment(2, r.Len())}
	require.InDelta(t,
		routing.EvaluateForward(eval, inst, segments),
		routing.EvaluateSegments(eval, inst, segments),
		1e-9)
}

func TestEvaluateInsertionPricesWithoutMutation(t *testing.T) {
	inst, eval := gridInstance(t)
	r := mustRoute(t, eval, inst, 1, 3)
	n := routing.NewNode(eval, inst.Vertex(2))

	priced := routing.EvaluateInsertion(eval, inst, r, 1, n)
	require.Equal(t, []routing.VertexID{0, 1, 3, 0}, r.VertexIDs(), "pricing must not mutate")

	applied := mustRoute(t, eval, inst, 1, 2, 3)
	require.InDelta(t, applied.Cost(), priced, 1e-9)
}

func TestEvaluateHandlesEmptyInteriorSegments(t *testing.T) {
	inst, eval := gridInstance(t)
	r := mustRoute(t, eval, inst, 1, 2)
	segments := []routing.Segment{
		r.Segment(0, 2),
		r.Segment(2, 2), // empty interior segment contributes nothing
		r.Segment(2, r.Len()),
	}
	require.InDelta(t, r.Cost(), eval.Evaluate(inst, segments), 1e-9)
}

func TestConcatenateVariadicHelper(t *testing.T) {
	inst, eval := gridInstance(t)
	r := mustRoute(t, eval, inst, 1, 2, 3)
	got := routing.Concatenate(eval, inst, r.Segment(0, 2), r.Segment(2, r.Len()))
	require.InDelta(t, r.Cost(), got, 1e-9)
}

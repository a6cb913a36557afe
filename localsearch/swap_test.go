package localsearch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routekit/localsearch"
	"github.com/katalvlaran/routekit/routing"
)

// TestTwoNodeSwapScenario is the §8 CVRP end-to-end scenario: with a single
// swap-1-1 operator, optimizing the two-route fixture must swap customers
// 2↔3 and drop the cost by exactly 6.
func TestTwoNodeSwapScenario(t *testing.T) {
	inst, eval, sol := swapFixture(t)
	before := sol.Cost()

	ls := localsearch.New(inst, eval, localsearch.DefaultOptions())
	ops := []localsearch.Operator{localsearch.NewSwapOperator(inst, nil, 1, 1)}
	require.NoError(t, ls.Optimize(sol, ops))

	require.Equal(t, []routing.VertexID{0, 1, 3, 0}, sol.Route(0).VertexIDs())
	require.Equal(t, []routing.VertexID{0, 2, 4, 0}, sol.Route(1).VertexIDs())
	require.InDelta(t, before-6, sol.Cost(), 1e-9)
}

// TestSwapMoveDeltaConsistency is the §8 move-delta law: the priced delta of
// every operator-produced move equals the observed cost difference of
// applying it to a clone.
func TestSwapMoveDeltaConsistency(t *testing.T) {
	inst, eval, sol := swapFixture(t)

	op := localsearch.NewSwapOperator(inst, nil, 1, 1)
	var prev localsearch.Move
	for {
		move := op.FindNextImprovingMove(eval, sol, prev)
		if move == nil {
			break
		}
		prev = move
		delta := move.CostDelta(eval, inst, sol)

		clone := sol.Clone()
		require.NoError(t, move.Apply(inst, clone))
		require.InDelta(t, clone.Cost()-sol.Cost(), delta, 1e-9)
	}
}

// TestSwapRoundTrip is the §8 round-trip law: applying a swap and then its
// inverse restores the original vertex sequences.
func TestSwapRoundTrip(t *testing.T) {
	inst, _, sol := swapFixture(t)
	original := sol.Clone()

	move := localsearch.NewSwapMove(
		routing.NodeLocation{Route: 0, Position: 1},
		routing.NodeLocation{Route: 1, Position: 1},
		1, 1)
	require.NoError(t, move.Apply(inst, sol))
	require.False(t, sol.Equal(original))

	inverse := localsearch.NewSwapMove(
		routing.NodeLocation{Route: 0, Position: 1},
		routing.NodeLocation{Route: 1, Position: 1},
		1, 1)
	require.NoError(t, inverse.Apply(inst, sol))
	require.True(t, sol.Equal(original))
}

// TestSwapSymmetryBreaking is the §8 symmetry law for equal-length swaps:
// every non-zero inter-route delta has origin route strictly before target
// route, and the mirrored arc prices as zero.
func TestSwapSymmetryBreaking(t *testing.T) {
	inst, eval, sol := swapFixture(t)

	var nonZero, mirroredNonZero int
	for ro := 0; ro < sol.Len(); ro++ {
		for po := 0; po < sol.Route(ro).Len(); po++ {
			for rt := 0; rt < sol.Len(); rt++ {
				for pt := 0; pt < sol.Route(rt).Len(); pt++ {
					move := localsearch.NewSwapMove(
						routing.NodeLocation{Route: ro, Position: po},
						routing.NodeLocation{Route: rt, Position: pt},
						1, 1)
					delta := move.CostDelta(eval, inst, sol)
					if delta == 0 {
						continue
					}
					if ro < rt || (ro == rt && po < pt) {
						nonZero++
					} else {
						mirroredNonZero++
					}
				}
			}
		}
	}
	require.Positive(t, nonZero)
	require.Zero(t, mirroredNonZero, "arcs on the wrong side of the symmetry break must price 0")
}

// TestSwapSegmentLengths exercises a 2-for-1 swap across routes.
func TestSwapSegmentLengths(t *testing.T) {
	inst := buildInstance(t, lineMatrix(6), unitDemands(6), 0, 2)
	evalLine := lineEval(t)
	sol := mustSolution(t, evalLine, inst, []routing.VertexID{1, 2, 3}, []routing.VertexID{4, 5})

	// Swap segment [2,3] (after node 1) with segment [5] of route 1.
	move := localsearch.NewSwapMove(
		routing.NodeLocation{Route: 0, Position: 1},
		routing.NodeLocation{Route: 1, Position: 2},
		2, 1)
	delta := move.CostDelta(evalLine, inst, sol)

	clone := sol.Clone()
	require.NoError(t, move.Apply(inst, clone))
	require.Equal(t, []routing.VertexID{0, 1, 5, 0}, clone.Route(0).VertexIDs())
	require.Equal(t, []routing.VertexID{0, 4, 2, 3, 0}, clone.Route(1).VertexIDs())
	require.InDelta(t, clone.Cost()-sol.Cost(), delta, 1e-9)
}

// TestSwapIntraRouteUnequal checks the intra-route concatenation branches
// against a clone-and-apply ground truth in both segment orderings.
func TestSwapIntraRouteUnequal(t *testing.T) {
	inst := buildInstance(t, lineMatrix(7), unitDemands(7), 0, 1)
	evalLine := lineEval(t)
	sol := mustSolution(t, evalLine, inst, []routing.VertexID{1, 2, 3, 4, 5, 6})

	cases := []struct {
		name           string
		origin, target routing.NodeLocation
		originLen      int
		targetLen      int
	}{
		{"target before origin", routing.NodeLocation{Route: 0, Position: 3}, routing.NodeLocation{Route: 0, Position: 1}, 2, 1},
		{"origin before target", routing.NodeLocation{Route: 0, Position: 1}, routing.NodeLocation{Route: 0, Position: 4}, 2, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			move := localsearch.NewSwapMove(tc.origin, tc.target, tc.originLen, tc.targetLen)
			delta := move.CostDelta(evalLine, inst, sol)
			clone := sol.Clone()
			require.NoError(t, move.Apply(inst, clone))
			require.InDelta(t, clone.Cost()-sol.Cost(), delta, 1e-9)
		})
	}
}

// TestSwapDepotArcsPriceZero covers the guard clauses.
func TestSwapDepotArcsPriceZero(t *testing.T) {
	inst, eval, sol := swapFixture(t)
	zero := []localsearch.Move{
		// Target is a start depot.
		localsearch.NewSwapMove(routing.NodeLocation{Route: 0, Position: 1}, routing.NodeLocation{Route: 1, Position: 0}, 1, 1),
		// Origin is the end depot.
		localsearch.NewSwapMove(routing.NodeLocation{Route: 0, Position: 3}, routing.NodeLocation{Route: 1, Position: 1}, 1, 1),
		// Target segment would cover the end depot.
		localsearch.NewSwapMove(routing.NodeLocation{Route: 0, Position: 1}, routing.NodeLocation{Route: 1, Position: 2}, 1, 2),
	}
	for i, move := range zero {
		require.Zero(t, move.CostDelta(eval, inst, sol), "case %d", i)
	}
}

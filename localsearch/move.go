package localsearch

import (
	"errors"

	"github.com/katalvlaran/routekit/routing"
)

// DefaultEps is the improvement threshold: only deltas below −DefaultEps
// count as improving. It dampens floating-point artifacts near zero.
const DefaultEps = 1e-9

// ErrInvalidMove indicates a move addressed the depot or a location that no
// longer refers to a live node when it was applied.
var ErrInvalidMove = errors.New("localsearch: move addresses an invalid location")

// Move is one candidate neighbor of a solution.
//
// CostDelta prices the change without mutating the solution; Apply performs
// it. Moves carry NodeLocations rather than node references and revalidate
// them at apply time, so a stale move fails loudly instead of corrupting the
// solution.
type Move interface {
	// CostDelta returns the cost change the move would cause. Moves that
	// turn out to be structurally invalid for the current solution return 0.
	CostDelta(e routing.Evaluation, inst *routing.Instance, sol *routing.Solution) float64

	// Apply mutates the solution to the neighbor.
	Apply(inst *routing.Instance, sol *routing.Solution) error
}

// Operator is a stateful generator of moves over one neighborhood.
type Operator interface {
	// PrepareSearch runs once before a neighborhood sweep.
	PrepareSearch(sol *routing.Solution)

	// FindNextImprovingMove enumerates the neighborhood in a deterministic
	// order, resuming strictly after previous (nil starts from the front),
	// and returns the next improving move or nil when exhausted.
	FindNextImprovingMove(e routing.Evaluation, sol *routing.Solution, previous Move) Move

	// FinalizeSearch runs once after the sweep.
	FinalizeSearch()
}

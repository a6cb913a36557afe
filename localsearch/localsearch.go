package localsearch

import (
	"math"

	"github.com/katalvlaran/routekit/routing"
)

// Options configures a LocalSearch engine.
type Options struct {
	// Eps is the improvement threshold: deltas of −Eps or closer to zero
	// are treated as non-improving. Must be non-negative.
	Eps float64

	// Pivot selects among improving moves; nil means first-improvement.
	Pivot PivotingRule

	// Exact optionally re-prices candidate moves: the engine clones the
	// solution, applies the move under this evaluator, and differences the
	// total cost. When nil, the cheap evaluator's delta is trusted.
	Exact routing.Evaluation
}

// DefaultOptions returns the standard engine configuration:
// first-improvement pivoting, DefaultEps threshold, no exact evaluator.
func DefaultOptions() Options {
	return Options{Eps: DefaultEps, Pivot: NewFirstImprovement()}
}

// LocalSearch drives operators to a local optimum.
type LocalSearch struct {
	instance *routing.Instance
	eval     routing.Evaluation
	opts     Options
}

// New builds an engine over the instance using the given evaluator for move
// enumeration.
func New(inst *routing.Instance, eval routing.Evaluation, opts Options) *LocalSearch {
	if opts.Pivot == nil {
		opts.Pivot = NewFirstImprovement()
	}
	if opts.Eps < 0 {
		opts.Eps = 0
	}
	return &LocalSearch{instance: inst, eval: eval, opts: opts}
}

// Optimize explores the operators in the given order, applying a qualifying
// improving move and restarting, until a full sweep yields none. The
// solution is mutated in place to the local optimum.
func (ls *LocalSearch) Optimize(sol *routing.Solution, operators []Operator) error {
	for {
		move := ls.exploreNeighborhood(sol, operators)
		if move == nil {
			return nil
		}
		if err := move.Apply(ls.instance, sol); err != nil {
			return err
		}
	}
}

// exploreNeighborhood runs one sweep over all operators under the pivoting
// rule and returns the accepted move, or nil when the neighborhood is
// exhausted without improvement.
func (ls *LocalSearch) exploreNeighborhood(sol *routing.Solution, operators []Operator) Move {
	pivot := ls.opts.Pivot
	pivot.Reset()
	for _, op := range operators {
		op.PrepareSearch(sol)
		var previous Move
		for {
			move := op.FindNextImprovingMove(ls.eval, sol, previous)
			if move == nil {
				break
			}
			previous = move
			delta := ls.testMove(move, sol)
			if delta < -ls.opts.Eps {
				if !pivot.ContinueSearch(move, delta) {
					op.FinalizeSearch()
					return pivot.SelectMove()
				}
			}
		}
		op.FinalizeSearch()
	}
	return pivot.SelectMove()
}

// testMove returns the authoritative delta of a candidate. With an exact
// evaluator configured, the candidate is re-priced on a clone; otherwise the
// operator's own pricing is repeated and trusted.
func (ls *LocalSearch) testMove(move Move, sol *routing.Solution) float64 {
	if ls.opts.Exact == nil {
		return move.CostDelta(ls.eval, ls.instance, sol)
	}
	clone := sol.Clone()
	clone.SetEvaluation(ls.opts.Exact)
	base := clone.Cost()
	if err := move.Apply(ls.instance, clone); err != nil {
		// A structurally impossible candidate can never improve.
		return math.Inf(1)
	}
	return clone.Cost() - base
}

package alns

import (
	"errors"

	"github.com/katalvlaran/routekit/rng"
	"github.com/katalvlaran/routekit/routing"
)

// Sentinel errors of the adaptive layer.
var (
	// ErrEmptyOperatorPool indicates Generate was called while the destroy
	// or repair pool is empty.
	ErrEmptyOperatorPool = errors.New("alns: no operators registered")

	// ErrSamplingExhausted indicates a removal of more nodes than the
	// solution holds.
	ErrSamplingExhausted = errors.New("alns: cannot sample more nodes than the solution holds")
)

// DestroyOperator removes k customers from a solution and returns their ids.
type DestroyOperator interface {
	// Apply destroys k vertices and returns the removed ids.
	Apply(e routing.Evaluation, sol *routing.Solution, k int) ([]routing.VertexID, error)

	// Name identifies the operator in diagnostics.
	Name() string

	// CanApplyTo reports whether the operator can act on the solution.
	CanApplyTo(sol *routing.Solution) bool
}

// RepairOperator re-inserts orphaned vertices into a solution.
type RepairOperator interface {
	// Apply inserts the missing vertices.
	Apply(e routing.Evaluation, sol *routing.Solution, missing []routing.VertexID) error

	// Name identifies the operator in diagnostics.
	Name() string

	// CanApplyTo reports whether the operator can act on the solution.
	CanApplyTo(sol *routing.Solution) bool
}

// DestroyHandle identifies a registered destroy operator.
type DestroyHandle = *listEntry[DestroyOperator]

// RepairHandle identifies a registered repair operator.
type RepairHandle = *listEntry[RepairOperator]

// Pick names the (destroy, repair) pair chosen by one Generate call; feed it
// back through CollectScore.
type Pick struct {
	destroy DestroyHandle
	repair  RepairHandle
}

// Destroy returns the chosen destroy operator.
func (p Pick) Destroy() DestroyOperator { return p.destroy.op }

// Repair returns the chosen repair operator.
func (p Pick) Repair() RepairOperator { return p.repair.op }

// AdaptiveLargeNeighborhood schedules destroy/repair operators by adaptive
// roulette selection.
type AdaptiveLargeNeighborhood struct {
	rand    *rng.RNG
	destroy priorityList[DestroyOperator]
	repair  priorityList[RepairOperator]
}

// New builds a scheduler with the given generator and smoothing factor λ;
// weight updates follow λ·(period score / invocations) + (1−λ)·old weight.
func New(rand *rng.RNG, smoothingFactor float64) *AdaptiveLargeNeighborhood {
	return &AdaptiveLargeNeighborhood{
		rand:    rand,
		destroy: priorityList[DestroyOperator]{smoothing: smoothingFactor, rand: rand},
		repair:  priorityList[RepairOperator]{smoothing: smoothingFactor, rand: rand},
	}
}

// AddDestroyOperator registers op at the pool's current average weight.
func (a *AdaptiveLargeNeighborhood) AddDestroyOperator(op DestroyOperator) DestroyHandle {
	return a.destroy.add(op)
}

// AddRepairOperator registers op at the pool's current average weight.
func (a *AdaptiveLargeNeighborhood) AddRepairOperator(op RepairOperator) RepairHandle {
	return a.repair.add(op)
}

// RemoveDestroyOperator unregisters the handle.
func (a *AdaptiveLargeNeighborhood) RemoveDestroyOperator(h DestroyHandle) bool {
	return a.destroy.remove(h)
}

// RemoveRepairOperator unregisters the handle.
func (a *AdaptiveLargeNeighborhood) RemoveRepairOperator(h RepairHandle) bool {
	return a.repair.remove(h)
}

// NumDestroyOperators returns the destroy pool size.
func (a *AdaptiveLargeNeighborhood) NumDestroyOperators() int { return a.destroy.size() }

// NumRepairOperators returns the repair pool size.
func (a *AdaptiveLargeNeighborhood) NumRepairOperators() int { return a.repair.size() }

// Generate perturbs the solution: a roulette-picked destroy operator removes
// k customers, then a roulette-picked repair operator re-inserts them.
// Operators refusing the solution via CanApplyTo are re-sampled.
func (a *AdaptiveLargeNeighborhood) Generate(e routing.Evaluation, sol *routing.Solution, k int) (Pick, error) {
	if a.destroy.empty() || a.repair.empty() {
		return Pick{}, ErrEmptyOperatorPool
	}

	var destroy DestroyHandle
	for destroy = a.destroy.pick(); !destroy.op.CanApplyTo(sol); destroy = a.destroy.pick() {
	}
	removed, err := destroy.op.Apply(e, sol, k)
	if err != nil {
		return Pick{}, err
	}

	var repair RepairHandle
	for repair = a.repair.pick(); !repair.op.CanApplyTo(sol); repair = a.repair.pick() {
	}
	if err := repair.op.Apply(e, sol, removed); err != nil {
		return Pick{}, err
	}
	return Pick{destroy: destroy, repair: repair}, nil
}

// CollectScore credits both operators of the pick for the current period.
func (a *AdaptiveLargeNeighborhood) CollectScore(p Pick, score float64) {
	a.destroy.update(p.destroy, score)
	a.repair.update(p.repair, score)
}

// AdaptOperatorWeights folds the period feedback into the weights and
// resets the period counters.
func (a *AdaptiveLargeNeighborhood) AdaptOperatorWeights() {
	a.destroy.adapt()
	a.repair.adapt()
}

// ResetOperatorWeights sets every weight to 1 and clears all counters.
func (a *AdaptiveLargeNeighborhood) ResetOperatorWeights() {
	a.destroy.resetWeights()
	a.repair.resetWeights()
}

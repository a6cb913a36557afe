package alns

import "github.com/katalvlaran/routekit/rng"

// listEntry carries one operator with its sampling weight and the score
// feedback accumulated during the current adaptation period.
type listEntry[T any] struct {
	op                T
	weight            float64
	periodScore       float64
	periodInvocations int
}

// priorityList is a weighted operator pool with roulette sampling and
// smoothed weight adaptation. Entries are stable: handles returned by add
// stay valid until removed.
type priorityList[T any] struct {
	entries     []*listEntry[T]
	totalWeight float64
	smoothing   float64
	rand        *rng.RNG
}

// add appends an operator at the current average weight, so its initial
// sampling probability equals the mean of the incumbents.
func (l *priorityList[T]) add(op T) *listEntry[T] {
	weight := 1.0
	if len(l.entries) > 0 {
		weight = l.totalWeight / float64(len(l.entries))
	}
	e := &listEntry[T]{op: op, weight: weight}
	l.entries = append(l.entries, e)
	l.totalWeight += weight
	return e
}

// remove drops the entry; reports whether it was present.
func (l *priorityList[T]) remove(e *listEntry[T]) bool {
	for i, candidate := range l.entries {
		if candidate == e {
			l.totalWeight -= e.weight
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *priorityList[T]) empty() bool { return len(l.entries) == 0 }

func (l *priorityList[T]) size() int { return len(l.entries) }

// pick samples an entry by cumulative-weight roulette.
func (l *priorityList[T]) pick() *listEntry[T] {
	selected := l.rand.Uniform(0, l.totalWeight)
	var upper float64
	for _, e := range l.entries {
		upper += e.weight
		if upper >= selected {
			return e
		}
	}
	// All weights are zero (or rounding ate the tail): fall back uniformly.
	return l.entries[l.rand.IntN(len(l.entries))]
}

// update credits score feedback to the entry for the running period.
func (l *priorityList[T]) update(e *listEntry[T], score float64) {
	e.periodScore += score
	e.periodInvocations++
}

// adapt folds each entry's mean period score into its weight under the
// smoothing factor and starts a new period.
func (l *priorityList[T]) adapt() {
	l.totalWeight = 0
	for _, e := range l.entries {
		invocations := e.periodInvocations
		if invocations < 1 {
			invocations = 1
		}
		e.weight = l.smoothing*(e.periodScore/float64(invocations)) + (1-l.smoothing)*e.weight
		l.totalWeight += e.weight
		e.periodScore = 0
		e.periodInvocations = 0
	}
}

// resetWeights restores every weight to 1 and clears period counters.
func (l *priorityList[T]) resetWeights() {
	for _, e := range l.entries {
		e.weight = 1
		e.periodScore = 0
		e.periodInvocations = 0
	}
	l.totalWeight = float64(len(l.entries))
}

package localsearch

import (
	"github.com/katalvlaran/routekit/routing"
)

// solutionArcIterator walks the consecutive node pairs (pos, pos+1) of every
// route, route by route. It is the cheap linear sibling of the quadratic
// generator-arc iterator, used by the station operators.
type solutionArcIterator struct {
	sol    *routing.Solution
	route  int
	origin int
	done   bool
}

func newSolutionArcIterator(sol *routing.Solution) solutionArcIterator {
	return solutionArcIterator{sol: sol, done: sol.Len() == 0}
}

// solutionArcIteratorAt positions the iterator on the arc starting at the
// given location.
func solutionArcIteratorAt(sol *routing.Solution, loc routing.NodeLocation) solutionArcIterator {
	return solutionArcIterator{sol: sol, route: loc.Route, origin: loc.Position, done: sol.Len() == 0}
}

func (it *solutionArcIterator) valid() bool { return !it.done }

func (it *solutionArcIterator) advance() {
	if it.done {
		return
	}
	it.origin++
	if it.origin+1 >= it.sol.Route(it.route).Len() {
		it.route++
		if it.route >= it.sol.Len() {
			it.done = true
			return
		}
		it.origin = 0
	}
}

// moveToEndOfRoute jumps to the route's last arc so the next advance leaves
// the route.
func (it *solutionArcIterator) moveToEndOfRoute() {
	it.origin = it.sol.Route(it.route).Len() - 2
}

// InsertStationMove inserts a station visit directly after the node at
// After.
type InsertStationMove struct {
	After   routing.NodeLocation
	Station routing.VertexID
}

// CostDelta prices the insertion against the addressed route.
func (m *InsertStationMove) CostDelta(e routing.Evaluation, inst *routing.Instance, sol *routing.Solution) float64 {
	r := sol.Route(m.After.Route)
	n := routing.NewNode(e, inst.Vertex(m.Station))
	return routing.EvaluateInsertion(e, inst, r, m.After.Position, n) - r.Cost()
}

// Apply inserts the station vertex.
func (m *InsertStationMove) Apply(inst *routing.Instance, sol *routing.Solution) error {
	return sol.InsertVertexAfter(m.After, m.Station)
}

// InsertStationOperator scans every arc of every infeasible route and every
// station for an improving station insertion. Feasible routes are skipped
// wholesale, since adding a recharge to a feasible route can only add
// distance.
type InsertStationOperator struct {
	instance *routing.Instance
	eps      float64
}

// NewInsertStationOperator builds the operator.
func NewInsertStationOperator(inst *routing.Instance) *InsertStationOperator {
	return &InsertStationOperator{instance: inst, eps: DefaultEps}
}

// PrepareSearch implements Operator.
func (op *InsertStationOperator) PrepareSearch(*routing.Solution) {}

// FinalizeSearch implements Operator.
func (op *InsertStationOperator) FinalizeSearch() {}

// recover resumes enumeration strictly after the previous move: first the
// remaining stations at the same arc, then subsequent arcs.
func (op *InsertStationOperator) recover(sol *routing.Solution, previous *InsertStationMove) (solutionArcIterator, int) {
	if previous == nil {
		return newSolutionArcIterator(sol), 0
	}
	it := solutionArcIteratorAt(sol, previous.After)
	next := op.stationIndex(previous.Station) + 1
	if next >= op.instance.NumStations() {
		it.advance()
		next = 0
	}
	return it, next
}

func (op *InsertStationOperator) stationIndex(id routing.VertexID) int {
	return int(id) - 1 - op.instance.NumCustomers()
}

// FindNextImprovingMove implements Operator.
func (op *InsertStationOperator) FindNextImprovingMove(e routing.Evaluation, sol *routing.Solution, previous Move) Move {
	var prev *InsertStationMove
	if previous != nil {
		prev = previous.(*InsertStationMove)
	}
	it, nextStation := op.recover(sol, prev)

	for ; it.valid(); it.advance() {
		route := sol.Route(it.route)
		if route.Feasible() {
			it.moveToEndOfRoute()
			continue
		}
		for s := nextStation; s < op.instance.NumStations(); s++ {
			station := op.instance.Station(s)
			n := routing.NewNode(e, station)
			delta := routing.EvaluateInsertion(e, op.instance, route, it.origin, n) - route.Cost()
			if delta < -op.eps {
				return &InsertStationMove{
					After:   routing.NodeLocation{Route: it.route, Position: it.origin},
					Station: station.ID,
				}
			}
		}
		nextStation = 0
	}
	return nil
}

// RemoveStationMove removes the station node at Node.
type RemoveStationMove struct {
	Node routing.NodeLocation
}

// CostDelta prices bridging over the removed node.
func (m *RemoveStationMove) CostDelta(e routing.Evaluation, inst *routing.Instance, sol *routing.Solution) float64 {
	r := sol.Route(m.Node.Route)
	cost := routing.Concatenate(e, inst,
		r.Segment(0, m.Node.Position),
		r.Segment(m.Node.Position+1, r.Len()))
	return cost - r.Cost()
}

// Apply removes the node.
func (m *RemoveStationMove) Apply(inst *routing.Instance, sol *routing.Solution) error {
	return sol.RemoveVertex(m.Node)
}

// RemoveStationOperator scans all arcs for a station visit whose removal
// improves the solution.
type RemoveStationOperator struct {
	instance *routing.Instance
	eps      float64
}

// NewRemoveStationOperator builds the operator.
func NewRemoveStationOperator(inst *routing.Instance) *RemoveStationOperator {
	return &RemoveStationOperator{instance: inst, eps: DefaultEps}
}

// PrepareSearch implements Operator.
func (op *RemoveStationOperator) PrepareSearch(*routing.Solution) {}

// FinalizeSearch implements Operator.
func (op *RemoveStationOperator) FinalizeSearch() {}

// FindNextImprovingMove implements Operator. Enumeration resumes strictly
// after the previously removed location, never on it, so a sweep terminates
// even when deltas oscillate around zero.
func (op *RemoveStationOperator) FindNextImprovingMove(e routing.Evaluation, sol *routing.Solution, previous Move) Move {
	var it solutionArcIterator
	if previous == nil {
		it = newSolutionArcIterator(sol)
	} else {
		it = solutionArcIteratorAt(sol, previous.(*RemoveStationMove).Node)
		it.advance()
	}

	for ; it.valid(); it.advance() {
		target := it.origin + 1
		if !sol.Route(it.route).Node(target).Vertex().IsStation {
			continue
		}
		move := &RemoveStationMove{Node: routing.NodeLocation{Route: it.route, Position: target}}
		if move.CostDelta(e, op.instance, sol) < -op.eps {
			return move
		}
	}
	return nil
}

package localsearch

import (
	"github.com/katalvlaran/routekit/bitset"
	"github.com/katalvlaran/routekit/routing"
)

// GeneratorArc is the ordered pair of node locations a neighborhood move
// would connect.
type GeneratorArc struct {
	Origin routing.NodeLocation
	Target routing.NodeLocation
}

// generatorArcIterator walks all (origin route × origin position) ×
// (target route × target position) quadruples of a solution in canonical
// order: target position fastest, then target route, origin position,
// origin route.
type generatorArcIterator struct {
	sol  *routing.Solution
	arc  GeneratorArc
	done bool
}

// newGeneratorArcIterator positions the iterator on the first quadruple.
func newGeneratorArcIterator(sol *routing.Solution) generatorArcIterator {
	return generatorArcIterator{sol: sol, done: sol.Len() == 0}
}

// generatorArcIteratorAfter positions the iterator strictly after the given
// arc, so a sweep resumes without revisiting the previous move.
func generatorArcIteratorAfter(sol *routing.Solution, origin, target routing.NodeLocation) generatorArcIterator {
	it := generatorArcIterator{sol: sol, arc: GeneratorArc{Origin: origin, Target: target}, done: sol.Len() == 0}
	it.advance()
	return it
}

func (it *generatorArcIterator) valid() bool { return !it.done }

func (it *generatorArcIterator) advance() {
	if it.done {
		return
	}
	it.arc.Target.Position++
	it.fix()
}

// fix normalizes an overflowing coordinate, cascading from target position
// up to origin route. Positions cover every node of a route, both depot
// sentinels included; the moves themselves reject depot-crossing arcs.
func (it *generatorArcIterator) fix() {
	if it.arc.Target.Position < it.sol.Route(it.arc.Target.Route).Len() {
		return
	}
	it.arc.Target.Route++
	if it.arc.Target.Route < it.sol.Len() {
		it.arc.Target.Position = 0
		return
	}
	it.arc.Target.Route = 0
	it.arc.Target.Position = 0
	it.arc.Origin.Position++
	if it.arc.Origin.Position < it.sol.Route(it.arc.Origin.Route).Len() {
		return
	}
	it.arc.Origin.Route++
	if it.arc.Origin.Route < it.sol.Len() {
		it.arc.Origin.Position = 0
		return
	}
	it.done = true
}

// GeneratorArcMove is implemented by moves indexed by a generator arc, which
// is what lets an operator resume enumeration strictly after them.
type GeneratorArcMove interface {
	Move
	Origin() routing.NodeLocation
	Target() routing.NodeLocation
}

// generatorArc is the common (origin, target) pair embedded by concrete
// generator-arc moves.
type generatorArc struct {
	origin routing.NodeLocation
	target routing.NodeLocation
}

// Origin returns the arc's origin location.
func (m generatorArc) Origin() routing.NodeLocation { return m.origin }

// Target returns the arc's target location.
func (m generatorArc) Target() routing.NodeLocation { return m.target }

// MoveFactory constructs the operator's move for one generator arc.
type MoveFactory func(origin, target routing.NodeLocation) GeneratorArcMove

// GeneratorArcOperator enumerates the quadratic generator-arc neighborhood,
// skips self-arcs and arcs excluded by an optional ArcSet, and returns the
// first move whose delta beats the improvement threshold.
type GeneratorArcOperator struct {
	instance *routing.Instance
	arcs     *bitset.ArcSet
	newMove  MoveFactory
	eps      float64
}

// NewGeneratorArcOperator builds an operator over the given move factory.
// arcs may be nil to allow every generator arc.
func NewGeneratorArcOperator(inst *routing.Instance, arcs *bitset.ArcSet, factory MoveFactory) *GeneratorArcOperator {
	return &GeneratorArcOperator{instance: inst, arcs: arcs, newMove: factory, eps: DefaultEps}
}

// PrepareSearch implements Operator; generator-arc enumeration is stateless.
func (op *GeneratorArcOperator) PrepareSearch(*routing.Solution) {}

// FinalizeSearch implements Operator.
func (op *GeneratorArcOperator) FinalizeSearch() {}

// FindNextImprovingMove scans from just after previous (or from the first
// arc) and returns the next move with delta < −ε, or nil.
func (op *GeneratorArcOperator) FindNextImprovingMove(e routing.Evaluation, sol *routing.Solution, previous Move) Move {
	var it generatorArcIterator
	if previous == nil {
		it = newGeneratorArcIterator(sol)
	} else {
		prev := previous.(GeneratorArcMove)
		it = generatorArcIteratorAfter(sol, prev.Origin(), prev.Target())
	}

	for ; it.valid(); it.advance() {
		arc := it.arc
		if arc.Origin == arc.Target {
			continue
		}
		if op.arcs != nil {
			originID := sol.Route(arc.Origin.Route).Node(arc.Origin.Position).VertexID()
			targetID := sol.Route(arc.Target.Route).Node(arc.Target.Position).VertexID()
			if !op.arcs.Includes(int(originID), int(targetID)) {
				continue
			}
		}
		move := op.newMove(arc.Origin, arc.Target)
		if move.CostDelta(e, op.instance, sol) < -op.eps {
			return move
		}
	}
	return nil
}

package cvrp

import (
	"math"

	"github.com/katalvlaran/routekit/routing"
)

// Cost component indices reported by CostComponents.
const (
	DistIndex     = 0
	OverloadIndex = 1
)

// VertexData is the problem payload expected on every vertex.
type VertexData struct {
	Demand float64
}

// ArcData is the problem payload expected on every arc.
type ArcData struct {
	Distance float64
}

// Label is the resource state of a partial route: cumulative distance and
// cumulative load. The same shape serves forward and backward propagation.
type Label struct {
	CumDistance float64
	CumLoad     float64
}

// Evaluation prices routes by travelled distance plus an overload penalty.
type Evaluation struct {
	capacity        float64
	overloadPenalty float64
}

// New returns an evaluator for vehicles with the given storage capacity.
// The overload penalty starts at 1.
func New(capacity float64) *Evaluation {
	return &Evaluation{capacity: capacity, overloadPenalty: 1}
}

// PenaltyFactors returns the per-dimension multipliers; distance is fixed 1.
func (e *Evaluation) PenaltyFactors() [2]float64 {
	return [2]float64{DistIndex: 1, OverloadIndex: e.overloadPenalty}
}

// SetPenaltyFactors installs new multipliers; the distance entry is ignored.
func (e *Evaluation) SetPenaltyFactors(factors [2]float64) {
	e.overloadPenalty = factors[OverloadIndex]
}

func vertexData(v *routing.Vertex) VertexData { return v.Data.(VertexData) }
func arcData(a *routing.Arc) ArcData          { return a.Data.(ArcData) }

// CreateForwardLabel returns the zero label at a route end.
func (e *Evaluation) CreateForwardLabel(*routing.Vertex) routing.Label { return Label{} }

// CreateBackwardLabel returns the zero label at a route end.
func (e *Evaluation) CreateBackwardLabel(*routing.Vertex) routing.Label { return Label{} }

// PropagateForward extends the predecessor's label across the arc onto
// vertex, accumulating distance and the vertex demand.
func (e *Evaluation) PropagateForward(pred routing.Label, _, vertex *routing.Vertex, arc *routing.Arc) routing.Label {
	p := pred.(Label)
	return Label{
		CumDistance: p.CumDistance + arcData(arc).Distance,
		CumLoad:     p.CumLoad + vertexData(vertex).Demand,
	}
}

// PropagateBackward extends the successor's label backwards onto vertex.
func (e *Evaluation) PropagateBackward(succ routing.Label, _, vertex *routing.Vertex, arc *routing.Arc) routing.Label {
	s := succ.(Label)
	return Label{
		CumDistance: s.CumDistance + arcData(arc).Distance,
		CumLoad:     s.CumLoad + vertexData(vertex).Demand,
	}
}

// Cost realizes distance plus the weighted overload of a forward label.
func (e *Evaluation) Cost(label routing.Label) float64 {
	l := label.(Label)
	return l.CumDistance + e.overloadPenalty*math.Max(0, l.CumLoad-e.capacity)
}

// CostComponents returns [distance, overload].
func (e *Evaluation) CostComponents(label routing.Label) []float64 {
	l := label.(Label)
	return []float64{l.CumDistance, math.Max(0, l.CumLoad-e.capacity)}
}

// Feasible reports whether the accumulated load fits the capacity.
func (e *Evaluation) Feasible(label routing.Label) bool {
	return label.(Label).CumLoad <= e.capacity
}

// Concatenate joins a prefix and a suffix at the junction vertex. Both labels
// include the junction's demand, so it is subtracted once.
func (e *Evaluation) Concatenate(fwd, bwd routing.Label, vertex *routing.Vertex) float64 {
	f := fwd.(Label)
	b := bwd.(Label)
	distance := f.CumDistance + b.CumDistance
	overload := math.Max(0, f.CumLoad+b.CumLoad-vertexData(vertex).Demand-e.capacity)
	return distance + e.overloadPenalty*overload
}

// Evaluate prices a segment concatenation through the closed-form junction.
func (e *Evaluation) Evaluate(inst *routing.Instance, segments []routing.Segment) float64 {
	return routing.EvaluateSegments(e, inst, segments)
}

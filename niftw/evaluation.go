package niftw

import (
	"math"

	"github.com/katalvlaran/routekit/routing"
)

// Cost component indices reported by CostComponents.
const (
	DistIndex       = 0
	OverloadIndex   = 1
	OverchargeIndex = 2
	TimeShiftIndex  = 3
)

// VertexData is the problem payload expected on every vertex.
type VertexData struct {
	X, Y                float64
	Demand              float64
	EarliestArrivalTime float64
	LatestArrivalTime   float64
	ServiceTime         float64
}

// ArcData is the problem payload expected on every arc.
type ArcData struct {
	Cost        float64
	Consumption float64
	Duration    float64
}

// resourceLabel is the state shared by forward and backward labels.
type resourceLabel struct {
	EarliestArrival        float64
	ShiftedEarliestArrival float64
	ResidualChargeInTime   float64

	CumDistance   float64
	CumLoad       float64
	CumTimeShift  float64
	CumOvercharge float64
}

// ForwardLabel is the resource state of a route prefix.
type ForwardLabel struct {
	resourceLabel
	PrevTimeShift  float64
	PrevOvercharge float64
}

// BackwardLabel is the resource state of a route suffix.
type BackwardLabel struct {
	resourceLabel
}

// Evaluation prices NIFTW routes.
type Evaluation struct {
	batteryCapacity   float64
	storageCapacity   float64
	replenishmentTime float64

	overloadPenalty   float64
	overchargePenalty float64
	timeShiftPenalty  float64
}

// New returns an evaluator for the given battery capacity (recharge-time
// units), storage capacity, and fixed full-recharge duration. All penalty
// factors start at 1.
func New(batteryCapacity, storageCapacity, replenishmentTime float64) *Evaluation {
	return &Evaluation{
		batteryCapacity:   batteryCapacity,
		storageCapacity:   storageCapacity,
		replenishmentTime: replenishmentTime,
		overloadPenalty:   1,
		overchargePenalty: 1,
		timeShiftPenalty:  1,
	}
}

// PenaltyFactors returns the per-dimension multipliers; distance is fixed 1.
func (e *Evaluation) PenaltyFactors() [4]float64 {
	return [4]float64{
		DistIndex:       1,
		OverloadIndex:   e.overloadPenalty,
		OverchargeIndex: e.overchargePenalty,
		TimeShiftIndex:  e.timeShiftPenalty,
	}
}

// SetPenaltyFactors installs new multipliers; the distance entry is ignored.
func (e *Evaluation) SetPenaltyFactors(factors [4]float64) {
	e.overloadPenalty = factors[OverloadIndex]
	e.overchargePenalty = factors[OverchargeIndex]
	e.timeShiftPenalty = factors[TimeShiftIndex]
}

func vertexData(v *routing.Vertex) VertexData { return v.Data.(VertexData) }
func arcData(a *routing.Arc) ArcData          { return a.Data.(ArcData) }

func (e *Evaluation) cost(distance, overload, overcharge, timeShift float64) float64 {
	return distance +
		overload*e.overloadPenalty +
		timeShift*e.timeShiftPenalty +
		overcharge*e.overchargePenalty
}

// CreateForwardLabel starts the prefix at the vertex's window opening.
func (e *Evaluation) CreateForwardLabel(v *routing.Vertex) routing.Label {
	start := vertexData(v).EarliestArrivalTime
	return ForwardLabel{resourceLabel: resourceLabel{
		EarliestArrival:        start,
		ShiftedEarliestArrival: start,
	}}
}

// CreateBackwardLabel starts the suffix at the vertex's window close.
func (e *Evaluation) CreateBackwardLabel(v *routing.Vertex) routing.Label {
	end := vertexData(v).LatestArrivalTime
	return BackwardLabel{resourceLabel: resourceLabel{
		EarliestArrival:        end,
		ShiftedEarliestArrival: end,
	}}
}

// PropagateForward extends a prefix label across the arc onto vertex.
// Leaving a station means the battery was fully replenished at the cost of
// the fixed replenishment time.
func (e *Evaluation) PropagateForward(pred routing.Label, predVertex, vertex *routing.Vertex, arc *routing.Arc) routing.Label {
	p := pred.(ForwardLabel)
	data := vertexData(vertex)
	a := arcData(arc)

	tij := a.Duration + vertexData(predVertex).ServiceTime

	var next ForwardLabel
	next.CumDistance = p.CumDistance + a.Cost
	next.CumLoad = p.CumLoad + data.Demand

	if predVertex.IsStation {
		next.EarliestArrival = math.Max(data.EarliestArrivalTime, p.ShiftedEarliestArrival+tij) + e.replenishmentTime
		next.ResidualChargeInTime = a.Consumption
	} else {
		next.EarliestArrival = math.Max(data.EarliestArrivalTime, p.ShiftedEarliestArrival+tij)
		next.ResidualChargeInTime = math.Min(p.ResidualChargeInTime, e.batteryCapacity) + a.Consumption
	}
	next.ShiftedEarliestArrival = math.Min(next.EarliestArrival, data.LatestArrivalTime)

	next.CumTimeShift = p.CumTimeShift + math.Max(0, next.EarliestArrival-data.LatestArrivalTime)
	next.CumOvercharge = p.CumOvercharge + math.Max(0, next.ResidualChargeInTime-e.batteryCapacity)

	next.PrevTimeShift = p.CumTimeShift
	next.PrevOvercharge = p.CumOvercharge
	return next
}

// PropagateBackward extends a suffix label backwards across the arc onto
// vertex.
func (e *Evaluation) PropagateBackward(succ routing.Label, succVertex, vertex *routing.Vertex, arc *routing.Arc) routing.Label {
	s := succ.(BackwardLabel)
	data := vertexData(vertex)
	a := arcData(arc)

	tij := a.Duration + data.ServiceTime

	var next BackwardLabel
	next.CumDistance = s.CumDistance + a.Cost
	next.CumLoad = s.CumLoad + data.Demand

	if succVertex.IsStation {
		next.EarliestArrival = math.Min(data.LatestArrivalTime, s.ShiftedEarliestArrival-tij-e.replenishmentTime)
		next.ResidualChargeInTime = a.Consumption
	} else {
		next.EarliestArrival = math.Min(data.LatestArrivalTime, s.ShiftedEarliestArrival-tij)
		next.ResidualChargeInTime = math.Min(e.batteryCapacity, s.ResidualChargeInTime) + a.Consumption
	}
	next.ShiftedEarliestArrival = math.Max(next.EarliestArrival, data.EarliestArrivalTime)

	next.CumTimeShift = s.CumTimeShift + math.Max(0, data.EarliestArrivalTime-next.EarliestArrival)
	next.CumOvercharge = s.CumOvercharge + math.Max(0, next.ResidualChargeInTime-e.batteryCapacity)
	return next
}

// Concatenate joins a prefix and a suffix at the junction vertex.
func (e *Evaluation) Concatenate(fwd, bwd routing.Label, vertex *routing.Vertex) float64 {
	f := fwd.(ForwardLabel)
	b := bwd.(BackwardLabel)
	data := vertexData(vertex)
	q := e.batteryCapacity

	distance := f.CumDistance + b.CumDistance
	overload := math.Max(0, f.CumLoad+b.CumLoad-data.Demand-e.storageCapacity)

	additionalTimeShift := math.Max(0, f.ShiftedEarliestArrival-b.ShiftedEarliestArrival)

	var additionalOvercharge float64
	if vertex.IsStation {
		additionalOvercharge = math.Max(0, f.ResidualChargeInTime-q)
	} else {
		additionalOvercharge = math.Max(0, f.ResidualChargeInTime+math.Min(q, b.ResidualChargeInTime)-q)
	}

	timeShift := f.CumTimeShift + b.CumTimeShift + additionalTimeShift
	overcharge := f.PrevOvercharge + b.CumOvercharge + additionalOvercharge
	return e.cost(distance, overload, overcharge, timeShift)
}

// Cost realizes the cost of a forward label.
func (e *Evaluation) Cost(label routing.Label) float64 {
	l := label.(ForwardLabel)
	return e.cost(l.CumDistance,
		math.Max(0, l.CumLoad-e.storageCapacity),
		l.CumOvercharge, l.CumTimeShift)
}

// CostComponents returns [distance, overload, overcharge, time shift].
func (e *Evaluation) CostComponents(label routing.Label) []float64 {
	l := label.(ForwardLabel)
	return []float64{
		l.CumDistance,
		math.Max(0, l.CumLoad-e.storageCapacity),
		l.CumOvercharge,
		l.CumTimeShift,
	}
}

// Feasible reports whether the label carries no penalty at all.
func (e *Evaluation) Feasible(label routing.Label) bool {
	l := label.(ForwardLabel)
	return l.CumOvercharge == 0 && l.CumTimeShift == 0 && l.CumLoad <= e.storageCapacity
}

// Evaluate prices a segment concatenation through the closed-form junction.
func (e *Evaluation) Evaluate(inst *routing.Instance, segments []routing.Segment) float64 {
	return routing.EvaluateSegments(e, inst, segments)
}

package adptw

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

// ArcData is the problem payload expected on every arc. Consumption is the
// energy drawn along the arc, expressed in recharge-time units.
type ArcData struct {
	Cost        float64
	Consumption float64
	Duration    float64
}

// resourceLabel is the state shared by forward and backward labels.
type resourceLabel struct {
	// Arrival-time corridor at the labeled vertex.
	EarliestArrival float64
	LatestArrival   float64
	// Shifted arrivals, clamped back into the window where feasible.
	ShiftedEarliestArrival float64
	ShiftedLatestArrival   float64
	// Residual charge expressed in time.
	ResidualChargeInTime float64

	CumDistance   float64
	CumLoad       float64
	CumTimeShift  float64
	CumOvercharge float64
}

// ForwardLabel is the resource state of a route prefix.
type ForwardLabel struct {
	resourceLabel
	// Penalties accumulated strictly before the labeled vertex; Concatenate
	// replaces the vertex's own contribution with the junction-derived one.
	PrevTimeShift  float64
	PrevOvercharge float64
}

// BackwardLabel is the resource state of a route suffix.
type BackwardLabel struct {
	resourceLabel
}

// Evaluation prices ADPTW routes. The zero value is unusable; construct
// with New.
type Evaluation struct {
	batteryCapacity float64
	storageCapacity float64

	overloadPenalty   float64
	overchargePenalty float64
	timeShiftPenalty  float64
}

// New returns an evaluator for the given battery capacity (in recharge-time
// units) and vehicle storage capacity. All penalty factors start at 1.
func New(batteryCapacity, storageCapacity float64) *Evaluation {
	return &Evaluation{
		batteryCapacity:   batteryCapacity,
		storageCapacity:   storageCapacity,
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

// CreateForwardLabel pins every arrival field to the depot's window opening.
func (e *Evaluation) CreateForwardLabel(v *routing.Vertex) routing.Label {
	start := vertexData(v).EarliestArrivalTime
	return ForwardLabel{resourceLabel: resourceLabel{
		EarliestArrival:        start,
		LatestArrival:          start,
		ShiftedEarliestArrival: start,
		ShiftedLatestArrival:   start,
	}}
}

// CreateBackwardLabel pins every arrival field to the depot's window close.
func (e *Evaluation) CreateBackwardLabel(v *routing.Vertex) routing.Label {
	end := vertexData(v).LatestArrivalTime
	return BackwardLabel{resourceLabel: resourceLabel{
		EarliestArrival:        end,
		LatestArrival:          end,
		ShiftedEarliestArrival: end,
		ShiftedLatestArrival:   end,
	}}
}

// PropagateForward extends a prefix label across the arc onto vertex.
func (e *Evaluation) PropagateForward(pred routing.Label, predVertex, vertex *routing.Vertex, arc *routing.Arc) routing.Label {
	p := pred.(ForwardLabel)
	data := vertexData(vertex)
	predData := vertexData(predVertex)
	a := arcData(arc)

	tij := a.Duration
	qij := a.Consumption
	eArr := data.EarliestArrivalTime
	lArr := data.LatestArrivalTime
	service := predData.ServiceTime
	q := e.batteryCapacity

	var next ForwardLabel
	next.CumDistance = p.CumDistance + a.Cost
	next.CumLoad = p.CumLoad + data.Demand
	next.PrevTimeShift = p.CumTimeShift
	next.PrevOvercharge = p.CumOvercharge

	slack := math.Max(0, eArr-p.ShiftedEarliestArrival-tij-service)
	var add float64
	if predVertex.IsStation {
		replenished := math.Max(0, p.ResidualChargeInTime-slack) + qij
		next.ResidualChargeInTime = math.Min(q, replenished)
		add = math.Max(0, replenished-q)
		next.LatestArrival = math.Max(eArr, p.ShiftedEarliestArrival+p.ResidualChargeInTime+tij+service)
	} else {
		usable := math.Min(slack, p.ShiftedLatestArrival-p.ShiftedEarliestArrival)
		carried := math.Max(0, p.ResidualChargeInTime-usable) + qij
		next.ResidualChargeInTime = math.Min(q, carried)
		add = math.Max(0, carried-q)
		next.LatestArrival = math.Max(eArr, p.ShiftedLatestArrival+tij+service)
	}

	next.EarliestArrival = math.Max(eArr, p.ShiftedEarliestArrival+tij+service) + add
	next.ShiftedEarliestArrival = math.Min(next.EarliestArrival, math.Min(next.LatestArrival, lArr))
	next.ShiftedLatestArrival = math.Min(lArr, next.LatestArrival)

	next.CumTimeShift = p.CumTimeShift + math.Max(0, math.Min(next.EarliestArrival, next.LatestArrival)-lArr)
	next.CumOvercharge = p.CumOvercharge + math.Max(0, next.EarliestArrival-next.LatestArrival)
	return next
}

// PropagateBackward extends a suffix label backwards across the arc onto
// vertex.
func (e *Evaluation) PropagateBackward(succ routing.Label, succVertex, vertex *routing.Vertex, arc *routing.Arc) routing.Label {
	s := succ.(BackwardLabel)
	data := vertexData(vertex)
	a := arcData(arc)

	tij := a.Duration + data.ServiceTime
	qij := a.Consumption
	eArr := data.EarliestArrivalTime
	lArr := data.LatestArrivalTime
	q := e.batteryCapacity

	var next BackwardLabel
	next.CumDistance = s.CumDistance + a.Cost
	next.CumLoad = s.CumLoad + data.Demand

	slack := math.Max(0, s.ShiftedEarliestArrival-tij-lArr)
	var add float64
	if succVertex.IsStation {
		replenished := math.Max(0, s.ResidualChargeInTime-slack) + qij
		next.ResidualChargeInTime = math.Min(q, replenished)
		add = math.Max(0, replenished-q)
		next.LatestArrival = math.Min(lArr, s.ShiftedEarliestArrival-tij-next.ResidualChargeInTime)
	} else {
		usable := math.Min(slack, s.ShiftedEarliestArrival-s.ShiftedLatestArrival)
		carried := math.Max(0, s.ResidualChargeInTime-usable) + qij
		next.ResidualChargeInTime = math.Min(q, carried)
		add = math.Max(0, carried-q)
		next.LatestArrival = math.Min(lArr, s.ShiftedLatestArrival-tij)
	}

	next.EarliestArrival = math.Min(lArr, s.ShiftedEarliestArrival-tij) - add
	next.ShiftedEarliestArrival = math.Max(next.EarliestArrival, math.Max(next.LatestArrival, eArr))
	next.ShiftedLatestArrival = math.Max(eArr, next.LatestArrival)

	next.CumTimeShift = s.CumTimeShift + math.Max(0, eArr-math.Max(next.LatestArrival, next.EarliestArrival))
	next.CumOvercharge = s.CumOvercharge + math.Max(0, next.LatestArrival-next.EarliestArrival)
	return next
}

// Concatenate joins a prefix and a suffix at the junction vertex,
// re-deriving the additional time shift and overcharge the joint incurs.
func (e *Evaluation) Concatenate(fwd, bwd routing.Label, vertex *routing.Vertex) float64 {
	f := fwd.(ForwardLabel)
	b := bwd.(BackwardLabel)
	data := vertexData(vertex)
	q := e.batteryCapacity

	distance := f.CumDistance + b.CumDistance
	overload := math.Max(0, f.CumLoad+b.CumLoad-data.Demand-e.storageCapacity)

	additionalTimeShift := math.Max(0,
		f.EarliestArrival-data.LatestArrivalTime-math.Max(0, f.EarliestArrival-f.LatestArrival)) +
		math.Max(0,
			math.Min(data.LatestArrivalTime, math.Max(data.EarliestArrivalTime, f.EarliestArrival))-
				b.EarliestArrival-math.Max(0, b.LatestArrival-b.EarliestArrival))

	var additionalOvercharge float64
	if vertex.IsStation {
		additionalOvercharge = math.Min(f.ResidualChargeInTime, math.Min(
			math.Max(0, b.EarliestArrival-f.EarliestArrival-math.Max(0, f.LatestArrival-b.LatestArrival)),
			math.Max(0, f.EarliestArrival-b.LatestArrival)))
	} else {
		additionalOvercharge = math.Min(q, math.Min(
			math.Max(0, b.EarliestArrival-f.EarliestArrival),
			math.Max(0, f.LatestArrival-f.EarliestArrival)+math.Max(0, b.EarliestArrival-b.LatestArrival)))
	}
	additionalOvercharge = math.Max(0, f.EarliestArrival-f.LatestArrival) +
		math.Max(0, f.ResidualChargeInTime+b.ResidualChargeInTime-q-additionalOvercharge)

	timeShift := f.PrevTimeShift + b.CumTimeShift + additionalTimeShift
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

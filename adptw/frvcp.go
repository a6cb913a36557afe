package adptw

import (
	"math"

	"github.com/katalvlaran/routekit/bitset"
	"github.com/katalvlaran/routekit/routing"
)

// DPLabel is the state of one partial station embedding in the FRVCP.
// tMin/tMax bound the arrival corridor under no/maximum recharging, rtMax
// is the worst-case residual charge in time, and the visited set forbids
// station cycles between consecutive customers.
type DPLabel struct {
	visited     bitset.Bitset
	pred        *DPLabel
	vertex      routing.VertexID
	cost        float64
	tMin        float64
	tMax        float64
	rtMax       float64
	numStations int
}

// Cost returns the accumulated routing cost of the partial embedding.
func (l *DPLabel) Cost() float64 { return l.cost }

// Propagator drives the frvcp.Solver with ADPTW semantics.
type Propagator struct {
	instance        *routing.Instance
	batteryCapacity float64
}

// NewPropagator builds a propagator for the instance and battery capacity
// (in recharge-time units).
func NewPropagator(inst *routing.Instance, batteryCapacity float64) *Propagator {
	return &Propagator{instance: inst, batteryCapacity: batteryCapacity}
}

// Prepare implements frvcp.Propagator.
func (p *Propagator) Prepare([]routing.VertexID) {}

// CreateRootLabel starts at the depot with empty resources.
func (p *Propagator) CreateRootLabel() *DPLabel {
	return &DPLabel{visited: bitset.New(p.instance.NumVertices())}
}

// Propagate extends a label along origin→target, or returns nil when the
// time windows or battery rule the extension out.
func (p *Propagator) Propagate(pred *DPLabel, origin, target *routing.Vertex, arc *routing.Arc) *DPLabel {
	if pred.visited.Test(int(target.ID)) {
		return nil
	}

	originData := vertexData(origin)
	targetData := vertexData(target)
	a := arcData(arc)

	q := p.batteryCapacity
	eArr := targetData.EarliestArrivalTime
	lArr := targetData.LatestArrivalTime
	tij := a.Duration + originData.ServiceTime
	qij := a.Consumption

	label := &DPLabel{
		visited:     pred.visited.Clone(),
		pred:        pred,
		vertex:      target.ID,
		cost:        pred.cost + a.Cost,
		numStations: pred.numStations,
	}
	// Reaching a customer opens a fresh leg: past station visits stop
	// blocking the next layer.
	if target.IsCustomer() {
		label.visited.Reset()
	}
	label.visited.Set(int(target.ID))
	if target.IsStation {
		label.numStations++
	}

	var slack float64
	if origin.IsStation {
		slack = math.Max(0, math.Min(eArr-(pred.tMin+tij), pred.rtMax))
		label.tMax = math.Min(lArr, math.Max(eArr, pred.tMin+pred.rtMax+tij))
	} else {
		slack = math.Max(0, math.Min(eArr-(pred.tMin+tij), pred.tMax-pred.tMin))
		label.tMax = math.Min(lArr, math.Max(eArr, pred.tMax+tij))
	}

	if pred.numStations == 0 {
		label.tMin = math.Max(eArr, pred.tMin+tij)
		label.rtMax = pred.rtMax + qij
	} else {
		rij := math.Max(0, math.Max(0, pred.rtMax-slack)+qij-q)
		label.tMin = math.Max(eArr, pred.tMin+tij) + rij
		label.rtMax = math.Min(q, math.Max(0, pred.rtMax+slack+qij))
	}

	if label.tMin > lArr || label.tMin > label.tMax || label.rtMax > q {
		return nil
	}
	return label
}

// Dominates implements the four-dimensional ADPTW dominance check.
func (p *Propagator) Dominates(l, other *DPLabel) bool {
	return l.cost <= other.cost &&
		l.tMin <= other.tMin &&
		l.rtMax-(l.tMax-l.tMin) <= other.rtMax-(other.tMax-other.tMin) &&
		l.rtMax+l.tMin <= other.rtMax+other.tMin
}

// CheaperThan orders by cost, breaking ties on fewer station visits.
func (p *Propagator) CheaperThan(l, other *DPLabel) bool {
	if l.cost == other.cost {
		return l.numStations < other.numStations
	}
	return l.cost < other.cost
}

// ShouldOrderBefore keeps settled buckets sorted by earliest arrival, the
// key that lets dominator scans stop early.
func (p *Propagator) ShouldOrderBefore(l, other *DPLabel) bool {
	return l.tMin < other.tMin
}

// IsFinalLabel recognizes a non-root label at the depot.
func (p *Propagator) IsFinalLabel(l *DPLabel) bool {
	return l.vertex == p.instance.Depot().ID && l.pred != nil
}

// ExtractPath walks the predecessor chain back to the root.
func (p *Propagator) ExtractPath(l *DPLabel) []routing.VertexID {
	var path []routing.VertexID
	for ; l != nil; l = l.pred {
		path = append(path, l.vertex)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

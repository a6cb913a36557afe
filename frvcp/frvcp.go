package frvcp

import (
	"container/heap"
	"errors"

	"github.com/katalvlaran/routekit/routing"
)

// ErrMalformedRoute indicates an input sequence that does not start and end
// with the depot, or is shorter than the two depot visits.
var ErrMalformedRoute = errors.New("frvcp: route must start and end at the depot")

// Propagator supplies the problem-specific label algebra of the DP.
//
// Labels are opaque to the solver: it stores pointers, orders them with
// CheaperThan (heap order of the unsettled buckets) and ShouldOrderBefore
// (scan order of the settled buckets), prunes with Dominates and asks
// IsFinalLabel to recognize a completed embedding.
type Propagator[L any] interface {
	// Prepare is called once per Optimize with the input sequence.
	Prepare(route []routing.VertexID)

	// CreateRootLabel returns the label at the start depot.
	CreateRootLabel() *L

	// Propagate extends a label along the arc origin→target, returning nil
	// when resource constraints make the extension infeasible.
	Propagate(pred *L, origin, target *routing.Vertex, arc *routing.Arc) *L

	// Dominates reports whether l is no worse than other in every monitored
	// resource and at least as cheap.
	Dominates(l, other *L) bool

	// CheaperThan is the strict weak ordering by which labels are settled.
	CheaperThan(l, other *L) bool

	// ShouldOrderBefore orders settled labels so a dominator scan can stop
	// as soon as the key rules out all further candidates.
	ShouldOrderBefore(l, other *L) bool

	// IsFinalLabel reports whether l completes the route (end depot reached
	// and l is not the root).
	IsFinalLabel(l *L) bool

	// ExtractPath reconstructs the vertex sequence ending in l by walking
	// predecessor links.
	ExtractPath(l *L) []routing.VertexID
}

// dpVertex is one vertex of the expanded graph.
type dpVertex struct {
	id     int
	vertex *routing.Vertex
}

// dpGraph holds the expanded graph: the input customers in order, with a
// full station layer replicated before each of them.
type dpGraph struct {
	vertices   []dpVertex
	successors [][]int
}

func (g *dpGraph) size() int { return len(g.vertices) }

func (g *dpGraph) clear() {
	g.vertices = g.vertices[:0]
	g.successors = g.successors[:0]
}

func (g *dpGraph) addVertex(v *routing.Vertex) int {
	id := len(g.vertices)
	g.vertices = append(g.vertices, dpVertex{id: id, vertex: v})
	g.successors = append(g.successors, nil)
	return id
}

func (g *dpGraph) addEdge(i, j int) {
	g.successors[i] = append(g.successors[i], j)
}

// labelHeap is the unsettled bucket: a min-heap under CheaperThan.
type labelHeap[L any] struct {
	prop   Propagator[L]
	labels []*L
}

func (h *labelHeap[L]) Len() int            { return len(h.labels) }
func (h *labelHeap[L]) Less(i, j int) bool  { return h.prop.CheaperThan(h.labels[i], h.labels[j]) }
func (h *labelHeap[L]) Swap(i, j int)       { h.labels[i], h.labels[j] = h.labels[j], h.labels[i] }
func (h *labelHeap[L]) Push(x any)          { h.labels = append(h.labels, x.(*L)) }
func (h *labelHeap[L]) Pop() any {
	last := h.labels[len(h.labels)-1]
	h.labels = h.labels[:len(h.labels)-1]
	return last
}

// labelBucket keeps one DP vertex's labels: settled ones in
// ShouldOrderBefore order, unsettled ones heap-ordered by CheaperThan.
type labelBucket[L any] struct {
	prop      Propagator[L]
	settled   []*L
	unsettled labelHeap[L]
}

func newLabelBucket[L any](prop Propagator[L]) labelBucket[L] {
	return labelBucket[L]{prop: prop, unsettled: labelHeap[L]{prop: prop}}
}

func (b *labelBucket[L]) empty() bool { return b.unsettled.Len() == 0 }

func (b *labelBucket[L]) top() *L { return b.unsettled.labels[0] }

// findDominator scans the settled labels in their established order,
// stopping as soon as the ordering key rules out all further dominators.
func (b *labelBucket[L]) findDominator(of *L) *L {
	for _, settled := range b.settled {
		if b.prop.ShouldOrderBefore(of, settled) {
			return nil
		}
		if b.prop.Dominates(settled, of) {
			return settled
		}
	}
	return nil
}

// add inserts a candidate label. Dominance is only checked when the label
// would become the bucket's new top; a label buried in the heap is checked
// lazily when it surfaces.
func (b *labelBucket[L]) add(label *L) bool {
	if b.unsettled.Len() == 0 {
		if b.findDominator(label) != nil {
			return false
		}
	} else if b.prop.CheaperThan(label, b.top()) {
		if b.findDominator(label) != nil {
			return false
		}
	}
	heap.Push(&b.unsettled, label)
	return true
}

// extractCheapest settles and returns the cheapest unsettled label, then
// drops newly surfaced tops that a settled label dominates.
func (b *labelBucket[L]) extractCheapest() *L {
	extracted := heap.Pop(&b.unsettled).(*L)

	// Insert at the upper bound of the settled order.
	pos := len(b.settled)
	for i, settled := range b.settled {
		if b.prop.ShouldOrderBefore(extracted, settled) {
			pos = i
			break
		}
	}
	b.settled = append(b.settled, nil)
	copy(b.settled[pos+1:], b.settled[pos:])
	b.settled[pos] = extracted

	for b.unsettled.Len() > 0 {
		if b.findDominator(b.top()) == nil {
			break
		}
		heap.Pop(&b.unsettled)
	}
	return extracted
}

func (b *labelBucket[L]) clear() {
	b.settled = b.settled[:0]
	b.unsettled.labels = b.unsettled.labels[:0]
}

// Solver is the label-setting DP. It is not safe for concurrent use; all
// scratch state (graph, buckets, queue, label arena) is reused across
// Optimize calls.
type Solver[L any] struct {
	instance *routing.Instance
	prop     Propagator[L]

	graph   dpGraph
	buckets []labelBucket[L]
	// queue holds the DP vertices that currently own at least one unsettled
	// label; extraction picks the one with the cheapest bucket top.
	queue []int
	// arena retains every allocated label until the next Optimize, keeping
	// predecessor links valid for path extraction.
	arena []*L
}

// NewSolver builds a solver for the instance around the given propagator.
func NewSolver[L any](inst *routing.Instance, prop Propagator[L]) *Solver[L] {
	return &Solver[L]{instance: inst, prop: prop}
}

func (s *Solver[L]) clear() {
	s.queue = s.queue[:0]
	s.buckets = s.buckets[:0]
	s.graph.clear()
	s.arena = s.arena[:0]
}

func (s *Solver[L]) allocate(label *L) *L {
	s.arena = append(s.arena, label)
	return label
}

// buildGraph expands the customer sequence: stations already present in the
// input are dropped (they are re-optimized), and a fully interconnected
// station layer is inserted before every customer and before the final
// depot.
func (s *Solver[L]) buildGraph(route []routing.VertexID) {
	prev := s.graph.addVertex(s.instance.Vertex(route[0]))
	for _, id := range route[1:] {
		vertex := s.instance.Vertex(id)
		if vertex.IsStation {
			continue
		}
		cur := s.graph.addVertex(vertex)
		s.graph.addEdge(prev, cur)

		layer := make([]int, 0, s.instance.NumStations())
		for i := 0; i < s.instance.NumStations(); i++ {
			layer = append(layer, s.graph.addVertex(s.instance.Station(i)))
		}
		for _, si := range layer {
			s.graph.addEdge(prev, si)
			s.graph.addEdge(si, cur)
			for _, sj := range layer {
				if si != sj {
					s.graph.addEdge(si, sj)
				}
			}
		}
		prev = cur
	}
}

// enqueue registers the DP vertex unless it is already queued.
func (s *Solver[L]) enqueue(id int) {
	for _, queued := range s.queue {
		if queued == id {
			return
		}
	}
	s.queue = append(s.queue, id)
}

// extractNextLabel pops the queued vertex with the cheapest bucket top and
// settles that label; the vertex is requeued if labels remain.
func (s *Solver[L]) extractNextLabel() (*L, int) {
	best := 0
	for i := 1; i < len(s.queue); i++ {
		if s.prop.CheaperThan(s.buckets[s.queue[i]].top(), s.buckets[s.queue[best]].top()) {
			best = i
		}
	}
	id := s.queue[best]
	s.queue[best] = s.queue[len(s.queue)-1]
	s.queue = s.queue[:len(s.queue)-1]

	label := s.buckets[id].extractCheapest()
	if !s.buckets[id].empty() {
		s.enqueue(id)
	}
	return label, id
}

// Optimize embeds station visits into the customer sequence. The sequence
// must start and end at the depot. On infeasibility the input sequence is
// returned unchanged.
//
// Complexity: exponential in the worst case (label-setting with dominance);
// in practice bounded tightly by the dominance rules of the propagator.
func (s *Solver[L]) Optimize(route []routing.VertexID) ([]routing.VertexID, error) {
	if len(route) < 2 || route[0] != s.instance.Depot().ID || route[len(route)-1] != s.instance.Depot().ID {
		return nil, ErrMalformedRoute
	}
	s.prop.Prepare(route)
	s.clear()
	s.buildGraph(route)

	s.buckets = append(s.buckets, make([]labelBucket[L], s.graph.size())...)
	for i := range s.buckets {
		s.buckets[i] = newLabelBucket(s.prop)
	}

	root := s.allocate(s.prop.CreateRootLabel())
	s.buckets[0].add(root)
	s.enqueue(0)

	for len(s.queue) > 0 {
		label, originID := s.extractNextLabel()
		if s.prop.IsFinalLabel(label) {
			return s.prop.ExtractPath(label), nil
		}

		origin := s.graph.vertices[originID]
		for _, targetID := range s.graph.successors[originID] {
			target := s.graph.vertices[targetID]
			propagated := s.prop.Propagate(label, origin.vertex, target.vertex,
				s.instance.Arc(origin.vertex.ID, target.vertex.ID))
			if propagated == nil {
				continue
			}
			if s.buckets[targetID].add(s.allocate(propagated)) {
				s.enqueue(targetID)
			}
		}
	}
	return route, nil
}

package routing

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync/atomic"
)

// nextModificationTimestamp is the process-wide counter stamping every route
// mutation. A shared counter lets caches compare staleness across solutions.
// Freshly constructed empty routes use timestamp 0; mutations start at 1.
var nextModificationTimestamp atomic.Uint64

// Route is an ordered sequence of nodes whose first and last nodes reference
// the depot. The depot sentinels are created with the route and may never be
// removed. After every mutation the route re-propagates resource labels so
// that Cost, Feasible and CostComponents stay O(1) reads.
type Route struct {
	instance *Instance
	eval     Evaluation
	nodes    []*Node
	// timestamp increases monotonically with every mutation.
	timestamp uint64
}

// RouteInsertion names a vertex to insert and the position whose node it
// should follow.
type RouteInsertion struct {
	Vertex VertexID
	After  int
}

// NewRoute returns an empty route: the two depot sentinels and nothing else.
// Empty routes always carry modification timestamp 0.
func NewRoute(e Evaluation, inst *Instance) *Route {
	depot := inst.Depot()
	r := &Route{
		instance: inst,
		eval:     e,
		nodes:    []*Node{NewNode(e, depot), NewNode(e, depot)},
	}
	r.update()
	r.timestamp = 0
	return r
}

// NewRouteFromVertices returns a route visiting the given non-depot vertices
// in order, wrapped in depot sentinels, with all labels propagated.
func NewRouteFromVertices(e Evaluation, inst *Instance, vertices []VertexID) (*Route, error) {
	depot := inst.Depot()
	nodes := make([]*Node, 0, len(vertices)+2)
	nodes = append(nodes, NewNode(e, depot))
	for _, id := range vertices {
		if id == depot.ID {
			return nil, fmt.Errorf("%w: vertex %d is the depot", ErrDepotMove, id)
		}
		nodes = append(nodes, NewNode(e, inst.Vertex(id)))
	}
	nodes = append(nodes, NewNode(e, depot))
	r := &Route{instance: inst, eval: e, nodes: nodes}
	r.update()
	return r, nil
}

// Len returns the number of nodes including both depot sentinels.
func (r *Route) Len() int { return len(r.nodes) }

// Empty reports whether the route visits nothing but the sentinels.
func (r *Route) Empty() bool { return len(r.nodes) == 2 }

// Node returns the node at position i. Position 0 is the start depot and
// Len()-1 the end depot.
func (r *Route) Node(i int) *Node { return r.nodes[i] }

// EndDepotPos returns the position of the end depot sentinel.
func (r *Route) EndDepotPos() int { return len(r.nodes) - 1 }

// Segment returns the half-open node range [begin, end) as a view into the
// route. The view stays valid until the next mutation.
func (r *Route) Segment(begin, end int) Segment { return Segment(r.nodes[begin:end]) }

// Cost returns the realized route cost, read from the end depot's forward
// label in O(1).
func (r *Route) Cost() float64 { return r.nodes[len(r.nodes)-1].Cost(r.eval) }

// CostComponents returns the per-dimension breakdown at the end depot.
func (r *Route) CostComponents() []float64 {
	return r.nodes[len(r.nodes)-1].CostComponents(r.eval)
}

// Feasible reports whether the route violates no resource constraint.
func (r *Route) Feasible() bool { return r.nodes[len(r.nodes)-1].Feasible(r.eval) }

// ModificationTimestamp returns the stamp of the last mutation.
func (r *Route) ModificationTimestamp() uint64 { return r.timestamp }

// NodeCount returns the number of non-sentinel nodes of the route,
// optionally counting the start depot.
func (r *Route) NodeCount(includeStartDepot bool) int {
	n := r.Len() - 2
	if includeStartDepot {
		n++
	}
	return n
}

// Evaluation returns the evaluator shared by this route.
func (r *Route) Evaluation() Evaluation { return r.eval }

// SetEvaluation replaces the route's evaluator and rebuilds every label from
// scratch, since labels of different evaluators are not interchangeable.
func (r *Route) SetEvaluation(e Evaluation) {
	r.eval = e
	for _, n := range r.nodes {
		n.fwd = e.CreateForwardLabel(n.vertex)
		n.bwd = e.CreateBackwardLabel(n.vertex)
	}
	r.update()
}

// RemoveSegment removes the half-open node range [begin, end) and
// re-propagates labels. The sentinels are protected: begin must be at least
// 1 and end at most Len()-1.
func (r *Route) RemoveSegment(begin, end int) error {
	if begin < 1 || end > len(r.nodes)-1 || begin > end {
		return fmt.Errorf("%w: remove [%d,%d) from route of length %d", ErrDepotMove, begin, end, len(r.nodes))
	}
	r.nodes = slices.Delete(r.nodes, begin, end)
	r.update()
	return nil
}

// InsertSegmentAfter inserts nodes directly after position pos. Insertion
// after the end depot is forbidden.
func (r *Route) InsertSegmentAfter(pos int, nodes []*Node) error {
	if pos < 0 || pos >= len(r.nodes)-1 {
		return fmt.Errorf("%w: insert after %d in route of length %d", ErrDepotMove, pos, len(r.nodes))
	}
	r.nodes = slices.Insert(r.nodes, pos+1, nodes...)
	r.update()
	return nil
}

// RemoveVertices removes the nodes at the given positions in one pass.
// Positions may arrive in any order; they are processed in descending order
// so earlier removals cannot invalidate later positions. A single label
// re-propagation runs at the end.
func (r *Route) RemoveVertices(positions []int) error {
	if len(positions) == 0 {
		return nil
	}
	if !sort.SliceIsSorted(positions, func(i, j int) bool { return positions[i] > positions[j] }) {
		positions = slices.Clone(positions)
		sort.Sort(sort.Reverse(sort.IntSlice(positions)))
	}
	for _, pos := range positions {
		if pos < 1 || pos > len(r.nodes)-2 {
			return fmt.Errorf("%w: position %d", ErrInvalidLocation, pos)
		}
	}
	for _, pos := range positions {
		r.nodes = slices.Delete(r.nodes, pos, pos+1)
	}
	r.update()
	return nil
}

// InsertVerticesAfter inserts a batch of vertices, each directly after the
// node at its stated position. Entries may arrive in any order and are
// processed in descending position order. Positions are interpreted against
// the route state before the call; duplicate positions insert in reverse
// entry order at the same point.
func (r *Route) InsertVerticesAfter(items []RouteInsertion) error {
	if len(items) == 0 {
		return nil
	}
	desc := func(i, j int) bool { return items[i].After > items[j].After }
	if !sort.SliceIsSorted(items, desc) {
		items = slices.Clone(items)
		sort.Slice(items, func(i, j int) bool { return items[i].After > items[j].After })
	}
	for _, item := range items {
		if item.After < 0 || item.After > len(r.nodes)-2 {
			return fmt.Errorf("%w: position %d", ErrInvalidLocation, item.After)
		}
	}
	for _, item := range items {
		n := NewNode(r.eval, r.instance.Vertex(item.Vertex))
		r.nodes = slices.Insert(r.nodes, item.After+1, n)
	}
	r.update()
	return nil
}

// ExchangeSegments swaps the intra-route node ranges [begin, end) and
// [otherBegin, otherEnd). The ranges must be disjoint and must not touch the
// sentinels. The shorter range is swapped pairwise; the remainder of the
// longer range is rotated into place, keeping the whole operation linear in
// the shorter range plus the displaced span.
func (r *Route) ExchangeSegments(begin, end, otherBegin, otherEnd int) error {
	if end-begin > otherEnd-otherBegin {
		return r.ExchangeSegments(otherBegin, otherEnd, begin, end)
	}
	if begin < 1 || otherBegin < 1 || end > len(r.nodes)-1 || otherEnd > len(r.nodes)-1 {
		return fmt.Errorf("%w: exchange [%d,%d)x[%d,%d)", ErrDepotMove, begin, end, otherBegin, otherEnd)
	}
	if begin > end || otherBegin > otherEnd {
		return fmt.Errorf("%w: exchange [%d,%d)x[%d,%d)", ErrInvalidLocation, begin, end, otherBegin, otherEnd)
	}
	if begin < otherEnd && otherBegin < end {
		return ErrSegmentOverlap
	}

	short := end - begin
	for i := 0; i < short; i++ {
		r.nodes[begin+i], r.nodes[otherBegin+i] = r.nodes[otherBegin+i], r.nodes[begin+i]
	}
	// The first `short` nodes of the other range are in place; rotate the
	// remaining tail towards the gap left next to [begin, end).
	rem := otherBegin + short
	if otherEnd < end {
		rotateLeft(r.nodes[rem:end], otherEnd-rem)
	} else {
		rotateLeft(r.nodes[end:otherEnd], rem-end)
	}
	r.update()
	return nil
}

// ExchangeSegmentsWith swaps the node range [begin, end) of this route with
// [otherBegin, otherEnd) of another route. Both routes re-propagate labels.
func (r *Route) ExchangeSegmentsWith(begin, end int, other *Route, otherBegin, otherEnd int) error {
	if other == r {
		return r.ExchangeSegments(begin, end, otherBegin, otherEnd)
	}
	if end-begin > otherEnd-otherBegin {
		return other.ExchangeSegmentsWith(otherBegin, otherEnd, r, begin, end)
	}
	if begin < 1 || otherBegin < 1 || end > len(r.nodes)-1 || otherEnd > len(other.nodes)-1 {
		return fmt.Errorf("%w: exchange [%d,%d)x[%d,%d)", ErrDepotMove, begin, end, otherBegin, otherEnd)
	}
	if begin > end || otherBegin > otherEnd {
		return fmt.Errorf("%w: exchange [%d,%d)x[%d,%d)", ErrInvalidLocation, begin, end, otherBegin, otherEnd)
	}

	// [begin, end) is the shorter of both ranges.
	short := end - begin
	for i := 0; i < short; i++ {
		r.nodes[begin+i], other.nodes[otherBegin+i] = other.nodes[otherBegin+i], r.nodes[begin+i]
	}
	// Move the other range's surplus into this route before `end`.
	rem := other.nodes[otherBegin+short : otherEnd]
	r.nodes = slices.Insert(r.nodes, end, rem...)
	other.nodes = slices.Delete(other.nodes, otherBegin+short, otherEnd)
	r.update()
	other.update()
	return nil
}

// rotateLeft rotates s in place so that s[m] becomes s[0], using the
// three-reversal identity. O(len(s)) time, O(1) space.
func rotateLeft(s []*Node, m int) {
	reverseNodes(s[:m])
	reverseNodes(s[m:])
	reverseNodes(s)
}

func reverseNodes(s []*Node) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// update re-propagates every label and refreshes the timestamp.
func (r *Route) update() {
	r.updateRange(0, len(r.nodes)-1)
}

// updateRange re-propagates forward labels after position lastValidForward
// and backward labels before position firstValidBackward, then stamps the
// mutation. The start depot's forward label and the end depot's backward
// label keep their initial created values.
func (r *Route) updateRange(lastValidForward, firstValidBackward int) {
	for i := lastValidForward + 1; i < len(r.nodes); i++ {
		pred := r.nodes[i-1]
		r.nodes[i].updateForward(r.eval, pred, r.instance.Arc(pred.VertexID(), r.nodes[i].VertexID()))
	}
	for i := firstValidBackward - 1; i >= 0; i-- {
		succ := r.nodes[i+1]
		r.nodes[i].updateBackward(r.eval, succ, r.instance.Arc(r.nodes[i].VertexID(), succ.VertexID()))
	}
	r.timestamp = nextModificationTimestamp.Add(1)
}

// Clone returns a deep copy of the route; every node becomes a fresh
// occurrence carrying the same labels.
func (r *Route) Clone() *Route {
	nodes := make([]*Node, len(r.nodes))
	for i, n := range r.nodes {
		nodes[i] = n.clone()
	}
	return &Route{instance: r.instance, eval: r.eval, nodes: nodes, timestamp: r.timestamp}
}

// VertexIDs returns the visited vertex ids including both depot sentinels.
func (r *Route) VertexIDs() []VertexID {
	ids := make([]VertexID, len(r.nodes))
	for i, n := range r.nodes {
		ids[i] = n.VertexID()
	}
	return ids
}

// Equal reports whether both routes visit the same vertex sequence. Labels
// are not compared; two differently priced routes over the same sequence are
// equal.
func (r *Route) Equal(other *Route) bool {
	if len(r.nodes) != len(other.nodes) {
		return false
	}
	for i := range r.nodes {
		if r.nodes[i].VertexID() != other.nodes[i].VertexID() {
			return false
		}
	}
	return true
}

// String renders the visited vertex names as [depot,a,b,depot].
func (r *Route) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, n := range r.nodes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(n.String())
	}
	b.WriteByte(']')
	return b.String()
}

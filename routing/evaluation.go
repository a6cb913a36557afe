package routing

// Evaluation is the kernel interface pricing routes and route fragments.
// An implementation is polymorphic over two opaque label types, one forward
// and one backward, which it creates at depots/stations and propagates along
// arcs. All other components treat labels as black boxes.
type Evaluation interface {
	// CreateForwardLabel returns the initial forward label at vertex v,
	// typically encoding zero accumulated resources.
	CreateForwardLabel(v *Vertex) Label

	// CreateBackwardLabel returns the initial backward label at vertex v.
	CreateBackwardLabel(v *Vertex) Label

	// PropagateForward produces the forward label at vertex given the
	// predecessor's forward label and the connecting arc.
	PropagateForward(pred Label, predVertex, vertex *Vertex, arc *Arc) Label

	// PropagateBackward produces the backward label at vertex given the
	// successor's backward label and the connecting arc.
	PropagateBackward(succ Label, succVertex, vertex *Vertex, arc *Arc) Label

	// Cost returns the realized cost at a forward label: distance plus
	// weighted penalty components.
	Cost(label Label) float64

	// CostComponents returns the per-dimension resource breakdown of a
	// forward label.
	CostComponents(label Label) []float64

	// Feasible reports whether no penalty component of the forward label is
	// non-zero.
	Feasible(label Label) bool

	// Evaluate prices the route formed by concatenating segments end-to-end.
	// Each segment carries pre-computed labels at its boundaries; the first
	// segment must begin at a start depot and the last must reach an end
	// depot.
	Evaluate(inst *Instance, segments []Segment) float64
}

// ConcatenationEvaluation is implemented by evaluators with a closed-form
// junction formula. Concatenate joins a forward label with a backward label
// at the junction vertex and returns the total route cost. Such evaluators
// price a k-segment concatenation in O(k) label operations: the contract
// that keeps the local search fast.
type ConcatenationEvaluation interface {
	Evaluation

	// Concatenate returns the cost of the route whose prefix realizes fwd
	// and whose suffix (starting at vertex) realizes bwd.
	Concatenate(fwd, bwd Label, vertex *Vertex) float64
}

// EvaluateSegments is the default Evaluate of concatenation-based
// evaluators: it propagates a forward label across all but the last segment
// and joins it with the backward label at the last segment's first node.
// Implementations embed it as a one-line Evaluate body.
//
// Empty interior segments are permitted and contribute nothing; the first
// segment must be non-empty and the last segment's first node is the
// junction.
//
// Complexity: O(total interior nodes) label propagations + one Concatenate.
func EvaluateSegments(e ConcatenationEvaluation, inst *Instance, segments []Segment) float64 {
	first := segments[0]
	pred := first[len(first)-1]
	fwd := pred.ForwardLabel()
	if len(segments) == 1 {
		// A single segment spans the whole route; its trailing label is
		// already realized.
		return e.Cost(fwd)
	}
	for _, seg := range segments[1 : len(segments)-1] {
		for _, next := range seg {
			fwd = e.PropagateForward(fwd, pred.Vertex(), next.Vertex(),
				inst.Arc(pred.VertexID(), next.VertexID()))
			pred = next
		}
	}
	junction := segments[len(segments)-1][0]
	fwd = e.PropagateForward(fwd, pred.Vertex(), junction.Vertex(),
		inst.Arc(pred.VertexID(), junction.VertexID()))
	return e.Concatenate(fwd, junction.BackwardLabel(), junction.Vertex())
}

// EvaluateForward prices a concatenation by propagating a forward label
// across every segment and realizing its cost at the end. Used by evaluators
// without a closed-form junction formula.
//
// Complexity: O(total nodes) label propagations.
func EvaluateForward(e Evaluation, inst *Instance, segments []Segment) float64 {
	first := segments[0]
	pred := first[len(first)-1]
	fwd := pred.ForwardLabel()
	if len(segments) == 1 {
		return e.Cost(fwd)
	}
	for _, seg := range segments[1:] {
		for _, next := range seg {
			fwd = e.PropagateForward(fwd, pred.Vertex(), next.Vertex(),
				inst.Arc(pred.VertexID(), next.VertexID()))
			pred = next
		}
	}
	return e.Cost(fwd)
}

// Concatenate prices the route formed by gluing the given segments.
func Concatenate(e Evaluation, inst *Instance, segments ...Segment) float64 {
	return e.Evaluate(inst, segments)
}

// EvaluateInsertion prices inserting node n directly after position after in
// route r, without mutating the route.
func EvaluateInsertion(e Evaluation, inst *Instance, r *Route, after int, n *Node) float64 {
	return Concatenate(e, inst,
		r.Segment(0, after+1),
		SegmentOf(n),
		r.Segment(after+1, r.Len()))
}

package routing

// Label is an opaque resource state attached to a node. Labels are produced
// and consumed exclusively by an Evaluation; everything else treats them as
// immutable values.
type Label any

// Node is a positioned occurrence of a vertex inside a route. It holds the
// vertex reference plus the current forward and backward labels. Two nodes
// are the same node iff they are the same pointer, that is, the same
// occurrence.
type Node struct {
	vertex *Vertex
	fwd    Label
	bwd    Label
}

// NewNode creates a node for vertex v with freshly created initial labels.
func NewNode(e Evaluation, v *Vertex) *Node {
	return &Node{vertex: v, fwd: e.CreateForwardLabel(v), bwd: e.CreateBackwardLabel(v)}
}

// Vertex returns the referenced vertex.
func (n *Node) Vertex() *Vertex { return n.vertex }

// VertexID returns the referenced vertex's id.
func (n *Node) VertexID() VertexID { return n.vertex.ID }

// ForwardLabel returns the current forward label.
func (n *Node) ForwardLabel() Label { return n.fwd }

// BackwardLabel returns the current backward label.
func (n *Node) BackwardLabel() Label { return n.bwd }

// Cost returns the realized cost at this node's forward label.
func (n *Node) Cost(e Evaluation) float64 { return e.Cost(n.fwd) }

// CostComponents returns the per-dimension breakdown at the forward label.
func (n *Node) CostComponents(e Evaluation) []float64 { return e.CostComponents(n.fwd) }

// Feasible reports whether the forward label carries no penalty.
func (n *Node) Feasible(e Evaluation) bool { return e.Feasible(n.fwd) }

// String returns the vertex display name.
func (n *Node) String() string { return n.vertex.Name }

// updateForward recomputes the forward label from the predecessor node.
func (n *Node) updateForward(e Evaluation, pred *Node, arc *Arc) {
	n.fwd = e.PropagateForward(pred.fwd, pred.vertex, n.vertex, arc)
}

// updateBackward recomputes the backward label from the successor node.
func (n *Node) updateBackward(e Evaluation, succ *Node, arc *Arc) {
	n.bwd = e.PropagateBackward(succ.bwd, succ.vertex, n.vertex, arc)
}

// clone returns a copy of the node as a fresh occurrence.
func (n *Node) clone() *Node {
	c := *n
	return &c
}

// Segment is a contiguous slice of nodes within a single route, carrying
// valid labels at its boundaries. Segments are views: they alias the route
// they were cut from and stay valid only until the route's next mutation.
type Segment []*Node

// SegmentOf wraps a single node as a one-element segment.
func SegmentOf(n *Node) Segment { return Segment{n} }

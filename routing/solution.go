package routing

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// NodeLocation is the stable coordinate of a node inside a solution: the
// route index and the 0-based position within the route (start depot is
// position 0). Moves address nodes through locations rather than holding
// node references, and revalidate them at apply time.
type NodeLocation struct {
	Route    int
	Position int
}

// Compare orders locations by route, then position.
func (l NodeLocation) Compare(other NodeLocation) int {
	if l.Route != other.Route {
		if l.Route < other.Route {
			return -1
		}
		return 1
	}
	switch {
	case l.Position < other.Position:
		return -1
	case l.Position > other.Position:
		return 1
	default:
		return 0
	}
}

// String renders the location as (route,position).
func (l NodeLocation) String() string { return fmt.Sprintf("(%d,%d)", l.Route, l.Position) }

// VertexInsertion names a vertex to insert and the solution location whose
// node it should follow.
type VertexInsertion struct {
	Vertex VertexID
	After  NodeLocation
}

// Solution owns an ordered collection of routes (a route's index is a stable,
// externally visible coordinate) plus a vertex-lookup index mapping each
// vertex id to all locations where it currently appears. The index is
// rebuilt, not incrementally patched, after every public mutation; the
// rebuild is linear in the total route length, which keeps the bookkeeping
// simple and the invariant trivially true.
type Solution struct {
	instance *Instance
	eval     Evaluation
	routes   []*Route
	lookup   [][]NodeLocation
}

// NewSolution returns a solution with numRoutes empty routes.
func NewSolution(e Evaluation, inst *Instance, numRoutes int) *Solution {
	routes := make([]*Route, numRoutes)
	for i := range routes {
		routes[i] = NewRoute(e, inst)
	}
	return NewSolutionFromRoutes(e, inst, routes)
}

// NewSolutionFromRoutes wraps existing routes into a solution and builds the
// lookup index.
func NewSolutionFromRoutes(e Evaluation, inst *Instance, routes []*Route) *Solution {
	s := &Solution{
		instance: inst,
		eval:     e,
		routes:   routes,
		lookup:   make([][]NodeLocation, inst.NumVertices()),
	}
	s.rebuildLookup()
	return s
}

// Len returns the number of routes.
func (s *Solution) Len() int { return len(s.routes) }

// Route returns the route at index i.
func (s *Solution) Route(i int) *Route { return s.routes[i] }

// Instance returns the instance this solution is defined on.
func (s *Solution) Instance() *Instance { return s.instance }

// Evaluation returns the evaluator shared by the solution's routes.
func (s *Solution) Evaluation() Evaluation { return s.eval }

// Cost returns the summed cost of all routes.
func (s *Solution) Cost() float64 {
	var total float64
	for _, r := range s.routes {
		total += r.Cost()
	}
	return total
}

// CostComponents returns the per-dimension breakdown summed over routes.
func (s *Solution) CostComponents() []float64 {
	if len(s.routes) == 0 {
		return nil
	}
	total := slices.Clone(s.routes[0].CostComponents())
	for _, r := range s.routes[1:] {
		for i, c := range r.CostComponents() {
			total[i] += c
		}
	}
	return total
}

// Feasible reports whether every route is feasible.
func (s *Solution) Feasible() bool {
	for _, r := range s.routes {
		if !r.Feasible() {
			return false
		}
	}
	return true
}

// NodeCount returns the number of nodes excluding end depots, optionally
// counting the start depots too.
func (s *Solution) NodeCount(includeStartDepot bool) int {
	var n int
	for _, r := range s.routes {
		n += r.NodeCount(includeStartDepot)
	}
	return n
}

// Find returns all locations at which the given vertex currently appears.
// The returned slice aliases the index; callers must not retain it across
// mutations.
func (s *Solution) Find(id VertexID) []NodeLocation { return s.lookup[id] }

// NodeAt resolves a location to its node, validating liveness.
func (s *Solution) NodeAt(loc NodeLocation) (*Node, error) {
	if loc.Route < 0 || loc.Route >= len(s.routes) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocation, loc)
	}
	r := s.routes[loc.Route]
	if loc.Position < 0 || loc.Position >= r.Len() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocation, loc)
	}
	return r.Node(loc.Position), nil
}

// ExchangeSegment swaps the node range [fromBegin, fromEnd) of route
// fromRoute with [toBegin, toEnd) of route toRoute (which may equal
// fromRoute) and rebuilds the lookup index.
func (s *Solution) ExchangeSegment(fromRoute, fromBegin, fromEnd, toRoute, toBegin, toEnd int) error {
	if fromRoute < 0 || fromRoute >= len(s.routes) || toRoute < 0 || toRoute >= len(s.routes) {
		return fmt.Errorf("%w: route %d or %d", ErrInvalidLocation, fromRoute, toRoute)
	}
	var err error
	if fromRoute == toRoute {
		err = s.routes[fromRoute].ExchangeSegments(fromBegin, fromEnd, toBegin, toEnd)
	} else {
		err = s.routes[fromRoute].ExchangeSegmentsWith(fromBegin, fromEnd, s.routes[toRoute], toBegin, toEnd)
	}
	if err != nil {
		return err
	}
	s.rebuildLookup()
	return nil
}

// InsertVertexAfter inserts a fresh node for the vertex directly after the
// node at loc and rebuilds the lookup index.
func (s *Solution) InsertVertexAfter(loc NodeLocation, id VertexID) error {
	if loc.Route < 0 || loc.Route >= len(s.routes) {
		return fmt.Errorf("%w: %s", ErrInvalidLocation, loc)
	}
	n := NewNode(s.eval, s.instance.Vertex(id))
	if err := s.routes[loc.Route].InsertSegmentAfter(loc.Position, []*Node{n}); err != nil {
		return err
	}
	s.rebuildLookup()
	return nil
}

// RemoveSegment removes the node range [begin, end) from the given route and
// rebuilds the lookup index.
func (s *Solution) RemoveSegment(route, begin, end int) error {
	if route < 0 || route >= len(s.routes) {
		return fmt.Errorf("%w: route %d", ErrInvalidLocation, route)
	}
	if err := s.routes[route].RemoveSegment(begin, end); err != nil {
		return err
	}
	s.rebuildLookup()
	return nil
}

// RemoveVertex removes the node at loc.
func (s *Solution) RemoveVertex(loc NodeLocation) error {
	return s.RemoveSegment(loc.Route, loc.Position, loc.Position+1)
}

// RemoveVertices removes all nodes at the given locations in one pass.
// Locations may arrive in any order; they are sorted descending internally
// so earlier edits do not invalidate later coordinates.
func (s *Solution) RemoveVertices(locations []NodeLocation) error {
	if len(locations) == 0 {
		return nil
	}
	desc := func(i, j int) bool { return locations[i].Compare(locations[j]) > 0 }
	if !sort.SliceIsSorted(locations, desc) {
		locations = slices.Clone(locations)
		sort.Slice(locations, func(i, j int) bool { return locations[i].Compare(locations[j]) > 0 })
	}
	for begin := 0; begin < len(locations); {
		end := begin
		for end < len(locations) && locations[end].Route == locations[begin].Route {
			end++
		}
		route := locations[begin].Route
		if route < 0 || route >= len(s.routes) {
			return fmt.Errorf("%w: route %d", ErrInvalidLocation, route)
		}
		positions := make([]int, 0, end-begin)
		for _, loc := range locations[begin:end] {
			positions = append(positions, loc.Position)
		}
		if err := s.routes[route].RemoveVertices(positions); err != nil {
			return err
		}
		begin = end
	}
	s.rebuildLookup()
	return nil
}

// InsertVerticesAfter inserts a batch of vertices at the stated locations in
// one pass, sorted descending internally like RemoveVertices.
func (s *Solution) InsertVerticesAfter(items []VertexInsertion) error {
	if len(items) == 0 {
		return nil
	}
	desc := func(i, j int) bool { return items[i].After.Compare(items[j].After) > 0 }
	if !sort.SliceIsSorted(items, desc) {
		items = slices.Clone(items)
		sort.Slice(items, func(i, j int) bool { return items[i].After.Compare(items[j].After) > 0 })
	}
	for begin := 0; begin < len(items); {
		end := begin
		for end < len(items) && items[end].After.Route == items[begin].After.Route {
			end++
		}
		route := items[begin].After.Route
		if route < 0 || route >= len(s.routes) {
			return fmt.Errorf("%w: route %d", ErrInvalidLocation, route)
		}
		batch := make([]RouteInsertion, 0, end-begin)
		for _, item := range items[begin:end] {
			batch = append(batch, RouteInsertion{Vertex: item.Vertex, After: item.After.Position})
		}
		if err := s.routes[route].InsertVerticesAfter(batch); err != nil {
			return err
		}
		begin = end
	}
	s.rebuildLookup()
	return nil
}

// RemoveRoute removes the route at index i; routes after it shift down.
func (s *Solution) RemoveRoute(i int) error {
	if i < 0 || i >= len(s.routes) {
		return fmt.Errorf("%w: route %d", ErrInvalidLocation, i)
	}
	s.routes = slices.Delete(s.routes, i, i+1)
	s.rebuildLookup()
	return nil
}

// AddRoute appends a fresh empty route and returns it.
func (s *Solution) AddRoute() *Route {
	r := NewRoute(s.eval, s.instance)
	s.routes = append(s.routes, r)
	s.rebuildLookup()
	return r
}

// AppendRoute adopts an existing route and returns its index.
func (s *Solution) AppendRoute(r *Route) int {
	s.routes = append(s.routes, r)
	s.rebuildLookup()
	return len(s.routes) - 1
}

// SetEvaluation swaps the evaluator for the solution and all its routes,
// rebuilding every label.
func (s *Solution) SetEvaluation(e Evaluation) {
	s.eval = e
	for _, r := range s.routes {
		r.SetEvaluation(e)
	}
}

// Clone returns a deep copy sharing the instance and evaluator but owning
// fresh routes, nodes and index.
func (s *Solution) Clone() *Solution {
	routes := make([]*Route, len(s.routes))
	for i, r := range s.routes {
		routes[i] = r.Clone()
	}
	return NewSolutionFromRoutes(s.eval, s.instance, routes)
}

// Equal reports whether both solutions hold equal routes in the same order.
func (s *Solution) Equal(other *Solution) bool {
	if len(s.routes) != len(other.routes) {
		return false
	}
	for i := range s.routes {
		if !s.routes[i].Equal(other.routes[i]) {
			return false
		}
	}
	return true
}

// String renders the solution cost and routes.
func (s *Solution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Solution(cost=%g, routes=[", s.Cost())
	for i, r := range s.routes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.String())
	}
	b.WriteString("])")
	return b.String()
}

// rebuildLookup recomputes the vertex-lookup index from scratch.
func (s *Solution) rebuildLookup() {
	for i := range s.lookup {
		s.lookup[i] = s.lookup[i][:0]
	}
	for routeIndex, r := range s.routes {
		for pos := 0; pos < r.Len(); pos++ {
			id := r.Node(pos).VertexID()
			s.lookup[id] = append(s.lookup[id], NodeLocation{Route: routeIndex, Position: pos})
		}
	}
}

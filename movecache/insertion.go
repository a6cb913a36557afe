package movecache

import (
	"sort"

	"github.com/katalvlaran/routekit/bitset"
	"github.com/katalvlaran/routekit/routing"
)

// InsertionMove prices inserting Vertex directly after the node at After.
type InsertionMove struct {
	Vertex routing.VertexID
	After  routing.NodeLocation
	Delta  float64
}

// InsertionCache holds, for every tracked vertex, all insertion positions in
// the current solution, each per-vertex list ascending by delta.
type InsertionCache struct {
	instance *routing.Instance
	eval     routing.Evaluation
	// caches[id] holds the moves of vertex id; empty unless tracked.
	caches  [][]InsertionMove
	tracked bitset.Bitset
}

// NewInsertionCache returns an empty cache bound to the instance.
func NewInsertionCache(inst *routing.Instance) *InsertionCache {
	return &InsertionCache{
		instance: inst,
		caches:   make([][]InsertionMove, inst.NumVertices()),
		tracked:  bitset.New(inst.NumVertices()),
	}
}

// Clear drops all moves and tracked vertices.
func (c *InsertionCache) Clear() {
	c.eval = nil
	c.tracked.Reset()
	for i := range c.caches {
		c.caches[i] = c.caches[i][:0]
	}
}

// Rebuild registers the given vertices and prices every insertion position
// for each of them.
//
// Complexity: O(tracked · total insertion points) pricings.
func (c *InsertionCache) Rebuild(e routing.Evaluation, sol *routing.Solution, vertices []routing.VertexID) {
	c.Clear()
	c.eval = e
	for _, id := range vertices {
		for routeIndex := 0; routeIndex < sol.Len(); routeIndex++ {
			c.appendRouteMoves(sol.Route(routeIndex), routeIndex, id)
		}
		c.restoreOrder(id)
		c.tracked.Set(int(id))
	}
}

// InvalidateRoute recomputes, for every tracked vertex, the entries whose
// insertion point lies in routeIndex.
func (c *InsertionCache) InvalidateRoute(route *routing.Route, routeIndex int) {
	for id := c.tracked.NextSet(0); id != bitset.NoBit; id = c.tracked.NextSet(id + 1) {
		vertex := routing.VertexID(id)
		cache := c.caches[id]
		keep := 0
		for i := range cache {
			if cache[i].After.Route != routeIndex {
				cache[keep] = cache[i]
				keep++
			}
		}
		c.caches[id] = cache[:keep]
		c.appendRouteMoves(route, routeIndex, vertex)
		c.restoreOrder(vertex)
	}
}

// StopTracking unregisters the vertex; its moves stop appearing in queries.
func (c *InsertionCache) StopTracking(id routing.VertexID) {
	c.tracked.Clear(int(id))
	c.caches[id] = c.caches[id][:0]
}

// Tracks reports whether the vertex is currently tracked.
func (c *InsertionCache) Tracks(id routing.VertexID) bool { return c.tracked.Test(int(id)) }

// TrackedVertices returns the tracked vertex ids in ascending order.
func (c *InsertionCache) TrackedVertices() []routing.VertexID {
	var ids []routing.VertexID
	for id := c.tracked.NextSet(0); id != bitset.NoBit; id = c.tracked.NextSet(id + 1) {
		ids = append(ids, routing.VertexID(id))
	}
	return ids
}

// BestInsertionsForVertex returns the vertex's moves in ascending delta
// order. The slice aliases the cache.
func (c *InsertionCache) BestInsertionsForVertex(id routing.VertexID) []InsertionMove {
	return c.caches[id]
}

// Iterator returns a k-way merged view over all tracked vertices' sorted
// move lists, yielding globally ascending deltas.
func (c *InsertionCache) Iterator() *InsertionIterator {
	it := &InsertionIterator{}
	for id := c.tracked.NextSet(0); id != bitset.NoBit; id = c.tracked.NextSet(id + 1) {
		if len(c.caches[id]) == 0 {
			continue
		}
		it.lists = append(it.lists, c.caches[id])
		it.heads = append(it.heads, 0)
	}
	return it
}

func (c *InsertionCache) appendRouteMoves(route *routing.Route, routeIndex int, id routing.VertexID) {
	routeCost := route.Cost()
	n := routing.NewNode(c.eval, c.instance.Vertex(id))
	for pos := 0; pos <= route.Len()-2; pos++ {
		insertionCost := routing.EvaluateInsertion(c.eval, c.instance, route, pos, n)
		c.caches[id] = append(c.caches[id], InsertionMove{
			Vertex: id,
			After:  routing.NodeLocation{Route: routeIndex, Position: pos},
			Delta:  insertionCost - routeCost,
		})
	}
}

func (c *InsertionCache) restoreOrder(id routing.VertexID) {
	cache := c.caches[id]
	sort.SliceStable(cache, func(i, j int) bool { return cache[i].Delta < cache[j].Delta })
}

// InsertionIterator merges several sorted move lists with a linear
// min-selector across the non-exhausted heads.
type InsertionIterator struct {
	lists [][]InsertionMove
	heads []int
}

// Next returns the globally cheapest remaining move, or ok=false when every
// list is exhausted.
func (it *InsertionIterator) Next() (InsertionMove, bool) {
	best := -1
	for i := range it.lists {
		if it.heads[i] >= len(it.lists[i]) {
			continue
		}
		if best == -1 || it.lists[i][it.heads[i]].Delta < it.lists[best][it.heads[best]].Delta {
			best = i
		}
	}
	if best == -1 {
		return InsertionMove{}, false
	}
	move := it.lists[best][it.heads[best]]
	it.heads[best]++
	return move, true
}

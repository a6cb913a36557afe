package movecache

import (
	"sort"

	"github.com/katalvlaran/routekit/routing"
)

// RemovalMove prices removing the node at Location from the solution.
type RemovalMove struct {
	Vertex   routing.VertexID
	Location routing.NodeLocation
	Delta    float64
}

// RemovalCache holds the removal move of every non-depot node, ascending by
// delta.
type RemovalCache struct {
	instance *routing.Instance
	eval     routing.Evaluation
	cache    []RemovalMove
}

// NewRemovalCache returns an empty cache bound to the instance.
func NewRemovalCache(inst *routing.Instance) *RemovalCache {
	return &RemovalCache{instance: inst}
}

// Clear drops all cached moves.
func (c *RemovalCache) Clear() {
	c.eval = nil
	c.cache = c.cache[:0]
}

// Rebuild repopulates the cache from every route of the solution.
//
// Complexity: O(total nodes) pricings + O(n log n) sort.
func (c *RemovalCache) Rebuild(e routing.Evaluation, sol *routing.Solution) {
	c.Clear()
	c.eval = e
	if cap(c.cache) < sol.NodeCount(false) {
		c.cache = make([]RemovalMove, 0, sol.NodeCount(false))
	}
	for routeIndex := 0; routeIndex < sol.Len(); routeIndex++ {
		c.appendRouteMoves(sol.Route(routeIndex), routeIndex)
	}
	c.restoreOrder()
}

// InvalidateRoute recomputes only the entries located in routeIndex: the
// untouched entries are partitioned to the front, the route's moves are
// rewritten in place behind them, and the order is restored.
func (c *RemovalCache) InvalidateRoute(route *routing.Route, routeIndex int) {
	keep := 0
	for i := range c.cache {
		if c.cache[i].Location.Route != routeIndex {
			c.cache[keep] = c.cache[i]
			keep++
		}
	}
	c.cache = c.cache[:keep]
	c.appendRouteMoves(route, routeIndex)
	c.restoreOrder()
}

// Moves returns the cached moves in ascending delta order. The slice aliases
// the cache and is valid until the next rebuild or invalidation.
func (c *RemovalCache) Moves() []RemovalMove { return c.cache }

// appendRouteMoves prices the removal of each non-sentinel node of the route.
func (c *RemovalCache) appendRouteMoves(route *routing.Route, routeIndex int) {
	routeCost := route.Cost()
	for pos := 1; pos <= route.Len()-2; pos++ {
		removalCost := routing.Concatenate(c.eval, c.instance,
			route.Segment(0, pos),
			route.Segment(pos+1, route.Len()))
		c.cache = append(c.cache, RemovalMove{
			Vertex:   route.Node(pos).VertexID(),
			Location: routing.NodeLocation{Route: routeIndex, Position: pos},
			Delta:    removalCost - routeCost,
		})
	}
}

func (c *RemovalCache) restoreOrder() {
	sort.SliceStable(c.cache, func(i, j int) bool { return c.cache[i].Delta < c.cache[j].Delta })
}

package navigation

import (
	"math"
	"slices"

	"github.com/beefsack/go-astar"
)

// relaxedNode adapts a graph node to astar.Pather
// Resources and backoff are ignored; only edge existence and cost matter
type relaxedNode struct {
	id    int
	world *relaxedWorld
}

type relaxedWorld struct {
	g       *Graph
	exclude map[EdgeKey]bool
	nodes   map[int]*relaxedNode
}

func (w *relaxedWorld) node(id int) *relaxedNode {
	if n, ok := w.nodes[id]; ok {
		return n
	}
	n := &relaxedNode{id: id, world: w}
	w.nodes[id] = n
	return n
}

func (n *relaxedNode) PathNeighbors() []astar.Pather {
	var out []astar.Pather
	for _, e := range n.world.g.out[n.id] {
		if n.world.exclude[e.Key()] {
			continue
		}
		out = append(out, n.world.node(e.To))
	}
	return out
}

func (n *relaxedNode) PathNeighborCost(to astar.Pather) float64 {
	dst := to.(*relaxedNode).id
	best := math.Inf(1)
	for _, e := range n.world.g.out[n.id] {
		if e.To == dst && !n.world.exclude[e.Key()] {
			best = min(best, e.Cost)
		}
	}
	return best
}

func (n *relaxedNode) PathEstimatedCost(to astar.Pather) float64 {
	return n.world.g.heuristic(n.id, to.(*relaxedNode).id)
}

// RelaxedPath finds a node route ignoring jump resources and backoff
// Edges whose keys are in exclude are skipped; returns node ids from start to goal
func (g *Graph) RelaxedPath(from, goal int, exclude []EdgeKey) ([]int, float64, bool) {
	if _, ok := g.nodes[from]; !ok {
		return nil, 0, false
	}
	if _, ok := g.nodes[goal]; !ok {
		return nil, 0, false
	}
	if from == goal {
		return []int{from}, 0, true
	}

	rw := &relaxedWorld{g: g, exclude: make(map[EdgeKey]bool, len(exclude)), nodes: make(map[int]*relaxedNode)}
	for _, k := range exclude {
		rw.exclude[k] = true
	}

	path, dist, found := astar.Path(rw.node(from), rw.node(goal))
	if !found {
		return nil, 0, false
	}
	ids := make([]int, len(path))
	for i, p := range path {
		ids[i] = p.(*relaxedNode).id
	}
	// Library returns goal first
	slices.Reverse(ids)
	return ids, dist, true
}

// RelaxedEdges resolves a relaxed node route to the cheapest edge per hop
func (g *Graph) RelaxedEdges(route []int, exclude []EdgeKey) []*Edge {
	skip := make(map[EdgeKey]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}
	edges := make([]*Edge, 0, len(route))
	for i := 0; i+1 < len(route); i++ {
		var best *Edge
		for _, e := range g.out[route[i]] {
			if e.To != route[i+1] || skip[e.Key()] {
				continue
			}
			if best == nil || e.Cost < best.Cost {
				best = e
			}
		}
		if best == nil {
			return nil
		}
		edges = append(edges, best)
	}
	return edges
}

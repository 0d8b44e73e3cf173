package navigation

import (
	"math"
	"slices"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Node is a standable platform in the maneuver graph
type Node struct {
	ID   int
	Rect world.Rect
}

// Graph holds platforms and the simulated maneuvers between them
// Rebuilt wholesale from world queries; backoff state is kept across rebuilds
type Graph struct {
	tuning  parameter.Tuning
	profile physics.Profile
	sampler *Sampler
	backoff *Backoff
	gate    *RebuildGate

	nodes map[int]*Node
	ids   []int // Sorted node ids
	out   map[int][]*Edge

	revision uint64 // World revision of the last build
	builds   int
}

func NewGraph(t parameter.Tuning) *Graph {
	return &Graph{
		tuning:  t,
		profile: physics.NewProfile(t.Motion),
		sampler: NewSampler(t),
		backoff: NewBackoff(t.Graph),
		gate:    NewRebuildGate(t.Graph.RebuildInterval),
		nodes:   make(map[int]*Node),
		out:     make(map[int][]*Edge),
	}
}

// Update rebuilds when the gate is due and reports whether it did
func (g *Graph) Update(w world.World, now float64) bool {
	if !g.gate.Due(now, w.Revision()) {
		return false
	}
	g.Rebuild(w, now)
	return true
}

// Rebuild recomputes nodes and edges from the world and returns the edge count
func (g *Graph) Rebuild(w world.World, now float64) int {
	gt := g.tuning.Graph
	clear(g.nodes)
	clear(g.out)
	g.ids = make([]int, 0, len(g.ids))

	for _, r := range w.Query(w.Bounds()) {
		if r.Standable(gt.MinStandWidth) {
			g.nodes[r.ID] = &Node{ID: r.ID, Rect: r}
			g.ids = append(g.ids, r.ID)
		}
	}
	slices.Sort(g.ids)

	// Sim solids must also cover the body overhanging the window edge
	padX := 2 * g.profile.HalfW
	padY := 2 * g.profile.HalfH

	count := 0
	for _, id := range g.ids {
		from := g.nodes[id].Rect
		window := g.reachWindow(from).Expand(padX, padY)
		near := w.Query(window)
		for _, to := range near {
			if to.ID == id {
				continue
			}
			if _, ok := g.nodes[to.ID]; !ok {
				continue
			}
			e, ok := g.sampler.Build(from, to, near, false)
			if !ok {
				continue
			}
			g.inheritBackoff(&e)
			g.out[id] = append(g.out[id], &e)
			count++
		}
	}

	g.backoff.Prune(now)
	g.revision = w.Revision()
	g.builds++
	g.gate.Done(now, g.revision)
	return count
}

// reachWindow bounds candidate destinations for a source platform
func (g *Graph) reachWindow(from world.Rect) vmath.AABB {
	gt := g.tuning.Graph
	return vmath.AABB{
		MinX: from.Left() - gt.ReachX,
		MaxX: from.Right() + gt.ReachX,
		MinY: from.Top() - gt.ReachUp,
		MaxY: from.Top() + gt.ReachDown,
	}
}

func (g *Graph) inheritBackoff(e *Edge) {
	if until, reason, ok := g.backoff.Until(e.Key()); ok {
		e.InvalidUntil = until
		e.FailReason = reason
	}
}

// --- Queries ---

// Node returns the platform rect for a node id
func (g *Graph) Node(id int) (world.Rect, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return world.Rect{}, false
	}
	return n.Rect, true
}

// Nodes returns node ids in ascending order
func (g *Graph) Nodes() []int { return g.ids }

// Edges returns the outgoing edges of a node
func (g *Graph) Edges(from int) []*Edge { return g.out[from] }

// Edge finds the edge for a key
func (g *Graph) Edge(key EdgeKey) (*Edge, bool) {
	for _, e := range g.out[key.From] {
		if e.Key() == key {
			return e, true
		}
	}
	return nil, false
}

// EdgeCount returns the total number of edges, injected included
func (g *Graph) EdgeCount() int {
	n := 0
	for _, es := range g.out {
		n += len(es)
	}
	return n
}

// NodeAt returns the platform whose top is at feetY under x
func (g *Graph) NodeAt(x, feetY, tol float64) (int, bool) {
	best, bestD := 0, math.Inf(1)
	for _, id := range g.ids {
		r := g.nodes[id].Rect
		if x < r.Left() || x > r.Right() {
			continue
		}
		if d := math.Abs(r.Top() - feetY); d <= tol && d < bestD {
			best, bestD = id, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}

// Nearest returns the node whose top center is closest to (x, y)
func (g *Graph) Nearest(x, y float64) (int, bool) {
	best, bestD := 0, math.Inf(1)
	for _, id := range g.ids {
		r := g.nodes[id].Rect
		if d := vmath.Dist(x, y, vmath.Clamp(x, r.Left(), r.Right()), r.Top()); d < bestD {
			best, bestD = id, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}

func (g *Graph) Revision() uint64         { return g.revision }
func (g *Graph) Builds() int              { return g.builds }
func (g *Graph) Backoff() *Backoff        { return g.backoff }
func (g *Graph) Sampler() *Sampler        { return g.sampler }
func (g *Graph) Profile() physics.Profile { return g.profile }
func (g *Graph) Gate() *RebuildGate       { return g.gate }
func (g *Graph) ReachBudget() int         { return g.tuning.Search.ReachBudget }
func (g *Graph) Tuning() parameter.Tuning { return g.tuning }

// --- Mutation ---

// Invalidate strikes an edge key and applies the resulting backoff to any matching edge
// Returns the time the key becomes available again
func (g *Graph) Invalidate(key EdgeKey, reason string, base, now float64) float64 {
	until := g.backoff.Strike(key, reason, base, now)
	for _, e := range g.out[key.From] {
		if e.Key() == key {
			e.InvalidUntil = until
			e.FailReason = reason
		}
	}
	return until
}

// Apply adds injected edges, replacing any edge with the same key
// Returns the number of edges applied
func (g *Graph) Apply(p GraphPatch) int {
	applied := 0
	for _, add := range p.Add {
		if _, ok := g.nodes[add.From]; !ok {
			continue
		}
		if _, ok := g.nodes[add.To]; !ok {
			continue
		}
		e := add
		e.Injected = true
		g.inheritBackoff(&e)

		edges := g.out[e.From]
		if i := slices.IndexFunc(edges, func(x *Edge) bool { return x.Key() == e.Key() }); i >= 0 {
			edges[i] = &e
		} else {
			g.out[e.From] = append(edges, &e)
		}
		applied++
	}
	return applied
}

// InvalidateAll drops every edge and forces a rebuild on the next update
func (g *Graph) InvalidateAll() {
	clear(g.out)
	g.gate.Force()
}

// MarkDirty requests a rebuild at the next eligible tick
func (g *Graph) MarkDirty() { g.gate.MarkDirty() }

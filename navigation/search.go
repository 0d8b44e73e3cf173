package navigation

import (
	"math"
	"slices"

	"github.com/lixenwraith/ledgewalker/physics"
)

// SearchState is a graph node plus the jump resources available on arrival
type SearchState struct {
	Node       int
	JumpReady  bool
	AirJumps   int
	LatchReady bool
}

// Step is one transition of a path; a nil Edge is a settle on the same node
type Step struct {
	Edge   *Edge
	Before SearchState
	After  SearchState
}

// Path is the result of a successful search
type Path struct {
	Steps    []Step
	Nodes    []int
	Edges    []*Edge
	Cost     float64
	Expanded int
}

// Len returns the number of edge traversals, settles excluded
func (p *Path) Len() int { return len(p.Edges) }

// searchNode is an arena entry
type searchNode struct {
	state  SearchState
	g      float64
	parent int // -1 for start
	edge   *Edge
	closed bool
}

// StartState derives the search start from a pose
// fallback is used when the body is not standing on a graph node
func (g *Graph) StartState(pose physics.Pose, fallback int) SearchState {
	node := fallback
	if pose.Grounded {
		if _, ok := g.nodes[pose.GroundID]; ok {
			node = pose.GroundID
		}
	}
	return SearchState{
		Node:       node,
		JumpReady:  pose.Grounded || pose.CoyoteReady,
		AirJumps:   min(max(pose.AirJumps, 0), g.profile.MaxAir),
		LatchReady: pose.LatchReady,
	}
}

// heuristic estimates cost from a node to the goal, weighting climbs above descents
func (g *Graph) heuristic(node, goal int) float64 {
	a, ok1 := g.nodes[node]
	b, ok2 := g.nodes[goal]
	if !ok1 || !ok2 {
		return 0
	}
	st := g.tuning.Search
	dx := math.Abs(b.Rect.CenterX() - a.Rect.CenterX())
	climb := a.Rect.Top() - b.Rect.Top()
	if climb > 0 {
		return dx + st.HeuristicClimbWeight*climb
	}
	return dx - st.HeuristicDescentWeight*climb
}

// transition applies an edge to a state, reporting whether its requirements hold
func (g *Graph) transition(s SearchState, e *Edge) (SearchState, bool) {
	next := s
	next.Node = e.To
	if !e.NeedsJump {
		next.JumpReady = true
		return next, true
	}
	if !s.JumpReady || s.AirJumps < e.AirJumps || (e.NeedsLatch && !s.LatchReady) {
		return s, false
	}
	next.JumpReady = false
	next.AirJumps = s.AirJumps - e.AirJumps
	if e.NeedsLatch {
		next.LatchReady = false
	}
	return next, true
}

// FindPath runs A* over search states from start to any state on goal
// Edges in backoff at now are skipped; budget caps expansions, <= 0 uses the configured budget
func (g *Graph) FindPath(start SearchState, goal int, now float64, budget int) (*Path, bool) {
	if budget <= 0 {
		budget = g.tuning.Search.Budget
	}
	if _, ok := g.nodes[start.Node]; !ok {
		return nil, false
	}
	if _, ok := g.nodes[goal]; !ok {
		return nil, false
	}
	start.AirJumps = min(max(start.AirJumps, 0), g.profile.MaxAir)

	arena := []searchNode{{state: start, parent: -1}}
	index := map[SearchState]int{start: 0}
	open := make(minHeap, 0, 64)
	open.push(heapEntry{idx: 0, f: g.heuristic(start.Node, goal)})

	full := SearchState{JumpReady: true, AirJumps: g.profile.MaxAir, LatchReady: true}
	settle := g.tuning.Search.SettleCost

	relax := func(from int, next SearchState, cost float64, e *Edge) {
		ng := arena[from].g + cost
		if i, ok := index[next]; ok {
			if arena[i].closed || arena[i].g <= ng {
				return
			}
			arena[i].g, arena[i].parent, arena[i].edge = ng, from, e
			open.push(heapEntry{idx: i, f: ng + g.heuristic(next.Node, goal)})
			return
		}
		index[next] = len(arena)
		arena = append(arena, searchNode{state: next, g: ng, parent: from, edge: e})
		open.push(heapEntry{idx: len(arena) - 1, f: ng + g.heuristic(next.Node, goal)})
	}

	expanded := 0
	for len(open) > 0 {
		top := open.pop()
		cur := &arena[top.idx]
		if cur.closed {
			continue
		}
		cur.closed = true
		s := cur.state

		if s.Node == goal {
			return g.buildPath(arena, top.idx, expanded), true
		}
		if expanded >= budget {
			return nil, false
		}
		expanded++

		// Settle restores every resource in place
		rested := full
		rested.Node = s.Node
		if s != rested {
			relax(top.idx, rested, settle, nil)
		}

		for _, e := range g.out[s.Node] {
			if !e.Available(now) {
				continue
			}
			next, ok := g.transition(s, e)
			if !ok {
				continue
			}
			relax(top.idx, next, e.Cost, e)
		}
	}
	return nil, false
}

func (g *Graph) buildPath(arena []searchNode, last, expanded int) *Path {
	p := &Path{Cost: arena[last].g, Expanded: expanded}
	for i := last; arena[i].parent >= 0; i = arena[i].parent {
		n := arena[i]
		p.Steps = append(p.Steps, Step{Edge: n.edge, Before: arena[n.parent].state, After: n.state})
	}
	slices.Reverse(p.Steps)

	p.Nodes = append(p.Nodes, arena[0].state.Node)
	for _, st := range p.Steps {
		if st.Edge == nil {
			continue
		}
		p.Edges = append(p.Edges, st.Edge)
		p.Nodes = append(p.Nodes, st.Edge.To)
	}
	return p
}

// Reachable reports whether goal can be reached within a small expansion budget
// Returns the path cost when reachable
func (g *Graph) Reachable(start SearchState, goal int, now float64, budget int) (float64, bool) {
	if budget <= 0 {
		budget = g.tuning.Search.ReachBudget
	}
	p, ok := g.FindPath(start, goal, now, budget)
	if !ok {
		return 0, false
	}
	return p.Cost, true
}

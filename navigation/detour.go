package navigation

import (
	"math"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/vmath"
)

// Waypoint is an intermediate platform chosen to get around a blocked route
type Waypoint struct {
	Node int
	X, Y float64

	// Verified is set when both legs were pathable in the graph
	Verified bool
	Cost     float64
}

type detourKey struct {
	ground, target int
}

// DetourPlanner picks intermediate waypoints and remembers dead (ground, target) pairs
type DetourPlanner struct {
	search parameter.SearchTuning
	failed map[detourKey]float64
}

func NewDetourPlanner(t parameter.Tuning) *DetourPlanner {
	return &DetourPlanner{
		search: t.Search,
		failed: make(map[detourKey]float64),
	}
}

// Plan finds a waypoint near start that cuts the remaining cost to goal by at least DetourMinGain
func (d *DetourPlanner) Plan(g *Graph, start SearchState, goal int, now float64) (Waypoint, bool) {
	key := detourKey{ground: start.Node, target: goal}
	if until, ok := d.failed[key]; ok {
		if now < until {
			return Waypoint{}, false
		}
		delete(d.failed, key)
	}

	origin, ok := g.Node(start.Node)
	if !ok {
		return Waypoint{}, false
	}
	if _, ok := g.Node(goal); !ok {
		return Waypoint{}, false
	}

	st := d.search
	baseline, ok := g.Reachable(start, goal, now, st.DetourBudget)
	if !ok {
		baseline = g.heuristic(start.Node, goal)
	}

	var best Waypoint
	bestTotal, found := math.Inf(1), false
	for _, id := range g.ids {
		if id == start.Node || id == goal {
			continue
		}
		r := g.nodes[id].Rect
		if vmath.Dist(origin.CenterX(), origin.Top(), r.CenterX(), r.Top()) > st.DetourRadius {
			continue
		}

		leg1, ok := g.FindPath(start, id, now, st.DetourBudget)
		if !ok {
			continue
		}
		arrive := leg1.Steps[len(leg1.Steps)-1].After

		remaining, verified := g.Reachable(arrive, goal, now, st.DetourBudget)
		if !verified {
			remaining = g.heuristic(id, goal)
		}
		if baseline-remaining < st.DetourMinGain {
			continue
		}

		total := leg1.Cost + remaining
		better := !found ||
			(verified && !best.Verified) ||
			(verified == best.Verified && total < bestTotal)
		if better {
			best = Waypoint{Node: id, X: r.CenterX(), Y: r.Top(), Verified: verified, Cost: total}
			bestTotal, found = total, true
		}
	}

	if !found {
		d.failed[key] = now + st.DetourFailTTL
		return Waypoint{}, false
	}
	return best, true
}

// Forget clears remembered failures, used when the world changes under the planner
func (d *DetourPlanner) Forget() {
	clear(d.failed)
}

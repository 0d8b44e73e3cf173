package navigation

import (
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// LocalSolver synthesizes a single maneuver from the current platform when the graph offers nothing useful
type LocalSolver struct {
	search parameter.SearchTuning
}

func NewLocalSolver(t parameter.Tuning) *LocalSolver {
	return &LocalSolver{search: t.Search}
}

// Solve samples one-hop maneuvers from groundID to nearby platforms with relaxed sampling
// The best scoring candidate that makes progress toward goal is returned as a patch
func (s *LocalSolver) Solve(w world.World, g *Graph, groundID, goal int, now float64) (GraphPatch, bool) {
	from, ok := g.Node(groundID)
	if !ok {
		return GraphPatch{}, false
	}
	target, ok := g.Node(goal)
	if !ok {
		return GraphPatch{}, false
	}

	st := s.search
	gx, gy := target.CenterX(), target.Top()
	startDist := vmath.Dist(from.CenterX(), from.Top(), gx, gy)
	goalAbove := target.Top() < from.Top()

	radius := vmath.CenteredAABB(from.CenterX(), from.Top(), st.SolverRadius, st.SolverRadius)
	window := g.reachWindow(from).Union(radius).Expand(2*g.profile.HalfW, 2*g.profile.HalfH)
	near := w.Query(window)

	var best Edge
	bestScore, found := 0.0, false
	for _, cand := range near {
		if cand.ID == groundID {
			continue
		}
		if _, ok := g.nodes[cand.ID]; !ok {
			continue
		}
		if vmath.Dist(from.CenterX(), from.Top(), cand.CenterX(), cand.Top()) > st.SolverRadius {
			continue
		}
		progress := startDist - vmath.Dist(cand.CenterX(), cand.Top(), gx, gy)
		if progress <= 0 && cand.ID != goal {
			continue
		}

		e, ok := g.sampler.Build(from, cand, near, true)
		if !ok {
			continue
		}
		if until, _, struck := g.backoff.Until(e.Key()); struck && until > now {
			continue
		}

		score := st.SolverWidthWeight*e.Landing.Width() - e.Cost + st.SolverProgressWeight*progress
		if goalAbove {
			score += st.SolverVerticalBonus * max(from.Top()-cand.Top(), 0)
		}
		if !found || score > bestScore {
			best, bestScore, found = e, score, true
		}
	}
	if !found {
		return GraphPatch{}, false
	}
	return GraphPatch{Add: []Edge{best}, Note: "local-solver"}, true
}

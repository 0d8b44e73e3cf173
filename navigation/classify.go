package navigation

import (
	"math"

	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/world"
)

var (
	jumpSpeeds  = []float64{1.0, 0.6, 0}
	walkSpeeds  = []float64{0.5}
	dropSpeeds  = []float64{0.5, 1.0}
	standSpeeds = []float64{0}

	// Short-hop gauge added by relaxed sampling
	relaxedGauge = 0.45
)

// classify picks the maneuver for a platform pair by height delta and horizontal gap
// Returns false when the destination is above the jump envelope
func (s *Sampler) classify(from, to world.Rect, near []world.Rect) (Action, float64, bool) {
	g := s.graph
	dy := to.Top() - from.Top()
	gap := from.HorizontalGap(to)

	switch {
	case math.Abs(dy) <= g.WalkMaxStep:
		if gap <= g.WalkMaxGap {
			return ActionWalk, 0, true
		}
		return ActionJumpGap, 0, true

	case dy > 0:
		if from.OneWay() && overlapsX(from, to) {
			return ActionDropThrough, 0, true
		}
		if gap <= g.DropCloseGap {
			return ActionDropEdge, 0, true
		}
		return ActionJumpDown, 0, true
	}

	rise := -dy
	if rise > s.profile.MaxRise(s.profile.MaxAir) {
		return 0, 0, false
	}
	if wallX, ok := s.wallAssist(from, to, near); ok {
		return ActionWallJump, wallX, true
	}
	return ActionJumpHigh, 0, true
}

// wallAssist finds a wall-like rect beside a higher destination and returns its near face
func (s *Sampler) wallAssist(from, to world.Rect, near []world.Rect) (float64, bool) {
	g := s.graph
	best, found := math.Inf(1), false
	var wallX float64
	for _, r := range near {
		if r.ID == from.ID || r.ID == to.ID || !r.WallLike(g.WallLikeMaxWidth, g.WallLikeMinHeight) {
			continue
		}
		// Wall must span the climb between the two tops
		if r.Top() > from.Top() || r.Bottom() < to.Top() {
			continue
		}
		d := to.HorizontalGap(r)
		if d > g.WallProximity {
			continue
		}
		if d < best {
			best, found = d, true
			if r.CenterX() > from.CenterX() {
				wallX = r.Left()
			} else {
				wallX = r.Right()
			}
		}
	}
	return wallX, found
}

func overlapsX(a, b world.Rect) bool {
	return a.Left() < b.Right() && b.Left() < a.Right()
}

// airRange returns the air-jump counts tried for an action, fewest first
func (s *Sampler) airRange(a Action, from, to world.Rect) (int, int) {
	maxAir := s.profile.MaxAir
	switch a {
	case ActionWalk, ActionDropEdge, ActionDropThrough:
		return 0, 0
	case ActionJumpDown:
		return 0, min(1, maxAir)
	case ActionJumpHigh:
		rise := from.Top() - to.Top()
		n := 0
		for n < maxAir && s.profile.MaxRise(n) < rise {
			n++
		}
		return n, maxAir
	}
	return 0, maxAir
}

func speedsFor(a Action) []float64 {
	switch a {
	case ActionWalk:
		return walkSpeeds
	case ActionDropEdge:
		return dropSpeeds
	case ActionDropThrough:
		return standSpeeds
	}
	return jumpSpeeds
}

// fallbackAction is the generic jump tried when the classified policy yields nothing
func (s *Sampler) fallbackAction(from, to world.Rect) Action {
	dy := to.Top() - from.Top()
	switch {
	case dy < -s.graph.WalkMaxStep:
		return ActionJumpHigh
	case dy > s.graph.WalkMaxStep:
		return ActionJumpDown
	}
	return ActionJumpGap
}

// Build validates a maneuver from one platform to another by simulation
// near holds every rect the trajectory may touch; relaxed widens the sampling
func (s *Sampler) Build(from, to world.Rect, near []world.Rect, relaxed bool) (Edge, bool) {
	if from.ID == to.ID {
		return Edge{}, false
	}
	action, wallX, ok := s.classify(from, to, near)
	if !ok {
		return Edge{}, false
	}

	solids := physics.RectSet(near)
	samples := s.graph.TakeoffSamples
	gauges := []float64{0}
	if relaxed {
		samples *= 2
		gauges = append(gauges, relaxedGauge)
	}
	xs := takeoffPositions(from, samples)

	if e, ok := s.tryAction(action, wallX, from, to, solids, xs, gauges); ok {
		return e, true
	}

	// Generic jump with the full air-jump range
	fb := s.fallbackAction(from, to)
	if fb == action {
		return Edge{}, false
	}
	for air := 0; air <= s.profile.MaxAir; air++ {
		if e, ok := s.tryVariants(fb, air, 0, from, to, solids, xs, gauges); ok {
			return e, true
		}
	}
	return Edge{}, false
}

func (s *Sampler) tryAction(a Action, wallX float64, from, to world.Rect, solids physics.RectSet, xs, gauges []float64) (Edge, bool) {
	lo, hi := s.airRange(a, from, to)
	for air := lo; air <= hi; air++ {
		if e, ok := s.tryVariants(a, air, wallX, from, to, solids, xs, gauges); ok {
			return e, true
		}
	}
	return Edge{}, false
}

// tryVariants sweeps speeds and gauges at a fixed air-jump count, keeping the widest run
func (s *Sampler) tryVariants(a Action, air int, wallX float64, from, to world.Rect, solids physics.RectSet, xs, gauges []float64) (Edge, bool) {
	var best Edge
	var bestRun []sample
	for _, frac := range speedsFor(a) {
		for _, gauge := range gauges {
			if gauge > 0 && !a.IsJump() {
				continue
			}
			v := variant{action: a, air: air, speed: frac * s.profile.RunSpeed, gauge: gauge}
			e, run := s.sweep(v, wallX, from, to, solids, xs)
			if len(run) > len(bestRun) {
				best, bestRun = e, run
			}
		}
	}
	if len(bestRun) == 0 {
		return Edge{}, false
	}

	spacing := 0.0
	if len(xs) > 1 {
		spacing = xs[1] - xs[0]
	}
	if spacing > 0 {
		bestRun = s.refine(best, bestRun, spacing, from, to, solids)
	}
	best.Takeoff, best.Landing = s.bands(bestRun, from, to)
	best.Cost = s.cost(best, to)
	return best, true
}

// cost prices an edge by band distance, action, landing shape, band tightness and air jumps
func (s *Sampler) cost(e Edge, to world.Rect) float64 {
	g := s.graph
	c := math.Hypot(e.Landing.Center()-e.Takeoff.Center(), e.Landing.Y-e.Takeoff.Y)

	switch e.Action {
	case ActionWalk:
		c += g.CostWalk
	case ActionDropEdge:
		c += g.CostDropEdge
	case ActionDropThrough:
		c += g.CostDropThrough
	case ActionJumpGap:
		c += g.CostJumpGap
	case ActionJumpHigh:
		c += g.CostJumpHigh
	case ActionJumpDown:
		c += g.CostJumpDown
	case ActionWallJump:
		c += g.CostWallJump
	}

	if to.W < g.NarrowLandingWidth {
		c += g.NarrowLandingPenalty * (1 - to.W/g.NarrowLandingWidth)
	}
	if to.H > to.W {
		c += g.PillarPenalty
	}
	for _, b := range [2]Band{e.Takeoff, e.Landing} {
		if w := b.Width(); w < g.TightBandWidth {
			c += g.TightBandPenalty * (1 - w/g.TightBandWidth)
		}
	}
	c += g.AirJumpCost * float64(e.AirJumps)
	return c
}

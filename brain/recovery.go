package brain

import (
	bt "github.com/joeycumines/go-behaviortree"

	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/telemetry"
	"github.com/lixenwraith/ledgewalker/vmath"
)

// Rung is the step of the escalation ladder that produced a new plan
type Rung uint8

const (
	RungNone Rung = iota
	RungReplan
	RungBreadcrumb
	RungRelaxed
	RungDetour
	RungSolver
	RungRelease
)

var rungNames = [...]string{"none", "replan", "breadcrumb", "relaxed", "detour", "local-solver", "release"}

func (r Rung) String() string {
	if int(r) < len(rungNames) {
		return rungNames[r]
	}
	return "unknown"
}

// attempt is the blackboard shared by ladder leaves for one recovery
type attempt struct {
	start  navigation.SearchState
	goal   int
	failed navigation.EdgeKey
	rung   Rung
}

// ladder is a behavior tree selector: the first rung that produces a plan wins
type ladder struct {
	b    *Brain
	root bt.Node
	a    attempt
}

func newLadder(b *Brain) *ladder {
	l := &ladder{b: b}
	l.root = bt.New(
		bt.Selector,
		l.rung(RungReplan, l.replan),
		l.rung(RungBreadcrumb, l.breadcrumb),
		l.rung(RungRelaxed, l.relaxed),
		bt.New(
			bt.Selector,
			l.rung(RungDetour, l.detour),
			l.rung(RungSolver, l.solve),
		),
		l.rung(RungRelease, l.release),
	)
	return l
}

// rung wraps a plan attempt as a leaf that succeeds when the attempt produced a plan
func (l *ladder) rung(r Rung, try func() bool) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if !try() {
			return bt.Failure, nil
		}
		l.a.rung = r
		return bt.Success, nil
	})
}

// recover invalidates the active edge and climbs the ladder until a rung yields a plan
func (b *Brain) recover(pose physics.Pose, reason string) Rung {
	in := &b.intent
	failed := navigation.EdgeKey{}
	if in.HasActive {
		failed = in.Active.Key()
	}
	b.invalidateActive(reason)

	in.Via = 0
	in.ClearPlan()
	l := b.ladder
	l.a = attempt{start: b.startState(pose), goal: in.Target.Node, failed: failed}

	status, err := l.root.Tick()
	if err != nil || status != bt.Success {
		l.release()
		l.a.rung = RungRelease
	}
	b.emit(telemetry.Event{Kind: telemetry.KindRecovery, Reason: l.a.rung.String(), Count: int(l.a.rung)})
	return l.a.rung
}

// invalidateActive strikes the active edge with the failure reason
func (b *Brain) invalidateActive(reason string) {
	in := &b.intent
	if !in.HasActive {
		return
	}
	key := in.Active.Key()
	until := b.graph.Invalidate(key, reason, b.cfg.EdgeFailDuration, b.now)
	b.emit(telemetry.Event{
		Kind:   telemetry.KindEdgeInvalidated,
		Reason: reason,
		Value:  until - b.now,
		Count:  b.graph.Backoff().Strikes(key),
	})
	in.Active = navigation.Edge{}
	in.HasActive = false
}

func (l *ladder) exclude() []navigation.EdgeKey {
	if l.a.failed == (navigation.EdgeKey{}) {
		return nil
	}
	return []navigation.EdgeKey{l.a.failed}
}

// adopt installs a plan and returns to align
func (l *ladder) adopt(p *navigation.Path, via int) {
	in := &l.b.intent
	in.Path = p
	in.Step = 0
	in.Via = via
	l.b.setState(alignState{})
}

// --- Rungs ---

func (l *ladder) replan() bool {
	b := l.b
	p, ok := b.graph.FindPath(l.a.start, l.a.goal, b.now, 0)
	if !ok {
		return false
	}
	l.adopt(p, 0)
	return true
}

// breadcrumb rewinds to the most recent platform from which the goal is still pathable
func (l *ladder) breadcrumb() bool {
	b := l.b
	in := &b.intent
	maxAir := b.graph.Profile().MaxAir
	for i := len(in.Breadcrumbs) - 1; i >= 0; i-- {
		crumb := in.Breadcrumbs[i]
		if crumb == l.a.start.Node || crumb == l.a.goal {
			continue
		}
		fresh := navigation.SearchState{Node: crumb, JumpReady: true, AirJumps: maxAir, LatchReady: true}
		if _, ok := b.graph.Reachable(fresh, l.a.goal, b.now, 0); !ok {
			continue
		}
		p, ok := l.relaxedPath(l.a.start.Node, crumb)
		if !ok {
			continue
		}
		in.Breadcrumbs = in.Breadcrumbs[:i]
		l.adopt(p, crumb)
		return true
	}
	return false
}

func (l *ladder) relaxed() bool {
	p, ok := l.relaxedPath(l.a.start.Node, l.a.goal)
	if !ok {
		return false
	}
	l.adopt(p, 0)
	return true
}

// relaxedPath routes ignoring backoff and resources, excluding only the failed edge
func (l *ladder) relaxedPath(from, to int) (*navigation.Path, bool) {
	g := l.b.graph
	route, cost, ok := g.RelaxedPath(from, to, l.exclude())
	if !ok || len(route) < 2 {
		return nil, false
	}
	edges := g.RelaxedEdges(route, l.exclude())
	if len(edges) != len(route)-1 {
		return nil, false
	}
	p := &navigation.Path{Nodes: route, Edges: edges, Cost: cost}
	for _, e := range edges {
		p.Steps = append(p.Steps, navigation.Step{Edge: e})
	}
	return p, true
}

func (l *ladder) detour() bool {
	b := l.b
	wp, ok := b.detour.Plan(b.graph, l.a.start, l.a.goal, b.now)
	if !ok {
		return false
	}
	p, ok := b.graph.FindPath(l.a.start, wp.Node, b.now, 0)
	if !ok {
		return false
	}
	reason := "detour"
	if !wp.Verified {
		reason = "detour-heuristic"
	}
	b.emit(telemetry.Event{Kind: telemetry.KindReroute, Reason: reason, Value: wp.Cost, Count: wp.Node, X: wp.X, Y: wp.Y})
	l.adopt(p, wp.Node)
	return true
}

func (l *ladder) solve() bool {
	b := l.b
	patch, ok := b.solver.Solve(b.world, b.graph, l.a.start.Node, l.a.goal, b.now)
	if !ok || b.graph.Apply(patch) == 0 {
		return false
	}
	hop := patch.Add[0]
	b.emit(telemetry.Event{Kind: telemetry.KindReroute, Reason: patch.Note, Value: hop.Cost, Count: hop.To})

	if p, ok := b.graph.FindPath(l.a.start, l.a.goal, b.now, 0); ok {
		l.adopt(p, 0)
		return true
	}
	p, ok := b.graph.FindPath(l.a.start, hop.To, b.now, 0)
	if !ok {
		return false
	}
	via := hop.To
	if via == l.a.goal {
		via = 0
	}
	l.adopt(p, via)
	return true
}

// release gives up the lock, penalizes the target and idles
func (l *ladder) release() bool {
	b := l.b
	in := &b.intent
	in.Penalize(in.Target.Node, b.cfg.TargetPenaltyStep)
	in.Release()
	b.setState(idleState{remaining: b.rng.Range(b.cfg.IdleCooldownMin, b.cfg.IdleCooldownMax)})
	return true
}

// --- Hard fallback ---

// hardFallback breaks a recurring failure: escape platform, then free-space coordinate, then idle
func (b *Brain) hardFallback(pose physics.Pose, recurrences int) {
	in := &b.intent
	in.Penalize(in.Target.Node, b.cfg.TargetPenaltyStep)
	b.loops.Reset()
	b.mover.Reset()

	if id, ok := b.escapePlatform(pose); ok {
		r, _ := b.graph.Node(id)
		in.Release()
		in.SetTarget(Target{Node: id, X: r.CenterX(), Y: r.Top()})
		b.progress.Reset()
		b.stall.reset()
		b.emit(telemetry.Event{Kind: telemetry.KindLoopFallback, Reason: "escape", Count: recurrences, Target: id})
		return
	}
	if x, y, ok := b.freeSpace(pose); ok {
		in.Release()
		in.SetTarget(Target{X: x, Y: y, Coordinate: true})
		b.progress.Reset()
		b.stall.reset()
		b.emit(telemetry.Event{Kind: telemetry.KindLoopFallback, Reason: "free-space", Count: recurrences, X: x, Y: y})
		return
	}

	in.Release()
	cooldown := b.rng.Range(b.cfg.IdleCooldownMin, b.cfg.IdleCooldownMax)
	b.setState(idleState{remaining: cooldown})
	b.emit(telemetry.Event{Kind: telemetry.KindLoopFallback, Reason: "idle", Count: recurrences, Value: cooldown})
}

// escapePlatform picks a reachable platform far from here, favoring unvisited and isolated ones
func (b *Brain) escapePlatform(pose physics.Pose) (int, bool) {
	start := b.startState(pose)
	skip := b.intent.Target.Node
	best, bestScore := 0, 0.0
	for _, id := range b.graph.Nodes() {
		if id == start.Node || id == skip {
			continue
		}
		r, _ := b.graph.Node(id)
		dist := vmath.Dist(pose.X, pose.Feet(), r.CenterX(), r.Top())
		if dist < b.cfg.EscapeMinDistance {
			continue
		}
		if _, ok := b.graph.Reachable(start, id, b.now, 0); !ok {
			continue
		}
		score := dist / b.cfg.EscapeMinDistance
		if b.targets.Visits(id) == 0 {
			score += 2
		}
		score += b.isolation(r.CenterX(), r.Top()) / b.cfg.EscapeMinDistance
		if best == 0 || score > bestScore {
			best, bestScore = id, score
		}
	}
	return best, best != 0
}

// isolation is the distance from a point to the nearest visited platform
func (b *Brain) isolation(x, y float64) float64 {
	nearest := 0.0
	found := false
	for _, id := range b.graph.Nodes() {
		if b.targets.Visits(id) == 0 {
			continue
		}
		r, _ := b.graph.Node(id)
		d := vmath.Dist(x, y, r.CenterX(), r.Top())
		if !found || d < nearest {
			nearest, found = d, true
		}
	}
	if !found {
		return b.cfg.EscapeMinDistance
	}
	return nearest
}

// freeSpace samples a random body-sized empty spot at least EscapeMinDistance away
func (b *Brain) freeSpace(pose physics.Pose) (float64, float64, bool) {
	bounds := b.world.Bounds()
	hw, hh := pose.HalfW, pose.HalfH
	if bounds.Width() <= 2*hw || bounds.Height() <= 2*hh {
		return 0, 0, false
	}
	for _i := 0; _i < b.cfg.FreeSpaceAttempts; _i++ {
		x := b.rng.Range(bounds.MinX+hw, bounds.MaxX-hw)
		y := b.rng.Range(bounds.MinY+hh, bounds.MaxY-hh)
		if vmath.Dist(pose.X, pose.Y, x, y) < b.cfg.EscapeMinDistance {
			continue
		}
		free := true
		for _, r := range b.world.Query(vmath.CenteredAABB(x, y, hw, hh)) {
			if r.Solid() {
				free = false
				break
			}
		}
		if free {
			return x, y + hh, true
		}
	}
	return 0, 0, false
}

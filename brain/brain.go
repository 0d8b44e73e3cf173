package brain

import (
	"math"

	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/telemetry"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Brain is the decision loop turning poses into control input one tick at a time
// All state lives here or in the graph it owns; nothing blocks and nothing runs in the background
type Brain struct {
	tun parameter.Tuning
	cfg parameter.BrainTuning

	world  world.World
	graph  *navigation.Graph
	solver *navigation.LocalSolver
	detour *navigation.DetourPlanner
	sink   telemetry.Sink
	rng    *vmath.FastRand

	targets  *TargetSelector
	progress ProgressTracker
	stall    stagnation
	loops    *LoopGuard
	drift    *DriftDetector
	mover    *Locomotor
	ladder   *ladder

	intent    NavigationIntent
	now       float64
	ticks     int
	ground    int // Last graph node stood on
	pose      physics.Pose
	rescoreAt float64
}

// New creates a brain over w and builds the initial maneuver graph
func New(t parameter.Tuning, w world.World, sink telemetry.Sink, seed uint64) *Brain {
	if sink == nil {
		sink = telemetry.Discard
	}
	rng := vmath.NewFastRand(seed)
	b := &Brain{
		tun:      t,
		cfg:      t.Brain,
		world:    w,
		graph:    navigation.NewGraph(t),
		solver:   navigation.NewLocalSolver(t),
		detour:   navigation.NewDetourPlanner(t),
		sink:     sink,
		rng:      rng,
		targets:  NewTargetSelector(t.Brain, rng),
		progress: NewProgressTracker(t.Brain.ProgressEpsilon, t.Brain.ProgressFlatTicks),
		loops:    NewLoopGuard(t.Brain.LoopWindow, t.Brain.LoopThreshold),
		drift:    NewDriftDetector(t.World),
		mover:    NewLocomotor(t),
		intent:   newIntent(),
	}
	b.ladder = newLadder(b)
	b.drift.Rebase(w)
	if b.graph.Update(w, 0) {
		b.emit(telemetry.Event{Kind: telemetry.KindGraphRebuild, Count: b.graph.EdgeCount(), Value: float64(len(b.graph.Nodes()))})
	}
	return b
}

// --- Accessors ---

func (b *Brain) Graph() *navigation.Graph { return b.graph }
func (b *Brain) Now() float64             { return b.now }
func (b *Brain) Ticks() int               { return b.ticks }
func (b *Brain) Phase() Phase             { return b.intent.State.Phase() }

// Intent returns a snapshot of the navigation intent
func (b *Brain) Intent() NavigationIntent { return b.intent }

// Behavior reports the locomotion sub-behavior used for off-graph steering
func (b *Brain) Behavior() Behavior { return b.mover.Behavior() }

// --- Tick ---

// Tick advances timers by dt and returns the control input for pose
func (b *Brain) Tick(dt float64, pose physics.Pose) physics.Input {
	b.now += dt
	b.ticks++
	b.pose = pose
	b.intent.DecayPenalties(b.cfg.TargetPenaltyDecay * dt)

	if b.drift.Observe(b.world, b.now) {
		b.onDrift()
	}
	if b.graph.Update(b.world, b.now) {
		b.onRebuild()
	}
	b.checkReferences()

	if pose.Grounded {
		if id, ok := b.groundNode(pose); ok {
			b.ground = id
		}
	}

	in := &b.intent
	if !in.HasTarget {
		return b.tickIdle(dt, pose)
	}
	if b.reached(pose) {
		b.arrive()
		return physics.Input{}
	}
	if b.watchProgress(dt, pose) {
		return physics.Input{}
	}
	if !in.HasTarget {
		return physics.Input{}
	}
	if b.rescoreDue(pose) && b.rescore(pose) {
		return physics.Input{}
	}
	if in.Target.Coordinate {
		tx, ty := b.targetPoint()
		return b.mover.Steer(b.world, pose, tx, ty)
	}
	return b.navigate(dt, pose)
}

func (b *Brain) setState(s navState) {
	if b.intent.State == nil || b.intent.State.Phase() != s.Phase() {
		b.stall.stateChanged()
	}
	b.intent.State = s
}

// groundNode resolves the graph node under a grounded pose
func (b *Brain) groundNode(pose physics.Pose) (int, bool) {
	if !pose.Grounded {
		return 0, false
	}
	if _, ok := b.graph.Node(pose.GroundID); ok {
		return pose.GroundID, true
	}
	return b.graph.NodeAt(pose.X, pose.Feet(), 2)
}

func (b *Brain) startState(pose physics.Pose) navigation.SearchState {
	fallback := b.ground
	if _, ok := b.graph.Node(fallback); !ok {
		fallback, _ = b.graph.Nearest(pose.X, pose.Feet())
	}
	s := b.graph.StartState(pose, fallback)
	if id, ok := b.groundNode(pose); ok {
		s.Node = id
	}
	return s
}

// targetPoint returns the target as a feet position
func (b *Brain) targetPoint() (float64, float64) {
	t := b.intent.Target
	if !t.Coordinate && !t.Manual {
		if r, ok := b.graph.Node(t.Node); ok {
			return r.CenterX(), r.Top()
		}
	}
	return t.X, t.Y
}

// --- Lifecycle ---

// OnRespawn resets the intent wholesale after the body was put back at spawn
func (b *Brain) OnRespawn() {
	b.emit(telemetry.Event{Kind: telemetry.KindRespawn, Count: b.ticks})
	b.resetIntent()
}

func (b *Brain) resetIntent() {
	b.intent.Clear()
	b.progress.Reset()
	b.stall.reset()
	b.mover.Reset()
	b.loops.Reset()
}

func (b *Brain) onDrift() {
	b.emit(telemetry.Event{Kind: telemetry.KindWorldDrift, Count: int(b.world.Revision()), Reason: "checksum"})
	b.graph.InvalidateAll()
	b.detour.Forget()
	b.intent.ClearPlan()
	if b.intent.HasTarget {
		b.setState(alignState{})
	}
}

func (b *Brain) onRebuild() {
	b.emit(telemetry.Event{Kind: telemetry.KindGraphRebuild, Count: b.graph.EdgeCount(), Value: float64(len(b.graph.Nodes()))})
	if _, committed := b.intent.State.(*commitState); committed {
		return
	}
	b.intent.ClearPlan()
	if b.intent.HasTarget {
		b.setState(alignState{})
	}
}

// checkReferences releases targets whose platforms vanished from the world
func (b *Brain) checkReferences() {
	in := &b.intent
	if in.Via != 0 {
		if _, ok := b.world.Lookup(in.Via); !ok {
			in.Via = 0
			in.ClearPlan()
			b.setState(alignState{})
		}
	}
	if !in.HasTarget || in.Target.Coordinate {
		return
	}
	if _, ok := b.world.Lookup(in.Target.Node); ok {
		return
	}
	b.emit(telemetry.Event{Kind: telemetry.KindRecovery, Reason: "lost-reference"})
	in.Release()
	b.setState(idleState{})
}

// --- Target selection and arrival ---

func (b *Brain) tickIdle(dt float64, pose physics.Pose) physics.Input {
	st, ok := b.intent.State.(idleState)
	if !ok {
		st = idleState{}
	}
	st.remaining -= dt
	b.intent.State = st
	if st.remaining > 0 || !pose.Grounded {
		return physics.Input{}
	}
	b.pickTarget(pose)
	return physics.Input{}
}

func (b *Brain) pickTarget(pose physics.Pose) bool {
	in := &b.intent
	ctx := pickContext{
		graph:     b.graph,
		world:     b.world,
		pose:      pose,
		start:     b.startState(pose),
		hold:      in.Locked,
		penalties: in.Penalties,
		now:       b.now,
	}
	choice, ok := b.targets.Pick(ctx)
	if !ok {
		b.setState(idleState{remaining: b.rng.Range(b.cfg.IdleCooldownMin, b.cfg.IdleCooldownMax)})
		return false
	}

	r, _ := b.graph.Node(choice.Node)
	in.SetTarget(Target{Node: choice.Node, X: r.CenterX(), Y: r.Top()})
	b.stall.reset()
	b.progress.Reset()
	b.rescoreAt = b.now + b.cfg.TargetRescoreInterval
	mode := "near"
	if choice.PreferFar {
		mode = "far"
	}
	b.emit(telemetry.Event{Kind: telemetry.KindTargetPick, Value: choice.Score, Count: choice.Pool, Reason: mode})
	return true
}

// rescoreDue reports whether the held target should be weighed against the field again
// Only selector targets on the ground before takeoff are rescored
func (b *Brain) rescoreDue(pose physics.Pose) bool {
	in := &b.intent
	if b.now < b.rescoreAt || !pose.Grounded {
		return false
	}
	if in.Target.Manual || in.Target.Coordinate || in.Via != 0 || in.Locked == 0 {
		return false
	}
	switch in.State.Phase() {
	case PhaseAlign, PhaseApproach:
		return true
	}
	return false
}

// rescore scores the field with hysteresis on the locked target and switches when another wins
func (b *Brain) rescore(pose physics.Pose) bool {
	in := &b.intent
	b.rescoreAt = b.now + b.cfg.TargetRescoreInterval
	ctx := pickContext{
		graph:     b.graph,
		world:     b.world,
		pose:      pose,
		start:     b.startState(pose),
		hold:      in.Locked,
		penalties: in.Penalties,
		now:       b.now,
	}
	best, ok := b.targets.Best(ctx)
	if !ok || best.Node == in.Locked {
		return false
	}

	r, _ := b.graph.Node(best.Node)
	in.SetTarget(Target{Node: best.Node, X: r.CenterX(), Y: r.Top()})
	b.stall.reset()
	b.progress.Reset()
	b.emit(telemetry.Event{Kind: telemetry.KindTargetPick, Value: best.Score, Count: 1, Reason: "rescore"})
	return true
}

// reached reports arrival on a platform target or within tolerance of a coordinate
func (b *Brain) reached(pose physics.Pose) bool {
	t := b.intent.Target
	if !pose.Grounded {
		return false
	}
	if t.Coordinate {
		return math.Abs(pose.X-t.X) <= b.cfg.ArriveTolerance
	}
	id, ok := b.groundNode(pose)
	return ok && id == t.Node
}

func (b *Brain) arrive() {
	in := &b.intent
	b.emit(telemetry.Event{Kind: telemetry.KindTargetReached})
	if !in.Target.Coordinate {
		b.targets.Visit(in.Target.Node)
	}
	in.Release()
	b.setState(idleState{remaining: b.cfg.TargetArriveDwell})
	b.mover.Reset()
}

// --- Progress ---

// watchProgress runs the flat-plan and stagnation detectors, true when it replaced the plan
func (b *Brain) watchProgress(dt float64, pose physics.Pose) bool {
	in := &b.intent
	switch in.State.Phase() {
	case PhaseIdle, PhaseRecovery:
		return false
	}

	tx, ty := b.targetPoint()
	if b.progress.Observe(pose.X, pose.Feet(), tx, ty) {
		b.emit(telemetry.Event{Kind: telemetry.KindStagnation, Reason: "flat", Count: b.progress.Flat()})
		b.reselect()
		return true
	}

	gx, gy := tx, ty
	if in.HasActive {
		gx, gy = in.Active.Landing.Center(), in.Active.Landing.Y
	}
	b.stall.advance(dt, vmath.Dist(pose.X, pose.Feet(), gx, gy), b.cfg.ProgressEpsilon)

	if b.stall.sinceCloser >= b.cfg.StagnationDistanceTime {
		b.emit(telemetry.Event{Kind: telemetry.KindStagnation, Reason: "distance", Value: b.stall.sinceCloser})
		b.stall.goalChanged()
		b.fail(pose, "stagnation-distance")
		return true
	}
	if in.State.Phase() != PhaseCommit && b.stall.inState >= b.cfg.StagnationStateTime {
		b.emit(telemetry.Event{Kind: telemetry.KindStagnation, Reason: "state", Value: b.stall.inState})
		b.stall.stateChanged()
		b.fail(pose, "stagnation-state")
		return true
	}
	return false
}

// reselect abandons a flat target; manual targets are replanned instead
func (b *Brain) reselect() {
	in := &b.intent
	if in.Target.Manual {
		in.Via = 0
		in.ClearPlan()
		b.setState(alignState{})
		return
	}
	in.Penalize(in.Target.Node, b.cfg.TargetPenaltyStep)
	in.Release()
	b.setState(idleState{})
}

// --- Telemetry ---

func (b *Brain) emit(e telemetry.Event) {
	e.Time = b.now
	if e.Platform == 0 {
		e.Platform = b.ground
	}
	if e.Target == 0 {
		e.Target = b.intent.Target.Node
	}
	if e.X == 0 && e.Y == 0 {
		e.X, e.Y = b.pose.X, b.pose.Y
	}
	b.sink.Emit(e)
}

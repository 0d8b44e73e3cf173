package brain

import (
	"math"

	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/telemetry"
	"github.com/lixenwraith/ledgewalker/vmath"
)

// navigate advances the navigation sub-state machine for a platform target
func (b *Brain) navigate(dt float64, pose physics.Pose) physics.Input {
	in := &b.intent
	if st, ok := in.State.(*commitState); ok {
		return b.tickCommit(dt, pose, st)
	}
	if !pose.Grounded {
		// Off a maneuver in the air: drift toward the goal and realign on landing
		if in.State.Phase() != PhaseAlign {
			in.Active = navigation.Edge{}
			in.HasActive = false
			b.setState(alignState{})
		}
		return b.airSteer(pose)
	}

	switch st := in.State.(type) {
	case approachState:
		return b.tickApproach(dt, pose, st)
	case readyState:
		return b.tickReady(dt, pose, st)
	case recoveryState:
		b.recover(pose, st.reason)
		return physics.Input{}
	case idleState:
		st.remaining -= dt
		in.State = st
		if st.remaining <= 0 {
			b.setState(alignState{})
		}
		return physics.Input{}
	}
	return b.tickAlign(pose)
}

func (b *Brain) airSteer(pose physics.Pose) physics.Input {
	var out physics.Input
	tx, _ := b.targetPoint()
	if math.Abs(tx-pose.X) > b.cfg.ArriveTolerance {
		setDir(&out, int(vmath.Sign(tx-pose.X)))
	}
	return out
}

// --- Align ---

// tickAlign confirms the next maneuver from the plan, planning or rescuing when there is none
func (b *Brain) tickAlign(pose physics.Pose) physics.Input {
	in := &b.intent
	ground, ok := b.groundNode(pose)
	if !ok {
		// Standing off-graph, walk toward the target until a node is underfoot
		tx, ty := b.targetPoint()
		return b.mover.Steer(b.world, pose, tx, ty)
	}

	if in.Via != 0 && ground == in.Via {
		in.Via = 0
		in.ClearPlan()
	}

	e, ok := in.NextEdge()
	if !ok || e.From != ground {
		if !b.plan(pose) {
			b.fail(pose, "no-path")
			return physics.Input{}
		}
		if e, ok = in.NextEdge(); !ok {
			// Already on the goal, arrival is checked next tick
			return physics.Input{}
		}
	}

	in.Activate(e)
	b.stall.goalChanged()
	b.setState(approachState{backup: b.needsBackup(pose, e), backupFromX: pose.X})
	return physics.Input{}
}

// plan searches from the current state to the goal, falling back to a local-solver rescue
func (b *Brain) plan(pose physics.Pose) bool {
	in := &b.intent
	in.ClearPlan()
	start := b.startState(pose)
	goal := in.Goal()

	if path, ok := b.graph.FindPath(start, goal, b.now, 0); ok {
		in.Path = path
		return true
	}

	patch, ok := b.solver.Solve(b.world, b.graph, start.Node, goal, b.now)
	if !ok || b.graph.Apply(patch) == 0 {
		return false
	}
	b.emit(telemetry.Event{Kind: telemetry.KindReroute, Reason: patch.Note, Target: patch.Add[0].To, Value: patch.Add[0].Cost})
	if path, ok := b.graph.FindPath(start, goal, b.now, 0); ok {
		in.Path = path
		return true
	}
	if path, ok := b.graph.FindPath(start, patch.Add[0].To, b.now, 0); ok {
		in.Via = patch.Add[0].To
		in.Path = path
		return true
	}
	return false
}

// needsBackup reports a distance jump started too close to the band for its run-up
func (b *Brain) needsBackup(pose physics.Pose, e navigation.Edge) bool {
	if !e.NeedsJump || e.TakeoffSpeed < b.cfg.RunUpSpeedThreshold || e.Facing == 0 {
		return false
	}
	if !e.Takeoff.Contains(pose.X, b.cfg.BandTolerance) {
		return false
	}
	entry := e.Takeoff.MinX
	if e.Facing < 0 {
		entry = e.Takeoff.MaxX
	}
	room := float64(e.Facing) * (pose.X - entry)
	return room < b.graph.Profile().RunUp(b.cfg.ReadySpeedFraction*e.TakeoffSpeed)
}

// --- Approach ---

func (b *Brain) tickApproach(dt float64, pose physics.Pose, st approachState) physics.Input {
	in := &b.intent
	e := in.Active
	if id, ok := b.groundNode(pose); !ok || id != e.From {
		in.ClearPlan()
		b.setState(alignState{})
		return physics.Input{}
	}

	var out physics.Input
	if st.backup {
		st.backupElapsed += dt
		from, _ := b.graph.Node(e.From)
		back := -e.Facing
		limit := from.Left() + pose.HalfW + 2
		if back > 0 {
			limit = from.Right() - pose.HalfW - 2
		}
		done := math.Abs(pose.X-st.backupFromX) >= b.cfg.BackupDistance ||
			st.backupElapsed >= b.cfg.BackupTimeout ||
			float64(back)*(limit-pose.X) <= 0 ||
			blockedAhead(b.world, pose, back, pose.Head())
		if !done {
			setDir(&out, back)
			b.intent.State = st
			return out
		}
		st.backup = false
	}

	if b.stall.inState >= b.cfg.ApproachTimeout {
		b.fail(pose, "approach-timeout")
		return physics.Input{}
	}

	if e.Takeoff.Contains(pose.X, b.cfg.BandTolerance) {
		if e.NeedsJump {
			b.setState(readyState{})
			return b.holdFacing(pose, e)
		}
		return b.commit(pose)
	}

	dir := 1
	if pose.X > e.Takeoff.MaxX {
		dir = -1
	}
	setDir(&out, dir)
	b.intent.State = st
	return out
}

// holdFacing keeps running in the takeoff direction without jumping
func (b *Brain) holdFacing(pose physics.Pose, e navigation.Edge) physics.Input {
	var out physics.Input
	setDir(&out, e.Facing)
	return out
}

// --- Ready ---

func (b *Brain) tickReady(dt float64, pose physics.Pose, st readyState) physics.Input {
	e := b.intent.Active
	if !e.Takeoff.Contains(pose.X, b.cfg.BandTolerance) {
		b.setState(approachState{})
		return b.holdFacing(pose, e)
	}

	st.held += dt
	b.intent.State = st
	if b.takeoffGates(pose, e) || st.held >= b.cfg.ReadyPatience {
		return b.commit(pose)
	}
	return b.holdFacing(pose, e)
}

// takeoffGates checks speed, facing, headroom and sight before a jump
func (b *Brain) takeoffGates(pose physics.Pose, e navigation.Edge) bool {
	if e.Facing != 0 {
		if pose.Facing != e.Facing {
			return false
		}
		if float64(e.Facing)*pose.VX < b.cfg.ReadySpeedFraction*e.TakeoffSpeed {
			return false
		}
	}
	head := vmath.AABB{
		MinX: pose.X - pose.HalfW + 1,
		MaxX: pose.X + pose.HalfW - 1,
		MinY: pose.Head() - b.tun.Graph.HeadClearance,
		MaxY: pose.Head() - 1,
	}
	for _, r := range b.world.Query(head) {
		if r.Solid() {
			return false
		}
	}
	return b.world.LineOfSight(pose.X, pose.Head(), e.Landing.Center(), e.Landing.Y-2*pose.HalfH)
}

// --- Commit ---

func (b *Brain) commit(pose physics.Pose) physics.Input {
	e := b.intent.Active
	from, ok1 := b.graph.Node(e.From)
	to, ok2 := b.graph.Node(e.To)
	if !ok1 || !ok2 {
		b.intent.ClearPlan()
		b.setState(alignState{})
		return physics.Input{}
	}
	st := &commitState{
		pilot: navigation.NewPilot(e, from, to, b.graph.Profile(), b.tun.Graph.SafeMargin),
		from:  from,
		to:    to,
	}
	b.setState(st)
	return st.pilot.Step(pose)
}

func (b *Brain) tickCommit(dt float64, pose physics.Pose, st *commitState) physics.Input {
	in := &b.intent
	e := in.Active
	st.elapsed += dt
	if !pose.Grounded {
		st.left = true
	}

	if pose.Grounded {
		id, _ := b.groundNode(pose)
		switch {
		case id == e.To:
			in.PushBreadcrumb(e.From, b.cfg.BreadcrumbDepth)
			in.Advance()
			b.stall.goalChanged()
			b.setState(alignState{})
			return physics.Input{}
		case id == e.From && st.left:
			b.fail(pose, navigation.ReasonFellBack)
			return physics.Input{}
		case id != e.From && (st.left || e.Action == navigation.ActionWalk):
			b.fail(pose, navigation.ReasonElsewhere)
			return physics.Input{}
		}
	}

	if st.elapsed >= b.cfg.CommitTimeout {
		b.fail(pose, navigation.ReasonTimeout)
		return physics.Input{}
	}
	return st.pilot.Step(pose)
}

// --- Failure ---

// fail records a loop signature and escalates through recovery or a hard fallback
func (b *Brain) fail(pose physics.Pose, reason string) {
	in := &b.intent
	in.LastFailure = reason

	sig := Signature{Platform: b.ground, Target: in.Target.Node, Phase: in.State.Phase(), Reason: reason}
	if in.HasActive {
		sig.Edge = in.Active.Key()
	}
	if n, loop := b.loops.Record(sig, b.now); loop {
		b.invalidateActive(reason)
		b.hardFallback(pose, n)
		return
	}

	b.setState(recoveryState{reason: reason})
	b.recover(pose, reason)
}

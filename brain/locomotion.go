package brain

import (
	"math"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Behavior names the locomotion sub-behavior chosen for a tick
type Behavior uint8

const (
	BehaviorWalk Behavior = iota
	BehaviorTicTac
	BehaviorShaftClimb
	BehaviorOverhead
	BehaviorCeilingEscape
	BehaviorCrouch
	BehaviorEdgeDrop
	BehaviorBreakout
	BehaviorHop
)

var behaviorNames = [...]string{"walk", "tic-tac", "shaft-climb", "overhead", "ceiling-escape", "crouch", "edge-drop", "breakout", "hop"}

func (b Behavior) String() string {
	if int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return "unknown"
}

const (
	// Vertical slack before a target counts as above or below
	levelSlack = 8.0

	// Look-ahead for obstacles in the travel direction
	probeAhead = 24.0
)

// Locomotor steers the body toward a point without the maneuver graph
// Used for coordinate targets and when the body stands off-graph
type Locomotor struct {
	tun    parameter.BrainTuning
	motion parameter.MotionTuning

	pressed  bool
	kickDir  int
	behavior Behavior
}

func NewLocomotor(t parameter.Tuning) *Locomotor {
	return &Locomotor{tun: t.Brain, motion: t.Motion}
}

// Behavior returns the sub-behavior of the last Steer call
func (l *Locomotor) Behavior() Behavior { return l.behavior }

// Reset clears edge-trigger and kick memory
func (l *Locomotor) Reset() {
	l.pressed = false
	l.kickDir = 0
	l.behavior = BehaviorWalk
}

// press sets jump on a rising edge only, the controller ignores held jumps
func (l *Locomotor) press(in *physics.Input, want bool) {
	in.Jump = want && !l.pressed
	l.pressed = in.Jump
}

// --- Probes ---

// walls measures free distance to the nearest solid on each side within corridor range
func (l *Locomotor) walls(w world.World, pose physics.Pose) (left, right float64) {
	left, right = math.Inf(1), math.Inf(1)
	reach := l.tun.CorridorMaxWidth
	box := vmath.AABB{
		MinX: pose.X - pose.HalfW - reach,
		MaxX: pose.X + pose.HalfW + reach,
		MinY: pose.Head() - l.tun.CorridorProbeHeight,
		MaxY: pose.Feet() - 1,
	}
	for _, r := range w.Query(box) {
		if !r.Solid() || r.Top() >= pose.Feet()-1 || r.Bottom() <= pose.Head() {
			continue
		}
		if d := pose.X - pose.HalfW - r.Right(); d >= -0.5 && d < left {
			left = max(d, 0)
		}
		if d := r.Left() - (pose.X + pose.HalfW); d >= -0.5 && d < right {
			right = max(d, 0)
		}
	}
	return left, right
}

// ceiling returns the lowest solid overhanging the head within CeilingProbe
func (l *Locomotor) ceiling(w world.World, pose physics.Pose) (world.Rect, bool) {
	box := vmath.AABB{
		MinX: pose.X - pose.HalfW,
		MaxX: pose.X + pose.HalfW,
		MinY: pose.Head() - l.tun.CeilingProbe,
		MaxY: pose.Head() - 0.5,
	}
	var best world.Rect
	found := false
	for _, r := range w.Query(box) {
		if !r.Solid() || r.Bottom() > pose.Head() {
			continue
		}
		if !found || r.Bottom() > best.Bottom() {
			best, found = r, true
		}
	}
	return best, found
}

// blockedAhead reports a solid in the travel direction across [top, feet)
func blockedAhead(w world.World, pose physics.Pose, dir int, top float64) bool {
	if dir == 0 {
		return false
	}
	x0 := pose.X + float64(dir)*pose.HalfW
	x1 := x0 + float64(dir)*probeAhead
	box := vmath.AABB{MinX: min(x0, x1), MaxX: max(x0, x1), MinY: top, MaxY: pose.Feet() - 1}
	for _, r := range w.Query(box) {
		if r.Solid() && r.Top() < pose.Feet()-1 && r.Bottom() > top {
			return true
		}
	}
	return false
}

// --- Steering ---

// Steer returns the input moving the body toward (tx, ty), ty is a feet height
func (l *Locomotor) Steer(w world.World, pose physics.Pose, tx, ty float64) physics.Input {
	var in physics.Input
	dx := tx - pose.X
	dir := int(vmath.Sign(dx))
	if math.Abs(dx) <= l.tun.ArriveTolerance/2 {
		dir = 0
	}
	above := ty < pose.Feet()-levelSlack
	below := ty > pose.Feet()+levelSlack
	left, right := l.walls(w, pose)

	switch {
	case above && math.Abs(dx) <= l.tun.OverheadLockRadius:
		if c, ok := l.ceiling(w, pose); ok {
			l.ceilingEscape(&in, pose, c, tx)
		} else {
			l.overhead(&in, pose)
		}

	case above && !math.IsInf(left, 1) && !math.IsInf(right, 1) &&
		left+right+2*pose.HalfW <= l.tun.CorridorMaxWidth:
		l.ticTac(&in, pose, left, right, dir)

	case above && pose.WallSide != 0:
		l.shaftClimb(&in, pose, pose.WallSide)

	case dir != 0 && pose.Grounded && blockedAhead(w, pose, dir, pose.Feet()-2*pose.HalfH) &&
		!blockedAhead(w, pose, dir, pose.Feet()-2*l.motion.CrouchHalfHeight):
		l.behavior = BehaviorCrouch
		in.Down = true
		setDir(&in, dir)
		l.press(&in, false)

	case below && pose.Grounded:
		l.edgeDrop(&in, w, pose, tx)

	default:
		l.behavior = BehaviorWalk
		setDir(&in, dir)
		hop := pose.Grounded && dir != 0 && blockedAhead(w, pose, dir, pose.Feet()-2*pose.HalfH)
		if hop {
			l.behavior = BehaviorHop
		}
		l.press(&in, hop || (above && pose.Grounded))
	}
	return in
}

// overhead jumps straight up, chaining air jumps near apex
func (l *Locomotor) overhead(in *physics.Input, pose physics.Pose) {
	l.behavior = BehaviorOverhead
	if math.Abs(pose.VX) > 20 {
		setDir(in, -int(vmath.Sign(pose.VX)))
	}
	want := pose.Grounded || (pose.AirJumps > 0 && pose.VY > -parameter.AirJumpApexSpeed)
	l.press(in, want)
}

// ceilingEscape walks out from under a ceiling toward the end nearer the target
func (l *Locomotor) ceilingEscape(in *physics.Input, pose physics.Pose, c world.Rect, tx float64) {
	l.behavior = BehaviorCeilingEscape
	exitL := c.Left() - pose.HalfW - 2
	exitR := c.Right() + pose.HalfW + 2
	exit := exitR
	if math.Abs(tx-exitL)+math.Abs(pose.X-exitL) < math.Abs(tx-exitR)+math.Abs(pose.X-exitR) {
		exit = exitL
	}
	setDir(in, int(vmath.Sign(exit-pose.X)))
	l.press(in, false)
}

// ticTac kicks between two close walls to climb a corridor
func (l *Locomotor) ticTac(in *physics.Input, pose physics.Pose, left, right float64, dir int) {
	l.behavior = BehaviorTicTac
	switch {
	case pose.Grounded:
		l.kickDir = dir
		if l.kickDir == 0 {
			l.kickDir = 1
			if left < right {
				l.kickDir = -1
			}
		}
		setDir(in, l.kickDir)
		l.press(in, true)
	case pose.WallSide != 0 && pose.VY > -parameter.WallKickRiseSpeed:
		l.kickDir = -pose.WallSide
		setDir(in, l.kickDir)
		l.press(in, true)
	default:
		if l.kickDir == 0 {
			l.kickDir = 1
		}
		setDir(in, l.kickDir)
		l.press(in, false)
	}
}

// shaftClimb presses into a single wall, climbing where possible and kicking upward otherwise
func (l *Locomotor) shaftClimb(in *physics.Input, pose physics.Pose, side int) {
	l.behavior = BehaviorShaftClimb
	in.Up = true
	setDir(in, side)
	kick := !pose.Grounded && pose.State != physics.Climb && pose.VY > -parameter.WallKickRiseSpeed
	l.press(in, pose.Grounded || kick)
}

// edgeDrop walks off the ground edge nearer the target, jumping a wall that blocks the edge
func (l *Locomotor) edgeDrop(in *physics.Input, w world.World, pose physics.Pose, tx float64) {
	l.behavior = BehaviorEdgeDrop
	ground, ok := w.Lookup(pose.GroundID)
	if !ok {
		setDir(in, int(vmath.Sign(tx-pose.X)))
		l.press(in, false)
		return
	}

	dir := 1
	switch {
	case tx < ground.Left():
		dir = -1
	case tx > ground.Right():
		dir = 1
	case pose.X-ground.Left() < ground.Right()-pose.X:
		dir = -1
	}
	if !l.floorBeyond(w, pose, ground, dir) && l.floorBeyond(w, pose, ground, -dir) {
		dir = -dir
	}
	setDir(in, dir)

	edge := ground.Right()
	if dir < 0 {
		edge = ground.Left()
	}
	nearEdge := math.Abs(edge-pose.X) <= pose.HalfW+probeAhead
	if nearEdge && blockedAhead(w, pose, dir, pose.Feet()-2*pose.HalfH) {
		l.behavior = BehaviorBreakout
		l.press(in, true)
		return
	}
	l.press(in, false)
}

// floorBeyond reports a standable surface within EdgeDropProbe below the ground edge on side dir
func (l *Locomotor) floorBeyond(w world.World, pose physics.Pose, ground world.Rect, dir int) bool {
	edge := ground.Right()
	if dir < 0 {
		edge = ground.Left()
	}
	x1 := edge + float64(dir)*3*pose.HalfW
	box := vmath.AABB{
		MinX: min(edge, x1),
		MaxX: max(edge, x1),
		MinY: ground.Top() + 1,
		MaxY: ground.Top() + l.tun.EdgeDropProbe,
	}
	for _, r := range w.Query(box) {
		if r.ID != ground.ID && (r.Solid() || r.OneWay()) && r.Top() > ground.Top() {
			return true
		}
	}
	return false
}

func setDir(in *physics.Input, dir int) {
	in.Left = dir < 0
	in.Right = dir > 0
}

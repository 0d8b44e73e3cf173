package navigation

import (
	"math"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

const (
	maxWallKicks = 2

	// Clearance kept from a target's side while still below its top
	stagingGap = 6.0

	// Landing deadband around the interior center
	arriveDeadband = 8.0
)

// Pilot turns an edge into per-tick inputs from takeoff to landing
// The ballistic sampler and the brain's commit state drive the same pilot, so
// executed trajectories match the ones the graph was built from
type Pilot struct {
	edge    Edge
	from    world.Rect
	to      world.Rect
	profile physics.Profile
	margin  float64

	ticks   int
	airLeft int
	kicks   int
	pressed bool
	left    bool
}

func NewPilot(e Edge, from, to world.Rect, profile physics.Profile, margin float64) *Pilot {
	return &Pilot{
		edge:    e,
		from:    from,
		to:      to,
		profile: profile,
		margin:  margin,
		airLeft: e.AirJumps,
	}
}

// Ticks returns how many inputs the pilot has produced
func (p *Pilot) Ticks() int { return p.ticks }

// AirJumpsLeft returns the planned air jumps not yet fired
func (p *Pilot) AirJumpsLeft() int { return p.airLeft }

// Step returns the input for the next tick given the latest pose
func (p *Pilot) Step(pose physics.Pose) physics.Input {
	first := p.ticks == 0
	p.ticks++

	var in physics.Input
	if first {
		switch {
		case p.edge.Action == ActionDropThrough:
			in.Down = true
			in.Jump = true
		case p.edge.NeedsJump:
			in.Jump = true
			in.JumpGauge = p.edge.Gauge
		}
		setDir(&in, p.edge.Facing)
		p.pressed = in.Jump
		return in
	}

	if !pose.Grounded {
		p.left = true
	}
	canPress := !p.pressed
	p.pressed = false

	if p.edge.Action == ActionWallJump && !p.aboveTarget(pose) {
		p.wallPhase(pose, &in, canPress)
		p.pressed = in.Jump
		return in
	}

	// Still on the source surface: keep walking the committed direction
	if pose.Grounded && pose.GroundID == p.from.ID && p.edge.Action != ActionWalk {
		setDir(&in, p.edge.Facing)
		return in
	}

	if p.airLeft > 0 && p.left && !pose.Grounded && canPress && pose.VY > -parameter.AirJumpApexSpeed {
		in.Jump = true
		p.airLeft--
	}
	setDir(&in, p.steer(pose))
	p.pressed = in.Jump
	return in
}

// wallPhase presses into the wall, climbing when possible and kicking otherwise
func (p *Pilot) wallPhase(pose physics.Pose, in *physics.Input, canPress bool) {
	in.Up = true
	toward := int(vmath.Sign(p.edge.WallX - pose.X))
	if toward == 0 {
		toward = p.edge.Facing
	}
	setDir(in, toward)

	if pose.Grounded || !canPress {
		return
	}
	switch {
	case pose.WallSide != 0 && pose.State != physics.Climb && pose.VY > -parameter.WallKickRiseSpeed && p.kicks < maxWallKicks:
		in.Jump = true
		p.kicks++
	case pose.WallSide == 0 && p.airLeft > 0 && pose.VY > -parameter.AirJumpApexSpeed:
		in.Jump = true
		p.airLeft--
	}
}

func (p *Pilot) aboveTarget(pose physics.Pose) bool {
	return pose.Feet() <= p.to.Top()+0.5
}

// steer picks a horizontal direction toward the landing interior
// While the feet are below a higher target's top the body holds a staging point
// beside it so the ascent does not clip its underside
func (p *Pilot) steer(pose physics.Pose) int {
	accel := p.profile.AirAccel
	if pose.Grounded {
		accel = p.profile.GroundAccel
	}

	if !p.aboveTarget(pose) && p.to.Top() < p.from.Top() {
		side := vmath.Sign(pose.X - p.to.CenterX())
		if side == 0 {
			side = -float64(p.edge.Facing)
		}
		staging := p.to.CenterX() + side*(p.to.W/2+pose.HalfW+stagingGap)
		return arrive(pose.X, pose.VX, staging, accel, 1)
	}

	lo := p.to.Left() + p.margin
	hi := p.to.Right() - p.margin
	if lo > hi {
		lo, hi = p.to.CenterX(), p.to.CenterX()
	}
	center := (lo + hi) / 2
	return arrive(pose.X, pose.VX, center, accel, min(max((hi-lo)/2-2, 0), arriveDeadband))
}

// arrive steers toward target, braking early enough to stop within deadband
func arrive(x, vx, target, accel, dead float64) int {
	d := target - x
	if math.Abs(d) <= dead {
		if math.Abs(vx) > 20 {
			return -int(vmath.Sign(vx))
		}
		return 0
	}
	if vmath.Sign(vx) == vmath.Sign(d) && vx*vx/(2*accel) >= math.Abs(d)-dead {
		return -int(vmath.Sign(vx))
	}
	return int(vmath.Sign(d))
}

func setDir(in *physics.Input, dir int) {
	in.Left = dir < 0
	in.Right = dir > 0
}

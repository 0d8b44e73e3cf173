package physics

import (
	"math"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Controller integrates a single rigid body against a set of solids
// It owns the Pose; everything else reads the snapshot returned by Tick
type Controller struct {
	tun    parameter.MotionTuning
	solids Solids
	bounds vmath.AABB
	spawnX float64
	spawnY float64

	pose Pose

	// Jump timers and counters
	jumpHeld   bool
	jumpBuffer float64
	gauge      float64
	coyote     float64
	jumpsUsed  int

	// Crouch and slide
	downHeld    float64
	crouchLatch float64
	sliding     bool
	slideDir    float64

	// Walls
	wallClimbable bool
	wallSliding   bool
	climbing      bool
	climbTimer    float64
	climbStartY   float64
	inputLock     float64
	lockDir       int

	// One-way handling
	groundOneWay bool
	dropThrough  float64

	bonked bool
}

// NewController places a body at the spawn point with feet at spawnY+halfHeight
func NewController(tun parameter.MotionTuning, solids Solids, bounds vmath.AABB, spawnX, spawnY float64) *Controller {
	c := &Controller{
		tun:    tun,
		solids: solids,
		bounds: bounds,
		spawnX: spawnX,
		spawnY: spawnY,
	}
	c.reset()
	return c
}

// SetSolids swaps the collision source, e.g. after a world rebuild
func (c *Controller) SetSolids(s Solids) { c.solids = s }

// Pose returns the current snapshot
func (c *Controller) Pose() Pose { return c.pose }

// Respawn resets pose and every timer to the spawn state
func (c *Controller) Respawn() {
	c.reset()
	c.pose.Respawned = true
}

func (c *Controller) reset() {
	*c = Controller{
		tun:    c.tun,
		solids: c.solids,
		bounds: c.bounds,
		spawnX: c.spawnX,
		spawnY: c.spawnY,
	}
	c.pose = Pose{
		X:          c.spawnX,
		Y:          c.spawnY,
		HalfW:      c.tun.BodyHalfWidth,
		HalfH:      c.tun.BodyHalfHeight,
		AirJumps:   c.tun.MaxAirJumps,
		Facing:     1,
		LatchReady: true,
	}
}

// PlaceOnGround puts the body at rest-contact on a surface with the given horizontal speed
// Used by the ballistic sampler to start a maneuver from a takeoff point
func (c *Controller) PlaceOnGround(x, feetY, vx float64, groundID int, oneWay bool) {
	c.reset()
	c.pose.X = x
	c.pose.Y = feetY - c.pose.HalfH
	c.pose.VX = vx
	c.pose.Grounded = true
	c.pose.GroundID = groundID
	c.groundOneWay = oneWay
	c.coyote = c.tun.CoyoteTime
	if vx != 0 {
		c.pose.Facing = int(vmath.Sign(vx))
	}
}

// Tick advances the body by dt seconds under input in
func (c *Controller) Tick(dt float64, in Input) Pose {
	c.pose.CeilingBonk = false
	c.pose.Respawned = false
	if dt <= 0 {
		return c.pose
	}

	if in.Jump && !c.jumpHeld {
		c.jumpBuffer = c.tun.JumpBufferTime
		c.gauge = in.JumpGauge
	}
	c.jumpHeld = in.Jump

	steps := int(math.Ceil(dt / c.tun.MaxSubstep))
	h := dt / float64(steps)
	for s := 0; s < steps; s++ {
		c.substep(h, in)
		if c.outOfBounds() {
			c.Respawn()
			return c.pose
		}
	}

	c.pose.CeilingBonk = c.bonked
	c.bonked = false
	c.publish(in)
	return c.pose
}

func (c *Controller) substep(h float64, in Input) {
	dir := c.inputDir(in)

	c.updateCrouch(h, in)
	c.applyGravity(h)
	c.applyHorizontal(h, dir)
	jumped := c.applyJump(in)
	if !jumped {
		c.applyWall(h, in, dir)
	}
	c.integrate(h)

	if !c.pose.Grounded {
		c.coyote = max(c.coyote-h, 0)
	}
	c.jumpBuffer = max(c.jumpBuffer-h, 0)
	c.inputLock = max(c.inputLock-h, 0)
	c.dropThrough = max(c.dropThrough-h, 0)
}

func (c *Controller) inputDir(in Input) int {
	if c.inputLock > 0 {
		return c.lockDir
	}
	return in.Dir()
}

// --- Crouch and slide ---

func (c *Controller) updateCrouch(h float64, in Input) {
	if in.Down && c.pose.Grounded {
		c.downHeld += h
	} else {
		c.downHeld = 0
	}

	want := c.downHeld >= c.tun.CrouchDebounce
	if want {
		c.crouchLatch = c.tun.CrouchLatch
	} else if c.pose.Crouching && c.crouchLatch > 0 {
		c.crouchLatch -= h
		want = true
	}
	if c.pose.Crouching && !want && !c.headroomClear() {
		want = true
	}

	if want && !c.pose.Crouching {
		c.setHalfHeight(c.tun.CrouchHalfHeight)
		c.pose.Crouching = true
		if c.pose.Grounded && math.Abs(c.pose.VX) > c.tun.SlideEntrySpeed {
			c.sliding = true
			c.slideDir = vmath.Sign(c.pose.VX)
		}
	} else if !want && c.pose.Crouching {
		c.setHalfHeight(c.tun.BodyHalfHeight)
		c.pose.Crouching = false
	}
	if !c.pose.Crouching || !c.pose.Grounded {
		c.sliding = false
	}
}

// setHalfHeight changes body height keeping the feet in place
func (c *Controller) setHalfHeight(half float64) {
	feet := c.pose.Feet()
	c.pose.HalfH = half
	c.pose.Y = feet - half
}

// headroomClear reports whether a standing body fits at the current feet
func (c *Controller) headroomClear() bool {
	standing := vmath.AABB{
		MinX: c.pose.X - c.pose.HalfW,
		MaxX: c.pose.X + c.pose.HalfW,
		MinY: c.pose.Feet() - 2*c.tun.BodyHalfHeight,
		MaxY: c.pose.Feet() - contactEps,
	}
	return !blocked(standing, c.solids.Query(standing))
}

// --- Forces ---

func (c *Controller) applyGravity(h float64) {
	if c.climbing {
		return
	}
	ApplyGravity(&c.pose, c.tun.Gravity, c.tun.TerminalVelocity, h)
}

func (c *Controller) applyHorizontal(h float64, dir int) {
	p := &c.pose
	target := float64(dir) * c.tun.RunSpeed

	switch {
	case c.sliding:
		p.VX = vmath.Approach(p.VX, 0, c.tun.SlideFriction*h)
		if float64(dir) == c.slideDir {
			p.VX += c.slideDir * c.tun.SlideSteer * h
		}
		if math.Abs(p.VX) < c.tun.SlideMinSpeed {
			c.sliding = false
		}
	case p.Grounded:
		switch {
		case dir == 0:
			Steer(p, 0, c.tun.GroundDecel, h)
		case p.VX != 0 && vmath.Sign(p.VX) != float64(dir):
			Steer(p, target, c.tun.GroundTurnAccel, h)
		default:
			Steer(p, target, c.tun.GroundAccel, h)
		}
	default:
		if dir == 0 {
			Steer(p, 0, c.tun.AirDecel, h)
		} else {
			Steer(p, target, c.tun.AirAccel, h)
		}
	}
}

// --- Jumps ---

// gaugeScale maps the jump gauge to an impulse multiplier
func (c *Controller) gaugeScale() float64 {
	if c.gauge <= 0 {
		return 1
	}
	g := vmath.Clamp(c.gauge, c.tun.JumpGaugeMin, c.tun.JumpGaugeMax)
	t := (g - c.tun.JumpGaugeMin) / (c.tun.JumpGaugeMax - c.tun.JumpGaugeMin)
	return vmath.Lerp(c.tun.JumpGaugeMinScale, 1, t)
}

func (c *Controller) applyJump(in Input) bool {
	if c.jumpBuffer <= 0 {
		return false
	}
	p := &c.pose

	switch {
	case in.Down && p.Grounded && c.groundOneWay:
		c.dropThrough = c.tun.DropThroughTime
		p.Grounded = false
		c.coyote = 0
		c.jumpBuffer = 0
		return true

	case p.Grounded || c.coyote > 0:
		p.VY = -c.tun.JumpVelocity * c.gaugeScale()
		p.Grounded = false
		p.AirJumps = c.tun.MaxAirJumps
		c.jumpsUsed = 1
		c.coyote = 0
		c.jumpBuffer = 0
		c.sliding = false
		c.climbing = false
		return true

	case p.WallSide != 0 && p.LatchReady:
		SetImpulse(p, -float64(p.WallSide)*c.tun.WallJumpKickSpeed, -c.tun.WallJumpVelocity*c.gaugeScale())
		c.inputLock = c.tun.WallJumpInputLock
		c.lockDir = -p.WallSide
		c.jumpsUsed = max(c.jumpsUsed, 1)
		c.jumpBuffer = 0
		c.climbing = false
		c.wallSliding = false
		return true

	case p.AirJumps > 0:
		n := max(c.jumpsUsed, 1) + 1
		mult := c.tun.AirJumpMult2
		if n >= 3 {
			mult = c.tun.AirJumpMult3
		}
		p.VY = -c.tun.JumpVelocity * mult * c.gaugeScale()
		p.AirJumps--
		c.jumpsUsed = n
		c.jumpBuffer = 0
		c.climbing = false
		return true
	}
	return false
}

// --- Walls ---

func (c *Controller) applyWall(h float64, in Input, dir int) {
	p := &c.pose
	c.wallSliding = false

	if p.WallSide == 0 {
		c.climbing = false
		c.climbTimer = 0
		return
	}

	towardWall := dir == p.WallSide
	if c.wallClimbable && in.Up && p.LatchReady && (towardWall || dir == 0) {
		if !c.climbing {
			c.climbing = true
			c.climbTimer = 0
			c.climbStartY = p.Y
		}
		p.VY = -c.tun.ClimbSpeed
		p.Grounded = false

		c.climbTimer += h
		if c.climbTimer >= c.tun.ClimbStallWindow {
			if c.climbStartY-p.Y < c.tun.ClimbStallEpsilon {
				c.kickOff()
				return
			}
			c.climbTimer = 0
			c.climbStartY = p.Y
		}
		return
	}
	c.climbing = false
	c.climbTimer = 0

	if p.Grounded || !towardWall {
		return
	}
	c.wallSliding = true
	if p.VY > c.tun.WallSlideMaxSpeed {
		p.VY = c.tun.WallSlideMaxSpeed
	} else if p.VY < 0 {
		p.VY = vmath.Approach(p.VY, 0, c.tun.WallSlideFriction*h)
	}
}

// kickOff pushes a stalled climber away from the wall and spends the latch
func (c *Controller) kickOff() {
	p := &c.pose
	SetImpulse(p, -float64(p.WallSide)*c.tun.WallJumpKickSpeed*0.5, 0)
	p.LatchReady = false
	c.climbing = false
	c.climbTimer = 0
	c.inputLock = c.tun.WallJumpInputLock
	c.lockDir = -p.WallSide
}

// --- Integration ---

func (c *Controller) integrate(h float64) {
	p := &c.pose
	dx, dy := Integrate(p, h)

	reach := p.AABB().Expand(math.Abs(dx)+c.tun.WallProbe+1, math.Abs(dy)+1)
	cands := c.solids.Query(reach)

	if rx := sweepX(p, dx, cands); rx.hit {
		p.X = rx.clamp
		p.VX = 0
		c.sliding = false
	} else {
		p.X = rx.clamp
	}

	// Grounded is re-earned every substep; coyote time covers walking off a ledge
	p.Grounded = false
	ry := sweepY(p, dy, cands, c.dropThrough > 0)
	p.Y = ry.clamp
	if ry.hit {
		if dy > 0 {
			c.land(ry.rect)
		} else {
			p.VY = 0
			c.bonked = true
		}
	}

	c.updateWallContact(cands)
}

func (c *Controller) land(r world.Rect) {
	p := &c.pose
	p.Grounded = true
	p.VY = 0
	p.GroundID = r.ID
	p.AirJumps = c.tun.MaxAirJumps
	p.LatchReady = true
	c.groundOneWay = r.OneWay()
	c.jumpsUsed = 0
	c.coyote = c.tun.CoyoteTime
	c.climbing = false
	c.wallSliding = false
}

func (c *Controller) updateWallContact(cands []world.Rect) {
	p := &c.pose
	p.WallSide = 0
	c.wallClimbable = false
	for _, side := range [2]int{-1, 1} {
		if r, ok := wallContact(p, side, c.tun.WallProbe, cands); ok {
			// Prefer the side the body is facing when boxed in
			if p.WallSide == 0 || side == p.Facing {
				p.WallSide = side
				c.wallClimbable = r.Climbable()
			}
		}
	}
}

func (c *Controller) outOfBounds() bool {
	return c.pose.Head() > c.bounds.MaxY+c.tun.RespawnMargin
}

// --- Publishing ---

func (c *Controller) publish(in Input) {
	p := &c.pose
	if dir := c.inputDir(in); dir != 0 {
		p.Facing = dir
	}
	p.CoyoteReady = !p.Grounded && c.coyote > 0

	switch {
	case c.climbing:
		p.State = Climb
	case c.sliding:
		p.State = Slide
	case c.wallSliding:
		p.State = WallSlide
	case p.Grounded:
		if math.Abs(p.VX) > 1 {
			p.State = Run
		} else {
			p.State = Idle
		}
	case p.VY < 0 && c.jumpsUsed == 2:
		p.State = DoubleJump
	case p.VY < 0 && c.jumpsUsed >= 3:
		p.State = TripleJump
	case p.VY < 0:
		p.State = Jump
	default:
		p.State = Fall
	}
}

package physics

import (
	"github.com/lixenwraith/ledgewalker/vmath"
)

// Input is the control surface produced by the planner each tick
type Input struct {
	Left, Right bool
	Jump        bool
	Down, Up    bool
	// JumpGauge in [JumpGaugeMin, JumpGaugeMax] scales the jump impulse, 0 means a full jump
	JumpGauge float64
}

// Dir returns the horizontal input direction, opposing keys cancel
func (in Input) Dir() int {
	d := 0
	if in.Left {
		d--
	}
	if in.Right {
		d++
	}
	return d
}

// Locomotion is the discrete movement state of the body
type Locomotion uint8

const (
	Idle Locomotion = iota
	Run
	Jump
	Fall
	WallSlide
	Climb
	Slide
	DoubleJump
	TripleJump
)

var locomotionNames = [...]string{"idle", "run", "jump", "fall", "wall-slide", "climb", "slide", "double-jump", "triple-jump"}

func (l Locomotion) String() string {
	if int(l) < len(locomotionNames) {
		return locomotionNames[l]
	}
	return "unknown"
}

// Airborne reports the jump and fall family of states
func (l Locomotion) Airborne() bool {
	switch l {
	case Jump, Fall, DoubleJump, TripleJump, WallSlide:
		return true
	}
	return false
}

// Pose is the read-only snapshot of the body published after each tick
// X/Y is the body center, Y grows downward
type Pose struct {
	X, Y         float64
	VX, VY       float64
	HalfW, HalfH float64

	Grounded bool
	GroundID int
	AirJumps int
	State    Locomotion
	Facing   int

	// CeilingBonk is true for exactly one tick after an upward stop
	CeilingBonk bool

	// WallSide is -1 or 1 when touching a wall on that side, 0 otherwise
	WallSide    int
	Crouching   bool
	LatchReady  bool
	CoyoteReady bool

	// Respawned is true for exactly one tick after a respawn
	Respawned bool
}

func (p Pose) AABB() vmath.AABB {
	return vmath.CenteredAABB(p.X, p.Y, p.HalfW, p.HalfH)
}

// Feet returns the Y of the body bottom
func (p Pose) Feet() float64 { return p.Y + p.HalfH }

// Head returns the Y of the body top
func (p Pose) Head() float64 { return p.Y - p.HalfH }

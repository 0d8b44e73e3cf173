package parameter

// Units: pixels and seconds, Y grows downward, positions are body centers

// Motion - Body
const (
	// BodyHalfWidth is the standing half-extent on X
	BodyHalfWidth = 10.0

	// BodyHalfHeight is the standing half-extent on Y
	BodyHalfHeight = 16.0

	// CrouchHalfHeight is the half-extent on Y while crouched or sliding
	CrouchHalfHeight = 9.0
)

// Motion - Integration
const (
	// MaxSubstep caps a single integration step to avoid tunneling through thin rects
	MaxSubstep = 1.0 / 240.0

	// Gravity is downward acceleration
	Gravity = 2000.0

	// TerminalVelocity caps fall speed
	TerminalVelocity = 900.0

	// RespawnMargin below world bounds before a full respawn
	RespawnMargin = 200.0
)

// Motion - Horizontal
const (
	// RunSpeed is the horizontal ground speed cap
	RunSpeed = 260.0

	// GroundAccel applies while input agrees with velocity
	GroundAccel = 2400.0

	// GroundTurnAccel applies while input opposes velocity
	GroundTurnAccel = 4200.0

	// GroundDecel applies with no horizontal input
	GroundDecel = 2800.0

	// AirAccel is air control strength
	AirAccel = 1400.0

	// AirDecel is horizontal drag in the air with no input
	AirDecel = 500.0
)

// Motion - Jump
const (
	// JumpVelocity is the ground jump impulse at full gauge
	JumpVelocity = 680.0

	// MaxAirJumps is the number of jumps available after leaving ground
	MaxAirJumps = 2

	// AirJumpMultiplier2 scales the second jump
	AirJumpMultiplier2 = 0.85

	// AirJumpMultiplier3 scales the third jump
	AirJumpMultiplier3 = 1.1

	// CoyoteTime is the grace period after leaving ground in which a ground jump still fires
	CoyoteTime = 0.1

	// JumpBufferTime keeps an early jump press alive until landing
	JumpBufferTime = 0.12

	// JumpGaugeMin and JumpGaugeMax bound the short-hop gauge, 0 means full jump
	JumpGaugeMin = 0.2
	JumpGaugeMax = 0.7

	// JumpGaugeMinScale is the impulse scale at JumpGaugeMin, linear up to 1 at JumpGaugeMax
	JumpGaugeMinScale = 0.45

	// DropThroughTime ignores one-way rects after a drop-through
	DropThroughTime = 0.22
)

// Motion - Steering timing shared by the maneuver pilot and off-graph locomotion
const (
	// AirJumpApexSpeed holds an air jump back while rising faster than this
	AirJumpApexSpeed = 60.0

	// WallKickRiseSpeed lets a wall kick fire once upward speed decays below this
	WallKickRiseSpeed = 150.0
)

// Motion - Walls
const (
	// WallSlideMaxSpeed caps fall speed while pressing into a wall
	WallSlideMaxSpeed = 140.0

	// WallSlideFriction decelerates upward motion against a wall
	WallSlideFriction = 900.0

	// ClimbSpeed is constant upward speed on climbable walls
	ClimbSpeed = 180.0

	// ClimbStallWindow without net climb progress kicks the body off
	ClimbStallWindow = 0.6

	// ClimbStallEpsilon is the minimum climb progress in one window
	ClimbStallEpsilon = 6.0

	// WallJumpVelocity is the vertical part of a wall kick
	WallJumpVelocity = 620.0

	// WallJumpKickSpeed is the horizontal part of a wall kick
	WallJumpKickSpeed = 300.0

	// WallJumpInputLock suppresses horizontal input after a wall kick
	WallJumpInputLock = 0.14

	// WallProbe is the contact distance for wall detection
	WallProbe = 1.0
)

// Motion - Crouch and slide
const (
	// CrouchDebounce is how long down must be held before crouching
	CrouchDebounce = 0.08

	// CrouchLatch keeps crouch after release to avoid flicker
	CrouchLatch = 0.15

	// SlideEntrySpeed is the horizontal speed above which crouching starts a slide
	SlideEntrySpeed = 200.0

	// SlideMinSpeed ends a slide
	SlideMinSpeed = 90.0

	// SlideFriction decelerates a slide
	SlideFriction = 380.0

	// SlideSteer is the limited acceleration along the committed slide direction
	SlideSteer = 150.0
)

package physics

import (
	"math"

	"github.com/lixenwraith/ledgewalker/parameter"
)

// Profile summarizes the body and jump envelope derived from motion tuning
// Planning uses it for coarse reach filters, ballistic sampling decides feasibility
type Profile struct {
	HalfW       float64
	HalfH       float64
	CrouchHalfH float64

	// JumpSpeed is the impulse of each sequential jump at full gauge
	JumpSpeed   [3]float64
	Gravity     float64
	RunSpeed    float64
	GroundAccel float64
	AirAccel    float64
	MaxAir      int
}

// DefaultProfile is the profile for the default tuning table
var DefaultProfile = NewProfile(parameter.DefaultTuning().Motion)

func NewProfile(t parameter.MotionTuning) Profile {
	return Profile{
		HalfW:       t.BodyHalfWidth,
		HalfH:       t.BodyHalfHeight,
		CrouchHalfH: t.CrouchHalfHeight,
		JumpSpeed: [3]float64{
			t.JumpVelocity,
			t.JumpVelocity * t.AirJumpMult2,
			t.JumpVelocity * t.AirJumpMult3,
		},
		Gravity:     t.Gravity,
		RunSpeed:    t.RunSpeed,
		GroundAccel: t.GroundAccel,
		AirAccel:    t.AirAccel,
		MaxAir:      t.MaxAirJumps,
	}
}

func (p Profile) clampAir(n int) int {
	return min(max(n, 0), p.MaxAir)
}

// MaxRise is the apex gain of a ground jump followed by airJumps air jumps, each fired at apex
func (p Profile) MaxRise(airJumps int) float64 {
	total := 0.0
	for i := 0; i <= p.clampAir(airJumps); i++ {
		total += p.JumpSpeed[i] * p.JumpSpeed[i] / (2 * p.Gravity)
	}
	return total
}

// FlatReach approximates the horizontal distance of a full-speed jump landing at takeoff height
func (p Profile) FlatReach(airJumps int) float64 {
	t := 0.0
	for i := 0; i <= p.clampAir(airJumps); i++ {
		t += p.JumpSpeed[i] / p.Gravity
	}
	t += math.Sqrt(2 * p.MaxRise(airJumps) / p.Gravity)
	return t * p.RunSpeed
}

// RunUp is the ground distance needed to reach speed from rest
func (p Profile) RunUp(speed float64) float64 {
	return speed * speed / (2 * p.GroundAccel)
}

package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/world"
)

func solid(id int, x, y, w, h float64) world.Rect {
	return world.Rect{ID: id, X: x, Y: y, W: w, H: h, Flags: world.FlagSolid}
}

func airborne(x, y float64) physics.Pose {
	return physics.Pose{
		X: x, Y: y,
		HalfW: parameter.BodyHalfWidth, HalfH: parameter.BodyHalfHeight,
		AirJumps: parameter.MaxAirJumps, Facing: 1,
	}
}

func TestSteerOverhead(t *testing.T) {
	ground := plat(1, 0, 600, 600)
	w := newWorld(ground)
	l := NewLocomotor(parameter.DefaultTuning())
	pose := standing(ground, 300)

	in := l.Steer(w, pose, 305, 400)
	assert.Equal(t, BehaviorOverhead, l.Behavior())
	assert.True(t, in.Jump)

	in = l.Steer(w, pose, 305, 400)
	assert.False(t, in.Jump, "held jump is not re-pressed")

	l.Reset()
	in = l.Steer(w, pose, 305, 400)
	assert.True(t, in.Jump)
}

func TestSteerCeilingEscape(t *testing.T) {
	ground := plat(1, 0, 600, 600)
	w := newWorld(ground, solid(2, 200, 540, 200, 20))
	l := NewLocomotor(parameter.DefaultTuning())

	in := l.Steer(w, standing(ground, 250), 260, 400)
	assert.Equal(t, BehaviorCeilingEscape, l.Behavior())
	assert.True(t, in.Left)
	assert.False(t, in.Jump)

	in = l.Steer(w, standing(ground, 350), 340, 400)
	assert.True(t, in.Right)
}

func TestSteerTicTac(t *testing.T) {
	ground := plat(1, 0, 600, 600)
	w := newWorld(ground, solid(2, 260, 300, 20, 300), solid(3, 320, 300, 20, 300))
	l := NewLocomotor(parameter.DefaultTuning())

	in := l.Steer(w, standing(ground, 300), 360, 200)
	assert.Equal(t, BehaviorTicTac, l.Behavior())
	assert.True(t, in.Right)
	assert.True(t, in.Jump)

	rising := airborne(300, 520)
	rising.VY = -300
	in = l.Steer(w, rising, 360, 200)
	assert.True(t, in.Right)
	assert.False(t, in.Jump)

	onWall := airborne(300, 500)
	onWall.VY = -50
	onWall.WallSide = 1
	in = l.Steer(w, onWall, 360, 200)
	assert.True(t, in.Left, "kicks away from the touched wall")
	assert.True(t, in.Jump)
}

func TestSteerWallKickWaitsForRiseToDecay(t *testing.T) {
	ground := plat(1, 0, 600, 600)
	w := newWorld(ground, solid(2, 260, 300, 20, 300), solid(3, 320, 300, 20, 300))
	l := NewLocomotor(parameter.DefaultTuning())

	onWall := airborne(300, 500)
	onWall.WallSide = 1
	onWall.VY = -parameter.WallKickRiseSpeed - 10
	in := l.Steer(w, onWall, 360, 200)
	assert.Equal(t, BehaviorTicTac, l.Behavior())
	assert.False(t, in.Jump, "still rising fast")

	onWall.VY = -parameter.WallKickRiseSpeed + 10
	in = l.Steer(w, onWall, 360, 200)
	assert.True(t, in.Jump)
	assert.True(t, in.Left)
}

func TestSteerShaftClimb(t *testing.T) {
	ground := plat(1, 0, 600, 600)
	w := newWorld(ground, solid(2, 310, 300, 20, 300))
	l := NewLocomotor(parameter.DefaultTuning())

	pose := airborne(300, 500)
	pose.WallSide = 1
	in := l.Steer(w, pose, 360, 200)
	assert.Equal(t, BehaviorShaftClimb, l.Behavior())
	assert.True(t, in.Up)
	assert.True(t, in.Right)
	assert.True(t, in.Jump)
}

func TestSteerCrouchAndHop(t *testing.T) {
	ground := plat(1, 0, 600, 600)

	// Overhang low enough for a crouched body only
	w := newWorld(ground, solid(2, 330, 500, 100, 73))
	l := NewLocomotor(parameter.DefaultTuning())
	in := l.Steer(w, standing(ground, 300), 500, 600)
	assert.Equal(t, BehaviorCrouch, l.Behavior())
	assert.True(t, in.Down)
	assert.True(t, in.Right)
	assert.False(t, in.Jump)

	// Step in the way at floor level
	w = newWorld(ground, solid(2, 330, 570, 40, 30))
	l = NewLocomotor(parameter.DefaultTuning())
	in = l.Steer(w, standing(ground, 300), 500, 600)
	assert.Equal(t, BehaviorHop, l.Behavior())
	assert.True(t, in.Right)
	assert.True(t, in.Jump)

	// Clear floor walks
	w = newWorld(ground)
	l = NewLocomotor(parameter.DefaultTuning())
	in = l.Steer(w, standing(ground, 300), 500, 600)
	assert.Equal(t, BehaviorWalk, l.Behavior())
	assert.True(t, in.Right)
	assert.False(t, in.Jump)

	in = l.Steer(w, standing(ground, 300), 303, 600)
	assert.False(t, in.Left || in.Right, "inside arrive tolerance")
}

func TestSteerEdgeDrop(t *testing.T) {
	ground := plat(1, 0, 600, 400)
	lower := plat(2, 420, 760, 600)

	w := newWorld(ground, lower)
	l := NewLocomotor(parameter.DefaultTuning())
	in := l.Steer(w, standing(ground, 100), 900, 760)
	assert.Equal(t, BehaviorEdgeDrop, l.Behavior())
	assert.True(t, in.Right)
	assert.False(t, in.Jump)

	// Nearer edge has nothing below, the far edge is taken
	in = l.Steer(w, standing(ground, 100), 150, 760)
	assert.Equal(t, BehaviorEdgeDrop, l.Behavior())
	assert.True(t, in.Right)

	// A lip at the edge is jumped
	w = newWorld(ground, lower, solid(3, 400, 500, 20, 100))
	l = NewLocomotor(parameter.DefaultTuning())
	in = l.Steer(w, standing(ground, 385), 900, 760)
	assert.Equal(t, BehaviorBreakout, l.Behavior())
	assert.True(t, in.Right)
	assert.True(t, in.Jump)
}

package physics

import (
	"github.com/lixenwraith/ledgewalker/vmath"
)

// Integrate returns the displacement for one step: d = v*dt
func Integrate(p *Pose, dt float64) (dx, dy float64) {
	return p.VX * dt, p.VY * dt
}

// ApplyGravity accelerates downward and caps at terminal velocity
func ApplyGravity(p *Pose, gravity, terminal, dt float64) {
	p.VY = min(p.VY+gravity*dt, terminal)
}

// ApplyImpulse adds velocity delta
func ApplyImpulse(p *Pose, vx, vy float64) {
	p.VX += vx
	p.VY += vy
}

// SetImpulse overrides velocity (jump, kick)
func SetImpulse(p *Pose, vx, vy float64) {
	p.VX = vx
	p.VY = vy
}

// Steer accelerates VX toward target without overshoot
func Steer(p *Pose, target, accel, dt float64) {
	p.VX = vmath.Approach(p.VX, target, accel*dt)
}

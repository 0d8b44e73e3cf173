package brain

import (
	"math"

	"github.com/lixenwraith/ledgewalker/vmath"
)

// ProgressTracker keeps best-so-far distance and per-axis deltas toward a target
// A flat plan is reported once per episode; any real improvement starts a new one
type ProgressTracker struct {
	epsilon   float64
	flatTicks int

	bestDist float64
	bestDX   float64
	bestDY   float64
	flat     int
	fired    bool
	armed    bool
}

func NewProgressTracker(epsilon float64, flatTicks int) ProgressTracker {
	return ProgressTracker{epsilon: epsilon, flatTicks: flatTicks}
}

// Reset starts tracking a new target
func (p *ProgressTracker) Reset() {
	p.armed = false
	p.flat = 0
	p.fired = false
}

// Flat returns ticks since the last improvement
func (p *ProgressTracker) Flat() int { return p.flat }

// Observe records one tick; true means the flat threshold was crossed in this episode
func (p *ProgressTracker) Observe(x, y, tx, ty float64) bool {
	dx := math.Abs(tx - x)
	dy := math.Abs(ty - y)
	dist := vmath.Dist(x, y, tx, ty)

	if !p.armed {
		p.bestDist, p.bestDX, p.bestDY = dist, dx, dy
		p.armed = true
		return false
	}

	improved := false
	if dist < p.bestDist-p.epsilon {
		p.bestDist = dist
		improved = true
	}
	if dx < p.bestDX-p.epsilon {
		p.bestDX = dx
		improved = true
	}
	if dy < p.bestDY-p.epsilon {
		p.bestDY = dy
		improved = true
	}
	if improved {
		p.flat = 0
		p.fired = false
		return false
	}

	p.flat++
	if p.flat >= p.flatTicks && !p.fired {
		p.fired = true
		return true
	}
	return false
}

// stagnation tracks "not closing distance" and "state not advancing" independently
type stagnation struct {
	bestDist    float64
	sinceCloser float64
	inState     float64
	armed       bool
}

func (s *stagnation) reset() {
	*s = stagnation{}
}

// stateChanged restarts the state timer
func (s *stagnation) stateChanged() {
	s.inState = 0
}

// goalChanged restarts the distance timer
func (s *stagnation) goalChanged() {
	s.armed = false
	s.sinceCloser = 0
}

func (s *stagnation) advance(dt, dist, epsilon float64) {
	s.inState += dt
	if !s.armed || dist < s.bestDist-epsilon {
		s.bestDist = dist
		s.sinceCloser = 0
		s.armed = true
		return
	}
	s.sinceCloser += dt
}

package physics

import (
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Contact tolerance for resting and one-way checks
const contactEps = 0.01

// sweepResult reports what an axis move ran into
type sweepResult struct {
	hit   bool
	rect  world.Rect
	clamp float64
}

// sweepX moves the body horizontally by dx and stops at the first solid face
// One-way rects never block horizontal motion
func sweepX(p *Pose, dx float64, cands []world.Rect) sweepResult {
	res := sweepResult{clamp: p.X + dx}
	if dx == 0 {
		return res
	}
	before := p.AABB()
	for _, r := range cands {
		if !r.Solid() {
			continue
		}
		rb := r.AABB()
		if before.Overlaps(rb) {
			continue // embedded, leave to vertical resolution
		}
		if before.MaxY <= rb.MinY || before.MinY >= rb.MaxY {
			continue
		}
		if dx > 0 && before.MaxX <= rb.MinX+contactEps {
			if limit := rb.MinX - p.HalfW; limit < res.clamp {
				res = sweepResult{hit: true, rect: r, clamp: limit}
			}
		}
		if dx < 0 && before.MinX >= rb.MaxX-contactEps {
			if limit := rb.MaxX + p.HalfW; limit > res.clamp {
				res = sweepResult{hit: true, rect: r, clamp: limit}
			}
		}
	}
	return res
}

// sweepY moves the body vertically by dy
// Downward motion lands on solid tops and on one-way tops approached from above,
// unless that one-way rect is being dropped through
func sweepY(p *Pose, dy float64, cands []world.Rect, ignoreOneWay bool) sweepResult {
	res := sweepResult{clamp: p.Y + dy}
	if dy == 0 {
		return res
	}
	before := p.AABB()
	for _, r := range cands {
		rb := r.AABB()
		if before.MaxX <= rb.MinX || before.MinX >= rb.MaxX {
			continue
		}
		switch {
		case dy > 0 && r.Solid():
			if before.MaxY > rb.MinY+contactEps {
				continue
			}
			if limit := rb.MinY - p.HalfH; limit < res.clamp {
				res = sweepResult{hit: true, rect: r, clamp: limit}
			}
		case dy > 0 && r.OneWay():
			if ignoreOneWay || before.MaxY > rb.MinY+contactEps {
				continue
			}
			if limit := rb.MinY - p.HalfH; limit < res.clamp {
				res = sweepResult{hit: true, rect: r, clamp: limit}
			}
		case dy < 0 && r.Solid():
			if before.MinY < rb.MaxY-contactEps {
				continue
			}
			if limit := rb.MaxY + p.HalfH; limit > res.clamp {
				res = sweepResult{hit: true, rect: r, clamp: limit}
			}
		}
	}
	return res
}

// blocked reports whether box strictly overlaps any solid rect
func blocked(box vmath.AABB, cands []world.Rect) bool {
	for _, r := range cands {
		if r.Solid() && box.Overlaps(r.AABB()) {
			return true
		}
	}
	return false
}

// wallContact probes a thin strip beside the body on side (-1 or 1)
func wallContact(p *Pose, side int, probe float64, cands []world.Rect) (world.Rect, bool) {
	box := p.AABB()
	strip := vmath.AABB{MinY: box.MinY + 2, MaxY: box.MaxY - 2}
	if side > 0 {
		strip.MinX, strip.MaxX = box.MaxX, box.MaxX+probe
	} else {
		strip.MinX, strip.MaxX = box.MinX-probe, box.MinX
	}
	for _, r := range cands {
		if r.Solid() && strip.Overlaps(r.AABB()) {
			return r, true
		}
	}
	return world.Rect{}, false
}

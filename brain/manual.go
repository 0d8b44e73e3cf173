package brain

import (
	"github.com/lixenwraith/ledgewalker/telemetry"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Snap is a standable spot found for a raw coordinate
type Snap struct {
	Node int
	X, Y float64 // Body center X and surface top
	Dist float64
}

// SnapToSurface finds the nearest graph platform where the body can stand near (x, y)
func (b *Brain) SnapToSurface(x, y float64) (Snap, bool) {
	prof := b.graph.Profile()
	var best Snap
	found := false
	for _, id := range b.graph.Nodes() {
		r, _ := b.graph.Node(id)
		sx := r.CenterX()
		if r.W > 2*prof.HalfW {
			sx = vmath.Clamp(x, r.Left()+prof.HalfW, r.Right()-prof.HalfW)
		}
		d := vmath.Dist(x, y, sx, r.Top())
		if d > b.cfg.ManualSnapRadius || (found && d >= best.Dist) {
			continue
		}
		if !b.standClear(r, sx, prof.HalfW, prof.HalfH) {
			continue
		}
		best, found = Snap{Node: id, X: sx, Y: r.Top(), Dist: d}, true
	}
	return best, found
}

// standClear reports no solid occupying the standing body box on top of r at x
func (b *Brain) standClear(r world.Rect, x, halfW, halfH float64) bool {
	box := vmath.AABB{MinX: x - halfW + 0.5, MaxX: x + halfW - 0.5, MinY: r.Top() - 2*halfH, MaxY: r.Top() - 0.5}
	for _, o := range b.world.Query(box) {
		if o.ID == r.ID || !o.Solid() {
			continue
		}
		if o.Bottom() > box.MinY && o.Top() < box.MaxY && o.Right() > box.MinX && o.Left() < box.MaxX {
			return false
		}
	}
	return true
}

// SetManualTarget snaps (x, y) to a standable surface and makes it the target
// Returns false and leaves the intent untouched when nothing is within reach
func (b *Brain) SetManualTarget(x, y float64) bool {
	snap, ok := b.SnapToSurface(x, y)
	if !ok {
		return false
	}
	b.resetIntent()
	b.intent.SetTarget(Target{Node: snap.Node, X: snap.X, Y: snap.Y, Manual: true})
	b.emit(telemetry.Event{Kind: telemetry.KindManualTarget, Target: snap.Node, X: snap.X, Y: snap.Y, Value: snap.Dist})
	return true
}

// ClearManualTarget drops a manual target and resumes autonomous selection
func (b *Brain) ClearManualTarget() {
	if !b.intent.Target.Manual {
		return
	}
	b.resetIntent()
	b.emit(telemetry.Event{Kind: telemetry.KindManualTarget, Reason: "cleared"})
}

// ManualTarget reports the active manual target
func (b *Brain) ManualTarget() (Target, bool) {
	t := b.intent.Target
	return t, b.intent.HasTarget && t.Manual
}

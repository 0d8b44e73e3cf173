package physics

import (
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Solids answers collision candidate queries, world.World satisfies it
type Solids interface {
	Query(box vmath.AABB) []world.Rect
}

// RectSet is a slice-backed Solids for small, pre-queried rect sets
type RectSet []world.Rect

func (s RectSet) Query(box vmath.AABB) []world.Rect {
	var out []world.Rect
	for _, r := range s {
		if r.X <= box.MaxX && r.Right() >= box.MinX && r.Y <= box.MaxY && r.Bottom() >= box.MinY {
			out = append(out, r)
		}
	}
	return out
}

package world

import (
	"errors"

	"github.com/lixenwraith/ledgewalker/vmath"
)

// ErrEmptyLevel is returned when a level defines no rects
var ErrEmptyLevel = errors.New("level has no rects")

// World is the read-only view of the rect set consumed by planning and motion
// Implementations replace the set wholesale and bump Revision on every change
type World interface {
	// Query returns rects whose bounds overlap or touch box
	Query(box vmath.AABB) []Rect
	// LineOfSight reports whether no solid rect blocks the segment, one-way rects never block
	LineOfSight(x1, y1, x2, y2 float64) bool
	Revision() uint64
	Checksum() uint64
	Lookup(id int) (Rect, bool)
	Bounds() vmath.AABB
}

// touches is inclusive overlap, shared edges count
func touches(a, b vmath.AABB) bool {
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX && a.MinY <= b.MaxY && a.MaxY >= b.MinY
}

// segmentClear tests a segment against candidate rects
func segmentClear(rects []Rect, x1, y1, x2, y2 float64) bool {
	for _, r := range rects {
		if !r.Solid() {
			continue
		}
		if vmath.SegmentHitsAABB(x1, y1, x2, y2, r.AABB()) {
			return false
		}
	}
	return true
}

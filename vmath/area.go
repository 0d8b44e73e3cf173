package vmath

// AABB is an axis-aligned box in world pixels, Y grows downward
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// RectAABB builds a box from top-left corner and size
func RectAABB(x, y, w, h float64) AABB {
	return AABB{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// CenteredAABB builds a box from center and half-extents
func CenteredAABB(cx, cy, halfW, halfH float64) AABB {
	return AABB{MinX: cx - halfW, MinY: cy - halfH, MaxX: cx + halfW, MaxY: cy + halfH}
}

func (a AABB) Width() float64  { return a.MaxX - a.MinX }
func (a AABB) Height() float64 { return a.MaxY - a.MinY }

// Center returns the midpoint of the box
func (a AABB) Center() (float64, float64) {
	return (a.MinX + a.MaxX) / 2, (a.MinY + a.MaxY) / 2
}

// Overlaps reports strict interior overlap; touching edges do not overlap
func (a AABB) Overlaps(b AABB) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX && a.MinY < b.MaxY && a.MaxY > b.MinY
}

// Contains reports whether the point lies inside or on the boundary
func (a AABB) Contains(x, y float64) bool {
	return x >= a.MinX && x <= a.MaxX && y >= a.MinY && y <= a.MaxY
}

// Expand grows the box by dx horizontally and dy vertically on each side
func (a AABB) Expand(dx, dy float64) AABB {
	return AABB{MinX: a.MinX - dx, MinY: a.MinY - dy, MaxX: a.MaxX + dx, MaxY: a.MaxY + dy}
}

// Union returns the smallest box covering both
func (a AABB) Union(b AABB) AABB {
	return AABB{
		MinX: min(a.MinX, b.MinX),
		MinY: min(a.MinY, b.MinY),
		MaxX: max(a.MaxX, b.MaxX),
		MaxY: max(a.MaxY, b.MaxY),
	}
}

// Empty reports a degenerate box
func (a AABB) Empty() bool {
	return a.MaxX <= a.MinX || a.MaxY <= a.MinY
}

package world

import (
	"strings"

	"github.com/lixenwraith/ledgewalker/vmath"
)

// Flags describe how a rect interacts with the body
type Flags uint8

const (
	FlagSolid Flags = 1 << iota
	FlagOneWay
	FlagClimbable
)

func (f Flags) String() string {
	var parts []string
	if f&FlagSolid != 0 {
		parts = append(parts, "solid")
	}
	if f&FlagOneWay != 0 {
		parts = append(parts, "one_way")
	}
	if f&FlagClimbable != 0 {
		parts = append(parts, "climbable")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Rect is an immutable platform or obstacle, X/Y is the top-left corner
type Rect struct {
	ID    int
	X, Y  float64
	W, H  float64
	Flags Flags
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

func (r Rect) AABB() vmath.AABB {
	return vmath.RectAABB(r.X, r.Y, r.W, r.H)
}

func (r Rect) Solid() bool     { return r.Flags&FlagSolid != 0 }
func (r Rect) OneWay() bool    { return r.Flags&FlagOneWay != 0 && r.Flags&FlagSolid == 0 }
func (r Rect) Climbable() bool { return r.Flags&FlagClimbable != 0 }

// Standable reports whether the body can rest on top of the rect
func (r Rect) Standable(minWidth float64) bool {
	return (r.Solid() || r.OneWay()) && r.W >= minWidth
}

// WallLike reports a narrow, tall solid usable for wall slides and kicks
func (r Rect) WallLike(maxWidth, minHeight float64) bool {
	return r.Solid() && r.W <= maxWidth && r.H >= minHeight
}

// HorizontalGap returns the free distance between the X extents, 0 when they overlap
func (r Rect) HorizontalGap(o Rect) float64 {
	if o.Left() >= r.Right() {
		return o.Left() - r.Right()
	}
	if r.Left() >= o.Right() {
		return r.Left() - o.Right()
	}
	return 0
}

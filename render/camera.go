package render

import (
	"math"

	"github.com/lixenwraith/ledgewalker/vmath"
)

// Camera maps world pixels to terminal cells, following a point and clamped to the level
type Camera struct {
	cellW, cellH float64 // World px per column and per row
	bounds       vmath.AABB

	cols, rows       int
	originX, originY float64 // World coordinate of the viewport's top-left cell
}

func NewCamera(cellW, cellH float64, bounds vmath.AABB) *Camera {
	return &Camera{cellW: cellW, cellH: cellH, bounds: bounds, originX: bounds.MinX, originY: bounds.MinY}
}

// Resize sets the viewport size in cells
func (c *Camera) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
}

// Follow centers the viewport on (x, y) without showing past the level edge
// An axis smaller than the viewport pins to the level's minimum
func (c *Camera) Follow(x, y float64) {
	c.originX = follow(x, c.cellW*float64(c.cols), c.bounds.MinX, c.bounds.MaxX)
	c.originY = follow(y, c.cellH*float64(c.rows), c.bounds.MinY, c.bounds.MaxY)
}

func follow(center, span, lo, hi float64) float64 {
	if span >= hi-lo {
		return lo
	}
	return vmath.Clamp(center-span/2, lo, hi-span)
}

// ToCell returns the cell holding a world point
func (c *Camera) ToCell(x, y float64) (col, row int) {
	return int(math.Floor((x - c.originX) / c.cellW)), int(math.Floor((y - c.originY) / c.cellH))
}

// ToWorld returns the world point at a cell's center
func (c *Camera) ToWorld(col, row int) (x, y float64) {
	return c.originX + (float64(col)+0.5)*c.cellW, c.originY + (float64(row)+0.5)*c.cellH
}

// Visible reports whether a cell is inside the viewport
func (c *Camera) Visible(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.cols && row < c.rows
}

func (c *Camera) Size() (cols, rows int) { return c.cols, c.rows }

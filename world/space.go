package world

import (
	"cmp"
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/ledgewalker/vmath"
)

// Tags carried by resolv objects
const (
	TagSolid     = "solid"
	TagOneWay    = "oneway"
	TagClimbable = "climbable"
)

// Space is a World backed by a resolv spatial hash
// Single writer: Replace is called between ticks by the world owner
type Space struct {
	bounds   vmath.AABB
	cellSize int
	quantum  float64

	space *resolv.Space
	rects []Rect
	byID  map[int]int

	revision uint64
	checksum uint64
}

// NewSpace creates an empty world covering bounds
func NewSpace(bounds vmath.AABB, cellSize int, quantum float64) *Space {
	if cellSize < 1 {
		cellSize = 1
	}
	s := &Space{
		bounds:   bounds,
		cellSize: cellSize,
		quantum:  quantum,
		byID:     make(map[int]int),
	}
	s.space = s.newIndex()
	s.checksum = Checksum(nil, quantum)
	return s
}

func (s *Space) newIndex() *resolv.Space {
	w := int(math.Ceil(s.bounds.Width()))
	h := int(math.Ceil(s.bounds.Height()))
	return resolv.NewSpace(max(w, s.cellSize), max(h, s.cellSize), s.cellSize, s.cellSize)
}

// Replace swaps the rect set wholesale and bumps the revision
func (s *Space) Replace(rects []Rect) {
	index := s.newIndex()
	byID := make(map[int]int, len(rects))
	stored := make([]Rect, len(rects))
	copy(stored, rects)

	for i, r := range stored {
		obj := resolv.NewObject(r.X-s.bounds.MinX, r.Y-s.bounds.MinY, r.W, r.H, tagsFor(r.Flags)...)
		obj.Data = i
		index.Add(obj)
		byID[r.ID] = i
	}

	s.space = index
	s.rects = stored
	s.byID = byID
	s.revision++
	s.checksum = Checksum(stored, s.quantum)
}

func tagsFor(f Flags) []string {
	tags := make([]string, 0, 3)
	if f&FlagSolid != 0 {
		tags = append(tags, TagSolid)
	}
	if f&FlagOneWay != 0 {
		tags = append(tags, TagOneWay)
	}
	if f&FlagClimbable != 0 {
		tags = append(tags, TagClimbable)
	}
	return tags
}

// Query returns rects overlapping or touching box, ordered by insertion
func (s *Space) Query(box vmath.AABB) []Rect {
	if len(s.rects) == 0 {
		return nil
	}
	// Grow by one cell so touching rects sitting on a cell boundary are found
	cx0, cy0 := s.space.WorldToSpace(box.MinX-s.bounds.MinX-1, box.MinY-s.bounds.MinY-1)
	cx1, cy1 := s.space.WorldToSpace(box.MaxX-s.bounds.MinX+1, box.MaxY-s.bounds.MinY+1)
	cx0, cy0 = max(cx0, 0), max(cy0, 0)
	cx1, cy1 = min(cx1, s.space.Width()-1), min(cy1, s.space.Height()-1)

	seen := make(map[int]struct{})
	var out []Rect
	for iy := cy0; iy <= cy1; iy++ {
		for ix := cx0; ix <= cx1; ix++ {
			cell := s.space.Cell(ix, iy)
			if cell == nil {
				continue
			}
			for _, obj := range cell.Objects {
				idx, ok := obj.Data.(int)
				if !ok {
					continue
				}
				if _, dup := seen[idx]; dup {
					continue
				}
				seen[idx] = struct{}{}
				if touches(s.rects[idx].AABB(), box) {
					out = append(out, s.rects[idx])
				}
			}
		}
	}

	// Rects outside the indexed area are not in any cell
	for i, r := range s.rects {
		if _, dup := seen[i]; dup || s.insideIndex(r) {
			continue
		}
		if touches(r.AABB(), box) {
			out = append(out, r)
		}
	}
	sortByID(out)
	return out
}

func (s *Space) insideIndex(r Rect) bool {
	return r.X >= s.bounds.MinX && r.Y >= s.bounds.MinY &&
		r.Right() <= s.bounds.MinX+float64(s.space.Width()*s.cellSize) &&
		r.Bottom() <= s.bounds.MinY+float64(s.space.Height()*s.cellSize)
}

// LineOfSight tests the segment against solid rects near it
func (s *Space) LineOfSight(x1, y1, x2, y2 float64) bool {
	box := vmath.AABB{MinX: min(x1, x2), MinY: min(y1, y2), MaxX: max(x1, x2), MaxY: max(y1, y2)}
	return segmentClear(s.Query(box), x1, y1, x2, y2)
}

func (s *Space) Revision() uint64 { return s.revision }
func (s *Space) Checksum() uint64 { return s.checksum }
func (s *Space) Bounds() vmath.AABB {
	return s.bounds
}

func (s *Space) Lookup(id int) (Rect, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Rect{}, false
	}
	return s.rects[idx], true
}

// Rects returns a copy of the current set
func (s *Space) Rects() []Rect {
	out := make([]Rect, len(s.rects))
	copy(out, s.rects)
	return out
}

func sortByID(rects []Rect) {
	slices.SortFunc(rects, func(a, b Rect) int { return cmp.Compare(a.ID, b.ID) })
}

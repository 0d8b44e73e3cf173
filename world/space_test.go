package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/vmath"
)

func newTestSpace(t *testing.T) *Space {
	t.Helper()
	s := NewSpace(vmath.AABB{MaxX: 1200, MaxY: 800}, 32, quantum)
	s.Replace(sampleRects())
	return s
}

func ids(rects []Rect) []int {
	out := make([]int, len(rects))
	for i, r := range rects {
		out[i] = r.ID
	}
	return out
}

func TestSpaceQuery(t *testing.T) {
	s := newTestSpace(t)

	tests := []struct {
		name string
		box  vmath.AABB
		want []int
	}{
		{"left ground", vmath.RectAABB(50, 590, 20, 20), []int{1}},
		{"gap is empty", vmath.RectAABB(410, 590, 80, 5), nil},
		{"touching edge counts", vmath.RectAABB(400, 560, 10, 40), []int{1}},
		{"spans both grounds", vmath.RectAABB(300, 590, 300, 20), []int{1, 2}},
		{"one-way ledge", vmath.RectAABB(250, 470, 10, 20), []int{3}},
		{"whole world", s.Bounds(), []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nilIfEmpty(ids(s.Query(tt.box))))
		})
	}
}

func nilIfEmpty(v []int) []int {
	if len(v) == 0 {
		return nil
	}
	return v
}

func TestSpaceQueryOutsideBounds(t *testing.T) {
	s := NewSpace(vmath.AABB{MaxX: 200, MaxY: 200}, 32, quantum)
	s.Replace([]Rect{{ID: 9, X: -100, Y: 250, W: 50, H: 20, Flags: FlagSolid}})
	got := s.Query(vmath.RectAABB(-120, 240, 100, 40))
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].ID)
}

func TestSpaceQuerySharedCell(t *testing.T) {
	s := NewSpace(vmath.AABB{MaxX: 400, MaxY: 400}, 64, quantum)
	s.Replace([]Rect{
		{ID: 1, X: 10, Y: 10, W: 8, H: 8, Flags: FlagSolid},
		{ID: 2, X: 30, Y: 30, W: 8, H: 8, Flags: FlagSolid},
		{ID: 3, X: 40, Y: 12, W: 8, H: 8, Flags: FlagOneWay},
		{ID: 4, X: 200, Y: 200, W: 100, H: 100, Flags: FlagSolid},
	})

	assert.Equal(t, []int{1, 2, 3}, ids(s.Query(vmath.RectAABB(0, 0, 60, 60))))
	assert.Equal(t, []int{1, 2, 3, 4}, ids(s.Query(s.Bounds())))
	assert.Equal(t, []int{4}, ids(s.Query(vmath.RectAABB(250, 250, 10, 10))))
}

func TestSpaceLineOfSight(t *testing.T) {
	s := newTestSpace(t)

	assert.True(t, s.LineOfSight(100, 500, 700, 500), "open air")
	assert.False(t, s.LineOfSight(100, 500, 100, 700), "through ground")
	assert.True(t, s.LineOfSight(250, 400, 250, 560), "one-way never blocks")
	assert.False(t, s.LineOfSight(900, 400, 1100, 400), "through climbable wall")
	assert.True(t, s.LineOfSight(0, 600, 400, 600), "grazing the top edge")
}

func TestSpaceReplaceBumpsRevision(t *testing.T) {
	s := NewSpace(vmath.AABB{MaxX: 1200, MaxY: 800}, 32, quantum)
	assert.Zero(t, s.Revision())

	s.Replace(sampleRects())
	assert.Equal(t, uint64(1), s.Revision())
	first := s.Checksum()

	r, ok := s.Lookup(3)
	require.True(t, ok)
	assert.True(t, r.OneWay())

	next := sampleRects()[:2]
	s.Replace(next)
	assert.Equal(t, uint64(2), s.Revision())
	assert.NotEqual(t, first, s.Checksum())

	_, ok = s.Lookup(3)
	assert.False(t, ok, "ids resolve against the current set only")
}

func TestRectPredicates(t *testing.T) {
	r := Rect{ID: 1, X: 10, Y: 20, W: 20, H: 120, Flags: FlagSolid | FlagClimbable}
	assert.True(t, r.WallLike(28, 90))
	assert.False(t, r.Standable(24))
	assert.True(t, r.Climbable())

	ow := Rect{X: 0, Y: 0, W: 100, H: 10, Flags: FlagOneWay}
	assert.True(t, ow.Standable(24))
	assert.False(t, ow.Solid())
	assert.Equal(t, 40.0, ow.HorizontalGap(Rect{X: 140, W: 10}))
	assert.Equal(t, 0.0, ow.HorizontalGap(Rect{X: 50, W: 100}))
	assert.Equal(t, "one_way", ow.Flags.String())
}

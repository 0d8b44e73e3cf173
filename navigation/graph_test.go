package navigation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

var testBounds = vmath.AABB{MaxX: 1600, MaxY: 900}

func newWorld(rects ...world.Rect) *world.Space {
	s := world.NewSpace(testBounds, parameter.SpaceCellSize, parameter.ChecksumQuantum)
	s.Replace(rects)
	return s
}

func built(t *testing.T, rects ...world.Rect) (*Graph, *world.Space) {
	t.Helper()
	w := newWorld(rects...)
	g := NewGraph(parameter.DefaultTuning())
	g.Rebuild(w, 0)
	require.Len(t, g.Nodes(), len(rects))
	return g, w
}

// assertBands checks an edge's takeoff band sits on the source and its landing band
// stays inside the destination's safe margin
func assertBands(t *testing.T, e *Edge, from, to world.Rect) {
	t.Helper()
	assert.LessOrEqual(t, e.Takeoff.MinX, e.Takeoff.MaxX)
	assert.GreaterOrEqual(t, e.Takeoff.MinX, from.Left())
	assert.LessOrEqual(t, e.Takeoff.MaxX, from.Right())
	assert.Equal(t, from.Top(), e.Takeoff.Y)

	assert.LessOrEqual(t, e.Landing.MinX, e.Landing.MaxX)
	assert.GreaterOrEqual(t, e.Landing.MinX, to.Left()+parameter.SafeMargin)
	assert.LessOrEqual(t, e.Landing.MaxX, to.Right()-parameter.SafeMargin)
	assert.Equal(t, to.Top(), e.Landing.Y)
	assert.Positive(t, e.Cost)
}

func TestGapEdgesWithinEnvelope(t *testing.T) {
	for _, gap := range []float64{20, 60, 100, 140} {
		t.Run(fmt.Sprintf("gap_%.0f", gap), func(t *testing.T) {
			a := plat(1, 0, 600, 300)
			b := plat(2, 300+gap, 600, 300)
			g, _ := built(t, a, b)

			e, ok := g.Edge(EdgeKey{From: 1, To: 2, Action: ActionJumpGap})
			require.True(t, ok, "edges: %v", g.Edges(1))
			assert.Equal(t, 1, e.Facing)
			assert.True(t, e.NeedsJump)
			assertBands(t, e, a, b)

			back, ok := g.Edge(EdgeKey{From: 2, To: 1, Action: ActionJumpGap})
			require.True(t, ok)
			assert.Equal(t, -1, back.Facing)
			assertBands(t, back, b, a)
		})
	}
}

func TestWalkAndDropEdges(t *testing.T) {
	a := plat(1, 0, 600, 300)
	b := plat(2, 300, 600, 300)
	c := plat(3, 620, 700, 300)
	g, _ := built(t, a, b, c)

	walk, ok := g.Edge(EdgeKey{From: 1, To: 2, Action: ActionWalk})
	require.True(t, ok)
	assert.False(t, walk.NeedsJump)
	assertBands(t, walk, a, b)

	drop, ok := g.Edge(EdgeKey{From: 2, To: 3, Action: ActionDropEdge})
	require.True(t, ok)
	assert.False(t, drop.NeedsJump)
	assertBands(t, drop, b, c)
	assert.Greater(t, drop.Cost, parameter.CostDropEdge)
}

func TestJumpHighEdge(t *testing.T) {
	a := plat(1, 0, 600, 300)
	b := plat(2, 380, 500, 200)
	g, _ := built(t, a, b)

	e, ok := g.Edge(EdgeKey{From: 1, To: 2, Action: ActionJumpHigh})
	require.True(t, ok, "edges: %v", g.Edges(1))
	assertBands(t, e, a, b)
	assert.LessOrEqual(t, e.AirJumps, parameter.MaxAirJumps)
}

func TestNoEdgeAboveEnvelope(t *testing.T) {
	a := plat(1, 0, 600, 300)
	b := plat(2, 350, 180, 200)
	g, _ := built(t, a, b)

	for _, e := range g.Edges(1) {
		assert.NotEqual(t, 2, e.To, "unreachable height produced %v", e)
	}
}

func TestTightCeilingBlocksJumps(t *testing.T) {
	// Ceiling bottom sits 10px above a standing head on the ground platform
	head := 600 - 2*parameter.BodyHalfHeight
	ground := plat(1, 0, 600, 400)
	ceiling := world.Rect{ID: 2, X: 0, Y: head - 10 - 20, W: 460, H: 20, Flags: world.FlagSolid}
	ledge := plat(3, 500, 520, 200)
	g, _ := built(t, ground, ceiling, ledge)

	for _, e := range g.Edges(1) {
		assert.False(t, e.NeedsJump, "jump edge under a tight ceiling: %v", e)
	}
	_, ok := g.Edge(EdgeKey{From: 1, To: 3, Action: ActionJumpHigh})
	assert.False(t, ok)
}

func TestUpdateGate(t *testing.T) {
	w := newWorld(plat(1, 0, 600, 300), plat(2, 400, 600, 300))
	g := NewGraph(parameter.DefaultTuning())

	assert.True(t, g.Update(w, 0), "first update always builds")
	assert.False(t, g.Update(w, 0.5), "inside interval")
	assert.False(t, g.Update(w, 1.5), "nothing changed")

	w.Replace([]world.Rect{plat(1, 0, 600, 300), plat(2, 420, 600, 300)})
	assert.True(t, g.Update(w, 1.6), "revision changed")
	assert.Equal(t, w.Revision(), g.Revision())

	g.MarkDirty()
	assert.False(t, g.Update(w, 2.0), "dirty waits for the interval")
	assert.True(t, g.Update(w, 2.7))
	assert.Equal(t, 3, g.Builds())

	g.InvalidateAll()
	assert.Zero(t, g.EdgeCount())
	assert.True(t, g.Update(w, 2.8), "forced rebuild ignores the interval")
	assert.Positive(t, g.EdgeCount())
}

func TestBackoffSurvivesRebuild(t *testing.T) {
	g, w := built(t, plat(1, 0, 600, 300), plat(2, 400, 600, 300))
	key := EdgeKey{From: 1, To: 2, Action: ActionJumpGap}
	_, ok := g.Edge(key)
	require.True(t, ok)

	until := g.Invalidate(key, "bonk", 0, 10)
	g.Rebuild(w, 10.5)

	e, ok := g.Edge(key)
	require.True(t, ok)
	assert.Equal(t, until, e.InvalidUntil)
	assert.Equal(t, "bonk", e.FailReason)
	assert.False(t, e.Available(10.5))
	assert.True(t, e.Available(until))
}

func TestApplyPatch(t *testing.T) {
	g, w := built(t, plat(1, 0, 600, 300), plat(2, 400, 600, 300))
	before := g.EdgeCount()

	injected := Edge{From: 1, To: 2, Action: ActionWalk, Cost: 5}
	n := g.Apply(GraphPatch{Add: []Edge{injected, {From: 1, To: 99}}})
	assert.Equal(t, 1, n, "edges to unknown nodes are dropped")
	assert.Equal(t, before+1, g.EdgeCount())

	e, ok := g.Edge(injected.Key())
	require.True(t, ok)
	assert.True(t, e.Injected)

	// Same key replaces rather than duplicates
	g.Apply(GraphPatch{Add: []Edge{injected}})
	assert.Equal(t, before+1, g.EdgeCount())

	g.Rebuild(w, 1)
	_, ok = g.Edge(injected.Key())
	assert.False(t, ok, "injected edges live until the next rebuild")
}

func TestNodeLookup(t *testing.T) {
	g, _ := built(t, plat(1, 0, 600, 300), plat(2, 400, 500, 300))

	id, ok := g.NodeAt(100, 600.5, 2)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = g.NodeAt(350, 600, 2)
	assert.False(t, ok)

	id, ok = g.Nearest(560, 480)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestSimulateReplaysEdge(t *testing.T) {
	a := plat(1, 0, 600, 300)
	b := plat(2, 400, 600, 300)
	g, _ := built(t, a, b)

	e, ok := g.Edge(EdgeKey{From: 1, To: 2, Action: ActionJumpGap})
	require.True(t, ok)

	out := g.Sampler().Simulate(*e, a, b, []world.Rect{a, b})
	assert.True(t, out.Landed, "reason: %s", out.Reason)
	assert.Positive(t, out.Ticks)

	// A wall across the gap turns the same maneuver into a failure
	wall := world.Rect{ID: 3, X: 340, Y: 300, W: 20, H: 300, Flags: world.FlagSolid}
	out = g.Sampler().Simulate(*e, a, b, []world.Rect{a, b, wall})
	assert.False(t, out.Landed)
}

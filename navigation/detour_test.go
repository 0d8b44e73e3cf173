package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/world"
)

func TestDetourPrefersVerifiedWaypoint(t *testing.T) {
	rects := []world.Rect{
		plat(1, 0, 600, 100),
		plat(2, 290, 600, 100),
		plat(3, 300, 600, 100),
		plat(4, 150, 600, 100),
	}
	g := manualGraph(rects,
		walkEdge(1, 2, 5),
		walkEdge(1, 4, 50),
		walkEdge(4, 3, 10),
	)
	d := NewDetourPlanner(parameter.DefaultTuning())

	wp, ok := d.Plan(g, fresh(1), 3, 0)
	require.True(t, ok)
	assert.Equal(t, 4, wp.Node)
	assert.True(t, wp.Verified)
	assert.InDelta(t, 60.0, wp.Cost, 1e-9)
	assert.Equal(t, 200.0, wp.X)
	assert.Equal(t, 600.0, wp.Y)
}

func TestDetourHeuristicOnly(t *testing.T) {
	rects := []world.Rect{
		plat(1, 0, 600, 100),
		plat(2, 200, 600, 100),
		plat(3, 400, 400, 100),
	}
	g := manualGraph(rects, walkEdge(1, 2, 10))
	d := NewDetourPlanner(parameter.DefaultTuning())

	wp, ok := d.Plan(g, fresh(1), 3, 0)
	require.True(t, ok)
	assert.Equal(t, 2, wp.Node)
	assert.False(t, wp.Verified)
}

func TestDetourRemembersFailures(t *testing.T) {
	rects := []world.Rect{
		plat(1, 0, 600, 100),
		plat(3, 400, 400, 100),
	}
	g := manualGraph(rects)
	d := NewDetourPlanner(parameter.DefaultTuning())

	_, ok := d.Plan(g, fresh(1), 3, 0)
	require.False(t, ok)

	// A usable waypoint appears, but the pair stays dead until the TTL passes
	extra := plat(2, 200, 600, 100)
	g.nodes[2] = &Node{ID: 2, Rect: extra}
	g.ids = []int{1, 2, 3}
	e := walkEdge(1, 2, 10)
	g.out[1] = []*Edge{&e}

	_, ok = d.Plan(g, fresh(1), 3, parameter.DetourFailTTL-0.1)
	assert.False(t, ok)

	wp, ok := d.Plan(g, fresh(1), 3, parameter.DetourFailTTL)
	require.True(t, ok)
	assert.Equal(t, 2, wp.Node)

	d.Forget()
}

func TestDetourRadius(t *testing.T) {
	rects := []world.Rect{
		plat(1, 0, 600, 100),
		plat(2, 900, 600, 100),
		plat(3, 1400, 600, 100),
	}
	g := manualGraph(rects, walkEdge(1, 2, 10))
	d := NewDetourPlanner(parameter.DefaultTuning())

	_, ok := d.Plan(g, fresh(1), 3, 0)
	assert.False(t, ok, "candidates beyond the radius are ignored")
}

package navigation

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/world"
)

func plat(id int, x, y, w float64) world.Rect {
	return world.Rect{ID: id, X: x, Y: y, W: w, H: 40, Flags: world.FlagSolid}
}

// manualGraph builds a graph with hand-written edges, bypassing simulation
func manualGraph(rects []world.Rect, edges ...Edge) *Graph {
	g := NewGraph(parameter.DefaultTuning())
	for _, r := range rects {
		g.nodes[r.ID] = &Node{ID: r.ID, Rect: r}
		g.ids = append(g.ids, r.ID)
	}
	slices.Sort(g.ids)
	for _, e := range edges {
		e := e
		g.out[e.From] = append(g.out[e.From], &e)
	}
	return g
}

func jumpEdge(from, to int, cost float64, air int) Edge {
	return Edge{From: from, To: to, Action: ActionJumpHigh, Cost: cost, NeedsJump: true, AirJumps: air}
}

func walkEdge(from, to int, cost float64) Edge {
	return Edge{From: from, To: to, Action: ActionWalk, Cost: cost}
}

func wallEdge(from, to int, cost float64) Edge {
	return Edge{From: from, To: to, Action: ActionWallJump, Cost: cost, NeedsJump: true, NeedsLatch: true}
}

var ladder = []world.Rect{
	plat(1, 0, 600, 100),
	plat(2, 150, 560, 100),
	plat(3, 300, 520, 100),
	plat(4, 450, 480, 100),
}

func fresh(node int) SearchState {
	return SearchState{Node: node, JumpReady: true, AirJumps: parameter.MaxAirJumps, LatchReady: true}
}

// checkResources asserts every step respects the jump resource rules
func checkResources(t *testing.T, p *Path) {
	t.Helper()
	for i, st := range p.Steps {
		assert.GreaterOrEqual(t, st.After.AirJumps, 0, "step %d", i)
		assert.LessOrEqual(t, st.After.AirJumps, parameter.MaxAirJumps, "step %d", i)
		if st.Edge == nil || !st.Edge.NeedsJump {
			continue
		}
		assert.True(t, st.Before.JumpReady, "jump step %d without readiness", i)
		assert.GreaterOrEqual(t, st.Before.AirJumps, st.Edge.AirJumps, "step %d", i)
		if st.Edge.NeedsLatch {
			assert.True(t, st.Before.LatchReady, "wall step %d without latch", i)
		}
	}
}

func TestFindPathSettlesBetweenJumps(t *testing.T) {
	g := manualGraph(ladder[:3], jumpEdge(1, 2, 50, 0), jumpEdge(2, 3, 50, 0))

	p, ok := g.FindPath(fresh(1), 3, 0, 0)
	require.True(t, ok)
	checkResources(t, p)

	require.Len(t, p.Steps, 3)
	assert.Nil(t, p.Steps[1].Edge, "settle restores readiness on node 2")
	assert.Equal(t, []int{1, 2, 3}, p.Nodes)
	assert.Len(t, p.Edges, 2)
	assert.InDelta(t, 100+parameter.SettleCost, p.Cost, 1e-9)
}

func TestFindPathSettlesForAirJumps(t *testing.T) {
	g := manualGraph(ladder[:2], jumpEdge(1, 2, 50, 2))

	start := SearchState{Node: 1, JumpReady: true, AirJumps: 0, LatchReady: true}
	p, ok := g.FindPath(start, 2, 0, 0)
	require.True(t, ok)
	checkResources(t, p)

	require.Len(t, p.Steps, 2)
	assert.Nil(t, p.Steps[0].Edge)
	assert.Equal(t, 0, p.Steps[1].After.AirJumps)
}

func TestFindPathWalkRestoresReadiness(t *testing.T) {
	g := manualGraph(ladder,
		jumpEdge(1, 2, 50, 1),
		walkEdge(2, 3, 10),
		jumpEdge(3, 4, 50, 1),
	)

	p, ok := g.FindPath(fresh(1), 4, 0, 0)
	require.True(t, ok)
	checkResources(t, p)

	assert.Len(t, p.Steps, 3, "no settle needed")
	assert.Equal(t, 0, p.Steps[2].After.AirJumps)
	assert.InDelta(t, 110.0, p.Cost, 1e-9)
}

func TestFindPathWallLatch(t *testing.T) {
	g := manualGraph(ladder,
		wallEdge(1, 2, 60),
		walkEdge(2, 3, 10),
		wallEdge(3, 4, 60),
	)

	p, ok := g.FindPath(fresh(1), 4, 0, 0)
	require.True(t, ok)
	checkResources(t, p)

	require.Len(t, p.Steps, 4)
	settles := 0
	for _, st := range p.Steps {
		if st.Edge == nil {
			settles++
		}
	}
	assert.Equal(t, 1, settles, "latch must be restored before the second wall jump")
}

func TestFindPathSkipsBackedOffEdge(t *testing.T) {
	g := manualGraph(ladder[:3],
		walkEdge(1, 3, 10),
		walkEdge(1, 2, 10),
		walkEdge(2, 3, 10),
	)
	key := EdgeKey{From: 1, To: 3, Action: ActionWalk}
	until := g.Invalidate(key, "test", 0, 0)
	require.InDelta(t, parameter.BackoffBase, until, 1e-9)

	p, ok := g.FindPath(fresh(1), 3, until-0.1, 0)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, p.Nodes)

	p, ok = g.FindPath(fresh(1), 3, until, 0)
	require.True(t, ok)
	assert.Equal(t, []int{1, 3}, p.Nodes)
}

func TestFindPathFailures(t *testing.T) {
	g := manualGraph(ladder[:3], walkEdge(1, 2, 10), walkEdge(2, 3, 10))

	_, ok := g.FindPath(fresh(1), 3, 0, 1)
	assert.False(t, ok, "budget exhausted")

	_, ok = g.FindPath(fresh(3), 1, 0, 0)
	assert.False(t, ok, "frontier exhausted")

	_, ok = g.FindPath(fresh(1), 99, 0, 0)
	assert.False(t, ok, "unknown goal")

	p, ok := g.FindPath(fresh(2), 2, 0, 0)
	require.True(t, ok)
	assert.Empty(t, p.Steps)
	assert.Equal(t, []int{2}, p.Nodes)
}

func TestStartState(t *testing.T) {
	g := manualGraph(ladder[:2])

	s := g.StartState(physics.Pose{Grounded: true, GroundID: 2, AirJumps: 2, LatchReady: true}, 1)
	assert.Equal(t, SearchState{Node: 2, JumpReady: true, AirJumps: 2, LatchReady: true}, s)

	s = g.StartState(physics.Pose{AirJumps: 5}, 1)
	assert.Equal(t, 1, s.Node)
	assert.False(t, s.JumpReady)
	assert.Equal(t, parameter.MaxAirJumps, s.AirJumps)

	s = g.StartState(physics.Pose{CoyoteReady: true, AirJumps: -1}, 1)
	assert.True(t, s.JumpReady)
	assert.Zero(t, s.AirJumps)
}

func TestRelaxedPathIgnoresBackoffAndResources(t *testing.T) {
	g := manualGraph(ladder[:3], jumpEdge(1, 2, 50, 2), walkEdge(2, 3, 10))
	key := EdgeKey{From: 1, To: 2, Action: ActionJumpHigh}
	g.Invalidate(key, "test", 0, 0)

	_, ok := g.FindPath(fresh(1), 3, 0, 0)
	require.False(t, ok)

	route, cost, ok := g.RelaxedPath(1, 3, nil)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, route)
	assert.InDelta(t, 60.0, cost, 1e-9)

	edges := g.RelaxedEdges(route, nil)
	require.Len(t, edges, 2)
	assert.Equal(t, key, edges[0].Key())

	_, _, ok = g.RelaxedPath(1, 3, []EdgeKey{key})
	assert.False(t, ok, "excluded edge is not traversed")

	route, _, ok = g.RelaxedPath(2, 2, nil)
	require.True(t, ok)
	assert.Equal(t, []int{2}, route)
}

package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/telemetry"
)

// A row of three platforms; the outer two are out of each other's reach
var (
	rowA = plat(1, 0, 600, 300)
	rowB = plat(2, 360, 600, 600)
	rowC = plat(3, 1020, 600, 300)
)

func rowBrain(t *testing.T) (*Brain, *recorder) {
	t.Helper()
	b, rec := newBrain(t, parameter.DefaultTuning(), newWorld(rowA, rowB, rowC))
	for _, pair := range [][2]int{{1, 2}, {2, 1}, {2, 3}, {3, 2}} {
		require.NotEmpty(t, edgesBetween(b.Graph(), pair[0], pair[1]), "edge %v", pair)
	}
	require.Empty(t, edgesBetween(b.Graph(), 1, 3))
	return b, rec
}

func edgesBetween(g *navigation.Graph, from, to int) []*navigation.Edge {
	var out []*navigation.Edge
	for _, e := range g.Edges(from) {
		if e.To == to {
			out = append(out, e)
		}
	}
	return out
}

func strikeAll(b *Brain, from, to int) {
	for _, e := range edgesBetween(b.Graph(), from, to) {
		b.Graph().Invalidate(e.Key(), "test", 0, b.now)
	}
}

func TestLadderReplans(t *testing.T) {
	b, rec := rowBrain(t)
	b.intent.SetTarget(Target{Node: 3})

	rung := b.recover(standing(rowA, 150), "test")
	assert.Equal(t, RungReplan, rung)
	require.NotNil(t, b.intent.Path)
	assert.Equal(t, []int{1, 2, 3}, b.intent.Path.Nodes)
	assert.Equal(t, PhaseAlign, b.Phase())
	assert.Equal(t, 1, rec.count(telemetry.KindRecovery, "replan"))
}

func TestLadderRelaxedReplan(t *testing.T) {
	b, _ := rowBrain(t)
	b.intent.SetTarget(Target{Node: 3})
	strikeAll(b, 2, 3)

	rung := b.recover(standing(rowA, 150), "test")
	assert.Equal(t, RungRelaxed, rung)
	require.NotNil(t, b.intent.Path)
	assert.Equal(t, []int{1, 2, 3}, b.intent.Path.Nodes)
	assert.Zero(t, b.intent.Via)
}

func TestLadderBreadcrumbRewind(t *testing.T) {
	b, _ := rowBrain(t)
	b.intent.SetTarget(Target{Node: 1})
	b.intent.PushBreadcrumb(1, parameter.BreadcrumbDepth)
	b.intent.PushBreadcrumb(2, parameter.BreadcrumbDepth)
	strikeAll(b, 3, 2)

	rung := b.recover(standing(rowC, 1150), "test")
	assert.Equal(t, RungBreadcrumb, rung)
	assert.Equal(t, 2, b.intent.Via)
	assert.Equal(t, 2, b.intent.Goal())
	assert.Equal(t, []int{1}, b.intent.Breadcrumbs)
	require.NotNil(t, b.intent.Path)
	assert.Equal(t, []int{3, 2}, b.intent.Path.Nodes)
}

func TestLadderReleasesWhenEverythingFails(t *testing.T) {
	b, rec := rowBrain(t)
	b.intent.SetTarget(Target{Node: 1})
	back := edgesBetween(b.Graph(), 3, 2)
	require.Len(t, back, 1)
	b.intent.Activate(*back[0])

	rung := b.recover(standing(rowC, 1150), navigation.ReasonFellBack)
	assert.Equal(t, RungRelease, rung)
	assert.False(t, b.intent.HasTarget)
	assert.False(t, b.intent.HasActive)
	assert.Positive(t, b.intent.Penalties[1])
	assert.Equal(t, PhaseIdle, b.Phase())

	assert.Equal(t, 1, rec.count(telemetry.KindEdgeInvalidated, navigation.ReasonFellBack))
	e, ok := b.Graph().Edge(back[0].Key())
	require.True(t, ok)
	assert.False(t, e.Available(b.now))
}

func TestLoopFallbackEscapes(t *testing.T) {
	b, rec := rowBrain(t)
	b.intent.SetTarget(Target{Node: 2})
	pose := standing(rowA, 150)

	for _i := 0; _i < parameter.LoopThreshold; _i++ {
		b.intent.SetTarget(Target{Node: 2})
		b.setState(readyState{})
		b.fail(pose, "test")
	}
	assert.Equal(t, 1, rec.count(telemetry.KindLoopFallback, "escape"))
	require.True(t, b.intent.HasTarget)
	assert.Equal(t, 3, b.intent.Target.Node, "the only other platform far enough away")
}

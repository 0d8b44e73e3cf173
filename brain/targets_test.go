package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/vmath"
)

func TestSoftmaxPick(t *testing.T) {
	pool := []Candidate{{Node: 1, Score: 5}, {Node: 2, Score: 1}, {Node: 3, Score: 0}}

	assert.Equal(t, 0, softmaxPick(pool, 0.01, 0.99), "cold temperature is greedy")
	assert.Equal(t, 0, softmaxPick(pool, 0, 0.99))
	assert.Equal(t, 1, softmaxPick(pool, 1e9, 0.5), "hot temperature is uniform")
	assert.Equal(t, 2, softmaxPick(pool, 1e9, 0.99))
	assert.Equal(t, 0, softmaxPick(pool[:1], 1, 0.99))
}

// scoringFixture has one reachable target and one out of the jump envelope
func scoringFixture(t *testing.T, tun parameter.Tuning) (*TargetSelector, pickContext) {
	t.Helper()
	a := plat(1, 0, 600, 300)
	w := newWorld(a, plat(2, 400, 600, 300), plat(3, 950, 100, 200))
	g := navigation.NewGraph(tun)
	g.Rebuild(w, 0)

	pose := standing(a, 100)
	ctx := pickContext{
		graph:     g,
		world:     w,
		pose:      pose,
		start:     g.StartState(pose, 1),
		penalties: map[int]float64{},
	}
	return NewTargetSelector(tun.Brain, vmath.NewFastRand(3)), ctx
}

func quiet() parameter.Tuning {
	tun := parameter.DefaultTuning()
	tun.Brain.TargetNoiseAmplitude = 0
	return tun
}

func TestScoreExcludesUnreachableAndNear(t *testing.T) {
	s, ctx := scoringFixture(t, quiet())
	cands := s.Score(ctx, false)
	require.Len(t, cands, 1)
	assert.Equal(t, 2, cands[0].Node)

	tun := quiet()
	tun.Brain.TargetMinDistance = 500
	s, ctx = scoringFixture(t, tun)
	assert.Empty(t, s.Score(ctx, false))
}

func TestScoreModifiers(t *testing.T) {
	s, ctx := scoringFixture(t, quiet())
	base := s.Score(ctx, false)[0].Score

	ctx.hold = 2
	assert.InDelta(t, base+parameter.TargetHysteresisBonus, s.Score(ctx, false)[0].Score, 1e-9)

	ctx.hold = 0
	ctx.penalties[2] = 1.5
	assert.InDelta(t, base-1.5, s.Score(ctx, false)[0].Score, 1e-9)

	delete(ctx.penalties, 2)
	s.Visit(2)
	assert.Less(t, s.Score(ctx, false)[0].Score, base, "recent and over-visited targets lose")
}

func TestPickReturnsCandidate(t *testing.T) {
	s, ctx := scoringFixture(t, quiet())
	for _i := 0; _i < 10; _i++ {
		c, ok := s.Pick(ctx)
		require.True(t, ok)
		assert.Equal(t, 2, c.Node)
		assert.Equal(t, 1, c.Pool)
	}

	ctx.start.Node = 2
	ctx.pose = standing(plat(2, 400, 600, 300), 550)
	_, ok := s.Pick(ctx)
	assert.True(t, ok, "node 1 is reachable back across the gap")
}

func TestVisitKeepsRecentDepth(t *testing.T) {
	s := NewTargetSelector(parameter.DefaultTuning().Brain, vmath.NewFastRand(1))
	for id := 1; id <= 10; id++ {
		s.Visit(id)
	}
	assert.Len(t, s.recent, parameter.TargetRecentDepth)
	assert.InDelta(t, 1.0, s.recency(10), 1e-9)
	assert.Zero(t, s.recency(1))
	assert.Equal(t, 1, s.Visits(1))
}

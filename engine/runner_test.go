package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/telemetry"
	"github.com/lixenwraith/ledgewalker/world"
)

type recorder struct{ events []telemetry.Event }

func (r *recorder) Emit(e telemetry.Event) { r.events = append(r.events, e) }

func (r *recorder) count(k telemetry.Kind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

const dt = 1.0 / parameter.TickRate

func demo(t *testing.T, name string) world.Level {
	t.Helper()
	lvl, ok := world.DemoLevel(name)
	require.True(t, ok)
	return lvl
}

func TestNewRunnerErrors(t *testing.T) {
	bad := parameter.DefaultTuning()
	bad.Search.ReachBudget = 0
	_, err := NewRunner(bad, demo(t, "gaps"), nil, 1)
	assert.True(t, errors.Is(err, parameter.ErrInvalidTuning), "err: %v", err)

	_, err = NewRunner(parameter.DefaultTuning(), world.Level{Name: "empty", Width: 100, Height: 100}, nil, 1)
	assert.True(t, errors.Is(err, world.ErrEmptyLevel), "err: %v", err)
}

func TestRunnerDrainsAfterTick(t *testing.T) {
	rec := &recorder{}
	r, err := NewRunner(parameter.DefaultTuning(), demo(t, "gaps"), rec, 1)
	require.NoError(t, err)

	require.Positive(t, rec.count(telemetry.KindGraphRebuild), "initial build reaches the transport")

	n, err := r.Run(context.Background(), 600, dt)
	require.NoError(t, err)
	assert.Equal(t, 600, n)
	assert.Equal(t, uint64(600), r.Clock().Ticks())

	assert.Positive(t, rec.count(telemetry.KindTargetPick))
	for _, e := range rec.events {
		assert.Equal(t, r.Session(), e.Session)
	}
	assert.Zero(t, r.Dropped())

	p := r.Pose()
	assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
}

func TestRunnerPauseAndCancel(t *testing.T) {
	r, err := NewRunner(parameter.DefaultTuning(), demo(t, "gaps"), nil, 1)
	require.NoError(t, err)

	r.Clock().Pause()
	assert.False(t, r.Step(dt))
	assert.Zero(t, r.Brain().Ticks())
	r.Clock().Resume()
	assert.True(t, r.Step(dt))
	assert.Equal(t, 1, r.Brain().Ticks())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := r.Run(ctx, 10, dt)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestRunnerRespawnNotifiesBrain(t *testing.T) {
	rec := &recorder{}
	r, err := NewRunner(parameter.DefaultTuning(), demo(t, "gaps"), rec, 1)
	require.NoError(t, err)
	_, err = r.Run(context.Background(), 30, dt)
	require.NoError(t, err)

	r.Respawn()
	r.Step(dt)
	assert.Equal(t, 1, rec.count(telemetry.KindRespawn))
}

func TestRunnerManualTarget(t *testing.T) {
	rec := &recorder{}
	r, err := NewRunner(parameter.DefaultTuning(), demo(t, "gaps"), rec, 1)
	require.NoError(t, err)

	require.True(t, r.SetManualTarget(700, 590))
	assert.Equal(t, 1, rec.count(telemetry.KindManualTarget), "manual target is drained immediately")
	target, ok := r.Brain().ManualTarget()
	require.True(t, ok)
	assert.Equal(t, 2, target.Node)

	r.ClearManualTarget()
	_, ok = r.Brain().ManualTarget()
	assert.False(t, ok)
}

package brain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/telemetry"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

var testBounds = vmath.AABB{MaxX: 1600, MaxY: 900}

func plat(id int, x, y, w float64) world.Rect {
	return world.Rect{ID: id, X: x, Y: y, W: w, H: 40, Flags: world.FlagSolid}
}

func newWorld(rects ...world.Rect) *world.Space {
	s := world.NewSpace(testBounds, parameter.SpaceCellSize, parameter.ChecksumQuantum)
	s.Replace(rects)
	return s
}

// recorder collects emitted events
type recorder struct {
	events []telemetry.Event
}

func (r *recorder) Emit(e telemetry.Event) { r.events = append(r.events, e) }

func (r *recorder) count(k telemetry.Kind, reason string) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k && (reason == "" || e.Reason == reason) {
			n++
		}
	}
	return n
}

func newBrain(t *testing.T, tun parameter.Tuning, w world.World) (*Brain, *recorder) {
	t.Helper()
	rec := &recorder{}
	b := New(tun, w, rec, 7)
	require.NotEmpty(t, b.Graph().Nodes())
	return b, rec
}

// standing returns a grounded pose on rect r at x
func standing(r world.Rect, x float64) physics.Pose {
	return physics.Pose{
		X: x, Y: r.Top() - parameter.BodyHalfHeight,
		HalfW: parameter.BodyHalfWidth, HalfH: parameter.BodyHalfHeight,
		Grounded: true, GroundID: r.ID,
		AirJumps: parameter.MaxAirJumps, LatchReady: true, Facing: 1,
	}
}

// run drives brain and controller together until done reports true or ticks run out
func run(b *Brain, ctl *physics.Controller, ticks int, done func() bool) int {
	dt := 1.0 / parameter.TickRate
	for i := 0; i < ticks; i++ {
		in := b.Tick(dt, ctl.Pose())
		pose := ctl.Tick(dt, in)
		if pose.Respawned {
			b.OnRespawn()
		}
		if done() {
			return i + 1
		}
	}
	return -1
}

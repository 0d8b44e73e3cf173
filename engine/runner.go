package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lixenwraith/ledgewalker/brain"
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/telemetry"
	"github.com/lixenwraith/ledgewalker/world"
)

// Runner owns one agent in one world and drives the tick order:
// read pose, brain tick, controller tick, respawn notice, telemetry drain
// Single-threaded, every method belongs to the tick loop except the clock's pause controls
type Runner struct {
	tuning parameter.Tuning
	level  world.Level

	space *world.Space
	ctl   *physics.Controller
	brain *brain.Brain

	clock     *SimClock
	queue     *telemetry.Queue
	transport telemetry.Sink

	input physics.Input
	pose  physics.Pose
}

// NewRunner validates tuning, builds the level's space and wires brain telemetry through the queue
// A nil transport discards events
func NewRunner(t parameter.Tuning, lvl world.Level, transport telemetry.Sink, seed uint64) (*Runner, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	space, err := lvl.NewSpace(t.World.SpaceCellSize, t.World.ChecksumQuantum)
	if err != nil {
		return nil, fmt.Errorf("build level %q: %w", lvl.Name, err)
	}
	if transport == nil {
		transport = telemetry.Discard
	}

	r := &Runner{
		tuning:    t,
		level:     lvl,
		space:     space,
		ctl:       physics.NewController(t.Motion, space, lvl.Bounds(), lvl.Spawn.X, lvl.Spawn.Y),
		clock:     NewSimClock(),
		queue:     telemetry.NewQueue(uuid.New()),
		transport: transport,
	}
	r.brain = brain.New(t, space, r.queue, seed)
	r.pose = r.ctl.Pose()
	r.queue.Drain(r.transport)
	return r, nil
}

// Step runs one tick of dt seconds and reports whether it advanced
func (r *Runner) Step(dt float64) bool {
	dt, ok := r.clock.Advance(dt)
	if !ok {
		return false
	}

	r.input = r.brain.Tick(dt, r.ctl.Pose())
	r.pose = r.ctl.Tick(dt, r.input)
	if r.pose.Respawned {
		r.brain.OnRespawn()
	}

	r.queue.Drain(r.transport)
	return true
}

// Run steps ticks times at a fixed dt until done or ctx is cancelled
// Returns the number of ticks applied
func (r *Runner) Run(ctx context.Context, ticks int, dt float64) (int, error) {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		r.Step(dt)
	}
	return ticks, nil
}

// --- Manual control ---

// SetManualTarget snaps the point to a surface and routes to it, false when nothing is in reach
func (r *Runner) SetManualTarget(x, y float64) bool {
	ok := r.brain.SetManualTarget(x, y)
	r.queue.Drain(r.transport)
	return ok
}

func (r *Runner) ClearManualTarget() {
	r.brain.ClearManualTarget()
}

// Respawn sends the body back to the spawn point and resets the brain's intent
func (r *Runner) Respawn() {
	r.ctl.Respawn()
	r.pose = r.ctl.Pose()
	r.brain.OnRespawn()
	r.queue.Drain(r.transport)
}

// ReplaceWorld swaps the level geometry under the agent
func (r *Runner) ReplaceWorld(rects []world.Rect) {
	r.space.Replace(rects)
}

// --- Accessors ---

func (r *Runner) Brain() *brain.Brain      { return r.brain }
func (r *Runner) World() *world.Space      { return r.space }
func (r *Runner) Level() world.Level       { return r.level }
func (r *Runner) Clock() *SimClock         { return r.clock }
func (r *Runner) Pose() physics.Pose       { return r.pose }
func (r *Runner) Input() physics.Input     { return r.input }
func (r *Runner) Session() uuid.UUID       { return r.queue.Session() }
func (r *Runner) Dropped() uint64          { return r.queue.Dropped() }
func (r *Runner) Tuning() parameter.Tuning { return r.tuning }

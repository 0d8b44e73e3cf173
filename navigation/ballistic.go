package navigation

import (
	"math"
	"slices"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// Failure reasons reported by ballistic simulation
const (
	ReasonBonk      = "bonk"
	ReasonWall      = "wall-contact"
	ReasonElsewhere = "landed-elsewhere"
	ReasonFellBack  = "fell-back"
	ReasonMargin    = "outside-margin"
	ReasonTimeout   = "timeout"
	ReasonNoLaunch  = "no-takeoff"
	ReasonRespawn   = "respawn"
)

// Outcome is the result of one simulated maneuver
type Outcome struct {
	Landed bool
	LandX  float64
	Ticks  int
	Reason string
}

// sample is one successful takeoff
type sample struct {
	takeoffX float64
	landX    float64
}

// variant is a fixed execution style swept across takeoff positions
type variant struct {
	action Action
	air    int
	speed  float64
	gauge  float64
}

// Sampler forward-simulates the motion controller to validate maneuvers
type Sampler struct {
	graph   parameter.GraphTuning
	profile physics.Profile
	ctl     *physics.Controller
	bounds  vmath.AABB
}

func NewSampler(t parameter.Tuning) *Sampler {
	inf := math.Inf(1)
	bounds := vmath.AABB{MinX: -inf, MinY: -inf, MaxX: inf, MaxY: inf}
	return &Sampler{
		graph:   t.Graph,
		profile: physics.NewProfile(t.Motion),
		ctl:     physics.NewController(t.Motion, physics.RectSet(nil), bounds, 0, 0),
		bounds:  bounds,
	}
}

// Simulate runs edge e from its takeoff minimum against solids
func (s *Sampler) Simulate(e Edge, from, to world.Rect, solids physics.RectSet) Outcome {
	return s.simulateFrom(e, e.Takeoff.MinX, from, to, solids)
}

func (s *Sampler) simulateFrom(e Edge, x float64, from, to world.Rect, solids physics.RectSet) Outcome {
	s.ctl.SetSolids(solids)
	s.ctl.PlaceOnGround(x, from.Top(), float64(e.Facing)*e.TakeoffSpeed, from.ID, from.OneWay())
	pilot := NewPilot(e, from, to, s.profile, s.graph.SafeMargin)

	pose := s.ctl.Pose()
	maxTicks := int(math.Ceil(s.graph.SampleMaxTime / s.graph.SampleStep))
	left := false
	for tick := 1; tick <= maxTicks; tick++ {
		pose = s.ctl.Tick(s.graph.SampleStep, pilot.Step(pose))

		switch {
		case pose.Respawned:
			return Outcome{Ticks: tick, Reason: ReasonRespawn}
		case pose.CeilingBonk:
			return Outcome{Ticks: tick, Reason: ReasonBonk}
		case !pose.Grounded:
			left = true
			if pose.WallSide != 0 && e.Action != ActionWallJump && pose.State != physics.Climb {
				return Outcome{Ticks: tick, Reason: ReasonWall}
			}
			continue
		}

		switch pose.GroundID {
		case to.ID:
			if pose.X < to.Left()+s.graph.SafeMargin || pose.X > to.Right()-s.graph.SafeMargin {
				return Outcome{Ticks: tick, LandX: pose.X, Reason: ReasonMargin}
			}
			return Outcome{Landed: true, LandX: pose.X, Ticks: tick}
		case from.ID:
			if left {
				return Outcome{Ticks: tick, Reason: ReasonFellBack}
			}
			if e.NeedsJump {
				return Outcome{Ticks: tick, Reason: ReasonNoLaunch}
			}
		default:
			return Outcome{Ticks: tick, Reason: ReasonElsewhere}
		}
	}
	return Outcome{Ticks: maxTicks, Reason: ReasonTimeout}
}

// headClear reports free space above a standing body at takeoff x
func (s *Sampler) headClear(x float64, from world.Rect, solids physics.RectSet) bool {
	head := from.Top() - 2*s.profile.HalfH
	box := vmath.AABB{
		MinX: x - s.profile.HalfW,
		MaxX: x + s.profile.HalfW,
		MinY: head - s.graph.HeadClearance,
		MaxY: head,
	}
	for _, r := range solids.Query(box) {
		if r.Solid() && box.Overlaps(r.AABB()) {
			return false
		}
	}
	return true
}

// takeoffPositions spreads n body-center positions across the source top
func takeoffPositions(from world.Rect, n int) []float64 {
	lo, hi := from.Left()+1, from.Right()-1
	if n <= 1 || hi <= lo {
		return []float64{from.CenterX()}
	}
	xs := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = vmath.Lerp(lo, hi, float64(i)/float64(n-1))
	}
	return xs
}

// facingFor picks the travel direction from x toward the destination
func facingFor(x float64, from, to world.Rect) int {
	switch {
	case to.CenterX() > x+1:
		return 1
	case to.CenterX() < x-1:
		return -1
	}
	// Directly beneath or above: leave over the side where to extends furthest
	if to.Right()-from.Right() >= from.Left()-to.Left() {
		return 1
	}
	return -1
}

// sweep tries v across takeoff positions and returns the widest contiguous run of successes
func (s *Sampler) sweep(v variant, wallX float64, from, to world.Rect, solids physics.RectSet, xs []float64) (Edge, []sample) {
	base := Edge{
		WallX:        wallX,
		From:         from.ID,
		To:           to.ID,
		Action:       v.action,
		NeedsJump:    v.action.IsJump(),
		AirJumps:     v.air,
		NeedsLatch:   v.action == ActionWallJump,
		TakeoffSpeed: v.speed,
		Gauge:        v.gauge,
	}

	var run, best []sample
	var bestFacing, runFacing int
	flush := func() {
		if len(run) > len(best) {
			best, bestFacing = run, runFacing
		}
		run = nil
	}

	for _, x := range xs {
		e := base
		e.Facing = facingFor(x, from, to)
		if !s.launchable(e, x, from, solids) {
			flush()
			continue
		}
		out := s.simulateFrom(e, x, from, to, solids)
		if !out.Landed || (len(run) > 0 && e.Facing != runFacing) {
			flush()
		}
		if out.Landed {
			run = append(run, sample{takeoffX: x, landX: out.LandX})
			runFacing = e.Facing
		}
	}
	flush()

	if len(best) == 0 {
		return Edge{}, nil
	}
	base.Facing = bestFacing
	return base, best
}

// launchable checks run-up room and head clearance for a takeoff position
func (s *Sampler) launchable(e Edge, x float64, from world.Rect, solids physics.RectSet) bool {
	if e.TakeoffSpeed > 0 {
		room := x - from.Left()
		if e.Facing < 0 {
			room = from.Right() - x
		}
		if room < s.profile.RunUp(e.TakeoffSpeed) {
			return false
		}
	}
	if e.NeedsJump && !s.headClear(x, from, solids) {
		return false
	}
	return true
}

// refine grows a run outward by half the sample spacing where the simulation still lands
func (s *Sampler) refine(e Edge, run []sample, spacing float64, from, to world.Rect, solids physics.RectSet) []sample {
	out := slices.Clone(run)
	for _, probe := range [2]struct {
		x    float64
		head bool
	}{
		{run[0].takeoffX - spacing/2, true},
		{run[len(run)-1].takeoffX + spacing/2, false},
	} {
		if probe.x < from.Left() || probe.x > from.Right() || !s.launchable(e, probe.x, from, solids) {
			continue
		}
		if res := s.simulateFrom(e, probe.x, from, to, solids); res.Landed {
			smp := sample{takeoffX: probe.x, landX: res.LandX}
			if probe.head {
				out = slices.Insert(out, 0, smp)
			} else {
				out = append(out, smp)
			}
		}
	}
	return out
}

// bands derives takeoff and landing bands from successful samples
// The landing band is clamped inside the destination's safe margin
func (s *Sampler) bands(run []sample, from, to world.Rect) (Band, Band) {
	take := Band{MinX: math.Inf(1), MaxX: math.Inf(-1), Y: from.Top()}
	land := Band{MinX: math.Inf(1), MaxX: math.Inf(-1), Y: to.Top()}
	for _, smp := range run {
		take.MinX = min(take.MinX, smp.takeoffX)
		take.MaxX = max(take.MaxX, smp.takeoffX)
		land.MinX = min(land.MinX, smp.landX)
		land.MaxX = max(land.MaxX, smp.landX)
	}
	lo := to.Left() + s.graph.SafeMargin
	hi := to.Right() - s.graph.SafeMargin
	land.MinX = vmath.Clamp(land.MinX, lo, hi)
	land.MaxX = vmath.Clamp(land.MaxX, lo, hi)
	return take, land
}

package parameter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidTuning is returned for tuning values that cannot drive the simulation
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning aggregates every tunable constant so a run can override them from a file
// Defaults come from the named constants in this package
type Tuning struct {
	Motion MotionTuning `toml:"motion"`
	Graph  GraphTuning  `toml:"graph"`
	Search SearchTuning `toml:"search"`
	Brain  BrainTuning  `toml:"brain"`
	World  WorldTuning  `toml:"world"`
}

type MotionTuning struct {
	BodyHalfWidth     float64 `toml:"body_half_width"`
	BodyHalfHeight    float64 `toml:"body_half_height"`
	CrouchHalfHeight  float64 `toml:"crouch_half_height"`
	MaxSubstep        float64 `toml:"max_substep"`
	Gravity           float64 `toml:"gravity"`
	TerminalVelocity  float64 `toml:"terminal_velocity"`
	RespawnMargin     float64 `toml:"respawn_margin"`
	RunSpeed          float64 `toml:"run_speed"`
	GroundAccel       float64 `toml:"ground_accel"`
	GroundTurnAccel   float64 `toml:"ground_turn_accel"`
	GroundDecel       float64 `toml:"ground_decel"`
	AirAccel          float64 `toml:"air_accel"`
	AirDecel          float64 `toml:"air_decel"`
	JumpVelocity      float64 `toml:"jump_velocity"`
	MaxAirJumps       int     `toml:"max_air_jumps"`
	AirJumpMult2      float64 `toml:"air_jump_mult_2"`
	AirJumpMult3      float64 `toml:"air_jump_mult_3"`
	CoyoteTime        float64 `toml:"coyote_time"`
	JumpBufferTime    float64 `toml:"jump_buffer_time"`
	JumpGaugeMin      float64 `toml:"jump_gauge_min"`
	JumpGaugeMax      float64 `toml:"jump_gauge_max"`
	JumpGaugeMinScale float64 `toml:"jump_gauge_min_scale"`
	DropThroughTime   float64 `toml:"drop_through_time"`
	WallSlideMaxSpeed float64 `toml:"wall_slide_max_speed"`
	WallSlideFriction float64 `toml:"wall_slide_friction"`
	ClimbSpeed        float64 `toml:"climb_speed"`
	ClimbStallWindow  float64 `toml:"climb_stall_window"`
	ClimbStallEpsilon float64 `toml:"climb_stall_epsilon"`
	WallJumpVelocity  float64 `toml:"wall_jump_velocity"`
	WallJumpKickSpeed float64 `toml:"wall_jump_kick_speed"`
	WallJumpInputLock float64 `toml:"wall_jump_input_lock"`
	WallProbe         float64 `toml:"wall_probe"`
	CrouchDebounce    float64 `toml:"crouch_debounce"`
	CrouchLatch       float64 `toml:"crouch_latch"`
	SlideEntrySpeed   float64 `toml:"slide_entry_speed"`
	SlideMinSpeed     float64 `toml:"slide_min_speed"`
	SlideFriction     float64 `toml:"slide_friction"`
	SlideSteer        float64 `toml:"slide_steer"`
}

type GraphTuning struct {
	MinStandWidth        float64 `toml:"min_stand_width"`
	ReachX               float64 `toml:"reach_x"`
	ReachUp              float64 `toml:"reach_up"`
	ReachDown            float64 `toml:"reach_down"`
	RebuildInterval      float64 `toml:"rebuild_interval"`
	WalkMaxStep          float64 `toml:"walk_max_step"`
	WalkMaxGap           float64 `toml:"walk_max_gap"`
	DropCloseGap         float64 `toml:"drop_close_gap"`
	WallLikeMaxWidth     float64 `toml:"wall_like_max_width"`
	WallLikeMinHeight    float64 `toml:"wall_like_min_height"`
	WallProximity        float64 `toml:"wall_proximity"`
	TakeoffSamples       int     `toml:"takeoff_samples"`
	SampleMaxTime        float64 `toml:"sample_max_time"`
	SampleStep           float64 `toml:"sample_step"`
	SafeMargin           float64 `toml:"safe_margin"`
	HeadClearance        float64 `toml:"head_clearance"`
	RunUpDistance        float64 `toml:"run_up_distance"`
	CostWalk             float64 `toml:"cost_walk"`
	CostDropEdge         float64 `toml:"cost_drop_edge"`
	CostDropThrough      float64 `toml:"cost_drop_through"`
	CostJumpGap          float64 `toml:"cost_jump_gap"`
	CostJumpHigh         float64 `toml:"cost_jump_high"`
	CostJumpDown         float64 `toml:"cost_jump_down"`
	CostWallJump         float64 `toml:"cost_wall_jump"`
	NarrowLandingWidth   float64 `toml:"narrow_landing_width"`
	NarrowLandingPenalty float64 `toml:"narrow_landing_penalty"`
	PillarPenalty        float64 `toml:"pillar_penalty"`
	TightBandWidth       float64 `toml:"tight_band_width"`
	TightBandPenalty     float64 `toml:"tight_band_penalty"`
	AirJumpCost          float64 `toml:"air_jump_cost"`
	BackoffBase          float64 `toml:"backoff_base"`
	BackoffMultiplier    float64 `toml:"backoff_multiplier"`
	BackoffCap           float64 `toml:"backoff_cap"`
	BackoffDecayWindow   float64 `toml:"backoff_decay_window"`
}

type SearchTuning struct {
	HeuristicClimbWeight   float64 `toml:"heuristic_climb_weight"`
	HeuristicDescentWeight float64 `toml:"heuristic_descent_weight"`
	SettleCost             float64 `toml:"settle_cost"`
	Budget                 int     `toml:"budget"`
	ReachBudget            int     `toml:"reach_budget"`
	SolverRadius           float64 `toml:"solver_radius"`
	SolverWidthWeight      float64 `toml:"solver_width_weight"`
	SolverProgressWeight   float64 `toml:"solver_progress_weight"`
	SolverVerticalBonus    float64 `toml:"solver_vertical_bonus"`
	DetourRadius           float64 `toml:"detour_radius"`
	DetourMinGain          float64 `toml:"detour_min_gain"`
	DetourBudget           int     `toml:"detour_budget"`
	DetourFailTTL          float64 `toml:"detour_fail_ttl"`
}

type BrainTuning struct {
	TargetMinDistance      float64 `toml:"target_min_distance"`
	TargetSweetDistance    float64 `toml:"target_sweet_distance"`
	TargetSweetWidth       float64 `toml:"target_sweet_width"`
	TargetMaxDistance      float64 `toml:"target_max_distance"`
	TargetFarMultiplier    float64 `toml:"target_far_multiplier"`
	TargetPreferFarChance  float64 `toml:"target_prefer_far_chance"`
	TargetDistanceWeight   float64 `toml:"target_distance_weight"`
	TargetVerticalWeight   float64 `toml:"target_vertical_weight"`
	TargetNoveltyPenalty   float64 `toml:"target_novelty_penalty"`
	TargetFairnessWeight   float64 `toml:"target_fairness_weight"`
	TargetSightBonus       float64 `toml:"target_sight_bonus"`
	TargetComplexityWeight float64 `toml:"target_complexity_weight"`
	TargetNoiseAmplitude   float64 `toml:"target_noise_amplitude"`
	TargetHysteresisBonus  float64 `toml:"target_hysteresis_bonus"`
	TargetRescoreInterval  float64 `toml:"target_rescore_interval"`
	TargetTopK             int     `toml:"target_top_k"`
	TargetTemperatureNear  float64 `toml:"target_temperature_near"`
	TargetTemperatureFar   float64 `toml:"target_temperature_far"`
	TargetRecentDepth      int     `toml:"target_recent_depth"`
	TargetArriveDwell      float64 `toml:"target_arrive_dwell"`

	AlignTimeout        float64 `toml:"align_timeout"`
	ApproachTimeout     float64 `toml:"approach_timeout"`
	ReadyPatience       float64 `toml:"ready_patience"`
	ReadySpeedFraction  float64 `toml:"ready_speed_fraction"`
	CommitTimeout       float64 `toml:"commit_timeout"`
	BandTolerance       float64 `toml:"band_tolerance"`
	BackupDistance      float64 `toml:"backup_distance"`
	BackupTimeout       float64 `toml:"backup_timeout"`
	RunUpSpeedThreshold float64 `toml:"run_up_speed_threshold"`

	ProgressEpsilon        float64 `toml:"progress_epsilon"`
	ProgressFlatTicks      int     `toml:"progress_flat_ticks"`
	StagnationDistanceTime float64 `toml:"stagnation_distance_time"`
	StagnationStateTime    float64 `toml:"stagnation_state_time"`

	BreadcrumbDepth    int     `toml:"breadcrumb_depth"`
	TargetPenaltyStep  float64 `toml:"target_penalty_step"`
	TargetPenaltyDecay float64 `toml:"target_penalty_decay"`
	EdgeFailDuration   float64 `toml:"edge_fail_duration"`

	LoopWindow        float64 `toml:"loop_window"`
	LoopThreshold     int     `toml:"loop_threshold"`
	IdleCooldownMin   float64 `toml:"idle_cooldown_min"`
	IdleCooldownMax   float64 `toml:"idle_cooldown_max"`
	EscapeMinDistance float64 `toml:"escape_min_distance"`
	FreeSpaceAttempts int     `toml:"free_space_attempts"`

	CorridorMaxWidth    float64 `toml:"corridor_max_width"`
	CorridorProbeHeight float64 `toml:"corridor_probe_height"`
	OverheadLockRadius  float64 `toml:"overhead_lock_radius"`
	CeilingProbe        float64 `toml:"ceiling_probe"`
	EdgeDropProbe       float64 `toml:"edge_drop_probe"`

	ManualSnapRadius float64 `toml:"manual_snap_radius"`
	ArriveTolerance  float64 `toml:"arrive_tolerance"`
}

type WorldTuning struct {
	SpaceCellSize    int     `toml:"space_cell_size"`
	ChecksumQuantum  float64 `toml:"checksum_quantum"`
	DriftConsecutive int     `toml:"drift_consecutive"`
	DriftCooldown    float64 `toml:"drift_cooldown"`
}

// DefaultTuning returns the tuning table built from package constants
func DefaultTuning() Tuning {
	return Tuning{
		Motion: MotionTuning{
			BodyHalfWidth:     BodyHalfWidth,
			BodyHalfHeight:    BodyHalfHeight,
			CrouchHalfHeight:  CrouchHalfHeight,
			MaxSubstep:        MaxSubstep,
			Gravity:           Gravity,
			TerminalVelocity:  TerminalVelocity,
			RespawnMargin:     RespawnMargin,
			RunSpeed:          RunSpeed,
			GroundAccel:       GroundAccel,
			GroundTurnAccel:   GroundTurnAccel,
			GroundDecel:       GroundDecel,
			AirAccel:          AirAccel,
			AirDecel:          AirDecel,
			JumpVelocity:      JumpVelocity,
			MaxAirJumps:       MaxAirJumps,
			AirJumpMult2:      AirJumpMultiplier2,
			AirJumpMult3:      AirJumpMultiplier3,
			CoyoteTime:        CoyoteTime,
			JumpBufferTime:    JumpBufferTime,
			JumpGaugeMin:      JumpGaugeMin,
			JumpGaugeMax:      JumpGaugeMax,
			JumpGaugeMinScale: JumpGaugeMinScale,
			DropThroughTime:   DropThroughTime,
			WallSlideMaxSpeed: WallSlideMaxSpeed,
			WallSlideFriction: WallSlideFriction,
			ClimbSpeed:        ClimbSpeed,
			ClimbStallWindow:  ClimbStallWindow,
			ClimbStallEpsilon: ClimbStallEpsilon,
			WallJumpVelocity:  WallJumpVelocity,
			WallJumpKickSpeed: WallJumpKickSpeed,
			WallJumpInputLock: WallJumpInputLock,
			WallProbe:         WallProbe,
			CrouchDebounce:    CrouchDebounce,
			CrouchLatch:       CrouchLatch,
			SlideEntrySpeed:   SlideEntrySpeed,
			SlideMinSpeed:     SlideMinSpeed,
			SlideFriction:     SlideFriction,
			SlideSteer:        SlideSteer,
		},
		Graph: GraphTuning{
			MinStandWidth:        MinStandWidth,
			ReachX:               GraphReachX,
			ReachUp:              GraphReachUp,
			ReachDown:            GraphReachDown,
			RebuildInterval:      GraphRebuildInterval,
			WalkMaxStep:          WalkMaxStep,
			WalkMaxGap:           WalkMaxGap,
			DropCloseGap:         DropCloseGap,
			WallLikeMaxWidth:     WallLikeMaxWidth,
			WallLikeMinHeight:    WallLikeMinHeight,
			WallProximity:        WallProximity,
			TakeoffSamples:       TakeoffSamples,
			SampleMaxTime:        SampleMaxTime,
			SampleStep:           SampleStep,
			SafeMargin:           SafeMargin,
			HeadClearance:        HeadClearance,
			RunUpDistance:        RunUpDistance,
			CostWalk:             CostWalk,
			CostDropEdge:         CostDropEdge,
			CostDropThrough:      CostDropThrough,
			CostJumpGap:          CostJumpGap,
			CostJumpHigh:         CostJumpHigh,
			CostJumpDown:         CostJumpDown,
			CostWallJump:         CostWallJump,
			NarrowLandingWidth:   NarrowLandingWidth,
			NarrowLandingPenalty: NarrowLandingPenalty,
			PillarPenalty:        PillarPenalty,
			TightBandWidth:       TightBandWidth,
			TightBandPenalty:     TightBandPenalty,
			AirJumpCost:          AirJumpCost,
			BackoffBase:          BackoffBase,
			BackoffMultiplier:    BackoffMultiplier,
			BackoffCap:           BackoffCap,
			BackoffDecayWindow:   BackoffDecayWindow,
		},
		Search: SearchTuning{
			HeuristicClimbWeight:   HeuristicClimbWeight,
			HeuristicDescentWeight: HeuristicDescentWeight,
			SettleCost:             SettleCost,
			Budget:                 SearchBudget,
			ReachBudget:            ReachBudget,
			SolverRadius:           SolverRadius,
			SolverWidthWeight:      SolverWidthWeight,
			SolverProgressWeight:   SolverProgressWeight,
			SolverVerticalBonus:    SolverVerticalBonus,
			DetourRadius:           DetourRadius,
			DetourMinGain:          DetourMinGain,
			DetourBudget:           DetourBudget,
			DetourFailTTL:          DetourFailTTL,
		},
		Brain: BrainTuning{
			TargetMinDistance:      TargetMinDistance,
			TargetSweetDistance:    TargetSweetDistance,
			TargetSweetWidth:       TargetSweetWidth,
			TargetMaxDistance:      TargetMaxDistance,
			TargetFarMultiplier:    TargetFarMultiplier,
			TargetPreferFarChance:  TargetPreferFarChance,
			TargetDistanceWeight:   TargetDistanceWeight,
			TargetVerticalWeight:   TargetVerticalWeight,
			TargetNoveltyPenalty:   TargetNoveltyPenalty,
			TargetFairnessWeight:   TargetFairnessWeight,
			TargetSightBonus:       TargetSightBonus,
			TargetComplexityWeight: TargetComplexityWeight,
			TargetNoiseAmplitude:   TargetNoiseAmplitude,
			TargetHysteresisBonus:  TargetHysteresisBonus,
			TargetRescoreInterval:  TargetRescoreInterval,
			TargetTopK:             TargetTopK,
			TargetTemperatureNear:  TargetTemperatureNear,
			TargetTemperatureFar:   TargetTemperatureFar,
			TargetRecentDepth:      TargetRecentDepth,
			TargetArriveDwell:      TargetArriveDwell,

			AlignTimeout:        AlignTimeout,
			ApproachTimeout:     ApproachTimeout,
			ReadyPatience:       ReadyPatience,
			ReadySpeedFraction:  ReadySpeedFraction,
			CommitTimeout:       CommitTimeout,
			BandTolerance:       BandTolerance,
			BackupDistance:      BackupDistance,
			BackupTimeout:       BackupTimeout,
			RunUpSpeedThreshold: RunUpSpeedThreshold,

			ProgressEpsilon:        ProgressEpsilon,
			ProgressFlatTicks:      ProgressFlatTicks,
			StagnationDistanceTime: StagnationDistanceTime,
			StagnationStateTime:    StagnationStateTime,

			BreadcrumbDepth:    BreadcrumbDepth,
			TargetPenaltyStep:  TargetPenaltyStep,
			TargetPenaltyDecay: TargetPenaltyDecay,
			EdgeFailDuration:   EdgeFailDuration,

			LoopWindow:        LoopWindow,
			LoopThreshold:     LoopThreshold,
			IdleCooldownMin:   IdleCooldownMin,
			IdleCooldownMax:   IdleCooldownMax,
			EscapeMinDistance: EscapeMinDistance,
			FreeSpaceAttempts: FreeSpaceAttempts,

			CorridorMaxWidth:    CorridorMaxWidth,
			CorridorProbeHeight: CorridorProbeHeight,
			OverheadLockRadius:  OverheadLockRadius,
			CeilingProbe:        CeilingProbe,
			EdgeDropProbe:       EdgeDropProbe,

			ManualSnapRadius: ManualSnapRadius,
			ArriveTolerance:  ArriveTolerance,
		},
		World: WorldTuning{
			SpaceCellSize:    SpaceCellSize,
			ChecksumQuantum:  ChecksumQuantum,
			DriftConsecutive: DriftConsecutive,
			DriftCooldown:    DriftCooldown,
		},
	}
}

// LoadTuning overlays a TOML file on the defaults
// Unknown keys are rejected so typos do not silently fall back to defaults
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidTuning, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate rejects values that would stall or destabilize the simulation
func (t Tuning) Validate() error {
	m, g, s, b, w := t.Motion, t.Graph, t.Search, t.Brain, t.World

	positive := []struct {
		name string
		v    float64
	}{
		{"motion.body_half_width", m.BodyHalfWidth},
		{"motion.body_half_height", m.BodyHalfHeight},
		{"motion.crouch_half_height", m.CrouchHalfHeight},
		{"motion.max_substep", m.MaxSubstep},
		{"motion.gravity", m.Gravity},
		{"motion.terminal_velocity", m.TerminalVelocity},
		{"motion.run_speed", m.RunSpeed},
		{"motion.jump_velocity", m.JumpVelocity},
		{"graph.min_stand_width", g.MinStandWidth},
		{"graph.rebuild_interval", g.RebuildInterval},
		{"graph.sample_step", g.SampleStep},
		{"graph.sample_max_time", g.SampleMaxTime},
		{"graph.safe_margin", g.SafeMargin},
		{"graph.backoff_base", g.BackoffBase},
		{"graph.backoff_cap", g.BackoffCap},
		{"graph.backoff_decay_window", g.BackoffDecayWindow},
		{"search.settle_cost", s.SettleCost},
		{"brain.target_temperature_near", b.TargetTemperatureNear},
		{"brain.target_temperature_far", b.TargetTemperatureFar},
		{"brain.loop_window", b.LoopWindow},
		{"brain.target_rescore_interval", b.TargetRescoreInterval},
		{"brain.progress_epsilon", b.ProgressEpsilon},
		{"world.checksum_quantum", w.ChecksumQuantum},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.v)
		}
	}

	switch {
	case m.CrouchHalfHeight > m.BodyHalfHeight:
		return fmt.Errorf("%w: crouch height exceeds standing height", ErrInvalidTuning)
	case m.MaxAirJumps < 0 || m.MaxAirJumps > 2:
		return fmt.Errorf("%w: motion.max_air_jumps must be within [0,2], got %d", ErrInvalidTuning, m.MaxAirJumps)
	case m.JumpGaugeMin >= m.JumpGaugeMax:
		return fmt.Errorf("%w: jump gauge range is empty", ErrInvalidTuning)
	case g.BackoffMultiplier <= 1:
		return fmt.Errorf("%w: graph.backoff_multiplier must exceed 1, got %v", ErrInvalidTuning, g.BackoffMultiplier)
	case g.BackoffCap < g.BackoffBase:
		return fmt.Errorf("%w: graph.backoff_cap below backoff_base", ErrInvalidTuning)
	case g.TakeoffSamples < 1:
		return fmt.Errorf("%w: graph.takeoff_samples must be at least 1", ErrInvalidTuning)
	case s.Budget < 1 || s.ReachBudget < 1 || s.DetourBudget < 1:
		return fmt.Errorf("%w: search budgets must be at least 1", ErrInvalidTuning)
	case b.TargetTopK < 1:
		return fmt.Errorf("%w: brain.target_top_k must be at least 1", ErrInvalidTuning)
	case b.BreadcrumbDepth < 1:
		return fmt.Errorf("%w: brain.breadcrumb_depth must be at least 1", ErrInvalidTuning)
	case b.LoopThreshold < 2:
		return fmt.Errorf("%w: brain.loop_threshold must be at least 2", ErrInvalidTuning)
	case b.ProgressFlatTicks < 1:
		return fmt.Errorf("%w: brain.progress_flat_ticks must be at least 1", ErrInvalidTuning)
	case b.IdleCooldownMax < b.IdleCooldownMin:
		return fmt.Errorf("%w: idle cooldown range is empty", ErrInvalidTuning)
	case w.SpaceCellSize < 1:
		return fmt.Errorf("%w: world.space_cell_size must be at least 1", ErrInvalidTuning)
	case w.DriftConsecutive < 1:
		return fmt.Errorf("%w: world.drift_consecutive must be at least 1", ErrInvalidTuning)
	}
	return nil
}

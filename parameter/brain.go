package parameter

// Brain - Target selection
const (
	// TargetMinDistance excludes candidates too close to be worth a trip
	TargetMinDistance = 96.0

	// TargetSweetDistance is the preferred trip length
	TargetSweetDistance = 380.0

	// TargetSweetWidth is the falloff around the sweet distance
	TargetSweetWidth = 300.0

	// TargetMaxDistance excludes candidates beyond this range
	TargetMaxDistance = 1600.0

	// TargetFarMultiplier stretches the sweet distance in prefer-far mode
	TargetFarMultiplier = 2.2

	// TargetPreferFarChance is the probability a pick runs in prefer-far mode
	TargetPreferFarChance = 0.3

	TargetDistanceWeight   = 2.0
	TargetVerticalWeight   = 0.5
	TargetNoveltyPenalty   = 1.2
	TargetFairnessWeight   = 0.8
	TargetSightBonus       = 0.4
	TargetComplexityWeight = 0.12
	TargetNoiseAmplitude   = 0.3

	// TargetHysteresisBonus keeps the locked or active target attractive
	TargetHysteresisBonus = 2.5

	// TargetRescoreInterval is how often an active target is scored against the field
	TargetRescoreInterval = 1.5

	// TargetTopK is the size of the weighted-random pool
	TargetTopK = 5

	// TargetTemperatureNear and TargetTemperatureFar soften the pick distribution
	TargetTemperatureNear = 0.45
	TargetTemperatureFar  = 1.1

	// TargetRecentDepth is how many past targets count as recent
	TargetRecentDepth = 6

	// TargetArriveDwell is the idle time after reaching a target
	TargetArriveDwell = 0.4
)

// Brain - Navigation states
const (
	// AlignTimeout fails an align that cannot find a takeoff
	AlignTimeout = 1.2

	// ApproachTimeout fails an approach that never reaches the band
	ApproachTimeout = 4.0

	// ReadyPatience is how long takeoff gates may hold the jump
	ReadyPatience = 0.3

	// ReadySpeedFraction of the sampled takeoff speed is required before jumping
	ReadySpeedFraction = 0.55

	// CommitTimeout fails a maneuver that never lands
	CommitTimeout = 2.5

	// BandTolerance widens takeoff bands at execution time
	BandTolerance = 2.0

	// BackupDistance is the run-up space gained before a distance jump
	BackupDistance = 56.0

	// BackupTimeout caps the backup phase
	BackupTimeout = 0.7

	// RunUpSpeedThreshold marks edges whose sampled takeoff speed needs a run-up
	RunUpSpeedThreshold = 180.0
)

// Brain - Progress and stagnation
const (
	// ProgressEpsilon is the minimum improvement on any axis that counts as progress
	ProgressEpsilon = 3.0

	// ProgressFlatTicks without progress declares the plan flat
	ProgressFlatTicks = 150

	// StagnationDistanceTime without closing distance fails the active step
	StagnationDistanceTime = 5.0

	// StagnationStateTime in one nav state without advancing fails the active step
	StagnationStateTime = 4.0
)

// Brain - Recovery
const (
	// BreadcrumbDepth bounds the rewind stack
	BreadcrumbDepth = 12

	// TargetPenaltyStep is added to a target's penalty on each failure
	TargetPenaltyStep = 1.5

	// TargetPenaltyDecay is subtracted per second
	TargetPenaltyDecay = 0.05

	// EdgeFailDuration is the base invalidation applied by recovery
	EdgeFailDuration = BackoffBase
)

// Brain - Loop guard
const (
	// LoopWindow is the sliding window for signature recurrence
	LoopWindow = 15.0

	// LoopThreshold recurrences trigger a hard fallback
	LoopThreshold = 3

	// IdleCooldownMin and IdleCooldownMax bound the randomized idle
	IdleCooldownMin = 0.8
	IdleCooldownMax = 2.5

	// EscapeMinDistance is the minimum distance of an escape platform
	EscapeMinDistance = 200.0

	// FreeSpaceAttempts bounds the random free coordinate search
	FreeSpaceAttempts = 24
)

// Brain - Corridor behaviors
const (
	// CorridorMaxWidth is the widest gap between walls treated as a corridor
	CorridorMaxWidth = 96.0

	// CorridorProbeHeight is the vertical extent of the wall probe
	CorridorProbeHeight = 120.0

	// OverheadLockRadius is the horizontal distance within which a target counts as overhead
	OverheadLockRadius = 28.0

	// CeilingProbe is how far above the head a ceiling is searched
	CeilingProbe = 40.0

	// EdgeDropProbe is how far past a ledge the floor below is searched
	EdgeDropProbe = 400.0
)

// Brain - Manual target
const (
	// ManualSnapRadius is the farthest a manual coordinate snaps to a surface
	ManualSnapRadius = 180.0

	// ArriveTolerance is the horizontal slack for reaching a coordinate target
	ArriveTolerance = 12.0
)

package parameter

// Graph - Nodes and reach window
const (
	// MinStandWidth is the narrowest rect that becomes a graph node
	MinStandWidth = 24.0

	// GraphReachX is horizontal half-width of the candidate scan window
	GraphReachX = 460.0

	// GraphReachUp is how far above a node's top candidates are scanned
	GraphReachUp = 380.0

	// GraphReachDown is how far below a node's top candidates are scanned
	GraphReachDown = 640.0

	// GraphRebuildInterval is seconds between periodic rebuilds
	GraphRebuildInterval = 1.0
)

// Graph - Classification
const (
	// WalkMaxStep is the height delta still treated as equal height
	WalkMaxStep = 10.0

	// WalkMaxGap is the horizontal gap still treated as walkable
	WalkMaxGap = 6.0

	// DropCloseGap separates drop-edge from jump-down
	DropCloseGap = 56.0

	// WallLikeMaxWidth is the widest rect considered a wall
	WallLikeMaxWidth = 28.0

	// WallLikeMinHeight is the shortest rect considered a wall
	WallLikeMinHeight = 90.0

	// WallProximity is the distance at which a wall can assist a climb
	WallProximity = 72.0
)

// Graph - Ballistic sampling
const (
	// TakeoffSamples is the number of takeoff X positions tried per policy
	TakeoffSamples = 7

	// SampleMaxTime bounds a simulated maneuver
	SampleMaxTime = 2.2

	// SampleStep is the tick used for simulated maneuvers
	SampleStep = 1.0 / 60.0

	// SafeMargin keeps landing bands strictly inside the destination
	SafeMargin = 6.0

	// HeadClearance is the free space required above the body at takeoff
	HeadClearance = 16.0

	// RunUpDistance is the approach run before a sampled takeoff at speed
	RunUpDistance = 48.0
)

// Graph - Cost
const (
	CostWalk        = 0.0
	CostDropEdge    = 12.0
	CostDropThrough = 18.0
	CostJumpGap     = 30.0
	CostJumpHigh    = 42.0
	CostJumpDown    = 20.0
	CostWallJump    = 70.0

	// NarrowLandingWidth is the landing width below which a penalty applies
	NarrowLandingWidth = 56.0

	// NarrowLandingPenalty scales with how narrow the landing is
	NarrowLandingPenalty = 40.0

	// PillarPenalty applies to landings taller than wide
	PillarPenalty = 25.0

	// TightBandWidth is the band width below which a penalty applies
	TightBandWidth = 14.0

	// TightBandPenalty scales with how tight the takeoff or landing band is
	TightBandPenalty = 30.0

	// AirJumpCost is added per required air jump
	AirJumpCost = 35.0
)

// Graph - Backoff
const (
	// BackoffBase is the first invalidation duration in seconds
	BackoffBase = 1.5

	// BackoffMultiplier scales the duration per strike
	BackoffMultiplier = 2.0

	// BackoffCap is the longest invalidation
	BackoffCap = 45.0

	// BackoffDecayWindow removes one strike per elapsed window
	BackoffDecayWindow = 12.0
)

package parameter

// Search - A*
const (
	// HeuristicClimbWeight multiplies vertical gain toward the goal
	HeuristicClimbWeight = 3.0

	// HeuristicDescentWeight multiplies vertical loss toward the goal
	HeuristicDescentWeight = 0.25

	// SettleCost is the price of standing still to regain jump resources
	SettleCost = 4.0

	// SearchBudget is the expansion cap for normal planning
	SearchBudget = 6000

	// ReachBudget is the expansion cap for cheap reachability checks
	ReachBudget = 400
)

// Search - Local solver
const (
	// SolverRadius bounds candidates for single-hop synthesis
	SolverRadius = 520.0

	// SolverWidthWeight scores forgiving landings
	SolverWidthWeight = 0.5

	// SolverProgressWeight scores distance reduction toward the goal
	SolverProgressWeight = 1.0

	// SolverVerticalBonus scores vertical gain
	SolverVerticalBonus = 2.5
)

// Search - Detour
const (
	// DetourRadius bounds intermediate waypoint candidates
	DetourRadius = 420.0

	// DetourMinGain is the required reduction in remaining cost-to-goal
	DetourMinGain = 40.0

	// DetourBudget is the expansion cap for detour legs
	DetourBudget = 300

	// DetourFailTTL remembers a dead (ground, target) pair
	DetourFailTTL = 6.0
)

package navigation

import (
	"fmt"
)

// Action is the maneuver kind of an edge
type Action uint8

const (
	ActionWalk Action = iota
	ActionDropEdge
	ActionDropThrough
	ActionJumpGap
	ActionJumpHigh
	ActionJumpDown
	ActionWallJump
)

var actionNames = [...]string{"walk", "drop-edge", "drop-through", "jump-gap", "jump-high", "jump-down", "wall-jump"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", a)
}

// IsJump reports actions that consume jump readiness
func (a Action) IsJump() bool {
	switch a {
	case ActionJumpGap, ActionJumpHigh, ActionJumpDown, ActionWallJump:
		return true
	}
	return false
}

// Band is a horizontal interval at a fixed Y, body-center coordinates
type Band struct {
	MinX, MaxX float64
	Y          float64
}

func (b Band) Width() float64  { return b.MaxX - b.MinX }
func (b Band) Center() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Band) Contains(x, tol float64) bool {
	return x >= b.MinX-tol && x <= b.MaxX+tol
}

// EdgeKey identifies an edge for backoff bookkeeping
type EdgeKey struct {
	From, To int
	Action   Action
}

func (k EdgeKey) String() string {
	return fmt.Sprintf("%d->%d/%s", k.From, k.To, k.Action)
}

// Edge is a directed maneuver between two platforms
type Edge struct {
	From, To int
	Action   Action
	Cost     float64

	Takeoff Band
	Landing Band
	Facing  int

	// Resource requirements
	NeedsJump  bool
	AirJumps   int
	NeedsLatch bool

	// Parameters of the sampled execution
	TakeoffSpeed float64
	Gauge        float64
	WallX        float64

	InvalidUntil float64
	FailReason   string

	// Injected edges come from the local solver and live until the next rebuild
	Injected bool
}

func (e *Edge) Key() EdgeKey {
	return EdgeKey{From: e.From, To: e.To, Action: e.Action}
}

// Available reports whether the edge is out of backoff at now
func (e *Edge) Available(now float64) bool {
	return now >= e.InvalidUntil
}

func (e *Edge) String() string {
	return fmt.Sprintf("%s cost=%.1f air=%d", e.Key(), e.Cost, e.AirJumps)
}

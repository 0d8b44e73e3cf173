package telemetry

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies diagnostic events
type Kind uint8

const (
	KindTargetPick Kind = iota
	KindReroute
	KindLoopFallback
	KindWorldDrift
	KindEdgeInvalidated
	KindRecovery
	KindStagnation
	KindGraphRebuild
	KindManualTarget
	KindRespawn
	KindTargetReached
)

var kindNames = [...]string{
	"target-pick",
	"reroute",
	"loop-fallback",
	"world-drift",
	"edge-invalidated",
	"recovery",
	"stagnation",
	"graph-rebuild",
	"manual-target",
	"respawn",
	"target-reached",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Kinds lists every kind in declaration order
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Event is one diagnostic record with numeric context
// Zero-valued fields are omitted by sinks that render them
type Event struct {
	Kind    Kind
	Time    float64 // Simulated seconds
	Session uuid.UUID

	Platform int // Grounded platform id, 0 when airborne or unknown
	Target   int // Target platform id
	X, Y     float64
	Value    float64 // Kind-specific magnitude: score, duration, strike count
	Count    int
	Reason   string
}

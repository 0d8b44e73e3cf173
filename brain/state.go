package brain

import (
	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/world"
)

// Phase names the navigation sub-state
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAlign
	PhaseApproach
	PhaseReady
	PhaseCommit
	PhaseRecovery
)

var phaseNames = [...]string{"idle", "align", "approach", "ready", "commit", "recovery"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// navState is the tagged navigation sub-state, each variant carries only its own data
type navState interface {
	Phase() Phase
}

// idleState waits out a cooldown before picking a new target
type idleState struct {
	remaining float64
}

// alignState has no confirmed takeoff yet
type alignState struct{}

// approachState walks to the takeoff band, optionally backing up first for run-up
type approachState struct {
	backup        bool
	backupElapsed float64
	backupFromX   float64
}

// readyState holds the jump inside the band until the takeoff gates pass
type readyState struct {
	held float64
}

// commitState executes the active edge through a pilot until landing
type commitState struct {
	pilot   *navigation.Pilot
	from    world.Rect
	to      world.Rect
	elapsed float64
	left    bool
}

// recoveryState runs the escalation ladder on the next tick
type recoveryState struct {
	reason string
}

func (idleState) Phase() Phase     { return PhaseIdle }
func (alignState) Phase() Phase    { return PhaseAlign }
func (approachState) Phase() Phase { return PhaseApproach }
func (readyState) Phase() Phase    { return PhaseReady }
func (*commitState) Phase() Phase  { return PhaseCommit }
func (recoveryState) Phase() Phase { return PhaseRecovery }

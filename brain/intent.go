package brain

import (
	"github.com/lixenwraith/ledgewalker/navigation"
)

// Target is the current destination, a platform or a raw coordinate
type Target struct {
	Node int
	X, Y float64

	// Coordinate targets are steered directly without the graph
	Coordinate bool
	Manual     bool
}

// NavigationIntent is the decision loop's mutable per-tick state
// Lifecycle events reset it wholesale through Clear
type NavigationIntent struct {
	Target    Target
	HasTarget bool

	// Locked is the long-horizon goal, 0 when released
	Locked int

	// Via is an intermediate platform visited before resuming toward Locked
	Via int

	Path *navigation.Path
	Step int

	// Active is the single maneuver being aligned, approached or executed
	Active    navigation.Edge
	HasActive bool

	State navState

	Breadcrumbs []int
	Penalties   map[int]float64

	LastFailure string
}

func newIntent() NavigationIntent {
	return NavigationIntent{
		State:     idleState{},
		Penalties: make(map[int]float64),
	}
}

// Clear drops every plan, lock and history, used on respawn and manual target changes
func (n *NavigationIntent) Clear() {
	*n = newIntent()
}

// SetTarget replaces the target and any plan toward the previous one
func (n *NavigationIntent) SetTarget(t Target) {
	n.Target = t
	n.HasTarget = true
	n.Locked = t.Node
	n.Via = 0
	n.ClearPlan()
	n.State = alignState{}
}

// Release drops the target and lock, keeping history
func (n *NavigationIntent) Release() {
	n.Target = Target{}
	n.HasTarget = false
	n.Locked = 0
	n.Via = 0
	n.ClearPlan()
}

// ClearPlan drops the path and the active edge
func (n *NavigationIntent) ClearPlan() {
	n.Path = nil
	n.Step = 0
	n.Active = navigation.Edge{}
	n.HasActive = false
}

// Goal is the platform currently planned toward, the via point when one is set
func (n *NavigationIntent) Goal() int {
	if n.Via != 0 {
		return n.Via
	}
	return n.Target.Node
}

// Activate makes e the single active edge
func (n *NavigationIntent) Activate(e navigation.Edge) {
	n.Active = e
	n.HasActive = true
}

// NextEdge returns the next non-settle edge of the path from the current step
func (n *NavigationIntent) NextEdge() (navigation.Edge, bool) {
	if n.Path == nil {
		return navigation.Edge{}, false
	}
	for n.Step < len(n.Path.Steps) {
		st := n.Path.Steps[n.Step]
		if st.Edge != nil {
			return *st.Edge, true
		}
		n.Step++
	}
	return navigation.Edge{}, false
}

// Advance moves past the active edge after a successful landing
func (n *NavigationIntent) Advance() {
	if n.HasActive && n.Path != nil && n.Step < len(n.Path.Steps) {
		n.Step++
	}
	n.Active = navigation.Edge{}
	n.HasActive = false
}

// PushBreadcrumb records a platform left successfully, bounded by depth
func (n *NavigationIntent) PushBreadcrumb(id, depth int) {
	if id == 0 {
		return
	}
	if k := len(n.Breadcrumbs); k > 0 && n.Breadcrumbs[k-1] == id {
		return
	}
	n.Breadcrumbs = append(n.Breadcrumbs, id)
	if over := len(n.Breadcrumbs) - depth; over > 0 {
		n.Breadcrumbs = append(n.Breadcrumbs[:0], n.Breadcrumbs[over:]...)
	}
}

// Penalize raises a target's penalty
func (n *NavigationIntent) Penalize(id int, amount float64) {
	if id == 0 {
		return
	}
	n.Penalties[id] += amount
}

// DecayPenalties lowers every penalty by amount, dropping spent entries
func (n *NavigationIntent) DecayPenalties(amount float64) {
	for id, p := range n.Penalties {
		p -= amount
		if p <= 0 {
			delete(n.Penalties, id)
			continue
		}
		n.Penalties[id] = p
	}
}

package navigation

// RebuildGate throttles maneuver graph rebuilds to a fixed interval
// A periodic rebuild is skipped when the world revision is unchanged and nothing is pending
type RebuildGate struct {
	Interval float64

	// Rebuild bookkeeping
	LastBuild float64
	Revision  uint64
	Built     bool

	// PendingUpdate latches true on MarkDirty, cleared after a rebuild
	PendingUpdate bool

	// forced skips the interval on the next check
	forced bool
}

func NewRebuildGate(interval float64) *RebuildGate {
	return &RebuildGate{Interval: interval}
}

// Due reports whether a rebuild should run at now for the given world revision
// Checked once per tick by the graph owner
func (g *RebuildGate) Due(now float64, revision uint64) bool {
	if !g.Built || g.forced {
		return true
	}
	if now-g.LastBuild < g.Interval {
		return false
	}
	return g.PendingUpdate || revision != g.Revision
}

// Done records a completed rebuild
func (g *RebuildGate) Done(now float64, revision uint64) {
	g.LastBuild = now
	g.Revision = revision
	g.Built = true
	g.PendingUpdate = false
	g.forced = false
}

// MarkDirty forces a rebuild on the next eligible tick
func (g *RebuildGate) MarkDirty() {
	g.PendingUpdate = true
}

// Force makes the next check due regardless of the interval
func (g *RebuildGate) Force() {
	g.PendingUpdate = true
	g.forced = true
}

package brain

import (
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/world"
)

// DriftDetector compares the world checksum against a baseline on each revision bump
// Divergence on consecutive revisions signals that the geometry moved under the plan
type DriftDetector struct {
	consecutive int
	cooldown    float64

	baseline  uint64
	revision  uint64
	seeded    bool
	strikes   int
	quietTill float64
}

func NewDriftDetector(t parameter.WorldTuning) *DriftDetector {
	return &DriftDetector{
		consecutive: max(t.DriftConsecutive, 1),
		cooldown:    t.DriftCooldown,
	}
}

// Observe returns true when drift is confirmed and the cooldown allows acting on it
func (d *DriftDetector) Observe(w world.World, now float64) bool {
	rev := w.Revision()
	if d.seeded && rev == d.revision {
		return false
	}
	d.revision = rev

	sum := w.Checksum()
	if !d.seeded {
		d.baseline = sum
		d.seeded = true
		return false
	}
	if sum == d.baseline {
		d.strikes = 0
		return false
	}

	d.strikes++
	if d.strikes < d.consecutive || now < d.quietTill {
		return false
	}
	d.baseline = sum
	d.strikes = 0
	d.quietTill = now + d.cooldown
	return true
}

// Strikes returns consecutive divergent revisions seen so far
func (d *DriftDetector) Strikes() int { return d.strikes }

// Rebase adopts the current checksum as the baseline
func (d *DriftDetector) Rebase(w world.World) {
	d.baseline = w.Checksum()
	d.revision = w.Revision()
	d.seeded = true
	d.strikes = 0
}

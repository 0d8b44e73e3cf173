package navigation

import (
	"math"

	"github.com/lixenwraith/ledgewalker/parameter"
)

// strike tracks repeated failures of one edge key
type strike struct {
	count  int
	last   float64
	until  float64
	reason string
}

// Backoff escalates invalidation durations for chronically failing maneuvers
// Strikes decay one per elapsed decay window; duration = base * mult^(strikes-1), capped
// The table is keyed by EdgeKey and outlives graph rebuilds
type Backoff struct {
	multiplier float64
	limit      float64
	decay      float64
	base       float64

	entries map[EdgeKey]*strike
}

func NewBackoff(t parameter.GraphTuning) *Backoff {
	return &Backoff{
		multiplier: t.BackoffMultiplier,
		limit:      t.BackoffCap,
		decay:      t.BackoffDecayWindow,
		base:       t.BackoffBase,
		entries:    make(map[EdgeKey]*strike),
	}
}

// Strike records a failure and returns the time the key becomes available again
// base <= 0 uses the configured default
func (b *Backoff) Strike(key EdgeKey, reason string, base, now float64) float64 {
	if base <= 0 {
		base = b.base
	}
	s, ok := b.entries[key]
	if !ok {
		s = &strike{}
		b.entries[key] = s
	} else if b.decay > 0 {
		decayed := int(math.Floor((now - s.last) / b.decay))
		s.count = max(s.count-decayed, 0)
	}
	s.count++
	s.last = now
	s.reason = reason

	duration := min(base*math.Pow(b.multiplier, float64(s.count-1)), b.limit)
	s.until = max(s.until, now+duration)
	return s.until
}

// Until returns the availability time and reason for a key with recorded strikes
func (b *Backoff) Until(key EdgeKey) (float64, string, bool) {
	s, ok := b.entries[key]
	if !ok {
		return 0, "", false
	}
	return s.until, s.reason, true
}

// Strikes returns the current strike count without applying decay
func (b *Backoff) Strikes(key EdgeKey) int {
	if s, ok := b.entries[key]; ok {
		return s.count
	}
	return 0
}

// Prune drops keys whose strikes have fully decayed
func (b *Backoff) Prune(now float64) {
	for k, s := range b.entries {
		if now < s.until {
			continue
		}
		if b.decay > 0 && now-s.last >= float64(s.count)*b.decay {
			delete(b.entries, k)
		}
	}
}

// Reset forgets every strike
func (b *Backoff) Reset() {
	clear(b.entries)
}

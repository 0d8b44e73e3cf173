package brain

import (
	"github.com/lixenwraith/ledgewalker/navigation"
)

// Signature identifies a repeating failure situation
type Signature struct {
	Platform int
	Target   int
	Phase    Phase
	Edge     navigation.EdgeKey
	Reason   string
}

type sighting struct {
	sig Signature
	at  float64
}

// LoopGuard counts signature recurrences inside a sliding time window
type LoopGuard struct {
	window    float64
	threshold int
	history   []sighting
}

func NewLoopGuard(window float64, threshold int) *LoopGuard {
	return &LoopGuard{window: window, threshold: threshold}
}

// Record adds a sighting and reports whether the signature recurred past the threshold
func (l *LoopGuard) Record(sig Signature, now float64) (int, bool) {
	l.expire(now)
	l.history = append(l.history, sighting{sig: sig, at: now})

	n := 0
	for _, s := range l.history {
		if s.sig == sig {
			n++
		}
	}
	return n, n >= l.threshold
}

// Count returns in-window sightings of sig
func (l *LoopGuard) Count(sig Signature, now float64) int {
	l.expire(now)
	n := 0
	for _, s := range l.history {
		if s.sig == sig {
			n++
		}
	}
	return n
}

func (l *LoopGuard) expire(now float64) {
	cut := 0
	for cut < len(l.history) && now-l.history[cut].at > l.window {
		cut++
	}
	if cut > 0 {
		l.history = append(l.history[:0], l.history[cut:]...)
	}
}

// Reset forgets all sightings
func (l *LoopGuard) Reset() {
	l.history = l.history[:0]
}

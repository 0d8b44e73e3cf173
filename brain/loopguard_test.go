package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/ledgewalker/navigation"
)

func TestLoopGuardThresholdAndWindow(t *testing.T) {
	g := NewLoopGuard(15, 3)
	sig := Signature{Platform: 1, Target: 2, Phase: PhaseCommit, Edge: navigation.EdgeKey{From: 1, To: 2}, Reason: "bonk"}
	other := sig
	other.Reason = "timeout"

	n, loop := g.Record(sig, 0)
	assert.Equal(t, 1, n)
	assert.False(t, loop)

	g.Record(other, 1)
	n, loop = g.Record(sig, 2)
	assert.Equal(t, 2, n)
	assert.False(t, loop)

	// Old sightings slide out of the window
	n, loop = g.Record(sig, 20)
	assert.Equal(t, 1, n)
	assert.False(t, loop)

	g.Record(sig, 21)
	n, loop = g.Record(sig, 22)
	assert.Equal(t, 3, n)
	assert.True(t, loop)
	assert.Equal(t, 0, g.Count(other, 22))

	g.Reset()
	assert.Zero(t, g.Count(sig, 22))
}

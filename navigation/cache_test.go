package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebuildGate(t *testing.T) {
	g := NewRebuildGate(1.0)
	assert.True(t, g.Due(0, 1), "never built")

	g.Done(0, 1)
	assert.False(t, g.Due(0.5, 2), "interval not elapsed")
	assert.False(t, g.Due(1.0, 1), "unchanged world")
	assert.True(t, g.Due(1.0, 2), "revision changed")

	g.MarkDirty()
	assert.False(t, g.Due(0.9, 1))
	assert.True(t, g.Due(1.0, 1))

	g.Done(1.0, 1)
	assert.False(t, g.PendingUpdate)

	g.Force()
	assert.True(t, g.Due(1.1, 1), "forced ignores the interval")
	g.Done(1.1, 1)
	assert.False(t, g.Due(1.2, 1))
}

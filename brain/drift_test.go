package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/world"
)

func driftRects(dx, lift float64) []world.Rect {
	return []world.Rect{
		plat(1, 0+dx, 600, 300),
		plat(2, 400+dx, 600-lift, 300),
	}
}

func TestDriftNeedsConsecutiveDivergence(t *testing.T) {
	w := newWorld(driftRects(0, 0)...)
	d := NewDriftDetector(parameter.DefaultTuning().World)
	d.Rebase(w)
	assert.False(t, d.Observe(w, 0), "no revision bump")

	w.Replace(driftRects(0, 40))
	assert.False(t, d.Observe(w, 1))
	assert.Equal(t, 1, d.Strikes())

	w.Replace(driftRects(0, 40))
	assert.True(t, d.Observe(w, 1.5))
	assert.Zero(t, d.Strikes())

	// The drifted layout is the new baseline
	w.Replace(driftRects(0, 40))
	assert.False(t, d.Observe(w, 2))
}

func TestDriftRevertResets(t *testing.T) {
	w := newWorld(driftRects(0, 0)...)
	d := NewDriftDetector(parameter.DefaultTuning().World)
	d.Rebase(w)

	w.Replace(driftRects(0, 40))
	assert.False(t, d.Observe(w, 1))
	w.Replace(driftRects(0, 0))
	assert.False(t, d.Observe(w, 2))
	assert.Zero(t, d.Strikes())
	w.Replace(driftRects(0, 40))
	assert.False(t, d.Observe(w, 3))
}

func TestDriftIgnoresTranslation(t *testing.T) {
	w := newWorld(driftRects(0, 0)...)
	d := NewDriftDetector(parameter.DefaultTuning().World)
	d.Rebase(w)
	for i := 1; i <= 4; i++ {
		w.Replace(driftRects(float64(i)*50, 0))
		assert.False(t, d.Observe(w, float64(i)))
	}
}

func TestDriftCooldown(t *testing.T) {
	w := newWorld(driftRects(0, 0)...)
	d := NewDriftDetector(parameter.DefaultTuning().World)
	d.Rebase(w)

	w.Replace(driftRects(0, 40))
	d.Observe(w, 1)
	w.Replace(driftRects(0, 40))
	assert.True(t, d.Observe(w, 1))

	w.Replace(driftRects(0, 80))
	assert.False(t, d.Observe(w, 2))
	w.Replace(driftRects(0, 80))
	assert.False(t, d.Observe(w, 2.5), "inside cooldown")
	w.Replace(driftRects(0, 80))
	assert.True(t, d.Observe(w, 1+parameter.DriftCooldown))
}

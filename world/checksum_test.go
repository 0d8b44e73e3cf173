package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const quantum = 8.0

func sampleRects() []Rect {
	return []Rect{
		{ID: 1, X: 0, Y: 600, W: 400, H: 40, Flags: FlagSolid},
		{ID: 2, X: 500, Y: 600, W: 400, H: 40, Flags: FlagSolid},
		{ID: 3, X: 200, Y: 480, W: 140, H: 12, Flags: FlagOneWay},
		{ID: 4, X: 960, Y: 300, W: 24, H: 300, Flags: FlagSolid | FlagClimbable},
	}
}

func TestChecksumTranslationInvariant(t *testing.T) {
	base := Checksum(sampleRects(), quantum)

	for _, d := range [][2]float64{{13, -7}, {-500, 250}, {0.5, 0.25}, {1e4, 1e4}} {
		moved := sampleRects()
		for i := range moved {
			moved[i].X += d[0]
			moved[i].Y += d[1]
		}
		assert.Equal(t, base, Checksum(moved, quantum), "translation %v", d)
	}
}

func TestChecksumIgnoresIDsAndOrder(t *testing.T) {
	base := Checksum(sampleRects(), quantum)

	renumbered := sampleRects()
	for i := range renumbered {
		renumbered[i].ID = 100 - i
	}
	assert.Equal(t, base, Checksum(renumbered, quantum))

	reversed := sampleRects()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	assert.Equal(t, base, Checksum(reversed, quantum))
}

func TestChecksumDetectsChanges(t *testing.T) {
	base := Checksum(sampleRects(), quantum)

	tests := []struct {
		name   string
		mutate func(r []Rect)
	}{
		{"move one rect", func(r []Rect) { r[1].X += 2 * quantum }},
		{"resize width", func(r []Rect) { r[2].W += 2 * quantum }},
		{"resize height", func(r []Rect) { r[0].H += 2 * quantum }},
		{"toggle one-way off", func(r []Rect) { r[2].Flags = FlagSolid }},
		{"toggle one-way on", func(r []Rect) { r[0].Flags = FlagOneWay }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects := sampleRects()
			tt.mutate(rects)
			assert.NotEqual(t, base, Checksum(rects, quantum))
		})
	}
}

func TestChecksumToleratesSubQuantumJitter(t *testing.T) {
	base := Checksum(sampleRects(), quantum)
	jittered := sampleRects()
	jittered[1].X += quantum / 4
	assert.Equal(t, base, Checksum(jittered, quantum))
}

func TestChecksumEmpty(t *testing.T) {
	assert.Equal(t, Checksum(nil, quantum), Checksum([]Rect{}, quantum))
	assert.NotEqual(t, Checksum(nil, quantum), Checksum(sampleRects(), quantum))
}

package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLevel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLevel(t *testing.T) {
	path := writeLevel(t, `
name = "two ledges"
width = 800
height = 600

[spawn]
x = 50
y = 360

[[rect]]
id = 4
x = 0
y = 400
w = 300
h = 40

[[rect]]
x = 400
y = 400
w = 300
h = 12
flags = ["one_way"]
`)
	lvl, err := LoadLevel(path)
	require.NoError(t, err)
	assert.Equal(t, "two ledges", lvl.Name)

	rects, err := lvl.Build()
	require.NoError(t, err)
	require.Len(t, rects, 2)
	assert.Equal(t, 4, rects[0].ID)
	assert.True(t, rects[0].Solid(), "solid is the default flag")
	assert.Equal(t, 5, rects[1].ID, "missing ids follow the largest explicit id")
	assert.True(t, rects[1].OneWay())

	s, err := lvl.NewSpace(32, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s.Revision())
}

func TestLoadLevelErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"no rects", "name = \"x\"\nwidth = 10\nheight = 10\n", ErrEmptyLevel},
		{"bad flag", "width = 10\nheight = 10\n[[rect]]\nx=0\ny=0\nw=5\nh=5\nflags=[\"sticky\"]\n", ErrInvalidLevel},
		{"solid and one-way", "width = 10\nheight = 10\n[[rect]]\nx=0\ny=0\nw=5\nh=5\nflags=[\"solid\",\"one_way\"]\n", ErrInvalidLevel},
		{"duplicate id", "width = 10\nheight = 10\n[[rect]]\nid=1\nx=0\ny=0\nw=5\nh=5\n[[rect]]\nid=1\nx=0\ny=0\nw=5\nh=5\n", ErrInvalidLevel},
		{"unknown key", "width = 10\nheight = 10\ncolour = 3\n[[rect]]\nx=0\ny=0\nw=5\nh=5\n", ErrInvalidLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLevel(writeLevel(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestDemoLevelsBuild(t *testing.T) {
	names := DemoLevels()
	require.NotEmpty(t, names)
	for _, name := range names {
		lvl, ok := DemoLevel(name)
		require.True(t, ok, name)
		rects, err := lvl.Build()
		require.NoError(t, err, name)
		assert.NotEmpty(t, rects)
		assert.True(t, lvl.Bounds().Contains(lvl.Spawn.X, lvl.Spawn.Y), name)
	}
	_, ok := DemoLevel("absent")
	assert.False(t, ok)
}

package world

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/ledgewalker/vmath"
)

// ErrInvalidLevel is returned for malformed level documents
var ErrInvalidLevel = errors.New("invalid level")

// Point is a world coordinate
type Point struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// LevelRect is the file form of a Rect
type LevelRect struct {
	ID    int      `toml:"id"`
	X     float64  `toml:"x"`
	Y     float64  `toml:"y"`
	W     float64  `toml:"w"`
	H     float64  `toml:"h"`
	Flags []string `toml:"flags"`
}

// Level is a rect set with a spawn point, loadable from TOML
type Level struct {
	Name   string      `toml:"name"`
	Width  float64     `toml:"width"`
	Height float64     `toml:"height"`
	Spawn  Point       `toml:"spawn"`
	Rects  []LevelRect `toml:"rect"`
}

// LoadLevel decodes and validates a level file
func LoadLevel(path string) (Level, error) {
	var lvl Level
	md, err := toml.DecodeFile(path, &lvl)
	if err != nil {
		return Level{}, fmt.Errorf("decode level %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Level{}, fmt.Errorf("%w: unknown key %s", ErrInvalidLevel, undecoded[0])
	}
	if _, err := lvl.Build(); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

// Bounds returns the level extent anchored at the origin
func (l Level) Bounds() vmath.AABB {
	return vmath.AABB{MaxX: l.Width, MaxY: l.Height}
}

// Build converts file rects to world rects
// Rects without an id get one after the largest explicit id
func (l Level) Build() ([]Rect, error) {
	if len(l.Rects) == 0 {
		return nil, ErrEmptyLevel
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("%w: non-positive size %vx%v", ErrInvalidLevel, l.Width, l.Height)
	}

	nextID := 1
	for _, lr := range l.Rects {
		nextID = max(nextID, lr.ID+1)
	}

	seen := make(map[int]struct{}, len(l.Rects))
	rects := make([]Rect, 0, len(l.Rects))
	for i, lr := range l.Rects {
		if lr.W <= 0 || lr.H <= 0 {
			return nil, fmt.Errorf("%w: rect %d has non-positive size", ErrInvalidLevel, i)
		}
		flags, err := parseFlags(lr.Flags)
		if err != nil {
			return nil, fmt.Errorf("rect %d: %w", i, err)
		}
		id := lr.ID
		if id == 0 {
			id = nextID
			nextID++
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate rect id %d", ErrInvalidLevel, id)
		}
		seen[id] = struct{}{}
		rects = append(rects, Rect{ID: id, X: lr.X, Y: lr.Y, W: lr.W, H: lr.H, Flags: flags})
	}
	return rects, nil
}

// NewSpace builds a populated Space from the level
func (l Level) NewSpace(cellSize int, quantum float64) (*Space, error) {
	rects, err := l.Build()
	if err != nil {
		return nil, err
	}
	s := NewSpace(l.Bounds(), cellSize, quantum)
	s.Replace(rects)
	return s, nil
}

func parseFlags(names []string) (Flags, error) {
	if len(names) == 0 {
		return FlagSolid, nil
	}
	var f Flags
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "solid":
			f |= FlagSolid
		case "one_way", "oneway":
			f |= FlagOneWay
		case "climbable":
			f |= FlagClimbable
		default:
			return 0, fmt.Errorf("%w: unknown flag %q", ErrInvalidLevel, n)
		}
	}
	if f&FlagSolid != 0 && f&FlagOneWay != 0 {
		return 0, fmt.Errorf("%w: rect cannot be both solid and one-way", ErrInvalidLevel)
	}
	if f == FlagClimbable {
		f |= FlagSolid
	}
	return f, nil
}

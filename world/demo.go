package world

import "slices"

func solid(id int, x, y, w, h float64) LevelRect {
	return LevelRect{ID: id, X: x, Y: y, W: w, H: h, Flags: []string{"solid"}}
}

func oneWay(id int, x, y, w, h float64) LevelRect {
	return LevelRect{ID: id, X: x, Y: y, W: w, H: h, Flags: []string{"one_way"}}
}

func climbable(id int, x, y, w, h float64) LevelRect {
	return LevelRect{ID: id, X: x, Y: y, W: w, H: h, Flags: []string{"solid", "climbable"}}
}

// Built-in levels, ground top at y=600 unless noted
var demoLevels = map[string]Level{
	"gaps": {
		Name: "gaps", Width: 1700, Height: 900,
		Spawn: Point{X: 100, Y: 560},
		Rects: []LevelRect{
			solid(1, 0, 600, 400, 40),
			solid(2, 500, 600, 400, 40),
			solid(3, 1000, 600, 300, 40),
			solid(4, 1380, 500, 200, 40),
			oneWay(5, 200, 480, 140, 12),
			oneWay(6, 650, 470, 160, 12),
		},
	},
	"tower": {
		Name: "tower", Width: 1000, Height: 1400,
		Spawn: Point{X: 120, Y: 1260},
		Rects: []LevelRect{
			solid(1, 0, 1300, 1000, 40),
			solid(2, 300, 1190, 160, 24),
			solid(3, 560, 1080, 160, 24),
			oneWay(4, 300, 970, 200, 12),
			solid(5, 80, 860, 180, 24),
			solid(6, 400, 750, 240, 24),
			climbable(7, 700, 420, 24, 330),
			solid(8, 724, 420, 240, 24),
			solid(9, 380, 560, 140, 24),
		},
	},
	"shaft": {
		Name: "shaft", Width: 1100, Height: 1100,
		Spawn: Point{X: 200, Y: 960},
		Rects: []LevelRect{
			solid(1, 0, 1000, 1100, 40),
			solid(2, 400, 400, 20, 540),
			climbable(3, 490, 400, 20, 600),
			solid(4, 510, 400, 300, 24),
			solid(5, 200, 880, 120, 20),
			oneWay(6, 850, 300, 200, 12),
		},
	},
	"mixed": {
		Name: "mixed", Width: 1800, Height: 1000,
		Spawn: Point{X: 80, Y: 660},
		Rects: []LevelRect{
			solid(1, 0, 700, 500, 40),
			solid(2, 0, 560, 300, 20),
			solid(3, 600, 700, 300, 40),
			oneWay(4, 620, 580, 160, 12),
			solid(5, 960, 620, 200, 24),
			solid(6, 1240, 520, 24, 220),
			solid(7, 1264, 720, 400, 40),
			solid(8, 1300, 600, 200, 20),
			solid(9, 1560, 430, 200, 24),
			oneWay(10, 980, 480, 140, 12),
		},
	},
}

// DemoLevel returns a built-in level by name
func DemoLevel(name string) (Level, bool) {
	lvl, ok := demoLevels[name]
	if !ok {
		return Level{}, false
	}
	lvl.Rects = slices.Clone(lvl.Rects)
	return lvl, true
}

// DemoLevels lists built-in level names in sorted order
func DemoLevels() []string {
	names := make([]string, 0, len(demoLevels))
	for n := range demoLevels {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

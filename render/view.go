package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ledgewalker/brain"
	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/physics"
	"github.com/lixenwraith/ledgewalker/world"
)

// Frame is one snapshot of simulation state to draw
type Frame struct {
	Level    string
	Time     float64
	Rects    []world.Rect
	Graph    *navigation.Graph
	Pose     physics.Pose
	Intent   brain.NavigationIntent
	Phase    brain.Phase
	Behavior brain.Behavior

	Paused bool
	Muted  bool

	// Note is the latest telemetry line, shown at the right of the status bar
	Note string
	Warn bool
}

// View draws frames to a tcell screen, the bottom row is the status bar
type View struct {
	screen tcell.Screen
	cam    *Camera
}

func NewView(screen tcell.Screen, cam *Camera) *View {
	return &View{screen: screen, cam: cam}
}

func (v *View) Camera() *Camera { return v.cam }

// Draw renders a full frame and shows it
func (v *View) Draw(f Frame) {
	w, h := v.screen.Size()
	v.cam.Resize(w, h-1)
	v.cam.Follow(f.Pose.X, f.Pose.Y)

	v.screen.Fill(' ', styleBase)
	for _, r := range f.Rects {
		v.drawRect(r)
	}
	v.drawPlan(f)
	v.drawAgent(f.Pose)
	v.drawStatus(f, w, h-1)
	v.screen.Show()
}

func (v *View) put(col, row int, ch rune, style tcell.Style) {
	if v.cam.Visible(col, row) {
		v.screen.SetContent(col, row, ch, nil, style)
	}
}

// putWorld draws at the cell holding a world point
func (v *View) putWorld(x, y float64, ch rune, style tcell.Style) {
	col, row := v.cam.ToCell(x, y)
	v.put(col, row, ch, style)
}

func (v *View) drawRect(r world.Rect) {
	c0, r0 := v.cam.ToCell(r.Left(), r.Top())
	c1, r1 := v.cam.ToCell(r.Right()-0.01, r.Bottom()-0.01)

	ch, style := '█', styleSolid
	switch {
	case r.Climbable():
		ch, style = '#', styleClimb
	case r.OneWay():
		ch, style = '▔', styleOneWay
		r1 = r0
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			v.put(col, row, ch, style)
		}
	}
}

// drawPlan marks the remaining path, the active edge's bands and the target
func (v *View) drawPlan(f Frame) {
	in := f.Intent
	if in.Path != nil && f.Graph != nil {
		for _, id := range in.Path.Nodes {
			if r, ok := f.Graph.Node(id); ok {
				v.putWorld(r.CenterX(), r.Top()-1, '·', stylePath)
			}
		}
	}
	if in.HasActive {
		v.drawBand(in.Active.Takeoff, '^', styleTakeoff)
		v.drawBand(in.Active.Landing, 'v', styleLanding)
	}
	if in.HasTarget {
		style := styleTarget
		if in.Target.Manual {
			style = styleManual
		}
		v.putWorld(in.Target.X, in.Target.Y-1, 'X', style)
	}
}

func (v *View) drawBand(b navigation.Band, ch rune, style tcell.Style) {
	c0, row := v.cam.ToCell(b.MinX, b.Y-1)
	c1, _ := v.cam.ToCell(b.MaxX, b.Y-1)
	for col := c0; col <= c1; col++ {
		v.put(col, row, ch, style)
	}
}

func (v *View) drawAgent(p physics.Pose) {
	_, head := v.cam.ToCell(p.X, p.Head())
	col, feet := v.cam.ToCell(p.X, p.Feet()-0.01)
	for row := head; row < feet; row++ {
		v.put(col, row, '|', styleAgent)
	}
	v.put(col, feet, '@', styleAgent)
}

func (v *View) drawStatus(f Frame, w, row int) {
	if row < 0 {
		return
	}
	for col := 0; col < w; col++ {
		v.screen.SetContent(col, row, ' ', nil, styleStatus)
	}

	target := "-"
	if f.Intent.HasTarget {
		switch t := f.Intent.Target; {
		case t.Coordinate:
			target = fmt.Sprintf("(%.0f,%.0f)", t.X, t.Y)
		default:
			target = fmt.Sprintf("#%d", t.Node)
		}
		if f.Intent.Target.Manual {
			target += "*"
		}
	}
	left := fmt.Sprintf(" %s t=%.1f %s/%s ground=%d target=%s",
		f.Level, f.Time, f.Phase, f.Behavior, f.Pose.GroundID, target)
	if f.Paused {
		left += " [paused]"
	}
	if f.Muted {
		left += " [muted]"
	}
	col := v.text(0, row, w, left, styleStatus)

	if f.Note != "" && col < w-1 {
		style := styleStatus
		if f.Warn {
			style = styleWarn
		}
		v.text(max(col+2, w-len(f.Note)-1), row, w, f.Note, style)
	}
}

// text writes s from col, clipped at w, returning the column after the last rune
func (v *View) text(col, row, w int, s string, style tcell.Style) int {
	for _, ch := range s {
		if col >= w {
			break
		}
		v.screen.SetContent(col, row, ch, nil, style)
		col++
	}
	return col
}

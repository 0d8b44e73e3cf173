// @focus: #sys { io } #input { keys, mouse }
package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/ledgewalker/audio"
	"github.com/lixenwraith/ledgewalker/engine"
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/render"
	"github.com/lixenwraith/ledgewalker/telemetry"
	"github.com/lixenwraith/ledgewalker/vmath"
	"github.com/lixenwraith/ledgewalker/world"
)

// noteSink keeps the latest event line for the status bar
type noteSink struct {
	text string
	warn bool
}

func (n *noteSink) Emit(e telemetry.Event) {
	n.text = e.Kind.String()
	if e.Reason != "" {
		n.text += " " + e.Reason
	}
	n.warn = e.Kind == telemetry.KindLoopFallback || e.Kind == telemetry.KindWorldDrift
}

func RunCmd(opts *options) *cobra.Command {
	var sound string
	c := &cobra.Command{
		Use:   "run",
		Short: "Watch the agent in the terminal; click to set a manual target",
		Long: `Keys: q/Esc quit, space pause, c clear manual target, r respawn,
d lift a random platform (world drift), m mute. Left click sets a manual target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts, sound)
		},
	}
	c.Flags().StringVar(&sound, "audio", "off", "audio cues: off, pipe, speaker")
	return c
}

// session is the interactive loop state
type session struct {
	opts   *options
	runner *engine.Runner
	view   *render.View
	screen tcell.Screen
	cues   *audio.CueSink
	note   *noteSink
	rng    *vmath.FastRand
}

func runInteractive(opts *options, sound string) error {
	lvl, err := opts.loadLevel()
	if err != nil {
		return err
	}
	tun, err := opts.loadTuning()
	if err != nil {
		return err
	}

	s := &session{opts: opts, note: &noteSink{}, rng: vmath.NewFastRand(opts.seed)}
	transport := telemetry.Fanout{s.note}
	if opts.logFile != "" {
		// Logs on stderr would tear the screen
		transport = append(transport, telemetry.NewLogSink(opts.logger))
	}

	if s.cues, err = startCues(sound); err != nil {
		return err
	}
	if s.cues != nil {
		defer s.cues.Stop()
		transport = append(transport, s.cues)
	}

	if s.runner, err = engine.NewRunner(tun, lvl, transport, opts.seed); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	s.screen = screen
	s.view = render.NewView(screen, render.NewCamera(parameter.ViewCellWidth, parameter.ViewCellHeight, lvl.Bounds()))
	opts.logger.Info("run start", "level", lvl.Name, "session", s.runner.Session().String(), "audio", sound)
	s.loop()
	return nil
}

func startCues(mode string) (*audio.CueSink, error) {
	switch mode {
	case "off", "":
		return nil, nil
	case "pipe":
		c := audio.NewCueSink()
		return c, c.Start()
	case "speaker":
		c := audio.NewCueSink()
		return c, c.StartSpeaker()
	}
	return nil, fmt.Errorf("invalid audio mode: %s", mode)
}

func (s *session) loop() {
	ticker := time.NewTicker(time.Second / time.Duration(s.opts.tickRate))
	defer ticker.Stop()
	frame := time.NewTicker(parameter.FrameUpdateInterval)
	defer frame.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	dt := s.opts.dt()
	for {
		select {
		case ev := <-events:
			if !s.handle(ev) {
				return
			}
		case <-ticker.C:
			s.runner.Step(dt)
		case <-frame.C:
			s.draw()
		}
	}
}

func (s *session) draw() {
	r := s.runner
	b := r.Brain()
	s.view.Draw(render.Frame{
		Level:    r.Level().Name,
		Time:     r.Clock().Now(),
		Rects:    r.World().Rects(),
		Graph:    b.Graph(),
		Pose:     r.Pose(),
		Intent:   b.Intent(),
		Phase:    b.Phase(),
		Behavior: b.Behavior(),
		Paused:   r.Clock().Paused(),
		Muted:    s.cues != nil && s.cues.Muted(),
		Note:     s.note.text,
		Warn:     s.note.warn,
	})
}

// handle applies one terminal event, false to quit
func (s *session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return s.key(ev.Rune())
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := s.view.Camera().ToWorld(ev.Position())
			if !s.runner.SetManualTarget(x, y) {
				s.note.text, s.note.warn = "no surface in reach", true
			}
		}

	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *session) key(ch rune) bool {
	switch ch {
	case 'q':
		return false
	case ' ':
		s.runner.Clock().Toggle()
	case 'c':
		s.runner.ClearManualTarget()
	case 'r':
		s.runner.Respawn()
	case 'm':
		if s.cues != nil {
			s.cues.ToggleMute()
		}
	case 'd':
		s.runner.ReplaceWorld(nudge(s.runner.World().Rects(), s.rng))
	}
	return true
}

// nudge lifts one random rect by DriftNudge, returning a new slice
func nudge(rects []world.Rect, rng *vmath.FastRand) []world.Rect {
	out := make([]world.Rect, len(rects))
	copy(out, rects)
	if len(out) == 0 {
		return out
	}
	i := rng.Intn(len(out))
	out[i].Y = max(out[i].Y-parameter.DriftNudge, 0)
	return out
}

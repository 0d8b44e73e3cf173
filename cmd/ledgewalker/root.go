package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/world"
)

// options are the flags shared by every subcommand
type options struct {
	level     string
	seed      uint64
	tuning    string
	logLevel  string
	logFormat string
	logFile   string
	tickRate  int

	logger  *slog.Logger
	closeFn func() error
}

var errTickRate = errors.New("tick rate must be at least 20")

func RootCmd() *cobra.Command {
	opts := &options{}
	c := &cobra.Command{
		Use:           "ledgewalker",
		Short:         "Autonomous platformer navigation sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closeFn != nil {
				return opts.closeFn()
			}
			return nil
		},
	}

	f := c.PersistentFlags()
	f.StringVarP(&opts.level, "level", "l", "gaps", "demo level name or level TOML file")
	f.Uint64Var(&opts.seed, "seed", parameter.DefaultSeed, "target selection seed")
	f.StringVar(&opts.tuning, "tuning", "", "tuning override TOML file")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "text", "log format: text, json")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to a file instead of stderr")
	f.IntVar(&opts.tickRate, "tick-rate", parameter.TickRate, "simulation ticks per second")

	c.AddCommand(RunCmd(opts), SimCmd(opts), GraphCmd(opts), LevelsCmd())
	return c
}

// setup validates shared flags and opens the log destination
func (o *options) setup(cmd *cobra.Command) error {
	if o.tickRate < 20 {
		return fmt.Errorf("%w, got %d", errTickRate, o.tickRate)
	}

	out := cmd.ErrOrStderr()
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
		o.closeFn = f.Close
	}

	logger, err := newLogger(out, o.logLevel, o.logFormat)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

// dt returns the fixed step for the tick rate
func (o *options) dt() float64 { return 1.0 / float64(o.tickRate) }

// loadLevel resolves a demo name first, then a file path
func (o *options) loadLevel() (world.Level, error) {
	if lvl, ok := world.DemoLevel(o.level); ok {
		return lvl, nil
	}
	lvl, err := world.LoadLevel(o.level)
	if err != nil {
		return world.Level{}, fmt.Errorf("level %q is neither a demo (%v) nor a readable file: %w",
			o.level, world.DemoLevels(), err)
	}
	return lvl, nil
}

// loadTuning returns defaults or the override file
func (o *options) loadTuning() (parameter.Tuning, error) {
	if o.tuning == "" {
		return parameter.DefaultTuning(), nil
	}
	return parameter.LoadTuning(o.tuning)
}

func LevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List built-in demo levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range world.DemoLevels() {
				lvl, _ := world.DemoLevel(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %4.0fx%-4.0f %d rects\n", name, lvl.Width, lvl.Height, len(lvl.Rects))
			}
			return nil
		},
	}
}

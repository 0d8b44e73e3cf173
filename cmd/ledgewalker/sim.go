package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ledgewalker/engine"
	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/telemetry"
)

// tally counts events per kind
type tally [16]int

func (t *tally) Emit(e telemetry.Event) {
	if int(e.Kind) < len(t) {
		t[e.Kind]++
	}
}

func SimCmd(opts *options) *cobra.Command {
	var ticks int
	c := &cobra.Command{
		Use:   "sim",
		Short: "Run the agent headless and log its telemetry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runSim(ctx, opts, ticks, cmd.OutOrStdout())
		},
	}
	c.Flags().IntVarP(&ticks, "ticks", "n", parameter.DefaultSimTicks, "ticks to simulate")
	return c
}

func runSim(ctx context.Context, opts *options, ticks int, out io.Writer) error {
	lvl, err := opts.loadLevel()
	if err != nil {
		return err
	}
	tun, err := opts.loadTuning()
	if err != nil {
		return err
	}

	counts := &tally{}
	transport := telemetry.Fanout{telemetry.NewLogSink(opts.logger), counts}
	r, err := engine.NewRunner(tun, lvl, transport, opts.seed)
	if err != nil {
		return err
	}
	opts.logger.Info("sim start", "level", lvl.Name, "ticks", ticks, "seed", opts.seed, "session", r.Session().String())

	n, err := r.Run(ctx, ticks, opts.dt())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	pose := r.Pose()
	fmt.Fprintf(out, "level %s: %d ticks, %.1fs simulated, session %s\n", lvl.Name, n, r.Clock().Now(), r.Session())
	for _, k := range telemetry.Kinds() {
		if counts[k] > 0 {
			fmt.Fprintf(out, "  %-17s %d\n", k, counts[k])
		}
	}
	fmt.Fprintf(out, "final pose (%.0f, %.0f) ground=%d phase=%s dropped=%d\n",
		pose.X, pose.Y, pose.GroundID, r.Brain().Phase(), r.Dropped())
	return nil
}

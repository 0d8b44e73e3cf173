package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ledgewalker/navigation"
	"github.com/lixenwraith/ledgewalker/parameter"
)

var errNoRoute = errors.New("no route")

func GraphCmd(opts *options) *cobra.Command {
	var from, to int
	c := &cobra.Command{
		Use:   "graph",
		Short: "Print the maneuver graph of a level, optionally a path between two platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := opts.loadLevel()
			if err != nil {
				return err
			}
			tun, err := opts.loadTuning()
			if err != nil {
				return err
			}
			space, err := lvl.NewSpace(tun.World.SpaceCellSize, tun.World.ChecksumQuantum)
			if err != nil {
				return err
			}
			g := navigation.NewGraph(tun)
			edges := g.Rebuild(space, 0)
			opts.logger.Debug("graph built", "level", lvl.Name, "nodes", len(g.Nodes()), "edges", edges)

			out := cmd.OutOrStdout()
			printGraph(out, g)
			if from != 0 && to != 0 {
				return printPath(out, g, tun, from, to)
			}
			return nil
		},
	}
	c.Flags().IntVar(&from, "from", 0, "source platform id for a path query")
	c.Flags().IntVar(&to, "to", 0, "destination platform id for a path query")
	return c
}

func printGraph(out io.Writer, g *navigation.Graph) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tX\tY\tW")
	for _, id := range g.Nodes() {
		r, _ := g.Node(id)
		fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t%.0f\n", id, r.X, r.Y, r.W)
	}
	tw.Flush()

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tACTION\tCOST\tAIR\tTAKEOFF\tLANDING")
	for _, id := range g.Nodes() {
		for _, e := range g.Edges(id) {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%.1f\t%d\t%s\t%s\n",
				e.From, e.To, e.Action, e.Cost, e.AirJumps, band(e.Takeoff), band(e.Landing))
		}
	}
	tw.Flush()
}

func band(b navigation.Band) string {
	return fmt.Sprintf("[%.0f,%.0f]@%.0f", b.MinX, b.MaxX, b.Y)
}

func printPath(out io.Writer, g *navigation.Graph, tun parameter.Tuning, from, to int) error {
	start := navigation.SearchState{Node: from, JumpReady: true, AirJumps: tun.Motion.MaxAirJumps, LatchReady: true}
	p, ok := g.FindPath(start, to, 0, tun.Search.Budget)
	if ok {
		fmt.Fprintf(out, "\npath %d -> %d: %v cost %.1f, %d expanded\n", from, to, p.Nodes, p.Cost, p.Expanded)
		return nil
	}

	route, cost, ok := g.RelaxedPath(from, to, nil)
	if !ok {
		return fmt.Errorf("no route from %d to %d: %w", from, to, errNoRoute)
	}
	fmt.Fprintf(out, "\nno resource-feasible path %d -> %d; relaxed route %v cost %.1f\n", from, to, route, cost)
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/voxdiff/internal/analysis"
	"github.com/san-kum/voxdiff/internal/config"
	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/engine"
	"github.com/san-kum/voxdiff/internal/grid"
	"github.com/san-kum/voxdiff/internal/gui"
	"github.com/san-kum/voxdiff/internal/metrics"
	"github.com/san-kum/voxdiff/internal/report"
	"github.com/san-kum/voxdiff/internal/sweep"
	"github.com/san-kum/voxdiff/internal/viz"
)

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

func newLoop(cfg *config.Config, g *grid.State, r engine.Renderer) *engine.Loop {
	loop := engine.New(g, cfg.Rule, r)
	loop.SetLogger(slog.Default())
	loop.AddMetric(metrics.NewAliveCount(cfg.Rule))
	loop.AddMetric(metrics.NewTotalIntensity())
	loop.AddMetric(metrics.NewMeanIntensity())
	loop.AddMetric(metrics.NewActivity())
	loop.AddMetric(metrics.NewStable())
	return loop
}

// batch seeds a grid and runs n ticks headless, returning the history
// with the seeded state as tick 0.
func batch(cmd *cobra.Command, cfg *config.Config, n int) (*grid.State, *metrics.History, *engine.Result, error) {
	g, _, err := grid.Initialize(cfg.Grid, cfg.Seeds, cfg.Seed)
	if err != nil {
		return nil, nil, nil, err
	}

	hist := metrics.NewHistory(cfg.Rule, 0)
	hist.Record(g, 0, diffusion.Delta{})

	loop := newLoop(cfg, g, nil)
	loop.AddObserver(hist)

	ctx, stop := signalContext(cmd)
	defer stop()

	slog.Info("running batch", "dims", cfg.Grid.String(), "seeds", cfg.Seeds, "seed", cfg.Seed, "ticks", n)
	res, err := loop.RunTicks(ctx, n)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, hist, res, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	n := runTicks
	if n <= 0 {
		n = cfg.Ticks()
	}

	_, hist, res, err := batch(cmd, cfg, n)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.WriteHistory(out, f, hist.Samples()); err != nil {
		return err
	}
	if f == report.FormatTable {
		fmt.Fprintln(out)
		return report.WriteSummary(out, res)
	}
	return nil
}

// runRendered drives the full frame loop against r and prints a summary
// once the renderer has closed.
func runRendered(cmd *cobra.Command, cfg *config.Config, r engine.Renderer, obs engine.Observer) error {
	g, _, err := grid.Initialize(cfg.Grid, cfg.Seeds, cfg.Seed)
	if err != nil {
		return err
	}

	loop := newLoop(cfg, g, r)
	loop.AddObserver(obs)

	ctx, stop := signalContext(cmd)
	defer stop()

	res, err := loop.Run(ctx, cfg.EngineConfig())
	if err != nil {
		return err
	}
	return report.WriteSummary(cmd.OutOrStdout(), res)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	term := viz.NewTerminal(cfg.Rule, cfg.Render.Theme)
	return runRendered(cmd, cfg, term, term)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	win := gui.NewWindow(cfg.Rule, cfg.Render.Width, cfg.Render.Height)
	return runRendered(cmd, cfg, win, win)
}

func printSeeds(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	_, seeds, err := grid.Initialize(cfg.Grid, cfg.Seeds, cfg.Seed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed %d, grid %s, %d cells\n\n", cfg.Seed, cfg.Grid, len(seeds))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tX\tY\tZ\tR\tG\tB")
	for i, s := range seeds {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.6f\t%.6f\t%.6f\n",
			i, s.X, s.Y, s.Z, s.Color[0], s.Color[1], s.Color[2])
	}
	return w.Flush()
}

func plotHistory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	_, hist, _, err := batch(cmd, cfg, plotTicks)
	if err != nil {
		return err
	}

	graphs, err := report.Plot(hist.Samples(), series, plotW, plotH)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed %d, grid %s, %d ticks\n\n", cfg.Seed, cfg.Grid, plotTicks)
	_, err = fmt.Fprint(out, graphs)
	return err
}

func writeSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	g, _, _, err := batch(cmd, cfg, snapTicks)
	if err != nil {
		return err
	}

	scene := viz.NewScene(g.Snapshot(), "#333333")
	scene.PointSize = cfg.Render.PointSize
	canvas := viz.NewCanvas(snapW, snapH)
	scene.Draw(canvas)

	bg := viz.HexColor(grid.Color(cfg.Render.Background))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), report.CanvasSVG(canvas, svgScale, bg))
	return err
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d ticks, %d seeds\n\n", benchTicks, cfg.Seeds)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tCELLS\tTICKS\tTIME\tTICKS/SEC\tCELLS/SEC")

	for _, n := range benchSizes {
		dims := grid.Dims{X: n, Y: n, Z: n}
		g, _, err := grid.Initialize(dims, cfg.Seeds, cfg.Seed)
		if err != nil {
			return err
		}

		loop := engine.New(g, cfg.Rule, nil)
		loop.SetLogger(slog.Default())
		res, err := loop.RunTicks(ctx, benchTicks)
		if err != nil {
			return err
		}

		secs := res.Elapsed.Seconds()
		if secs <= 0 {
			secs = time.Nanosecond.Seconds()
		}
		tps := float64(res.Ticks) / secs
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.1f\t%.0f\n",
			dims, dims.Cells(), res.Ticks, res.Elapsed.Round(time.Microsecond), tps, tps*float64(dims.Cells()))
	}
	return w.Flush()
}

func analyzeHistory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	_, hist, _, err := batch(cmd, cfg, analyzeN)
	if err != nil {
		return err
	}
	samples := hist.Samples()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: seed %d, grid %s, %d ticks\n\n", cfg.Seed, cfg.Grid, analyzeN)

	total := hist.Series(func(s metrics.Sample) float64 { return s.Total })
	ps := analysis.PowerSpectrum(total)
	if len(ps) > 1 {
		graph := asciigraph.Plot(ps,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (total intensity)"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	if peak, ok := analysis.Dominant(ps, len(total)); ok {
		fmt.Fprintf(out, "dominant period: %.2f ticks (bin %d)\n", peak.Period, peak.Bin)
	} else {
		fmt.Fprintln(out, "dominant period: none")
	}

	if tick, ok := analysis.SettleTick(samples); ok {
		fmt.Fprintf(out, "settled at tick: %d\n", tick)
	} else {
		fmt.Fprintln(out, "settled: no")
	}
	fmt.Fprintf(out, "alive trend: %+.4f cells/tick\n", analysis.Trend(samples, func(s metrics.Sample) float64 { return float64(s.Alive) }))
	_, err = fmt.Fprintf(out, "total trend: %+.4f per tick\n", analysis.Trend(samples, func(s metrics.Sample) float64 { return s.Total }))
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	gs := &sweep.GridSearch{
		XfrRates:    sweepXfr,
		AliveThresh: sweepThr,
		Runs:        sweepRuns,
		SeedStart:   cfg.Seed,
	}
	base := sweep.Job{Dims: cfg.Grid, Seeds: cfg.Seeds, Ticks: sweepTicks}
	pool := sweep.NewPool(workers)

	ctx, stop := signalContext(cmd)
	defer stop()

	start := time.Now()
	slog.Info("sweep started", "rules", len(sweepXfr)*len(sweepThr), "runs", sweepRuns, "workers", pool.Workers)
	summaries, err := gs.Search(ctx, pool, base)
	if err != nil {
		return err
	}
	slog.Info("sweep finished", "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	if err := report.WriteSweep(out, summaries); err != nil {
		return err
	}
	if best, ok := sweep.Best(summaries); ok {
		fmt.Fprintf(out, "\nmost alive: xfr_rate %.3f alive_thresh %.3f (%.2f cells)\n",
			best.Rule.XfrRate, best.Rule.AliveThresh, best.AliveMean)
	}
	return nil
}

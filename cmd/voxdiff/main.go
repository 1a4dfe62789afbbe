package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/voxdiff/internal/config"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	logFile    string
	seed       int64
	frames     int
	size       int
	seedCount  int

	// run / plot / snapshot / bench
	runTicks   int
	format     string
	plotTicks  int
	series     []string
	plotW      int
	plotH      int
	snapTicks  int
	snapW      int
	snapH      int
	svgScale   float64
	benchTicks int
	benchSizes []int

	// analyze / sweep
	analyzeN   int
	sweepTicks int
	sweepRuns  int
	sweepXfr   []float64
	sweepThr   []float64
	workers    int

	// live / gui
	theme   string
	winW    int
	winH    int
	delayMs int

	logOut io.Closer
)

// main builds the voxdiff command tree and exits 1 when a command fails.
func main() {
	err := newRootCmd().Execute()
	if err != nil {
		slog.Error("command failed", "error", err)
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "voxdiff",
		Short:         "color diffusion on a 3D voxel grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.IntVar(&frames, "frames", config.DefaultMaxFrames, "frame cap")
	pf.IntVar(&size, "size", config.DefaultSize, "grid edge length (cubic grid)")
	pf.IntVar(&seedCount, "seeds", config.DefaultSeeds, "number of seeded cells")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run ticks headless and print the history",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runTicks, "ticks", 0, "ticks to run (default frames/step interval)")
	runCmd.Flags().StringVar(&format, "format", "table", "history format (table, csv)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a terminal point cloud",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "", "sidebar theme")
	liveCmd.Flags().IntVar(&delayMs, "delay", 0, "frame delay in milliseconds")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a raylib window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&winW, "width", config.DefaultWidth, "window width")
	guiCmd.Flags().IntVar(&winH, "height", config.DefaultHeight, "window height")
	guiCmd.Flags().IntVar(&delayMs, "delay", 0, "frame delay in milliseconds")

	seedsCmd := &cobra.Command{
		Use:   "seeds",
		Short: "print the seeded cells",
		RunE:  printSeeds,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot history series over ticks",
		RunE:  plotHistory,
	}
	plotCmd.Flags().IntVar(&plotTicks, "ticks", 100, "ticks to run")
	plotCmd.Flags().StringSliceVar(&series, "series", []string{"alive", "total"}, "series to plot (alive, total, mean, std, changed)")
	plotCmd.Flags().IntVar(&plotW, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotH, "height", 10, "plot height")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write an SVG of the projected grid after some ticks to stdout",
		RunE:  writeSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapTicks, "ticks", 0, "ticks to run before drawing")
	snapshotCmd.Flags().IntVar(&snapW, "width", 60, "canvas width in characters")
	snapshotCmd.Flags().IntVar(&snapH, "height", 30, "canvas height in characters")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 4, "pixels per braille dot")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second for several grid sizes",
		RunE:  runBench,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{9, 15, 25, 35}, "grid edge lengths")
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 50, "ticks per size")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "frequency and settling analysis of a batch run",
		RunE:  analyzeHistory,
	}
	analyzeCmd.Flags().IntVar(&analyzeN, "ticks", 256, "ticks to run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search over rule parameters with an ensemble of seeds",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepTicks, "ticks", 50, "ticks per run")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 4, "seeds per parameter pair, starting at --seed")
	sweepCmd.Flags().Float64SliceVar(&sweepXfr, "xfr", []float64{0.05, 0.1, 0.2}, "transfer rates")
	sweepCmd.Flags().Float64SliceVar(&sweepThr, "thresh", []float64{0.5, 1.0, 1.5}, "alive thresholds")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (default GOMAXPROCS)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, p := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, seedsCmd, plotCmd, snapshotCmd, benchCmd, analyzeCmd, sweepCmd, presetsCmd, configCmd)
	return rootCmd
}

// setupLogging installs the default slog logger. The live view owns the
// terminal, so without --log-file its logs are discarded.
func setupLogging(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
		logOut = f
	case cmd.Name() == "live":
		out = io.Discard
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(logFormat) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", logFormat)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// closeLog closes the --log-file handle, if one is open, and restores a
// stderr logger.
func closeLog() error {
	if logOut == nil {
		return nil
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	err := logOut.Close()
	logOut = nil
	return err
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("frames") {
		cfg.Loop.MaxFrames = frames
	}
	if flags.Changed("size") {
		cfg.Grid.X, cfg.Grid.Y, cfg.Grid.Z = size, size, size
	}
	if flags.Changed("seeds") {
		cfg.Seeds = seedCount
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if flags.Changed("delay") {
		cfg.Loop.FrameDelay = time.Duration(delayMs) * time.Millisecond
	}
	if cmd.Name() == "gui" {
		if flags.Changed("width") {
			cfg.Render.Width = winW
		}
		if flags.Changed("height") {
			cfg.Render.Height = winH
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/ebitenhost"
	"github.com/san-kum/constellation/internal/gui"
	"github.com/san-kum/constellation/internal/viz"
)

type cli struct {
	dataDir    string
	configFile string
	preset     string
	seed       int64
	backend    string
	column     string
	runs       int

	runTicks   int
	runCursor  string
	snapTicks  int
	snapCursor string
	snapOut    string
	benchTicks int
	tuiOut     string
	exportOut  string

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepTicks int
	tuneMetric string
	tuneGrid   []string
	tuneTicks  int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:          "constellation",
		Short:        "interactive particle constellation field",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.preset != "" || c.configFile != "" {
				return c.runWindow(cmd, args)
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.dataDir, "data", ".constellation", "data directory")
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&c.preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&c.seed, "seed", 0, "random seed (0 picks one from the clock)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a window",
		RunE:  c.runWindow,
	}
	guiCmd.Flags().StringVar(&c.backend, "backend", config.DefaultBackend, "window backend (raylib, ebiten)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the field in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if c.preset != "" {
				return viz.Run(cfg, c.tuiOut)
			}
			return viz.RunInteractive(cfg, c.tuiOut)
		},
	}
	tuiCmd.Flags().StringVar(&c.tuiOut, "out", ".", "directory for snapshots taken with s")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the field headless and store its trace",
		RunE:  c.runHeadless,
	}
	runCmd.Flags().IntVar(&c.runTicks, "ticks", 600, "ticks to simulate")
	runCmd.Flags().StringVar(&c.runCursor, "cursor", "none", "pointer: none, wander or x,y")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  c.listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  c.plotRun,
	}
	plotCmd.Flags().StringVar(&c.column, "column", "kinetic", "trace column (kinetic, max_speed, links)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum and decay of a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  c.analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&c.column, "column", "kinetic", "trace column (kinetic, max_speed, links)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  c.exportRun,
	}
	exportCmd.Flags().StringVar(&c.exportOut, "out", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to svg after a headless run",
		RunE:  c.snapshot,
	}
	snapshotCmd.Flags().IntVar(&c.snapTicks, "ticks", 120, "ticks to simulate before the frame")
	snapshotCmd.Flags().StringVar(&c.snapCursor, "cursor", "none", "pointer: none, wander or x,y")
	snapshotCmd.Flags().StringVar(&c.snapOut, "out", "constellation.svg", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput",
		RunE:  c.bench,
	}
	benchCmd.Flags().IntVar(&c.benchTicks, "ticks", 1000, "ticks per run")
	benchCmd.Flags().IntVar(&c.runs, "runs", 4, "parallel ensemble members")

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
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one physics parameter",
		RunE:  c.sweep,
	}
	sweepCmd.Flags().StringVar(&c.sweepParam, "param", "coupling", "parameter (radius, coupling, damping)")
	sweepCmd.Flags().Float64Var(&c.sweepMin, "min", 0.0, "first value")
	sweepCmd.Flags().Float64Var(&c.sweepMax, "max", 0.1, "last value")
	sweepCmd.Flags().IntVar(&c.sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&c.sweepTicks, "ticks", 300, "ticks per run")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search physics parameters minimizing a metric",
		RunE:  c.tune,
	}
	tuneCmd.Flags().StringVar(&c.tuneMetric, "metric", "energy_drift", "metric to minimize")
	tuneCmd.Flags().StringArrayVar(&c.tuneGrid, "grid", []string{"coupling=0.01,0.02,0.05", "damping=0.97,0.98,0.99"}, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().IntVar(&c.tuneTicks, "ticks", 300, "ticks per grid point")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, snapshotCmd, benchCmd, presetsCmd, configCmd, scenarioCmd, sweepCmd, tuneCmd)
	return rootCmd
}

// loadConfig layers defaults, the config file, the preset and the seed flag
// in that order.
func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.configFile != "" {
		loaded, err := config.Load(c.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if c.preset != "" {
		if err := config.ApplyPreset(cfg, c.preset); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = c.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *cli) runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	backend := cfg.Backend
	if cmd.Flags().Changed("backend") {
		backend = c.backend
	}

	switch backend {
	case "raylib":
		return gui.Run(cfg)
	case "ebiten":
		return ebitenhost.Run(cfg)
	default:
		return fmt.Errorf("unknown backend: %s (available: raylib, ebiten)", backend)
	}
}

func (c *cli) presetName() string {
	if c.preset == "" {
		return "default"
	}
	return c.preset
}

// effectiveSeed pins a clock seed so a stored run can be replayed.
func effectiveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/constellation/internal/automation"
	"github.com/san-kum/constellation/internal/experiment"
	"github.com/san-kum/constellation/internal/optim"
	"github.com/san-kum/constellation/internal/sim"
	"github.com/san-kum/constellation/internal/storage"
)

func (c *cli) runScenario(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	base, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(c.dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if scenario.Name != "" {
		fmt.Fprintf(out, "scenario: %s\n", scenario.Name)
	}
	results, err := automation.RunScenario(cmd.Context(), scenario, base, st, out)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTICKS\tTIME\tLINKS\tRUN")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.1f\t%s\n", r.Step, len(r.Result.Samples), r.Result.Elapsed, r.Result.Metrics["links"], runID)
	}
	return w.Flush()
}

func (c *cli) baseExperiment(cmd *cobra.Command, ticks int) (experiment.Config, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return experiment.Config{}, err
	}
	sc, err := cfg.SimConfig()
	if err != nil {
		return experiment.Config{}, err
	}
	sc.Seed = effectiveSeed(sc.Seed)
	return experiment.Config{Preset: c.presetName(), Sim: sc, Ticks: ticks}, nil
}

func (c *cli) sweep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	base, err := c.baseExperiment(cmd, c.sweepTicks)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      base,
		ParamName: c.sweepParam,
		ParamMin:  c.sweepMin,
		ParamMax:  c.sweepMax,
		NumSteps:  c.sweepSteps,
	}, out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tLINKS\tFINAL KE\tPEAK SPEED\n", strings.ToUpper(c.sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.1f\t%.6f\t%.4f\n", r.ParamValue, r.MeanLinks, r.FinalKinetic, r.PeakSpeed)
	}
	return w.Flush()
}

// parseGrid reads "name=v1,v2" entries in flag order.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("invalid grid %q: want name=v1,v2", entry)
		}
		var values []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid grid %q: %w", entry, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func (c *cli) tune(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	names, ranges, err := parseGrid(c.tuneGrid)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	if _, err := registry.GetMetric(c.tuneMetric); err != nil {
		return err
	}
	base, err := c.baseExperiment(cmd, c.tuneTicks)
	if err != nil {
		return err
	}

	grid := optim.NewGridSearch(names, ranges)
	fmt.Fprintf(out, "searching %d points minimizing %s...\n", grid.Size(), c.tuneMetric)

	best, val, err := grid.Search(cmd.Context(), func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base
		cfg.Params = params
		m, err := registry.GetMetric(c.tuneMetric)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(cfg)
		if err := exp.Setup([]sim.Metric{m}); err != nil {
			return nil, err
		}
		return exp, nil
	}, c.tuneMetric)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "best %s: %.6f\n", c.tuneMetric, val)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %g\n", name, best[name])
	}
	return nil
}

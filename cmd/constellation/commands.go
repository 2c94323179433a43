package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/constellation/internal/analysis"
	"github.com/san-kum/constellation/internal/export"
	"github.com/san-kum/constellation/internal/experiment"
	"github.com/san-kum/constellation/internal/sim"
	"github.com/san-kum/constellation/internal/storage"
)

// settleFraction is the share of the starting value a trace must fall to
// before it counts as settled.
const settleFraction = 0.1

func (c *cli) experiment(cmd *cobra.Command, ticks int, cursorFlag string) (*experiment.Experiment, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	sc, err := cfg.SimConfig()
	if err != nil {
		return nil, err
	}
	sc.Seed = effectiveSeed(sc.Seed)

	cursor, err := experiment.ParseCursor(cursorFlag)
	if err != nil {
		return nil, err
	}

	exp := experiment.New(experiment.Config{
		Preset: c.presetName(),
		Sim:    sc,
		Ticks:  ticks,
		Cursor: cursor,
	})
	if err := exp.Setup(experiment.NewRegistry().DefaultMetrics()); err != nil {
		return nil, err
	}
	return exp, nil
}

func (c *cli) runHeadless(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	exp, err := c.experiment(cmd, c.runTicks, c.runCursor)
	if err != nil {
		return err
	}

	st := storage.New(c.dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Fprintf(out, "running %s field for %d ticks...\n", c.presetName(), c.runTicks)
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	runID, err := st.Save(exp.Metadata(result), result.Samples)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n", result.Elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "ticks: %d\n", len(result.Samples))
	fmt.Fprintln(out, "\nmetrics:")
	printMetrics(out, result.Metrics)
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}

func (c *cli) listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	runs, err := storage.New(c.dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tTICKS\tCOUNT\tVIEWPORT\tCURSOR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%dx%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Count,
			run.Width, run.Height,
			run.Cursor,
		)
	}
	return w.Flush()
}

func (c *cli) loadColumn(runID string) (*storage.RunMetadata, []float64, error) {
	st := storage.New(c.dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("no data")
	}
	values, err := storage.Column(samples, c.column)
	if err != nil {
		return nil, nil, err
	}
	return meta, values, nil
}

func (c *cli) plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, values, err := c.loadColumn(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "preset: %s\n\n", meta.Preset)
	graph := asciigraph.Plot(values,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(c.column),
	)
	fmt.Fprintln(out, graph)
	return nil
}

func (c *cli) analyzeRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, values, err := c.loadColumn(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "column: %s\n\n", c.column)

	ps := analysis.PowerSpectrum(values)
	if len(ps) >= 2 {
		plotData := ps
		if len(plotData) > 8 {
			plotData = ps[:len(ps)/4]
		}
		fmt.Fprintln(out, asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+c.column+")"),
		))
		fmt.Fprintln(out)

		bin, _ := analysis.Dominant(ps)
		if bin > 0 {
			freq := float64(bin) / float64(len(values))
			fmt.Fprintf(out, "dominant frequency: %.4f cycles/tick\n", freq)
			fmt.Fprintf(out, "period: %.1f ticks\n", 1/freq)
		}
	}

	if rate, err := analysis.DecayRate(values); err == nil {
		fmt.Fprintf(out, "decay per tick: %.6f\n", rate)
	}
	if tick := analysis.SettleTick(values, settleFraction); tick >= 0 {
		fmt.Fprintf(out, "settled to %.0f%% at tick %d\n", settleFraction*100, tick+1)
	} else {
		fmt.Fprintf(out, "never settled to %.0f%%\n", settleFraction*100)
	}
	return nil
}

func (c *cli) exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(c.dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	if c.exportOut == "" {
		return storage.ExportJSON(cmd.OutOrStdout(), *meta, samples)
	}
	f, err := os.Create(c.exportOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := storage.ExportJSON(f, *meta, samples); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", c.exportOut)
	return nil
}

func (c *cli) snapshot(cmd *cobra.Command, args []string) error {
	exp, err := c.experiment(cmd, c.snapTicks, c.snapCursor)
	if err != nil {
		return err
	}
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	if err := export.WriteSVG(c.snapOut, result.Frame, export.DefaultBackground); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d particles, %d links)\n",
		c.snapOut, result.Frame.Count(export.OpCircle), result.Frame.Count(export.OpLine))
	return nil
}

func (c *cli) bench(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	base, err := cfg.SimConfig()
	if err != nil {
		return err
	}
	seed := effectiveSeed(base.Seed)

	fmt.Fprintf(out, "benchmarking %s field\n\n", c.presetName())
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tPAIRS\tTICKS\tTIME\tTICKS/SEC")

	var trace []float64
	for _, count := range []int{base.Count, base.Count * 2, base.Count * 4} {
		sc := base
		sc.Count = count
		sc.Seed = seed

		exp := experiment.New(experiment.Config{Preset: c.presetName(), Sim: sc, Ticks: c.benchTicks, Cursor: experiment.Cursor{Mode: experiment.CursorWander}})
		if err := exp.Setup(nil); err != nil {
			return err
		}
		result, err := exp.Run(cmd.Context())
		if err != nil {
			return err
		}
		if trace == nil {
			trace = make([]float64, len(result.Samples))
			for i, smp := range result.Samples {
				trace[i] = float64(smp.Links)
			}
		}

		perSec := float64(c.benchTicks) / result.Elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", count, count*(count-1)/2, c.benchTicks, result.Elapsed.Round(time.Microsecond), perSec)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(trace) >= 2 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(trace,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("links per tick (%d particles, wandering cursor)", base.Count)),
		))
	}

	if c.runs <= 0 {
		return nil
	}
	return c.ensemble(cmd.Context(), out, base, seed)
}

func (c *cli) ensemble(ctx context.Context, out io.Writer, sc sim.Config, seed int64) error {
	reg := experiment.NewRegistry()
	ens := sim.NewEnsemble(sc, c.runs, seed, reg.DefaultMetrics)

	start := time.Now()
	summaries, err := ens.Run(ctx, c.benchTicks)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "\nensemble: %d runs x %d ticks in %v\n", c.runs, c.benchTicks, elapsed.Round(time.Millisecond))
	mean := make(map[string]float64)
	for _, s := range summaries {
		for name, v := range s.Metrics {
			mean[name] += v / float64(len(summaries))
		}
	}
	printMetrics(out, mean)
	return nil
}

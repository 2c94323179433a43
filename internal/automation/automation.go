package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/experiment"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/sim"
	"github.com/san-kum/constellation/internal/storage"
)

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Ticks  int                `yaml:"ticks"`
	Cursor string             `yaml:"cursor"`
	Seed   int64              `yaml:"seed"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &scenario, nil
}

// StepConfig resolves a step against base: the preset is applied to a copy
// and the step's seed wins when set.
func StepConfig(base *config.Config, step ScenarioStep) (experiment.Config, error) {
	cfg := *base
	preset := step.Preset
	if preset == "" {
		preset = "default"
	}
	if err := config.ApplyPreset(&cfg, preset); err != nil {
		return experiment.Config{}, err
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}

	sc, err := cfg.SimConfig()
	if err != nil {
		return experiment.Config{}, err
	}
	// stored runs must be replayable
	if sc.Seed == 0 {
		sc.Seed = time.Now().UnixNano()
	}
	cursor, err := experiment.ParseCursor(step.Cursor)
	if err != nil {
		return experiment.Config{}, err
	}
	if step.Ticks <= 0 {
		return experiment.Config{}, fmt.Errorf("ticks must be positive, got %d", step.Ticks)
	}

	return experiment.Config{
		Preset: preset,
		Sim:    sc,
		Ticks:  step.Ticks,
		Cursor: cursor,
		Params: step.Params,
	}, nil
}

type StepResult struct {
	Step   int
	RunID  string
	Result *experiment.Result
}

// RunScenario executes every step in order. Steps with save_as are written to
// st under that name when st is not nil. Results gathered before a failing
// step are returned alongside the error.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, st *storage.Store, log io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	registry := experiment.NewRegistry()

	for i, step := range scenario.Steps {
		fmt.Fprintf(log, "running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Preset)

		cfg, err := StepConfig(base, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry.DefaultMetrics()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Result: result}
		if step.SaveAs != "" && st != nil {
			meta := exp.Metadata(result)
			meta.Preset = step.SaveAs
			if sr.RunID, err = st.Save(meta, result.Samples); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs the same field across evenly spaced values of one
// physics parameter.
type ParameterSweep struct {
	Base      experiment.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue   float64
	MeanLinks    float64
	FinalKinetic float64
	PeakSpeed    float64
}

// ErrEmptySweep is returned when every swept value is out of bounds.
var ErrEmptySweep = errors.New("no sweep value within parameter bounds")

// RunSweep runs one experiment per value. Values the parameter rejects as
// out of bounds are logged and skipped.
func RunSweep(ctx context.Context, sweep *ParameterSweep, log io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, errors.New("sweep needs at least 2 steps")
	}
	if sweep.Base.Ticks < 0 {
		return nil, fmt.Errorf("%w: ticks must be >= 0, got %d", dynamo.ErrParameterBounds, sweep.Base.Ticks)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base
		cfg.Params = make(map[string]float64, len(sweep.Base.Params)+1)
		for k, v := range sweep.Base.Params {
			cfg.Params[k] = v
		}
		cfg.Params[sweep.ParamName] = paramVal

		links := metrics.NewLinks()
		peak := metrics.NewMaxSpeed()
		exp := experiment.New(cfg)
		if err := exp.Setup([]sim.Metric{links, peak}); err != nil {
			if errors.Is(err, dynamo.ErrParameterBounds) {
				fmt.Fprintf(log, "sweep %d/%d: %s=%.4f skipped: %v\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal, err)
				continue
			}
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		var final float64
		if n := len(result.Samples); n > 0 {
			final = result.Samples[n-1].Kinetic
		}
		results = append(results, SweepResult{
			ParamValue:   paramVal,
			MeanLinks:    links.Value(),
			FinalKinetic: final,
			PeakSpeed:    peak.Value(),
		})

		fmt.Fprintf(log, "sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	if len(results) == 0 {
		return nil, ErrEmptySweep
	}
	return results, nil
}

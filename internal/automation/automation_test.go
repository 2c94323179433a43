package automation

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/experiment"
	"github.com/san-kum/constellation/internal/sim"
	"github.com/san-kum/constellation/internal/storage"
)

const scenarioYAML = `name: warmup
description: free field then a wandering pointer
steps:
  - preset: calm
    ticks: 20
    seed: 3
  - preset: swarm
    ticks: 10
    cursor: wander
    params:
      coupling: 0.1
    save_as: swarm-wander
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "warmup" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[1].Params["coupling"] != 0.1 || sc.Steps[1].SaveAs != "swarm-wander" {
		t.Errorf("unexpected second step %+v", sc.Steps[1])
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: nothing\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestStepConfig(t *testing.T) {
	base := config.DefaultConfig()
	cfg, err := StepConfig(base, ScenarioStep{Preset: "dense", Ticks: 5, Seed: 8, Cursor: "1,2"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Count != 120 || cfg.Sim.Seed != 8 || cfg.Cursor.Mode != experiment.CursorFixed {
		t.Errorf("unexpected step config %+v", cfg)
	}
	if base.Particle.Count != sim.DefaultCount {
		t.Error("step config mutated the base")
	}

	if _, err := StepConfig(base, ScenarioStep{Preset: "dense"}); err == nil {
		t.Error("expected error for zero ticks")
	}
	if _, err := StepConfig(base, ScenarioStep{Preset: "bogus", Ticks: 1}); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	st := storage.New(t.TempDir())
	var log bytes.Buffer

	results, err := RunScenario(context.Background(), sc, config.DefaultConfig(), st, &log)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RunID != "" {
		t.Error("first step should not be saved")
	}
	if len(results[1].Result.Samples) != 10 {
		t.Errorf("expected 10 samples, got %d", len(results[1].Result.Samples))
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Preset != "swarm-wander" || runs[0].ID != results[1].RunID {
		t.Errorf("unexpected stored runs %+v", runs)
	}
	if !strings.Contains(log.String(), "step 2/2") {
		t.Errorf("unexpected log %q", log.String())
	}
}

func TestRunScenarioStopsOnBadStep(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Preset: "default", Ticks: 2, Seed: 1},
		{Preset: "default", Ticks: 2, Params: map[string]float64{"damping": 3}},
	}}

	results, err := RunScenario(context.Background(), sc, config.DefaultConfig(), nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Fatalf("expected step 2 error, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected partial results, got %d", len(results))
	}
}

func TestRunSweep(t *testing.T) {
	sc := sim.DefaultConfig()
	sc.Seed = 6
	sweep := &ParameterSweep{
		Base:      experiment.Config{Sim: sc, Ticks: 40},
		ParamName: "damping",
		ParamMin:  0.5,
		ParamMax:  0.99,
		NumSteps:  3,
	}

	results, err := RunSweep(context.Background(), sweep, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].ParamValue != 0.5 || results[2].ParamValue != 0.99 {
		t.Errorf("unexpected sweep values %v, %v", results[0].ParamValue, results[2].ParamValue)
	}
	if results[0].FinalKinetic >= results[2].FinalKinetic {
		t.Errorf("stronger damping should leave less energy: %v vs %v", results[0].FinalKinetic, results[2].FinalKinetic)
	}
	if sweep.Base.Params != nil {
		t.Error("sweep mutated the base params")
	}
}

func TestRunSweepSkipsOutOfBounds(t *testing.T) {
	sc := sim.DefaultConfig()
	sc.Seed = 6
	sweep := &ParameterSweep{
		Base:      experiment.Config{Sim: sc, Ticks: 10},
		ParamName: "radius",
		ParamMin:  0,
		ParamMax:  150,
		NumSteps:  3,
	}

	var log bytes.Buffer
	results, err := RunSweep(context.Background(), sweep, &log)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ParamValue != 75 || results[1].ParamValue != 150 {
		t.Errorf("unexpected sweep values %v, %v", results[0].ParamValue, results[1].ParamValue)
	}
	if !strings.Contains(log.String(), "radius=0.0000 skipped") {
		t.Errorf("expected skipped value in log, got %q", log.String())
	}
}

func TestRunSweepAllOutOfBounds(t *testing.T) {
	sweep := &ParameterSweep{
		Base:      experiment.Config{Sim: sim.DefaultConfig(), Ticks: 10},
		ParamName: "damping",
		ParamMin:  2,
		ParamMax:  3,
		NumSteps:  2,
	}
	if _, err := RunSweep(context.Background(), sweep, &bytes.Buffer{}); !errors.Is(err, ErrEmptySweep) {
		t.Errorf("expected ErrEmptySweep, got %v", err)
	}
}

func TestRunSweepTooFewSteps(t *testing.T) {
	if _, err := RunSweep(context.Background(), &ParameterSweep{NumSteps: 1}, &bytes.Buffer{}); err == nil {
		t.Error("expected error")
	}
}

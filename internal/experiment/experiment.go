// Package experiment runs a field headlessly for a fixed number of ticks and
// records a per-tick trace.
package experiment

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/export"
	"github.com/san-kum/constellation/internal/host"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/sim"
	"github.com/san-kum/constellation/internal/storage"
	"github.com/san-kum/constellation/internal/wander"
)

type CursorMode int

const (
	CursorNone CursorMode = iota
	CursorFixed
	CursorWander
)

// Cursor says where the synthetic pointer sits during a run.
type Cursor struct {
	Mode CursorMode
	X, Y float64
}

func (c Cursor) String() string {
	switch c.Mode {
	case CursorFixed:
		return fmt.Sprintf("%g,%g", c.X, c.Y)
	case CursorWander:
		return "wander"
	default:
		return "none"
	}
}

// ParseCursor accepts "none", "wander" or "x,y".
func ParseCursor(s string) (Cursor, error) {
	switch strings.TrimSpace(s) {
	case "", "none":
		return Cursor{Mode: CursorNone}, nil
	case "wander":
		return Cursor{Mode: CursorWander}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid cursor %q: want none, wander or x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor y: %w", err)
	}
	if !dynamo.Finite(x, y) {
		return Cursor{}, fmt.Errorf("invalid cursor %q: not finite", s)
	}
	return Cursor{Mode: CursorFixed, X: x, Y: y}, nil
}

type Config struct {
	Preset string
	Sim    sim.Config
	Ticks  int
	Cursor Cursor
	// Params override physics parameters by name after the field is built.
	Params map[string]float64
}

type Result struct {
	Samples []storage.Sample
	Metrics map[string]float64
	Elapsed time.Duration
	// Frame holds the draw calls of the last tick.
	Frame *export.Recorder
}

type Experiment struct {
	cfg     Config
	session *host.Session
	frame   *export.Recorder
	metrics []sim.Metric
	path    *wander.Path
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(ms []sim.Metric) error {
	if e.cfg.Ticks < 0 {
		return fmt.Errorf("%w: ticks must be >= 0, got %d", dynamo.ErrParameterBounds, e.cfg.Ticks)
	}

	e.frame = export.NewRecorder()
	s, err := host.NewSession(e.frame, e.cfg.Sim)
	if err != nil {
		return err
	}
	for _, name := range sortedKeys(e.cfg.Params) {
		if err := s.Sim.Params().SetParam(name, e.cfg.Params[name]); err != nil {
			return err
		}
	}
	for _, m := range ms {
		s.Sim.AddMetric(m)
	}
	e.session = s
	e.metrics = ms

	if e.cfg.Cursor.Mode == CursorWander {
		e.path = wander.New(e.cfg.Sim.Seed, e.cfg.Sim.Viewport)
	}
	return nil
}

func (e *Experiment) pointer() {
	switch e.cfg.Cursor.Mode {
	case CursorFixed:
		e.session.Pointer(e.cfg.Cursor.X, e.cfg.Cursor.Y, true)
	case CursorWander:
		x, y := e.path.Next()
		e.session.Pointer(x, y, true)
	default:
		e.session.Pointer(0, 0, false)
	}
}

// Run drives the field through the frame loop one repaint at a time.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.session == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	samples := make([]storage.Sample, 0, e.cfg.Ticks)
	s := e.session.Sim

	start := time.Now()
	e.session.Start()
	defer e.session.Stop()

	for i := 0; i < e.cfg.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.pointer()
		e.session.Queue.Dispatch()

		ps := s.Particles()
		samples = append(samples, storage.Sample{
			Tick:     s.Ticks(),
			Kinetic:  metrics.KineticEnergy(ps),
			MaxSpeed: metrics.Fastest(ps),
			Links:    s.Links(),
		})
	}
	elapsed := time.Since(start)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Samples: samples,
		Metrics: make(map[string]float64, len(e.metrics)),
		Elapsed: elapsed,
		Frame:   e.frame,
	}
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Metadata describes a finished run for the store.
func (e *Experiment) Metadata(r *Result) storage.RunMetadata {
	return storage.RunMetadata{
		Preset:  e.cfg.Preset,
		Seed:    e.cfg.Sim.Seed,
		Ticks:   len(r.Samples),
		Count:   e.cfg.Sim.Count,
		Width:   e.cfg.Sim.Viewport.Width,
		Height:  e.cfg.Sim.Viewport.Height,
		Cursor:  e.cfg.Cursor.String(),
		Elapsed: r.Elapsed,
		Metrics: r.Metrics,
	}
}

// Simulation exposes the underlying field for extra observers.
func (e *Experiment) Simulation() *sim.Simulation {
	if e.session == nil {
		return nil
	}
	return e.session.Sim
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

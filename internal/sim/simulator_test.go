package sim

import (
	"context"
	"errors"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/physics"
)

type opSurface struct {
	ops     []byte
	circles []color.NRGBA
}

func (o *opSurface) ClearRect(x, y, w, h float64) { o.ops = append(o.ops, 'c') }
func (o *opSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	o.ops = append(o.ops, 'o')
	o.circles = append(o.circles, c)
}
func (o *opSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	o.ops = append(o.ops, 'l')
}

func newTestSim(t *testing.T, surface dynamo.Surface, opts ...Option) *Simulation {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	s, err := New(surface, cfg, opts...)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	return s
}

func TestNewWithoutSurface(t *testing.T) {
	s, err := New(nil, DefaultConfig())
	if !errors.Is(err, dynamo.ErrNoSurface) {
		t.Fatalf("expected ErrNoSurface, got %v", err)
	}
	if s != nil {
		t.Error("expected no simulation")
	}
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative count", func(c *Config) { c.Count = -1 }},
		{"zero radius", func(c *Config) { c.RadiusMin = 0 }},
		{"inverted radius", func(c *Config) { c.RadiusMin, c.RadiusMax = 3, 1 }},
		{"zero interaction radius", func(c *Config) { c.Physics.InteractionRadius = 0 }},
		{"damping above one", func(c *Config) { c.Physics.Damping = 1.01 }},
		{"zero link threshold", func(c *Config) { c.Link.Threshold = 0 }},
		{"zero viewport", func(c *Config) { c.Viewport.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(dynamo.Discard, cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestTickDrawOrder(t *testing.T) {
	surface := &opSurface{}
	s := newTestSim(t, surface)
	s.Tick()

	if len(surface.ops) < 1+DefaultCount {
		t.Fatalf("expected at least %d ops, got %d", 1+DefaultCount, len(surface.ops))
	}
	if surface.ops[0] != 'c' {
		t.Fatalf("expected clear first, got %q", surface.ops[0])
	}
	for i := 1; i <= DefaultCount; i++ {
		if surface.ops[i] != 'o' {
			t.Fatalf("op %d: expected circle, got %q", i, surface.ops[i])
		}
	}
	for i := 1 + DefaultCount; i < len(surface.ops); i++ {
		if surface.ops[i] != 'l' {
			t.Fatalf("op %d: expected line after particles, got %q", i, surface.ops[i])
		}
	}
	if got := len(surface.ops) - 1 - DefaultCount; got != s.Links() {
		t.Errorf("expected %d lines, drew %d", s.Links(), got)
	}
}

func TestAccentLookup(t *testing.T) {
	theme := color.NRGBA{R: 1, G: 2, B: 3, A: 255}

	tests := []struct {
		name   string
		accent AccentFunc
		want   color.NRGBA
	}{
		{"no lookup", nil, DefaultAccent},
		{"lookup unavailable", func() (color.NRGBA, bool) { return theme, false }, DefaultAccent},
		{"lookup available", func() (color.NRGBA, bool) { return theme, true }, theme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := &opSurface{}
			s := newTestSim(t, surface, WithAccent(tt.accent))
			s.Tick()
			for _, c := range surface.circles {
				if c != tt.want {
					t.Fatalf("expected fill %v, got %v", tt.want, c)
				}
			}
		})
	}
}

func TestOnResizeReinitializes(t *testing.T) {
	s := newTestSim(t, dynamo.Discard)
	before := s.Particles()

	if err := s.OnResize(400, 300); err != nil {
		t.Fatalf("resize failed: %v", err)
	}

	after := s.Particles()
	if len(after) != DefaultCount {
		t.Fatalf("expected %d particles, got %d", DefaultCount, len(after))
	}
	if s.Viewport() != (dynamo.Viewport{Width: 400, Height: 300}) {
		t.Errorf("unexpected viewport %v", s.Viewport())
	}

	same := 0
	for i, p := range after {
		if p.X < 0 || p.X >= 400 || p.Y < 0 || p.Y >= 300 {
			t.Errorf("particle %d outside new viewport: (%v, %v)", i, p.X, p.Y)
		}
		if p == before[i] {
			same++
		}
	}
	if same != 0 {
		t.Errorf("expected freshly sampled particles, %d unchanged", same)
	}
}

func TestOnResizeInvalid(t *testing.T) {
	s := newTestSim(t, dynamo.Discard)
	before := s.Particles()

	if err := s.OnResize(0, 300); !errors.Is(err, dynamo.ErrInvalidViewport) {
		t.Fatalf("expected ErrInvalidViewport, got %v", err)
	}
	if s.Viewport().Width != DefaultWidth {
		t.Errorf("viewport changed to %v", s.Viewport())
	}
	if after := s.Particles(); after[0] != before[0] {
		t.Error("population rebuilt on invalid resize")
	}
}

func TestPointerEventsOnlyTouchCursor(t *testing.T) {
	surface := &opSurface{}
	s := newTestSim(t, surface)
	before := s.Particles()

	s.OnPointerMove(10, 20)
	if c := s.Cursor(); !c.Present || c.X != 10 || c.Y != 20 {
		t.Errorf("unexpected cursor %+v", c)
	}
	s.OnPointerLeave()
	if s.Cursor().Present {
		t.Error("expected absent cursor after leave")
	}

	if len(surface.ops) != 0 {
		t.Errorf("pointer events drew %d ops", len(surface.ops))
	}
	if s.Particles()[0] != before[0] || s.Ticks() != 0 {
		t.Error("pointer events advanced the simulation")
	}
}

func TestLongRunStaysBounded(t *testing.T) {
	s := newTestSim(t, dynamo.Discard)

	if err := s.Run(context.Background(), 1000); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	limit := 2 * math.Sqrt2 * DefaultMaxSpeed
	for i, p := range s.Particles() {
		if !p.Valid() {
			t.Fatalf("particle %d not finite: %+v", i, p)
		}
		if p.Speed() > limit {
			t.Errorf("particle %d speed %v exceeds %v", i, p.Speed(), limit)
		}
	}
	if s.Ticks() != 1000 {
		t.Errorf("expected 1000 ticks, got %d", s.Ticks())
	}
}

func TestValidateDetectsNaN(t *testing.T) {
	s := newTestSim(t, dynamo.Discard)
	s.particles[3].VX = math.NaN()

	err := s.Validate()
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) || simErr.Particle != 3 {
		t.Errorf("expected particle 3 in error, got %v", err)
	}
}

func TestRunCanceled(t *testing.T) {
	s := newTestSim(t, dynamo.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.Ticks() != 0 {
		t.Errorf("expected no ticks, got %d", s.Ticks())
	}
}

type countMetric struct {
	ticks, links int
}

func (c *countMetric) Name() string { return "count" }
func (c *countMetric) Observe(ps []physics.Particle, links int) {
	c.ticks++
	c.links += links
}
func (c *countMetric) Value() float64 { return float64(c.ticks) }
func (c *countMetric) Reset()         { c.ticks, c.links = 0, 0 }

type tickObserver struct{ last int }

func (o *tickObserver) OnTick(tick int, ps []physics.Particle) { o.last = tick }

func TestMetricsAndObservers(t *testing.T) {
	s := newTestSim(t, dynamo.Discard)
	m := &countMetric{}
	o := &tickObserver{}
	s.AddMetric(m)
	s.AddObserver(o)

	if err := s.Run(context.Background(), 10); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if m.ticks != 10 {
		t.Errorf("expected 10 observations, got %d", m.ticks)
	}
	if o.last != 10 {
		t.Errorf("expected last tick 10, got %d", o.last)
	}
}

func TestSeededPopulationsMatch(t *testing.T) {
	a, _ := New(dynamo.Discard, DefaultConfig(), WithRand(rand.New(rand.NewSource(9))))
	b, _ := New(dynamo.Discard, DefaultConfig(), WithRand(rand.New(rand.NewSource(9))))

	pa, pb := a.Particles(), b.Particles()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs", i)
		}
	}
}

func TestEnsembleRun(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEnsemble(cfg, 4, 100, func() []Metric { return []Metric{&countMetric{}} })

	results, err := e.Run(context.Background(), 50)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != 100+int64(i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 100+i, r.Seed)
		}
		if r.Metrics["count"] != 50 {
			t.Errorf("run %d: expected 50 ticks observed, got %v", i, r.Metrics["count"])
		}
	}
}

func TestEnsembleNegativeRuns(t *testing.T) {
	e := NewEnsemble(DefaultConfig(), -3, 1, func() []Metric { return nil })

	results, err := e.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRedrawDoesNotAdvance(t *testing.T) {
	surface := &opSurface{}
	s := newTestSim(t, surface)
	before := s.Particles()

	s.Redraw()

	if s.Ticks() != 0 || s.Particles()[0] != before[0] {
		t.Error("redraw advanced the simulation")
	}
	if surface.ops[0] != 'c' || len(surface.circles) != DefaultCount {
		t.Errorf("unexpected redraw ops %q", surface.ops)
	}
}

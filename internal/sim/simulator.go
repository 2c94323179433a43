package sim

import (
	"context"
	"image/color"
	"math/rand"
	"time"

	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/physics"
)

// Simulation owns every piece of mutable state of one constellation: the
// particles, the cursor and the viewport. It is not safe for concurrent use;
// the host calls Tick and the event handlers from a single goroutine.
type Simulation struct {
	surface   dynamo.Surface
	cfg       Config
	params    physics.Params
	linker    *physics.Linker
	particles []physics.Particle
	cursor    dynamo.Cursor
	viewport  dynamo.Viewport
	rng       *rand.Rand
	accent    AccentFunc
	ticks     int
	links     int
	metrics   []Metric
	observers []Observer
}

type Option func(*Simulation)

func WithAccent(fn AccentFunc) Option {
	return func(s *Simulation) { s.accent = fn }
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) { s.rng = rng }
}

// New builds a simulation drawing onto surface and seeds its first
// population. A nil surface is a fatal precondition: nothing is created.
func New(surface dynamo.Surface, cfg Config, opts ...Option) (*Simulation, error) {
	if surface == nil {
		return nil, dynamo.ErrNoSurface
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		surface:   surface,
		cfg:       cfg,
		params:    cfg.Physics,
		linker:    physics.NewLinker(cfg.Link),
		particles: make([]physics.Particle, 0, cfg.Count),
		viewport:  cfg.Viewport,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}

	s.Reinitialize()
	return s, nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Tick clears the surface, updates and draws each particle in order, then
// draws links on top.
func (s *Simulation) Tick() {
	vp := s.viewport
	s.surface.ClearRect(0, 0, float64(vp.Width), float64(vp.Height))

	fill := s.fill()
	for i := range s.particles {
		s.particles[i].Update(s.cursor, vp, s.params)
		s.particles[i].Draw(s.surface, fill)
	}
	s.links = s.linker.Connect(s.particles, s.surface)
	s.ticks++

	for _, m := range s.metrics {
		m.Observe(s.particles, s.links)
	}
	for _, obs := range s.observers {
		obs.OnTick(s.ticks, s.particles)
	}
}

// Redraw paints the current state again without advancing it.
func (s *Simulation) Redraw() {
	vp := s.viewport
	s.surface.ClearRect(0, 0, float64(vp.Width), float64(vp.Height))

	fill := s.fill()
	for i := range s.particles {
		s.particles[i].Draw(s.surface, fill)
	}
	s.links = s.linker.Connect(s.particles, s.surface)
}

func (s *Simulation) fill() color.NRGBA {
	if s.accent != nil {
		if c, ok := s.accent(); ok {
			return c
		}
	}
	return DefaultAccent
}

// Reinitialize discards the population and samples a fresh one over the
// current viewport.
func (s *Simulation) Reinitialize() {
	s.particles = s.particles[:0]
	for i := 0; i < s.cfg.Count; i++ {
		s.particles = append(s.particles, physics.Spawn(s.rng, s.viewport, s.cfg.MaxSpeed, s.cfg.RadiusMin, s.cfg.RadiusMax))
	}
}

// OnResize adopts the new viewport and rebuilds the population. Positions are
// resampled, not rescaled.
func (s *Simulation) OnResize(width, height int) error {
	vp := dynamo.Viewport{Width: width, Height: height}
	if !vp.Valid() {
		return dynamo.ErrInvalidViewport
	}
	s.viewport = vp
	s.Reinitialize()
	return nil
}

func (s *Simulation) OnPointerMove(x, y float64) { s.cursor = dynamo.CursorAt(x, y) }

func (s *Simulation) OnPointerLeave() { s.cursor = dynamo.NoCursor() }

func (s *Simulation) Cursor() dynamo.Cursor     { return s.cursor }
func (s *Simulation) Viewport() dynamo.Viewport { return s.viewport }
func (s *Simulation) Ticks() int                { return s.ticks }
func (s *Simulation) Links() int                { return s.links }
func (s *Simulation) Len() int                  { return len(s.particles) }

// Params exposes the live physics tunables.
func (s *Simulation) Params() *physics.Params { return &s.params }

// Particles returns a copy of the current population.
func (s *Simulation) Particles() []physics.Particle {
	out := make([]physics.Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Validate reports the first particle holding a NaN or Inf.
func (s *Simulation) Validate() error {
	for i := range s.particles {
		if !s.particles[i].Valid() {
			return &dynamo.SimulationError{Tick: s.ticks, Particle: i, Wrapped: dynamo.ErrInvalidState}
		}
	}
	return nil
}

// Run ticks n times without a frame scheduler, validating after every tick.
func (s *Simulation) Run(ctx context.Context, n int) error {
	for _, m := range s.metrics {
		m.Reset()
	}
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Tick()
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

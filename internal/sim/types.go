package sim

import (
	"fmt"
	"image/color"

	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/physics"
)

const (
	DefaultCount     = 50
	DefaultMaxSpeed  = 0.25
	DefaultRadiusMin = 1.0
	DefaultRadiusMax = 3.0
	DefaultWidth     = 800
	DefaultHeight    = 600
)

// DefaultAccent is #6366f1, used whenever the accent lookup has nothing.
var DefaultAccent = color.NRGBA{R: 0x63, G: 0x66, B: 0xf1, A: 0xff}

type Metric interface {
	Name() string
	Observe(ps []physics.Particle, links int)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tick int, ps []physics.Particle)
}

// AccentFunc looks up the current particle fill color.
type AccentFunc func() (color.NRGBA, bool)

type Config struct {
	Count     int
	MaxSpeed  float64
	RadiusMin float64
	RadiusMax float64
	Viewport  dynamo.Viewport
	Physics   physics.Params
	Link      physics.LinkParams
	Seed      int64
}

func DefaultConfig() Config {
	return Config{
		Count:     DefaultCount,
		MaxSpeed:  DefaultMaxSpeed,
		RadiusMin: DefaultRadiusMin,
		RadiusMax: DefaultRadiusMax,
		Viewport:  dynamo.Viewport{Width: DefaultWidth, Height: DefaultHeight},
		Physics:   physics.DefaultParams(),
		Link:      physics.DefaultLinkParams(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("count must be non-negative, got %d: %w", c.Count, dynamo.ErrParameterBounds)
	case c.MaxSpeed < 0:
		return fmt.Errorf("max speed must be non-negative, got %f: %w", c.MaxSpeed, dynamo.ErrParameterBounds)
	case c.RadiusMin <= 0 || c.RadiusMax < c.RadiusMin:
		return fmt.Errorf("radius range [%f, %f) invalid: %w", c.RadiusMin, c.RadiusMax, dynamo.ErrParameterBounds)
	case c.Physics.InteractionRadius <= 0:
		return fmt.Errorf("interaction radius must be positive, got %f: %w", c.Physics.InteractionRadius, dynamo.ErrParameterBounds)
	case c.Physics.Damping < 0 || c.Physics.Damping > 1:
		return fmt.Errorf("damping must be in [0, 1], got %f: %w", c.Physics.Damping, dynamo.ErrParameterBounds)
	case c.Link.Threshold <= 0:
		return fmt.Errorf("link threshold must be positive, got %f: %w", c.Link.Threshold, dynamo.ErrParameterBounds)
	case c.Link.BaseAlpha < 0 || c.Link.BaseAlpha > 1:
		return fmt.Errorf("link alpha must be in [0, 1], got %f: %w", c.Link.BaseAlpha, dynamo.ErrParameterBounds)
	case !c.Viewport.Valid():
		return fmt.Errorf("viewport %s: %w", c.Viewport, dynamo.ErrInvalidViewport)
	}
	return nil
}

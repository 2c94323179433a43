package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/physics"
	"github.com/san-kum/constellation/internal/sim"
)

const (
	DefaultAccent    = "#6366f1"
	DefaultLinkColor = "#6366f1"
	DefaultTheme     = "indigo"
	DefaultBackend   = "raylib"
	DefaultFPS       = 60
)

type Config struct {
	Backend  string         `yaml:"backend"`
	Theme    string         `yaml:"theme"`
	FPS      int            `yaml:"fps"`
	Seed     int64          `yaml:"seed"`
	Viewport ViewportConfig `yaml:"viewport"`
	Particle ParticleConfig `yaml:"particles"`
	Cursor   CursorConfig   `yaml:"cursor"`
	Link     LinkConfig     `yaml:"links"`
	Colors   ColorConfig    `yaml:"colors"`
}

type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ParticleConfig struct {
	Count     int     `yaml:"count"`
	MaxSpeed  float64 `yaml:"max_speed"`
	RadiusMin float64 `yaml:"radius_min"`
	RadiusMax float64 `yaml:"radius_max"`
	Damping   float64 `yaml:"damping"`
}

type CursorConfig struct {
	Radius   float64 `yaml:"radius"`
	Coupling float64 `yaml:"coupling"`
}

type LinkConfig struct {
	Threshold float64 `yaml:"threshold"`
	Alpha     float64 `yaml:"alpha"`
	Width     float64 `yaml:"width"`
}

type ColorConfig struct {
	Accent string `yaml:"accent"`
	Link   string `yaml:"link"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend: DefaultBackend,
		Theme:   DefaultTheme,
		FPS:     DefaultFPS,
		Viewport: ViewportConfig{
			Width:  sim.DefaultWidth,
			Height: sim.DefaultHeight,
		},
		Particle: ParticleConfig{
			Count:     sim.DefaultCount,
			MaxSpeed:  sim.DefaultMaxSpeed,
			RadiusMin: sim.DefaultRadiusMin,
			RadiusMax: sim.DefaultRadiusMax,
			Damping:   physics.DefaultDamping,
		},
		Cursor: CursorConfig{
			Radius:   physics.DefaultInteractionRadius,
			Coupling: physics.DefaultCoupling,
		},
		Link: LinkConfig{
			Threshold: physics.DefaultLinkThreshold,
			Alpha:     physics.DefaultLinkAlpha,
			Width:     physics.DefaultLinkWidth,
		},
		Colors: ColorConfig{
			Accent: DefaultAccent,
			Link:   DefaultLinkColor,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything the simulation would reject plus the host fields.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d: %w", c.FPS, dynamo.ErrParameterBounds)
	}
	if _, err := ParseColor(c.Colors.Accent); err != nil {
		return fmt.Errorf("accent color: %w", err)
	}
	if _, err := ParseColor(c.Colors.Link); err != nil {
		return fmt.Errorf("link color: %w", err)
	}
	_, err := c.SimConfig()
	if err != nil {
		return err
	}
	return nil
}

// SimConfig converts to the simulation's own configuration.
func (c *Config) SimConfig() (sim.Config, error) {
	linkColor, err := ParseColor(c.Colors.Link)
	if err != nil {
		return sim.Config{}, fmt.Errorf("link color: %w", err)
	}
	sc := sim.Config{
		Count:     c.Particle.Count,
		MaxSpeed:  c.Particle.MaxSpeed,
		RadiusMin: c.Particle.RadiusMin,
		RadiusMax: c.Particle.RadiusMax,
		Viewport:  dynamo.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height},
		Physics: physics.Params{
			InteractionRadius: c.Cursor.Radius,
			Coupling:          c.Cursor.Coupling,
			Damping:           c.Particle.Damping,
		},
		Link: physics.LinkParams{
			Threshold: c.Link.Threshold,
			BaseAlpha: c.Link.Alpha,
			Width:     c.Link.Width,
			Color:     linkColor,
		},
		Seed: c.Seed,
	}
	return sc, sc.Validate()
}

// Accent returns the configured accent color, reporting false when it does
// not parse so callers fall back to the default.
func (c *Config) Accent() (color.NRGBA, bool) {
	col, err := ParseColor(c.Colors.Accent)
	if err != nil {
		return color.NRGBA{}, false
	}
	return col, true
}

// ParseColor reads a "#rrggbb" hex color as an opaque NRGBA.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

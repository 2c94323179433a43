package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.Particle.Count = 120
		c.Link.Threshold = 90
		c.Link.Alpha = 0.2
	},
	"calm": func(c *Config) {
		c.Particle.MaxSpeed = 0.1
		c.Particle.Damping = 0.995
		c.Cursor.Coupling = 0.01
	},
	"swarm": func(c *Config) {
		c.Particle.Count = 80
		c.Particle.MaxSpeed = 0.5
		c.Cursor.Radius = 220
		c.Cursor.Coupling = 0.05
		c.Particle.Damping = 0.98
	},
	"sparse": func(c *Config) {
		c.Particle.Count = 20
		c.Particle.RadiusMin = 2
		c.Particle.RadiusMax = 4
		c.Link.Threshold = 200
		c.Link.Alpha = 0.45
	},
}

// GetPreset returns a fresh default config with the named preset applied, or
// nil when no such preset exists.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overlays the named preset onto cfg.
func ApplyPreset(cfg *Config, name string) error {
	apply, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	apply(cfg)
	return nil
}

package viz

import (
	"strings"

	"github.com/charmbracelet/harmonica"
)

const (
	gaugeFrequency = 6.0
	gaugeDamping   = 1.0
	// links per particle that fills the gauge
	gaugeFull = 4.0
)

// gauge eases a displayed value toward its target with a critically damped
// spring so the bar does not flicker frame to frame.
type gauge struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newGauge(fps int) gauge {
	return gauge{spring: harmonica.NewSpring(harmonica.FPS(fps), gaugeFrequency, gaugeDamping)}
}

func (g *gauge) step(target float64) {
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, target)
}

func (g *gauge) value() float64 { return g.pos }

// bar renders the value as a fraction of full over width cells.
func (g *gauge) bar(full float64, width int) string {
	frac := g.pos / full
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

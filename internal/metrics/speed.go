package metrics

import (
	"math"

	"github.com/san-kum/constellation/internal/physics"
)

// MaxSpeed is the fastest particle speed seen since the last reset.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(ps []physics.Particle, links int) {
	m.max = math.Max(m.max, Fastest(ps))
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Links is the mean number of edges drawn per tick.
type Links struct {
	total   int
	samples int
}

func NewLinks() *Links { return &Links{} }

func (l *Links) Name() string { return "links" }

func (l *Links) Observe(ps []physics.Particle, links int) {
	l.total += links
	l.samples++
}

func (l *Links) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.total) / float64(l.samples)
}

func (l *Links) Reset() { l.total, l.samples = 0, 0 }

func Fastest(ps []physics.Particle) float64 {
	fastest := 0.0
	for i := range ps {
		fastest = math.Max(fastest, ps[i].Speed())
	}
	return fastest
}

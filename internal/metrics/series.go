package metrics

import "github.com/san-kum/constellation/internal/physics"

// Series records one scalar per tick into a fixed-capacity window, oldest
// first. It satisfies sim.Observer.
type Series struct {
	capacity int
	sample   func([]physics.Particle) float64
	values   []float64
}

func NewSeries(capacity int, sample func([]physics.Particle) float64) *Series {
	capacity = max(capacity, 1)
	return &Series{
		capacity: capacity,
		sample:   sample,
		values:   make([]float64, 0, capacity),
	}
}

func (s *Series) OnTick(tick int, ps []physics.Particle) {
	if len(s.values) == s.capacity {
		copy(s.values, s.values[1:])
		s.values = s.values[:s.capacity-1]
	}
	s.values = append(s.values, s.sample(ps))
}

// Values returns a copy of the window.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

func (s *Series) Reset() { s.values = s.values[:0] }

func KineticEnergy(ps []physics.Particle) float64 { return kinetic(ps) }

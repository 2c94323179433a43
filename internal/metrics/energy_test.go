package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/constellation/internal/physics"
)

func TestEnergyMean(t *testing.T) {
	m := NewEnergy()

	ps := []physics.Particle{physics.NewParticle(0, 0, 3, 4, 1)}
	m.Observe(ps, 0)
	e1 := m.Value()

	if math.Abs(e1-12.5) > 1e-12 {
		t.Errorf("expected energy 12.5, got %f", e1)
	}

	m.Observe([]physics.Particle{physics.NewParticle(0, 0, 0, 0, 1)}, 0)
	if math.Abs(m.Value()-6.25) > 1e-12 {
		t.Errorf("expected mean energy 6.25, got %f", m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy()

	m.Observe([]physics.Particle{physics.NewParticle(0, 0, 1, 1, 1)}, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()

	m.Observe([]physics.Particle{physics.NewParticle(0, 0, 2, 0, 1)}, 0)
	m.Observe([]physics.Particle{physics.NewParticle(0, 0, 1, 0, 1)}, 0)
	m.Observe([]physics.Particle{physics.NewParticle(0, 0, 1.5, 0, 1)}, 0)

	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected max drift 0.75, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability(1.0)

	s.Observe([]physics.Particle{physics.NewParticle(0, 0, 0.5, 0, 1)}, 0)
	s.Observe([]physics.Particle{physics.NewParticle(0, 0, 2, 0, 1)}, 0)

	if s.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %f", s.Value())
	}
	s.Reset()
	if s.Value() != 1.0 {
		t.Errorf("expected stability 1 after reset, got %f", s.Value())
	}
}

func TestMaxSpeedAndLinks(t *testing.T) {
	ms := NewMaxSpeed()
	ls := NewLinks()
	ps := []physics.Particle{physics.NewParticle(0, 0, 0.3, 0.4, 1), physics.NewParticle(0, 0, 0.1, 0, 1)}

	ms.Observe(ps, 4)
	ls.Observe(ps, 4)
	ls.Observe(ps, 2)

	if math.Abs(ms.Value()-0.5) > 1e-12 {
		t.Errorf("expected max speed 0.5, got %f", ms.Value())
	}
	if ls.Value() != 3 {
		t.Errorf("expected 3 links per tick, got %f", ls.Value())
	}
}

func TestSeriesWindow(t *testing.T) {
	s := NewSeries(3, func(ps []physics.Particle) float64 { return ps[0].X })

	for i := 0; i < 5; i++ {
		s.OnTick(i+1, []physics.Particle{physics.NewParticle(float64(i), 0, 0, 0, 1)})
	}

	got := s.Values()
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSeriesNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -2} {
		s := NewSeries(capacity, func(ps []physics.Particle) float64 { return ps[0].X })
		s.OnTick(1, []physics.Particle{physics.NewParticle(1, 0, 0, 0, 1)})
		s.OnTick(2, []physics.Particle{physics.NewParticle(2, 0, 0, 0, 1)})

		if got := s.Values(); len(got) != 1 || got[0] != 2 {
			t.Errorf("capacity %d: expected [2], got %v", capacity, got)
		}
	}
}

package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/sim"
)

// StableSpeed is the speed under which a particle counts as settled.
const StableSpeed = 0.05

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{metrics: make(map[string]func() sim.Metric)}

	r.metrics["energy"] = func() sim.Metric { return metrics.NewEnergy() }
	r.metrics["energy_drift"] = func() sim.Metric { return metrics.NewEnergyDrift() }
	r.metrics["max_speed"] = func() sim.Metric { return metrics.NewMaxSpeed() }
	r.metrics["links"] = func() sim.Metric { return metrics.NewLinks() }
	r.metrics["stability"] = func() sim.Metric { return metrics.NewStability(StableSpeed) }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s (available: %v)", name, r.ListMetrics())
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics builds a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []sim.Metric {
	names := r.ListMetrics()
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name]())
	}
	return out
}

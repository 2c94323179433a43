package sim

import (
	"context"
	"sync"

	"github.com/san-kum/constellation/internal/dynamo"
)

// Summary is the outcome of one headless ensemble member.
type Summary struct {
	Seed    int64
	Ticks   int
	Metrics map[string]float64
}

// Ensemble runs independent headless simulations, one goroutine each. No
// state is shared between members.
type Ensemble struct {
	cfg       Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(cfg Config, numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: max(numRuns, 0), seedStart: seedStart, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, ticks int) ([]Summary, error) {
	results := make([]Summary, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s, err := New(dynamo.Discard, cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			var ms []Metric
			if e.metrics != nil {
				ms = e.metrics()
			}
			for _, m := range ms {
				s.AddMetric(m)
			}

			errs[idx] = s.Run(ctx, ticks)

			summary := Summary{Seed: cfgCopy.Seed, Ticks: s.Ticks(), Metrics: make(map[string]float64, len(ms))}
			for _, m := range ms {
				summary.Metrics[m.Name()] = m.Value()
			}
			results[idx] = summary
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

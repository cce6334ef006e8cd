// Package batch evaluates the dynamics of many samples of one model in
// parallel. Every worker owns its workspace for the whole run.
package batch

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rbdyn/internal/dynamics"
	"github.com/san-kum/rbdyn/internal/logging"
	"github.com/san-kum/rbdyn/internal/metrics"
	"github.com/san-kum/rbdyn/internal/multibody"
)

type Sample struct {
	Q, V, A []float64
}

type Result struct {
	Tau, NLE, G []float64

	KineticEnergy    float64
	PotentialEnergy  float64
	CoriolisResidual float64
}

func (r Result) Observation(s Sample) metrics.Observation {
	return metrics.Observation{
		Q: s.Q, V: s.V, A: s.A,
		Tau: r.Tau, NLE: r.NLE, G: r.G,
		KineticEnergy:    r.KineticEnergy,
		PotentialEnergy:  r.PotentialEnergy,
		CoriolisResidual: r.CoriolisResidual,
	}
}

// Evaluate computes every quantity of one sample with workspace d. A nil
// acceleration is taken as zero.
func Evaluate(m *multibody.Model[float64], d *multibody.Data[float64], s Sample) Result {
	r := Result{
		Tau: clone(dynamics.InverseDynamics(m, d, s.Q, s.V, s.A)),
		NLE: clone(dynamics.NonlinearEffects(m, d, s.Q, s.V)),
		G:   clone(dynamics.GeneralizedGravity(m, d, s.Q)),
	}
	r.KineticEnergy = dynamics.KineticEnergy(m, d, s.Q, s.V)
	r.PotentialEnergy = dynamics.PotentialEnergy(m, d, s.Q)

	c := dynamics.CoriolisMatrix(m, d, s.Q, s.V)
	for k := 0; k < c.Rows; k++ {
		var cv float64
		for j, x := range c.Row(k) {
			cv += x * s.V[j]
		}
		r.CoriolisResidual = math.Max(r.CoriolisResidual, math.Abs(cv-(r.NLE[k]-r.G[k])))
	}
	return r
}

type Evaluator struct {
	model   *multibody.Model[float64]
	workers int
	pool    *DataPool
	metrics []metrics.Metric
}

func NewEvaluator(m *multibody.Model[float64], workers int) *Evaluator {
	if workers < 1 {
		workers = 1
	}
	return &Evaluator{model: m, workers: workers, pool: NewDataPool(m)}
}

func (e *Evaluator) AddMetric(m metrics.Metric) {
	e.metrics = append(e.metrics, m)
}

// Metrics returns the value of every metric over the last run.
func (e *Evaluator) Metrics() map[string]float64 {
	return metrics.Values(e.metrics)
}

// Run evaluates all samples and returns the results in sample order.
func (e *Evaluator) Run(ctx context.Context, samples []Sample) ([]Result, error) {
	for k, s := range samples {
		if err := e.model.ValidateInputs(s.Q, s.V, s.A); err != nil {
			return nil, fmt.Errorf("sample %d: %w", k, err)
		}
		if s.V == nil {
			return nil, fmt.Errorf("sample %d: %w: missing velocity", k, multibody.ErrDimensionMismatch)
		}
	}

	logger := logging.FromContext(ctx)
	logger.Debug("batch started", "samples", len(samples), "workers", e.workers)

	results := make([]Result, len(samples))
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < e.workers; w++ {
		g.Go(func() error {
			d := e.pool.Get()
			defer e.pool.Put(d)
			for k := w; k < len(samples); k += e.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[k] = Evaluate(e.model, d, samples[k])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	for k, r := range results {
		for _, m := range e.metrics {
			m.Observe(r.Observation(samples[k]))
		}
	}
	logger.Debug("batch finished", "samples", len(samples))
	return results, nil
}

// RandomSamples draws n samples with random configurations and velocities
// and accelerations uniform in [-1, 1].
func RandomSamples(m *multibody.Model[float64], n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, n)
	for k := range samples {
		samples[k] = Sample{
			Q: m.RandomConfiguration(rng),
			V: uniform(rng, m.NV),
			A: uniform(rng, m.NV),
		}
	}
	return samples
}

// Sweep varies configuration coordinate coord from from to to around the
// neutral configuration, at rest.
func Sweep(m *multibody.Model[float64], coord int, from, to float64, steps int) ([]Sample, error) {
	if coord < 0 || coord >= m.NQ {
		return nil, fmt.Errorf("%w: coordinate %d outside [0, %d)", multibody.ErrDimensionMismatch, coord, m.NQ)
	}
	if steps < 2 {
		steps = 2
	}
	samples := make([]Sample, steps)
	for k := range samples {
		q := m.NeutralConfiguration()
		q[coord] = from + (to-from)*float64(k)/float64(steps-1)
		samples[k] = Sample{Q: q, V: make([]float64, m.NV), A: make([]float64, m.NV)}
	}
	return samples, nil
}

func uniform(rng *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for k := range x {
		x[k] = rng.Float64()*2 - 1
	}
	return x
}

func clone(x []float64) []float64 { return append([]float64(nil), x...) }

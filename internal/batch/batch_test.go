package batch

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/goleak"

	"github.com/san-kum/rbdyn/internal/config"
	"github.com/san-kum/rbdyn/internal/metrics"
	"github.com/san-kum/rbdyn/internal/multibody"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func preset(t *testing.T, name string) *multibody.Model[float64] {
	t.Helper()
	desc, err := config.GetPreset(name)
	if err != nil {
		t.Fatalf("preset failed: %v", err)
	}
	m, err := config.Build[float64](desc)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return m
}

func TestRunMatchesSequential(t *testing.T) {
	m := preset(t, "tree")
	samples := RandomSamples(m, 37, 9)

	e := NewEvaluator(m, 4)
	results, err := e.Run(context.Background(), samples)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != len(samples) {
		t.Fatalf("expected %d results, got %d", len(samples), len(results))
	}

	d := multibody.NewData(m)
	for k, s := range samples {
		want := Evaluate(m, d, s)
		for j := range want.Tau {
			if results[k].Tau[j] != want.Tau[j] {
				t.Fatalf("sample %d: expected tau[%d]=%f, got %f", k, j, want.Tau[j], results[k].Tau[j])
			}
		}
		if results[k].CoriolisResidual > 1e-9 {
			t.Errorf("sample %d: coriolis residual %g", k, results[k].CoriolisResidual)
		}
	}
}

func TestRunObservesMetrics(t *testing.T) {
	m := preset(t, "double_pendulum")
	e := NewEvaluator(m, 2)
	for _, metric := range metrics.Standard(1e-9) {
		e.AddMetric(metric)
	}

	samples := RandomSamples(m, 10, 1)
	if _, err := e.Run(context.Background(), samples); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	values := e.Metrics()
	if values["peak_torque"] <= 0 {
		t.Errorf("expected positive peak torque, got %f", values["peak_torque"])
	}
	if values["residual_compliance"] != 1 {
		t.Errorf("expected full compliance, got %f", values["residual_compliance"])
	}

	if _, err := e.Run(context.Background(), samples[:1]); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := e.Metrics()["peak_torque"]; got > values["peak_torque"] {
		t.Errorf("expected metrics reset between runs, got peak %f after %f", got, values["peak_torque"])
	}
}

func TestRunRejectsBadSamples(t *testing.T) {
	m := preset(t, "arm6")
	e := NewEvaluator(m, 2)

	_, err := e.Run(context.Background(), []Sample{{Q: make([]float64, 2), V: make([]float64, m.NV)}})
	if !errors.Is(err, multibody.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	_, err = e.Run(context.Background(), []Sample{{Q: m.NeutralConfiguration()}})
	if !errors.Is(err, multibody.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for missing velocity, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	m := preset(t, "arm6")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEvaluator(m, 3).Run(ctx, RandomSamples(m, 20, 2))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSweep(t *testing.T) {
	m := preset(t, "pendulum")
	samples, err := Sweep(m, 0, -math.Pi/2, math.Pi/2, 5)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(samples) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(samples))
	}
	if samples[0].Q[0] != -math.Pi/2 || samples[4].Q[0] != math.Pi/2 || samples[2].Q[0] != 0 {
		t.Errorf("unexpected sweep endpoints %f %f %f", samples[0].Q[0], samples[2].Q[0], samples[4].Q[0])
	}

	results, err := NewEvaluator(m, 2).Run(context.Background(), samples)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if math.Abs(results[0].G[0]+results[4].G[0]) > 1e-12 {
		t.Errorf("expected antisymmetric gravity torque, got %f and %f", results[0].G[0], results[4].G[0])
	}

	if _, err := Sweep(m, 3, 0, 1, 5); !errors.Is(err, multibody.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for bad coordinate, got %v", err)
	}
}

func TestDataPoolDropsForeignData(t *testing.T) {
	m := preset(t, "arm6")
	p := NewDataPool(m)

	d := p.Get()
	if err := m.Check(d); err != nil {
		t.Fatalf("pool returned inconsistent data: %v", err)
	}
	p.Put(multibody.NewData(preset(t, "pendulum")))
	if err := m.Check(p.Get()); err != nil {
		t.Errorf("pool handed out foreign data: %v", err)
	}
}

package controllers

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rbdyn/internal/config"
	"github.com/san-kum/rbdyn/internal/dynamics"
	"github.com/san-kum/rbdyn/internal/multibody"
)

func preset(t *testing.T, name string) *multibody.Model[float64] {
	t.Helper()
	desc, err := config.GetPreset(name)
	if err != nil {
		t.Fatal(err)
	}
	m, err := config.Build[float64](desc)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func maxDiff(a, b []float64) float64 {
	var worst float64
	for k := range a {
		worst = max(worst, math.Abs(a[k]-b[k]))
	}
	return worst
}

func TestGravityCompensationAtTarget(t *testing.T) {
	m := preset(t, "double_pendulum")
	q := []float64{0.3, -0.7}
	ctrl, err := NewGravityCompensation(m, Target{Q: q}, Gains{Kp: []float64{10}, Kd: []float64{5}})
	if err != nil {
		t.Fatal(err)
	}

	g := dynamics.GeneralizedGravity(m, multibody.NewData(m), q)
	if d := maxDiff(ctrl.Compute(q, []float64{0, 0}), g); d > 1e-12 {
		t.Errorf("at rest on target tau should equal g, diff %g", d)
	}
}

func TestGravityCompensationPD(t *testing.T) {
	m := preset(t, "pendulum")
	ctrl, err := NewGravityCompensation(m, Target{Q: []float64{0}}, Gains{Kp: []float64{10}, Kd: []float64{5}})
	if err != nil {
		t.Fatal(err)
	}

	d := multibody.NewData(m)
	q, v := []float64{1}, []float64{0.5}
	g := dynamics.GeneralizedGravity(m, d, q)[0]
	want := g + 10*(0-1) - 5*0.5
	if got := ctrl.Compute(q, v)[0]; math.Abs(got-want) > 1e-12 {
		t.Errorf("tau = %v, want %v", got, want)
	}
	if ctrl.Compute([]float64{1}, []float64{0})[0] >= g {
		t.Error("positive error should pull the torque below gravity")
	}
}

func TestComputedTorqueMatchesInverseDynamics(t *testing.T) {
	m := preset(t, "tree")
	d := multibody.NewData(m)
	qd := m.NeutralConfiguration()
	ad := make([]float64, m.NV)
	for k := range ad {
		ad[k] = 0.1 * float64(k+1)
	}

	ctrl, err := New("computed", m, Target{Q: qd, Ad: ad}, Gains{Kp: []float64{50}, Kd: []float64{10}})
	if err != nil {
		t.Fatal(err)
	}
	if ctrl.Name() != "computed_torque" {
		t.Errorf("name = %q", ctrl.Name())
	}

	v := make([]float64, m.NV)
	want := dynamics.InverseDynamics(m, d, qd, v, ad)
	if diff := maxDiff(ctrl.Compute(qd, v), want); diff > 1e-12 {
		t.Errorf("on target tau should be rnea(q, 0, ad), diff %g", diff)
	}
}

func TestComputedTorqueDamping(t *testing.T) {
	m := preset(t, "double_pendulum")
	d := multibody.NewData(m)
	q := []float64{0, 0}
	v := []float64{1, 0}

	ctrl, err := NewComputedTorque(m, Target{Q: q}, Gains{Kd: []float64{4, 4}})
	if err != nil {
		t.Fatal(err)
	}
	want := dynamics.InverseDynamics(m, d, q, v, []float64{-4, 0})
	if diff := maxDiff(ctrl.Compute(q, v), want); diff > 1e-12 {
		t.Errorf("damping acceleration mismatch, diff %g", diff)
	}
}

func TestControllerErrors(t *testing.T) {
	m := preset(t, "double_pendulum")
	if _, err := New("lqr", m, Target{Q: []float64{0, 0}}, Gains{}); err == nil {
		t.Error("expected unknown controller error")
	}
	_, err := NewGravityCompensation(m, Target{Q: []float64{0}}, Gains{})
	if !errors.Is(err, multibody.ErrDimensionMismatch) {
		t.Errorf("short target: err = %v", err)
	}
	_, err = NewComputedTorque(m, Target{Q: []float64{0, 0}}, Gains{Kp: []float64{1, 2, 3}})
	if !errors.Is(err, multibody.ErrDimensionMismatch) {
		t.Errorf("bad gains: err = %v", err)
	}
}

func TestSphericalJointHasNoPositionError(t *testing.T) {
	m := preset(t, "ball")
	q := m.NeutralConfiguration()
	e := make([]float64, m.NV)
	target := append([]float64(nil), q...)
	target[len(target)-1] = 0.5
	positionError(m, target, q, e)

	hinge := m.Joints[2]
	for k := 0; k < m.NV; k++ {
		want := 0.0
		if k == hinge.IdxV() {
			want = 0.5
		}
		if e[k] != want {
			t.Errorf("e[%d] = %v, want %v", k, e[k], want)
		}
	}
}

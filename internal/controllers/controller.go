// Package controllers turns joint-space tracking errors into joint torques
// through the inverse dynamics of a model.
package controllers

import (
	"fmt"
	"strings"

	"github.com/san-kum/rbdyn/internal/multibody"
)

// Controller computes joint torques for the measured state (q, v).
type Controller interface {
	Name() string
	Compute(q, v []float64) []float64
}

// Gains are per-coordinate proportional and derivative gains on the tangent
// error. A single value is broadcast to every coordinate.
type Gains struct {
	Kp, Kd []float64
}

func (g Gains) resolve(nv int) (kp, kd []float64, err error) {
	if kp, err = broadcast("kp", g.Kp, nv); err != nil {
		return nil, nil, err
	}
	if kd, err = broadcast("kd", g.Kd, nv); err != nil {
		return nil, nil, err
	}
	return kp, kd, nil
}

func broadcast(name string, k []float64, n int) ([]float64, error) {
	switch len(k) {
	case n:
		return append([]float64(nil), k...), nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = k[0]
		}
		return out, nil
	case 0:
		return make([]float64, n), nil
	}
	return nil, fmt.Errorf("%w: %s has %d gains for %d coordinates", multibody.ErrDimensionMismatch, name, len(k), n)
}

// Target is the desired trajectory point. Nil Vd and Ad mean zero.
type Target struct {
	Q, Vd, Ad []float64
}

// New builds a controller by name: "computed" or "gravity".
func New(kind string, m *multibody.Model[float64], target Target, g Gains) (Controller, error) {
	switch strings.ToLower(kind) {
	case "computed", "computed_torque":
		c, err := NewComputedTorque(m, target, g)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gravity", "gravity_compensation":
		c, err := NewGravityCompensation(m, target, g)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown controller %q", kind)
}

// positionError returns target - q per tangent coordinate. Joints whose
// configuration is not a vector space get a zero error.
func positionError(m *multibody.Model[float64], target, q, out []float64) {
	clear(out)
	for i := 1; i < m.NJoints; i++ {
		j := m.Joints[i]
		if j.NQ() != j.NV() {
			continue
		}
		for k := 0; k < j.NV(); k++ {
			out[j.IdxV()+k] = target[j.IdxQ()+k] - q[j.IdxQ()+k]
		}
	}
}

package controllers

import (
	"github.com/san-kum/rbdyn/internal/dynamics"
	"github.com/san-kum/rbdyn/internal/multibody"
)

// GravityCompensation is a PD law on top of the generalized gravity:
// tau = g(q) + Kp e - Kd v.
type GravityCompensation struct {
	model  *multibody.Model[float64]
	data   *multibody.Data[float64]
	target Target
	kp, kd []float64

	e []float64
}

func NewGravityCompensation(m *multibody.Model[float64], target Target, g Gains) (*GravityCompensation, error) {
	if err := m.ValidateInputs(target.Q); err != nil {
		return nil, err
	}
	kp, kd, err := g.resolve(m.NV)
	if err != nil {
		return nil, err
	}
	return &GravityCompensation{
		model:  m,
		data:   multibody.NewData(m),
		target: target,
		kp:     kp,
		kd:     kd,
		e:      make([]float64, m.NV),
	}, nil
}

func (c *GravityCompensation) Name() string { return "gravity_compensation" }

func (c *GravityCompensation) Compute(q, v []float64) []float64 {
	tau := clone(dynamics.GeneralizedGravity(c.model, c.data, q))
	positionError(c.model, c.target.Q, q, c.e)
	for k := range tau {
		tau[k] += c.kp[k]*c.e[k] - c.kd[k]*v[k]
	}
	return tau
}

package controllers

import (
	"github.com/san-kum/rbdyn/internal/dynamics"
	"github.com/san-kum/rbdyn/internal/multibody"
)

// ComputedTorque linearizes the model with inverse dynamics:
// tau = rnea(q, v, ad + Kp e + Kd (vd - v)).
type ComputedTorque struct {
	model  *multibody.Model[float64]
	data   *multibody.Data[float64]
	target Target
	kp, kd []float64

	e, a []float64
}

func NewComputedTorque(m *multibody.Model[float64], target Target, g Gains) (*ComputedTorque, error) {
	if err := m.ValidateInputs(target.Q, target.Vd, target.Ad); err != nil {
		return nil, err
	}
	kp, kd, err := g.resolve(m.NV)
	if err != nil {
		return nil, err
	}
	return &ComputedTorque{
		model:  m,
		data:   multibody.NewData(m),
		target: target,
		kp:     kp,
		kd:     kd,
		e:      make([]float64, m.NV),
		a:      make([]float64, m.NV),
	}, nil
}

func (c *ComputedTorque) Name() string { return "computed_torque" }

func (c *ComputedTorque) Compute(q, v []float64) []float64 {
	positionError(c.model, c.target.Q, q, c.e)
	for k := range c.a {
		c.a[k] = c.kp[k]*c.e[k] - c.kd[k]*v[k]
		if c.target.Vd != nil {
			c.a[k] += c.kd[k] * c.target.Vd[k]
		}
		if c.target.Ad != nil {
			c.a[k] += c.target.Ad[k]
		}
	}
	return clone(dynamics.InverseDynamics(c.model, c.data, q, v, c.a))
}

func clone(x []float64) []float64 { return append([]float64(nil), x...) }

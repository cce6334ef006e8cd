package dynamics

import (
	"fmt"

	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// InverseDynamics returns the joint torques tau = M(q) a + C(q, v) v + g(q)
// with the Recursive Newton-Euler Algorithm. A nil a stands for zero
// acceleration. The result aliases d.Tau.
func InverseDynamics[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q, v, a []T) []T {
	mustFitMotion(m, d, q, v, a)
	d.Bias[0] = m.Gravity.Neg()
	for i, parent := range forward(m) {
		rneaForward(m, d, i, parent, q, v, a)
	}
	projectForces(m, d, d.Tau)
	return d.Tau
}

// InverseDynamicsWithForces is InverseDynamics with one external force per
// joint acting on its body, expressed in the joint frame. fext[0] is ignored.
func InverseDynamicsWithForces[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q, v, a []T, fext []spatial.Force[T]) []T {
	mustFitMotion(m, d, q, v, a)
	if checks {
		if err := m.ValidateExternalForces(fext); err != nil {
			panic(fmt.Errorf("inverse dynamics: %w", err))
		}
	}
	d.Bias[0] = m.Gravity.Neg()
	for i, parent := range forward(m) {
		rneaForward(m, d, i, parent, q, v, a)
		d.Force[i] = d.Force[i].Sub(fext[i])
	}
	projectForces(m, d, d.Tau)
	return d.Tau
}

// rneaForward refreshes joint i and computes its velocity, acceleration and
// the force its body needs. A nil a stands for zero acceleration.
func rneaForward[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], i, parent int, q, v, a []T) {
	jm, jd := m.Joints[i], &d.Joints[i]
	jm.CalcVelocity(jd, q, v)
	d.Relative[i] = m.Placements[i].Mul(jd.M)
	li := d.Relative[i]

	vi := jd.V
	if parent > 0 {
		vi = vi.Add(li.ActInvMotion(d.Velocity[parent]))
	}
	d.Velocity[i] = vi

	acc := jd.C.Add(vi.Cross(jd.V))
	if a != nil {
		for k, s := range jd.S {
			acc = acc.Add(s.Scale(a[jm.IdxV()+k]))
		}
	}
	d.Bias[i] = acc.Add(li.ActInvMotion(d.Bias[parent]))

	y := m.Inertias[i]
	d.Force[i] = y.MulMotion(d.Bias[i]).Add(y.VxIV(vi))
}

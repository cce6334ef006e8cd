package dynamics

import (
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// KineticEnergy returns 1/2 v^T M(q) v, summed body by body.
func KineticEnergy[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q, v []T) T {
	mustFitMotion(m, d, q, v, nil)
	var e T
	for i, parent := range forward(m) {
		jm, jd := m.Joints[i], &d.Joints[i]
		jm.CalcVelocity(jd, q, v)
		d.Relative[i] = m.Placements[i].Mul(jd.M)
		vi := jd.V
		if parent > 0 {
			vi = vi.Add(d.Relative[i].ActInvMotion(d.Velocity[parent]))
		}
		d.Velocity[i] = vi
		e += vi.Dot(m.Inertias[i].MulMotion(vi))
	}
	return e / 2
}

// PotentialEnergy returns the gravitational potential energy of the bodies
// relative to the world origin.
func PotentialEnergy[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q []T) T {
	mustFit(m, d, q)
	var e T
	g := m.Gravity.Linear
	for i, parent := range forward(m) {
		jm, jd := m.Joints[i], &d.Joints[i]
		jm.Calc(jd, q)
		d.Relative[i] = m.Placements[i].Mul(jd.M)
		if parent > 0 {
			d.World[i] = d.World[parent].Mul(d.Relative[i])
		} else {
			d.World[i] = d.Relative[i]
		}
		y := m.Inertias[i]
		e -= y.Mass * g.Dot(d.World[i].ActPoint(y.Lever))
	}
	return e
}

package dynamics

import (
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// GeneralizedGravity returns g(q), the joint torques that balance gravity.
// The result aliases d.G.
func GeneralizedGravity[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q []T) []T {
	mustFit(m, d, q)
	d.Bias[0] = m.Gravity.Neg()
	for i, parent := range forward(m) {
		jm, jd := m.Joints[i], &d.Joints[i]
		jm.Calc(jd, q)
		d.Relative[i] = m.Placements[i].Mul(jd.M)
		d.Velocity[i] = spatial.Motion[T]{}
		d.Bias[i] = d.Relative[i].ActInvMotion(d.Bias[parent])
		d.Force[i] = m.Inertias[i].MulMotion(d.Bias[i])
	}
	projectForces(m, d, d.G)
	return d.G
}

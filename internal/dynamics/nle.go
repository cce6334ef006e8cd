package dynamics

import (
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// NonlinearEffects returns C(q, v) v + g(q), the torques needed to hold the
// mechanism at zero joint acceleration. The result aliases d.NLE.
func NonlinearEffects[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q, v []T) []T {
	mustFitMotion(m, d, q, v, nil)
	d.Bias[0] = m.Gravity.Neg()
	for i, parent := range forward(m) {
		rneaForward(m, d, i, parent, q, v, nil)
	}
	projectForces(m, d, d.NLE)
	return d.NLE
}

package dynamics

import (
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// MassMatrix returns the joint-space inertia matrix M(q) with the Composite
// Rigid Body Algorithm, in the world frame. Both triangles are filled. The
// result aliases d.M.
//
// Each row block is filled against its own subtree columns and mirrored, which
// covers every ancestor entry as well.
func MassMatrix[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q []T) multibody.Matrix[T] {
	mustFit(m, d, q)
	d.M.Zero()
	for i, parent := range forward(m) {
		m.Joints[i].Calc(&d.Joints[i], q)
		worldPlacement(m, d, i, parent)
	}

	for i, parent := range backward(m) {
		jm := m.Joints[i]
		idx, nv := jm.IdxV(), jm.NV()
		cols := d.Jacobian[idx : idx+nv]
		ycrb := d.WorldComposite[i]
		spatial.InertiaAction(ycrb, cols, d.ForceDerivative[idx:idx+nv])

		sub := d.SubtreeDof[i]
		for r, jc := range cols {
			for c := idx; c < idx+sub; c++ {
				x := jc.Dot(d.ForceDerivative[c])
				d.M.Set(idx+r, c, x)
				d.M.Set(c, idx+r, x)
			}
		}

		if parent > 0 {
			d.WorldComposite[parent] = d.WorldComposite[parent].Add(ycrb)
		}
	}
	return d.M
}

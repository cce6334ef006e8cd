package dynamics

import (
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// CoriolisMatrix returns the Coriolis matrix C(q, v). It satisfies
// C(q, v) v == NonlinearEffects(q, v) - GeneralizedGravity(q), and
// dM/dt == C + C^T along v. The result aliases d.C.
//
// Row block i is only filled against the columns of the subtree of joint i
// and of the joints on its path to the root; every other entry is zero.
func CoriolisMatrix[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q, v []T) multibody.Matrix[T] {
	mustFitMotion(m, d, q, v, nil)
	d.C.Zero()
	for i, parent := range forward(m) {
		m.Joints[i].CalcVelocity(&d.Joints[i], q, v)
		worldPlacement(m, d, i, parent)
		worldMotion(m, d, i, parent)
	}

	for i, parent := range backward(m) {
		jm := m.Joints[i]
		idx, nv := jm.IdxV(), jm.NV()
		cols := d.Jacobian[idx : idx+nv]
		dcols := d.JacobianDot[idx : idx+nv]
		dfdv := d.ForceDerivative[idx : idx+nv]
		ycrb, vxi := d.WorldComposite[i], d.WorldCrossInertia[i]

		spatial.InertiaAction(ycrb, dcols, dfdv)
		for k := range dfdv {
			dfdv[k] = dfdv[k].Add(vxi.MulMotion(cols[k]))
		}

		sub := d.SubtreeDof[i]
		for r, jc := range cols {
			row := d.C.Row(idx + r)[idx : idx+sub]
			for c, f := range d.ForceDerivative[idx : idx+sub] {
				row[c] = jc.Dot(f)
			}
		}

		rowsY, rowsB := d.RowScratch(nv)
		for r, jc := range cols {
			rowsY[r] = ycrb.MulTransposeMotion(jc)
			rowsB[r] = vxi.MulTransposeMotion(jc)
		}
		for j := d.AncestorByRow[idx]; j != multibody.NoAncestor; j = d.AncestorByRow[j] {
			dj, jj := d.JacobianDot[j], d.Jacobian[j]
			for r := 0; r < nv; r++ {
				d.C.Set(idx+r, j, dj.Dot(rowsY[r])+jj.Dot(rowsB[r]))
			}
		}

		if parent > 0 {
			d.WorldComposite[parent] = d.WorldComposite[parent].Add(ycrb)
			d.WorldCrossInertia[parent] = d.WorldCrossInertia[parent].Add(vxi)
		}
	}
	return d.C
}

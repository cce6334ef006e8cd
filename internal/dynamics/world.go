package dynamics

import (
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// worldPlacement places joint i in the world frame: its transform, the world
// inertia of its own body and its Jacobian columns. The joint data of i must
// already be computed for the current q.
func worldPlacement[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], i, parent int) {
	jm, jd := m.Joints[i], &d.Joints[i]
	d.Relative[i] = m.Placements[i].Mul(jd.M)
	if parent > 0 {
		d.World[i] = d.World[parent].Mul(d.Relative[i])
	} else {
		d.World[i] = d.Relative[i]
	}
	oMi := d.World[i]
	d.WorldComposite[i] = oMi.ActInertia(m.Inertias[i]).Matrix()

	idx := jm.IdxV()
	cols := d.Jacobian[idx : idx+jm.NV()]
	for k, s := range jd.S {
		cols[k] = oMi.ActMotion(s)
	}
}

// worldMotion computes the world velocity of joint i, the time derivative of
// its Jacobian columns and the velocity cross inertia of its body. It runs
// after worldPlacement, on joint data computed with a velocity.
func worldMotion[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], i, parent int) {
	jm, jd := m.Joints[i], &d.Joints[i]
	ov := d.World[i].ActMotion(jd.V)
	if parent > 0 {
		ov = ov.Add(d.WorldVelocity[parent])
	}
	d.WorldVelocity[i] = ov

	idx, nv := jm.IdxV(), jm.NV()
	spatial.MotionAction(ov, d.Jacobian[idx:idx+nv], d.JacobianDot[idx:idx+nv])
	d.WorldCrossInertia[i] = spatial.VelocityCrossInertia(ov, d.WorldComposite[i])
}

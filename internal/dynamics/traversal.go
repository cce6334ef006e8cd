package dynamics

import (
	"iter"

	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// forward yields every joint with its parent, parents first.
func forward[T spatial.Scalar](m *multibody.Model[T]) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 1; i < m.NJoints; i++ {
			if !yield(i, m.Parents[i]) {
				return
			}
		}
	}
}

// backward yields every joint with its parent, children first.
func backward[T spatial.Scalar](m *multibody.Model[T]) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := m.NJoints - 1; i > 0; i-- {
			if !yield(i, m.Parents[i]) {
				return
			}
		}
	}
}

// mustFit panics unless d was built for m and q fits the configuration space.
func mustFit[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q []T) {
	if !checks {
		return
	}
	if err := m.Check(d); err != nil {
		panic(err)
	}
	if err := m.ValidateConfiguration(q); err != nil {
		panic(err)
	}
}

// mustFitMotion also requires a velocity v of the tangent size. The
// acceleration a may be nil.
func mustFitMotion[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], q, v, a []T) {
	if !checks {
		return
	}
	mustFit(m, d, q)
	if err := m.ValidateTangent("v", v); err != nil {
		panic(err)
	}
	if a == nil {
		return
	}
	if err := m.ValidateTangent("a", a); err != nil {
		panic(err)
	}
}

// projectForces writes S^T f of every joint into out and carries each force
// into its parent's frame.
func projectForces[T spatial.Scalar](m *multibody.Model[T], d *multibody.Data[T], out []T) {
	for i, parent := range backward(m) {
		jm := m.Joints[i]
		seg := out[jm.IdxV() : jm.IdxV()+jm.NV()]
		f := d.Force[i]
		for k, s := range d.Joints[i].S {
			seg[k] = s.Dot(f)
		}
		if parent > 0 {
			d.Force[parent] = d.Force[parent].Add(d.Relative[i].ActForce(f))
		}
	}
}

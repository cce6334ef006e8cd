package spatial

// SE3 is a rigid transform aMb: a point expressed in b maps to R*p_b + P in a.
type SE3[T Scalar] struct {
	R Mat3[T]
	P Vec3[T]
}

func IdentitySE3[T Scalar]() SE3[T] {
	return SE3[T]{R: Identity3[T]()}
}

// Translation returns a pure translation by p.
func Translation[T Scalar](p Vec3[T]) SE3[T] {
	return SE3[T]{R: Identity3[T](), P: p}
}

// Mul composes aMb * bMc into aMc.
func (m SE3[T]) Mul(o SE3[T]) SE3[T] {
	return SE3[T]{R: m.R.Mul(o.R), P: m.P.Add(m.R.MulVec(o.P))}
}

func (m SE3[T]) Inverse() SE3[T] {
	rt := m.R.Transpose()
	return SE3[T]{R: rt, P: rt.MulVec(m.P).Neg()}
}

func (m SE3[T]) ActPoint(p Vec3[T]) Vec3[T] { return m.R.MulVec(p).Add(m.P) }

func (m SE3[T]) ActMotion(v Motion[T]) Motion[T] {
	w := m.R.MulVec(v.Angular)
	return Motion[T]{Linear: m.R.MulVec(v.Linear).Add(m.P.Cross(w)), Angular: w}
}

func (m SE3[T]) ActInvMotion(v Motion[T]) Motion[T] {
	return Motion[T]{
		Linear:  m.R.MulTVec(v.Linear.Sub(m.P.Cross(v.Angular))),
		Angular: m.R.MulTVec(v.Angular),
	}
}

func (m SE3[T]) ActForce(f Force[T]) Force[T] {
	lin := m.R.MulVec(f.Linear)
	return Force[T]{Linear: lin, Angular: m.R.MulVec(f.Angular).Add(m.P.Cross(lin))}
}

func (m SE3[T]) ActInvForce(f Force[T]) Force[T] {
	return Force[T]{
		Linear:  m.R.MulTVec(f.Linear),
		Angular: m.R.MulTVec(f.Angular.Sub(m.P.Cross(f.Linear))),
	}
}

// ActInertia expresses an inertia given in b in the frame a.
func (m SE3[T]) ActInertia(y Inertia[T]) Inertia[T] {
	return Inertia[T]{
		Mass:  y.Mass,
		Lever: m.ActPoint(y.Lever),
		Rot:   m.R.Mul(y.Rot).Mul(m.R.Transpose()),
	}
}

func (m SE3[T]) IsApprox(o SE3[T], tol T) bool {
	return m.R.IsApprox(o.R, tol) && m.P.IsApprox(o.P, tol)
}

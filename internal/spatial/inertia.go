package spatial

// Inertia is the spatial inertia of one rigid body: its mass, the position of
// its center of mass (Lever) and its rotational inertia about the center of mass.
type Inertia[T Scalar] struct {
	Mass  T
	Lever Vec3[T]
	Rot   Mat3[T]
}

// NewInertia builds a body inertia. rot is taken about the center of mass com.
func NewInertia[T Scalar](mass T, com Vec3[T], rot Mat3[T]) Inertia[T] {
	return Inertia[T]{Mass: mass, Lever: com, Rot: rot}
}

// PointMass returns the inertia of a point of mass m located at com.
func PointMass[T Scalar](mass T, com Vec3[T]) Inertia[T] {
	return Inertia[T]{Mass: mass, Lever: com}
}

// MulMotion returns the momentum I*v.
func (y Inertia[T]) MulMotion(v Motion[T]) Force[T] {
	lin := v.Linear.Sub(y.Lever.Cross(v.Angular)).Scale(y.Mass)
	return Force[T]{
		Linear:  lin,
		Angular: y.Rot.MulVec(v.Angular).Add(y.Lever.Cross(lin)),
	}
}

// VxIV returns v x* (I*v), the velocity-quadratic force of a body moving at v.
func (y Inertia[T]) VxIV(v Motion[T]) Force[T] {
	return v.CrossForce(y.MulMotion(v))
}

// Add returns the inertia of the two bodies rigidly joined together.
func (y Inertia[T]) Add(o Inertia[T]) Inertia[T] {
	m := y.Mass + o.Mass
	if m == 0 {
		return Inertia[T]{Lever: y.Lever, Rot: y.Rot.Add(o.Rot)}
	}
	ab := y.Lever.Sub(o.Lever)
	s := Skew(ab)
	return Inertia[T]{
		Mass:  m,
		Lever: y.Lever.Scale(y.Mass / m).Add(o.Lever.Scale(o.Mass / m)),
		Rot:   y.Rot.Add(o.Rot).Sub(s.Mul(s).Scale(y.Mass * o.Mass / m)),
	}
}

// Matrix returns the 6x6 form of the inertia.
func (y Inertia[T]) Matrix() Matrix6[T] {
	var out Matrix6[T]
	c := Skew(y.Lever)
	mc := c.Scale(y.Mass)
	ang := y.Rot.Sub(mc.Mul(c))
	for i := 0; i < 3; i++ {
		out[i][i] = y.Mass
		for j := 0; j < 3; j++ {
			out[i][3+j] = -mc[i][j]
			out[3+i][j] = mc[i][j]
			out[3+i][3+j] = ang[i][j]
		}
	}
	return out
}

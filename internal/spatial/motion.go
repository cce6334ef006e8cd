package spatial

// Motion is a spatial velocity or acceleration.
type Motion[T Scalar] struct {
	Linear  Vec3[T]
	Angular Vec3[T]
}

func (m Motion[T]) Add(o Motion[T]) Motion[T] {
	return Motion[T]{m.Linear.Add(o.Linear), m.Angular.Add(o.Angular)}
}

func (m Motion[T]) Sub(o Motion[T]) Motion[T] {
	return Motion[T]{m.Linear.Sub(o.Linear), m.Angular.Sub(o.Angular)}
}

func (m Motion[T]) Neg() Motion[T] { return Motion[T]{m.Linear.Neg(), m.Angular.Neg()} }

func (m Motion[T]) Scale(s T) Motion[T] {
	return Motion[T]{m.Linear.Scale(s), m.Angular.Scale(s)}
}

// Cross returns the motion cross product m x o.
func (m Motion[T]) Cross(o Motion[T]) Motion[T] {
	return Motion[T]{
		Linear:  m.Angular.Cross(o.Linear).Add(m.Linear.Cross(o.Angular)),
		Angular: m.Angular.Cross(o.Angular),
	}
}

// CrossForce returns the dual cross product m x* f.
func (m Motion[T]) CrossForce(f Force[T]) Force[T] {
	return Force[T]{
		Linear:  m.Angular.Cross(f.Linear),
		Angular: m.Angular.Cross(f.Angular).Add(m.Linear.Cross(f.Linear)),
	}
}

// Dot returns the power pairing of a motion with a force.
func (m Motion[T]) Dot(f Force[T]) T {
	return m.Linear.Dot(f.Linear) + m.Angular.Dot(f.Angular)
}

func (m Motion[T]) Vector() [6]T {
	return [6]T{m.Linear[0], m.Linear[1], m.Linear[2], m.Angular[0], m.Angular[1], m.Angular[2]}
}

func MotionFromVector[T Scalar](v [6]T) Motion[T] {
	return Motion[T]{Vec3[T]{v[0], v[1], v[2]}, Vec3[T]{v[3], v[4], v[5]}}
}

func (m Motion[T]) IsApprox(o Motion[T], tol T) bool {
	return m.Linear.IsApprox(o.Linear, tol) && m.Angular.IsApprox(o.Angular, tol)
}

// MotionAction sets out[k] = v x cols[k] for every column. It is the time
// derivative of motion columns rigidly attached to a body moving at v.
func MotionAction[T Scalar](v Motion[T], cols, out []Motion[T]) {
	for k := range cols {
		out[k] = v.Cross(cols[k])
	}
}

package spatial

// Force is a spatial force: a linear force and a moment about the frame origin.
type Force[T Scalar] struct {
	Linear  Vec3[T]
	Angular Vec3[T]
}

func (f Force[T]) Add(o Force[T]) Force[T] {
	return Force[T]{f.Linear.Add(o.Linear), f.Angular.Add(o.Angular)}
}

func (f Force[T]) Sub(o Force[T]) Force[T] {
	return Force[T]{f.Linear.Sub(o.Linear), f.Angular.Sub(o.Angular)}
}

func (f Force[T]) Neg() Force[T] { return Force[T]{f.Linear.Neg(), f.Angular.Neg()} }

func (f Force[T]) Scale(s T) Force[T] {
	return Force[T]{f.Linear.Scale(s), f.Angular.Scale(s)}
}

func (f Force[T]) Dot(m Motion[T]) T { return m.Dot(f) }

func (f Force[T]) Vector() [6]T {
	return [6]T{f.Linear[0], f.Linear[1], f.Linear[2], f.Angular[0], f.Angular[1], f.Angular[2]}
}

func ForceFromVector[T Scalar](v [6]T) Force[T] {
	return Force[T]{Vec3[T]{v[0], v[1], v[2]}, Vec3[T]{v[3], v[4], v[5]}}
}

func (f Force[T]) IsApprox(o Force[T], tol T) bool {
	return f.Linear.IsApprox(o.Linear, tol) && f.Angular.IsApprox(o.Angular, tol)
}

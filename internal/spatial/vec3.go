package spatial

type Vec3[T Scalar] [3]T

func V3[T Scalar](x, y, z T) Vec3[T] { return Vec3[T]{x, y, z} }

func (a Vec3[T]) Add(b Vec3[T]) Vec3[T] { return Vec3[T]{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a Vec3[T]) Sub(b Vec3[T]) Vec3[T] { return Vec3[T]{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a Vec3[T]) Scale(s T) Vec3[T]     { return Vec3[T]{a[0] * s, a[1] * s, a[2] * s} }
func (a Vec3[T]) Neg() Vec3[T]          { return Vec3[T]{-a[0], -a[1], -a[2]} }

func (a Vec3[T]) Dot(b Vec3[T]) T {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3[T]) Cross(b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a Vec3[T]) Norm() T { return sqrt(a.Dot(a)) }

// Normalize returns a unit vector along a, or the zero vector when a is zero.
func (a Vec3[T]) Normalize() Vec3[T] {
	n := a.Norm()
	if n == 0 {
		return Vec3[T]{}
	}
	return a.Scale(1 / n)
}

// IsApprox reports whether every component of a and b differs by at most tol.
func (a Vec3[T]) IsApprox(b Vec3[T], tol T) bool {
	for i := range a {
		if abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

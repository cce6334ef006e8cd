package spatial

// Mat3 is a row-major 3x3 matrix.
type Mat3[T Scalar] [3][3]T

func Identity3[T Scalar]() Mat3[T] {
	return Mat3[T]{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Diag3 returns the diagonal matrix diag(x, y, z).
func Diag3[T Scalar](x, y, z T) Mat3[T] {
	return Mat3[T]{{x, 0, 0}, {0, y, 0}, {0, 0, z}}
}

// Skew returns the matrix [v]x such that Skew(v).MulVec(w) == v.Cross(w).
func Skew[T Scalar](v Vec3[T]) Mat3[T] {
	return Mat3[T]{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

// AxisAngle returns the rotation of angle radians about the unit vector axis.
func AxisAngle[T Scalar](axis Vec3[T], angle T) Mat3[T] {
	s, c := sin(angle), cos(angle)
	t := 1 - c
	x, y, z := axis[0], axis[1], axis[2]
	return Mat3[T]{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}
}

// Quaternion returns the rotation of the quaternion w + xi + yj + zk.
// The quaternion is normalized first; a zero quaternion maps to the identity.
func Quaternion[T Scalar](w, x, y, z T) Mat3[T] {
	n := sqrt(w*w + x*x + y*y + z*z)
	if n == 0 {
		return Identity3[T]()
	}
	w, x, y, z = w/n, x/n, y/n, z/n
	return Mat3[T]{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

func (m Mat3[T]) Transpose() Mat3[T] {
	return Mat3[T]{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// MulTVec returns m^T v without forming the transpose.
func (m Mat3[T]) MulTVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		m[0][0]*v[0] + m[1][0]*v[1] + m[2][0]*v[2],
		m[0][1]*v[0] + m[1][1]*v[1] + m[2][1]*v[2],
		m[0][2]*v[0] + m[1][2]*v[1] + m[2][2]*v[2],
	}
}

func (m Mat3[T]) Mul(o Mat3[T]) Mat3[T] {
	var r Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

func (m Mat3[T]) Add(o Mat3[T]) Mat3[T] {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] += o[i][j]
		}
	}
	return m
}

func (m Mat3[T]) Sub(o Mat3[T]) Mat3[T] {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] -= o[i][j]
		}
	}
	return m
}

func (m Mat3[T]) Scale(s T) Mat3[T] {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] *= s
		}
	}
	return m
}

// IsApprox reports whether every entry of m and o differs by at most tol.
func (m Mat3[T]) IsApprox(o Mat3[T], tol T) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if abs(m[i][j]-o[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

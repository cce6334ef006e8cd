package spatial

// Matrix6 is a dense 6x6 operator on spatial six-vectors, row-major and laid out
// linear block first. It maps motions to forces when used as an inertia.
type Matrix6[T Scalar] [6][6]T

// MotionCrossMatrix returns the matrix of the operator m x (.) on motions.
func MotionCrossMatrix[T Scalar](v Motion[T]) Matrix6[T] {
	var out Matrix6[T]
	w, l := Skew(v.Angular), Skew(v.Linear)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = w[i][j]
			out[i][3+j] = l[i][j]
			out[3+i][3+j] = w[i][j]
		}
	}
	return out
}

// ForceCrossMatrix returns the matrix of the operator v x* (.) on forces.
func ForceCrossMatrix[T Scalar](v Motion[T]) Matrix6[T] {
	var out Matrix6[T]
	w, l := Skew(v.Angular), Skew(v.Linear)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = w[i][j]
			out[3+i][j] = l[i][j]
			out[3+i][3+j] = w[i][j]
		}
	}
	return out
}

// VelocityCrossInertia returns (v x*) y. Its symmetric part is half the time
// derivative of y carried at v, and VelocityCrossInertia(v, y) v == v x* (y v).
func VelocityCrossInertia[T Scalar](v Motion[T], y Matrix6[T]) Matrix6[T] {
	return ForceCrossMatrix(v).Mul(y)
}

func (a Matrix6[T]) Mul(b Matrix6[T]) Matrix6[T] {
	var out Matrix6[T]
	for i := 0; i < 6; i++ {
		for k := 0; k < 6; k++ {
			aik := a[i][k]
			if aik == 0 {
				continue
			}
			for j := 0; j < 6; j++ {
				out[i][j] += aik * b[k][j]
			}
		}
	}
	return out
}

func (a Matrix6[T]) Add(b Matrix6[T]) Matrix6[T] {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			a[i][j] += b[i][j]
		}
	}
	return a
}

func (a Matrix6[T]) Sub(b Matrix6[T]) Matrix6[T] {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			a[i][j] -= b[i][j]
		}
	}
	return a
}

// MulMotion returns a*v as a force.
func (a Matrix6[T]) MulMotion(v Motion[T]) Force[T] {
	x := v.Vector()
	var y [6]T
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			y[i] += a[i][j] * x[j]
		}
	}
	return ForceFromVector(y)
}

// MulTransposeMotion returns a^T v, the row vector v^T a, as a force.
func (a Matrix6[T]) MulTransposeMotion(v Motion[T]) Force[T] {
	x := v.Vector()
	var y [6]T
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			y[j] += a[i][j] * x[i]
		}
	}
	return ForceFromVector(y)
}

func (a Matrix6[T]) IsApprox(b Matrix6[T], tol T) bool {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if abs(a[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// InertiaAction sets out[k] = y*cols[k] for every column.
func InertiaAction[T Scalar](y Matrix6[T], cols []Motion[T], out []Force[T]) {
	for k := range cols {
		out[k] = y.MulMotion(cols[k])
	}
}

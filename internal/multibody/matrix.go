package multibody

import "github.com/san-kum/rbdyn/internal/spatial"

// Matrix is a dense row-major matrix.
type Matrix[T spatial.Scalar] struct {
	Rows, Cols int
	Data       []T
}

func NewMatrix[T spatial.Scalar](rows, cols int) Matrix[T] {
	return Matrix[T]{Rows: rows, Cols: cols, Data: make([]T, rows*cols)}
}

func (a Matrix[T]) At(i, j int) T     { return a.Data[i*a.Cols+j] }
func (a Matrix[T]) Set(i, j int, x T) { a.Data[i*a.Cols+j] = x }

func (a Matrix[T]) AddAt(i, j int, x T) { a.Data[i*a.Cols+j] += x }

func (a Matrix[T]) Row(i int) []T { return a.Data[i*a.Cols : (i+1)*a.Cols] }

func (a Matrix[T]) Zero() {
	clear(a.Data)
}

// MulVec writes a*x into out, which must have Rows entries.
func (a Matrix[T]) MulVec(x, out []T) {
	for i := 0; i < a.Rows; i++ {
		var s T
		row := a.Row(i)
		for j, xj := range x {
			s += row[j] * xj
		}
		out[i] = s
	}
}

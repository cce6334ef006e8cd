package spatial

import "math"

// Scalar is the numeric field the spatial algebra is written over.
type Scalar interface {
	~float32 | ~float64
}

func sin[T Scalar](x T) T  { return T(math.Sin(float64(x))) }
func cos[T Scalar](x T) T  { return T(math.Cos(float64(x))) }
func sqrt[T Scalar](x T) T { return T(math.Sqrt(float64(x))) }

func abs[T Scalar](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

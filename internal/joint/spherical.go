package joint

import (
	"math"
	"math/rand"

	"github.com/san-kum/rbdyn/internal/spatial"
)

// Spherical is a ball joint. Its configuration is a unit quaternion stored as
// (x, y, z, w); its velocity is the angular velocity in the output frame.
type Spherical[T spatial.Scalar] struct {
	indexes
}

func NewSpherical[T spatial.Scalar]() Spherical[T] { return Spherical[T]{} }

func (j Spherical[T]) Kind() Kind { return KindSpherical }
func (j Spherical[T]) NQ() int    { return 4 }
func (j Spherical[T]) NV() int    { return 3 }

func (j Spherical[T]) WithIndexes(idxQ, idxV int) Model[T] {
	j.indexes = indexes{idxQ, idxV}
	return j
}

func (j Spherical[T]) NewData() Data[T] {
	d := newData[T](3)
	for k := 0; k < 3; k++ {
		d.S[k].Angular[k] = 1
	}
	return d
}

func (j Spherical[T]) Calc(d *Data[T], q []T) {
	x := Segment(q, j.idxQ, 4)
	d.M.R = spatial.Quaternion(x[3], x[0], x[1], x[2])
}

func (j Spherical[T]) CalcVelocity(d *Data[T], q, v []T) {
	j.Calc(d, q)
	w := Segment(v, j.idxV, 3)
	d.V = spatial.Motion[T]{Angular: spatial.V3(w[0], w[1], w[2])}
}

func (j Spherical[T]) Neutral(q []T) {
	x := Segment(q, j.idxQ, 4)
	x[0], x[1], x[2], x[3] = 0, 0, 0, 1
}

func (j Spherical[T]) Random(q []T, rng *rand.Rand) {
	randomQuaternion(Segment(q, j.idxQ, 4), rng)
}

// randomQuaternion writes a uniformly distributed unit quaternion (x, y, z, w).
func randomQuaternion[T spatial.Scalar](x []T, rng *rand.Rand) {
	u1, u2, u3 := rng.Float64(), rng.Float64(), rng.Float64()
	a, b := math.Sqrt(1-u1), math.Sqrt(u1)
	x[0] = T(a * math.Sin(2*math.Pi*u2))
	x[1] = T(a * math.Cos(2*math.Pi*u2))
	x[2] = T(b * math.Sin(2*math.Pi*u3))
	x[3] = T(b * math.Cos(2*math.Pi*u3))
}

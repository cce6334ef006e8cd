package joint

import (
	"math/rand"

	"github.com/san-kum/rbdyn/internal/spatial"
)

// FreeFlyer is an unconstrained 6-dof joint. Its configuration is a position
// followed by a unit quaternion (x, y, z, w); its velocity is the spatial
// velocity of the output frame expressed in that frame (linear, angular).
type FreeFlyer[T spatial.Scalar] struct {
	indexes
}

func NewFreeFlyer[T spatial.Scalar]() FreeFlyer[T] { return FreeFlyer[T]{} }

func (j FreeFlyer[T]) Kind() Kind { return KindFreeFlyer }
func (j FreeFlyer[T]) NQ() int    { return 7 }
func (j FreeFlyer[T]) NV() int    { return 6 }

func (j FreeFlyer[T]) WithIndexes(idxQ, idxV int) Model[T] {
	j.indexes = indexes{idxQ, idxV}
	return j
}

func (j FreeFlyer[T]) NewData() Data[T] {
	d := newData[T](6)
	for k := 0; k < 3; k++ {
		d.S[k].Linear[k] = 1
		d.S[3+k].Angular[k] = 1
	}
	return d
}

func (j FreeFlyer[T]) Calc(d *Data[T], q []T) {
	x := Segment(q, j.idxQ, 7)
	d.M.P = spatial.V3(x[0], x[1], x[2])
	d.M.R = spatial.Quaternion(x[6], x[3], x[4], x[5])
}

func (j FreeFlyer[T]) CalcVelocity(d *Data[T], q, v []T) {
	j.Calc(d, q)
	w := Segment(v, j.idxV, 6)
	d.V = spatial.Motion[T]{
		Linear:  spatial.V3(w[0], w[1], w[2]),
		Angular: spatial.V3(w[3], w[4], w[5]),
	}
}

func (j FreeFlyer[T]) Neutral(q []T) {
	x := Segment(q, j.idxQ, 7)
	for k := range x {
		x[k] = 0
	}
	x[6] = 1
}

func (j FreeFlyer[T]) Random(q []T, rng *rand.Rand) {
	x := Segment(q, j.idxQ, 7)
	for k := 0; k < 3; k++ {
		x[k] = T(rng.Float64()*2 - 1)
	}
	randomQuaternion(x[3:7], rng)
}

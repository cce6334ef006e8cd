package joint

import (
	"math/rand"

	"github.com/san-kum/rbdyn/internal/spatial"
)

// Prismatic translates along a fixed unit axis of its input frame.
type Prismatic[T spatial.Scalar] struct {
	indexes
	Axis spatial.Vec3[T]
}

func NewPrismatic[T spatial.Scalar](axis spatial.Vec3[T]) Prismatic[T] {
	return Prismatic[T]{Axis: axis.Normalize()}
}

func (j Prismatic[T]) Kind() Kind { return KindPrismatic }
func (j Prismatic[T]) NQ() int    { return 1 }
func (j Prismatic[T]) NV() int    { return 1 }

func (j Prismatic[T]) WithIndexes(idxQ, idxV int) Model[T] {
	j.indexes = indexes{idxQ, idxV}
	return j
}

func (j Prismatic[T]) NewData() Data[T] {
	d := newData[T](1)
	d.S[0] = spatial.Motion[T]{Linear: j.Axis}
	return d
}

func (j Prismatic[T]) Calc(d *Data[T], q []T) {
	d.M.P = j.Axis.Scale(q[j.idxQ])
}

func (j Prismatic[T]) CalcVelocity(d *Data[T], q, v []T) {
	j.Calc(d, q)
	d.V = spatial.Motion[T]{Linear: j.Axis.Scale(v[j.idxV])}
}

func (j Prismatic[T]) Neutral(q []T) { q[j.idxQ] = 0 }

func (j Prismatic[T]) Random(q []T, rng *rand.Rand) {
	q[j.idxQ] = T(rng.Float64()*2 - 1)
}

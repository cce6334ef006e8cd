package joint

import (
	"math"
	"math/rand"

	"github.com/san-kum/rbdyn/internal/spatial"
)

// Revolute rotates about a fixed unit axis of its input frame.
type Revolute[T spatial.Scalar] struct {
	indexes
	Axis spatial.Vec3[T]
}

// NewRevolute returns a revolute joint about axis; the axis is normalized.
func NewRevolute[T spatial.Scalar](axis spatial.Vec3[T]) Revolute[T] {
	return Revolute[T]{Axis: axis.Normalize()}
}

func (j Revolute[T]) Kind() Kind { return KindRevolute }
func (j Revolute[T]) NQ() int    { return 1 }
func (j Revolute[T]) NV() int    { return 1 }

func (j Revolute[T]) WithIndexes(idxQ, idxV int) Model[T] {
	j.indexes = indexes{idxQ, idxV}
	return j
}

func (j Revolute[T]) NewData() Data[T] {
	d := newData[T](1)
	d.S[0] = spatial.Motion[T]{Angular: j.Axis}
	return d
}

func (j Revolute[T]) Calc(d *Data[T], q []T) {
	d.M.R = spatial.AxisAngle(j.Axis, q[j.idxQ])
}

func (j Revolute[T]) CalcVelocity(d *Data[T], q, v []T) {
	j.Calc(d, q)
	d.V = spatial.Motion[T]{Angular: j.Axis.Scale(v[j.idxV])}
}

func (j Revolute[T]) Neutral(q []T) { q[j.idxQ] = 0 }

func (j Revolute[T]) Random(q []T, rng *rand.Rand) {
	q[j.idxQ] = T((rng.Float64()*2 - 1) * math.Pi)
}

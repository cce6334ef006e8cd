// Package joint implements the kinematic model of each supported joint kind.
//
// A joint [Model] is immutable and knows where its coordinates live in the
// configuration vector q (IdxQ, NQ) and in the velocity vector v (IdxV, NV).
// Its per-call state lives in a [Data] owned by the workspace:
//
//	jd := jm.NewData()
//	jm.CalcVelocity(&jd, q, v) // refreshes jd.M, jd.V and jd.C
//
// The set of kinds is closed: revolute, prismatic, spherical and free-flyer.
// Algorithms consume joints only through the [Model] interface.
package joint

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/rbdyn/internal/spatial"
)

var ErrUnknownKind = errors.New("joint: unknown joint kind")

type Kind int

const (
	KindRevolute Kind = iota
	KindPrismatic
	KindSpherical
	KindFreeFlyer
)

var kindNames = map[Kind]string{
	KindRevolute:  "revolute",
	KindPrismatic: "prismatic",
	KindSpherical: "spherical",
	KindFreeFlyer: "freeflyer",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	switch s {
	case "ball":
		return KindSpherical, nil
	case "free", "floating":
		return KindFreeFlyer, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Data is the state a joint model refreshes on every call.
type Data[T spatial.Scalar] struct {
	// M is the joint transform, from the joint's output frame to its input frame.
	M spatial.SE3[T]
	// S holds the NV motion subspace columns, expressed in the output frame.
	S []spatial.Motion[T]
	// V is the joint velocity S*v.
	V spatial.Motion[T]
	// C is the velocity-product bias acceleration of the joint.
	C spatial.Motion[T]
}

type Model[T spatial.Scalar] interface {
	Kind() Kind
	NQ() int
	NV() int
	IdxQ() int
	IdxV() int
	// WithIndexes returns a copy of the joint bound to the given offsets.
	WithIndexes(idxQ, idxV int) Model[T]
	NewData() Data[T]
	// Calc refreshes only the transform.
	Calc(d *Data[T], q []T)
	// CalcVelocity refreshes the transform, joint velocity and bias.
	CalcVelocity(d *Data[T], q, v []T)
	// Neutral writes the joint's reference configuration into q.
	Neutral(q []T)
	// Random writes a random valid configuration into q.
	Random(q []T, rng *rand.Rand)
}

type indexes struct {
	idxQ, idxV int
}

func (x indexes) IdxQ() int { return x.idxQ }
func (x indexes) IdxV() int { return x.idxV }

// Segment returns the n entries of vec starting at idx.
func Segment[T spatial.Scalar](vec []T, idx, n int) []T {
	return vec[idx : idx+n : idx+n]
}

func newData[T spatial.Scalar](nv int) Data[T] {
	return Data[T]{M: spatial.IdentitySE3[T](), S: make([]spatial.Motion[T], nv)}
}

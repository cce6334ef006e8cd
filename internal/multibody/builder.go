package multibody

import (
	"fmt"
	"math"

	"github.com/san-kum/rbdyn/internal/joint"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// Builder assembles a Model joint by joint. Errors are sticky: the first one
// is reported by Build and later calls are ignored.
type Builder[T spatial.Scalar] struct {
	m    *Model[T]
	path []int
	err  error
}

func NewBuilder[T spatial.Scalar]() *Builder[T] {
	return &Builder[T]{
		m: &Model[T]{
			NJoints:    1,
			Names:      []string{UniverseName},
			Parents:    []int{0},
			Joints:     []joint.Model[T]{nil},
			Placements: []spatial.SE3[T]{spatial.IdentitySE3[T]()},
			Inertias:   []spatial.Inertia[T]{{}},
			Gravity:    spatial.Motion[T]{Linear: DefaultGravity[T]()},
		},
		path: []int{0},
	}
}

func (b *Builder[T]) SetGravity(g spatial.Vec3[T]) *Builder[T] {
	b.m.Gravity = spatial.Motion[T]{Linear: g}
	return b
}

// AddJoint attaches j to parent through placement and gives it the body
// inertia body, expressed in the joint frame. It returns the new joint id.
// parent must be the last added joint or one of its ancestors.
func (b *Builder[T]) AddJoint(parent int, name string, j joint.Model[T], placement spatial.SE3[T], body spatial.Inertia[T]) int {
	if b.err != nil {
		return -1
	}
	m := b.m
	if parent < 0 || parent >= m.NJoints {
		b.err = fmt.Errorf("%w: %d (joint %q)", ErrUnknownParent, parent, name)
		return -1
	}
	if _, dup := m.JointIndex(name); dup {
		b.err = fmt.Errorf("%w: %q", ErrDuplicateName, name)
		return -1
	}
	if j == nil {
		b.err = fmt.Errorf("%w: joint %q has no model", ErrInvalidAxis, name)
		return -1
	}
	if err := validateJoint(j); err != nil {
		b.err = fmt.Errorf("joint %q: %w", name, err)
		return -1
	}
	if err := validateInertia(body); err != nil {
		b.err = fmt.Errorf("joint %q: %w", name, err)
		return -1
	}

	for len(b.path) > 0 && b.path[len(b.path)-1] != parent {
		b.path = b.path[:len(b.path)-1]
	}
	if len(b.path) == 0 {
		b.err = fmt.Errorf("%w: %q attaches to %q which is not on the current branch",
			ErrNotDepthFirst, name, m.Names[parent])
		return -1
	}

	id := m.NJoints
	b.path = append(b.path, id)
	m.NJoints++
	m.Names = append(m.Names, name)
	m.Parents = append(m.Parents, parent)
	m.Joints = append(m.Joints, j.WithIndexes(m.NQ, m.NV))
	m.Placements = append(m.Placements, placement)
	m.Inertias = append(m.Inertias, body)
	m.NQ += j.NQ()
	m.NV += j.NV()
	return id
}

// AppendBody rigidly attaches another body to an existing joint. placement
// locates the body frame in the joint frame.
func (b *Builder[T]) AppendBody(jointID int, placement spatial.SE3[T], body spatial.Inertia[T]) *Builder[T] {
	if b.err != nil {
		return b
	}
	if jointID <= 0 || jointID >= b.m.NJoints {
		b.err = fmt.Errorf("%w: %d", ErrUnknownParent, jointID)
		return b
	}
	if err := validateInertia(body); err != nil {
		b.err = err
		return b
	}
	b.m.Inertias[jointID] = b.m.Inertias[jointID].Add(placement.ActInertia(body))
	return b
}

func (b *Builder[T]) Build() (*Model[T], error) {
	if b.err != nil {
		return nil, b.err
	}
	m := b.m
	b.m = nil
	return m, nil
}

func validateJoint[T spatial.Scalar](j joint.Model[T]) error {
	var axis spatial.Vec3[T]
	switch jj := j.(type) {
	case joint.Revolute[T]:
		axis = jj.Axis
	case joint.Prismatic[T]:
		axis = jj.Axis
	default:
		return nil
	}
	if axis.Norm() == 0 {
		return ErrInvalidAxis
	}
	return nil
}

func validateInertia[T spatial.Scalar](y spatial.Inertia[T]) error {
	if y.Mass < 0 || !finite(y.Mass) {
		return fmt.Errorf("%w: mass %v", ErrInvalidInertia, y.Mass)
	}
	for i := 0; i < 3; i++ {
		if !finite(y.Lever[i]) {
			return fmt.Errorf("%w: center of mass %v", ErrInvalidInertia, y.Lever)
		}
		for j := 0; j < 3; j++ {
			if !finite(y.Rot[i][j]) {
				return fmt.Errorf("%w: rotational inertia %v", ErrInvalidInertia, y.Rot)
			}
		}
	}
	return nil
}

func finite[T spatial.Scalar](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

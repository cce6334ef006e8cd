package multibody

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/rbdyn/internal/joint"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// UniverseName is the name of joint 0.
const UniverseName = "universe"

// Model is the static description of a kinematic tree. All slices are indexed
// by joint id; entry 0 describes the universe and its Joints entry is nil.
type Model[T spatial.Scalar] struct {
	NJoints int
	NQ      int
	NV      int

	Names   []string
	Parents []int
	Joints  []joint.Model[T]
	// Placements[i] is the fixed transform from the parent joint frame to the input frame of joint i.
	Placements []spatial.SE3[T]
	// Inertias[i] is the inertia of the body carried by joint i, in the joint frame.
	Inertias []spatial.Inertia[T]
	// Gravity is the spatial acceleration of gravity in the universe frame.
	Gravity spatial.Motion[T]
}

// DefaultGravity is the standard gravity vector along -z.
func DefaultGravity[T spatial.Scalar]() spatial.Vec3[T] {
	return spatial.V3[T](0, 0, -9.81)
}

func (m *Model[T]) JointIndex(name string) (int, bool) {
	for i, n := range m.Names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// NeutralConfiguration returns the reference configuration of the model.
func (m *Model[T]) NeutralConfiguration() []T {
	q := make([]T, m.NQ)
	for i := 1; i < m.NJoints; i++ {
		m.Joints[i].Neutral(q)
	}
	return q
}

// RandomConfiguration returns a random valid configuration drawn from rng.
func (m *Model[T]) RandomConfiguration(rng *rand.Rand) []T {
	q := make([]T, m.NQ)
	for i := 1; i < m.NJoints; i++ {
		m.Joints[i].Random(q, rng)
	}
	return q
}

// TotalMass returns the sum of all body masses.
func (m *Model[T]) TotalMass() T {
	var total T
	for _, y := range m.Inertias {
		total += y.Mass
	}
	return total
}

// ValidateConfiguration checks the length of a configuration vector.
func (m *Model[T]) ValidateConfiguration(q []T) error {
	if len(q) != m.NQ {
		return fmt.Errorf("%w: configuration has %d entries, model needs %d", ErrDimensionMismatch, len(q), m.NQ)
	}
	return nil
}

// ValidateTangent checks the length of a velocity-space vector such as v or a.
func (m *Model[T]) ValidateTangent(name string, x []T) error {
	if len(x) != m.NV {
		return fmt.Errorf("%w: %s has %d entries, model needs %d", ErrDimensionMismatch, name, len(x), m.NV)
	}
	return nil
}

// ValidateInputs checks q against the configuration size and every other
// non-nil vector against the velocity size.
func (m *Model[T]) ValidateInputs(q []T, tangents ...[]T) error {
	if err := m.ValidateConfiguration(q); err != nil {
		return err
	}
	names := [...]string{"v", "a"}
	for k, x := range tangents {
		if x == nil {
			continue
		}
		name := "tangent"
		if k < len(names) {
			name = names[k]
		}
		if err := m.ValidateTangent(name, x); err != nil {
			return err
		}
	}
	return nil
}

// ValidateExternalForces checks that fext holds one force per joint.
func (m *Model[T]) ValidateExternalForces(fext []spatial.Force[T]) error {
	if len(fext) != m.NJoints {
		return fmt.Errorf("%w: got %d, model has %d joints", ErrExternalForces, len(fext), m.NJoints)
	}
	return nil
}

// Check reports whether d was sized for m.
func (m *Model[T]) Check(d *Data[T]) error {
	n := m.NJoints
	perJoint := []int{
		len(d.Joints), len(d.Relative), len(d.World), len(d.Velocity), len(d.WorldVelocity),
		len(d.Bias), len(d.Force), len(d.WorldComposite), len(d.WorldCrossInertia), len(d.SubtreeDof),
	}
	for _, l := range perJoint {
		if l != n {
			return fmt.Errorf("%w: per-joint array of length %d, model has %d joints", ErrInconsistentData, l, n)
		}
	}
	perDof := []int{
		len(d.Jacobian), len(d.JacobianDot), len(d.ForceDerivative), len(d.AncestorByRow),
		len(d.Tau), len(d.NLE), len(d.G),
	}
	for _, l := range perDof {
		if l != m.NV {
			return fmt.Errorf("%w: velocity-space array of length %d, model has nv=%d", ErrInconsistentData, l, m.NV)
		}
	}
	if d.C.Rows != m.NV || d.C.Cols != m.NV || d.M.Rows != m.NV || d.M.Cols != m.NV {
		return fmt.Errorf("%w: output matrices are not %dx%d", ErrInconsistentData, m.NV, m.NV)
	}
	for i := 1; i < n; i++ {
		if len(d.Joints[i].S) != m.Joints[i].NV() {
			return fmt.Errorf("%w: joint %d data has %d subspace columns, want %d",
				ErrInconsistentData, i, len(d.Joints[i].S), m.Joints[i].NV())
		}
	}
	return nil
}

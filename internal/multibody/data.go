package multibody

import (
	"github.com/san-kum/rbdyn/internal/joint"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// NoAncestor marks a velocity row whose joint hangs directly from the universe.
const NoAncestor = -1

// Data is the workspace of the dynamics algorithms. Per-joint slices are
// indexed by joint id, velocity-space slices by velocity coordinate.
type Data[T spatial.Scalar] struct {
	Joints []joint.Data[T]

	// Relative[i] maps joint i's frame into its parent's frame; World[i] into the universe.
	Relative []spatial.SE3[T]
	World    []spatial.SE3[T]

	Velocity      []spatial.Motion[T]
	WorldVelocity []spatial.Motion[T]
	// Bias[i] is the acceleration of body i without the joint-space acceleration
	// contribution of joint i itself. Bias[0] holds minus gravity.
	Bias []spatial.Motion[T]
	// Force[i] is the force transmitted through joint i, in joint i's frame.
	Force []spatial.Force[T]

	WorldComposite    []spatial.Matrix6[T]
	// WorldCrossInertia[i] is (v x*) Y for the composite inertia Y of the
	// subtree of joint i, in the world frame.
	WorldCrossInertia []spatial.Matrix6[T]

	// Jacobian and JacobianDot hold one world-frame column per velocity coordinate.
	Jacobian        []spatial.Motion[T]
	JacobianDot     []spatial.Motion[T]
	// ForceDerivative is column scratch: the derivative of the composite
	// momentum for CoriolisMatrix, the composite momentum itself for MassMatrix.
	ForceDerivative []spatial.Force[T]
	rowsInertia     [6]spatial.Force[T]
	rowsRate        [6]spatial.Force[T]

	// SubtreeDof[i] counts the velocity coordinates of the subtree rooted at joint i.
	SubtreeDof []int
	// AncestorByRow[r] is the nearest velocity row above r in the tree, or NoAncestor.
	AncestorByRow []int

	Tau []T
	NLE []T
	G   []T
	C   Matrix[T]
	M   Matrix[T]
}

func NewData[T spatial.Scalar](m *Model[T]) *Data[T] {
	n, nv := m.NJoints, m.NV
	d := &Data[T]{
		Joints:            make([]joint.Data[T], n),
		Relative:          make([]spatial.SE3[T], n),
		World:             make([]spatial.SE3[T], n),
		Velocity:          make([]spatial.Motion[T], n),
		WorldVelocity:     make([]spatial.Motion[T], n),
		Bias:              make([]spatial.Motion[T], n),
		Force:             make([]spatial.Force[T], n),
		WorldComposite:    make([]spatial.Matrix6[T], n),
		WorldCrossInertia: make([]spatial.Matrix6[T], n),
		Jacobian:          make([]spatial.Motion[T], nv),
		JacobianDot:       make([]spatial.Motion[T], nv),
		ForceDerivative:   make([]spatial.Force[T], nv),
		SubtreeDof:        make([]int, n),
		AncestorByRow:     make([]int, nv),
		Tau:               make([]T, nv),
		NLE:               make([]T, nv),
		G:                 make([]T, nv),
		C:                 NewMatrix[T](nv, nv),
		M:                 NewMatrix[T](nv, nv),
	}
	d.Relative[0] = spatial.IdentitySE3[T]()
	d.World[0] = spatial.IdentitySE3[T]()
	for i := 1; i < n; i++ {
		d.Joints[i] = m.Joints[i].NewData()
		d.Relative[i] = spatial.IdentitySE3[T]()
		d.World[i] = spatial.IdentitySE3[T]()
	}

	for i := n - 1; i > 0; i-- {
		d.SubtreeDof[i] += m.Joints[i].NV()
		if p := m.Parents[i]; p > 0 {
			d.SubtreeDof[p] += d.SubtreeDof[i]
		}
	}

	for i := 1; i < n; i++ {
		jm := m.Joints[i]
		idx := jm.IdxV()
		d.AncestorByRow[idx] = NoAncestor
		if p := m.Parents[i]; p > 0 {
			pj := m.Joints[p]
			d.AncestorByRow[idx] = pj.IdxV() + pj.NV() - 1
		}
		for k := 1; k < jm.NV(); k++ {
			d.AncestorByRow[idx+k] = idx + k - 1
		}
	}
	return d
}

// RowScratch returns n rows of scratch for the Coriolis ancestor walk: one
// row for the composite inertia and one for its rate per joint coordinate.
// No joint has more than six degrees of freedom.
func (d *Data[T]) RowScratch(n int) (inertia, rate []spatial.Force[T]) {
	return d.rowsInertia[:n], d.rowsRate[:n]
}

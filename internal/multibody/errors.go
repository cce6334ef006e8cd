package multibody

import "errors"

var (
	// ErrDimensionMismatch indicates an input vector whose length does not match the model.
	ErrDimensionMismatch = errors.New("multibody: dimension mismatch between input and model")

	// ErrInconsistentData indicates a workspace that was not sized for the model.
	ErrInconsistentData = errors.New("multibody: data is not consistent with model")

	// ErrExternalForces indicates an external force list whose length is not njoints.
	ErrExternalForces = errors.New("multibody: external force list must have one entry per joint")

	// ErrUnknownParent indicates a joint attached to a parent that does not exist.
	ErrUnknownParent = errors.New("multibody: unknown parent joint")

	// ErrNotDepthFirst indicates joints added out of depth-first order.
	ErrNotDepthFirst = errors.New("multibody: joints must be added in depth-first order")

	// ErrDuplicateName indicates two joints sharing a name.
	ErrDuplicateName = errors.New("multibody: duplicate joint name")

	// ErrInvalidInertia indicates a body with negative mass or a non-finite inertia.
	ErrInvalidInertia = errors.New("multibody: invalid body inertia")

	// ErrInvalidAxis indicates a revolute or prismatic joint with a zero axis.
	ErrInvalidAxis = errors.New("multibody: joint axis must be non-zero")
)

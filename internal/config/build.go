package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
	"gonum.org/v1/gonum/num/quat"

	"github.com/san-kum/rbdyn/internal/joint"
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

// Build turns a description into a model. Joints keep their listed order when
// it is already depth-first; otherwise they are renumbered in depth-first
// preorder from the universe.
func Build[T spatial.Scalar](desc *Description) (*multibody.Model[T], error) {
	order, err := Order(desc)
	if err != nil {
		return nil, err
	}

	b := multibody.NewBuilder[T]()
	if desc.Gravity != nil {
		g, err := vec3[T]("gravity", desc.Gravity)
		if err != nil {
			return nil, err
		}
		b.SetGravity(g)
	}

	ids := map[string]int{"": 0, multibody.UniverseName: 0}
	for _, k := range order {
		js := &desc.Joints[k]
		jm, err := jointModel[T](js)
		if err != nil {
			return nil, fmt.Errorf("joint %q: %w", js.Name, err)
		}
		placement, err := parsePlacement[T](js.Placement)
		if err != nil {
			return nil, fmt.Errorf("joint %q: %w", js.Name, err)
		}
		body, err := parseInertia[T](js.Body)
		if err != nil {
			return nil, fmt.Errorf("joint %q: %w", js.Name, err)
		}
		ids[js.Name] = b.AddJoint(ids[js.Parent], js.Name, jm, placement, body)
	}
	return b.Build()
}

// Order returns the indexes of desc.Joints in the order they become model joints.
func Order(desc *Description) ([]int, error) {
	index := make(map[string]int, len(desc.Joints))
	for k, js := range desc.Joints {
		if js.Name == "" || js.Name == multibody.UniverseName {
			return nil, fmt.Errorf("%w: %q is reserved", ErrDuplicateJoint, js.Name)
		}
		if _, dup := index[js.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateJoint, js.Name)
		}
		index[js.Name] = k
	}

	g := core.NewGraph(core.WithDirected(true))
	if err := g.AddVertex(multibody.UniverseName); err != nil {
		return nil, err
	}
	for _, js := range desc.Joints {
		parent := parentName(js.Parent)
		if _, ok := index[parent]; !ok && parent != multibody.UniverseName {
			return nil, fmt.Errorf("%w: %q (joint %q)", ErrUnknownParent, js.Parent, js.Name)
		}
		if _, err := g.AddEdge(parent, js.Name, 0); err != nil {
			return nil, fmt.Errorf("joint %q: %w", js.Name, err)
		}
	}

	preorder := make([]int, 0, len(desc.Joints))
	_, err := dfs.DFS(g, multibody.UniverseName, dfs.WithOnVisit(func(id string) error {
		if id != multibody.UniverseName {
			preorder = append(preorder, index[id])
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}
	if len(preorder) != len(desc.Joints) {
		seen := make(map[int]bool, len(preorder))
		for _, k := range preorder {
			seen[k] = true
		}
		for k, js := range desc.Joints {
			if !seen[k] {
				return nil, fmt.Errorf("%w: %q", ErrUnreachableJoint, js.Name)
			}
		}
	}

	if declared := declaredOrder(desc, index); declared != nil {
		return declared, nil
	}
	return preorder, nil
}

// declaredOrder returns the listed order if every parent is on the branch of
// the previous joint, nil otherwise.
func declaredOrder(desc *Description, index map[string]int) []int {
	path := []string{multibody.UniverseName}
	order := make([]int, 0, len(desc.Joints))
	for _, js := range desc.Joints {
		parent := parentName(js.Parent)
		for len(path) > 0 && path[len(path)-1] != parent {
			path = path[:len(path)-1]
		}
		if len(path) == 0 {
			return nil
		}
		path = append(path, js.Name)
		order = append(order, index[js.Name])
	}
	return order
}

func parentName(p string) string {
	if p == "" {
		return multibody.UniverseName
	}
	return p
}

func jointModel[T spatial.Scalar](js *JointSpec) (joint.Model[T], error) {
	kind, err := joint.ParseKind(js.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJointType, js.Type)
	}
	switch kind {
	case joint.KindRevolute, joint.KindPrismatic:
		axis, err := vec3[T]("axis", js.Axis)
		if err != nil {
			return nil, err
		}
		if axis.Norm() == 0 {
			return nil, multibody.ErrInvalidAxis
		}
		if kind == joint.KindRevolute {
			return joint.NewRevolute(axis), nil
		}
		return joint.NewPrismatic(axis), nil
	case joint.KindSpherical:
		return joint.NewSpherical[T](), nil
	case joint.KindFreeFlyer:
		return joint.NewFreeFlyer[T](), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownJointType, js.Type)
}

func parsePlacement[T spatial.Scalar](p Placement) (spatial.SE3[T], error) {
	out := spatial.IdentitySE3[T]()
	if p.Translation != nil {
		t, err := vec3[T]("translation", p.Translation)
		if err != nil {
			return out, err
		}
		out.P = t
	}
	q, err := orientation(p)
	if err != nil {
		return out, err
	}
	out.R = spatial.Quaternion(T(q.Real), T(q.Imag), T(q.Jmag), T(q.Kmag))
	return out, nil
}

// orientation returns the unit quaternion of a placement.
func orientation(p Placement) (quat.Number, error) {
	switch {
	case p.Quaternion != nil:
		if len(p.Quaternion) != 4 {
			return quat.Number{}, fmt.Errorf("%w: quaternion has %d entries, want 4", ErrBadVector, len(p.Quaternion))
		}
		q := quat.Number{Real: p.Quaternion[0], Imag: p.Quaternion[1], Jmag: p.Quaternion[2], Kmag: p.Quaternion[3]}
		n := quat.Abs(q)
		if n == 0 {
			return quat.Number{}, errors.New("config: zero quaternion")
		}
		return quat.Scale(1/n, q), nil
	case p.RPY != nil:
		if len(p.RPY) != 3 {
			return quat.Number{}, fmt.Errorf("%w: rpy has %d entries, want 3", ErrBadVector, len(p.RPY))
		}
		return RPY(p.RPY[0], p.RPY[1], p.RPY[2]), nil
	}
	return quat.Number{Real: 1}, nil
}

// RPY returns the rotation Rz(yaw) Ry(pitch) Rx(roll) as a unit quaternion.
func RPY(roll, pitch, yaw float64) quat.Number {
	qx := quat.Number{Real: math.Cos(roll / 2), Imag: math.Sin(roll / 2)}
	qy := quat.Number{Real: math.Cos(pitch / 2), Jmag: math.Sin(pitch / 2)}
	qz := quat.Number{Real: math.Cos(yaw / 2), Kmag: math.Sin(yaw / 2)}
	return quat.Mul(qz, quat.Mul(qy, qx))
}

func parseInertia[T spatial.Scalar](b Body) (spatial.Inertia[T], error) {
	var com spatial.Vec3[T]
	if b.COM != nil {
		c, err := vec3[T]("com", b.COM)
		if err != nil {
			return spatial.Inertia[T]{}, err
		}
		com = c
	}
	var rot spatial.Mat3[T]
	switch len(b.Inertia) {
	case 0:
	case 3:
		rot = spatial.Diag3(T(b.Inertia[0]), T(b.Inertia[1]), T(b.Inertia[2]))
	case 6:
		xx, yy, zz := T(b.Inertia[0]), T(b.Inertia[1]), T(b.Inertia[2])
		xy, xz, yz := T(b.Inertia[3]), T(b.Inertia[4]), T(b.Inertia[5])
		rot = spatial.Mat3[T]{{xx, xy, xz}, {xy, yy, yz}, {xz, yz, zz}}
	default:
		return spatial.Inertia[T]{}, fmt.Errorf("%w: inertia has %d entries, want 3 or 6", ErrBadVector, len(b.Inertia))
	}
	return spatial.NewInertia(T(b.Mass), com, rot), nil
}

func vec3[T spatial.Scalar](name string, x []float64) (spatial.Vec3[T], error) {
	if len(x) != 3 {
		return spatial.Vec3[T]{}, fmt.Errorf("%w: %s has %d entries, want 3", ErrBadVector, name, len(x))
	}
	return spatial.V3(T(x[0]), T(x[1]), T(x[2])), nil
}

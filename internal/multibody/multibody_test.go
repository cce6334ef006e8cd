package multibody

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/rbdyn/internal/joint"
	"github.com/san-kum/rbdyn/internal/spatial"
)

var (
	xAxis = spatial.V3[float64](1, 0, 0)
	zAxis = spatial.V3[float64](0, 0, 1)
)

func unitBody() spatial.Inertia[float64] {
	return spatial.NewInertia(1, spatial.V3[float64](0, 0, -0.5), spatial.Diag3[float64](0.1, 0.1, 0.01))
}

// branchedModel: root(revolute) -> ball(spherical) -> tip(revolute), root -> slide(prismatic).
func branchedModel(t *testing.T) *Model[float64] {
	t.Helper()
	b := NewBuilder[float64]()
	root := b.AddJoint(0, "root", joint.NewRevolute(zAxis), identity(), unitBody())
	ball := b.AddJoint(root, "ball", joint.NewSpherical[float64](), spatial.Translation(spatial.V3[float64](0, 0, -1)), unitBody())
	b.AddJoint(ball, "tip", joint.NewRevolute(xAxis), spatial.Translation(spatial.V3[float64](0, 0, -1)), unitBody())
	b.AddJoint(root, "slide", joint.NewPrismatic(xAxis), identity(), unitBody())
	m, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return m
}

func identity() spatial.SE3[float64] { return spatial.IdentitySE3[float64]() }

func TestBuilderIndexes(t *testing.T) {
	m := branchedModel(t)

	if m.NJoints != 5 {
		t.Errorf("expected 5 joints, got %d", m.NJoints)
	}
	if m.NQ != 7 || m.NV != 6 {
		t.Errorf("expected nq=7 nv=6, got nq=%d nv=%d", m.NQ, m.NV)
	}

	tests := []struct {
		name       string
		parent     int
		idxQ, idxV int
	}{
		{"root", 0, 0, 0},
		{"ball", 1, 1, 1},
		{"tip", 2, 5, 4},
		{"slide", 1, 6, 5},
	}
	for _, tt := range tests {
		i, ok := m.JointIndex(tt.name)
		if !ok {
			t.Fatalf("joint %s not found", tt.name)
		}
		if m.Parents[i] != tt.parent {
			t.Errorf("%s: expected parent %d, got %d", tt.name, tt.parent, m.Parents[i])
		}
		if m.Joints[i].IdxQ() != tt.idxQ || m.Joints[i].IdxV() != tt.idxV {
			t.Errorf("%s: expected idx_q=%d idx_v=%d, got %d %d",
				tt.name, tt.idxQ, tt.idxV, m.Joints[i].IdxQ(), m.Joints[i].IdxV())
		}
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder[float64])
		want  error
	}{
		{"unknown parent", func(b *Builder[float64]) {
			b.AddJoint(3, "a", joint.NewRevolute(zAxis), identity(), unitBody())
		}, ErrUnknownParent},
		{"duplicate name", func(b *Builder[float64]) {
			b.AddJoint(0, "a", joint.NewRevolute(zAxis), identity(), unitBody())
			b.AddJoint(1, "a", joint.NewRevolute(zAxis), identity(), unitBody())
		}, ErrDuplicateName},
		{"not depth first", func(b *Builder[float64]) {
			a := b.AddJoint(0, "a", joint.NewRevolute(zAxis), identity(), unitBody())
			b.AddJoint(0, "b", joint.NewRevolute(zAxis), identity(), unitBody())
			b.AddJoint(a, "c", joint.NewRevolute(zAxis), identity(), unitBody())
		}, ErrNotDepthFirst},
		{"zero axis", func(b *Builder[float64]) {
			b.AddJoint(0, "a", joint.NewPrismatic(spatial.Vec3[float64]{}), identity(), unitBody())
		}, ErrInvalidAxis},
		{"nan mass", func(b *Builder[float64]) {
			b.AddJoint(0, "a", joint.NewRevolute(zAxis), identity(), spatial.PointMass(math.NaN(), zAxis))
		}, ErrInvalidInertia},
		{"negative appended mass", func(b *Builder[float64]) {
			a := b.AddJoint(0, "a", joint.NewRevolute(zAxis), identity(), unitBody())
			b.AppendBody(a, identity(), spatial.PointMass(-1, zAxis))
		}, ErrInvalidInertia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder[float64]()
			tt.build(b)
			m, err := b.Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if m != nil {
				t.Error("expected nil model on error")
			}
		})
	}
}

func TestBuilderErrorIsSticky(t *testing.T) {
	b := NewBuilder[float64]()
	if id := b.AddJoint(7, "a", joint.NewRevolute(zAxis), identity(), unitBody()); id != -1 {
		t.Errorf("expected -1, got %d", id)
	}
	if id := b.AddJoint(0, "b", joint.NewRevolute(zAxis), identity(), unitBody()); id != -1 {
		t.Errorf("expected -1 after error, got %d", id)
	}
	if _, err := b.Build(); !errors.Is(err, ErrUnknownParent) {
		t.Errorf("expected first error to be kept, got %v", err)
	}
}

func TestAppendBody(t *testing.T) {
	b := NewBuilder[float64]()
	a := b.AddJoint(0, "a", joint.NewRevolute(zAxis), identity(), spatial.PointMass(1, spatial.V3[float64](1, 0, 0)))
	b.AppendBody(a, spatial.Translation(spatial.V3[float64](-1, 0, 0)), spatial.PointMass(1, spatial.Vec3[float64]{}))
	m, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	y := m.Inertias[a]
	if math.Abs(y.Mass-2) > 1e-12 {
		t.Errorf("expected mass 2, got %f", y.Mass)
	}
	if !y.Lever.IsApprox(spatial.Vec3[float64]{}, 1e-12) {
		t.Errorf("expected center of mass at origin, got %v", y.Lever)
	}
	if math.Abs(y.Rot[2][2]-2) > 1e-12 {
		t.Errorf("expected izz 2, got %f", y.Rot[2][2])
	}
}

func TestNewDataSparsity(t *testing.T) {
	m := branchedModel(t)
	d := NewData(m)

	wantSubtree := []int{0, 6, 4, 1, 1}
	for i, want := range wantSubtree {
		if d.SubtreeDof[i] != want {
			t.Errorf("joint %d: expected subtree dof %d, got %d", i, want, d.SubtreeDof[i])
		}
	}

	wantAncestor := []int{NoAncestor, 0, 1, 2, 3, 0}
	for r, want := range wantAncestor {
		if d.AncestorByRow[r] != want {
			t.Errorf("row %d: expected ancestor %d, got %d", r, want, d.AncestorByRow[r])
		}
	}

	if err := m.Check(d); err != nil {
		t.Errorf("expected consistent data, got %v", err)
	}
}

func TestCheckRejectsForeignData(t *testing.T) {
	m := branchedModel(t)

	b := NewBuilder[float64]()
	b.AddJoint(0, "only", joint.NewRevolute(zAxis), identity(), unitBody())
	other, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if err := m.Check(NewData(other)); !errors.Is(err, ErrInconsistentData) {
		t.Errorf("expected ErrInconsistentData, got %v", err)
	}
}

func TestValidateInputs(t *testing.T) {
	m := branchedModel(t)
	q := m.NeutralConfiguration()
	v := make([]float64, m.NV)

	if err := m.ValidateInputs(q, v, v); err != nil {
		t.Errorf("expected valid inputs, got %v", err)
	}
	if err := m.ValidateInputs(q, v, nil); err != nil {
		t.Errorf("expected nil acceleration to be skipped, got %v", err)
	}
	if err := m.ValidateInputs(v, v); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for short q, got %v", err)
	}
	if err := m.ValidateInputs(q, q); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for long v, got %v", err)
	}
	if err := m.ValidateExternalForces(make([]spatial.Force[float64], m.NJoints-1)); !errors.Is(err, ErrExternalForces) {
		t.Errorf("expected ErrExternalForces, got %v", err)
	}
}

func TestConfigurations(t *testing.T) {
	m := branchedModel(t)

	q := m.NeutralConfiguration()
	want := []float64{0, 0, 0, 0, 1, 0, 0}
	for k := range want {
		if q[k] != want[k] {
			t.Errorf("neutral q[%d]: expected %f, got %f", k, want[k], q[k])
		}
	}

	rng := rand.New(rand.NewSource(3))
	for n := 0; n < 20; n++ {
		q := m.RandomConfiguration(rng)
		quat := q[1:5]
		norm := math.Sqrt(quat[0]*quat[0] + quat[1]*quat[1] + quat[2]*quat[2] + quat[3]*quat[3])
		if math.Abs(norm-1) > 1e-12 {
			t.Errorf("expected unit quaternion, got norm %f", norm)
		}
		if math.Abs(q[0]) > math.Pi {
			t.Errorf("expected revolute angle in [-pi, pi], got %f", q[0])
		}
	}
}

func TestMatrix(t *testing.T) {
	a := NewMatrix[float64](2, 3)
	a.Set(0, 0, 1)
	a.Set(0, 2, 2)
	a.Set(1, 1, 3)
	a.AddAt(1, 1, 1)

	out := make([]float64, 2)
	a.MulVec([]float64{1, 2, 3}, out)
	if out[0] != 7 || out[1] != 8 {
		t.Errorf("expected [7 8], got %v", out)
	}
	if got := a.Row(1); len(got) != 3 || got[1] != 4 {
		t.Errorf("expected row [0 4 0], got %v", got)
	}

	a.Zero()
	for _, x := range a.Data {
		if x != 0 {
			t.Fatalf("expected zero matrix, got %v", a.Data)
		}
	}
}

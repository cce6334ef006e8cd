package config

import (
	"fmt"
	"sort"
)

// rod returns a slender link of length l hanging along -z from its joint.
func rod(mass, l float64) Body {
	i := mass * l * l / 12
	return Body{Mass: mass, COM: []float64{0, 0, -l / 2}, Inertia: []float64{i, i, mass * 1e-4}}
}

func box(mass, x, y, z float64) Body {
	return Body{Mass: mass, Inertia: []float64{
		mass * (y*y + z*z) / 12, mass * (x*x + z*z) / 12, mass * (x*x + y*y) / 12,
	}}
}

func below(l float64) Placement { return Placement{Translation: []float64{0, 0, -l}} }

var (
	axisX = []float64{1, 0, 0}
	axisY = []float64{0, 1, 0}
	axisZ = []float64{0, 0, 1}
)

var Presets = map[string]func() *Description{
	"pendulum": func() *Description {
		return &Description{Name: "pendulum", Joints: []JointSpec{
			{Name: "hinge", Type: "revolute", Axis: axisY, Body: Body{Mass: 1, COM: []float64{0, 0, -1}}},
		}}
	},
	"double_pendulum": func() *Description {
		return &Description{Name: "double_pendulum", Joints: []JointSpec{
			{Name: "shoulder", Type: "revolute", Axis: axisY, Body: rod(1, 1)},
			{Name: "elbow", Parent: "shoulder", Type: "revolute", Axis: axisY, Placement: below(1), Body: rod(1, 1)},
		}}
	},
	"planar5": func() *Description {
		d := &Description{Name: "planar5"}
		parent := ""
		for k := 1; k <= 5; k++ {
			js := JointSpec{Name: fmt.Sprintf("j%d", k), Parent: parent, Type: "revolute", Axis: axisY, Body: rod(1.0/float64(k), 0.5)}
			if parent != "" {
				js.Placement = below(0.5)
			}
			d.Joints = append(d.Joints, js)
			parent = js.Name
		}
		return d
	},
	"arm6": func() *Description {
		return &Description{Name: "arm6", Joints: []JointSpec{
			{Name: "base_yaw", Type: "revolute", Axis: axisZ, Body: box(4, 0.2, 0.2, 0.3)},
			{Name: "shoulder", Parent: "base_yaw", Type: "revolute", Axis: axisY,
				Placement: Placement{Translation: []float64{0, 0, 0.3}}, Body: Body{Mass: 3, COM: []float64{0.2, 0, 0}, Inertia: []float64{0.01, 0.05, 0.05}}},
			{Name: "elbow", Parent: "shoulder", Type: "revolute", Axis: axisY,
				Placement: Placement{Translation: []float64{0.4, 0, 0}}, Body: Body{Mass: 2, COM: []float64{0.15, 0, 0}, Inertia: []float64{0.005, 0.02, 0.02}}},
			{Name: "wrist_roll", Parent: "elbow", Type: "revolute", Axis: axisX,
				Placement: Placement{Translation: []float64{0.3, 0, 0}}, Body: box(0.8, 0.08, 0.08, 0.08)},
			{Name: "wrist_pitch", Parent: "wrist_roll", Type: "revolute", Axis: axisY,
				Placement: Placement{Translation: []float64{0.05, 0, 0}, RPY: []float64{0.1, 0, 0}}, Body: box(0.5, 0.06, 0.06, 0.06)},
			{Name: "flange", Parent: "wrist_pitch", Type: "revolute", Axis: axisX,
				Placement: Placement{Translation: []float64{0.05, 0, 0}}, Body: Body{Mass: 0.3, COM: []float64{0.03, 0.01, 0}, Inertia: []float64{1e-4, 2e-4, 2e-4, 1e-5, 0, 0}}},
		}}
	},
	"tree": func() *Description {
		return &Description{Name: "tree", Joints: []JointSpec{
			{Name: "trunk", Type: "revolute", Axis: axisZ, Body: box(2, 0.3, 0.3, 0.3)},
			{Name: "left_hip", Parent: "trunk", Type: "revolute", Axis: axisY,
				Placement: Placement{Translation: []float64{0, 0.2, -0.2}}, Body: rod(1, 0.6)},
			{Name: "left_knee", Parent: "left_hip", Type: "revolute", Axis: axisX, Placement: below(0.6), Body: rod(0.7, 0.5)},
			{Name: "right_hip", Parent: "trunk", Type: "revolute", Axis: axisY,
				Placement: Placement{Translation: []float64{0, -0.2, -0.2}}, Body: rod(1, 0.6)},
			{Name: "right_slide", Parent: "right_hip", Type: "prismatic", Axis: []float64{0, 0, -1}, Placement: below(0.6), Body: rod(0.7, 0.5)},
			{Name: "head", Parent: "trunk", Type: "spherical",
				Placement: Placement{Translation: []float64{0, 0, 0.25}, Quaternion: []float64{1, 0, 0, 0.2}}, Body: Body{Mass: 0.5, COM: []float64{0, 0, 0.1}, Inertia: []float64{0.002, 0.002, 0.002}}},
		}}
	},
	"ball": func() *Description {
		return &Description{Name: "ball", Joints: []JointSpec{
			{Name: "socket", Type: "spherical", Body: Body{Mass: 1.5, COM: []float64{0.1, 0, -0.5}, Inertia: []float64{0.03, 0.03, 0.01}}},
			{Name: "hinge", Parent: "socket", Type: "revolute", Axis: axisX, Placement: below(1), Body: rod(0.5, 0.8)},
		}}
	},
	"floating": func() *Description {
		return &Description{Name: "floating", Joints: []JointSpec{
			{Name: "base", Type: "freeflyer", Body: box(5, 0.4, 0.3, 0.2)},
			{Name: "left_leg", Parent: "base", Type: "revolute", Axis: axisY,
				Placement: Placement{Translation: []float64{0.15, 0.1, -0.1}}, Body: rod(0.8, 0.4)},
			{Name: "left_foot", Parent: "left_leg", Type: "revolute", Axis: axisY, Placement: below(0.4), Body: rod(0.3, 0.2)},
			{Name: "right_leg", Parent: "base", Type: "revolute", Axis: axisY,
				Placement: Placement{Translation: []float64{0.15, -0.1, -0.1}}, Body: rod(0.8, 0.4)},
		}}
	},
}

// GetPreset returns a fresh copy of the named built-in robot.
func GetPreset(name string) (*Description, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

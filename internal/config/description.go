package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Description is the file form of a robot: a list of joints, each naming its
// parent. Joints may be listed in any order that lets every parent be found.
type Description struct {
	Name    string      `yaml:"name" toml:"name"`
	Gravity []float64   `yaml:"gravity,omitempty" toml:"gravity,omitempty"`
	Joints  []JointSpec `yaml:"joints" toml:"joints"`
}

type JointSpec struct {
	Name string `yaml:"name" toml:"name"`
	// Parent is the name of the supporting joint; empty means the universe.
	Parent    string    `yaml:"parent,omitempty" toml:"parent,omitempty"`
	Type      string    `yaml:"type" toml:"type"`
	Axis      []float64 `yaml:"axis,omitempty" toml:"axis,omitempty"`
	Placement Placement `yaml:"placement,omitempty" toml:"placement,omitempty"`
	Body      Body      `yaml:"body" toml:"body"`
}

// Placement locates a joint in its parent's frame. At most one of RPY and
// Quaternion should be set; Quaternion wins.
type Placement struct {
	Translation []float64 `yaml:"translation,omitempty" toml:"translation,omitempty"`
	// RPY holds roll, pitch and yaw in radians.
	RPY []float64 `yaml:"rpy,omitempty" toml:"rpy,omitempty"`
	// Quaternion holds w, x, y, z; it is normalized on load.
	Quaternion []float64 `yaml:"quaternion,omitempty" toml:"quaternion,omitempty"`
}

type Body struct {
	Mass float64   `yaml:"mass" toml:"mass"`
	COM  []float64 `yaml:"com,omitempty" toml:"com,omitempty"`
	// Inertia is ixx, iyy, izz, ixy, ixz, iyz about the center of mass.
	Inertia []float64 `yaml:"inertia,omitempty" toml:"inertia,omitempty"`
}

// LoadDescription reads a description from a .yaml, .yml or .toml file.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	desc := &Description{}
	if err := unmarshal(path, data, desc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc, nil
}

func SaveDescription(path string, desc *Description) error {
	data, err := marshal(path, desc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns the preset called name, or loads name as a file when it
// has a known description extension.
func Resolve(name string) (*Description, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".toml":
		return LoadDescription(name)
	}
	return GetPreset(name)
}

func unmarshal(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	case ".toml":
		return toml.Unmarshal(data, v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

func marshal(path string, v any) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(v)
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultModel   = "double_pendulum"
	DefaultSamples = 1000
	DefaultWorkers = 4
	DefaultSeed    = 1
	DefaultTol     = 1e-8
)

// RunConfig describes one evaluation run. Vectors left empty fall back to the
// model's neutral configuration and zero velocity and acceleration.
type RunConfig struct {
	Model   string    `yaml:"model" toml:"model"`
	Seed    int64     `yaml:"seed" toml:"seed"`
	Samples int       `yaml:"samples" toml:"samples"`
	Workers int       `yaml:"workers" toml:"workers"`
	Tol     float64   `yaml:"tol" toml:"tol"`
	Gravity []float64 `yaml:"gravity,omitempty" toml:"gravity,omitempty"`
	Q       []float64 `yaml:"q,omitempty" toml:"q,omitempty"`
	V       []float64 `yaml:"v,omitempty" toml:"v,omitempty"`
	A       []float64 `yaml:"a,omitempty" toml:"a,omitempty"`
}

func DefaultConfig() *RunConfig {
	return &RunConfig{
		Model:   DefaultModel,
		Seed:    DefaultSeed,
		Samples: DefaultSamples,
		Workers: DefaultWorkers,
		Tol:     DefaultTol,
	}
}

// Load reads a run configuration from YAML or TOML, on top of the defaults.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := unmarshal(path, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *RunConfig) error {
	data, err := marshal(path, cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Description resolves the configured model, applying the gravity override.
func (c *RunConfig) Description() (*Description, error) {
	desc, err := Resolve(c.Model)
	if err != nil {
		return nil, err
	}
	if c.Gravity != nil {
		desc.Gravity = c.Gravity
	}
	return desc, nil
}

// ModelName is the short name of the configured model, without directory or extension.
func (c *RunConfig) ModelName() string {
	base := filepath.Base(c.Model)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

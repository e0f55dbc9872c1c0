// Package config loads and validates run configuration from YAML files
// and named presets.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/armctl/internal/joint"
	"github.com/san-kum/armctl/internal/trajectory"
)

const (
	DefaultJoints   = 3
	DefaultDt       = 0.001
	DefaultDuration = 5.0
	DefaultKp       = 1.5
	DefaultKd       = 0.01
)

type Config struct {
	Joints     int           `yaml:"joints"`
	Dt         float64       `yaml:"dt"`
	Duration   float64       `yaml:"duration"`
	Paced      bool          `yaml:"paced"`
	Gains      GainsConfig   `yaml:"gains"`
	Initial    []float64     `yaml:"initial"`
	Trajectory []JointRef    `yaml:"trajectory"`
	Backend    BackendConfig `yaml:"backend"`
}

// GainsConfig accepts either per-joint lists or scalar kp/kd applied to
// every joint. Lists win when both are present.
type GainsConfig struct {
	P  []float64 `yaml:"p"`
	D  []float64 `yaml:"d"`
	Kp float64   `yaml:"kp"`
	Kd float64   `yaml:"kd"`
}

// JointRef defines one joint's reference: "hold" keeps it at target,
// "sine" follows center + amplitude*sin(2*pi*frequency*t + phase).
type JointRef struct {
	Type      string  `yaml:"type"`
	Target    float64 `yaml:"target"`
	Center    float64 `yaml:"center"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"`
}

type BackendConfig struct {
	Integrator string  `yaml:"integrator"`
	Mass       float64 `yaml:"mass"`
	Length     float64 `yaml:"length"`
	Damping    float64 `yaml:"damping"`
	Gravity    float64 `yaml:"gravity"`
}

func DefaultConfig() *Config {
	return &Config{
		Joints:   DefaultJoints,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Gains: GainsConfig{
			Kp: DefaultKp,
			Kd: DefaultKd,
		},
		Backend: BackendConfig{
			Integrator: "rk4",
			Mass:       1.0,
			Length:     1.0,
			Damping:    0.1,
			Gravity:    9.81,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GainSet expands the configured gains to one value per joint.
func (c *Config) GainSet() joint.Gains {
	g := joint.Gains{P: joint.Zero(c.Joints), D: joint.Zero(c.Joints)}
	for j := 0; j < c.Joints; j++ {
		if j < len(c.Gains.P) {
			g.P[j] = c.Gains.P[j]
		} else {
			g.P[j] = c.Gains.Kp
		}
		if j < len(c.Gains.D) {
			g.D[j] = c.Gains.D[j]
		} else {
			g.D[j] = c.Gains.Kd
		}
	}
	return g
}

// InitialPosition returns the configured reset position, zero-padded to
// the joint count.
func (c *Config) InitialPosition() joint.Vector {
	v := joint.Zero(c.Joints)
	for j := 0; j < c.Joints && j < len(c.Initial); j++ {
		v[j] = c.Initial[j]
	}
	return v
}

// BuildTrajectory assembles the per-joint reference. Joints without an
// entry hold their initial position.
func (c *Config) BuildTrajectory() (trajectory.Trajectory, error) {
	initial := c.InitialPosition()
	evals := make([]trajectory.Evaluator, c.Joints)
	for j := 0; j < c.Joints; j++ {
		if j >= len(c.Trajectory) {
			evals[j] = trajectory.Hold{Target: initial[j]}
			continue
		}
		ref := c.Trajectory[j]
		switch ref.Type {
		case "", "hold":
			evals[j] = trajectory.Hold{Target: ref.Target}
		case "sine":
			evals[j] = trajectory.Sine{
				Center:    ref.Center,
				Amplitude: ref.Amplitude,
				Omega:     2 * math.Pi * ref.Frequency,
				Phase:     ref.Phase,
			}
		default:
			return nil, fmt.Errorf("joint %d: unknown trajectory type %q", j, ref.Type)
		}
	}
	return trajectory.NewPerJoint(evals...), nil
}

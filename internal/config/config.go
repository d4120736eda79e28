package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravlab/internal/body"
	"github.com/san-kum/gravlab/internal/engine"
	"github.com/san-kum/gravlab/internal/preset"
	"github.com/san-kum/gravlab/internal/vec"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 30.0
	DefaultPreset   = "binary"
)

// Config describes one simulation run. A scenario either names a
// preset or lists its bodies explicitly; an explicit body list wins.
type Config struct {
	Mode      string       `yaml:"mode"` // "interactive" or "cluster"
	Preset    string       `yaml:"preset"`
	Dt        float64      `yaml:"dt"`
	Duration  float64      `yaml:"duration"`
	Seed      int64        `yaml:"seed"`
	Softening float64      `yaml:"softening"` // 0 means mode default
	Substeps  int          `yaml:"substeps"`  // 0 means mode default
	Capacity  int          `yaml:"capacity"`  // 0 means default cap
	Bodies    []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Kind     string     `yaml:"kind"`
	Fixed    bool       `yaml:"fixed"`
}

func Default() *Config {
	return &Config{
		Mode:     "interactive",
		Preset:   DefaultPreset,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Mode != "interactive" && c.Mode != "cluster" {
		return fmt.Errorf("unknown mode: %s", c.Mode)
	}
	if len(c.Bodies) == 0 && c.Preset == "" {
		return fmt.Errorf("scenario needs a preset or a body list")
	}
	return nil
}

// Build constructs the simulation the config describes.
func (c *Config) Build() (*engine.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if len(c.Bodies) == 0 {
		builder, err := preset.Get(c.Preset)
		if err != nil {
			return nil, err
		}
		return builder(c.Seed), nil
	}

	var opts []engine.Option
	if c.Softening > 0 {
		opts = append(opts, engine.WithSoftening(c.Softening))
	}
	if c.Substeps > 0 {
		opts = append(opts, engine.WithSubsteps(c.Substeps))
	}
	if c.Capacity > 0 {
		opts = append(opts, engine.WithCapacity(c.Capacity))
	}

	var sim *engine.Simulation
	if c.Mode == "cluster" {
		sim = engine.NewCluster(opts...)
	} else {
		sim = engine.NewInteractive(opts...)
	}

	for i, bc := range c.Bodies {
		spec := body.Spec{
			Mass:     bc.Mass,
			Position: vec.Vec3{X: bc.Position[0], Y: bc.Position[1], Z: bc.Position[2]},
			Velocity: vec.Vec3{X: bc.Velocity[0], Y: bc.Velocity[1], Z: bc.Velocity[2]},
			Kind:     body.ParseKind(bc.Kind),
			Fixed:    bc.Fixed,
		}
		if _, err := sim.Add(spec); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	return sim, nil
}

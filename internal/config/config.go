package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/physics"
	"github.com/san-kum/attractor/internal/trail"
)

const (
	DefaultDt            = 0.01
	DefaultSubSteps      = 5
	DefaultScale         = 0.3
	DefaultRotationSpeed = 0.1
	DefaultFPS           = 60
	DefaultIntegrator    = "euler"
	DefaultTheme         = "cyberpunk"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Params        physics.Params  `yaml:"params"`
	InitState     InitStateConfig `yaml:"init_state"`
	Integrator    string          `yaml:"integrator"`
	Dt            float64         `yaml:"dt"`
	SubSteps      int             `yaml:"sub_steps"`
	Capacity      int             `yaml:"capacity"`
	Scale         float64         `yaml:"scale"`
	RotationSpeed float64         `yaml:"rotation_speed"`
	ValidateState bool            `yaml:"validate_state"`
	Color         trail.ColorMap  `yaml:"color"`
	FPS           int             `yaml:"fps"`
	Theme         string          `yaml:"theme"`
}

type InitStateConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:        physics.CanonicalParams(),
		InitState:     InitStateConfig{X: 0.1},
		Integrator:    DefaultIntegrator,
		Dt:            DefaultDt,
		SubSteps:      DefaultSubSteps,
		Capacity:      trail.DefaultCapacity,
		Scale:         DefaultScale,
		RotationSpeed: DefaultRotationSpeed,
		ValidateState: true,
		Color:         trail.DefaultColorMap,
		FPS:           DefaultFPS,
		Theme:         DefaultTheme,
	}
}

// Load reads a YAML file over the defaults; keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	return LoadOnto(DefaultConfig(), path)
}

// LoadOnto is Load with base in place of the defaults. base is not modified.
func LoadOnto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) GetInitState() []float64 {
	return []float64{c.InitState.X, c.InitState.Y, c.InitState.Z}
}

// Validate rejects values the simulation cannot run with. Divergent but
// finite parameter choices are left to the caller.
func (c *Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %v: %w", c.Dt, ErrInvalid)
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("sub_steps must be at least 1, got %d: %w", c.SubSteps, ErrInvalid)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d: %w", c.Capacity, ErrInvalid)
	}
	if c.FPS < 1 {
		return fmt.Errorf("fps must be at least 1, got %d: %w", c.FPS, ErrInvalid)
	}
	for name, v := range map[string]float64{
		"params.sigma":   c.Params.Sigma,
		"params.rho":     c.Params.Rho,
		"params.beta":    c.Params.Beta,
		"scale":          c.Scale,
		"rotation_speed": c.RotationSpeed,
		"init_state.x":   c.InitState.X,
		"init_state.y":   c.InitState.Y,
		"init_state.z":   c.InitState.Z,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v: %w", name, v, ErrInvalid)
		}
	}
	if _, err := integrators.ByName(c.Integrator); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	return nil
}

package config

import "sort"

// Presets are named regimes of the Lorenz system, each a full config.
var Presets = map[string]*Config{
	"canonical": DefaultConfig(),
	// Transient chaos: wanders both wings, then settles onto C±.
	"transient": with(func(c *Config) { c.Params.Rho = 21 }),
	// Below the Hopf point every orbit spirals into a fixed point.
	"stable": with(func(c *Config) {
		c.Params.Rho = 14
		c.InitState = InitStateConfig{X: 1, Y: 1, Z: 1}
	}),
	// Large rho yields a stable periodic orbit; needs a finer step.
	"periodic": with(func(c *Config) {
		c.Params.Rho = 99.96
		c.Dt = 0.002
		c.SubSteps = 25
		c.Scale = 0.15
		c.Color.MinZ, c.Color.MaxZ = 40, 160
	}),
	"precise": with(func(c *Config) {
		c.Integrator = "rk4"
		c.Dt = 0.005
		c.SubSteps = 10
	}),
}

func with(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

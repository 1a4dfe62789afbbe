package config

import (
	"sort"
	"time"

	"github.com/san-kum/voxdiff/internal/grid"
)

// Presets adjust the defaults; each entry is applied to DefaultConfig.
var Presets = map[string]func(*Config){
	"reference": func(c *Config) {},
	"small": func(c *Config) {
		c.Grid = grid.Dims{X: 9, Y: 9, Z: 9}
		c.Seeds = 8
	},
	"dense": func(c *Config) {
		c.Seeds = 150
	},
	"large": func(c *Config) {
		c.Grid = grid.Dims{X: 31, Y: 31, Z: 31}
		c.Seeds = 200
		c.Loop.StepInterval = 5
		c.Render.PointSize = 5
	},
	"fast": func(c *Config) {
		c.Loop.StepInterval = 1
		c.Loop.FrameDelay = 0
		c.Loop.MaxFrames = 1000
	},
	"slow": func(c *Config) {
		c.Loop.FrameDelay = 33 * time.Millisecond
		c.Rule.XfrRate = 0.05
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/engine"
	"github.com/san-kum/voxdiff/internal/grid"
)

const (
	DefaultSize         = 15
	DefaultSeeds        = 20
	DefaultSeed         = 1134
	DefaultMaxFrames    = 10000
	DefaultStepInterval = 10
	DefaultFrameDelay   = 10 * time.Millisecond
	DefaultPointSize    = 10.0
	DefaultQuitKey      = "q"
	DefaultWidth        = 1280
	DefaultHeight       = 720
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Grid   grid.Dims      `yaml:"grid"`
	Seeds  int            `yaml:"seeds"`
	Seed   int64          `yaml:"seed"`
	Rule   diffusion.Rule `yaml:"rule"`
	Loop   LoopConfig     `yaml:"loop"`
	Render RenderConfig   `yaml:"render"`
}

type LoopConfig struct {
	MaxFrames    int           `yaml:"max_frames"`
	StepInterval int           `yaml:"step_interval"`
	FrameDelay   time.Duration `yaml:"frame_delay"`
}

type RenderConfig struct {
	Title      string     `yaml:"title"`
	Background [3]float64 `yaml:"background"`
	PointSize  float64    `yaml:"point_size"`
	QuitKey    string     `yaml:"quit_key"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Theme      string     `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid:  grid.Dims{X: DefaultSize, Y: DefaultSize, Z: DefaultSize},
		Seeds: DefaultSeeds,
		Seed:  DefaultSeed,
		Rule:  diffusion.DefaultRule(),
		Loop: LoopConfig{
			MaxFrames:    DefaultMaxFrames,
			StepInterval: DefaultStepInterval,
			FrameDelay:   DefaultFrameDelay,
		},
		Render: RenderConfig{
			Title:     "voxdiff",
			PointSize: DefaultPointSize,
			QuitKey:   DefaultQuitKey,
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Theme:     "minimal",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads a YAML file over base, which is modified in place.
// Keys absent from the file keep their base values.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Seeds < 0 {
		return fmt.Errorf("%w: seeds must be >= 0, got %d", ErrInvalid, c.Seeds)
	}
	if err := c.Rule.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Loop.MaxFrames <= 0 {
		return fmt.Errorf("%w: max_frames must be positive, got %d", ErrInvalid, c.Loop.MaxFrames)
	}
	if c.Loop.StepInterval <= 0 {
		return fmt.Errorf("%w: step_interval must be positive, got %d", ErrInvalid, c.Loop.StepInterval)
	}
	if c.Loop.FrameDelay < 0 {
		return fmt.Errorf("%w: frame_delay must be >= 0, got %v", ErrInvalid, c.Loop.FrameDelay)
	}
	for _, v := range c.Render.Background {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: background components must be in [0, 1]", ErrInvalid)
		}
	}
	if len([]rune(c.Render.QuitKey)) != 1 {
		return fmt.Errorf("%w: quit_key must be a single character, got %q", ErrInvalid, c.Render.QuitKey)
	}
	return nil
}

// Ticks is the number of diffusion ticks a full loop run performs.
func (c *Config) Ticks() int {
	return c.Loop.MaxFrames / c.Loop.StepInterval
}

// QuitKeys returns the configured key in both cases when it is a letter.
func (c *Config) QuitKeys() []rune {
	r := []rune(c.Render.QuitKey)
	if len(r) != 1 {
		return nil
	}
	k := r[0]
	switch {
	case k >= 'a' && k <= 'z':
		return []rune{k, k - 'a' + 'A'}
	case k >= 'A' && k <= 'Z':
		return []rune{k - 'A' + 'a', k}
	}
	return []rune{k}
}

func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		MaxFrames:    c.Loop.MaxFrames,
		StepInterval: c.Loop.StepInterval,
		FrameDelay:   c.Loop.FrameDelay,
		QuitKeys:     c.QuitKeys(),
		Title:        c.Render.Title,
		Background:   grid.Color(c.Render.Background),
		PointSize:    c.Render.PointSize,
	}
}

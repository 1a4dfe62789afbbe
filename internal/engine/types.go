package engine

import (
	"time"

	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
)

// Renderer displays the point cloud and delivers key presses.
type Renderer interface {
	// Open creates the view and adds the point list.
	Open(title string, snap grid.Snapshot) error
	SetBackground(c grid.Color)
	SetPointSize(size float64)
	// OnKey registers fn to run when key is pressed. Callbacks fire from Poll.
	OnKey(key rune, fn func())
	// UpdateColors replaces the color buffer of the point list; positions
	// stay as given to Open.
	UpdateColors(colors []grid.Color)
	// Poll processes pending input and redraws without blocking.
	Poll() error
	Close() error
}

type Metric interface {
	Name() string
	Observe(g *grid.State, tick int, d diffusion.Delta)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(g *grid.State, tick int, d diffusion.Delta)
}

type Config struct {
	MaxFrames    int
	StepInterval int
	FrameDelay   time.Duration
	QuitKeys     []rune
	Title        string
	Background   grid.Color
	PointSize    float64
}

func DefaultConfig() Config {
	return Config{
		MaxFrames:    10000,
		StepInterval: 10,
		FrameDelay:   10 * time.Millisecond,
		QuitKeys:     []rune{'q', 'Q'},
		Title:        "voxdiff",
		PointSize:    10,
	}
}

type Result struct {
	RunID   string
	Frames  int
	Ticks   int
	Quit    bool
	Elapsed time.Duration
	Metrics map[string]float64
}

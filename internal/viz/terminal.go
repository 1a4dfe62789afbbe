package viz

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/engine"
	"github.com/san-kum/voxdiff/internal/grid"
	"github.com/san-kum/voxdiff/internal/metrics"
)

const (
	historyCapacity = 600
	keyBuffer       = 64
)

var (
	_ engine.Renderer = (*Terminal)(nil)
	_ engine.Observer = (*Terminal)(nil)
)

// Terminal renders the grid as a rotatable braille point cloud inside a
// bubbletea program. The program runs on its own goroutine; Poll hands it
// the latest colors and runs key handlers on the caller's goroutine.
type Terminal struct {
	history *metrics.History
	theme   Theme
	opts    []tea.ProgramOption

	program  *tea.Program
	done     chan struct{}
	runErr   error
	keys     chan rune
	handlers map[rune][]func()
	pending  []grid.Color
	settings settingsMsg
	once     sync.Once
}

// NewTerminal creates a terminal renderer. opts are appended after the
// alternate-screen option.
func NewTerminal(rule diffusion.Rule, theme string, opts ...tea.ProgramOption) *Terminal {
	return &Terminal{
		history:  metrics.NewHistory(rule, historyCapacity),
		theme:    GetTheme(theme),
		opts:     opts,
		keys:     make(chan rune, keyBuffer),
		handlers: make(map[rune][]func()),
		settings: settingsMsg{pointSize: 1},
	}
}

func (t *Terminal) History() *metrics.History { return t.history }

func (t *Terminal) Open(title string, snap grid.Snapshot) error {
	scene := NewScene(snap, string(t.theme.Muted))
	model := NewModel(title, scene, t.theme, t.keys)

	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, t.opts...)
	t.program = tea.NewProgram(model, opts...)
	t.done = make(chan struct{})
	go func() {
		defer close(t.done)
		_, t.runErr = t.program.Run()
	}()
	return nil
}

func (t *Terminal) SetBackground(c grid.Color) { t.settings.background = c }
func (t *Terminal) SetPointSize(size float64)  { t.settings.pointSize = size }

func (t *Terminal) OnKey(key rune, fn func()) {
	t.handlers[key] = append(t.handlers[key], fn)
}

func (t *Terminal) UpdateColors(colors []grid.Color) { t.pending = colors }

// Poll returns engine.ErrInterrupted once the program has exited on its own,
// or the program's error if it failed.
func (t *Terminal) Poll() error {
	select {
	case <-t.done:
		if t.runErr != nil {
			return fmt.Errorf("viz: terminal: %w", t.runErr)
		}
		return engine.ErrInterrupted
	default:
	}

	t.once.Do(func() { t.program.Send(t.settings) })
	if t.pending != nil {
		t.program.Send(frameMsg{colors: t.pending})
		t.pending = nil
	}

	for {
		select {
		case k := <-t.keys:
			for _, fn := range t.handlers[k] {
				fn()
			}
		default:
			return nil
		}
	}
}

// OnTick records a history sample and refreshes the sidebar.
func (t *Terminal) OnTick(g *grid.State, tick int, d diffusion.Delta) {
	s := t.history.Record(g, tick, d)
	if t.program == nil {
		return
	}
	t.program.Send(statsMsg{
		last:  s,
		alive: t.history.Series(func(s metrics.Sample) float64 { return float64(s.Alive) }),
	})
}

func (t *Terminal) Close() error {
	if t.program == nil {
		return nil
	}
	t.program.Quit()
	<-t.done
	return t.runErr
}

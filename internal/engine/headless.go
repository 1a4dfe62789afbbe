package engine

import "github.com/san-kum/voxdiff/internal/grid"

// Headless is a Renderer with no output. Keys scheduled in Presses fire on
// the matching Poll call (1-based), which makes quit handling testable.
// A positive InterruptAt makes that Poll report ErrInterrupted.
type Headless struct {
	Presses     map[int][]rune
	InterruptAt int

	Title      string
	Background grid.Color
	PointSize  float64
	Points     int
	Updates    int
	Polls      int
	Opened     bool
	Closed     bool

	handlers map[rune][]func()
}

func (h *Headless) Open(title string, snap grid.Snapshot) error {
	h.Title = title
	h.Points = len(snap.Positions)
	h.Opened = true
	return nil
}

func (h *Headless) SetBackground(c grid.Color) { h.Background = c }
func (h *Headless) SetPointSize(size float64)  { h.PointSize = size }

func (h *Headless) OnKey(key rune, fn func()) {
	if h.handlers == nil {
		h.handlers = make(map[rune][]func())
	}
	h.handlers[key] = append(h.handlers[key], fn)
}

func (h *Headless) UpdateColors(colors []grid.Color) { h.Updates++ }

func (h *Headless) Poll() error {
	h.Polls++
	for _, key := range h.Presses[h.Polls] {
		for _, fn := range h.handlers[key] {
			fn()
		}
	}
	if h.InterruptAt > 0 && h.Polls == h.InterruptAt {
		return ErrInterrupted
	}
	return nil
}

func (h *Headless) Close() error {
	h.Closed = true
	return nil
}

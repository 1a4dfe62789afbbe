package metrics

import (
	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
)

// Activity is the mean number of cells changed per tick.
type Activity struct {
	name    string
	sum     int
	samples int
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(g *grid.State, tick int, d diffusion.Delta) {
	a.sum += d.Changed()
	a.samples++
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.samples)
}

func (a *Activity) Reset() {
	a.sum = 0
	a.samples = 0
}

// Stable is the fraction of ticks that changed no cell.
type Stable struct {
	name    string
	quiet   int
	samples int
}

func NewStable() *Stable {
	return &Stable{name: "stable"}
}

func (s *Stable) Name() string { return s.name }

func (s *Stable) Observe(g *grid.State, tick int, d diffusion.Delta) {
	s.samples++
	if d.Changed() == 0 {
		s.quiet++
	}
}

func (s *Stable) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.quiet) / float64(s.samples)
}

func (s *Stable) Reset() {
	s.quiet = 0
	s.samples = 0
}

package metrics

import (
	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
)

// Sample is one row of tick history.
type Sample struct {
	Tick    int     `csv:"tick" json:"tick"`
	Alive   int     `csv:"alive" json:"alive"`
	Total   float64 `csv:"total" json:"total"`
	Mean    float64 `csv:"mean" json:"mean"`
	StdDev  float64 `csv:"std" json:"std"`
	Grown   int     `csv:"grown" json:"grown"`
	Decayed int     `csv:"decayed" json:"decayed"`
}

// History records a Sample per tick, keeping at most Capacity rows when
// Capacity is positive.
type History struct {
	Capacity int

	rule    diffusion.Rule
	samples []Sample
}

func NewHistory(rule diffusion.Rule, capacity int) *History {
	return &History{Capacity: capacity, rule: rule}
}

// Record appends a sample for g; tick 0 is the seeded state.
func (h *History) Record(g *grid.State, tick int, d diffusion.Delta) Sample {
	mean, std := Spread(g)
	s := Sample{
		Tick:    tick,
		Alive:   CountAlive(h.rule, g),
		Total:   Total(g),
		Mean:    mean,
		StdDev:  std,
		Grown:   d.Grown,
		Decayed: d.Decayed,
	}
	h.samples = append(h.samples, s)
	if h.Capacity > 0 && len(h.samples) > h.Capacity {
		h.samples = h.samples[len(h.samples)-h.Capacity:]
	}
	return s
}

func (h *History) OnTick(g *grid.State, tick int, d diffusion.Delta) {
	h.Record(g, tick, d)
}

func (h *History) Samples() []Sample { return h.samples }

func (h *History) Last() (Sample, bool) {
	if len(h.samples) == 0 {
		return Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Series extracts one column for plotting.
func (h *History) Series(pick func(Sample) float64) []float64 {
	out := make([]float64, len(h.samples))
	for i, s := range h.samples {
		out[i] = pick(s)
	}
	return out
}

func (h *History) Reset() { h.samples = h.samples[:0] }

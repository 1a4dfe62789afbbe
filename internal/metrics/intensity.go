package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
)

// cellSums returns the RGB sum of every cell, reusing buf when it fits.
func cellSums(g *grid.State, buf []float64) []float64 {
	if cap(buf) < g.Len() {
		buf = make([]float64, g.Len())
	}
	buf = buf[:g.Len()]
	for i, c := range g.Colors() {
		buf[i] = c.Sum()
	}
	return buf
}

// TotalIntensity is the summed color of the whole grid at the last tick.
type TotalIntensity struct {
	name    string
	current float64
	buf     []float64
}

func NewTotalIntensity() *TotalIntensity {
	return &TotalIntensity{name: "total_intensity"}
}

func (t *TotalIntensity) Name() string { return t.name }

func (t *TotalIntensity) Observe(g *grid.State, tick int, d diffusion.Delta) {
	t.buf = cellSums(g, t.buf)
	t.current = floats.Sum(t.buf)
}

func (t *TotalIntensity) Value() float64 { return t.current }

func (t *TotalIntensity) Reset() {
	t.current = 0
}

// MeanIntensity averages the per-cell color sum over all observed ticks.
type MeanIntensity struct {
	name    string
	samples int
	total   float64
	buf     []float64
}

func NewMeanIntensity() *MeanIntensity {
	return &MeanIntensity{name: "mean_intensity"}
}

func (m *MeanIntensity) Name() string { return m.name }

func (m *MeanIntensity) Observe(g *grid.State, tick int, d diffusion.Delta) {
	m.buf = cellSums(g, m.buf)
	m.total += stat.Mean(m.buf, nil)
	m.samples++
}

func (m *MeanIntensity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanIntensity) Reset() {
	m.total = 0
	m.samples = 0
}

// Total returns the summed color of g.
func Total(g *grid.State) float64 {
	return floats.Sum(cellSums(g, nil))
}

// Spread returns the mean and standard deviation of per-cell color sums.
func Spread(g *grid.State) (mean, std float64) {
	return stat.MeanStdDev(cellSums(g, nil), nil)
}

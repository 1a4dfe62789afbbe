package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
)

func seeded(t *testing.T) *grid.State {
	t.Helper()
	g, _, err := grid.Initialize(grid.Dims{X: 15, Y: 15, Z: 15}, 20, 1134)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestTotalIntensity(t *testing.T) {
	g := seeded(t)
	m := NewTotalIntensity()
	m.Observe(g, 0, diffusion.Delta{})

	if math.Abs(m.Value()-32.193237928520766) > 1e-9 {
		t.Errorf("total = %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestAliveCount(t *testing.T) {
	g := seeded(t)
	m := NewAliveCount(diffusion.DefaultRule())
	m.Observe(g, 0, diffusion.Delta{})

	if m.Value() != 16 {
		t.Errorf("alive = %v, want 16", m.Value())
	}
	if m.Peak() != 16 {
		t.Errorf("peak = %d, want 16", m.Peak())
	}
}

func TestMeanIntensity(t *testing.T) {
	g, _ := grid.New(grid.Dims{X: 3, Y: 3, Z: 3})
	next := make([]grid.Color, g.Len())
	next[0] = grid.Color{1, 1, 1}
	if err := g.ApplyStep(next); err != nil {
		t.Fatal(err)
	}

	m := NewMeanIntensity()
	m.Observe(g, 1, diffusion.Delta{})
	m.Observe(g, 2, diffusion.Delta{})

	if want := 3.0 / 27.0; math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("mean = %v, want %v", m.Value(), want)
	}
}

func TestActivityAndStable(t *testing.T) {
	g := seeded(t)
	a, s := NewActivity(), NewStable()

	for _, d := range []diffusion.Delta{{Grown: 4, Decayed: 2}, {}, {Grown: 6}} {
		a.Observe(g, 0, d)
		s.Observe(g, 0, d)
	}

	if a.Value() != 4 {
		t.Errorf("activity = %v, want 4", a.Value())
	}
	if math.Abs(s.Value()-1.0/3.0) > 1e-12 {
		t.Errorf("stable = %v, want 1/3", s.Value())
	}

	s.Reset()
	if s.Value() != 1.0 {
		t.Error("stable should be 1 with no samples")
	}
}

func TestHistory(t *testing.T) {
	g := seeded(t)
	rule := diffusion.DefaultRule()
	h := NewHistory(rule, 3)

	h.Record(g, 0, diffusion.Delta{})
	for tick := 1; tick <= 5; tick++ {
		d, err := rule.Tick(g)
		if err != nil {
			t.Fatal(err)
		}
		h.OnTick(g, tick, d)
	}

	samples := h.Samples()
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0].Tick != 3 || samples[2].Tick != 5 {
		t.Errorf("unexpected ticks: %d..%d", samples[0].Tick, samples[2].Tick)
	}

	last, ok := h.Last()
	if !ok {
		t.Fatal("expected a last sample")
	}
	if last.Alive != 24 {
		t.Errorf("alive at tick 5 = %d, want 24", last.Alive)
	}
	if math.Abs(last.Total-44.336299256384784) > 1e-9 {
		t.Errorf("total at tick 5 = %v", last.Total)
	}

	series := h.Series(func(s Sample) float64 { return float64(s.Alive) })
	if len(series) != 3 || series[2] != 24 {
		t.Errorf("unexpected series %v", series)
	}

	h.Reset()
	if _, ok := h.Last(); ok {
		t.Error("expected empty history after reset")
	}
}

package metrics

import (
	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
)

// AliveCount reports the number of alive cells at the last tick.
type AliveCount struct {
	name    string
	rule    diffusion.Rule
	current int
	peak    int
}

func NewAliveCount(rule diffusion.Rule) *AliveCount {
	return &AliveCount{name: "alive", rule: rule}
}

func (a *AliveCount) Name() string { return a.name }

func (a *AliveCount) Observe(g *grid.State, tick int, d diffusion.Delta) {
	a.current = CountAlive(a.rule, g)
	a.peak = max(a.peak, a.current)
}

func (a *AliveCount) Value() float64 { return float64(a.current) }

// Peak is the highest count seen since Reset.
func (a *AliveCount) Peak() int { return a.peak }

func (a *AliveCount) Reset() {
	a.current = 0
	a.peak = 0
}

func CountAlive(rule diffusion.Rule, g *grid.State) int {
	n := 0
	for _, c := range g.Colors() {
		if rule.Alive(c) {
			n++
		}
	}
	return n
}

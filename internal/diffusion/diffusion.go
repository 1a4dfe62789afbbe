package diffusion

import (
	"fmt"

	"github.com/san-kum/voxdiff/internal/grid"
)

const (
	DefaultAliveThresh = 1.0
	DefaultXfrRate     = 0.1
)

// Rule holds the thresholds of the neighbor-diffusion automaton.
type Rule struct {
	// AliveThresh is the color sum a cell must exceed to count as alive.
	AliveThresh float64 `yaml:"alive_thresh"`
	// XfrRate is both the decay fraction of crowded cells and the share of
	// the neighbor mean a dead cell absorbs.
	XfrRate float64 `yaml:"xfr_rate"`
}

func DefaultRule() Rule {
	return Rule{AliveThresh: DefaultAliveThresh, XfrRate: DefaultXfrRate}
}

func (r Rule) Validate() error {
	if r.XfrRate < 0 || r.XfrRate > 1 {
		return fmt.Errorf("%w: xfr_rate %g not in [0, 1]", ErrRule, r.XfrRate)
	}
	if r.AliveThresh < 0 || r.AliveThresh >= 3 {
		return fmt.Errorf("%w: alive_thresh %g not in [0, 3)", ErrRule, r.AliveThresh)
	}
	return nil
}

// Alive reports whether c's component sum exceeds the threshold.
func (r Rule) Alive(c grid.Color) bool {
	return c[0]+c[1]+c[2] > r.AliveThresh
}

// Delta summarizes what one tick did.
type Delta struct {
	Decayed int
	Grown   int
}

func (d Delta) Changed() int { return d.Decayed + d.Grown }

// Step computes the next color buffer from g without modifying it. Only
// interior cells are updated; every neighbor lookup reads the current
// buffer, so the update is synchronous across the whole grid. The result is
// not yet clamped.
func (r Rule) Step(g *grid.State) ([]grid.Color, Delta) {
	dims := g.Dims()
	cur := g.Colors()
	next := make([]grid.Color, len(cur))
	copy(next, cur)

	var d Delta
	for z := 1; z < dims.Z-1; z++ {
		for y := 1; y < dims.Y-1; y++ {
			for x := 1; x < dims.X-1; x++ {
				var sum grid.Color
				aliveNeighbors := 0

				// The scan covers the full 3x3x3 block, center included.
				for dz := -1; dz <= 1; dz++ {
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							c := cur[g.Index(x+dx, y+dy, z+dz)]
							if r.Alive(c) {
								aliveNeighbors++
								sum[0] += c[0]
								sum[1] += c[1]
								sum[2] += c[2]
							}
						}
					}
				}

				i := g.Index(x, y, z)
				self := cur[i]
				alive := false
				if r.Alive(self) {
					// don't count self; its color in sum is never read
					// because growth needs a dead center.
					aliveNeighbors--
					alive = true
				}

				switch {
				case alive && aliveNeighbors > 3:
					next[i] = self.Scale(1.0 - r.XfrRate)
					d.Decayed++
				case !alive && aliveNeighbors > 1:
					n := float64(aliveNeighbors)
					for k := range next[i] {
						next[i][k] += r.XfrRate * sum[k] / n
					}
					d.Grown++
				}
			}
		}
	}
	return next, d
}

// Tick runs one Step and commits the clamped result to g.
func (r Rule) Tick(g *grid.State) (Delta, error) {
	next, d := r.Step(g)
	if err := g.ApplyStep(next); err != nil {
		return Delta{}, fmt.Errorf("%w: %w", ErrCommit, err)
	}
	return d, nil
}

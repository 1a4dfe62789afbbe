package sweep

import (
	"context"
	"fmt"

	"github.com/san-kum/voxdiff/internal/diffusion"
)

// GridSearch tries every combination of transfer rate and alive threshold,
// running an ensemble of seeds for each.
type GridSearch struct {
	XfrRates    []float64
	AliveThresh []float64
	Runs        int
	SeedStart   int64
}

// Rules expands the parameter grid, skipping invalid combinations.
func (g *GridSearch) Rules() ([]diffusion.Rule, error) {
	rules := make([]diffusion.Rule, 0, len(g.XfrRates)*len(g.AliveThresh))
	for _, xfr := range g.XfrRates {
		for _, thresh := range g.AliveThresh {
			r := diffusion.Rule{AliveThresh: thresh, XfrRate: xfr}
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("sweep: xfr %v thresh %v: %w", xfr, thresh, err)
			}
			rules = append(rules, r)
		}
	}
	if len(rules) == 0 {
		return nil, ErrEmpty
	}
	return rules, nil
}

// Search runs the grid and returns one Summary per rule, in XfrRates-major
// order.
func (g *GridSearch) Search(ctx context.Context, pool *Pool, base Job) ([]Summary, error) {
	rules, err := g.Rules()
	if err != nil {
		return nil, err
	}
	runs := max(g.Runs, 1)

	jobs := make([]Job, 0, len(rules)*runs)
	for _, r := range rules {
		b := base
		b.Rule = r
		jobs = append(jobs, Ensemble(b, runs, g.SeedStart)...)
	}

	outcomes, err := pool.RunAll(ctx, jobs)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(rules))
	for i, r := range rules {
		summaries[i] = Summarize(r, outcomes[i*runs:(i+1)*runs])
	}
	return summaries, nil
}

// Best returns the summary with the highest mean alive count.
func Best(summaries []Summary) (Summary, bool) {
	if len(summaries) == 0 {
		return Summary{}, false
	}
	best := summaries[0]
	for _, s := range summaries[1:] {
		if s.AliveMean > best.AliveMean {
			best = s
		}
	}
	return best, true
}

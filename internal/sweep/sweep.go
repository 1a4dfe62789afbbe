// Package sweep runs many independent grids concurrently: an ensemble of
// random seeds, and a grid search over rule parameters.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
	"github.com/san-kum/voxdiff/internal/metrics"
)

var ErrEmpty = errors.New("sweep: nothing to run")

// Job describes one independent run.
type Job struct {
	Dims  grid.Dims
	Seeds int
	Seed  int64
	Rule  diffusion.Rule
	Ticks int
}

// Outcome is the final sample of a Job.
type Outcome struct {
	Job   Job
	Final metrics.Sample
}

// Run executes one job to completion on the calling goroutine.
func Run(ctx context.Context, job Job) (Outcome, error) {
	g, _, err := grid.Initialize(job.Dims, job.Seeds, job.Seed)
	if err != nil {
		return Outcome{}, err
	}

	hist := metrics.NewHistory(job.Rule, 1)
	last := hist.Record(g, 0, diffusion.Delta{})
	for tick := 1; tick <= job.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		d, err := job.Rule.Tick(g)
		if err != nil {
			return Outcome{}, fmt.Errorf("sweep: seed %d tick %d: %w", job.Seed, tick, err)
		}
		last = hist.Record(g, tick, d)
	}
	return Outcome{Job: job, Final: last}, nil
}

// Pool runs jobs on at most Workers goroutines. Each job owns its grid.
type Pool struct {
	Workers int
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{Workers: workers}
}

// RunAll returns outcomes in job order. The first error cancels the rest.
func (p *Pool) RunAll(ctx context.Context, jobs []Job) ([]Outcome, error) {
	if len(jobs) == 0 {
		return nil, ErrEmpty
	}

	out := make([]Outcome, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.Workers)
	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			o, err := Run(ctx, job)
			if err != nil {
				return err
			}
			out[i] = o
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ensemble returns one copy of base per seed in seedStart..seedStart+runs-1.
func Ensemble(base Job, runs int, seedStart int64) []Job {
	jobs := make([]Job, runs)
	for i := range jobs {
		jobs[i] = base
		jobs[i].Seed = seedStart + int64(i)
	}
	return jobs
}

// Summary aggregates the outcomes that share a rule.
type Summary struct {
	Rule      diffusion.Rule
	Runs      int
	AliveMean float64
	AliveStd  float64
	TotalMean float64
	TotalStd  float64
}

func Summarize(rule diffusion.Rule, outcomes []Outcome) Summary {
	alive := make([]float64, len(outcomes))
	total := make([]float64, len(outcomes))
	for i, o := range outcomes {
		alive[i] = float64(o.Final.Alive)
		total[i] = o.Final.Total
	}
	s := Summary{Rule: rule, Runs: len(outcomes)}
	if len(outcomes) == 0 {
		return s
	}
	// MeanStdDev is undefined for a single run.
	if len(outcomes) < 2 {
		s.AliveMean = stat.Mean(alive, nil)
		s.TotalMean = stat.Mean(total, nil)
		return s
	}
	s.AliveMean, s.AliveStd = stat.MeanStdDev(alive, nil)
	s.TotalMean, s.TotalStd = stat.MeanStdDev(total, nil)
	return s
}

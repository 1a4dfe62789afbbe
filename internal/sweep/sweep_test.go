package sweep

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/grid"
)

func referenceJob(ticks int) Job {
	return Job{
		Dims:  grid.Dims{X: 15, Y: 15, Z: 15},
		Seeds: 20,
		Seed:  1134,
		Rule:  diffusion.DefaultRule(),
		Ticks: ticks,
	}
}

func TestRunMatchesReference(t *testing.T) {
	o, err := Run(context.Background(), referenceJob(5))
	require.NoError(t, err)
	assert.Equal(t, 5, o.Final.Tick)
	assert.Equal(t, 24, o.Final.Alive)
	assert.InDelta(t, 44.336299256384784, o.Final.Total, 1e-9)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, referenceJob(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPoolPreservesOrder(t *testing.T) {
	base := referenceJob(4)
	base.Dims = grid.Dims{X: 9, Y: 9, Z: 9}
	jobs := Ensemble(base, 6, 100)

	got, err := NewPool(3).RunAll(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, got, 6)

	for i, job := range jobs {
		assert.Equal(t, int64(100+i), got[i].Job.Seed)
		want, err := Run(context.Background(), job)
		require.NoError(t, err)
		assert.Equal(t, want.Final, got[i].Final)
	}
}

func TestPoolEmpty(t *testing.T) {
	_, err := NewPool(0).RunAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPoolPropagatesErrors(t *testing.T) {
	jobs := []Job{referenceJob(1), {Dims: grid.Dims{X: 2, Y: 2, Z: 2}, Rule: diffusion.DefaultRule()}}
	_, err := NewPool(2).RunAll(context.Background(), jobs)
	assert.ErrorIs(t, err, grid.ErrDimensions)
}

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{}
	for _, alive := range []int{2, 4, 6} {
		o := Outcome{}
		o.Final.Alive = alive
		o.Final.Total = float64(alive) / 2
		outcomes = append(outcomes, o)
	}

	s := Summarize(diffusion.DefaultRule(), outcomes)
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, 4.0, s.AliveMean)
	assert.InDelta(t, 2.0, s.AliveStd, 1e-12)
	assert.Equal(t, 2.0, s.TotalMean)

	empty := Summarize(diffusion.DefaultRule(), nil)
	assert.Equal(t, 0, empty.Runs)
}

func TestGridSearch(t *testing.T) {
	gs := &GridSearch{
		XfrRates:    []float64{0.05, 0.2},
		AliveThresh: []float64{0.5, 1.0},
		Runs:        2,
		SeedStart:   1,
	}
	base := referenceJob(3)
	base.Dims = grid.Dims{X: 7, Y: 7, Z: 7}

	summaries, err := gs.Search(context.Background(), NewPool(2), base)
	require.NoError(t, err)
	require.Len(t, summaries, 4)

	assert.Equal(t, 0.05, summaries[0].Rule.XfrRate)
	assert.Equal(t, 0.5, summaries[0].Rule.AliveThresh)
	assert.Equal(t, 0.2, summaries[3].Rule.XfrRate)
	assert.Equal(t, 1.0, summaries[3].Rule.AliveThresh)
	for _, s := range summaries {
		assert.Equal(t, 2, s.Runs)
		assert.False(t, math.IsNaN(s.AliveMean))
	}

	best, ok := Best(summaries)
	require.True(t, ok)
	for _, s := range summaries {
		assert.LessOrEqual(t, s.AliveMean, best.AliveMean)
	}
}

func TestSummarizeSingleRun(t *testing.T) {
	o := Outcome{}
	o.Final.Alive = 5
	o.Final.Total = 2.5

	s := Summarize(diffusion.DefaultRule(), []Outcome{o})
	assert.Equal(t, 1, s.Runs)
	assert.Equal(t, 5.0, s.AliveMean)
	assert.Equal(t, 2.5, s.TotalMean)
	assert.Zero(t, s.AliveStd)
	assert.Zero(t, s.TotalStd)
}

func TestGridSearchSingleRun(t *testing.T) {
	gs := &GridSearch{XfrRates: []float64{0.1}, AliveThresh: []float64{1.0}, Runs: 1, SeedStart: 1}
	base := referenceJob(3)
	base.Dims = grid.Dims{X: 7, Y: 7, Z: 7}

	summaries, err := gs.Search(context.Background(), NewPool(1), base)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.False(t, math.IsNaN(summaries[0].AliveStd))
	assert.False(t, math.IsNaN(summaries[0].TotalStd))
	assert.Zero(t, summaries[0].AliveStd)
}

func TestGridSearchRejectsInvalidRule(t *testing.T) {
	gs := &GridSearch{XfrRates: []float64{1.5}, AliveThresh: []float64{1}}
	_, err := gs.Rules()
	assert.ErrorIs(t, err, diffusion.ErrRule)

	_, err = (&GridSearch{}).Rules()
	assert.ErrorIs(t, err, ErrEmpty)
}

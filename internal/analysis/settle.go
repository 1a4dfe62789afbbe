package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/voxdiff/internal/metrics"
)

// SettleTick returns the first tick after which no cell changes for the
// rest of samples. It reports false if the last sample still changed.
func SettleTick(samples []metrics.Sample) (int, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	last := samples[len(samples)-1]
	if last.Grown+last.Decayed != 0 {
		return 0, false
	}

	tick := last.Tick
	for i := len(samples) - 1; i >= 0; i-- {
		s := samples[i]
		if s.Grown+s.Decayed != 0 {
			break
		}
		tick = s.Tick
	}
	return tick, true
}

// Trend reports the least-squares slope of pick over the samples' ticks.
func Trend(samples []metrics.Sample, pick func(metrics.Sample) float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = float64(s.Tick)
		ys[i] = pick(s)
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

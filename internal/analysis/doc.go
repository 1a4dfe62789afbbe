// Package analysis characterizes a run's tick history.
//
//   - [PowerSpectrum] and [Dominant]: periodic behaviour of a series
//   - [SettleTick]: when the grid stopped changing
//   - [Trend]: least-squares slope of a series
//
// # Example
//
//	series := hist.Series(func(s metrics.Sample) float64 { return s.Total })
//	if peak, ok := analysis.Dominant(analysis.PowerSpectrum(series), len(series)); ok {
//	    fmt.Printf("period: %.1f ticks\n", peak.Period)
//	}
package analysis

package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of
// series after removing its mean. Bin k corresponds to a period of
// len(series)/k ticks.
func PowerSpectrum(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	mean := stat.Mean(series, nil)
	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// Peak is the strongest non-constant frequency of a series.
type Peak struct {
	Bin    int
	Power  float64
	Period float64 // ticks per cycle
}

// Dominant finds the strongest bin above zero. It reports false when the
// spectrum is flat, which is what a settled grid produces.
func Dominant(ps []float64, samples int) (Peak, bool) {
	best := Peak{}
	for i := 1; i < len(ps); i++ {
		if ps[i] > best.Power {
			best = Peak{Bin: i, Power: ps[i]}
		}
	}
	if best.Bin == 0 || best.Power < 1e-9 {
		return Peak{}, false
	}
	best.Period = float64(samples) / float64(best.Bin)
	return best, true
}

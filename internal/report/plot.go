package report

import (
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/voxdiff/internal/metrics"
)

// Series names accepted by Plot.
var Series = map[string]func(metrics.Sample) float64{
	"alive":   func(s metrics.Sample) float64 { return float64(s.Alive) },
	"total":   func(s metrics.Sample) float64 { return s.Total },
	"mean":    func(s metrics.Sample) float64 { return s.Mean },
	"std":     func(s metrics.Sample) float64 { return s.StdDev },
	"changed": func(s metrics.Sample) float64 { return float64(s.Grown + s.Decayed) },
}

var captions = map[string]string{
	"alive":   "alive cells per tick",
	"total":   "total intensity per tick",
	"mean":    "mean cell intensity per tick",
	"std":     "cell intensity std dev per tick",
	"changed": "cells changed per tick",
}

// Plot renders one asciigraph per named series, separated by blank lines.
// Unknown names are skipped.
func Plot(samples []metrics.Sample, names []string, width, height int) (string, error) {
	if len(samples) == 0 {
		return "", ErrNoSamples
	}

	var b strings.Builder
	for _, name := range names {
		pick, ok := Series[name]
		if !ok {
			continue
		}
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = pick(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(captions[name]),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

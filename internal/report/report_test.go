package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/engine"
	"github.com/san-kum/voxdiff/internal/metrics"
	"github.com/san-kum/voxdiff/internal/sweep"
	"github.com/san-kum/voxdiff/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples() []metrics.Sample {
	return []metrics.Sample{
		{Tick: 0, Alive: 16, Total: 32.5, Mean: 0.01, StdDev: 0.1},
		{Tick: 1, Alive: 18, Total: 33.25, Mean: 0.011, StdDev: 0.1, Grown: 4, Decayed: 2},
		{Tick: 2, Alive: 20, Total: 34, Mean: 0.012, StdDev: 0.11, Grown: 3, Decayed: 1},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, FormatCSV, samples()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "tick,alive,total,mean,std,grown,decayed", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "1,18,33.25,"), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], ",4,2"), lines[2])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, FormatTable, samples()))

	out := buf.String()
	assert.Contains(t, out, "TICK")
	assert.Contains(t, out, "33.250000")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, nil), ErrNoSamples)
	assert.ErrorIs(t, WriteTable(&buf, nil), ErrNoSamples)

	_, err := Plot(nil, []string{"alive"}, 40, 5)
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	res := &engine.Result{
		RunID:   "abc",
		Ticks:   3,
		Elapsed: time.Millisecond,
		Metrics: map[string]float64{"total_intensity": 34, "alive_cells": 20},
	}
	require.NoError(t, WriteSummary(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "run id: abc")
	assert.NotContains(t, out, "frames:")
	assert.Less(t, strings.Index(out, "alive_cells"), strings.Index(out, "total_intensity"))
}

func TestPlot(t *testing.T) {
	out, err := Plot(samples(), []string{"alive", "bogus", "changed"}, 40, 5)
	require.NoError(t, err)
	assert.Contains(t, out, "alive cells per tick")
	assert.Contains(t, out, "cells changed per tick")
	assert.NotContains(t, out, "bogus")
}

func TestCanvasSVG(t *testing.T) {
	assert.Empty(t, CanvasSVG(nil, 2, ""))

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0, "#ff0000")
	c.Set(3, 3, "")

	svg := CanvasSVG(c, 2, "")
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `fill="#000000"`)
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `fill="#ff0000"/>`)
	assert.Contains(t, svg, `fill="#ffffff"/>`)
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestWriteSweep(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteSweep(&buf, nil), ErrNoSamples)

	rows := []sweep.Summary{
		{Rule: diffusion.Rule{AliveThresh: 1, XfrRate: 0.1}, Runs: 4, AliveMean: 12.5, TotalMean: 30},
		{Rule: diffusion.Rule{AliveThresh: 0.5, XfrRate: 0.2}, Runs: 4, AliveMean: 40, TotalMean: 31},
	}
	require.NoError(t, WriteSweep(&buf, rows))
	out := buf.String()
	assert.Contains(t, out, "XFR_RATE")
	assert.Contains(t, out, "12.50")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

// Package report formats tick history for the terminal: aligned tables,
// CSV, asciigraph plots and SVG snapshots of a projected frame.
package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/voxdiff/internal/engine"
	"github.com/san-kum/voxdiff/internal/metrics"
)

var ErrNoSamples = errors.New("report: no samples")

// Format selects how WriteHistory renders samples.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("report: unknown format %q (want table or csv)", s)
}

func WriteHistory(w io.Writer, f Format, samples []metrics.Sample) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, samples)
	case FormatTable:
		return WriteTable(w, samples)
	}
	return fmt.Errorf("report: unknown format %q", f)
}

// WriteCSV writes one header row and one row per sample.
func WriteCSV(w io.Writer, samples []metrics.Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if err := gocsv.Marshal(samples, w); err != nil {
		return fmt.Errorf("report: csv: %w", err)
	}
	return nil
}

func WriteTable(w io.Writer, samples []metrics.Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tALIVE\tTOTAL\tMEAN\tSTD\tGROWN\tDECAYED")
	for _, s := range samples {
		fmt.Fprintf(tw, "%d\t%d\t%.6f\t%.6f\t%.6f\t%d\t%d\n",
			s.Tick, s.Alive, s.Total, s.Mean, s.StdDev, s.Grown, s.Decayed)
	}
	return tw.Flush()
}

// WriteSummary prints the run outcome and its metrics sorted by name.
func WriteSummary(w io.Writer, res *engine.Result) error {
	if res == nil {
		return errors.New("report: nil result")
	}
	fmt.Fprintf(w, "run id: %s\n", res.RunID)
	if res.Frames > 0 {
		fmt.Fprintf(w, "frames: %d\n", res.Frames)
	}
	fmt.Fprintf(w, "ticks: %d\n", res.Ticks)
	fmt.Fprintf(w, "completed in %v\n", res.Elapsed)

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		fmt.Fprintln(w, "\nmetrics:")
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "  %s: %.6f\n", name, res.Metrics[name]); err != nil {
			return err
		}
	}
	return nil
}

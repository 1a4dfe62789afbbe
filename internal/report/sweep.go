package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/voxdiff/internal/sweep"
)

func WriteSweep(w io.Writer, summaries []sweep.Summary) error {
	if len(summaries) == 0 {
		return ErrNoSamples
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "XFR_RATE\tALIVE_THRESH\tRUNS\tALIVE\tALIVE_STD\tTOTAL\tTOTAL_STD")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%.3f\t%.3f\t%d\t%.2f\t%.2f\t%.4f\t%.4f\n",
			s.Rule.XfrRate, s.Rule.AliveThresh, s.Runs, s.AliveMean, s.AliveStd, s.TotalMean, s.TotalStd)
	}
	return tw.Flush()
}

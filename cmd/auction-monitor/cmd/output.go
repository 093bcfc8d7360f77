package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/donaldgifford/auction-monitor/pkg/stats"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printSummaryTable(w io.Writer, s *stats.Summary) error {
	tw := newTabWriter(w)
	tw.writef("Number of auctions:\t%d\n", s.AuctionCount)
	tw.writef("Total bids:\t%d\n", s.TotalBids)
	tw.writef("Average number of bids:\t%.2f\n", s.AverageBids)
	tw.writef("Average auction progress:\t%.2f\n", s.AverageProgress)
	tw.writef("Computed at:\t%s\n", s.ComputedAt.Format(time.RFC3339))
	return tw.finish()
}

func printSummaryJSON(w io.Writer, s any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

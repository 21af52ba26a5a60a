package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RenderAnalysis writes the summary, type distribution and raw data table of
// p as plain text. Nothing is written when p has no analysis.
func RenderAnalysis(w io.Writer, p Page) error {
	if !p.HasAnalysis {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Analysis #%d\n", p.AnalysisId)
	for _, c := range p.Cards {
		fmt.Fprintf(tw, "%s:\t%s\n", c.Title, c.Value)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Type Distribution")
	total := p.ChartData.Total()
	for _, s := range p.Distribution {
		share := 0.0
		if total > 0 {
			share = float64(s.Count) * 100 / float64(total)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", s.Label, s.Count, share)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, TableTitle)
	headers := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		headers[i] = c.Header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range p.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// RenderHistory writes the history table, or the empty-history notice.
func RenderHistory(w io.Writer, p Page) error {
	if _, err := fmt.Fprintln(w, p.HistoryTitle); err != nil {
		return err
	}
	if p.HistoryEmpty {
		_, err := fmt.Fprintln(w, p.EmptyHistory)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t"+strings.Join(HistoryHeaders, "\t")+"\tUploaded")
	for _, h := range p.History {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.Id, h.Date, h.FileName, h.TotalRows, h.AvgFlowrate, h.AvgPressure, h.AvgTemperature, h.Ago)
	}
	return tw.Flush()
}

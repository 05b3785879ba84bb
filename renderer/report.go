// Package renderer turns holdings deltas into human-readable
// documents: a markdown change report (also used for the terminal and
// assistant views) and its self-contained HTML rendition.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chiehmin/etfmon"
)

// Report is the display model for one run's change report.
type Report struct {
	// Date is the label of the current snapshot.
	Date string
	// Funds holds one delta per fund, sorted by fund id for a stable
	// document layout regardless of map iteration order.
	Funds []*etfmon.Delta
}

// NewReport builds a Report from the diff engine output.
func NewReport(dateLabel string, deltas map[string]*etfmon.Delta) *Report {
	r := &Report{Date: dateLabel}
	for _, d := range deltas {
		r.Funds = append(r.Funds, d)
	}
	sort.Slice(r.Funds, func(i, j int) bool { return r.Funds[i].FundID < r.Funds[j].FundID })
	return r
}

// ChangesMarkdown renders the full change report as markdown, one
// section per fund with its three tables.
func ChangesMarkdown(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Active ETF Holdings - Daily Change Report (%s)\n\n", r.Date)

	for _, delta := range r.Funds {
		fmt.Fprintf(&b, "## ETF %s\n\n", delta.FundID)

		fmt.Fprintf(&b, "### New Positions\n\n")
		if len(delta.Entered) == 0 {
			fmt.Fprintln(&b, "No new positions.")
			fmt.Fprintln(&b)
		} else {
			fmt.Fprintln(&b, "| Stock ID | Name | Shares | Weight |")
			fmt.Fprintln(&b, "|---|---|---|---|")
			for _, row := range delta.Entered {
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
					row.SecurityID, row.SecurityName, SharesString(row.Shares), row.Weight)
			}
			fmt.Fprintln(&b)
		}

		fmt.Fprintf(&b, "### Exited Positions\n\n")
		if len(delta.Exited) == 0 {
			fmt.Fprintln(&b, "No exited positions.")
			fmt.Fprintln(&b)
		} else {
			fmt.Fprintln(&b, "| Stock ID | Name | Shares (Prev) | Weight (Prev) |")
			fmt.Fprintln(&b, "|---|---|---|---|")
			for _, row := range delta.Exited {
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
					row.SecurityID, row.SecurityName, SharesString(row.Shares), row.Weight)
			}
			fmt.Fprintln(&b)
		}

		fmt.Fprintf(&b, "### Holdings Changes\n\n")
		if len(delta.Changed) == 0 {
			fmt.Fprintln(&b, "No significant changes.")
			fmt.Fprintln(&b)
		} else {
			fmt.Fprintln(&b, "| Stock ID | Name | Shares (Prev) | Shares (Curr) | Diff | Weight (Prev) | Weight (Curr) | Diff |")
			fmt.Fprintln(&b, "|---|---|---|---|---|---|---|---|")
			for _, c := range delta.Changed {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
					c.SecurityID, c.SecurityName,
					SharesString(c.SharesPrev), SharesString(c.SharesCurr), SignedSharesString(c.SharesDiff),
					c.WeightPrev, c.WeightCurr, c.WeightDiff.SignedString())
			}
			fmt.Fprintln(&b)
		}
	}
	return b.String()
}

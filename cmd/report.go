package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/chiehmin/etfmon"
	"github.com/chiehmin/etfmon/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	quiet bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compares the two latest snapshots and renders the change report" }
func (*reportCmd) Usage() string {
	return `etfmon report [-q]

  Compares the two most recent stored snapshots, writes the HTML change
  report next to the snapshots and refreshes the landing page. No
  network access: it only reads the snapshot store.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "Do not print the report to the terminal.")
}

func (c *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := OpenStore()
	md, _, err := generateReport(store)
	if errors.Is(err, etfmon.ErrInsufficientHistory) {
		fmt.Fprintln(os.Stderr, "Error: not enough history for comparison (need at least 2 days).")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !c.quiet {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}

// generateReport diffs the two latest snapshots and writes the HTML
// report and the landing page. It returns the report markdown and path.
func generateReport(store *etfmon.Store) (md, reportPath string, err error) {
	previous, current, err := store.LatestTwo()
	if err != nil {
		return "", "", err
	}
	log.Printf("Comparing %s with %s...", current.On(), previous.On())

	deltas, err := etfmon.Diff(previous, current)
	if err != nil {
		return "", "", err
	}

	report := renderer.NewReport(current.On().String(), deltas)
	md = renderer.ChangesMarkdown(report)

	html, err := renderer.ReportHTML(md, "Active ETF Daily Changes - "+current.On().String())
	if err != nil {
		return "", "", err
	}
	reportPath = filepath.Join(store.Dir(), "report_"+current.On().Stamp()+".html")
	if err := os.WriteFile(reportPath, []byte(html), 0644); err != nil {
		return "", "", fmt.Errorf("cannot write report: %w", err)
	}
	log.Printf("Generated HTML report: %s", reportPath)

	if err := writeIndex(reportPath, current.On().String()); err != nil {
		return "", "", err
	}
	return md, reportPath, nil
}

// writeIndex refreshes the landing page so it always points at the most
// recent report.
func writeIndex(reportPath, dateLabel string) error {
	href, err := filepath.Rel(filepath.Dir(*indexFile), reportPath)
	if err != nil {
		href = reportPath
	}
	html, err := renderer.IndexHTML(filepath.ToSlash(href), dateLabel, time.Now().Format("2006-01-02 15:04:05"))
	if err != nil {
		return err
	}
	if err := os.WriteFile(*indexFile, []byte(html), 0644); err != nil {
		return fmt.Errorf("cannot write landing page: %w", err)
	}
	log.Printf("Updated %s to point to %s", *indexFile, filepath.Base(reportPath))
	return nil
}

// printMarkdown renders the report markdown for the terminal. Falls
// back to the raw markdown if the terminal renderer fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chiehmin/etfmon"
	"github.com/chiehmin/etfmon/date"
	"github.com/google/subcommands"
)

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "performs one full fetch-store-diff-report cycle" }
func (*runCmd) Usage() string {
	return `etfmon run

  Fetches the holdings of every monitored fund, stores today's
  snapshot, compares it with the previous one and generates the HTML
  change report plus the landing page.

  This is the default command: invoking etfmon without arguments runs
  one full cycle. A fund whose fetch fails is skipped for the run; if
  there is not yet enough history to compare, the snapshot is still
  written and the report phase is skipped.
`
}

func (*runCmd) SetFlags(_ *flag.FlagSet) {}

func (*runCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log.Printf("Starting Active ETF Monitor...")

	sources, err := Sources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	store := OpenStore()
	log.Printf("Output directory: %s", store.Dir())

	snapshot, failed := etfmon.BuildSnapshot(date.Today(), sources, store)
	if snapshot.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no data fetched from any source.")
		return subcommands.ExitFailure
	}

	path, err := store.Write(snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Printf("Saved combined data to: %s", path)

	md, _, err := generateReport(store)
	if errors.Is(err, etfmon.ErrInsufficientHistory) {
		log.Printf("Not enough history for comparison (need at least 2 days).")
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: comparison failed: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)

	// Funds that failed to fetch contributed no rows; the run still
	// counts as a success if at least one fund came through.
	for fund, ferr := range failed {
		log.Printf("note: %s contributed no rows this run: %v", fund, ferr)
	}
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chiehmin/etfmon"
	"github.com/chiehmin/etfmon/date"
	"github.com/chiehmin/etfmon/renderer"
	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches today's holdings and stores the snapshot" }
func (*fetchCmd) Usage() string {
	return `etfmon fetch

  Fetches the holdings of every monitored fund and writes today's
  snapshot, without running the comparison or generating a report.
  Writing twice on the same day replaces the earlier snapshot.
`
}

func (*fetchCmd) SetFlags(_ *flag.FlagSet) {}

func (*fetchCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sources, err := Sources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	store := OpenStore()

	snapshot, _ := etfmon.BuildSnapshot(date.Today(), sources, store)
	if snapshot.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no data fetched from any source.")
		return subcommands.ExitFailure
	}

	// Preview the first few rows, the way one would eyeball a frame.
	const previewRows = 5
	i := 0
	for row := range snapshot.Rows() {
		if i == previewRows {
			break
		}
		log.Printf("  %-8s %-12s %12s  %8s", row.SecurityID, row.SecurityName,
			renderer.SharesString(row.Shares), row.Weight)
		i++
	}

	path, err := store.Write(snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved %d holdings rows to %s\n", snapshot.Len(), path)
	return subcommands.ExitSuccess
}

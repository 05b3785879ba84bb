package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "lists the stored snapshots" }
func (*historyCmd) Usage() string {
	return `etfmon history

  Lists the capture date, row count and funds of every stored snapshot,
  oldest first.
`
}

func (*historyCmd) SetFlags(_ *flag.FlagSet) {}

func (*historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := OpenStore()
	dates, err := store.Dates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(dates) == 0 {
		fmt.Println("No snapshots stored yet.")
		return subcommands.ExitSuccess
	}

	for _, on := range dates {
		snapshot, err := store.Read(on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		var funds []string
		for f := range snapshot.Funds() {
			funds = append(funds, f)
		}
		fmt.Printf("%s  %4d rows  %v\n", on, snapshot.Len(), funds)
	}
	return subcommands.ExitSuccess
}

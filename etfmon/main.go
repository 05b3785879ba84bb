package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/chiehmin/etfmon/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	flag.Parse()

	// Invoked without a subcommand, perform one full cycle: the tool is
	// meant to be run unattended once a day.
	if flag.NArg() == 0 {
		flag.CommandLine.Parse([]string{"run"})
	}

	os.Exit(int(commander.Execute(context.Background())))
}

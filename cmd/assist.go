package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chiehmin/etfmon"
	"github.com/chiehmin/etfmon/agent"
	"github.com/chiehmin/etfmon/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "starts an interactive session with the AI analyst" }
func (*assistCmd) Usage() string {
	return `etfmon assist [question...]

  Starts an interactive session with an AI analyst seeded with the
  latest change report. Requires at least two stored snapshots and a
  configured Gemini API key (GEMINI_API_KEY).
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	store := OpenStore()
	previous, current, err := store.LatestTwo()
	if errors.Is(err, etfmon.ErrInsufficientHistory) {
		fmt.Fprintln(os.Stderr, "Error: not enough history, run 'etfmon' on two different days first.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	deltas, err := etfmon.Diff(previous, current)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	md := renderer.ChangesMarkdown(renderer.NewReport(current.On().String(), deltas))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, md)
	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

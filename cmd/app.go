// Package cmd implements the CLI application that monitors active ETF
// holdings.
package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/chiehmin/etfmon"
	"github.com/chiehmin/etfmon/ezmoney"
	"github.com/chiehmin/etfmon/nomura"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "monitor")
	c.Register(&fetchCmd{}, "monitor")
	c.Register(&reportCmd{}, "monitor")
	c.Register(&historyCmd{}, "monitor")
	c.Register(&assistCmd{}, "assist")
}

// as a CLI application, it has a very short lived lifecycle, so it is
// ok to use global variables for the shared flags.

var dataDir = flag.String("data-dir", "etf_data", "Directory holding the dated holdings snapshots and generated reports")
var fundsFlag = flag.String("funds", "00981A", "Comma-separated list of fund codes to monitor")
var indexFile = flag.String("index", "index.html", "Path of the landing page redirecting to the latest report")
var strictRows = flag.Bool("strict", false, "Abort on a malformed snapshot row instead of skipping it with a warning")

// OpenStore returns the snapshot store configured by the shared flags.
func OpenStore() *etfmon.Store {
	store := etfmon.NewStore(*dataDir)
	store.Strict = *strictRows
	return store
}

// Sources resolves each monitored fund to the provider that knows how
// to fetch it.
func Sources() ([]etfmon.Source, error) {
	var sources []etfmon.Source
	for _, fund := range strings.Split(*fundsFlag, ",") {
		fund = strings.TrimSpace(fund)
		if fund == "" {
			continue
		}
		switch {
		case ezmoney.Supports(fund):
			sources = append(sources, etfmon.Source{Fund: fund, Fetcher: ezmoney.New()})
		case nomura.Supports(fund):
			sources = append(sources, etfmon.Source{Fund: fund, Fetcher: nomura.New()})
		default:
			return nil, fmt.Errorf("no provider knows fund %q, please update the provider fund maps", fund)
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no funds to monitor")
	}
	return sources, nil
}

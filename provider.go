package etfmon

import (
	"errors"
	"log"

	"github.com/chiehmin/etfmon/date"
)

// Fetcher is the contract every data-provider adapter implements: given
// a fund identifier, return its holdings table or a defined failure.
// Returning an error is distinct from returning an empty table — a
// failed fund contributes no rows and is reported, an empty fund is a
// valid (if suspicious) observation.
//
// Implementations are free to use any transport or parsing strategy;
// the diff engine never depends on a provider's markup shape.
type Fetcher interface {
	FetchHoldings(fund string) ([]Holding, error)
}

// Source binds a fund identifier to the fetcher that knows how to
// scrape it.
type Source struct {
	Fund    string
	Fetcher Fetcher
}

// BuildSnapshot runs every source sequentially and assembles the
// snapshot for the given date. Every row is tagged with its fund id at
// assembly time, never inferred later.
//
// A failed source is logged and skipped, the run continues with the
// remaining funds; an unparseable response is additionally captured to
// the store's debug area. failed reports the per-fund errors.
func BuildSnapshot(on date.Date, sources []Source, store *Store) (snapshot *Snapshot, failed map[string]error) {
	snapshot = NewSnapshot(on)
	failed = make(map[string]error)

	for _, src := range sources {
		log.Printf("Processing %s...", src.Fund)
		rows, err := src.Fetcher.FetchHoldings(src.Fund)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) && len(perr.Raw) > 0 && store != nil {
				if path, cerr := store.DebugCapture(src.Fund, perr.Raw); cerr != nil {
					log.Printf("warning: %v", cerr)
				} else {
					log.Printf("saved raw response for %s to %s", src.Fund, path)
				}
			}
			log.Printf("error: %v", err)
			failed[src.Fund] = err
			continue
		}
		for i := range rows {
			rows[i].FundID = src.Fund
		}
		snapshot.Append(rows...)
		log.Printf("fetched %d constituents for %s", len(rows), src.Fund)
	}
	return snapshot, failed
}

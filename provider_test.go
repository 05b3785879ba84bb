package etfmon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chiehmin/etfmon/date"
)

// fakeFetcher serves canned rows or a canned error.
type fakeFetcher struct {
	rows []Holding
	err  error
}

func (f *fakeFetcher) FetchHoldings(fund string) ([]Holding, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestBuildSnapshotTagsRows(t *testing.T) {
	sources := []Source{
		{Fund: "00981A", Fetcher: &fakeFetcher{rows: []Holding{
			{SecurityID: "2330", SecurityName: "台積電", Shares: Q(1000), Weight: 9.13},
		}}},
		{Fund: "00980A", Fetcher: &fakeFetcher{rows: []Holding{
			{SecurityID: "2454", SecurityName: "聯發科", Shares: Q(200), Weight: 4.56},
		}}},
	}

	snapshot, failed := BuildSnapshot(date.MustParse("2025-11-27"), sources, nil)
	if len(failed) != 0 {
		t.Fatalf("failed = %v, want none", failed)
	}
	if snapshot.Len() != 2 {
		t.Fatalf("snapshot has %d rows, want 2", snapshot.Len())
	}
	for r := range snapshot.Rows() {
		if r.FundID == "" {
			t.Errorf("row %s left untagged", r.SecurityID)
		}
	}
	if rows := snapshot.FundRows("00980A"); len(rows) != 1 || rows[0].SecurityID != "2454" {
		t.Errorf("FundRows(00980A) = %v", rows)
	}
}

func TestBuildSnapshotContinuesPastFailures(t *testing.T) {
	fetchErr := &FetchError{Fund: "00980A", Cause: errors.New("timeout")}
	sources := []Source{
		{Fund: "00980A", Fetcher: &fakeFetcher{err: fetchErr}},
		{Fund: "00981A", Fetcher: &fakeFetcher{rows: []Holding{
			{SecurityID: "2330", SecurityName: "台積電", Shares: Q(1000), Weight: 9.13},
		}}},
	}

	snapshot, failed := BuildSnapshot(date.MustParse("2025-11-27"), sources, nil)
	if snapshot.Len() != 1 {
		t.Fatalf("snapshot has %d rows, want 1 (healthy fund only)", snapshot.Len())
	}
	if !errors.Is(failed["00980A"], fetchErr) {
		t.Errorf("failed[00980A] = %v, want the fetch error", failed["00980A"])
	}
}

func TestBuildSnapshotCapturesUnparseableResponses(t *testing.T) {
	store := NewStore(t.TempDir())
	raw := []byte("<html>layout changed</html>")
	sources := []Source{
		{Fund: "00981A", Fetcher: &fakeFetcher{err: &ParseError{
			Fund: "00981A", Cause: errors.New("no DataAsset div"), Raw: raw,
		}}},
	}

	snapshot, failed := BuildSnapshot(date.MustParse("2025-11-27"), sources, store)
	if snapshot.Len() != 0 {
		t.Fatalf("snapshot has %d rows, want 0", snapshot.Len())
	}
	if _, ok := failed["00981A"]; !ok {
		t.Fatal("parse failure not reported in failed map")
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatal(err)
	}
	var captured bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "debug_00981A_") && strings.HasSuffix(e.Name(), ".html") {
			captured = true
			body, err := os.ReadFile(filepath.Join(store.Dir(), e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			if string(body) != string(raw) {
				t.Errorf("capture content = %q, want raw response", body)
			}
		}
	}
	if !captured {
		t.Error("unparseable response was not captured for debugging")
	}
}

func TestSnapshotFundsFirstAppearanceOrder(t *testing.T) {
	s := snap("2025-11-27",
		row("00981A", "A", "Alpha", 1, 1),
		row("00980A", "B", "Beta", 1, 1),
		row("00981A", "C", "Gamma", 1, 1),
	)
	var funds []string
	for f := range s.Funds() {
		funds = append(funds, f)
	}
	if want := []string{"00981A", "00980A"}; !equalStrings(funds, want) {
		t.Errorf("Funds() = %v, want %v", funds, want)
	}
}

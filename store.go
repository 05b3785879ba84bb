package etfmon

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chiehmin/etfmon/date"
)

const (
	snapshotPrefix = "etf_holdings_"
	snapshotExt    = ".csv"
)

// Store is the append-only collection of dated snapshots on disk, one
// CSV file per calendar date. Ordering comes from the date stamp
// embedded in the file name, never from filesystem metadata, so
// "latest" and "previous" are reproducible.
type Store struct {
	dir string
	// Strict aborts snapshot decoding on the first malformed row
	// instead of skipping it with a warning.
	Strict bool
}

// NewStore returns a store rooted at dir. The directory is created on
// first write.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the store's base directory.
func (s *Store) Dir() string { return s.dir }

// SnapshotPath returns the file path for the snapshot of a given date.
func (s *Store) SnapshotPath(on date.Date) string {
	return filepath.Join(s.dir, snapshotPrefix+on.Stamp()+snapshotExt)
}

// Write persists a snapshot, replacing any snapshot already stored for
// the same date (last write wins). The file is written to a temporary
// name and renamed into place so a concurrent reader never sees a
// partially written snapshot.
func (s *Store) Write(snapshot *Snapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create snapshot directory %q: %w", s.dir, err)
	}
	target := s.SnapshotPath(snapshot.On())

	tmp, err := os.CreateTemp(s.dir, snapshotPrefix+"*.tmp")
	if err != nil {
		return "", fmt.Errorf("cannot create temporary snapshot file: %w", err)
	}
	if err := EncodeSnapshot(tmp, snapshot); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("cannot close temporary snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("cannot move snapshot into place: %w", err)
	}
	return target, nil
}

// Dates lists the capture dates of all stored snapshots, ascending.
func (s *Store) Dates() ([]date.Date, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot list snapshot directory %q: %w", s.dir, err)
	}
	var dates []date.Date
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotExt)
		on, err := date.ParseStamp(stamp)
		if err != nil {
			continue // foreign file, ignore
		}
		dates = append(dates, on)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// Read loads the snapshot captured on a given date.
func (s *Store) Read(on date.Date) (*Snapshot, error) {
	f, err := os.Open(s.SnapshotPath(on))
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot for %s: %w", on, err)
	}
	defer f.Close()
	return DecodeSnapshot(f, on, s.Strict)
}

// Latest returns the most recent snapshot, or ErrInsufficientHistory if
// the store is empty.
func (s *Store) Latest() (*Snapshot, error) {
	dates, err := s.Dates()
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrInsufficientHistory
	}
	return s.Read(dates[len(dates)-1])
}

// LatestTwo returns the two most recent snapshots in ascending date
// order (previous, current), or ErrInsufficientHistory when fewer than
// two snapshots exist.
func (s *Store) LatestTwo() (previous, current *Snapshot, err error) {
	dates, err := s.Dates()
	if err != nil {
		return nil, nil, err
	}
	if len(dates) < 2 {
		return nil, nil, ErrInsufficientHistory
	}
	previous, err = s.Read(dates[len(dates)-2])
	if err != nil {
		return nil, nil, err
	}
	current, err = s.Read(dates[len(dates)-1])
	if err != nil {
		return nil, nil, err
	}
	return previous, current, nil
}

// DebugCapture saves a raw provider response for offline inspection
// when it could not be parsed, and returns the file path.
func (s *Store) DebugCapture(fund string, body []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create snapshot directory %q: %w", s.dir, err)
	}
	name := fmt.Sprintf("debug_%s_%s.html", fund, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("cannot save debug capture for %s: %w", fund, err)
	}
	return path, nil
}

package etfmon

import (
	"iter"

	"github.com/chiehmin/etfmon/date"
)

// Holding represents one security position within one fund on one date.
type Holding struct {
	FundID       string
	SecurityID   string
	SecurityName string
	Shares       Quantity
	Weight       Percent
	Amount       Money
}

// Snapshot is the complete, ordered set of holdings rows captured on
// one date, possibly covering several funds. A snapshot is written once
// and never mutated; later snapshots supersede it without deleting it.
type Snapshot struct {
	on   date.Date
	rows []Holding
}

// NewSnapshot creates an empty snapshot for the given capture date.
func NewSnapshot(on date.Date) *Snapshot {
	return &Snapshot{on: on}
}

// On returns the capture date of the snapshot.
func (s *Snapshot) On() date.Date { return s.on }

// Len returns the number of rows in the snapshot.
func (s *Snapshot) Len() int { return len(s.rows) }

// Append adds rows to the snapshot, preserving source order.
func (s *Snapshot) Append(rows ...Holding) {
	s.rows = append(s.rows, rows...)
}

// Rows returns an iterator over all rows in source order.
func (s *Snapshot) Rows() iter.Seq[Holding] {
	return func(yield func(Holding) bool) {
		for _, r := range s.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Funds returns an iterator over fund ids in order of first appearance.
func (s *Snapshot) Funds() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, r := range s.rows {
			if _, ok := seen[r.FundID]; ok {
				continue
			}
			seen[r.FundID] = struct{}{}
			if !yield(r.FundID) {
				return
			}
		}
	}
}

// FundRows returns the rows belonging to one fund, in source order.
func (s *Snapshot) FundRows(fund string) []Holding {
	var rows []Holding
	for _, r := range s.rows {
		if r.FundID == fund {
			rows = append(rows, r)
		}
	}
	return rows
}

// index builds the security_id -> row mapping for one fund, asserting
// the per-fund uniqueness invariant. ordered preserves source order.
func (s *Snapshot) index(fund string) (byID map[string]Holding, ordered []string, err error) {
	byID = make(map[string]Holding)
	for _, r := range s.rows {
		if r.FundID != fund {
			continue
		}
		if _, dup := byID[r.SecurityID]; dup {
			return nil, nil, &IntegrityError{Fund: fund, Security: r.SecurityID, On: s.on}
		}
		byID[r.SecurityID] = r
		ordered = append(ordered, r.SecurityID)
	}
	return byID, ordered, nil
}

package etfmon

import (
	"slices"
	"strings"
)

// PositionChange describes a security held in both snapshots whose
// weight or share count moved.
type PositionChange struct {
	SecurityID   string
	SecurityName string
	SharesPrev   Quantity
	SharesCurr   Quantity
	SharesDiff   Quantity
	WeightPrev   Percent
	WeightCurr   Percent
	WeightDiff   Percent
}

// Delta is the structured difference between two chronologically
// adjacent snapshots for one fund. The three sets are disjoint by
// security id.
//
// Entered and Exited keep the order the rows had in their source
// snapshot (current and previous respectively); no re-sorting is
// applied. Changed is sorted by weight delta descending, ties broken by
// security id ascending, so the largest weight increase comes first and
// the order is a deterministic total order.
type Delta struct {
	FundID  string
	Entered []Holding // rows present only in current, current-snapshot order
	Exited  []Holding // rows present only in previous, previous-snapshot order
	Changed []PositionChange
}

// IsEmpty reports whether the delta carries no movement at all.
func (d *Delta) IsEmpty() bool {
	return len(d.Entered) == 0 && len(d.Exited) == 0 && len(d.Changed) == 0
}

// Diff compares two snapshots of the same fund universe and returns one
// delta per fund id present in either snapshot. It borrows both
// snapshots read-only.
//
// A common row counts as changed iff its absolute weight delta strictly
// exceeds WeightEpsilon or its share count moved at all: weights carry
// floating-point noise, share counts are whole units where exact
// equality is meaningful.
//
// A duplicate security id within one fund aborts the whole diff with an
// IntegrityError: resolving it silently would make the report lie.
func Diff(previous, current *Snapshot) (map[string]*Delta, error) {
	deltas := make(map[string]*Delta)

	// Union of fund ids, current first, then funds that disappeared.
	var funds []string
	for f := range current.Funds() {
		funds = append(funds, f)
	}
	for f := range previous.Funds() {
		if !slices.Contains(funds, f) {
			funds = append(funds, f)
		}
	}

	for _, fund := range funds {
		prevByID, _, err := previous.index(fund)
		if err != nil {
			return nil, err
		}
		currByID, currOrder, err := current.index(fund)
		if err != nil {
			return nil, err
		}

		delta := &Delta{FundID: fund}

		// Entered: in current, not in previous, current order.
		for _, id := range currOrder {
			if _, ok := prevByID[id]; !ok {
				delta.Entered = append(delta.Entered, currByID[id])
			}
		}

		// Exited: in previous, not in current, previous order.
		for _, row := range previous.FundRows(fund) {
			if _, ok := currByID[row.SecurityID]; !ok {
				delta.Exited = append(delta.Exited, row)
			}
		}

		// Changed: common ids whose weight or shares moved.
		for _, id := range currOrder {
			prev, ok := prevByID[id]
			if !ok {
				continue
			}
			curr := currByID[id]
			change := PositionChange{
				SecurityID:   id,
				SecurityName: curr.SecurityName,
				SharesPrev:   prev.Shares,
				SharesCurr:   curr.Shares,
				SharesDiff:   curr.Shares.Sub(prev.Shares),
				WeightPrev:   prev.Weight,
				WeightCurr:   curr.Weight,
				WeightDiff:   curr.Weight - prev.Weight,
			}
			if change.WeightDiff.Significant() || !change.SharesDiff.IsZero() {
				delta.Changed = append(delta.Changed, change)
			}
		}
		slices.SortStableFunc(delta.Changed, func(a, b PositionChange) int {
			if a.WeightDiff > b.WeightDiff {
				return -1
			}
			if a.WeightDiff < b.WeightDiff {
				return 1
			}
			return strings.Compare(a.SecurityID, b.SecurityID)
		})

		deltas[fund] = delta
	}
	return deltas, nil
}

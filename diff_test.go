package etfmon

import (
	"errors"
	"testing"

	"github.com/chiehmin/etfmon/date"
)

func snap(on string, rows ...Holding) *Snapshot {
	s := NewSnapshot(date.MustParse(on))
	s.Append(rows...)
	return s
}

func row(fund, id, name string, shares int, weight float64) Holding {
	return Holding{
		FundID:       fund,
		SecurityID:   id,
		SecurityName: name,
		Shares:       Q(shares),
		Weight:       Percent(weight),
		Amount:       M(0, DefaultCurrency),
	}
}

func ids(rows []Holding) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.SecurityID)
	}
	return out
}

func changedIDs(changes []PositionChange) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.SecurityID)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiff_SelfIsEmpty(t *testing.T) {
	s := snap("2025-11-27",
		row("00981A", "2330", "台積電", 1000, 9.13),
		row("00981A", "2317", "鴻海", 500, 3.21),
		row("00980A", "2454", "聯發科", 200, 4.56),
	)
	deltas, err := Diff(s, s)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if len(deltas) != 2 {
		t.Fatalf("Diff() returned %d funds, want 2", len(deltas))
	}
	for fund, d := range deltas {
		if !d.IsEmpty() {
			t.Errorf("fund %s: diff against self not empty: %+v", fund, d)
		}
	}
}

func TestDiff_EnteredOnly(t *testing.T) {
	// prev = {A: 1000 @5.00}, curr = {A unchanged, B new}.
	prev := snap("2025-11-26", row("00981A", "A", "Alpha", 1000, 5.00))
	curr := snap("2025-11-27",
		row("00981A", "A", "Alpha", 1000, 5.00),
		row("00981A", "B", "Beta", 500, 2.00),
	)
	deltas, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	d := deltas["00981A"]
	if got, want := ids(d.Entered), []string{"B"}; !equalStrings(got, want) {
		t.Errorf("Entered = %v, want %v", got, want)
	}
	if len(d.Exited) != 0 {
		t.Errorf("Exited = %v, want empty", ids(d.Exited))
	}
	if len(d.Changed) != 0 {
		t.Errorf("Changed = %v, want empty", changedIDs(d.Changed))
	}
}

func TestDiff_FundDropped(t *testing.T) {
	// Fund present only in previous: the mirror case, everything exits.
	prev := snap("2025-11-26", row("00981A", "A", "Alpha", 1000, 5.00))
	curr := snap("2025-11-27")

	deltas, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	d, ok := deltas["00981A"]
	if !ok {
		t.Fatal("dropped fund missing from diff output")
	}
	if len(d.Entered) != 0 {
		t.Errorf("Entered = %v, want empty", ids(d.Entered))
	}
	if got, want := ids(d.Exited), []string{"A"}; !equalStrings(got, want) {
		t.Errorf("Exited = %v, want %v", got, want)
	}
	if len(d.Changed) != 0 {
		t.Errorf("Changed = %v, want empty", changedIDs(d.Changed))
	}
}

func TestDiff_NewlyMonitoredFund(t *testing.T) {
	prev := snap("2025-11-26")
	curr := snap("2025-11-27",
		row("00981A", "A", "Alpha", 1000, 5.00),
		row("00981A", "B", "Beta", 500, 2.00),
	)
	deltas, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	d := deltas["00981A"]
	if got, want := ids(d.Entered), []string{"A", "B"}; !equalStrings(got, want) {
		t.Errorf("Entered = %v, want %v", got, want)
	}
	if len(d.Exited) != 0 || len(d.Changed) != 0 {
		t.Errorf("Exited/Changed not empty: %v %v", ids(d.Exited), changedIDs(d.Changed))
	}
}

func TestDiff_SharesDominate(t *testing.T) {
	// Nonzero share movement is a change even with identical weight.
	prev := snap("2025-11-26", row("00981A", "A", "Alpha", 1000, 5.00))
	curr := snap("2025-11-27", row("00981A", "A", "Alpha", 1200, 5.00))

	deltas, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	d := deltas["00981A"]
	if got, want := changedIDs(d.Changed), []string{"A"}; !equalStrings(got, want) {
		t.Fatalf("Changed = %v, want %v", got, want)
	}
	c := d.Changed[0]
	if !c.SharesDiff.Equal(Q(200)) {
		t.Errorf("SharesDiff = %v, want +200", c.SharesDiff)
	}
	if c.WeightDiff.Significant() {
		t.Errorf("WeightDiff = %v, want insignificant", c.WeightDiff)
	}
}

func TestDiff_WeightEpsilonBoundary(t *testing.T) {
	tests := []struct {
		name       string
		weightCurr float64
		changed    bool
	}{
		{name: "below epsilon", weightCurr: 5.0009, changed: false},
		{name: "exactly epsilon", weightCurr: 5.001, changed: false}, // strict >
		{name: "above epsilon", weightCurr: 5.0011, changed: true},
		{name: "negative above epsilon", weightCurr: 4.9989, changed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := snap("2025-11-26", row("00981A", "A", "Alpha", 1000, 5.0))
			curr := snap("2025-11-27", row("00981A", "A", "Alpha", 1000, tt.weightCurr))
			deltas, err := Diff(prev, curr)
			if err != nil {
				t.Fatalf("Diff() error = %v", err)
			}
			got := len(deltas["00981A"].Changed) == 1
			if got != tt.changed {
				t.Errorf("weight %v -> changed = %v, want %v", tt.weightCurr, got, tt.changed)
			}
		})
	}
}

func TestDiff_ChangedOrder(t *testing.T) {
	prev := snap("2025-11-26",
		row("00981A", "C", "Gamma", 100, 1.00),
		row("00981A", "A", "Alpha", 100, 1.00),
		row("00981A", "B", "Beta", 100, 1.00),
		row("00981A", "D", "Delta", 100, 1.00),
	)
	curr := snap("2025-11-27",
		row("00981A", "C", "Gamma", 100, 1.50), // +0.50
		row("00981A", "A", "Alpha", 100, 0.80), // -0.20
		row("00981A", "B", "Beta", 100, 0.80),  // -0.20, ties with A
		row("00981A", "D", "Delta", 100, 3.00), // +2.00
	)

	deltas, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	// Largest weight increase first, ties by security id ascending.
	want := []string{"D", "C", "A", "B"}
	if got := changedIDs(deltas["00981A"].Changed); !equalStrings(got, want) {
		t.Errorf("Changed order = %v, want %v", got, want)
	}

	// The order must not depend on input row order.
	shuffled := snap("2025-11-27",
		row("00981A", "B", "Beta", 100, 0.80),
		row("00981A", "D", "Delta", 100, 3.00),
		row("00981A", "A", "Alpha", 100, 0.80),
		row("00981A", "C", "Gamma", 100, 1.50),
	)
	deltas2, err := Diff(prev, shuffled)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if got := changedIDs(deltas2["00981A"].Changed); !equalStrings(got, want) {
		t.Errorf("Changed order after reordering input = %v, want %v", got, want)
	}
}

func TestDiff_EnteredExitedKeepSourceOrder(t *testing.T) {
	prev := snap("2025-11-26",
		row("00981A", "X", "Exit2", 10, 0.10),
		row("00981A", "A", "Keep", 10, 0.10),
		row("00981A", "W", "Exit1", 10, 0.10),
	)
	curr := snap("2025-11-27",
		row("00981A", "Z", "New2", 10, 0.10),
		row("00981A", "A", "Keep", 10, 0.10),
		row("00981A", "Y", "New1", 10, 0.10),
	)
	deltas, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	d := deltas["00981A"]
	if got, want := ids(d.Entered), []string{"Z", "Y"}; !equalStrings(got, want) {
		t.Errorf("Entered = %v, want source order %v", got, want)
	}
	if got, want := ids(d.Exited), []string{"X", "W"}; !equalStrings(got, want) {
		t.Errorf("Exited = %v, want source order %v", got, want)
	}
}

func TestDiff_SetsAreDisjointAndCover(t *testing.T) {
	prev := snap("2025-11-26",
		row("00981A", "A", "Alpha", 100, 1.00),
		row("00981A", "B", "Beta", 100, 1.00),
		row("00981A", "C", "Gamma", 100, 1.00),
	)
	curr := snap("2025-11-27",
		row("00981A", "B", "Beta", 200, 1.00),
		row("00981A", "C", "Gamma", 100, 1.00),
		row("00981A", "D", "Delta", 100, 1.00),
	)
	deltas, err := Diff(prev, curr)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	d := deltas["00981A"]

	seen := make(map[string]int)
	for _, id := range ids(d.Entered) {
		seen[id]++
	}
	for _, id := range ids(d.Exited) {
		seen[id]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("security %s appears in both Entered and Exited", id)
		}
	}

	// Entered ∪ Exited ∪ Common covers exactly keys(prev) ∪ keys(curr).
	universe := map[string]bool{"A": true, "B": true, "C": true, "D": true}
	covered := map[string]bool{"D": false, "A": false, "B": false, "C": false}
	for _, id := range ids(d.Entered) {
		covered[id] = true
	}
	for _, id := range ids(d.Exited) {
		covered[id] = true
	}
	covered["B"] = true // common
	covered["C"] = true // common
	for id := range universe {
		if !covered[id] {
			t.Errorf("security %s not covered by the partition", id)
		}
	}
}

func TestDiff_DuplicateSecurityID(t *testing.T) {
	prev := snap("2025-11-26", row("00981A", "A", "Alpha", 100, 1.00))
	curr := snap("2025-11-27",
		row("00981A", "A", "Alpha", 100, 1.00),
		row("00981A", "A", "Alpha again", 200, 2.00),
	)
	_, err := Diff(prev, curr)
	if err == nil {
		t.Fatal("Diff() with duplicate security id should fail")
	}
	var ierr *IntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("error = %T, want *IntegrityError", err)
	}
	if ierr.Fund != "00981A" || ierr.Security != "A" {
		t.Errorf("IntegrityError = %+v, want fund 00981A security A", ierr)
	}
}

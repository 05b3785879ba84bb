package etfmon

import (
	"fmt"
	"strconv"
)

// Percent represents a weight as percentage points of fund net assets
// (5.0 means 5%).
type Percent float64

// WeightEpsilon is the tolerance below which a weight movement is
// treated as floating-point noise. The comparison is strict: a delta of
// exactly WeightEpsilon does not count as a change.
const WeightEpsilon Percent = 0.001

// ParsePercent parses a weight from its string form.
func ParsePercent(str string) (Percent, error) {
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q: %w", str, err)
	}
	return Percent(v), nil
}

// Abs returns the absolute value of p.
func (p Percent) Abs() Percent {
	if p < 0 {
		return -p
	}
	return p
}

// Significant reports whether the delta p exceeds WeightEpsilon.
func (p Percent) Significant() bool { return p.Abs() > WeightEpsilon }

// Text returns the plain decimal form, the one persisted in snapshots.
func (p Percent) Text() string { return strconv.FormatFloat(float64(p), 'f', -1, 64) }

// String formats the percent for display.
func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// SignedString formats the percent with an explicit sign, or "-" for a
// value that rounds to zero.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

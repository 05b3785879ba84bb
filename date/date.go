// Package date provides a day-granularity Date used to tag holdings
// snapshots and to build sortable artifact names.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the ISO-8601 format used to represent dates as strings.
const Format = "2006-01-02"

// StampFormat is the compact form embedded in artifact file names
// (etf_holdings_YYYYMMDD.csv, report_YYYYMMDD.html). It sorts
// lexicographically in chronological order.
const StampFormat = "20060102"

// permissive read format, accepts 2025-7-1 as well as 2025-07-01.
const readFormat = "2006-1-2"

// Date represents a calendar date with no finer granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// time returns the canonical time.Time for that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(Format) }

// Stamp formats the date in the compact YYYYMMDD form.
func (d Date) Stamp() string { return d.time().Format(StampFormat) }

// Parse parses a Date from an ISO-8601 string. It is lenient about
// leading zeroes.
func Parse(str string) (Date, error) {
	on, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// ParseStamp parses a Date from its compact YYYYMMDD form.
func ParseStamp(str string) (Date, error) {
	on, err := time.Parse(StampFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date stamp %q want format %q: %w", str, StampFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error. For tests and literals.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON implements json.Marshaler using the ISO string form.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// UnmarshalJSON implements json.Unmarshaler from the ISO string form.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

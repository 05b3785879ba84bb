package etfmon

import (
	"errors"
	"fmt"

	"github.com/chiehmin/etfmon/date"
)

// ErrInsufficientHistory is returned by the snapshot store when fewer
// than two snapshots exist. The diff/report phase must be skipped, not
// treated as an empty-diff success.
var ErrInsufficientHistory = errors.New("insufficient history: need at least two snapshots to compare")

// FetchError reports a failed holdings fetch (network, timeout, HTTP
// status). The fund is skipped for the run; no retry.
type FetchError struct {
	Fund  string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching holdings for %s: %v", e.Fund, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// ParseError reports an unexpected page or payload shape. Raw holds the
// response body so the store can capture it for offline inspection.
type ParseError struct {
	Fund  string
	Cause error
	Raw   []byte
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing holdings for %s: %v", e.Fund, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// MalformedRowError reports a holdings row with a non-numeric field. In
// lenient mode the row is skipped with a warning; in strict mode the
// decode aborts.
type MalformedRowError struct {
	Fund     string
	Security string
	Field    string
	Cause    error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row fund=%s security=%s field=%s: %v", e.Fund, e.Security, e.Field, e.Cause)
}

func (e *MalformedRowError) Unwrap() error { return e.Cause }

// IntegrityError reports a duplicate security id within one fund on one
// date. It breaks the uniqueness invariant the diff engine depends on,
// so it is surfaced, never silently resolved.
type IntegrityError struct {
	Fund     string
	Security string
	On       date.Date
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("duplicate security %s in fund %s on %s", e.Security, e.Fund, e.On)
}

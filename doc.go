// Package etfmon monitors the constituent holdings of actively-managed
// ETFs. It fetches holdings tables from fund-provider pages, persists
// one dated snapshot per day, diffs the newest snapshot against the
// previous one, and feeds the resulting deltas to the report renderer.
package etfmon

package etfmon

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"github.com/chiehmin/etfmon/date"
)

// This file contains the snapshot persistence format: a UTF-8 CSV with
// a header row, one file per capture date. The ETF column is mandatory,
// rows are always tagged with their fund id at write time so a file can
// hold several funds without ambiguity.

var csvHeader = []string{"stock_id", "stock_name", "shares", "weight", "amount", "ETF"}

// EncodeSnapshot writes the snapshot rows to w in the CSV format,
// preserving row order.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write snapshot header: %w", err)
	}
	for row := range s.Rows() {
		if row.FundID == "" {
			return fmt.Errorf("cannot write snapshot for %s: row %s has no fund id", s.On(), row.SecurityID)
		}
		record := []string{
			row.SecurityID,
			row.SecurityName,
			row.Shares.String(),
			row.Weight.Text(),
			row.Amount.Text(),
			row.FundID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write snapshot row %s: %w", row.SecurityID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSnapshot reads a snapshot in the CSV format, tagged with its
// capture date. A row with a non-numeric shares, weight or amount field
// yields a MalformedRowError; by default the row is skipped with a
// warning so one bad row does not block the whole report, in strict
// mode the decode aborts instead.
func DecodeSnapshot(r io.Reader, on date.Date, strict bool) (*Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot header: %w", err)
	}
	if len(header) != len(csvHeader) || header[0] != csvHeader[0] {
		return nil, fmt.Errorf("unexpected snapshot header %v", header)
	}

	snapshot := NewSnapshot(on)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read snapshot row: %w", err)
		}
		row, err := decodeRow(record)
		if err != nil {
			if strict {
				return nil, err
			}
			log.Printf("warning: skipping %v", err)
			continue
		}
		snapshot.Append(row)
	}
	return snapshot, nil
}

func decodeRow(record []string) (Holding, error) {
	fund, id := record[5], record[0]
	malformed := func(field string, cause error) (Holding, error) {
		return Holding{}, &MalformedRowError{Fund: fund, Security: id, Field: field, Cause: cause}
	}

	shares, err := ParseQuantity(record[2])
	if err != nil {
		return malformed("shares", err)
	}
	weight, err := ParsePercent(record[3])
	if err != nil {
		return malformed("weight", err)
	}
	amount, err := ParseMoney(record[4], DefaultCurrency)
	if err != nil {
		return malformed("amount", err)
	}
	return Holding{
		FundID:       fund,
		SecurityID:   id,
		SecurityName: record[1],
		Shares:       shares,
		Weight:       weight,
		Amount:       amount,
	}, nil
}

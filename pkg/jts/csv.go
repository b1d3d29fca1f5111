package jts

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// TableFromCSV builds a table from delimited text. The first cell of each
// row is the record timestamp; the remaining cells map to columns 0..n in
// order. Cells are sniffed number first, then timestamp, then kept as
// text. Empty cells are skipped, as are rows whose timestamp does not
// parse. A cell whose sniffed type conflicts with the column's recorded
// type abandons the rest of its row.
func TableFromCSV(r io.Reader) (*Table[string], error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	t := NewTable[string]()
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		ts, err := parseTimestamp(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		for i, cell := range row[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			field, err := NewField(sniffValue(cell))
			if err != nil {
				continue
			}
			if err := t.Put(ts, i, field); err != nil {
				break
			}
		}
	}
	return t, nil
}

func sniffValue(cell string) any {
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return n
	}
	if ts, err := parseTimestamp(cell); err == nil {
		return ts
	}
	return cell
}

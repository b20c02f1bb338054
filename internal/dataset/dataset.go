// Package dataset loads literature-review records from delimited text.
//
// A Dataset is parsed once and treated as read-only afterwards; every
// downstream component (facets, filters, rendering) works from it without
// mutating it.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Well-known columns the viewer refers to by name.
const (
	ColumnPaperID  = "Paper ID"
	ColumnCitation = "Citation"
	ColumnSource   = "Source"
	ColumnYear     = "Year"
	ColumnDownload = "Download"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Record maps column name to cell value. A column absent from the map is a
// missing value.
type Record map[string]string

// Get returns the value for column, or "" when missing.
func (r Record) Get(column string) string {
	return r[column]
}

// Dataset is the ordered set of records plus the header column order.
type Dataset struct {
	Columns []string
	Records []Record
}

// Empty returns a dataset with no columns and no records.
func Empty() *Dataset {
	return &Dataset{}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// HasColumn reports whether the header declares column.
func (d *Dataset) HasColumn(column string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// ParseOptions controls delimited-text parsing.
type ParseOptions struct {
	Delimiter rune // 0 means ','
}

// Parse reads comma-separated text. See ParseWith.
func Parse(r io.Reader) (*Dataset, error) {
	return ParseWith(r, ParseOptions{})
}

// ParseWith reads delimited text whose first row names the columns.
// Rows shorter than the header leave the trailing columns missing; fields
// beyond the header are ignored.
func ParseWith(r io.Reader, opts ParseOptions) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	ds := &Dataset{Columns: columns}
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", len(ds.Records)+2, err)
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			if i >= len(fields) {
				break
			}
			rec[col] = fields[i]
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

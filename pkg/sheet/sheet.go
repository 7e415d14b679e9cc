// Package sheet reads spreadsheet exports row by row. Headers are renamed to
// canonical field names, either through a Mapping or by lower-casing them and
// replacing blanks with underscores.
package sheet

import (
	"errors"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/oops"
)

// Reader iterates over the rows of one sheet and returns io.EOF after the last one.
type Reader interface {
	Next() (Row, error)
}

// Row is one data row keyed by canonical field name.
type Row struct {
	Number int // 1-based, excluding the header row
	fields map[string]string
}

func NewRow(number int, fields map[string]string) Row {
	return Row{Number: number, fields: fields}
}

// Get returns the trimmed value of a field, or "" when the sheet has no such column.
func (r Row) Get(field string) string {
	return strings.TrimSpace(r.fields[field])
}

func (r Row) Lookup(field string) (string, bool) {
	v, ok := r.fields[field]
	return strings.TrimSpace(v), ok
}

func (r Row) blank() bool {
	for _, v := range r.fields {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type CSVReader struct {
	reader gocsv.CSVReader
	fields []string
	rows   int
}

// NewCSVReader reads the header row of a CSV export. An empty input yields a
// reader without rows.
func NewCSVReader(r io.Reader, mapping Mapping) (*CSVReader, error) {
	reader := gocsv.LazyCSVReader(r)

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &CSVReader{reader: reader}, nil
	} else if err != nil {
		return nil, oops.Wrapf(err, "failed to read the header row")
	}

	fields := make([]string, len(headers))
	for i, h := range headers {
		fields[i] = mapping.Field(h)
	}
	return &CSVReader{
		reader: reader,
		fields: fields,
	}, nil
}

// Fields returns the canonical field names in column order.
func (r *CSVReader) Fields() []string {
	return r.fields
}

func (r *CSVReader) Next() (Row, error) {
	for {
		if r.fields == nil {
			return Row{}, io.EOF
		}
		record, err := r.reader.Read()
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		} else if err != nil {
			return Row{}, oops.With("row", r.rows+1).Wrapf(err, "csv read error")
		}
		r.rows++

		fields := make(map[string]string, len(r.fields))
		for i, name := range r.fields {
			if i < len(record) {
				fields[name] = record[i]
			}
		}
		row := NewRow(r.rows, fields)
		if row.blank() {
			continue
		}
		return row, nil
	}
}

// Package ingest parses uploaded CSV files into column headers and row
// data ready for the store.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"csv-manager/internal/model"
	"csv-manager/pkg/utils"
)

// ParsedCSV is the cleaned result of parsing one CSV upload.
type ParsedCSV struct {
	Columns []string
	Rows    []model.RowData
}

// Parse reads a CSV with a header row. Headers are trimmed and
// de-quoted; columns with empty names are dropped entirely, and fully
// empty lines are skipped. Cell values are kept as strings — typing is
// inferred later, per request, never at upload time.
func Parse(r io.Reader) (*ParsedCSV, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header", model.ErrInvalidInput)
	}

	// columns keeps the original field position of each valid header
	type columnRef struct {
		name string
		pos  int
	}
	var columns []columnRef
	for i, h := range headers {
		name := utils.CleanHeader(h)
		if name == "" {
			continue
		}
		columns = append(columns, columnRef{name: name, pos: i})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: CSV has no named columns", model.ErrInvalidInput)
	}

	var rows []model.RowData
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		if isEmptyRecord(record) {
			continue
		}
		data := make(model.RowData, len(columns))
		for _, col := range columns {
			if col.pos < len(record) {
				data[col.name] = model.StringValue(record[col.pos])
			}
		}
		rows = append(rows, data)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: CSV file is empty or invalid", model.ErrInvalidInput)
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.name
	}
	return &ParsedCSV{Columns: names, Rows: rows}, nil
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}
	return true
}

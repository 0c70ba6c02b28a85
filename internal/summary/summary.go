// Package summary infers per-column types and computes descriptive
// statistics over a bounded row sample.
package summary

import (
	"time"

	"csv-manager/internal/model"
)

// ColumnType is the coarse inferred type of a column.
type ColumnType string

const (
	TypeNumber ColumnType = "number"
	TypeDate   ColumnType = "date"
	TypeString ColumnType = "string"
)

// ColumnStats holds the statistics for one column. Mean/Min/Max are set
// for numeric columns only; UniqueValues only for textual columns with
// 1 < UniqueCount < 20 (capped at 10 samples, first-seen order).
type ColumnStats struct {
	Count        int        `json:"count"`
	Type         ColumnType `json:"dataType"`
	Mean         *float64   `json:"mean,omitempty"`
	Min          *float64   `json:"min,omitempty"`
	Max          *float64   `json:"max,omitempty"`
	UniqueCount  int        `json:"uniqueCount,omitempty"`
	UniqueValues []string   `json:"uniqueValues,omitempty"`
}

// dateLayouts are the calendar formats accepted as date-like. The
// original relied on the host Date parser; an explicit list keeps
// inference deterministic.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
}

// Summarize computes ColumnStats for each listed column over the given
// sample. It is pure: no I/O, no mutation of rows, identical input
// yields identical output.
//
// The sample is expected to be bounded (the callers cap it at 100
// rows), so every statistic is a sample estimate, not dataset-exact.
func Summarize(rows []model.Row, columns []string) map[string]ColumnStats {
	stats := make(map[string]ColumnStats, len(columns))
	for _, col := range columns {
		stats[col] = summarizeColumn(rows, col)
	}
	return stats
}

func summarizeColumn(rows []model.Row, column string) ColumnStats {
	values := make([]model.Value, 0, len(rows))
	for _, row := range rows {
		v, ok := row.Data[column]
		if !ok || v.IsEmpty() {
			continue
		}
		values = append(values, v)
	}

	cs := ColumnStats{Count: len(values)}

	// first full match wins: numeric, then date-like, then textual
	if nums, ok := allNumeric(values); ok && len(values) > 0 {
		cs.Type = TypeNumber
		var sum float64
		min, max := nums[0], nums[0]
		for _, n := range nums {
			sum += n
			if n < min {
				min = n
			}
			if n > max {
				max = n
			}
		}
		mean := sum / float64(len(nums))
		cs.Mean, cs.Min, cs.Max = &mean, &min, &max
		return cs
	}

	if allDates(values) && len(values) > 0 {
		cs.Type = TypeDate
		return cs
	}

	cs.Type = TypeString
	seen := make(map[string]struct{}, len(values))
	var order []string
	for _, v := range values {
		s := v.String()
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			order = append(order, s)
		}
	}
	cs.UniqueCount = len(seen)
	if cs.UniqueCount > 1 && cs.UniqueCount < 20 {
		limit := len(order)
		if limit > 10 {
			limit = 10
		}
		cs.UniqueValues = order[:limit]
	}
	return cs
}

func allNumeric(values []model.Value) ([]float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		n, ok := v.AsNumber()
		if !ok {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}

func allDates(values []model.Value) bool {
	for _, v := range values {
		if !parsesAsDate(v.String()) {
			return false
		}
	}
	return true
}

func parsesAsDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

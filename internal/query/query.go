// Package query implements the in-memory row query pipeline: substring
// filtering, stable sorting and pagination over rows fetched from the
// store in insertion order.
package query

import (
	"fmt"
	"sort"
	"strings"

	"csv-manager/internal/model"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Params describes one row query. Filters maps column name to a
// substring pattern; empty patterns are ignored. An unknown SortColumn
// is tolerated: every row then counts as missing the column and keeps
// its original order.
type Params struct {
	Page          int
	PageSize      int
	SortColumn    string
	SortDirection Direction
	Filters       map[string]string
}

// Options resolve the behaviors that diverged between versions of the
// original endpoint. Zero value: case-insensitive filtering, string-wise
// sort comparison.
type Options struct {
	// CaseSensitive makes filter substring matching case-sensitive.
	CaseSensitive bool
	// NumericCompare compares sort keys numerically when both values
	// parse as numbers, instead of always string-wise.
	NumericCompare bool
}

// Result is one page of rows plus the filtered (pre-pagination) total.
type Result struct {
	Rows  []model.Row `json:"rows"`
	Total int         `json:"total"`
}

// Run applies filters, sorting and pagination to rows. It never mutates
// its input and performs no I/O; fetching rows under the caller's access
// predicate happens before this point.
func Run(rows []model.Row, p Params, opts Options) (Result, error) {
	if p.Page < 1 || p.PageSize < 1 {
		return Result{}, fmt.Errorf("%w: page and pageSize must be >= 1", model.ErrInvalidInput)
	}
	dir := p.SortDirection
	if dir == "" {
		dir = Asc
	}
	if dir != Asc && dir != Desc {
		return Result{}, fmt.Errorf("%w: sortDirection must be asc or desc", model.ErrInvalidInput)
	}

	filtered := applyFilters(rows, p.Filters, opts)
	if p.SortColumn != "" {
		filtered = sortRows(filtered, p.SortColumn, dir, opts)
	}

	total := len(filtered)
	start := (p.Page - 1) * p.PageSize
	end := start + p.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{Rows: filtered[start:end], Total: total}, nil
}

// applyFilters retains rows whose value at every active filter column is
// non-null and contains the pattern.
func applyFilters(rows []model.Row, filters map[string]string, opts Options) []model.Row {
	active := make(map[string]string, len(filters))
	for col, pattern := range filters {
		if pattern != "" {
			active[col] = pattern
		}
	}
	if len(active) == 0 {
		return append([]model.Row(nil), rows...)
	}

	out := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, active, opts) {
			out = append(out, row)
		}
	}
	return out
}

func matchesAll(row model.Row, filters map[string]string, opts Options) bool {
	for col, pattern := range filters {
		val, ok := row.Data[col]
		if !ok || val.IsNull() {
			return false
		}
		haystack := val.String()
		if !opts.CaseSensitive {
			haystack = strings.ToLower(haystack)
			pattern = strings.ToLower(pattern)
		}
		if !strings.Contains(haystack, pattern) {
			return false
		}
	}
	return true
}

// sortRows stable-sorts by the given column. Rows with a null or absent
// value sort after rows that have one, regardless of direction.
func sortRows(rows []model.Row, column string, dir Direction, opts Options) []model.Row {
	sorted := append([]model.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		av, aOK := sorted[i].Data[column]
		bv, bOK := sorted[j].Data[column]
		aNull := !aOK || av.IsNull()
		bNull := !bOK || bv.IsNull()
		if aNull || bNull {
			// nulls last in both directions
			return !aNull && bNull
		}
		c := compareValues(av, bv, opts)
		if c == 0 {
			return false
		}
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

func compareValues(a, b model.Value, opts Options) int {
	if opts.NumericCompare {
		if an, aOK := a.AsNumber(); aOK {
			if bn, bOK := b.AsNumber(); bOK {
				switch {
				case an < bn:
					return -1
				case an > bn:
					return 1
				default:
					return 0
				}
			}
		}
	}
	return strings.Compare(a.String(), b.String())
}

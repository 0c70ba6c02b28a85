// Package chart turns raw column values into chart-ready aggregate
// series: histogram bins, sorted value curves and category counts.
package chart

import (
	"fmt"
	"math"
	"sort"

	"csv-manager/internal/model"
	"csv-manager/internal/summary"
)

// Kind is a chart kind selectable for a column.
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
	KindPie  Kind = "pie"
)

// Point is one aggregate point of a chart series. Label carries the bin
// range or category name, Index the rank for line charts, Count the
// frequency, Value the bin mean or the plotted value.
type Point struct {
	Label string  `json:"label,omitempty"`
	Index int     `json:"index"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// AvailableKinds lists the chart kinds usable for a column, in default
// priority order. Numeric columns chart as histogram or line; textual
// columns with more than one distinct value chart as bars, plus pie
// below 15 distinct values. Date-like and single-valued textual columns
// have no chart.
func AvailableKinds(stats summary.ColumnStats) []Kind {
	switch stats.Type {
	case summary.TypeNumber:
		return []Kind{KindBar, KindLine}
	case summary.TypeString:
		if stats.UniqueCount > 1 {
			kinds := []Kind{KindBar}
			if stats.UniqueCount < 15 {
				kinds = append(kinds, KindPie)
			}
			return kinds
		}
	}
	return nil
}

// Reselect keeps the current kind when still available, otherwise falls
// back to the first available kind. ok is false when the column has no
// chartable representation at all.
func Reselect(current Kind, available []Kind) (Kind, bool) {
	if len(available) == 0 {
		return "", false
	}
	for _, k := range available {
		if k == current {
			return k, true
		}
	}
	return available[0], true
}

// Build derives the series for one column and chart kind. A nil result
// means "no chart data" (empty column or kind unavailable for the
// column's type), which callers present distinctly from "no column
// selected".
func Build(rows []model.Row, column string, stats summary.ColumnStats, kind Kind) []Point {
	switch stats.Type {
	case summary.TypeNumber:
		nums := numericValues(rows, column)
		if len(nums) == 0 {
			return nil
		}
		switch kind {
		case KindBar:
			return histogram(nums)
		case KindLine:
			return sortedLine(nums)
		}
	case summary.TypeString:
		counts, order := categoryCounts(rows, column)
		if len(order) == 0 {
			return nil
		}
		switch kind {
		case KindBar:
			return categorySeries(counts, order, 20)
		case KindPie:
			return categorySeries(counts, order, 0)
		}
	}
	return nil
}

// histogram bins values into clamp(ceil(sqrt(N)),5,10) equal-width bins.
// The maximum value is absorbed into the last bin; each bin reports its
// count and the mean of the values that fell into it.
func histogram(nums []float64) []Point {
	min, max := nums[0], nums[0]
	for _, n := range nums {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	binCount := int(math.Ceil(math.Sqrt(float64(len(nums)))))
	if binCount < 5 {
		binCount = 5
	}
	if binCount > 10 {
		binCount = 10
	}
	width := (max - min) / float64(binCount)
	if width == 0 {
		// all values equal: everything lands in one bin
		mean := min
		return []Point{{
			Label: fmt.Sprintf("%.2f - %.2f", min, max),
			Count: len(nums),
			Value: mean,
		}}
	}

	counts := make([]int, binCount)
	sums := make([]float64, binCount)
	for _, n := range nums {
		idx := int(math.Floor((n - min) / width))
		if idx >= binCount {
			idx = binCount - 1
		}
		counts[idx]++
		sums[idx] += n
	}

	points := make([]Point, binCount)
	for i := 0; i < binCount; i++ {
		lo := min + float64(i)*width
		hi := min + float64(i+1)*width
		mean := 0.0
		if counts[i] > 0 {
			mean = sums[i] / float64(counts[i])
		}
		points[i] = Point{
			Label: fmt.Sprintf("%.2f - %.2f", lo, hi),
			Index: i,
			Count: counts[i],
			Value: mean,
		}
	}
	return points
}

// sortedLine plots values ascending against their rank index, a
// distribution curve rather than a time series.
func sortedLine(nums []float64) []Point {
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)
	points := make([]Point, len(sorted))
	for i, n := range sorted {
		points[i] = Point{Index: i, Value: n}
	}
	return points
}

func categorySeries(counts map[string]int, order []string, limit int) []Point {
	labels := append([]string(nil), order...)
	sort.SliceStable(labels, func(i, j int) bool {
		return counts[labels[i]] > counts[labels[j]]
	})
	if limit > 0 && len(labels) > limit {
		labels = labels[:limit]
	}
	points := make([]Point, len(labels))
	for i, label := range labels {
		points[i] = Point{
			Label: label,
			Index: i,
			Count: counts[label],
			Value: float64(counts[label]),
		}
	}
	return points
}

func numericValues(rows []model.Row, column string) []float64 {
	var nums []float64
	for _, row := range rows {
		v, ok := row.Data[column]
		if !ok || v.IsEmpty() {
			continue
		}
		if n, numOK := v.AsNumber(); numOK {
			nums = append(nums, n)
		}
	}
	return nums
}

func categoryCounts(rows []model.Row, column string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		v, ok := row.Data[column]
		if !ok || v.IsEmpty() {
			continue
		}
		s := v.String()
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}
	return counts, order
}

package main

import (
	"fmt"
	"os"

	"csv-manager/internal/chart"
	"csv-manager/internal/ingest"
	"csv-manager/internal/model"
	"csv-manager/internal/summary"
	"csv-manager/pkg/logger"
)

// sampleCap bounds the rows fed into statistics, matching the API.
const sampleCap = 100

func main() {
	log := logger.New()
	if len(os.Args) < 2 {
		log.Fatal("usage: csv-manager <file.csv>")
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("failed to open CSV file")
	}
	defer f.Close()

	parsed, err := ingest.Parse(f)
	if err != nil {
		log.WithError(err).Fatal("failed to parse CSV")
	}

	rows := make([]model.Row, len(parsed.Rows))
	for i, data := range parsed.Rows {
		rows[i] = model.Row{RowIndex: i, Data: data}
	}
	sample := rows
	if len(sample) > sampleCap {
		sample = sample[:sampleCap]
	}

	fmt.Printf("%s: %d rows, %d columns (statistics over first %d rows)\n\n",
		os.Args[1], len(rows), len(parsed.Columns), len(sample))

	stats := summary.Summarize(sample, parsed.Columns)
	for _, col := range parsed.Columns {
		cs := stats[col]
		fmt.Printf("%s\n", col)
		fmt.Printf("  type: %s, count: %d\n", cs.Type, cs.Count)
		if cs.Type == summary.TypeNumber {
			fmt.Printf("  mean: %.2f, min: %v, max: %v\n", *cs.Mean, *cs.Min, *cs.Max)
		}
		if cs.Type == summary.TypeString && cs.UniqueCount > 0 {
			fmt.Printf("  unique values: %d\n", cs.UniqueCount)
			if len(cs.UniqueValues) > 0 {
				fmt.Printf("  samples: %v\n", cs.UniqueValues)
			}
		}
		if kinds := chart.AvailableKinds(cs); len(kinds) > 0 {
			fmt.Printf("  charts: %v (default %s)\n", kinds, kinds[0])
		}
		fmt.Println()
	}
}

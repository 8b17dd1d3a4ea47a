package analyze

import (
	"fmt"

	"github.com/Raliaaaaamadou/model-your-data/pkg/stats"
	"github.com/Raliaaaaamadou/model-your-data/pkg/table"
)

var summaryHeader = []string{
	"column", "type", "count", "missing",
	"mean", "std", "min", "25%", "50%", "75%", "max",
	"unique", "top", "freq",
}

// runSummary computes a descriptive-statistics table over every column:
// count/mean/std/min/quartiles/max for numeric columns, count/unique/
// most-frequent for the rest. Cells that do not apply stay blank. It never
// fails on a structurally valid table.
func runSummary(t *table.Table) (*Result, error) {
	numeric := table.NumericColumns(t)
	isNumeric := make(map[string]bool, len(numeric))
	for _, n := range numeric {
		isNumeric[n] = true
	}

	rows := make([][]string, 0, t.ColumnCount())
	for _, name := range t.Names {
		col, _ := t.Column(name)

		missing := 0
		var values []string
		for _, cell := range col {
			if _, kind := table.Classify(cell); kind == table.CellMissing {
				missing++
			} else {
				values = append(values, cell)
			}
		}

		row := map[string]string{
			"column":  name,
			"count":   fmt.Sprintf("%d", len(values)),
			"missing": fmt.Sprintf("%d", missing),
		}

		if isNumeric[name] {
			vals := table.NumericValues(t, name)
			min, max := stats.MinMax(vals)
			row["type"] = "numeric"
			row["mean"] = formatStat(stats.Mean(vals))
			row["std"] = formatStat(stats.SampleStd(vals))
			row["min"] = formatStat(min)
			row["25%"] = formatStat(stats.Percentile(vals, 25))
			row["50%"] = formatStat(stats.Percentile(vals, 50))
			row["75%"] = formatStat(stats.Percentile(vals, 75))
			row["max"] = formatStat(max)
		} else {
			top, freq, unique := mostFrequent(values)
			row["type"] = "categorical"
			row["unique"] = fmt.Sprintf("%d", unique)
			row["top"] = top
			row["freq"] = fmt.Sprintf("%d", freq)
		}

		ordered := make([]string, len(summaryHeader))
		for i, h := range summaryHeader {
			ordered[i] = row[h]
		}
		rows = append(rows, ordered)
	}

	return &Result{
		Op: OpSummary,
		Table: &TablePayload{
			Columns: summaryHeader,
			Rows:    rows,
		},
		Stats: Stats{
			"n_rows":    t.RowCount(),
			"n_columns": t.ColumnCount(),
			"n_numeric": len(numeric),
		},
	}, nil
}

// mostFrequent returns the modal value of a string sample, its count, and
// the number of distinct values. Ties break on first appearance.
func mostFrequent(values []string) (top string, freq, unique int) {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
		if counts[v] > freq {
			freq = counts[v]
			top = v
		}
	}
	return top, freq, len(counts)
}

func formatStat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

package table

import (
	"math"
	"strconv"
	"strings"
)

// CellKind is the outcome of parsing one cell.
type CellKind int

const (
	CellMissing CellKind = iota
	CellNumeric
	CellText
)

// Classify parses a single cell. Empty cells and the tokens "NA" and "NaN"
// count as missing, as does any spelling strconv.ParseFloat reads as NaN
// or infinity ("nan", "inf", out-of-range exponents): a finite value is
// the only acceptable evidence that a cell is numeric. Everything else is
// text.
func Classify(cell string) (float64, CellKind) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "NA" || s == "NaN" {
		return 0, CellMissing
	}
	v, err := strconv.ParseFloat(s, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		// ParseFloat reports out-of-range values as ±Inf alongside an
		// error; either way the cell carries no usable number.
		return 0, CellMissing
	}
	if err != nil {
		return 0, CellText
	}
	return v, CellNumeric
}

// NumericColumns returns the names of the columns whose non-missing cells
// all parse as numbers, in table order. A column with no non-missing cells
// is not numeric: there is no evidence for a type.
func NumericColumns(t *Table) []string {
	var out []string
	for i, name := range t.Names {
		nonMissing := 0
		numeric := true
		for _, cell := range t.cols[i] {
			switch _, kind := Classify(cell); kind {
			case CellNumeric:
				nonMissing++
			case CellText:
				numeric = false
			}
			if !numeric {
				break
			}
		}
		if numeric && nonMissing > 0 {
			out = append(out, name)
		}
	}
	return out
}

// NumericValues returns the parsed non-missing values of the named column.
// Text cells are skipped, so callers should only pass classified-numeric
// columns if they need a faithful sample.
func NumericValues(t *Table, name string) []float64 {
	col, ok := t.Column(name)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(col))
	for _, cell := range col {
		if v, kind := Classify(cell); kind == CellNumeric {
			out = append(out, v)
		}
	}
	return out
}

// CompleteRows extracts the rows that have a numeric value in every one of
// the given columns, as row-major float64 data. Rows with a missing or
// non-numeric cell in any of the columns are dropped.
func CompleteRows(t *Table, names []string) [][]float64 {
	cols := make([][]string, len(names))
	for i, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return nil
		}
		cols[i] = col
	}
	var out [][]float64
	for r := 0; r < t.RowCount(); r++ {
		row := make([]float64, len(names))
		complete := true
		for c := range cols {
			v, kind := Classify(cols[c][r])
			if kind != CellNumeric {
				complete = false
				break
			}
			row[c] = v
		}
		if complete {
			out = append(out, row)
		}
	}
	return out
}

// MissingCounts tallies missing cells per column, in table order.
func MissingCounts(t *Table) []int {
	out := make([]int, len(t.Names))
	for i := range t.Names {
		for _, cell := range t.cols[i] {
			if _, kind := Classify(cell); kind == CellMissing {
				out[i]++
			}
		}
	}
	return out
}

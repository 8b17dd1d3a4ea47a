// Package table loads delimited text files into an in-memory columnar
// Table and classifies its columns as numeric or not. The Table is the
// input to every analysis operation and is never mutated after loading.
package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadError reports a file that could not be turned into a Table:
// missing path, malformed delimited text, or zero data rows.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Table is an ordered set of named, equal-length columns. Cells are kept
// as raw strings; numeric interpretation is the classifier's job.
type Table struct {
	Names []string
	cols  [][]string
}

// New builds a Table from a header and row-major records. Every record
// must have exactly len(names) fields.
func New(names []string, rows [][]string) (*Table, error) {
	cols := make([][]string, len(names))
	for i := range cols {
		cols[i] = make([]string, 0, len(rows))
	}
	for r, rec := range rows {
		if len(rec) != len(names) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", r, len(rec), len(names))
		}
		for c, cell := range rec {
			cols[c] = append(cols[c], cell)
		}
	}
	return &Table{Names: names, cols: cols}, nil
}

// Load reads a comma-separated file into a Table. The first record is the
// header. It fails with *LoadError when the path does not exist, the file
// is not well-formed CSV (ragged records included), or it has no data rows.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	header, err := r.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: path, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "malformed header", Err: err}
	}

	names := make([]string, len(header))
	copy(names, header)
	cols := make([][]string, len(names))

	rows := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Reason: "malformed record", Err: err}
		}
		for c, cell := range rec {
			cols[c] = append(cols[c], cell)
		}
		rows++
	}
	if rows == 0 {
		return nil, &LoadError{Path: path, Reason: "no data rows"}
	}
	return &Table{Names: names, cols: cols}, nil
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.Names) }

// Column returns the raw cells of the named column.
func (t *Table) Column(name string) ([]string, bool) {
	for i, n := range t.Names {
		if n == name {
			return t.cols[i], true
		}
	}
	return nil, false
}

// Head returns the first n rows in row-major order (fewer if the table is
// shorter). The returned slices are copies.
func (t *Table) Head(n int) [][]string {
	if n > t.RowCount() {
		n = t.RowCount()
	}
	out := make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(t.cols))
		for c := range t.cols {
			row[c] = t.cols[c][r]
		}
		out[r] = row
	}
	return out
}

// DuplicateRows counts rows that are exact repeats of an earlier row.
func (t *Table) DuplicateRows() int {
	seen := make(map[string]struct{}, t.RowCount())
	dups := 0
	for r := 0; r < t.RowCount(); r++ {
		key := ""
		for c := range t.cols {
			key += t.cols[c][r] + "\x1f"
		}
		if _, ok := seen[key]; ok {
			dups++
		} else {
			seen[key] = struct{}{}
		}
	}
	return dups
}

// AsLoadError reports whether err is a *LoadError.
func AsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	ok := errors.As(err, &le)
	return le, ok
}

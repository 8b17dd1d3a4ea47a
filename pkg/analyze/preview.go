package analyze

import "github.com/Raliaaaaamadou/model-your-data/pkg/table"

// PreviewRows is the fixed number of rows the preview operation returns.
const PreviewRows = 20

// runPreview returns the first PreviewRows rows as a structured table
// payload. It never fails on a structurally valid table.
func runPreview(t *table.Table, n int) (*Result, error) {
	if n <= 0 {
		n = PreviewRows
	}
	return &Result{
		Op: OpPreview,
		Table: &TablePayload{
			Columns: append([]string(nil), t.Names...),
			Rows:    t.Head(n),
		},
		Stats: Stats{
			"n_rows":    t.RowCount(),
			"n_columns": t.ColumnCount(),
		},
	}, nil
}

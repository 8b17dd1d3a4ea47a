// Package analyze implements the six stateless analysis operations over a
// loaded table (preview, regression, clustering, distribution, summary,
// full_report) and the dispatcher that selects between them. Each
// operation is a pure function of (table, parameters) producing a rendered
// artifact and/or a JSON-serializable stats payload.
package analyze

import "github.com/Raliaaaaamadou/model-your-data/pkg/render"

// Op names one analysis operation.
type Op string

const (
	OpPreview      Op = "preview"
	OpRegression   Op = "regression"
	OpClustering   Op = "clustering"
	OpDistribution Op = "distribution"
	OpSummary      Op = "summary"
	OpFullReport   Op = "full_report"
)

// Operations lists every dispatchable operation.
func Operations() []Op {
	return []Op{OpPreview, OpRegression, OpClustering, OpDistribution, OpSummary, OpFullReport}
}

// Stats is the structured numeric payload of a result. Values are numbers,
// short strings, or nested maps/slices; the whole payload marshals to JSON
// without loss.
type Stats = map[string]any

// TablePayload is the structured table returned by the preview and summary
// operations instead of an image: an ordered header plus row-major cells.
type TablePayload struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Result is the output of one operation: an image artifact for the visual
// operations, a table payload for preview/summary, and always a stats
// mapping.
type Result struct {
	Op    Op               `json:"operation"`
	Image *render.Artifact `json:"-"`
	Table *TablePayload    `json:"table,omitempty"`
	Stats Stats            `json:"stats"`
}

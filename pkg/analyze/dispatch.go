package analyze

import (
	"time"

	"go.uber.org/zap"

	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
	"github.com/Raliaaaaamadou/model-your-data/pkg/table"
)

// Runner dispatches operation names to the matching operation. It holds no
// per-invocation state; one Runner can serve many concurrent calls as long
// as each call works on its own Table.
type Runner struct {
	log         *zap.Logger
	store       *render.Store
	previewRows int
}

// NewRunner builds a Runner. log may be nil (no logging); store may be nil
// (artifacts are returned but never persisted).
func NewRunner(log *zap.Logger, store *render.Store) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log, store: store, previewRows: PreviewRows}
}

// Run invokes the named operation on an already-loaded table. Unknown
// names fail with *UnknownOperationError; bad parameters with
// *InvalidParameterError; the operations' own preconditions with their
// typed errors.
func (r *Runner) Run(t *table.Table, opName string, rawParams map[string]string) (*Result, error) {
	start := time.Now()
	res, err := r.dispatch(t, Op(opName), rawParams)
	if err != nil {
		r.log.Warn("operation failed",
			zap.String("operation", opName),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	if res.Image != nil && r.store != nil {
		// Best-effort persistence of the latest artifact for download;
		// the embedded image in the result is authoritative.
		if _, err := r.store.Save(opName, res.Image); err != nil {
			r.log.Warn("artifact save failed", zap.String("operation", opName), zap.Error(err))
		}
	}

	r.log.Info("operation complete",
		zap.String("operation", opName),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("rows", t.RowCount()),
		zap.Int("columns", t.ColumnCount()))
	return res, nil
}

func (r *Runner) dispatch(t *table.Table, op Op, rawParams map[string]string) (*Result, error) {
	switch op {
	case OpPreview:
		return runPreview(t, r.previewRows)
	case OpRegression:
		return runRegression(t)
	case OpClustering:
		params, err := parseParams(rawParams)
		if err != nil {
			return nil, err
		}
		return runClustering(t, params)
	case OpDistribution:
		return runDistribution(t)
	case OpSummary:
		return runSummary(t)
	case OpFullReport:
		return runFullReport(t)
	default:
		return nil, &UnknownOperationError{Name: string(op)}
	}
}

// AnalyzeFile loads the CSV at path and runs one operation on it: the
// whole pipeline behind a single call for collaborators that hold only a
// file path.
func (r *Runner) AnalyzeFile(path, opName string, rawParams map[string]string) (*Result, error) {
	t, err := table.Load(path)
	if err != nil {
		return nil, err
	}
	return r.Run(t, opName, rawParams)
}

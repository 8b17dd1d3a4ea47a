package analyze

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
	"github.com/Raliaaaaamadou/model-your-data/pkg/stats"
	"github.com/Raliaaaaamadou/model-your-data/pkg/table"
)

// distributionGrid picks a near-square layout for n panels: trailing tiles
// stay blank rather than erroring.
func distributionGrid(n int) (rows, cols int) {
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return rows, cols
}

// runDistribution renders one histogram per numeric column in a
// near-square grid, with per-column mean and standard deviation.
func runDistribution(t *table.Table) (*Result, error) {
	numeric := table.NumericColumns(t)
	if len(numeric) == 0 {
		return nil, &NoNumericDataError{Op: string(OpDistribution), Need: 1, Have: 0}
	}

	rows, cols := distributionGrid(len(numeric))
	panels := make([][]*plot.Plot, rows)
	for i := range panels {
		panels[i] = make([]*plot.Plot, cols)
	}

	perColumn := make(Stats, len(numeric))
	for idx, name := range numeric {
		vals := table.NumericValues(t, name)
		panel, err := histPanel(name, vals)
		if err != nil {
			return nil, fmt.Errorf("distribution figure for %s: %w", name, err)
		}
		panels[idx/cols][idx%cols] = panel
		perColumn[name] = Stats{
			"mean": stats.Mean(vals),
			"std":  stats.SampleStd(vals),
		}
	}

	art, err := render.EncodeGrid(panels, vg.Length(cols)*5*vg.Inch, vg.Length(rows)*4*vg.Inch)
	if err != nil {
		return nil, fmt.Errorf("distribution render: %w", err)
	}

	return &Result{
		Op:    OpDistribution,
		Image: art,
		Stats: Stats{
			"n_variables": len(numeric),
			"variables":   numeric,
			"columns":     perColumn,
		},
	}, nil
}

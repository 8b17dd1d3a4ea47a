package analyze

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Raliaaaaamadou/model-your-data/pkg/model"
	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
	"github.com/Raliaaaaamadou/model-your-data/pkg/stats"
	"github.com/Raliaaaaamadou/model-your-data/pkg/table"
)

// runRegression fits an OLS line of the second numeric column on the
// first, over the rows where both are present, and renders the scatter
// with the fitted line overlaid.
func runRegression(t *table.Table) (*Result, error) {
	numeric := table.NumericColumns(t)
	if len(numeric) < 2 {
		return nil, &NoNumericDataError{Op: string(OpRegression), Need: 2, Have: len(numeric)}
	}
	xCol, yCol := numeric[0], numeric[1]

	rows := table.CompleteRows(t, []string{xCol, yCol})
	if len(rows) < 2 {
		return nil, &InsufficientDataError{Op: string(OpRegression), Need: 2, Have: len(rows)}
	}

	x := make([]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i], y[i] = r[0], r[1]
	}

	fit, err := model.FitOLS(x, y)
	if err != nil {
		return nil, fmt.Errorf("regression fit: %w", err)
	}

	p, err := scatterPanel(fmt.Sprintf("Linear Regression: %s vs %s", yCol, xCol), xCol, yCol, x, y)
	if err != nil {
		return nil, fmt.Errorf("regression figure: %w", err)
	}

	minX, maxX := stats.MinMax(x)
	line, err := plotter.NewLine(plotter.XYs{
		{X: minX, Y: fit.Predict(minX)},
		{X: maxX, Y: fit.Predict(maxX)},
	})
	if err != nil {
		return nil, fmt.Errorf("regression figure: %w", err)
	}
	line.Color = lineColor
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("fit (R²=%.3f)", fit.R2), line)

	art, err := render.EncodePlot(p, render.SingleWidth, render.SingleHeight)
	if err != nil {
		return nil, fmt.Errorf("regression render: %w", err)
	}

	return &Result{
		Op:    OpRegression,
		Image: art,
		Stats: Stats{
			"x_variable": xCol,
			"y_variable": yCol,
			"slope":      fit.Slope,
			"intercept":  fit.Intercept,
			"r_squared":  fit.R2,
			"n_samples":  fit.N,
		},
	}, nil
}

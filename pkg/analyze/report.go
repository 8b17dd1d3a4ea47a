package analyze

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
	pstats "github.com/Raliaaaaamadou/model-your-data/pkg/stats"
	"github.com/Raliaaaaamadou/model-your-data/pkg/table"
)

// runFullReport composes the exploratory report: correlation heat map,
// missing-value bars, box plots, a histogram, and a scatter of the first
// two numeric columns. Sub-panels whose preconditions are unmet degrade to
// placeholder panels instead of aborting the report.
func runFullReport(t *table.Table) (*Result, error) {
	numeric := table.NumericColumns(t)
	if len(numeric) == 0 {
		return nil, &NoNumericDataError{Op: string(OpFullReport), Need: 1, Have: 0}
	}

	missing := table.MissingCounts(t)
	totalMissing := 0
	for _, m := range missing {
		totalMissing += m
	}

	st := Stats{
		"n_rows":         t.RowCount(),
		"n_columns":      t.ColumnCount(),
		"n_numeric":      len(numeric),
		"missing_values": totalMissing,
		"duplicate_rows": t.DuplicateRows(),
	}

	corrPanel := correlationPanel(t, numeric, st)
	missingPanel := missingValuesPanel(t, missing, totalMissing, st)
	boxesPanel, err := boxPlotPanel(t, numeric, st)
	if err != nil {
		return nil, fmt.Errorf("report box panel: %w", err)
	}
	histogram, err := reportHistPanel(t, numeric, st)
	if err != nil {
		return nil, fmt.Errorf("report histogram panel: %w", err)
	}
	scatter, err := reportScatterPanel(t, numeric, st)
	if err != nil {
		return nil, fmt.Errorf("report scatter panel: %w", err)
	}

	panels := [][]*plot.Plot{
		{corrPanel, missingPanel},
		{boxesPanel, histogram},
		{scatter, nil},
	}
	art, err := render.EncodeGrid(panels, 16*vg.Inch, 12*vg.Inch)
	if err != nil {
		return nil, fmt.Errorf("report render: %w", err)
	}

	return &Result{Op: OpFullReport, Image: art, Stats: st}, nil
}

// corrGrid adapts a symmetric correlation matrix to the heat-map grid
// interface.
type corrGrid struct {
	m *mat.SymDense
}

func (g corrGrid) Dims() (c, r int) {
	n := g.m.SymmetricDim()
	return n, n
}
func (g corrGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

func correlationPanel(t *table.Table, numeric []string, st Stats) *plot.Plot {
	const title = "Correlation Matrix"
	if len(numeric) < 2 {
		st["correlation"] = Stats{"not_applicable": "needs at least 2 numeric columns"}
		return placeholderPanel(title, "Not applicable: needs at least 2 numeric columns")
	}
	rows := table.CompleteRows(t, numeric)
	if len(rows) < 2 {
		st["correlation"] = Stats{"not_applicable": "not enough complete rows"}
		return placeholderPanel(title, "Not applicable: not enough complete rows")
	}

	flat := make([]float64, 0, len(rows)*len(numeric))
	for _, r := range rows {
		flat = append(flat, r...)
	}
	data := mat.NewDense(len(rows), len(numeric), flat)
	corr := mat.NewSymDense(len(numeric), nil)
	stat.CorrelationMatrix(corr, data, nil)

	matrix := make([][]float64, len(numeric))
	for i := range matrix {
		matrix[i] = make([]float64, len(numeric))
		for j := range matrix[i] {
			matrix[i][j] = corr.At(i, j)
		}
	}
	st["correlation"] = Stats{"columns": numeric, "matrix": matrix}

	p := plot.New()
	p.Title.Text = title
	hm := plotter.NewHeatMap(corrGrid{m: corr}, palette.Heat(12, 1))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)
	p.NominalX(numeric...)
	p.NominalY(numeric...)
	return p
}

func missingValuesPanel(t *table.Table, missing []int, total int, st Stats) *plot.Plot {
	byColumn := make(Stats, len(t.Names))
	for i, name := range t.Names {
		byColumn[name] = missing[i]
	}
	st["missing"] = Stats{"by_column": byColumn, "total": total}

	const title = "Missing Values by Column"
	if total == 0 {
		return placeholderPanel(title, "No missing values")
	}

	// Columns with missing cells, most missing first.
	type colMiss struct {
		name  string
		count int
	}
	var cms []colMiss
	for i, name := range t.Names {
		if missing[i] > 0 {
			cms = append(cms, colMiss{name, missing[i]})
		}
	}
	sort.SliceStable(cms, func(i, j int) bool { return cms[i].count > cms[j].count })

	values := make(plotter.Values, len(cms))
	names := make([]string, len(cms))
	for i, cm := range cms {
		values[i] = float64(cm.count)
		names[i] = cm.name
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Missing cells"
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return placeholderPanel(title, "Not applicable: "+err.Error())
	}
	bars.Color = barColor
	p.Add(bars)
	p.NominalX(names...)
	return p
}

func boxPlotPanel(t *table.Table, numeric []string, st Stats) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Box Plots"
	byColumn := make(Stats, len(numeric))
	for i, name := range numeric {
		vals := table.NumericValues(t, name)
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(vals))
		if err != nil {
			return nil, err
		}
		box.FillColor = boxColor
		p.Add(box)
		byColumn[name] = Stats{
			"q1":     pstats.Percentile(vals, 25),
			"median": pstats.Median(vals),
			"q3":     pstats.Percentile(vals, 75),
		}
	}
	p.NominalX(numeric...)
	st["box"] = byColumn
	return p, nil
}

// reportHistPanel shows the distribution of the second numeric column, or
// the first when there is only one.
func reportHistPanel(t *table.Table, numeric []string, st Stats) (*plot.Plot, error) {
	name := numeric[0]
	if len(numeric) > 1 {
		name = numeric[1]
	}
	vals := table.NumericValues(t, name)
	st["distribution"] = Stats{
		"column": name,
		"mean":   pstats.Mean(vals),
		"std":    pstats.SampleStd(vals),
	}
	return histPanel(name, vals)
}

func reportScatterPanel(t *table.Table, numeric []string, st Stats) (*plot.Plot, error) {
	title := "Scatter"
	if len(numeric) < 2 {
		st["scatter"] = Stats{"not_applicable": "needs at least 2 numeric columns"}
		return placeholderPanel(title, "Not applicable: needs at least 2 numeric columns"), nil
	}
	xCol, yCol := numeric[0], numeric[1]
	rows := table.CompleteRows(t, []string{xCol, yCol})
	x := make([]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i], y[i] = r[0], r[1]
	}
	st["scatter"] = Stats{"x": xCol, "y": yCol, "n_samples": len(rows)}
	return scatterPanel(fmt.Sprintf("%s vs %s", yCol, xCol), xCol, yCol, x, y)
}

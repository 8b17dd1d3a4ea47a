package analyze

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raliaaaaamadou/model-your-data/pkg/table"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func mustTable(t *testing.T, names []string, rows [][]string) *table.Table {
	t.Helper()
	tbl, err := table.New(names, rows)
	require.NoError(t, err)
	return tbl
}

// ageSalaryTable is the regression fixture: near-linear by construction.
func ageSalaryTable(t *testing.T) *table.Table {
	return mustTable(t,
		[]string{"age", "salary"},
		[][]string{
			{"25", "50000"},
			{"30", "65000"},
			{"35", "80000"},
			{"28", "55000"},
		},
	)
}

func textOnlyTable(t *testing.T) *table.Table {
	return mustTable(t,
		[]string{"city"},
		[][]string{{"paris"}, {"lyon"}, {"paris"}, {"nice"}},
	)
}

func TestUnknownOperation(t *testing.T) {
	r := NewRunner(nil, nil)
	_, err := r.Run(ageSalaryTable(t), "bogus", nil)

	var ue *UnknownOperationError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "bogus", ue.Name)
}

func TestPreviewCapsRows(t *testing.T) {
	rows := make([][]string, 25)
	for i := range rows {
		rows[i] = []string{"x"}
	}
	tbl := mustTable(t, []string{"col"}, rows)

	r := NewRunner(nil, nil)
	res, err := r.Run(tbl, string(OpPreview), nil)
	require.NoError(t, err)

	require.NotNil(t, res.Table)
	assert.Len(t, res.Table.Rows, PreviewRows)
	assert.Equal(t, []string{"col"}, res.Table.Columns)
	assert.Equal(t, 25, res.Stats["n_rows"])
	assert.Nil(t, res.Image)
}

func TestRegressionScenarioA(t *testing.T) {
	r := NewRunner(nil, nil)
	res, err := r.Run(ageSalaryTable(t), string(OpRegression), nil)
	require.NoError(t, err)

	// OLS reference computation for this fixture: mean age 29.5, mean
	// salary 62500, Sxy 165000, Sxx 53.
	wantSlope := 165000.0 / 53.0
	wantIntercept := 62500.0 - wantSlope*29.5

	assert.Equal(t, "age", res.Stats["x_variable"])
	assert.Equal(t, "salary", res.Stats["y_variable"])
	assert.InDelta(t, wantSlope, res.Stats["slope"].(float64), 1e-9)
	assert.InDelta(t, wantIntercept, res.Stats["intercept"].(float64), 1e-9)

	r2 := res.Stats["r_squared"].(float64)
	assert.Greater(t, r2, 0.9, "near-linear data by construction")
	assert.LessOrEqual(t, r2, 1.0)
	assert.Equal(t, 4, res.Stats["n_samples"])

	require.NotNil(t, res.Image)
	assert.True(t, bytes.HasPrefix(res.Image.PNG, pngMagic))
}

func TestRegressionScenarioBTextOnly(t *testing.T) {
	r := NewRunner(nil, nil)
	_, err := r.Run(textOnlyTable(t), string(OpRegression), nil)

	var ne *NoNumericDataError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 2, ne.Need)
	assert.Equal(t, 0, ne.Have)
}

func TestRegressionInsufficientRows(t *testing.T) {
	tbl := mustTable(t,
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3", ""}, {"", "4"}},
	)
	r := NewRunner(nil, nil)
	_, err := r.Run(tbl, string(OpRegression), nil)

	var ie *InsufficientDataError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 2, ie.Need)
	assert.Equal(t, 1, ie.Have)
}

func TestSummaryScenarioBTextOnly(t *testing.T) {
	r := NewRunner(nil, nil)
	res, err := r.Run(textOnlyTable(t), string(OpSummary), nil)
	require.NoError(t, err)

	require.NotNil(t, res.Table)
	require.Len(t, res.Table.Rows, 1)
	row := summaryRow(t, res.Table, "city")
	assert.Equal(t, "categorical", row["type"])
	assert.Equal(t, "4", row["count"])
	assert.Equal(t, "3", row["unique"])
	assert.Equal(t, "paris", row["top"])
	assert.Equal(t, "2", row["freq"])
	// Numeric cells stay blank for a categorical column.
	assert.Empty(t, row["mean"])
	assert.Equal(t, 0, res.Stats["n_numeric"])
}

func TestSummaryCountPlusMissingEqualsRows(t *testing.T) {
	tbl := mustTable(t,
		[]string{"num", "txt"},
		[][]string{
			{"1", "a"},
			{"", "b"},
			{"3", ""},
			{"NA", "c"},
		},
	)
	r := NewRunner(nil, nil)
	res, err := r.Run(tbl, string(OpSummary), nil)
	require.NoError(t, err)

	for _, name := range tbl.Names {
		row := summaryRow(t, res.Table, name)
		count := atoi(t, row["count"])
		missing := atoi(t, row["missing"])
		assert.Equal(t, tbl.RowCount(), count+missing, "column %s", name)
	}

	num := summaryRow(t, res.Table, "num")
	assert.Equal(t, "numeric", num["type"])
	assert.Equal(t, "2", num["mean"]) // (1+3)/2
}

func TestClusteringScenarioCParams(t *testing.T) {
	r := NewRunner(nil, nil)
	tbl := ageSalaryTable(t)

	for _, bad := range []string{"0", "-2", "abc", "2.5"} {
		_, err := r.Run(tbl, string(OpClustering), map[string]string{"n_clusters": bad})
		var pe *InvalidParameterError
		require.ErrorAs(t, err, &pe, "n_clusters=%q", bad)
		assert.Equal(t, "n_clusters", pe.Name)
	}

	// Two complete rows cannot host three clusters.
	small := mustTable(t,
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3", "4"}, {"", "6"}},
	)
	_, err := r.Run(small, string(OpClustering), map[string]string{"n_clusters": "3"})
	var ie *InsufficientDataError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Need)
	assert.Equal(t, 2, ie.Have)
}

func TestClusteringBlobs(t *testing.T) {
	tbl := mustTable(t,
		[]string{"x", "y"},
		[][]string{
			{"0.0", "0.1"}, {"0.2", "0.0"}, {"0.1", "0.2"}, {"-0.1", "0.1"},
			{"10.0", "10.1"}, {"10.2", "9.9"}, {"9.9", "10.0"}, {"10.1", "10.2"},
		},
	)
	r := NewRunner(nil, nil)
	res, err := r.Run(tbl, string(OpClustering), map[string]string{"n_clusters": "2"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Stats["n_clusters"])
	assert.Equal(t, 8, res.Stats["n_samples"])
	assert.Equal(t, []string{"x", "y"}, res.Stats["features_used"])

	sizes := res.Stats["cluster_sizes"].([]int)
	total := 0
	for _, s := range sizes {
		total += s
	}
	assert.Equal(t, 8, total)

	centroids := res.Stats["centroids"].([][]float64)
	require.Len(t, centroids, 2)
	// Centroids come back in original units: one near each blob center.
	for _, c := range centroids {
		nearOrigin := c[0] < 1 && c[1] < 1
		nearTen := c[0] > 9 && c[1] > 9
		assert.True(t, nearOrigin || nearTen, "centroid %v not near either blob", c)
	}

	assert.GreaterOrEqual(t, res.Stats["inertia"].(float64), 0.0)
	require.NotNil(t, res.Image)
	assert.True(t, bytes.HasPrefix(res.Image.PNG, pngMagic))

	// Fixed seed: a second run reproduces the fit.
	again, err := r.Run(tbl, string(OpClustering), map[string]string{"n_clusters": "2"})
	require.NoError(t, err)
	assert.Equal(t, res.Stats["centroids"], again.Stats["centroids"])
}

func TestClusteringFeatureSubset(t *testing.T) {
	tbl := mustTable(t,
		[]string{"a", "b", "c"},
		[][]string{
			{"1", "2", "9"}, {"2", "3", "8"}, {"3", "4", "7"}, {"4", "5", "6"},
		},
	)
	r := NewRunner(nil, nil)

	res, err := r.Run(tbl, string(OpClustering), map[string]string{
		"n_clusters": "2",
		"features":   "a,c",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, res.Stats["features_used"])

	_, err = r.Run(tbl, string(OpClustering), map[string]string{"features": "a"})
	var pe *InvalidParameterError
	require.ErrorAs(t, err, &pe)

	_, err = r.Run(tbl, string(OpClustering), map[string]string{"features": "a,nope"})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "features", pe.Name)
}

func TestDistribution(t *testing.T) {
	r := NewRunner(nil, nil)

	_, err := r.Run(textOnlyTable(t), string(OpDistribution), nil)
	var ne *NoNumericDataError
	require.ErrorAs(t, err, &ne)

	tbl := mustTable(t,
		[]string{"a", "b", "name"},
		[][]string{
			{"1", "10", "u"}, {"2", "20", "v"}, {"3", "30", "w"}, {"4", "40", "x"},
		},
	)
	res, err := r.Run(tbl, string(OpDistribution), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Stats["n_variables"])
	assert.Equal(t, []string{"a", "b"}, res.Stats["variables"])
	cols := res.Stats["columns"].(Stats)
	require.Contains(t, cols, "a")
	a := cols["a"].(Stats)
	assert.InDelta(t, 2.5, a["mean"].(float64), 1e-12)
	require.NotNil(t, res.Image)
	assert.True(t, bytes.HasPrefix(res.Image.PNG, pngMagic))
}

func TestDistributionGridNearSquare(t *testing.T) {
	cases := []struct{ n, rows, cols int }{
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{9, 3, 3},
		{10, 3, 4},
	}
	for _, tc := range cases {
		rows, cols := distributionGrid(tc.n)
		assert.Equal(t, tc.rows, rows, "n=%d rows", tc.n)
		assert.Equal(t, tc.cols, cols, "n=%d cols", tc.n)
		assert.GreaterOrEqual(t, rows*cols, tc.n)
	}
}

func TestFullReportScenarioD(t *testing.T) {
	// Exactly one numeric column: scatter and correlation degrade to
	// placeholders, the rest computes normally.
	tbl := mustTable(t,
		[]string{"score", "label"},
		[][]string{
			{"1.5", "a"}, {"2.5", "b"}, {"3.5", "a"}, {"4.5", "c"},
		},
	)
	r := NewRunner(nil, nil)
	res, err := r.Run(tbl, string(OpFullReport), nil)
	require.NoError(t, err)

	corr := res.Stats["correlation"].(Stats)
	assert.Contains(t, corr, "not_applicable")
	scatter := res.Stats["scatter"].(Stats)
	assert.Contains(t, scatter, "not_applicable")

	box := res.Stats["box"].(Stats)
	require.Contains(t, box, "score")
	dist := res.Stats["distribution"].(Stats)
	assert.Equal(t, "score", dist["column"])

	assert.Equal(t, 1, res.Stats["n_numeric"])
	require.NotNil(t, res.Image)
	assert.True(t, bytes.HasPrefix(res.Image.PNG, pngMagic))
}

func TestFullReportAllPanels(t *testing.T) {
	tbl := mustTable(t,
		[]string{"a", "b", "c"},
		[][]string{
			{"1", "2", "5"},
			{"2", "4", "4"},
			{"3", "6", ""},
			{"4", "8", "2"},
			{"4", "8", "2"},
		},
	)
	r := NewRunner(nil, nil)
	res, err := r.Run(tbl, string(OpFullReport), nil)
	require.NoError(t, err)

	corr := res.Stats["correlation"].(Stats)
	matrix := corr["matrix"].([][]float64)
	require.Len(t, matrix, 3)
	for i := range matrix {
		assert.InDelta(t, 1.0, matrix[i][i], 1e-9, "correlation diagonal")
	}
	// a and b are perfectly correlated over the complete rows.
	assert.InDelta(t, 1.0, matrix[0][1], 1e-9)

	missing := res.Stats["missing"].(Stats)
	assert.Equal(t, 1, missing["total"])
	assert.Equal(t, 1, res.Stats["missing_values"])
	assert.Equal(t, 1, res.Stats["duplicate_rows"])

	scatter := res.Stats["scatter"].(Stats)
	assert.Equal(t, "a", scatter["x"])
	assert.Equal(t, "b", scatter["y"])
}

func TestFullReportNoNumeric(t *testing.T) {
	r := NewRunner(nil, nil)
	_, err := r.Run(textOnlyTable(t), string(OpFullReport), nil)
	var ne *NoNumericDataError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 1, ne.Need)
}

func TestNonFiniteCellsAcrossOperations(t *testing.T) {
	// Cells spelled "nan" or "inf" parse as non-finite floats; they must
	// behave like missing values, not crash a figure or leak NaN/Inf
	// into a stats payload.
	tbl := mustTable(t,
		[]string{"v", "w"},
		[][]string{
			{"1", "1"},
			{"nan", "2"},
			{"3", "3"},
			{"4", "inf"},
			{"5", "5"},
		},
	)
	r := NewRunner(nil, nil)

	res, err := r.Run(tbl, string(OpDistribution), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats["n_variables"])

	res, err = r.Run(tbl, string(OpRegression), nil)
	require.NoError(t, err)
	// Only the finite-complete rows (1,1), (3,3), (5,5) feed the fit.
	assert.Equal(t, 3, res.Stats["n_samples"])
	assert.InDelta(t, 1.0, res.Stats["slope"].(float64), 1e-9)

	res, err = r.Run(tbl, string(OpFullReport), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats["missing_values"])

	res, err = r.Run(tbl, string(OpSummary), nil)
	require.NoError(t, err)
	row := summaryRow(t, res.Table, "v")
	assert.Equal(t, "numeric", row["type"])
	assert.Equal(t, "4", row["count"])
	assert.Equal(t, "1", row["missing"])

	for _, op := range []Op{OpRegression, OpDistribution, OpFullReport} {
		out, err := r.Run(tbl, string(op), nil)
		require.NoError(t, err)
		_, err = json.Marshal(out.Stats)
		assert.NoError(t, err, "stats of %s must stay JSON-serializable", op)
	}
}

func TestStatsPayloadSerializes(t *testing.T) {
	r := NewRunner(nil, nil)
	for _, op := range []Op{OpRegression, OpClustering, OpDistribution, OpSummary, OpFullReport} {
		res, err := r.Run(ageSalaryTable(t), string(op), nil)
		require.NoError(t, err, "operation %s", op)
		_, err = json.Marshal(res.Stats)
		assert.NoError(t, err, "stats of %s must serialize to JSON", op)
		if res.Table != nil {
			_, err = json.Marshal(res.Table)
			assert.NoError(t, err)
		}
	}
}

func summaryRow(t *testing.T, payload *TablePayload, column string) map[string]string {
	t.Helper()
	for _, row := range payload.Rows {
		require.Len(t, row, len(payload.Columns))
		if row[0] == column {
			out := make(map[string]string, len(row))
			for i, h := range payload.Columns {
				out[h] = row[i]
			}
			return out
		}
	}
	t.Fatalf("no summary row for column %q", column)
	return nil
}

func atoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}

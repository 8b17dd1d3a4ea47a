package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
	"github.com/Raliaaaaamadou/model-your-data/pkg/table"
)

func TestAnalyzeFileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "people.csv")
	content := "age,salary,city\n25,50000,paris\n30,65000,lyon\n35,80000,paris\n28,55000,nice\n"
	require.NoError(t, os.WriteFile(csv, []byte(content), 0o644))

	store := render.NewStore(filepath.Join(dir, "artifacts"), render.SlotShared)
	r := NewRunner(zap.NewNop(), store)

	res, err := r.AnalyzeFile(csv, string(OpRegression), nil)
	require.NoError(t, err)

	// The artifact was persisted to the shared slot and the path recorded.
	require.NotNil(t, res.Image)
	assert.NotEmpty(t, res.Image.Path)
	assert.FileExists(t, res.Image.Path)

	onDisk, err := os.ReadFile(res.Image.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Image.PNG, onDisk)
}

func TestAnalyzeFileLoadError(t *testing.T) {
	r := NewRunner(nil, nil)
	_, err := r.AnalyzeFile(filepath.Join(t.TempDir(), "missing.csv"), string(OpSummary), nil)
	_, ok := table.AsLoadError(err)
	assert.True(t, ok)
}

func TestRunWithoutStoreLeavesPathEmpty(t *testing.T) {
	r := NewRunner(nil, nil)
	res, err := r.Run(ageSalaryTable(t), string(OpRegression), nil)
	require.NoError(t, err)
	require.NotNil(t, res.Image)
	assert.Empty(t, res.Image.Path)
}

func TestOperationsEnumeration(t *testing.T) {
	ops := Operations()
	assert.Equal(t, []Op{OpPreview, OpRegression, OpClustering, OpDistribution, OpSummary, OpFullReport}, ops)

	// Every enumerated operation dispatches without an unknown-operation
	// error on a table that satisfies all preconditions.
	r := NewRunner(nil, nil)
	for _, op := range ops {
		_, err := r.Run(ageSalaryTable(t), string(op), nil)
		assert.NoError(t, err, "operation %s", op)
	}
}

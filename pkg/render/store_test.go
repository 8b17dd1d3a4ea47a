package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
)

func TestStoreSharedSlot(t *testing.T) {
	dir := t.TempDir()
	s := render.NewStore(dir, render.SlotShared)

	a := &render.Artifact{PNG: []byte("first")}
	path1, err := s.Save("regression", a)
	require.NoError(t, err)
	assert.Equal(t, path1, a.Path)
	assert.Equal(t, filepath.Join(dir, "latest.png"), path1)

	// A second save for a different operation overwrites the same slot.
	b := &render.Artifact{PNG: []byte("second")}
	path2, err := s.Save("clustering", b)
	require.NoError(t, err)
	assert.Equal(t, path1, path2)

	got, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestStorePerOperationSlot(t *testing.T) {
	dir := t.TempDir()
	s := render.NewStore(dir, render.SlotPerOperation)

	_, err := s.Save("regression", &render.Artifact{PNG: []byte("r")})
	require.NoError(t, err)
	_, err = s.Save("clustering", &render.Artifact{PNG: []byte("c")})
	require.NoError(t, err)

	r, err := os.ReadFile(filepath.Join(dir, "regression.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("r"), r)
	c, err := os.ReadFile(filepath.Join(dir, "clustering.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), c)
}

func TestStoreUnknownPolicyFallsBack(t *testing.T) {
	s := render.NewStore(t.TempDir(), render.SlotPolicy("bogus"))
	assert.Equal(t, "latest.png", filepath.Base(s.SlotPath("anything")))
}

func TestStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	s := render.NewStore(dir, render.SlotShared)
	_, err := s.Save("summary", &render.Artifact{PNG: []byte("x")})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "latest.png"))
}

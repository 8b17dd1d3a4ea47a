package render_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Raliaaaaamadou/model-your-data/pkg/render"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testPlot(t *testing.T) *plot.Plot {
	t.Helper()
	p := plot.New()
	p.Title.Text = "test"
	s, err := plotter.NewScatter(plotter.XYs{{X: 1, Y: 1}, {X: 2, Y: 4}})
	require.NoError(t, err)
	p.Add(s)
	return p
}

func TestEncodePlot(t *testing.T) {
	art, err := render.EncodePlot(testPlot(t), 4*vg.Inch, 3*vg.Inch)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(art.PNG, pngMagic), "artifact is not a PNG")
	decoded, err := base64.StdEncoding.DecodeString(art.Base64)
	require.NoError(t, err)
	assert.Equal(t, art.PNG, decoded)
	assert.Empty(t, art.Path)
}

func TestEncodeGrid(t *testing.T) {
	plots := [][]*plot.Plot{
		{testPlot(t), testPlot(t)},
		{testPlot(t), nil}, // blank tile is fine
	}
	art, err := render.EncodeGrid(plots, 8*vg.Inch, 6*vg.Inch)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(art.PNG, pngMagic))
}

package analyze

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Raliaaaaamadou/model-your-data/pkg/stats"
)

// Figure palette, kept from the original green theme.
var (
	pointColor = color.RGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF}
	lineColor  = color.RGBA{R: 0x1B, G: 0x5E, B: 0x20, A: 0xFF}
	barColor   = color.RGBA{R: 0x66, G: 0xBB, B: 0x6A, A: 0xFF}
	boxColor   = color.RGBA{R: 0x81, G: 0xC7, B: 0x84, A: 0xFF}

	clusterColors = []color.RGBA{
		{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF},
		{R: 0x66, G: 0xBB, B: 0x6A, A: 0xFF},
		{R: 0x1B, G: 0x5E, B: 0x20, A: 0xFF},
		{R: 0xA5, G: 0xD6, B: 0xA7, A: 0xFF},
		{R: 0x00, G: 0x69, B: 0x5C, A: 0xFF},
		{R: 0x33, G: 0x69, B: 0x1E, A: 0xFF},
	}
)

// plotBase creates a titled, labeled, gridded plot ready for series.
func plotBase(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func xyPoints(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

// scatterPanel builds a plain scatter of (x, y).
func scatterPanel(title, xLabel, yLabel string, x, y []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	s, err := plotter.NewScatter(xyPoints(x, y))
	if err != nil {
		return nil, err
	}
	s.Color = pointColor
	p.Add(s, plotter.NewGrid())
	return p, nil
}

// histPanel builds one histogram panel with the column's mean and standard
// deviation in the title.
func histPanel(name string, vals []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (mean %.2f, std %.2f)", name, stats.Mean(vals), stats.SampleStd(vals))
	p.X.Label.Text = name
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(vals), histogramBins)
	if err != nil {
		return nil, err
	}
	h.FillColor = barColor
	p.Add(h, plotter.NewGrid())
	return p, nil
}

// placeholderPanel stands in for a sub-panel whose precondition is unmet,
// stating why instead of failing the whole figure.
func placeholderPanel(title, message string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{message},
	})
	if err == nil {
		for i := range labels.TextStyle {
			labels.TextStyle[i].Font.Size = vg.Points(12)
		}
		p.Add(labels)
	}
	return p
}

// histogramBins is the fixed bin count for every histogram.
const histogramBins = 30

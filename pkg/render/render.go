// Package render turns completed gonum/plot figures into portable PNG
// artifacts: raw bytes plus a base64 text encoding for inline embedding,
// and an optional on-disk copy managed by Store.
//
// Figures are plain values created per invocation and dropped after
// encoding; no rendering state survives a call.
package render

import (
	"bytes"
	"encoding/base64"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DPI is the fixed raster resolution for every artifact.
const DPI = 100

// Default figure sizes, matching a 10x6 inch single panel.
const (
	SingleWidth  = 10 * vg.Inch
	SingleHeight = 6 * vg.Inch
)

// Artifact is an encoded figure.
type Artifact struct {
	PNG    []byte
	Base64 string
	Path   string // set by Store.Save when the artifact is persisted
}

// EncodePlot rasterizes a single figure at the fixed DPI and returns the
// PNG plus its base64 encoding.
func EncodePlot(p *plot.Plot, w, h vg.Length) (*Artifact, error) {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(DPI))
	p.Draw(draw.New(img))
	return encodeCanvas(img)
}

// EncodeGrid tiles a row-major grid of figures onto one canvas. Nil
// entries leave their tile blank.
func EncodeGrid(plots [][]*plot.Plot, w, h vg.Length) (*Artifact, error) {
	rows := len(plots)
	cols := 0
	for _, r := range plots {
		if len(r) > cols {
			cols = len(r)
		}
	}

	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}
	return encodeCanvas(img)
}

func encodeCanvas(img *vgimg.Canvas) (*Artifact, error) {
	var buf bytes.Buffer
	pngc := vgimg.PngCanvas{Canvas: img}
	if _, err := pngc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return &Artifact{
		PNG:    buf.Bytes(),
		Base64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

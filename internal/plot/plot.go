// Package plot draws the sorted length chart for a filtered table.
package plot

import (
	"fmt"
	"image/color"
	"math"
	"os"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/altinukshini/taxseq/internal/model"
	"github.com/altinukshini/taxseq/internal/table"
)

const (
	Width  = 12 * vg.Inch
	Height = 6 * vg.Inch

	Title  = "Sequence Lengths (sorted)"
	XLabel = "Accession"
	YLabel = "Sequence Length"
)

var lineColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

// New builds the chart without drawing it. Rows are sorted by length first;
// the caller's table is left untouched.
func New(t model.Table) (*gplot.Plot, error) {
	rows := append([]model.Row(nil), t.Rows...)
	table.SortByLength(rows)

	p := gplot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	xys := make(plotter.XYs, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		xys[i].X = float64(i)
		xys[i].Y = float64(r.Length)
		labels[i] = r.Accession
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("build series: %w", err)
	}
	line.Color = lineColor
	points.Shape = draw.CircleGlyph{}
	points.Color = lineColor
	p.Add(line, points)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.Font.Size = vg.Points(6)
	return p, nil
}

// Render draws the table to a PNG at path, replacing any existing file.
func Render(t model.Table, path string) (err error) {
	if len(t.Rows) == 0 {
		return fmt.Errorf("render plot: empty table")
	}
	p, err := New(t)
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	canvas := vgimg.New(Width, Height)
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close plot file: %w", cerr)
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(f); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Package chart draws identification results with gonum/plot: the input on
// top and the measured and predicted output below, on a shared time axis.
package chart

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sartorproj/goarx/timeseries"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Options controls the figure.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions returns an 8x6 inch figure.
func DefaultOptions() Options {
	return Options{
		Title:  "ARX identification",
		Width:  8 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

// Panels builds the two stacked plots. pred may be nil.
func Panels(d *timeseries.Dataset, pred timeseries.Predicted, opts Options) ([][]*plot.Plot, error) {
	if d == nil || d.Len() == 0 {
		return nil, errors.New("chart: empty dataset")
	}

	top := plot.New()
	top.Title.Text = opts.Title
	top.Y.Label.Text = "u"
	uLine, err := plotter.NewLine(series(d.T, d.U))
	if err != nil {
		return nil, err
	}
	uLine.LineStyle.Width = vg.Points(1.5)
	uLine.LineStyle.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	top.Add(plotter.NewGrid(), uLine)

	bottom := plot.New()
	bottom.X.Label.Text = "time"
	bottom.Y.Label.Text = "y"
	bottom.Add(plotter.NewGrid())
	bottom.Legend.Top = true

	lines := []interface{}{"y", series(d.T, d.Y)}
	if pred != nil {
		if pts := predicted(d.T, pred); len(pts) > 0 {
			lines = append(lines, "y_pred", pts)
		}
	}
	if err := plotutil.AddLines(bottom, lines...); err != nil {
		return nil, err
	}

	return [][]*plot.Plot{{top}, {bottom}}, nil
}

func series(t, v []float64) plotter.XYs {
	pts := make(plotter.XYs, len(v))
	for i := range v {
		pts[i].X = t[i]
		pts[i].Y = v[i]
	}
	return pts
}

func predicted(t []float64, pred timeseries.Predicted) plotter.XYs {
	var pts plotter.XYs
	for i := range t {
		if v, ok := pred.At(i); ok {
			pts = append(pts, plotter.XY{X: t[i], Y: v})
		}
	}
	return pts
}

// WriteTo renders the figure in the given format (png, svg, pdf, eps, jpg,
// tiff) to w.
func WriteTo(w io.Writer, format string, d *timeseries.Dataset, pred timeseries.Predicted, opts Options) error {
	plots, err := Panels(d, pred, opts)
	if err != nil {
		return err
	}

	c, err := draw.NewFormattedCanvas(opts.Width, opts.Height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
		PadY:      vg.Points(12),
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("chart: write %s: %w", format, err)
	}
	return nil
}

// Save writes the figure to path, choosing the format from its extension.
func Save(path string, d *timeseries.Dataset, pred timeseries.Predicted, opts Options) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("chart: no file extension in %q", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("chart: cannot create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := WriteTo(bw, format, d, pred, opts); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

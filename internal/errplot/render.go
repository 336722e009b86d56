package errplot

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	xLabel = "Relative Step Size (h_rel)"
	yLabel = "Absolute Error (log scale)"

	figureWidth  = 10 * vg.Inch
	figureHeight = 6 * vg.Inch
)

// ErrNoData none of the rows can be drawn on log axes
var ErrNoData = errors.New("no positive values to plot")

type series struct {
	label string
	value func(ErrorRow) float64
	glyph draw.GlyphDrawer
}

type figure struct {
	greek  string
	series []series
}

var figures = []figure{
	{
		greek: "Delta",
		series: []series{
			{label: "Δ fwd Error (err_D_fd)", value: func(r ErrorRow) float64 { return r.ErrDeltaFD }, glyph: draw.CircleGlyph{}},
			{label: "Δ cs Error (err_D_cs)", value: func(r ErrorRow) float64 { return r.ErrDeltaCS }, glyph: draw.CrossGlyph{}},
		},
	},
	{
		greek: "Gamma",
		series: []series{
			{label: "Γ fwd Error (err_G_fd)", value: func(r ErrorRow) float64 { return r.ErrGammaFD }, glyph: draw.CircleGlyph{}},
			{label: "Γ cs,real Error (err_G_cs_real)", value: func(r ErrorRow) float64 { return r.ErrGammaCSReal }, glyph: draw.CrossGlyph{}},
			{label: "Γ 45° Error (err_G_cs_45)", value: func(r ErrorRow) float64 { return r.ErrGammaCS45 }, glyph: draw.SquareGlyph{}},
		},
	},
}

// FileName returns the PNG name of a scenario plot, spaces become underscores
func FileName(scenarioName, greek string) string {
	return strings.ReplaceAll(scenarioName, " ", "_") + "_" + greek + "_Errors.png"
}

// PlotErrors loads csvPath and writes the Delta and Gamma error plots of the
// scenario into outDir. It returns the written paths.
func PlotErrors(csvPath, scenarioName, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	rows, err := LoadErrorRows(csvPath)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, fig := range figures {
		path := filepath.Join(outDir, FileName(scenarioName, fig.greek))
		if err := renderFigure(fig, rows, scenarioName, path); err != nil {
			return written, fmt.Errorf("%s plot: %w", fig.greek, err)
		}
		written = append(written, path)
	}

	return written, nil
}

func renderFigure(fig figure, rows []ErrorRow, scenarioName, path string) (err error) {
	// gonum panics on degenerate log ranges
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render %s: %v", path, r)
		}
	}()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Error vs. Step Size - %s", fig.greek, scenarioName)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	grid.Vertical.Width = vg.Points(0.5)
	grid.Horizontal.Width = vg.Points(0.5)
	p.Add(grid)

	bounds := newRange()
	for i, s := range fig.series {
		xys := positivePoints(rows, s.value)
		if len(xys) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = s.glyph
		points.Radius = vg.Points(2)

		p.Add(line, points)
		p.Legend.Add(s.label, line, points)
		bounds.extend(xys)
	}

	if bounds.empty() {
		return ErrNoData
	}
	p.X.Min, p.X.Max = bounds.x()
	p.Y.Min, p.Y.Max = bounds.y()

	return p.Save(figureWidth, figureHeight, path)
}

// positivePoints keeps the points a log-log plot can show
func positivePoints(rows []ErrorRow, value func(ErrorRow) float64) plotter.XYs {
	xys := plotter.XYs{}
	for _, row := range rows {
		y := value(row)
		if !isPositive(row.HRel) || !isPositive(y) {
			continue
		}
		xys = append(xys, plotter.XY{X: row.HRel, Y: y})
	}
	return xys
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

type dataRange struct {
	minX, maxX, minY, maxY float64
}

func newRange() *dataRange {
	return &dataRange{minX: math.Inf(1), maxX: math.Inf(-1), minY: math.Inf(1), maxY: math.Inf(-1)}
}

func (d *dataRange) extend(xys plotter.XYs) {
	for _, xy := range xys {
		d.minX = math.Min(d.minX, xy.X)
		d.maxX = math.Max(d.maxX, xy.X)
		d.minY = math.Min(d.minY, xy.Y)
		d.maxY = math.Max(d.maxY, xy.Y)
	}
}

func (d *dataRange) empty() bool {
	return math.IsInf(d.minX, 1)
}

func (d *dataRange) x() (float64, float64) { return widen(d.minX, d.maxX) }

func (d *dataRange) y() (float64, float64) { return widen(d.minY, d.maxY) }

// widen gives a single value one decade on each side
func widen(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo / 10, hi * 10
	}
	return lo, hi
}

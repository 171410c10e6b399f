// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jmhchart draws benchmark series as a log-log line chart.
//
// A Chart renders to an in-memory image rather than a file, so that an
// interactive viewer can redraw it after every change. Each render also
// returns a Frame describing where every point landed in the image,
// which the viewer uses for hover lookups.
package jmhchart

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"golang.org/x/jmhplot/jmhtab"
)

// DefaultDPI is the resolution Render assumes for pixel sizes.
const DefaultDPI = 96

// A Chart draws the series of one Table.
type Chart struct {
	Table  *jmhtab.Table
	Styles Styles

	// DPI converts between image pixels and plot points.
	// Zero means DefaultDPI.
	DPI int
}

// New returns a Chart for t with the default styles.
func New(t *jmhtab.Table) *Chart {
	return &Chart{Table: t, Styles: NewStyles(t)}
}

func (c *Chart) dpi() int {
	if c.DPI <= 0 {
		return DefaultDPI
	}
	return c.DPI
}

// YLabel returns the score axis label for unit.
func YLabel(unit string) string {
	if unit == "" {
		return "Score (log scale)"
	}
	return fmt.Sprintf("Score (%s, log scale)", unit)
}

// Plot builds the plot of the series for which shown reports true.
// A nil shown draws every series. Axis ranges always cover every
// series, so hiding series never rescales the chart.
func (c *Chart) Plot(shown func(shortName string) bool) (*plot.Plot, *plot.Legend, error) {
	p := plot.New()
	p.Title.Text = c.Table.Title
	p.Title.TextStyle.Font.Size = 16
	p.Title.Padding = vg.Points(8)
	p.X.Label.Text = "Size (log scale)"
	p.Y.Label.Text = YLabel(c.Table.Unit)
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	grid := plotter.NewGrid()
	for _, ls := range []*draw.LineStyle{&grid.Vertical, &grid.Horizontal} {
		ls.Color = color.Gray{0xc8}
		ls.Width = vg.Points(0.5)
		ls.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}
	p.Add(grid)

	legend := plot.NewLegend()
	legend.Top = true
	legend.Left = true
	legend.ThumbnailWidth = vg.Points(28)
	for _, s := range c.Table.Series {
		if shown != nil && !shown(s.ShortName) {
			continue
		}
		st := c.Styles.Of(s.ShortName)
		xys := positivePoints(s)
		if len(xys) == 0 {
			// Nothing to draw on a log scale, but still listed.
			legend.Add(s.ShortName, thumbnail(st))
			continue
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, nil, fmt.Errorf("series %s: %w", s.ShortName, err)
		}
		st.apply(line, points)
		p.Add(line, points)
		legend.Add(s.ShortName, line, points)
	}

	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = dataRange(c.Table)
	return p, &legend, nil
}

// LegendEntries returns the names Plot lists in its legend for shown,
// in display order. Shown series with no point a log scale can draw
// are listed too.
func (c *Chart) LegendEntries(shown func(shortName string) bool) []string {
	var names []string
	for _, s := range c.Table.Series {
		if shown == nil || shown(s.ShortName) {
			names = append(names, s.ShortName)
		}
	}
	return names
}

// A thumbnail draws a legend sample of a style without a data line.
type thumbnail Style

// Thumbnail implements plot.Thumbnailer.
func (t thumbnail) Thumbnail(c *draw.Canvas) {
	st := Style(t)
	y := c.Center().Y
	c.StrokeLine2(st.LineStyle(), c.Min.X, y, c.Max.X, y)
	c.DrawGlyph(st.GlyphStyle(), c.Center())
}

// positivePoints returns the points of s that a log scale can show.
func positivePoints(s *jmhtab.Series) plotter.XYs {
	xys := make(plotter.XYs, 0, len(s.Points))
	for _, pt := range s.Points {
		if pt.Size > 0 && pt.Score > 0 {
			xys = append(xys, plotter.XY{X: float64(pt.Size), Y: pt.Score})
		}
	}
	return xys
}

// dataRange returns log-padded axis bounds covering every positive
// point of t.
func dataRange(t *jmhtab.Table) (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, s := range t.Series {
		for _, xy := range positivePoints(s) {
			xmin, xmax = math.Min(xmin, xy.X), math.Max(xmax, xy.X)
			ymin, ymax = math.Min(ymin, xy.Y), math.Max(ymax, xy.Y)
		}
	}
	xmin, xmax = logPad(xmin, xmax)
	ymin, ymax = logPad(ymin, ymax)
	return
}

// logPad widens [lo, hi] by 5% of its logarithmic extent on each side.
// An empty range becomes [1, 10]; a single value gets a factor of 2.
func logPad(lo, hi float64) (float64, float64) {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 1, 10
	}
	if lo == hi {
		return lo / 2, hi * 2
	}
	pad := 0.05 * (math.Log10(hi) - math.Log10(lo))
	return lo / math.Pow(10, pad), hi * math.Pow(10, pad)
}

// legendWidth returns the width of the legend column for l's entries.
func legendWidth(l *plot.Legend, names []string) vg.Length {
	var w vg.Length
	for _, name := range names {
		if tw := l.TextStyle.Width(name); tw > w {
			w = tw
		}
	}
	if w == 0 {
		return 0
	}
	return w + l.ThumbnailWidth + 3*l.Padding + vg.Points(16)
}

// Render draws the chart into a new width×height pixel image and
// returns it with the Frame of the drawing. The legend occupies a
// column on the right and lists only the shown series.
func (c *Chart) Render(width, height int, shown func(shortName string) bool) (image.Image, *Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("invalid chart size %dx%d", width, height)
	}
	p, legend, err := c.Plot(shown)
	if err != nil {
		return nil, nil, err
	}
	dpi := c.dpi()
	toPoints := func(px int) vg.Length { return vg.Length(px) * vg.Inch / vg.Length(dpi) }

	cnv := vgimg.NewWith(
		vgimg.UseWH(toPoints(width), toPoints(height)),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(cnv)

	names := c.LegendEntries(shown)
	lw := legendWidth(legend, names)
	// Keep at least half the image for the plot itself.
	if limit := dc.Max.X / 2; lw > limit {
		lw = limit
	}
	plotArea := draw.Crop(dc, 0, -lw, 0, 0)
	p.Draw(plotArea)
	if len(names) > 0 {
		legendArea := draw.Crop(dc, dc.Max.X-lw, 0, 0, -p.Title.Padding*2)
		legend.Draw(legendArea)
	}

	img := cnv.Image()
	data := p.DataCanvas(plotArea)
	f := newFrame(c.Table, p, data, dpi, img.Bounds())
	return img, f, nil
}

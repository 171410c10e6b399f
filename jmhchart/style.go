// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jmhchart

import (
	"hash/fnv"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"golang.org/x/jmhplot/jmhtab"
)

// Tab10 returns the ten-color categorical palette used for list types.
func Tab10() palette.Palette { return tab10{} }

type tab10 struct{}

var tab10Colors = []color.Color{
	color.NRGBA{0x1f, 0x77, 0xb4, 0xff},
	color.NRGBA{0xff, 0x7f, 0x0e, 0xff},
	color.NRGBA{0x2c, 0xa0, 0x2c, 0xff},
	color.NRGBA{0xd6, 0x27, 0x28, 0xff},
	color.NRGBA{0x94, 0x67, 0xbd, 0xff},
	color.NRGBA{0x8c, 0x56, 0x4b, 0xff},
	color.NRGBA{0xe3, 0x77, 0xc2, 0xff},
	color.NRGBA{0x7f, 0x7f, 0x7f, 0xff},
	color.NRGBA{0xbc, 0xbd, 0x22, 0xff},
	color.NRGBA{0x17, 0xbe, 0xcf, 0xff},
}

func (tab10) Colors() []color.Color {
	return append([]color.Color(nil), tab10Colors...)
}

// ColorIndex returns the palette slot of the i'th of n list types with
// a palette of size slots. Positions are spread evenly over the
// palette; a single list type takes the first slot.
func ColorIndex(i, n, size int) int {
	den := n - 1
	if den < 1 {
		den = 1
	}
	k := int(float64(size) * float64(i) / float64(den))
	if k >= size {
		k = size - 1
	}
	if k < 0 {
		k = 0
	}
	return k
}

// Marker shapes, indexed by a hash of the method label.
var markers = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
	TriDown{},
	Diamond{},
	draw.CrossGlyph{},
	Star{},
	FilledPlus{},
	Hexagon{},
	draw.PlusGlyph{},
}

// Line dash patterns, indexed by a hash of the short name: solid,
// dashed, dash-dot and dotted.
var dashes = [][]vg.Length{
	nil,
	{vg.Points(6), vg.Points(3)},
	{vg.Points(6), vg.Points(3), vg.Points(1.5), vg.Points(3)},
	{vg.Points(1.5), vg.Points(3)},
}

// stableIndex maps s to [0, n) with FNV-1a, so assignments are the
// same in every run.
func stableIndex(s string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int(h.Sum32() % uint32(n))
}

// MarkerIndex returns the marker slot used for method.
func MarkerIndex(method string) int { return stableIndex(method, len(markers)) }

// DashIndex returns the dash slot used for shortName.
func DashIndex(shortName string) int { return stableIndex(shortName, len(dashes)) }

const (
	lineWidth   = 1.8 // points
	glyphRadius = 3   // points
	seriesAlpha = 0.9
)

// A Style is the visual assignment of one series.
type Style struct {
	Color  color.Color
	Shape  draw.GlyphDrawer
	Dashes []vg.Length
}

// LineStyle returns the style of the series' connecting line.
func (s Style) LineStyle() draw.LineStyle {
	return draw.LineStyle{
		Color:  withAlpha(s.Color, seriesAlpha),
		Width:  vg.Points(lineWidth),
		Dashes: s.Dashes,
	}
}

// GlyphStyle returns the style of the series' point markers.
func (s Style) GlyphStyle() draw.GlyphStyle {
	return draw.GlyphStyle{
		Color:  withAlpha(s.Color, seriesAlpha),
		Radius: vg.Points(glyphRadius),
		Shape:  s.Shape,
	}
}

// Styles maps short names to styles.
type Styles map[string]Style

// NewStyles assigns a Style to every series of t. Color depends only
// on list type, marker only on method and dash only on short name.
func NewStyles(t *jmhtab.Table) Styles {
	colors := Tab10().Colors()
	styles := make(Styles, len(t.Series))
	for _, s := range t.Series {
		ci := ColorIndex(t.ListTypeIndex(s.ListType), len(t.ListTypes), len(colors))
		styles[s.ShortName] = Style{
			Color:  colors[ci],
			Shape:  markers[MarkerIndex(s.Method)],
			Dashes: dashes[DashIndex(s.ShortName)],
		}
	}
	return styles
}

// Of returns the style of the named series, or a black circle style
// for an unknown name.
func (st Styles) Of(shortName string) Style {
	if s, ok := st[shortName]; ok {
		return s
	}
	return Style{Color: color.Black, Shape: draw.CircleGlyph{}}
}

func withAlpha(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * a))
	return n
}

// apply sets the styles of a line and its scatter points.
func (s Style) apply(l *plotter.Line, sc *plotter.Scatter) {
	l.LineStyle = s.LineStyle()
	sc.GlyphStyle = s.GlyphStyle()
}

const (
	sinπover6 = vg.Length(.500000000025921)
	cosπover6 = vg.Length(.866025403769473)
)

// TriDown is a glyph that draws a filled triangle pointing down.
type TriDown struct{}

// DrawGlyph implements the Glyph interface.
func (TriDown) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius + (sty.Radius-sty.Radius*sinπover6)/2
	p := make(vg.Path, 0, 4)
	p.Move(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r*cosπover6, Y: pt.Y + r*sinπover6})
	p.Line(vg.Point{X: pt.X + r*cosπover6, Y: pt.Y + r*sinπover6})
	p.Close()
	c.Fill(p)
}

// Diamond is a glyph that draws a filled square standing on a corner.
type Diamond struct{}

// DrawGlyph implements the Glyph interface.
func (Diamond) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius
	p := make(vg.Path, 0, 5)
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	c.Fill(p)
}

// Star is a glyph that draws a filled five-pointed star.
type Star struct{}

// DrawGlyph implements the Glyph interface.
func (Star) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	c.Fill(polygon(pt, 10, func(i int) vg.Length {
		if i%2 == 1 {
			return sty.Radius * 0.45
		}
		return sty.Radius * 1.2
	}))
}

// Hexagon is a glyph that draws a filled hexagon.
type Hexagon struct{}

// DrawGlyph implements the Glyph interface.
func (Hexagon) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	c.Fill(polygon(pt, 6, func(int) vg.Length { return sty.Radius }))
}

// FilledPlus is a glyph that draws a solid plus sign.
type FilledPlus struct{}

// DrawGlyph implements the Glyph interface.
func (FilledPlus) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r, w := sty.Radius, sty.Radius/3
	p := make(vg.Path, 0, 13)
	p.Move(vg.Point{X: pt.X - w, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + w, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + w, Y: pt.Y + w})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + w})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - w})
	p.Line(vg.Point{X: pt.X + w, Y: pt.Y - w})
	p.Line(vg.Point{X: pt.X + w, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - w, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - w, Y: pt.Y - w})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y - w})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y + w})
	p.Line(vg.Point{X: pt.X - w, Y: pt.Y + w})
	p.Close()
	c.Fill(p)
}

// polygon returns a closed path of n vertices around pt, starting
// straight up, with vertex i at distance radius(i).
func polygon(pt vg.Point, n int, radius func(i int) vg.Length) vg.Path {
	p := make(vg.Path, 0, n+1)
	for i := 0; i < n; i++ {
		θ := math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		r := radius(i)
		v := vg.Point{X: pt.X + r*vg.Length(math.Cos(θ)), Y: pt.Y + r*vg.Length(math.Sin(θ))}
		if i == 0 {
			p.Move(v)
		} else {
			p.Line(v)
		}
	}
	p.Close()
	return p
}

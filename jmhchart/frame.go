// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jmhchart

import (
	"image"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"golang.org/x/jmhplot/jmhtab"
)

// A Frame records the pixel geometry of one rendered chart. Pixel
// coordinates have their origin at the top left of the image.
type Frame struct {
	Bounds image.Rectangle

	// Data is the pixel rectangle of the plotting area.
	Data image.Rectangle

	project func(x, y float64) (float64, float64)
	points  []framePoint
}

type framePoint struct {
	series *jmhtab.Series
	index  int
	x, y   float64
}

// A Hit is the point found by Nearest.
type Hit struct {
	Series *jmhtab.Series
	Point  jmhtab.Point

	// X and Y are the pixel position of the point.
	X, Y float64
}

func newFrame(t *jmhtab.Table, p *plot.Plot, data draw.Canvas, dpi int, bounds image.Rectangle) *Frame {
	tx, ty := p.Transforms(&data)
	height := float64(bounds.Dy())
	toPixel := func(l vg.Length) float64 { return float64(l) / float64(vg.Inch) * float64(dpi) }

	f := &Frame{Bounds: bounds}
	f.project = func(x, y float64) (float64, float64) {
		return toPixel(tx(x)), height - toPixel(ty(y))
	}
	f.Data = image.Rect(
		int(math.Round(toPixel(data.Min.X))), int(math.Round(height-toPixel(data.Max.Y))),
		int(math.Round(toPixel(data.Max.X))), int(math.Round(height-toPixel(data.Min.Y))),
	)
	for _, s := range t.Series {
		for i, pt := range s.Points {
			if pt.Size <= 0 || pt.Score <= 0 {
				continue
			}
			x, y := f.project(float64(pt.Size), pt.Score)
			f.points = append(f.points, framePoint{series: s, index: i, x: x, y: y})
		}
	}
	return f
}

// Project returns the pixel position of the data point (size, score).
// It reports false if the point cannot appear on a log scale.
func (f *Frame) Project(size, score float64) (x, y float64, ok bool) {
	if size <= 0 || score <= 0 {
		return 0, 0, false
	}
	x, y = f.project(size, score)
	return x, y, true
}

// Nearest returns the point closest to the pixel position (x, y)
// among series for which visible reports true, provided it lies
// within radius pixels. A nil visible considers every series.
func (f *Frame) Nearest(x, y, radius float64, visible func(shortName string) bool) (Hit, bool) {
	best, bestD := -1, radius*radius
	for i, fp := range f.points {
		if visible != nil && !visible(fp.series.ShortName) {
			continue
		}
		dx, dy := fp.x-x, fp.y-y
		if d := dx*dx + dy*dy; d <= bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return Hit{}, false
	}
	fp := f.points[best]
	return Hit{Series: fp.series, Point: fp.series.Points[fp.index], X: fp.x, Y: fp.y}, true
}

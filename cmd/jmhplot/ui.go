// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"golang.org/x/jmhplot/jmhchart"
	"golang.org/x/jmhplot/jmhview"
)

// hoverRadius is how close, in pixels, the pointer must be to a point
// to show its tooltip.
const hoverRadius = 8

// showWindow opens the viewer window for sess and blocks until it is
// closed.
func showWindow(sess *jmhview.Session, cfg config) error {
	a := app.NewWithID("org.golang.jmhplot")
	w := a.NewWindow("jmhplot: " + sess.Table.Title)
	w.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
	w.SetContent(newViewer(sess).content)
	w.ShowAndRun()
	return nil
}

// A viewer binds a Session to the window controls.
type viewer struct {
	sess        *jmhview.Session
	checks      map[string]*widget.Check
	selectAll   *widget.Button
	unselectAll *widget.Button
	chart       *chartView
	content     fyne.CanvasObject

	// syncing is set while checks are updated from session state, so
	// their change callbacks do not feed back into the session.
	syncing bool
}

func newViewer(sess *jmhview.Session) *viewer {
	v := &viewer{
		sess:   sess,
		checks: make(map[string]*widget.Check),
	}
	controls := container.NewVBox()
	for _, m := range sess.Methods() {
		m := m
		c := widget.NewCheck(m, func(bool) {
			if v.syncing {
				return
			}
			sess.ToggleMethod(m)
		})
		v.checks[m] = c
		controls.Add(c)
	}
	v.selectAll = widget.NewButton("Select All", sess.SelectAll)
	v.unselectAll = widget.NewButton("Unselect All", sess.UnselectAll)
	controls.Add(widget.NewSeparator())
	controls.Add(v.selectAll)
	controls.Add(v.unselectAll)

	v.chart = newChartView(sess)
	v.content = container.NewBorder(nil, nil, container.NewVScroll(controls), nil, v.chart)

	sess.OnChange(v.refresh)
	v.syncChecks()
	return v
}

// refresh brings the controls and chart up to date with the session.
func (v *viewer) refresh() {
	v.syncChecks()
	v.chart.redraw()
}

func (v *viewer) syncChecks() {
	v.syncing = true
	defer func() { v.syncing = false }()
	for m, c := range v.checks {
		c.SetChecked(v.sess.MethodState(m))
	}
}

// chartView shows the rendered chart and a tooltip for the point
// under the pointer. The chart is rendered at the widget's size, so
// widget positions are image pixel positions.
type chartView struct {
	widget.BaseWidget
	sess *jmhview.Session

	img      *canvas.Image
	frame    *jmhchart.Frame
	rendered fyne.Size

	tip      jmhview.Tooltip
	hovering bool
}

var _ desktop.Hoverable = (*chartView)(nil)

func newChartView(sess *jmhview.Session) *chartView {
	c := &chartView{sess: sess}
	c.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	c.img.FillMode = canvas.ImageFillStretch
	c.ExtendBaseWidget(c)
	return c
}

// render draws the chart at size. Failures are logged and leave the
// previous image in place.
func (c *chartView) render(size fyne.Size) {
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		return
	}
	img, f, err := c.sess.Render(w, h)
	if err != nil {
		log.Print(err)
		return
	}
	c.img.Image = img
	c.frame = f
	c.rendered = size
	c.img.Refresh()
}

// redraw re-renders the chart for the current session state.
func (c *chartView) redraw() {
	c.render(c.Size())
	if c.hovering {
		c.updateHover(c.tip.X, c.tip.Y)
	}
	c.Refresh()
}

func (c *chartView) updateHover(x, y float64) {
	tt, ok := c.sess.HoverAt(c.frame, x, y, hoverRadius)
	c.tip, c.hovering = tt, ok
}

// MouseIn implements desktop.Hoverable.
func (c *chartView) MouseIn(ev *desktop.MouseEvent) { c.MouseMoved(ev) }

// MouseMoved implements desktop.Hoverable.
func (c *chartView) MouseMoved(ev *desktop.MouseEvent) {
	c.updateHover(float64(ev.Position.X), float64(ev.Position.Y))
	c.Refresh()
}

// MouseOut implements desktop.Hoverable.
func (c *chartView) MouseOut() {
	c.hovering = false
	c.Refresh()
}

func (c *chartView) MinSize() fyne.Size {
	c.ExtendBaseWidget(c)
	return fyne.NewSize(320, 240)
}

func (c *chartView) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Transparent)
	bg.StrokeWidth = 1.5
	bg.CornerRadius = 4
	r := &chartRenderer{c: c, tipBG: bg}
	r.rebuild()
	return r
}

type chartRenderer struct {
	c       *chartView
	tipBG   *canvas.Rectangle
	tipText []*canvas.Text
	objs    []fyne.CanvasObject
}

const tipPad = 6

func (r *chartRenderer) Destroy() {}

func (r *chartRenderer) MinSize() fyne.Size { return r.c.MinSize() }

func (r *chartRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *chartRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.c.Size())
	canvas.Refresh(r.c)
}

// rebuild recreates the tooltip text for the current hover state.
func (r *chartRenderer) rebuild() {
	r.tipText = r.tipText[:0]
	r.objs = []fyne.CanvasObject{r.c.img}
	if !r.c.hovering {
		return
	}
	title := canvas.NewText(r.c.tip.Title, color.Black)
	title.TextStyle.Bold = true
	r.tipText = append(r.tipText, title)
	for _, line := range r.c.tip.Lines {
		r.tipText = append(r.tipText, canvas.NewText(line, color.Black))
	}
	r.tipBG.FillColor = r.c.tip.Background
	r.tipBG.StrokeColor = r.c.tip.Border
	r.objs = append(r.objs, r.tipBG)
	for _, t := range r.tipText {
		r.objs = append(r.objs, t)
	}
}

func (r *chartRenderer) Layout(size fyne.Size) {
	r.c.img.Move(fyne.NewPos(0, 0))
	r.c.img.Resize(size)
	if size != r.c.rendered {
		r.c.render(size)
	}
	if !r.c.hovering {
		return
	}

	var box fyne.Size
	for _, t := range r.tipText {
		ms := t.MinSize()
		box.Width = fyne.Max(box.Width, ms.Width)
		box.Height += ms.Height
	}
	box = box.Add(fyne.NewSize(2*tipPad, 2*tipPad))

	// Above and to the right of the point, kept inside the widget.
	x := float32(r.c.tip.X) + 12
	y := float32(r.c.tip.Y) - 12 - box.Height
	if x+box.Width > size.Width {
		x = float32(r.c.tip.X) - 12 - box.Width
	}
	if y < 0 {
		y = float32(r.c.tip.Y) + 12
	}
	x = fyne.Max(0, x)
	y = fyne.Max(0, y)

	r.tipBG.Move(fyne.NewPos(x, y))
	r.tipBG.Resize(box)
	ty := y + tipPad
	for _, t := range r.tipText {
		ms := t.MinSize()
		t.Move(fyne.NewPos(x+tipPad, ty))
		t.Resize(ms)
		ty += ms.Height
	}
}

// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jmhview holds the interactive state of a chart viewer,
// independent of any window system.
//
// A Session tracks which series are shown and implements the viewer's
// control transitions: toggling every series of a method, showing all
// and hiding all. A GUI calls these from its event loop and redraws
// when the Session's change hook fires. A Session is not safe for
// concurrent use.
package jmhview

import (
	"image"

	"golang.org/x/jmhplot/jmhchart"
	"golang.org/x/jmhplot/jmhtab"
)

// A Session is the mutable view state over one Table.
type Session struct {
	Table *jmhtab.Table
	Chart *jmhchart.Chart

	visible  map[string]bool
	legend   []string
	onChange func()
}

// NewSession returns a Session over t with every series shown.
// onChange, if non-nil, is called after every transition.
func NewSession(t *jmhtab.Table, onChange func()) *Session {
	s := &Session{
		Table:   t,
		Chart:   jmhchart.New(t),
		visible: make(map[string]bool, len(t.Series)),
	}
	s.SelectAll()
	s.onChange = onChange
	return s
}

// OnChange replaces the hook called after every transition.
func (s *Session) OnChange(f func()) {
	s.onChange = f
}

// Methods returns the method labels in display order.
func (s *Session) Methods() []string {
	return s.Table.Methods
}

// ToggleMethod flips the series labeled method as a group. If any of
// them is shown, all of them are hidden; otherwise all are shown.
func (s *Session) ToggleMethod(method string) {
	series := s.Table.SeriesForMethod(method)
	if len(series) == 0 {
		return
	}
	show := !s.MethodState(method)
	for _, ser := range series {
		s.visible[ser.ShortName] = show
	}
	s.changed()
}

// SelectAll shows every series.
func (s *Session) SelectAll() {
	s.setAll(true)
}

// UnselectAll hides every series.
func (s *Session) UnselectAll() {
	s.setAll(false)
}

func (s *Session) setAll(show bool) {
	for _, ser := range s.Table.Series {
		s.visible[ser.ShortName] = show
	}
	s.changed()
}

// Visible reports whether the named series is shown.
func (s *Session) Visible(shortName string) bool {
	return s.visible[shortName]
}

// MethodState reports whether any series labeled method is shown.
// This is the checked state of the method's control.
func (s *Session) MethodState(method string) bool {
	for _, ser := range s.Table.SeriesForMethod(method) {
		if s.visible[ser.ShortName] {
			return true
		}
	}
	return false
}

// Shown returns the number of series shown.
func (s *Session) Shown() int {
	return len(s.legend)
}

// Legend returns the short names of the shown series in display order.
func (s *Session) Legend() []string {
	return append([]string(nil), s.legend...)
}

func (s *Session) changed() {
	s.legend = s.Chart.LegendEntries(s.Visible)
	if s.onChange != nil {
		s.onChange()
	}
}

// Render draws the shown series into a width×height image.
func (s *Session) Render(width, height int) (image.Image, *jmhchart.Frame, error) {
	return s.Chart.Render(width, height, s.Visible)
}

// HoverAt returns the tooltip for the shown point within radius
// pixels of (x, y) in a chart rendered with frame f.
func (s *Session) HoverAt(f *jmhchart.Frame, x, y, radius float64) (Tooltip, bool) {
	if f == nil {
		return Tooltip{}, false
	}
	hit, ok := f.Nearest(x, y, radius, s.Visible)
	if !ok {
		return Tooltip{}, false
	}
	tt, ok := s.Tooltip(hit.Series.ShortName, float64(hit.Point.Size), hit.Point.Score)
	tt.X, tt.Y = hit.X, hit.Y
	return tt, ok
}

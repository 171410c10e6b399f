// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jmhview

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/jmhplot/jmhtab"
)

// tooltipAlpha is the opacity of the tooltip background, about 85%.
const tooltipAlpha = 0xd9

// A Tooltip describes the hover annotation for one point.
type Tooltip struct {
	// Title is the series' list type, shown in bold.
	Title string

	// Lines are the detail lines below the title.
	Lines []string

	Background color.Color
	Border     color.Color

	// X and Y are the pixel position of the point, when known.
	X, Y float64
}

// Text returns the tooltip as a single string with the title marked
// in bold Markdown.
func (tt Tooltip) Text() string {
	return "**" + tt.Title + "**\n" + strings.Join(tt.Lines, "\n")
}

// Tooltip returns the annotation for the point (size, score) of the
// named series. It reports false if there is no such series.
func (s *Session) Tooltip(shortName string, size, score float64) (Tooltip, bool) {
	ser := s.Table.Lookup(shortName)
	if ser == nil {
		return Tooltip{}, false
	}
	unit := ser.Unit()
	if unit == "" {
		unit = s.Table.Unit
	}
	if unit == "" {
		unit = jmhtab.DefaultUnit
	}
	return Tooltip{
		Title: ser.ListType,
		Lines: []string{
			"Method: " + ser.Method,
			fmt.Sprintf("Size: %d", int(size)),
			fmt.Sprintf("Score: %.3f %s", score, unit),
		},
		Background: color.NRGBA{0xff, 0xff, 0xff, tooltipAlpha},
		Border:     s.Chart.Styles.Of(shortName).Color,
	}, true
}

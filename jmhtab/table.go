// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jmhtab organizes benchmark records into plot series.
//
// Records are labeled with jmhname, collected into a go-gg table, and
// split into one Series per short name. Series are ordered by list
// type, then method, then short name, which is the order they are
// drawn and listed in legends.
package jmhtab

import (
	"fmt"
	"io"
	"sort"

	"github.com/aclements/go-gg/table"

	"golang.org/x/jmhplot/jmhfmt"
	"golang.org/x/jmhplot/jmhname"
)

// DefaultUnit is the score unit assumed when no record names one.
const DefaultUnit = "ns/op"

// Column names of the underlying records table.
const (
	ColBenchmark = "Benchmark"
	ColShortName = "ShortName"
	ColMethod    = "Method"
	ColListType  = "ListType"
	ColSize      = "Size"
	ColScore     = "Score"
	colIndex     = "index"
)

// A Point is one measurement of a Series.
type Point struct {
	Size   int
	Score  float64
	Record *jmhfmt.Record
}

// A Series is all the records that share a short name, ordered by size.
type Series struct {
	ShortName string
	Method    string
	ListType  string
	Points    []Point
}

// Unit returns the score unit of s's points, or "" if they disagree.
func (s *Series) Unit() string {
	return unitOf(len(s.Points), func(i int) string {
		if r := s.Points[i].Record; r != nil {
			return r.Unit
		}
		return ""
	})
}

// A Table is the set of Series built from one report.
type Table struct {
	// Prefix is the common name prefix removed from every benchmark.
	Prefix string

	// Title is the display title derived from Prefix.
	Title string

	// Unit is the score unit shared by all records, DefaultUnit if
	// no record names a unit, or "" if records disagree.
	Unit string

	// Series lists every series in display order.
	Series []*Series

	// Methods and ListTypes are the distinct labels, sorted.
	Methods   []string
	ListTypes []string

	// rows is the labeled records table, sorted by ListType, Method,
	// ShortName, Size and Score.
	rows     *table.Table
	records  []jmhfmt.Record
	byName   map[string]*Series
	byMethod map[string][]*Series
}

// Build labels recs using d and groups them into a Table.
// recs must not be empty.
func Build(recs []jmhfmt.Record, d *jmhname.Deriver) (*Table, error) {
	if len(recs) == 0 {
		return nil, jmhfmt.ErrNoRecords
	}
	if d == nil {
		d = jmhname.NewDeriver()
	}

	names := make([]string, len(recs))
	for i := range recs {
		names[i] = recs[i].Name
	}
	prefix := jmhname.SeriesPrefix(names)

	n := len(recs)
	var (
		shorts  = make([]string, n)
		methods = make([]string, n)
		types   = make([]string, n)
		sizes   = make([]int, n)
		scores  = make([]float64, n)
		index   = make([]int, n)
	)
	for i := range recs {
		l := d.Label(recs[i].Name, prefix)
		shorts[i], methods[i], types[i] = l.ShortName, l.Method, l.ListType
		sizes[i], scores[i] = recs[i].Size, recs[i].Score
		index[i] = i
	}
	tab := new(table.Builder).
		Add(ColBenchmark, names).
		Add(ColShortName, shorts).
		Add(ColMethod, methods).
		Add(ColListType, types).
		Add(ColSize, sizes).
		Add(ColScore, scores).
		Add(colIndex, index).
		Done()

	t := &Table{
		Prefix:   prefix,
		Title:    jmhname.Title(prefix),
		Unit:     tableUnit(recs),
		records:  append([]jmhfmt.Record(nil), recs...),
		byName:   make(map[string]*Series),
		byMethod: make(map[string][]*Series),
	}

	sorted := sortBy(tab, ColListType, ColMethod, ColShortName, ColSize, ColScore)
	t.rows = table.Flatten(sorted)

	// GroupBy keeps first-appearance order, so groups come out in
	// sorted order.
	groups := table.GroupBy(sorted, ColShortName)
	for _, gid := range groups.Tables() {
		g := groups.Table(gid)
		short, ok := gid.Label().(string)
		if !ok {
			return nil, fmt.Errorf("unexpected group label %v", gid.Label())
		}
		s := &Series{
			ShortName: short,
			Method:    g.MustColumn(ColMethod).([]string)[0],
			ListType:  g.MustColumn(ColListType).([]string)[0],
		}
		gSizes := g.MustColumn(ColSize).([]int)
		gScores := g.MustColumn(ColScore).([]float64)
		for i, ri := range g.MustColumn(colIndex).([]int) {
			s.Points = append(s.Points, Point{Size: gSizes[i], Score: gScores[i], Record: &t.records[ri]})
		}
		t.Series = append(t.Series, s)
		t.byName[short] = s
		t.byMethod[s.Method] = append(t.byMethod[s.Method], s)
	}

	t.Methods = distinct(t.Series, func(s *Series) string { return s.Method })
	t.ListTypes = distinct(t.Series, func(s *Series) string { return s.ListType })
	return t, nil
}

// Lookup returns the series with the given short name, or nil.
func (t *Table) Lookup(shortName string) *Series {
	return t.byName[shortName]
}

// SeriesForMethod returns the series labeled with method, in display
// order.
func (t *Table) SeriesForMethod(method string) []*Series {
	return t.byMethod[method]
}

// Len returns the number of records in t.
func (t *Table) Len() int {
	return len(t.records)
}

// Fprint writes the labeled records of t to w as an aligned table, in
// display order.
func (t *Table) Fprint(w io.Writer) error {
	return table.Fprint(w, table.Remove(t.rows, colIndex), "%s", "%s", "%s", "%s", "%d", "%g")
}

// ListTypeIndex returns the position of listType in t.ListTypes, or -1.
func (t *Table) ListTypeIndex(listType string) int {
	i := sort.SearchStrings(t.ListTypes, listType)
	if i < len(t.ListTypes) && t.ListTypes[i] == listType {
		return i
	}
	return -1
}

// sortBy sorts g by the tuple of cols. table.SortBy skips columns that
// are already in order when comparing tuples, so this applies one
// stable single-column sort per key, least significant first.
func sortBy(g table.Grouping, cols ...string) table.Grouping {
	for i := len(cols) - 1; i >= 0; i-- {
		g = table.SortBy(g, cols[i])
	}
	return g
}

func distinct(series []*Series, key func(*Series) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range series {
		k := key(s)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func tableUnit(recs []jmhfmt.Record) string {
	u := unitOf(len(recs), func(i int) string { return recs[i].Unit })
	if u == "" && !anyUnit(recs) {
		return DefaultUnit
	}
	return u
}

func anyUnit(recs []jmhfmt.Record) bool {
	for i := range recs {
		if recs[i].Unit != "" {
			return true
		}
	}
	return false
}

// unitOf returns the single non-empty unit among n units, or "" if
// there is none or they disagree.
func unitOf(n int, unit func(i int) string) string {
	var u string
	for i := 0; i < n; i++ {
		switch x := unit(i); {
		case x == "":
		case u == "":
			u = x
		case u != x:
			return ""
		}
	}
	return u
}

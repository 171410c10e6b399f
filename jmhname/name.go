// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jmhname derives display labels from benchmark names.
//
// Harness output names every benchmark with its fully qualified
// class and method, such as
//
//	dev.aqsar.pcore.benchmarks.ObjectListBenchmarks.objectList_indexOf_hit
//
// Within one report these names share a long common prefix. The
// remainder, the short name, identifies a series. From the short name
// this package infers two grouping labels: the method (the operation
// being measured, "indexOf_hit") and the list type (the
// implementation under test, "objectList").
//
// The inference is a heuristic over naming conventions. It never
// fails; names that follow no convention map to themselves.
package jmhname

import (
	"sort"
	"strings"
)

// CommonPrefix returns the longest byte prefix shared by all names.
func CommonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, name := range names[1:] {
		n := len(prefix)
		if len(name) < n {
			n = len(name)
		}
		i := 0
		for i < n && prefix[i] == name[i] {
			i++
		}
		prefix = prefix[:i]
		if prefix == "" {
			break
		}
	}
	return prefix
}

// SeriesPrefix returns the prefix to strip from names to form short
// names. This is CommonPrefix(names), except that when the prefix is
// an entire name (only one distinct name is present) it is cut back to
// just after its last '.', so that short names are never empty.
func SeriesPrefix(names []string) string {
	prefix := CommonPrefix(names)
	for _, name := range names {
		if name == prefix {
			return prefix[:strings.LastIndexByte(prefix, '.')+1]
		}
	}
	return prefix
}

// ShortName returns name with prefix removed.
func ShortName(name, prefix string) string {
	return strings.TrimPrefix(name, prefix)
}

// Title returns the chart title for a series prefix.
func Title(prefix string) string {
	if t := strings.TrimRight(prefix, "."); t != "" {
		return t
	}
	return "Benchmarks"
}

// DefaultKnownOps lists the operation names recognized in short names
// by default.
var DefaultKnownOps = []string{
	"indexOf_miss", "indexOf_hit", "indexOf",
	"contains", "randomGet", "iteration",
	"sequentialAdd", "sequentialGet",
	"memoryFootprint", "mixedWorkload", "pooledIterator",
}

// A Deriver infers method and list type labels from short names.
//
// The zero Deriver recognizes no operation names.
type Deriver struct {
	// ops is the known operation list, longest first.
	ops []string
	// lower holds ops lower-cased, index aligned with ops.
	lower []string
}

// NewDeriver returns a Deriver that recognizes DefaultKnownOps plus
// extra. Duplicates and empty names in extra are ignored.
func NewDeriver(extra ...string) *Deriver {
	return NewDeriverOps(append(append([]string(nil), DefaultKnownOps...), extra...))
}

// NewDeriverOps returns a Deriver that recognizes exactly ops.
func NewDeriverOps(ops []string) *Deriver {
	d := new(Deriver)
	seen := make(map[string]bool)
	for _, op := range ops {
		if op == "" || seen[op] {
			continue
		}
		seen[op] = true
		d.ops = append(d.ops, op)
	}
	// Longest match wins. Equal lengths keep their given order so
	// results do not depend on map or sort instability.
	sort.SliceStable(d.ops, func(i, j int) bool {
		return len(d.ops[i]) > len(d.ops[j])
	})
	for _, op := range d.ops {
		d.lower = append(d.lower, strings.ToLower(op))
	}
	return d
}

// KnownOps returns the recognized operation names in match order.
func (d *Deriver) KnownOps() []string {
	return append([]string(nil), d.ops...)
}

// Method returns the operation label of shortName.
//
// The first known operation that occurs in shortName, ignoring case,
// is returned as spelled in the known list. Failing that, Method
// returns the text after the first '_', else the text after the last
// '.', else shortName itself.
func (d *Deriver) Method(shortName string) string {
	lower := strings.ToLower(shortName)
	for i, op := range d.lower {
		if strings.Contains(lower, op) {
			return d.ops[i]
		}
	}
	if _, after, ok := strings.Cut(shortName, "_"); ok {
		return after
	}
	if i := strings.LastIndexByte(shortName, '.'); i >= 0 {
		return shortName[i+1:]
	}
	return shortName
}

// ListType returns the implementation label of shortName: the text
// before the first '_' or '.', with surrounding space trimmed.
func ListType(shortName string) string {
	head := shortName
	if i := strings.IndexAny(shortName, "_."); i >= 0 {
		head = shortName[:i]
	}
	return strings.TrimSpace(head)
}

// Labels are the derived labels of one benchmark name.
type Labels struct {
	ShortName string
	Method    string
	ListType  string
}

// Label derives all labels of name given the series prefix.
func (d *Deriver) Label(name, prefix string) Labels {
	short := ShortName(name, prefix)
	return Labels{
		ShortName: short,
		Method:    d.Method(short),
		ListType:  ListType(short),
	}
}

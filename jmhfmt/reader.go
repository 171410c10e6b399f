// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jmhfmt reads the tabular text report printed by JMH and
// similar benchmark harnesses.
//
// A result line has the shape
//
//	<benchmark> <size> <mode> <count> <score> [anything...]
//
// for example
//
//	ObjectListBenchmarks.jdkList_add  1000  avgt  5  12.345 ± 0.101  ns/op
//
// Lines that do not have this shape (headers, progress output, blank
// lines) are skipped without error, so a whole harness log can be
// passed in unmodified.
package jmhfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoRecords is reported when an input contains no result lines.
var ErrNoRecords = errors.New("no benchmark lines parsed")

// A Record is one benchmark result line.
type Record struct {
	// Name is the full benchmark name as printed by the harness.
	Name string

	// Size is the benchmark's integer input parameter.
	Size int

	// Score is the measured value.
	Score float64

	// Mode is the column between size and count (e.g. "avgt").
	// It does not participate in parsing.
	Mode string

	// Unit is the last token of the text following the score if
	// it looks like a unit ("ns/op", "ops/s"), or "".
	Unit string

	// fileName and line record where this Record was read from.
	fileName string
	line     int
}

// Pos returns the file name and line number of r.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// String formats r as a result line.
func (r *Record) String() string {
	s := fmt.Sprintf("%s %d %s %g", r.Name, r.Size, r.Mode, r.Score)
	if r.Unit != "" {
		s += " " + r.Unit
	}
	return s
}

// linePattern matches anywhere in a line. The groups are name, size,
// mode and score; the count column between mode and score is not kept.
var linePattern = regexp.MustCompile(`(\S+)\s+(\d+)\s+(\S+)\s+\d+\s+([\d.]+)`)

// A Reader reads benchmark result lines.
//
// Its API is modeled on bufio.Scanner. The Record returned by Result
// is owned by the Reader and is overwritten by the next call to Scan;
// a caller should copy it if it needs to retain it.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	br  *bufio.Reader
	err error // current I/O error

	result   Record
	fileName string
	line     int
}

// NewReader constructs a reader to parse result lines from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.br = bufio.NewReaderSize(ior, maxLine)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.result = Record{}
	r.fileName = fileName
	r.line = 0
}

// maxLine is the longest line that can hold a result. Longer lines
// (JVM flag dumps, stack traces) are skipped like any other
// non-result line.
const maxLine = 64 << 10

// Scan advances the reader to the next result line and reports
// whether one was read. The caller should use the Result method to get
// the record. If Scan reaches EOF or an I/O error occurs, it returns
// false, in which case the caller should use the Err method to check
// for errors.
func (r *Reader) Scan() bool {
	if r.err != nil || r.br == nil {
		return false
	}
	for {
		line, long, err := r.readLine()
		if err != nil {
			if err != io.EOF {
				r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line+1, err)
			}
			return false
		}
		r.line++
		if long {
			continue
		}
		if rec, ok := parseLine(string(line)); ok {
			rec.fileName, rec.line = r.fileName, r.line
			r.result = rec
			return true
		}
	}
}

// readLine returns the next line without its line ending. If the line
// does not fit in the buffer, readLine consumes all of it and reports
// long.
func (r *Reader) readLine() (line []byte, long bool, err error) {
	line, err = r.br.ReadSlice('\n')
	for err == bufio.ErrBufferFull {
		long = true
		line, err = r.br.ReadSlice('\n')
	}
	if err == io.EOF && (long || len(line) > 0) {
		// Final line without a newline.
		err = nil
	}
	if err != nil {
		return nil, false, err
	}
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, long, nil
}

// Result returns the record that was just read by Scan.
func (r *Reader) Result() *Record {
	return &r.result
}

// Err returns the I/O error that stopped Scan, if any.
// If Scan stopped because it read the whole input, Err returns nil.
func (r *Reader) Err() error {
	return r.err
}

// parseLine extracts a Record from line. It reports false for lines
// that are not result lines, including lines whose numbers match the
// pattern but do not fit the Record fields.
func parseLine(line string) (Record, bool) {
	m := linePattern.FindStringSubmatchIndex(line)
	if m == nil {
		return Record{}, false
	}
	group := func(i int) string { return line[m[2*i]:m[2*i+1]] }

	size, err := strconv.Atoi(group(2))
	if err != nil {
		return Record{}, false
	}
	// The score group also admits strings like "1.2.3" or ".".
	score, err := strconv.ParseFloat(group(4), 64)
	if err != nil {
		return Record{}, false
	}
	return Record{
		Name:  group(1),
		Size:  size,
		Score: score,
		Mode:  group(3),
		Unit:  unitOf(line[m[1]:]),
	}, true
}

// unitOf returns the last field of rest if it looks like a unit.
func unitOf(rest string) string {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	if strings.Contains(last, "/") {
		return last
	}
	return ""
}

// ReadAll reads every result line from r.
// Unlike Reader, it returns ErrNoRecords if r contained none.
func ReadAll(r io.Reader, fileName string) ([]Record, error) {
	reader := NewReader(r, fileName)
	var recs []Record
	for reader.Scan() {
		recs = append(recs, *reader.Result())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}
	return recs, nil
}

// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jmhfmt

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func parseAll(t *testing.T, data string) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []Record
	for r.Scan() {
		out = append(out, *r.Result())
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

func compareRecords(t *testing.T, got, want []Record) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Record{}), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("records differ (-want +got):\n%s", diff)
	}
}

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		want        []Record
	}
	for _, test := range []testCase{
		{
			"basic",
			"com.foo.ArrayList.indexOf_hit  1024  thrpt  5  12.345\n",
			[]Record{{Name: "com.foo.ArrayList.indexOf_hit", Size: 1024, Score: 12.345, Mode: "thrpt"}},
		},
		{
			"jmh columns",
			"ObjectListBenchmarks.jdkList_add  10  avgt  5  41.253 ±  0.812  ns/op\n",
			[]Record{{Name: "ObjectListBenchmarks.jdkList_add", Size: 10, Score: 41.253, Mode: "avgt", Unit: "ns/op"}},
		},
		{
			"integer score",
			"a.b 0 ss 1 7",
			[]Record{{Name: "a.b", Size: 0, Score: 7, Mode: "ss"}},
		},
		{
			"trailing text without unit",
			"a.b 16 avgt 3 1.5 extra columns here\n",
			[]Record{{Name: "a.b", Size: 16, Score: 1.5, Mode: "avgt"}},
		},
		{
			"tabs",
			"a.b\t16\tavgt\t3\t1.5\tns/op\n",
			[]Record{{Name: "a.b", Size: 16, Score: 1.5, Mode: "avgt", Unit: "ns/op"}},
		},
		{
			"indented",
			"   a.b   16   avgt   3   1.5\n",
			[]Record{{Name: "a.b", Size: 16, Score: 1.5, Mode: "avgt"}},
		},
		{
			"header and blank lines",
			"Benchmark  (size)  Mode  Cnt  Score  Error  Units\n\n\n",
			nil,
		},
		{
			"malformed score",
			"a.b 16 avgt 3 1.2.3 ns/op\n",
			nil,
		},
		{
			"size overflow",
			"a.b 99999999999999999999999 avgt 3 1.5\n",
			nil,
		},
		{
			"mixed",
			"# JMH version: 1.37\n" +
				"x.first 10 avgt 5 1.0 ns/op\n" +
				"Iteration   1: 41.873 ns/op\n" +
				"x.second 100 avgt 5 2.0 ns/op\n",
			[]Record{
				{Name: "x.first", Size: 10, Score: 1, Mode: "avgt", Unit: "ns/op"},
				{Name: "x.second", Size: 100, Score: 2, Mode: "avgt", Unit: "ns/op"},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.input)
			compareRecords(t, got, test.want)
		})
	}
}

func TestReaderPos(t *testing.T) {
	r := NewReader(strings.NewReader("header\nx.a 1 avgt 1 2\n\nx.b 2 avgt 1 3\n"), "in.txt")
	var lines []int
	for r.Scan() {
		name, line := r.Result().Pos()
		if name != "in.txt" {
			t.Errorf("want file name in.txt, got %q", name)
		}
		lines = append(lines, line)
	}
	if want := []int{2, 4}; !cmp.Equal(want, lines) {
		t.Errorf("want lines %v, got %v", want, lines)
	}
}

func TestReaderIOError(t *testing.T) {
	ioErr := errors.New("disk on fire")
	r := NewReader(errReader{ioErr}, "in.txt")
	if r.Scan() {
		t.Fatal("Scan succeeded on failing reader")
	}
	if !errors.Is(r.Err(), ioErr) {
		t.Fatalf("want %v, got %v", ioErr, r.Err())
	}
	if !strings.HasPrefix(r.Err().Error(), "in.txt:1: ") {
		t.Errorf("error should carry position, got %q", r.Err())
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

// failAfter returns data and then fails with err.
type failAfter struct {
	data io.Reader
	err  error
}

func (r *failAfter) Read(p []byte) (int, error) {
	n, err := r.data.Read(p)
	if err == io.EOF {
		return n, r.err
	}
	return n, err
}

func TestReaderIOErrorLine(t *testing.T) {
	ioErr := errors.New("disk on fire")
	r := NewReader(&failAfter{strings.NewReader("x.a 1 avgt 1 2\nheader\n"), ioErr}, "in.txt")
	if !r.Scan() {
		t.Fatalf("first Scan failed: %v", r.Err())
	}
	if r.Scan() {
		t.Fatal("Scan succeeded past failure")
	}
	// The failed read is on line 3.
	if !strings.HasPrefix(r.Err().Error(), "in.txt:3: ") {
		t.Errorf("error should name the failed line, got %q", r.Err())
	}
}

func TestReaderLongLine(t *testing.T) {
	for _, long := range []string{
		strings.Repeat("#", 2<<20),
		strings.Repeat("x", maxLine-1),
		strings.Repeat("x", maxLine),
		strings.Repeat("x", maxLine+1),
	} {
		input := "com.foo.A_x 16 avgt 5 1.0\n" + long + "\ncom.foo.B_x 16 avgt 5 2.0\n"
		recs, err := ReadAll(strings.NewReader(input), "long")
		if err != nil {
			t.Fatalf("%d byte line: %v", len(long), err)
		}
		compareRecords(t, recs, []Record{
			{Name: "com.foo.A_x", Size: 16, Score: 1, Mode: "avgt"},
			{Name: "com.foo.B_x", Size: 16, Score: 2, Mode: "avgt"},
		})
		if _, line := recs[1].Pos(); line != 3 {
			t.Errorf("%d byte line: second record on line %d, want 3", len(long), line)
		}
	}

	// An overlong last line without a newline ends the input cleanly.
	recs, err := ReadAll(strings.NewReader("x.a 1 avgt 1 2\n"+strings.Repeat("#", maxLine*3)), "long")
	if err != nil || len(recs) != 1 {
		t.Errorf("trailing long line: %d records, err %v", len(recs), err)
	}
}

func TestReaderLineEndings(t *testing.T) {
	got := parseAll(t, "x.a 1 avgt 1 2 ns/op\r\nx.b 1 avgt 1 3 ns/op")
	compareRecords(t, got, []Record{
		{Name: "x.a", Size: 1, Score: 2, Mode: "avgt", Unit: "ns/op"},
		{Name: "x.b", Size: 1, Score: 3, Mode: "avgt", Unit: "ns/op"},
	})
}

func TestReadAll(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(
		"com.foo.ArrayList.indexOf_hit  1024  thrpt  5  12.345\n"+
			"com.foo.LinkedList.indexOf_hit 1024 thrpt 5 45.678\n"), "test")
	if err != nil {
		t.Fatal(err)
	}
	compareRecords(t, recs, []Record{
		{Name: "com.foo.ArrayList.indexOf_hit", Size: 1024, Score: 12.345, Mode: "thrpt"},
		{Name: "com.foo.LinkedList.indexOf_hit", Size: 1024, Score: 45.678, Mode: "thrpt"},
	})

	_, err = ReadAll(strings.NewReader("nothing to see here\n"), "test")
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("want ErrNoRecords, got %v", err)
	}
}

func TestRecordString(t *testing.T) {
	r := Record{Name: "x.a", Size: 10, Score: 1.5, Mode: "avgt", Unit: "ns/op"}
	if got, want := r.String(), "x.a 10 avgt 1.5 ns/op"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

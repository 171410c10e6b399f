// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"golang.org/x/jmhplot/jmhview"
)

// captureLog redirects the standard logger for the duration of t.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	out, prefix, flags := log.Writer(), log.Prefix(), log.Flags()
	log.SetOutput(&buf)
	log.SetPrefix("jmhplot: ")
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetPrefix(prefix)
		log.SetFlags(flags)
	})
	return &buf
}

// recorder is a showFunc that keeps what it was given.
type recorder struct {
	sess  *jmhview.Session
	cfg   config
	calls int
}

func (r *recorder) show(sess *jmhview.Session, cfg config) error {
	r.sess, r.cfg = sess, cfg
	r.calls++
	return nil
}

func testdata(name string) string { return filepath.Join("testdata", name) }

func TestRun(t *testing.T) {
	captureLog(t)
	var r recorder
	if code := run([]string{"-f", testdata("benchmarks.txt")}, nil, r.show); code != 0 {
		t.Fatalf("exit status %d", code)
	}
	if r.calls != 1 {
		t.Fatalf("show called %d times", r.calls)
	}
	tab := r.sess.Table
	if tab.Len() != 9 || len(tab.Series) != 5 {
		t.Errorf("got %d records in %d series, want 9 in 5", tab.Len(), len(tab.Series))
	}
	if diff := cmp.Diff([]string{"bulkAdd", "contains", "indexOf_hit"}, tab.Methods); diff != "" {
		t.Errorf("methods (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"arrayList", "objectList"}, tab.ListTypes); diff != "" {
		t.Errorf("list types (-want +got):\n%s", diff)
	}
	if tab.Title != "dev.aqsar.pcore.benchmarks.ListBenchmarks" {
		t.Errorf("title %q", tab.Title)
	}
	if r.sess.Shown() != 5 {
		t.Errorf("want all 5 series shown, got %d", r.sess.Shown())
	}
	want := config{File: testdata("benchmarks.txt"), Ops: []string{}, Width: 1500, Height: 900}
	if diff := cmp.Diff(want, r.cfg, cmpEmpty); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

var cmpEmpty = cmp.Comparer(func(a, b []string) bool {
	return strings.Join(a, "\x00") == strings.Join(b, "\x00")
})

func TestRunStdin(t *testing.T) {
	captureLog(t)
	var r recorder
	stdin := strings.NewReader("com.foo.ArrayList.indexOf_hit  1024  thrpt  5  12.345\n" +
		"com.foo.LinkedList.indexOf_hit 1024 thrpt 5 45.678\n")
	if code := run([]string{"--file", "-"}, stdin, r.show); code != 0 {
		t.Fatalf("exit status %d", code)
	}
	if diff := cmp.Diff([]string{"ArrayList.indexOf_hit", "LinkedList.indexOf_hit"}, r.sess.Legend()); diff != "" {
		t.Errorf("legend (-want +got):\n%s", diff)
	}
}

func TestRunNoRecords(t *testing.T) {
	buf := captureLog(t)
	var r recorder
	if code := run([]string{"-f", testdata("noise.txt")}, nil, r.show); code != 1 {
		t.Errorf("exit status %d, want 1", code)
	}
	if r.calls != 0 {
		t.Error("window shown with no records")
	}
	if got, want := buf.String(), "jmhplot: No benchmark lines parsed. Check file format.\n"; got != want {
		t.Errorf("log output %q, want %q", got, want)
	}
}

func TestRunMissingFile(t *testing.T) {
	buf := captureLog(t)
	var r recorder
	if code := run([]string{"-f", testdata("missing.txt")}, nil, r.show); code != 1 {
		t.Errorf("exit status %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "missing.txt") {
		t.Errorf("diagnostic does not name the file: %q", buf.String())
	}
}

func TestRunBadArgs(t *testing.T) {
	for _, args := range [][]string{
		{"extra"},
		{"--nope"},
		{"--width", "0"},
		{"--config", testdata("missing.yaml")},
	} {
		captureLog(t)
		var r recorder
		if code := run(args, nil, r.show); code != 1 {
			t.Errorf("%q: exit status %d, want 1", args, code)
		}
	}
}

func TestRunConfigFile(t *testing.T) {
	captureLog(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "jmhplot.yaml")
	abs, err := filepath.Abs(testdata("benchmarks.txt"))
	if err != nil {
		t.Fatal(err)
	}
	yaml := "file: " + abs + "\nop:\n  - bulk\nwidth: 800\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o666); err != nil {
		t.Fatal(err)
	}

	var r recorder
	// Flags override the file.
	if code := run([]string{"--config", cfgPath, "--height", "600"}, nil, r.show); code != 0 {
		t.Fatalf("exit status %d", code)
	}
	if r.cfg.File != abs || r.cfg.Width != 800 || r.cfg.Height != 600 {
		t.Errorf("unexpected config %+v", r.cfg)
	}
	if r.sess.Table.Lookup("objectList_bulkAdd").Method != "bulk" {
		t.Errorf("configured op not recognized: %+v", r.sess.Table.Methods)
	}
}

func TestRunEnv(t *testing.T) {
	captureLog(t)
	t.Setenv("JMHPLOT_FILE", testdata("benchmarks.txt"))
	t.Setenv("JMHPLOT_WIDTH", "1024")
	var r recorder
	if code := run([]string{}, nil, r.show); code != 0 {
		t.Fatalf("exit status %d", code)
	}
	if r.cfg.File != testdata("benchmarks.txt") || r.cfg.Width != 1024 {
		t.Errorf("environment not applied: %+v", r.cfg)
	}
}

func TestRunVerbose(t *testing.T) {
	buf := captureLog(t)
	var r recorder
	if code := run([]string{"-v", "-f", testdata("benchmarks.txt")}, nil, r.show); code != 0 {
		t.Fatalf("exit status %d", code)
	}
	out := buf.String()
	for _, want := range []string{
		"9 results in 5 series, 3 methods, 2 list types",
		"objectList_indexOf_hit: method indexOf_hit, list type objectList, 2 points from " + testdata("benchmarks.txt") + ":",
		"ns/op",
		"known methods: ",
		"Benchmark",
		"ShortName",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}

	// --op extends the listed methods.
	buf.Reset()
	if code := run([]string{"-v", "--op", "frobnicate", "-f", testdata("benchmarks.txt")}, nil, r.show); code != 0 {
		t.Fatalf("exit status %d", code)
	}
	if !strings.Contains(buf.String(), "frobnicate") {
		t.Errorf("configured op not in known methods:\n%s", buf.String())
	}
}

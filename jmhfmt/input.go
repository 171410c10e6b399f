// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jmhfmt

import (
	"io"
	"os"
)

// An Input reads result lines from one file or from standard input.
type Input struct {
	// Path is the file to read. "" and "-" mean Stdin.
	Path string

	// Stdin is read when Path names standard input. If nil,
	// os.Stdin is used.
	Stdin io.Reader

	started bool
	reader  Reader
	file    io.Closer
	err     error
}

// open starts reading the input of in.
func (in *Input) open() {
	in.started = true
	if in.Path == "" || in.Path == "-" {
		stdin := in.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		in.reader.Reset(stdin, "<stdin>")
		return
	}
	file, err := os.Open(in.Path)
	if err != nil {
		in.err = err
		return
	}
	in.file = file
	in.reader.Reset(file, in.Path)
}

// Scan advances to the next result of the input and reports whether
// one was read. The caller should use the Result method to get the
// result. If Scan reaches the end of the input, or if an I/O error
// occurs, it returns false. In this case, the caller should use the
// Err method to check for errors.
func (in *Input) Scan() bool {
	if !in.started {
		in.open()
	}
	if in.err != nil {
		return false
	}
	if in.reader.Scan() {
		return true
	}
	in.err = in.reader.Err()
	in.close()
	return false
}

func (in *Input) close() {
	if in.file != nil {
		in.file.Close()
		in.file = nil
	}
}

// Result returns the record that was just read by Scan.
// See Reader.Result.
func (in *Input) Result() *Record {
	return in.reader.Result()
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read the whole input,
// or if Scan has not yet returned false, Err returns nil.
func (in *Input) Err() error {
	return in.err
}

// Load reads every record of the input.
// It returns ErrNoRecords if the input was readable but held no
// result lines.
func (in *Input) Load() ([]Record, error) {
	var recs []Record
	for in.Scan() {
		recs = append(recs, *in.Result())
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}
	return recs, nil
}

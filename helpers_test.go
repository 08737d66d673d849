// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import (
	"bytes"
	"errors"
	"io"
)

var (
	errMirror  = errors.New("mirror failed")
	errPrimary = errors.New("primary failed")
	errSource  = errors.New("source failed")
)

// limitWriter accepts up to limit bytes in total and then fails with err,
// reporting how much of the failing write it accepted.
type limitWriter struct {
	buf   bytes.Buffer
	limit int
	err   error
}

func (w *limitWriter) Write(p []byte) (int, error) {
	room := w.limit - w.buf.Len()
	if room >= len(p) {
		return w.buf.Write(p)
	}

	if room < 0 {
		room = 0
	}

	w.buf.Write(p[:room])

	return room, w.err
}

// shortWriter accepts half of every write without reporting an error.
type shortWriter struct {
	buf bytes.Buffer
}

func (w *shortWriter) Write(p []byte) (int, error) {
	n := len(p) / 2
	w.buf.Write(p[:n])

	return n, nil
}

// errReader fails every read without returning data.
type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}

// recorder counts the calls made on it and can be configured to fail them.
type recorder struct {
	bytes.Buffer
	reads, writes, flushes, closes int
	flushErr, closeErr             error
}

func (r *recorder) Read(p []byte) (int, error) {
	r.reads++

	return r.Buffer.Read(p)
}

func (r *recorder) Write(p []byte) (int, error) {
	r.writes++

	return r.Buffer.Write(p)
}

func (r *recorder) Flush() error {
	r.flushes++

	return r.flushErr
}

func (r *recorder) Close() error {
	r.closes++

	return r.closeErr
}

var (
	_ io.ReadWriteCloser = (*recorder)(nil)
	_ Flusher            = (*recorder)(nil)
)

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import (
	"io"
)

// Reader is an io.Reader that writes to its mirror every byte it reads from its source.
// There is no internal buffering: the mirror write completes before Read returns.
type Reader struct {
	src    io.Reader
	mirror io.Writer
}

// NewReader returns a Reader that reads from src and mirrors to mirror.
// No I/O is performed.
func NewReader(src io.Reader, mirror io.Writer) *Reader {
	return &Reader{
		src:    src,
		mirror: mirror,
	}
}

// Read implements io.Reader.
//
// Bytes returned by the source are mirrored even when the source also returns an
// error, since they are handed to the caller. If the mirror fails, Read returns the
// number of bytes placed in p and the mirror's error.
func (t *Reader) Read(p []byte) (int, error) {
	return teeRead(t.src, t.mirror, p)
}

// WriteTo implements io.WriterTo, so io.Copy from a Reader keeps the source's own
// fast path. Every byte w accepts is handed to the mirror, including the bytes of a
// write that accepted part of its input and then failed.
func (t *Reader) WriteTo(w io.Writer) (int64, error) {
	dst := acceptedWriter{w: w, mirror: t.mirror}

	if wt, ok := t.src.(io.WriterTo); ok {
		return wt.WriteTo(dst) //nolint:wrapcheck
	}

	return io.Copy(dst, t.src) //nolint:wrapcheck
}

// Source returns the wrapped source.
func (t *Reader) Source() io.Reader {
	return t.src
}

// Mirror returns the mirror.
func (t *Reader) Mirror() io.Writer {
	return t.mirror
}

// Close closes the source and the mirror if they implement io.Closer.
func (t *Reader) Close() error {
	return closeAll(t.src, t.mirror)
}

func teeRead(src io.Reader, mirror io.Writer, p []byte) (int, error) {
	n, err := src.Read(p)
	if n > 0 {
		if werr := writeFull(mirror, p[:n]); werr != nil {
			return n, werr
		}
	}

	return n, err //nolint:wrapcheck
}

// acceptedWriter writes to w and mirrors p[:n] for whatever n w reports, even
// alongside an error. It has no ReadFrom, so io.Copy always goes through Write.
type acceptedWriter struct {
	w      io.Writer
	mirror io.Writer
}

func (a acceptedWriter) Write(p []byte) (int, error) {
	n, err := a.w.Write(p)
	if n > 0 {
		if merr := writeFull(a.mirror, p[:n]); merr != nil {
			return n, merr
		}
	}

	if err != nil {
		return n, err //nolint:wrapcheck
	}

	if n < len(p) {
		return n, io.ErrShortWrite
	}

	return n, nil
}

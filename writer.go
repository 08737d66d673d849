// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import (
	"io"
)

// Writer is an io.Writer that writes to a primary destination and duplicates every byte
// the primary accepts to a mirror.
//
// The primary decides the outcome: if it fails, the mirror is not written for that
// call. If the primary succeeds and the mirror fails, Write returns the primary's byte
// count and the mirror's error, and the primary keeps the bytes it accepted.
type Writer struct {
	primary io.Writer
	mirror  io.Writer
}

// NewWriter returns a Writer over primary and mirror. No I/O is performed.
func NewWriter(primary, mirror io.Writer) *Writer {
	return &Writer{
		primary: primary,
		mirror:  mirror,
	}
}

// Write implements io.Writer.
func (t *Writer) Write(p []byte) (int, error) {
	n, err := t.primary.Write(p)
	if err != nil {
		return n, err //nolint:wrapcheck
	}

	if err := writeFull(t.mirror, p[:n]); err != nil {
		return n, err
	}

	if n < len(p) {
		return n, io.ErrShortWrite
	}

	return n, nil
}

// Flush flushes the primary and then the mirror, for those that implement Flusher.
// The mirror is not flushed when the primary fails.
func (t *Writer) Flush() error {
	if err := flush(t.primary); err != nil {
		return err
	}

	return flush(t.mirror)
}

// Primary returns the primary destination.
func (t *Writer) Primary() io.Writer {
	return t.primary
}

// Mirror returns the mirror.
func (t *Writer) Mirror() io.Writer {
	return t.mirror
}

// Close closes the primary and the mirror if they implement io.Closer.
// Buffered data is not flushed; call Flush first.
func (t *Writer) Close() error {
	return closeAll(t.primary, t.mirror)
}

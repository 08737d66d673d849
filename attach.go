// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import (
	"io"
	"os"
)

// DebugSink is the mirror used by DebugReader and DebugWriter.
var DebugSink io.Writer = os.Stderr

// AttachReader attaches mirror to r and returns the richest tee r supports:
// a *BufReader for a BufferedReader, a *ReadSeeker for an io.ReadSeeker and a *Reader
// otherwise. The tee takes ownership of r; see Borrow for sharing the mirror.
//
// A source that is both buffered and seekable gets a *BufReader, which does not
// offer Seek: seeking under a buffer would leave buffered bytes that were never
// read from the new position. Use NewReadSeeker on the unbuffered stream instead.
func AttachReader(r io.Reader, mirror io.Writer) io.Reader {
	switch src := r.(type) {
	case BufferedReader:
		return NewBufReader(src, mirror)
	case io.ReadSeeker:
		return NewReadSeeker(src, mirror)
	default:
		return NewReader(r, mirror)
	}
}

// AttachWriter attaches mirror to w and returns a *WriteSeeker for an io.WriteSeeker
// and a *Writer otherwise.
func AttachWriter(w io.Writer, mirror io.Writer) io.Writer {
	if ws, ok := w.(io.WriteSeeker); ok {
		return NewWriteSeeker(ws, mirror)
	}

	return NewWriter(w, mirror)
}

// DebugReader attaches DebugSink to r. Closing the result does not close DebugSink.
func DebugReader(r io.Reader) io.Reader {
	return AttachReader(r, Borrow(DebugSink))
}

// DebugWriter attaches DebugSink to w. Closing the result does not close DebugSink.
func DebugWriter(w io.Writer) io.Writer {
	return AttachWriter(w, Borrow(DebugSink))
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import "io"

// ReadSeeker is a Reader over a seekable source.
//
// Seek moves the source only. The mirror is an append-only record of the bytes read
// through the tee: seeking never repositions or truncates it, and bytes read twice
// after seeking back are mirrored twice.
type ReadSeeker struct {
	*Reader
	seeker io.Seeker
}

// NewReadSeeker returns a ReadSeeker over src. No I/O is performed.
func NewReadSeeker(src io.ReadSeeker, mirror io.Writer) *ReadSeeker {
	return &ReadSeeker{
		Reader: NewReader(src, mirror),
		seeker: src,
	}
}

// Seek implements io.Seeker by forwarding to the source.
func (t *ReadSeeker) Seek(offset int64, whence int) (int64, error) {
	return t.seeker.Seek(offset, whence) //nolint:wrapcheck
}

// Position returns the current offset of the source.
func (t *ReadSeeker) Position() (int64, error) {
	return t.Seek(0, io.SeekCurrent)
}

// WriteSeeker is a Writer over a seekable primary. Seek moves the primary only; the
// mirror keeps appending in write order.
type WriteSeeker struct {
	*Writer
	seeker io.Seeker
}

// NewWriteSeeker returns a WriteSeeker over primary. No I/O is performed.
func NewWriteSeeker(primary io.WriteSeeker, mirror io.Writer) *WriteSeeker {
	return &WriteSeeker{
		Writer: NewWriter(primary, mirror),
		seeker: primary,
	}
}

// Seek implements io.Seeker by forwarding to the primary.
func (t *WriteSeeker) Seek(offset int64, whence int) (int64, error) {
	return t.seeker.Seek(offset, whence) //nolint:wrapcheck
}

// Position returns the current offset of the primary.
func (t *WriteSeeker) Position() (int64, error) {
	return t.Seek(0, io.SeekCurrent)
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// BufferedReader is a reader with an internal buffer that can be inspected before it
// is consumed. *bufio.Reader implements it.
type BufferedReader interface {
	io.Reader
	Peek(n int) ([]byte, error)
	Discard(n int) (discarded int, err error)
	Buffered() int
}

// BufReader is a tee over a BufferedReader. Bytes are mirrored when the caller consumes
// them, not when they enter the buffer, so peeked bytes are never mirrored twice and
// bytes that are never consumed are never mirrored at all.
//
// Unread operations are not offered. Re-reading an unread byte would mirror it again.
type BufReader struct {
	src    BufferedReader
	mirror io.Writer
}

// NewBufReader returns a BufReader that reads from src and mirrors consumed bytes to
// mirror. No I/O is performed.
func NewBufReader(src BufferedReader, mirror io.Writer) *BufReader {
	return &BufReader{
		src:    src,
		mirror: mirror,
	}
}

// Read implements io.Reader. The bytes read are mirrored before Read returns.
func (t *BufReader) Read(p []byte) (int, error) {
	return teeRead(t.src, t.mirror, p)
}

// Fill returns the buffered bytes that have not been consumed yet, filling the buffer
// from the source only when it is empty. Nothing is mirrored.
// The returned slice is only valid until the next read or Consume.
func (t *BufReader) Fill() ([]byte, error) {
	if n := t.src.Buffered(); n > 0 {
		return t.src.Peek(n) //nolint:wrapcheck
	}

	if _, err := t.src.Peek(1); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return t.src.Peek(t.src.Buffered()) //nolint:wrapcheck
}

// Peek returns the next n bytes without consuming or mirroring them.
func (t *BufReader) Peek(n int) ([]byte, error) {
	return t.src.Peek(n) //nolint:wrapcheck
}

// Buffered returns the number of bytes that can be consumed without reading from the source.
func (t *BufReader) Buffered() int {
	return t.src.Buffered()
}

// Consume mirrors the next n bytes and then discards them from the source.
// n may be larger than the buffer, in which case the source is refilled as needed.
// It returns the number of bytes consumed, which is less than n only on error.
//
// If the mirror fails the bytes are still consumed and the mirror error is returned.
func (t *BufReader) Consume(n int) (int, error) {
	if n < 0 {
		return 0, ErrNegativeCount
	}

	consumed := 0

	for consumed < n {
		buf, err := t.Fill()
		if len(buf) == 0 {
			if err == nil {
				err = io.ErrNoProgress
			}

			return consumed, err
		}

		chunk := min(n-consumed, len(buf))
		mirrorErr := writeFull(t.mirror, buf[:chunk])

		discarded, err := t.src.Discard(chunk)
		consumed += discarded

		if err != nil {
			return consumed, err //nolint:wrapcheck
		}

		if mirrorErr != nil {
			return consumed, mirrorErr
		}
	}

	return consumed, nil
}

// ReadByte implements io.ByteReader.
func (t *BufReader) ReadByte() (byte, error) {
	buf, err := t.Fill()
	if len(buf) == 0 {
		return 0, err
	}

	c := buf[0]

	if _, err := t.Consume(1); err != nil {
		return c, err
	}

	return c, nil
}

// ReadRune implements io.RuneReader.
func (t *BufReader) ReadRune() (r rune, size int, err error) {
	buf, err := t.Fill()
	if len(buf) == 0 {
		return 0, 0, err
	}

	// A rune can straddle the end of the buffered data.
	if len(buf) < utf8.UTFMax && !utf8.FullRune(buf) {
		if more, _ := t.src.Peek(utf8.UTFMax); len(more) > 0 {
			buf = more
		}
	}

	r, size = rune(buf[0]), 1
	if r >= utf8.RuneSelf {
		r, size = utf8.DecodeRune(buf)
	}

	if _, err := t.Consume(size); err != nil {
		return r, size, err
	}

	return r, size, nil
}

// ReadBytes reads until the first occurrence of delim, returning a slice that holds
// the data up to and including the delimiter. If the source ends first, it returns the
// data read and the error, often io.EOF. Exactly the returned bytes are mirrored.
func (t *BufReader) ReadBytes(delim byte) ([]byte, error) {
	var line []byte

	for {
		buf, err := t.Fill()
		if len(buf) == 0 {
			return line, err
		}

		if i := bytes.IndexByte(buf, delim); i >= 0 {
			line = append(line, buf[:i+1]...)
			_, err = t.Consume(i + 1)

			return line, err
		}

		line = append(line, buf...)

		if _, err := t.Consume(len(buf)); err != nil {
			return line, err
		}
	}
}

// ReadString is like ReadBytes but returns a string.
func (t *BufReader) ReadString(delim byte) (string, error) {
	line, err := t.ReadBytes(delim)

	return string(line), err
}

// WriteTo implements io.WriterTo by handing w the buffered data directly.
// The bytes w accepts are consumed and mirrored.
func (t *BufReader) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for {
		buf, err := t.Fill()
		if len(buf) == 0 {
			if errors.Is(err, io.EOF) {
				return total, nil
			}

			return total, err
		}

		n, werr := w.Write(buf)
		total += int64(n)

		if n > 0 {
			if _, err := t.Consume(n); err != nil {
				return total, err
			}
		}

		if werr != nil {
			return total, werr //nolint:wrapcheck
		}

		if n < len(buf) {
			return total, io.ErrShortWrite
		}
	}
}

// Source returns the wrapped source.
func (t *BufReader) Source() BufferedReader {
	return t.src
}

// Mirror returns the mirror.
func (t *BufReader) Mirror() io.Writer {
	return t.mirror
}

// Close closes the source and the mirror if they implement io.Closer.
func (t *BufReader) Close() error {
	return closeAll(t.src, t.mirror)
}

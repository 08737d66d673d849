// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import (
	"io"

	"github.com/hashicorp/go-multierror"
)

// Flusher is implemented by writers that buffer output, such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Borrow returns a view of w that can be used as a mirror without handing over its
// ownership. The view forwards Write and Flush but not Close, so closing a tee
// leaves w open.
func Borrow(w io.Writer) io.Writer {
	return borrowed{w: w}
}

type borrowed struct {
	w io.Writer
}

func (b borrowed) Write(p []byte) (int, error) {
	return b.w.Write(p) //nolint:wrapcheck
}

func (b borrowed) Flush() error {
	return flush(b.w)
}

// writeFull writes all of p to w, retrying short writes that report no error.
func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if n == 0 {
			return io.ErrShortWrite
		}

		p = p[n:]
	}

	return nil
}

func flush(w io.Writer) error {
	f, ok := w.(Flusher)
	if !ok {
		return nil
	}

	return f.Flush() //nolint:wrapcheck
}

// closeAll closes every stream that implements io.Closer, in order, and collects the errors.
func closeAll(streams ...any) error {
	var result *multierror.Error

	for _, s := range streams {
		c, ok := s.(io.Closer)
		if !ok {
			continue
		}

		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pump copies streams while honouring context cancellation.
// Cancellation is checked before every read, so a read that is already blocked is
// not interrupted.
package pump

import (
	"context"
	"io"
)

const chunkSize = 32 * 1024

// Copy copies src to dst until EOF, an error, or cancellation of ctx.
// It returns the number of bytes written to dst.
func Copy(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	return io.CopyBuffer(dst, &ctxReader{ctx: ctx, r: src}, make([]byte, chunkSize)) //nolint:wrapcheck
}

// CopyN is like Copy but stops after n bytes. It returns io.EOF if src ends first.
func CopyN(ctx context.Context, dst io.Writer, src io.Reader, n int64) (int64, error) {
	written, err := Copy(ctx, dst, io.LimitReader(src, n))
	if written == n {
		return n, nil
	}

	if written < n && err == nil {
		err = io.EOF
	}

	return written, err
}

type ctxReader struct {
	ctx context.Context //nolint:containedctx
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err //nolint:wrapcheck
	}

	return c.r.Read(p) //nolint:wrapcheck
}

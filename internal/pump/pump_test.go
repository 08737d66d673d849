// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pump

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/teeio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	var dst, mirror bytes.Buffer

	src := teeio.NewReader(strings.NewReader(strings.Repeat("abc", 50_000)), &mirror)

	n, err := Copy(context.Background(), &dst, src)
	require.NoError(t, err)
	assert.Equal(t, int64(150_000), n)
	assert.Equal(t, dst.String(), mirror.String())
}

func TestCopy_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dst, mirror bytes.Buffer

	n, err := Copy(ctx, &dst, teeio.NewReader(strings.NewReader("never read"), &mirror))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Zero(t, mirror.Len())
}

// cancelAfterFirst cancels the context once the first chunk has been written.
type cancelAfterFirst struct {
	buf    bytes.Buffer
	cancel context.CancelFunc
}

func (c *cancelAfterFirst) Write(p []byte) (int, error) {
	defer c.cancel()

	return c.buf.Write(p)
}

func TestCopy_CancelledBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mirror bytes.Buffer

	dst := &cancelAfterFirst{cancel: cancel}
	data := strings.Repeat("x", 3*chunkSize)

	n, err := Copy(ctx, dst, teeio.NewReader(strings.NewReader(data), &mirror))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(chunkSize), n)
	assert.Equal(t, chunkSize, dst.buf.Len())
	assert.Equal(t, chunkSize, mirror.Len(), "only the chunk that was read is mirrored")
}

func TestCopyN(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		n       int64
		want    string
		wantErr error
	}{
		{name: "exact", src: "0123456789", n: 10, want: "0123456789"},
		{name: "prefix", src: "0123456789", n: 4, want: "0123"},
		{name: "short source", src: "012", n: 4, want: "012", wantErr: io.EOF},
		{name: "zero", src: "012", n: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst bytes.Buffer

			n, err := CopyN(context.Background(), &dst, strings.NewReader(tt.src), tt.n)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, int64(len(tt.want)), n)
			assert.Equal(t, tt.want, dst.String())
		})
	}
}

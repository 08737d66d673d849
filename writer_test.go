// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_BothSinksReceiveEverything(t *testing.T) {
	data := randomBytes(t, 5000)

	for _, size := range []int{1, 3, 100, 4096, 5000} {
		t.Run(fmt.Sprintf("chunk %d", size), func(t *testing.T) {
			var primary, mirror bytes.Buffer

			tw := NewWriter(&primary, &mirror)

			for off := 0; off < len(data); off += size {
				end := min(off+size, len(data))
				n, err := tw.Write(data[off:end])
				require.NoError(t, err)
				assert.Equal(t, end-off, n)
			}

			assert.Equal(t, data, primary.Bytes())
			assert.Equal(t, data, mirror.Bytes())
		})
	}
}

func TestWriter_IOConveniences(t *testing.T) {
	var primary, mirror bytes.Buffer

	tw := NewWriter(&primary, &mirror)

	_, err := io.WriteString(tw, "hello ")
	require.NoError(t, err)

	_, err = io.Copy(tw, strings.NewReader("world"))
	require.NoError(t, err)

	_, err = fmt.Fprintf(tw, "%c", '!')
	require.NoError(t, err)

	assert.Equal(t, "hello world!", primary.String())
	assert.Equal(t, "hello world!", mirror.String())
}

func TestWriter_Errors(t *testing.T) {
	tests := []struct {
		name        string
		primary     io.Writer
		mirror      io.Writer
		wantN       int
		wantErr     error
		wantPrimary string
		wantMirror  string
	}{
		{
			name:        "primary fails, mirror untouched",
			primary:     &limitWriter{limit: 0, err: errPrimary},
			mirror:      &limitWriter{limit: 100},
			wantN:       0,
			wantErr:     errPrimary,
			wantPrimary: "",
			wantMirror:  "",
		},
		{
			name:        "primary fails part way, mirror untouched",
			primary:     &limitWriter{limit: 3, err: errPrimary},
			mirror:      &limitWriter{limit: 100},
			wantN:       3,
			wantErr:     errPrimary,
			wantPrimary: "abc",
			wantMirror:  "",
		},
		{
			name:        "mirror fails after primary succeeded",
			primary:     &limitWriter{limit: 100},
			mirror:      &limitWriter{limit: 2, err: errMirror},
			wantN:       6,
			wantErr:     errMirror,
			wantPrimary: "abcdef",
			wantMirror:  "ab",
		},
		{
			name:        "both succeed",
			primary:     &limitWriter{limit: 100},
			mirror:      &limitWriter{limit: 100},
			wantN:       6,
			wantPrimary: "abcdef",
			wantMirror:  "abcdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewWriter(tt.primary, tt.mirror).Write([]byte("abcdef"))

			assert.Equal(t, tt.wantN, n)

			if tt.wantErr != nil {
				assert.Same(t, tt.wantErr, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantPrimary, tt.primary.(*limitWriter).buf.String())
			assert.Equal(t, tt.wantMirror, tt.mirror.(*limitWriter).buf.String())
		})
	}
}

func TestWriter_PrimaryShortWrite(t *testing.T) {
	primary := &shortWriter{}

	var mirror bytes.Buffer

	n, err := NewWriter(primary, &mirror).Write([]byte("abcdef"))
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, "abc", primary.buf.String())
	assert.Equal(t, "abc", mirror.String(), "the mirror gets what the primary accepted")
}

func TestWriter_Flush(t *testing.T) {
	t.Run("flushes both buffered writers", func(t *testing.T) {
		var pbuf, mbuf bytes.Buffer

		tw := NewWriter(bufio.NewWriter(&pbuf), bufio.NewWriter(&mbuf))

		_, err := tw.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Zero(t, pbuf.Len())
		assert.Zero(t, mbuf.Len())

		require.NoError(t, tw.Flush())
		assert.Equal(t, "abc", pbuf.String())
		assert.Equal(t, "abc", mbuf.String())
	})

	t.Run("primary failure skips the mirror", func(t *testing.T) {
		primary := &recorder{flushErr: errPrimary}
		mirror := &recorder{}

		err := NewWriter(primary, mirror).Flush()
		assert.Same(t, errPrimary, err)
		assert.Equal(t, 1, primary.flushes)
		assert.Zero(t, mirror.flushes)
	})

	t.Run("mirror failure is reported", func(t *testing.T) {
		primary := &recorder{}
		mirror := &recorder{flushErr: errMirror}

		err := NewWriter(primary, mirror).Flush()
		assert.Same(t, errMirror, err)
		assert.Equal(t, 1, primary.flushes)
		assert.Equal(t, 1, mirror.flushes)
	})

	t.Run("borrowed mirror is still flushed", func(t *testing.T) {
		mirror := &recorder{}

		require.NoError(t, NewWriter(io.Discard, Borrow(mirror)).Flush())
		assert.Equal(t, 1, mirror.flushes)
	})

	t.Run("non flushers", func(t *testing.T) {
		assert.NoError(t, NewWriter(io.Discard, &bytes.Buffer{}).Flush())
	})
}

func TestWriter_Close(t *testing.T) {
	primary := &recorder{closeErr: errPrimary}
	mirror := &recorder{}
	tw := NewWriter(primary, mirror)

	assert.Same(t, primary, tw.Primary())
	assert.Same(t, mirror, tw.Mirror())

	err := tw.Close()
	assert.ErrorIs(t, err, errPrimary)
	assert.Equal(t, 1, primary.closes)
	assert.Equal(t, 1, mirror.closes)
}

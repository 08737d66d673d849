// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/teeio"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/matt-FFFFFF/teeio/internal/pump"
	"github.com/spf13/afero"
)

var (
	// ErrNoSource is returned when a job has no source.
	ErrNoSource = errors.New("no source specified")
	// ErrNegativeValue is returned when offset, length or lines is negative.
	ErrNegativeValue = errors.New("value must not be negative")
	// ErrLinesWithRange is returned when a job sets lines together with offset or length.
	ErrLinesWithRange = errors.New("lines can not be combined with offset or length")
	// ErrNotSeekable is returned when a job with an offset reads a source that can not seek.
	ErrNotSeekable = errors.New("source is not seekable")
)

// Job copies Source to Primary and mirrors every byte read to Mirrors.
//
// With Lines set only the first Lines lines are copied. With Offset or Length set the
// source is seeked to Offset and at most Length bytes are copied.
type Job struct {
	Name    string   `yaml:"name,omitempty" hcl:"name,label" docdesc:"Name of the job, used in logs and errors"`
	Source  string   `yaml:"source" hcl:"source" docdesc:"File, go-getter URL or - for stdin to read from"`
	Primary string   `yaml:"primary,omitempty" hcl:"primary,optional" docdesc:"File or - for stdout to copy to, defaults to -"`                //nolint:lll
	Mirrors []string `yaml:"mirrors,omitempty" hcl:"mirrors,optional" docdesc:"Files, - for stdout or stderr, that receive a copy of the bytes read"` //nolint:lll
	Append  bool     `yaml:"append,omitempty" hcl:"append,optional" docdesc:"Append to file sinks instead of truncating them"`
	Offset  int64    `yaml:"offset,omitempty" hcl:"offset,optional" docdesc:"Byte offset to start reading from, the source must be seekable"` //nolint:lll
	Length  int64    `yaml:"length,omitempty" hcl:"length,optional" docdesc:"Maximum number of bytes to copy, 0 copies to the end"`
	Lines   int      `yaml:"lines,omitempty" hcl:"lines,optional" docdesc:"Number of lines to copy, 0 copies everything"`
}

// Validate checks the job on its own.
func (j Job) Validate() error {
	var result *multierror.Error

	if j.Source == "" {
		result = multierror.Append(result, fmt.Errorf("job %q: %w", j.Name, ErrNoSource))
	}

	if j.Offset < 0 || j.Length < 0 || j.Lines < 0 {
		result = multierror.Append(result, fmt.Errorf("job %q: %w", j.Name, ErrNegativeValue))
	}

	if j.Lines > 0 && (j.Offset > 0 || j.Length > 0) {
		result = multierror.Append(result, fmt.Errorf("job %q: %w", j.Name, ErrLinesWithRange))
	}

	return result.ErrorOrNil()
}

// PrimaryName returns the primary sink, defaulting to stdout.
func (j Job) PrimaryName() string {
	if j.Primary == "" {
		return fsutil.StdStream
	}

	return j.Primary
}

// Run executes the job and returns the number of bytes written to the primary sink.
// Local paths are opened on fs; remote sources are downloaded first.
func (j Job) Run(ctx context.Context, fs afero.Fs, s fsutil.Streams) (int64, error) {
	logger := ctxlog.Logger(ctx).With("job", j.Name)

	src, cleanup, err := fsutil.Open(ctx, fs, j.Source, s)
	if err != nil {
		return 0, err
	}

	defer cleanup()

	primary, err := fsutil.OpenSink(fs, j.PrimaryName(), j.Append, s)
	if err != nil {
		return 0, errors.Join(err, closeIfCloser(src))
	}

	mirror, err := fsutil.OpenMirror(fs, j.Mirrors, j.Append, s)
	if err != nil {
		return 0, errors.Join(err, closeIfCloser(src), closeIfCloser(primary))
	}

	logger.Debug("running job", "source", j.Source, "primary", j.PrimaryName(), "mirrors", j.Mirrors)

	var (
		n   int64
		tee io.Closer
	)

	switch {
	case j.Lines > 0:
		t := teeio.NewBufReader(bufferSource(src), mirror)
		tee = t
		n, err = CopyLines(ctx, primary, t, j.Lines)
	case j.Offset > 0 || j.Length > 0:
		rs, ok := src.(io.ReadSeeker)
		if !ok {
			err = fmt.Errorf("%w: %s", ErrNotSeekable, j.Source)
			tee = teeio.NewReader(src, mirror)

			break
		}

		t := teeio.NewReadSeeker(rs, mirror)
		tee = t
		n, err = copyRange(ctx, primary, t, j.Offset, j.Length)
	default:
		t := teeio.AttachReader(src, mirror)
		tee = t.(io.Closer)
		n, err = pump.Copy(ctx, primary, t)
	}

	var result *multierror.Error

	if err != nil {
		result = multierror.Append(result, err)
	}

	if err := flushIfFlusher(mirror); err != nil {
		result = multierror.Append(result, err)
	}

	if err := tee.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := closeIfCloser(primary); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return n, fmt.Errorf("job %q: %w", j.Name, err)
	}

	logger.Info("job complete", "bytes", n)

	return n, nil
}

// CopyLines copies up to lines lines from r to dst. Only the lines consumed are
// mirrored by r, even when its buffer has read further ahead. The final line need
// not end in a newline.
func CopyLines(ctx context.Context, dst io.Writer, r *teeio.BufReader, lines int) (int64, error) {
	var written int64

	for range lines {
		if err := ctx.Err(); err != nil {
			return written, err //nolint:wrapcheck
		}

		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			n, werr := dst.Write(line)
			written += int64(n)

			if werr != nil {
				return written, werr //nolint:wrapcheck
			}
		}

		if errors.Is(err, io.EOF) {
			return written, nil
		}

		if err != nil {
			return written, err //nolint:wrapcheck
		}
	}

	return written, nil
}

func copyRange(ctx context.Context, dst io.Writer, src *teeio.ReadSeeker, offset, length int64) (int64, error) {
	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return 0, err //nolint:wrapcheck
	}

	if length == 0 {
		return pump.Copy(ctx, dst, src)
	}

	n, err := pump.CopyN(ctx, dst, src, length)
	if errors.Is(err, io.EOF) {
		// a range past the end is cut short, not failed
		return n, nil
	}

	return n, err
}

// bufferedSource is a *bufio.Reader that still closes the stream beneath it.
type bufferedSource struct {
	*bufio.Reader
	c io.Closer
}

func (b bufferedSource) Close() error {
	return b.c.Close() //nolint:wrapcheck
}

func bufferSource(src io.Reader) teeio.BufferedReader {
	br := bufio.NewReader(src)
	if c, ok := src.(io.Closer); ok {
		return bufferedSource{Reader: br, c: c}
	}

	return br
}

func closeIfCloser(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close() //nolint:wrapcheck
	}

	return nil
}

func flushIfFlusher(v any) error {
	if f, ok := v.(teeio.Flusher); ok {
		return f.Flush() //nolint:wrapcheck
	}

	return nil
}

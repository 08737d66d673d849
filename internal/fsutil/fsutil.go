// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fsutil opens the sources and sinks named on the command line or in a plan.
//
// "-" names stdin as a source and stdout as a sink, and "stderr" names stderr as a
// sink. Process streams are handed out borrowed so closing a tee never closes them.
// Everything else is a path on the filesystem returned by FsFactory.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/teeio"
	"github.com/matt-FFFFFF/teeio/internal/fetch"
	"github.com/spf13/afero"
)

const (
	// StdStream names stdin as a source and stdout as a sink.
	StdStream = "-"
	// StderrSink names stderr as a sink.
	StderrSink = "stderr"

	filePerm = 0o644
)

var (
	// ErrOpenSource is returned when a source can not be opened.
	ErrOpenSource = errors.New("failed to open source")
	// ErrOpenSink is returned when a sink can not be opened.
	ErrOpenSink = errors.New("failed to open sink")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Streams are the process streams that "-" and "stderr" refer to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStreams returns the real process streams.
func OSStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// OpenSource opens name for reading. Files are returned as afero.File, so a tee
// attached to them can seek.
func OpenSource(fs afero.Fs, name string, s Streams) (io.Reader, error) {
	if name == StdStream {
		return struct{ io.Reader }{s.In}, nil
	}

	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenSource, name, err)
	}

	return f, nil
}

// Open is like OpenSource but also accepts go-getter URLs. A remote source is
// downloaded to a temporary directory that cleanup removes. cleanup is never nil.
func Open(ctx context.Context, fs afero.Fs, name string, s Streams) (io.Reader, func(), error) {
	noop := func() {}

	if name == StdStream {
		r, err := OpenSource(fs, name, s)
		return r, noop, err
	}

	remote, err := fetch.IsRemote(name)
	if err != nil {
		return nil, noop, fmt.Errorf("%w %s: %w", ErrOpenSource, name, err)
	}

	if !remote {
		r, err := OpenSource(fs, name, s)
		return r, noop, err
	}

	dir, err := os.MkdirTemp("", "teeio-fetch-*")
	if err != nil {
		return nil, noop, fmt.Errorf("%w %s: %w", ErrOpenSource, name, err)
	}

	cleanup := func() {
		_ = os.RemoveAll(dir)
	}

	path, err := fetch.Fetch(ctx, name, dir)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("%w %s: %w", ErrOpenSource, name, err)
	}

	r, err := OpenSource(afero.NewOsFs(), path, s)
	if err != nil {
		cleanup()
		return nil, noop, err
	}

	return r, cleanup, nil
}

// OpenSink opens name for writing, truncating it unless appendMode is set.
func OpenSink(fs afero.Fs, name string, appendMode bool, s Streams) (io.Writer, error) {
	switch name {
	case StdStream:
		return teeio.Borrow(s.Out), nil
	case StderrSink:
		return teeio.Borrow(s.Err), nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := fs.OpenFile(name, flags, filePerm)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenSink, name, err)
	}

	return f, nil
}

// OpenMirror opens every name as a sink and joins them into one mirror. Closing the
// result closes the files it opened. On error, sinks already opened are closed.
func OpenMirror(fs afero.Fs, names []string, appendMode bool, s Streams) (io.Writer, error) {
	sinks := make([]io.Writer, 0, len(names))

	for _, name := range names {
		w, err := OpenSink(fs, name, appendMode, s)
		if err != nil {
			_ = MultiSink(sinks).Close()

			return nil, err
		}

		sinks = append(sinks, w)
	}

	if len(sinks) == 1 {
		return sinks[0], nil
	}

	return MultiSink(sinks), nil
}

// MultiSink writes to every sink in order, stopping at the first error.
// It flushes and closes the sinks that support it.
type MultiSink []io.Writer

// Write implements io.Writer.
func (m MultiSink) Write(p []byte) (int, error) {
	for _, w := range m {
		n, err := w.Write(p)
		if err != nil {
			return n, err //nolint:wrapcheck
		}

		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}

	return len(p), nil
}

// Flush flushes every sink that implements teeio.Flusher.
func (m MultiSink) Flush() error {
	var errs []error

	for _, w := range m {
		if f, ok := w.(teeio.Flusher); ok {
			errs = append(errs, f.Flush())
		}
	}

	return errors.Join(errs...)
}

// Close closes every sink that implements io.Closer.
func (m MultiSink) Close() error {
	var errs []error

	for _, w := range m {
		if c, ok := w.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}

	return errors.Join(errs...)
}

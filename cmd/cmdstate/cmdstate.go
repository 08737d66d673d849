// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds what the subcommands share: the process streams of the
// running command tree and the sink flags every tee command accepts.
package cmdstate

import (
	"io"

	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/urfave/cli/v3"
)

const (
	// MirrorFlag names the repeatable flag that adds a mirror sink.
	MirrorFlag = "mirror"
	// AppendFlag names the flag that appends to file sinks instead of truncating them.
	AppendFlag = "append"
)

// Streams returns the streams of the root command, falling back to the process
// streams for any that are unset. Tests set them on the command they run.
func Streams(cmd *cli.Command) fsutil.Streams {
	root := cmd.Root()
	s := fsutil.OSStreams()

	if root.Reader != nil {
		s.In = root.Reader
	}

	if root.Writer != nil {
		s.Out = root.Writer
	}

	if root.ErrWriter != nil {
		s.Err = root.ErrWriter
	}

	return s
}

// SinkFlags returns fresh --mirror and --append flags.
func SinkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    MirrorFlag,
			Aliases: []string{"m"},
			Usage: "Mirror every byte to this file. Use - for stdout and stderr for stderr. " +
				"Specify multiple times to mirror to several sinks.",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:        AppendFlag,
			Aliases:     []string{"a"},
			Usage:       "Append to file sinks instead of truncating them",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
	}
}

// Close closes v if it is an io.Closer.
func Close(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close() //nolint:wrapcheck
	}

	return nil
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package byterange provides the range command, which seeks into a source and copies
// a byte range. Seeking moves the source only; the mirrors receive the bytes read.
package byterange

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/teeio/cmd/cmdstate"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/matt-FFFFFF/teeio/internal/plan"
	"github.com/urfave/cli/v3"
)

const (
	offsetFlag = "offset"
	lengthFlag = "length"
)

// ErrNoSource is returned when range is not given exactly one source.
var ErrNoSource = errors.New("range needs exactly one seekable source")

// RangeCmd is the range command.
var RangeCmd = New()

// New returns a new range command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "range",
		Usage: "Copy a byte range of a file to stdout, mirroring it",
		Description: `Seek SOURCE to --offset and copy --length bytes, or the rest of the file when
--length is 0, to stdout. The source must be seekable, so stdin is not accepted.
A range that runs past the end of the source is cut short.`,
		ArgsUsage: "SOURCE",
		Flags: append(cmdstate.SinkFlags(),
			&cli.Int64Flag{
				Name:    offsetFlag,
				Aliases: []string{"o"},
				Usage:   "Byte offset to start reading from",
				Value:   0,
			},
			&cli.Int64Flag{
				Name:    lengthFlag,
				Aliases: []string{"l"},
				Usage:   "Number of bytes to copy, 0 copies to the end",
				Value:   0,
			},
		),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 || cmd.Args().First() == fsutil.StdStream {
		return cli.Exit(ErrNoSource.Error(), 1)
	}

	job := plan.Job{
		Name:    cmd.Name,
		Source:  cmd.Args().First(),
		Mirrors: cmd.StringSlice(cmdstate.MirrorFlag),
		Append:  cmd.Bool(cmdstate.AppendFlag),
		Offset:  cmd.Int64(offsetFlag),
		Length:  cmd.Int64(lengthFlag),
	}

	if err := job.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if _, err := job.Run(ctx, fsutil.FsFactory(), cmdstate.Streams(cmd)); err != nil {
		ctxlog.Error(ctx, "range failed", "source", job.Source, "error", err)
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package head provides the head command, which copies the first lines of a source
// and mirrors only those lines.
package head

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/teeio/cmd/cmdstate"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/matt-FFFFFF/teeio/internal/plan"
	"github.com/urfave/cli/v3"
)

const (
	linesFlag    = "lines"
	defaultLines = 10
)

// ErrLines is returned for a line count below one.
var ErrLines = errors.New("line count must be at least 1")

// HeadCmd is the head command.
var HeadCmd = New()

// New returns a new head command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "head",
		Usage: "Copy the first lines of a source to stdout, mirroring them",
		Description: `Copy the first --lines lines of SOURCE to stdout. The source is read through a
buffer that may read past the last line copied; the mirrors only receive the
lines that were copied.`,
		ArgsUsage: "[SOURCE]",
		Flags: append(cmdstate.SinkFlags(), &cli.IntFlag{
			Name:    linesFlag,
			Aliases: []string{"n"},
			Usage:   "Number of lines to copy",
			Value:   defaultLines,
			Validator: func(n int) error {
				if n < 1 {
					return fmt.Errorf("%w, got %d", ErrLines, n)
				}

				return nil
			},
		}),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	source := cmd.Args().First()
	if source == "" {
		source = fsutil.StdStream
	}

	job := plan.Job{
		Name:    cmd.Name,
		Source:  source,
		Mirrors: cmd.StringSlice(cmdstate.MirrorFlag),
		Append:  cmd.Bool(cmdstate.AppendFlag),
		Lines:   cmd.Int(linesFlag),
	}

	if _, err := job.Run(ctx, fsutil.FsFactory(), cmdstate.Streams(cmd)); err != nil {
		ctxlog.Error(ctx, "head failed", "source", source, "error", err)
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package write provides the write command, the classic tee: stdin is copied to a
// destination and to stdout.
package write

import (
	"bufio"
	"context"
	"errors"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/teeio"
	"github.com/matt-FFFFFF/teeio/cmd/cmdstate"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/matt-FFFFFF/teeio/internal/pump"
	"github.com/urfave/cli/v3"
)

const quietFlag = "quiet"

// ErrDestination is returned when write is not given exactly one destination.
var ErrDestination = errors.New("write needs exactly one destination")

// WriteCmd is the write command.
var WriteCmd = New()

// New returns a new write command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "write",
		Usage: "Copy stdin to a file and to stdout",
		Description: `Copy stdin to DESTINATION through a buffered writer, mirroring every byte the
destination accepts to stdout and to any sink given with --mirror.
The destination is flushed before the mirrors.`,
		ArgsUsage: "DESTINATION",
		Flags: append(cmdstate.SinkFlags(), &cli.BoolFlag{
			Name:        quietFlag,
			Aliases:     []string{"q"},
			Usage:       "Do not mirror to stdout",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		}),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	if cmd.NArg() != 1 {
		return cli.Exit(ErrDestination.Error(), 1)
	}

	dst := cmd.Args().First()
	appendMode := cmd.Bool(cmdstate.AppendFlag)
	s := cmdstate.Streams(cmd)
	fs := fsutil.FsFactory()

	mirrors := cmd.StringSlice(cmdstate.MirrorFlag)
	if !cmd.Bool(quietFlag) {
		mirrors = append([]string{fsutil.StdStream}, mirrors...)
	}

	primary, err := fsutil.OpenSink(fs, dst, appendMode, s)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	mirror, err := fsutil.OpenMirror(fs, mirrors, appendMode, s)
	if err != nil {
		return cli.Exit(errors.Join(err, cmdstate.Close(primary)).Error(), 1)
	}

	buffered := bufio.NewWriter(primary)
	tee := teeio.NewWriter(buffered, mirror)

	n, err := pump.Copy(ctx, tee, s.In)

	var result *multierror.Error

	if err != nil {
		result = multierror.Append(result, err)
	}

	if err := tee.Flush(); err != nil {
		result = multierror.Append(result, err)
	}

	// tee.Close closes the mirror only, bufio.Writer has no Close
	if err := tee.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := cmdstate.Close(primary); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		logger.Error("write failed", "destination", dst, "error", err)
		return cli.Exit(err.Error(), 1)
	}

	logger.Debug("write complete", "destination", dst, "bytes", n)

	return nil
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cat provides the cat command, which concatenates sources to stdout and
// mirrors everything it reads.
package cat

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/teeio"
	"github.com/matt-FFFFFF/teeio/cmd/cmdstate"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/matt-FFFFFF/teeio/internal/pump"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// CatCmd is the cat command.
var CatCmd = New()

// New returns a new cat command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "cat",
		Usage: "Concatenate sources to stdout, mirroring them",
		Description: `Read each source in turn and write it to stdout. Every byte read is also
written to the mirrors given with --mirror, in the same order.

A source is a file path, - for stdin, or a URL in Hashicorp's go-getter syntax.
See https://github.com/hashicorp/go-getter. With no source, stdin is read.`,
		ArgsUsage: "[SOURCE...]",
		Flags:     cmdstate.SinkFlags(),
		Action:    actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		sources = []string{fsutil.StdStream}
	}

	s := cmdstate.Streams(cmd)
	fs := fsutil.FsFactory()

	mirror, err := fsutil.OpenMirror(fs, cmd.StringSlice(cmdstate.MirrorFlag), cmd.Bool(cmdstate.AppendFlag), s)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var total int64

	for _, src := range sources {
		n, err := catOne(ctx, fs, src, mirror, s)
		total += n

		if err != nil {
			logger.Error("cat failed", "source", src, "error", err)
			return cli.Exit(errors.Join(err, cmdstate.Close(mirror)).Error(), 1)
		}
	}

	if err := cmdstate.Close(mirror); err != nil {
		return cli.Exit(fmt.Sprintf("failed to close mirror: %s", err), 1)
	}

	logger.Debug("cat complete", "sources", len(sources), "bytes", total)

	return nil
}

// catOne copies one source to stdout. The mirror is borrowed so it stays open for
// the next source.
func catOne(ctx context.Context, fs afero.Fs, src string, mirror io.Writer, s fsutil.Streams) (int64, error) {
	r, cleanup, err := fsutil.Open(ctx, fs, src, s)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	defer cleanup()

	tee := teeio.AttachReader(r, teeio.Borrow(mirror))

	n, err := pump.Copy(ctx, s.Out, tee)

	return n, errors.Join(err, cmdstate.Close(tee))
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/matt-FFFFFF/teeio"
	"github.com/matt-FFFFFF/teeio/cmd/byterange"
	"github.com/matt-FFFFFF/teeio/cmd/cat"
	"github.com/matt-FFFFFF/teeio/cmd/cmdstate"
	"github.com/matt-FFFFFF/teeio/cmd/head"
	"github.com/matt-FFFFFF/teeio/cmd/run"
	"github.com/matt-FFFFFF/teeio/cmd/schema"
	"github.com/matt-FFFFFF/teeio/cmd/write"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/urfave/cli/v3"
)

const (
	verboseFlag = "verbose"
	logJSONFlag = "log-json"
	logFileFlag = "log-file"
)

// RootCmd is the root command for the CLI.
var RootCmd = newRoot(
	cat.CatCmd,
	write.WriteCmd,
	head.HeadCmd,
	byterange.RangeCmd,
	run.RunCmd,
	schema.SchemaCmd,
)

// logFile is the --log-file sink opened by before and closed by after.
var logFile io.Writer

// New returns a new root command with fresh subcommands, for callers that run the
// CLI more than once.
func New() *cli.Command {
	return newRoot(cat.New(), write.New(), head.New(), byterange.New(), run.New(), schema.New())
}

func newRoot(commands ...*cli.Command) *cli.Command {
	return &cli.Command{
		Commands: commands,
		Name:     "teeio",
		Description: `teeio copies streams while mirroring every byte that passes through to
other sinks. Mirrors only ever receive the bytes that were actually read or
written: bytes buffered ahead, seeked over or rejected are never mirrored.`,
		Usage:     "teeio cat --mirror copy.txt input.txt",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        verboseFlag,
				Aliases:     []string{"v"},
				Usage:       "Log at debug level",
				DefaultText: "false",
				Value:       false,
				OnlyOnce:    true,
			},
			&cli.BoolFlag{
				Name:        logJSONFlag,
				Usage:       "Log JSON objects instead of text",
				DefaultText: "false",
				Value:       false,
				OnlyOnce:    true,
			},
			&cli.StringFlag{
				Name:      logFileFlag,
				Usage:     "Also append log records to this file",
				TakesFile: true,
				OnlyOnce:  true,
			},
		},
		Before:                before,
		After:                 after,
		EnableShellCompletion: true,
	}
}

// before installs the logger selected by the root flags on the context.
// With --log-file the records are written to stderr and mirrored to the file.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool(verboseFlag) {
		ctxlog.LevelVar.Set(slog.LevelDebug)
	}

	s := cmdstate.Streams(cmd)
	w := s.Err
	options := []ctxlog.Option{ctxlog.WithAutoColour()}

	if path := cmd.String(logFileFlag); path != "" {
		f, err := fsutil.OpenSink(fsutil.FsFactory(), path, true, s)
		if err != nil {
			return ctx, cli.Exit(fmt.Sprintf("failed to open log file: %s", err), 1)
		}

		logFile = f
		w = teeio.NewWriter(teeio.Borrow(s.Err), f)
		options = nil
	}

	logger := ctxlog.NewPrettyLogger(w, options...)
	if cmd.Bool(logJSONFlag) {
		logger = ctxlog.NewJSONLogger(w)
	}

	return ctxlog.New(ctx, logger), nil
}

func after(_ context.Context, _ *cli.Command) error {
	if logFile == nil {
		return nil
	}

	err := cmdstate.Close(logFile)
	logFile = nil

	return err //nolint:wrapcheck
}

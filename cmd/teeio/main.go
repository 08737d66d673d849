// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the teeio command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/teeio"
	"github.com/matt-FFFFFF/teeio/cmd"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel)

	cmd.RootCmd.Version = fmt.Sprintf("%s (commit: %s)", teeio.Version, teeio.Commit)

	err := cmd.RootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		cancel()
		os.Exit(1)
	}

	cancel()

	if err != nil {
		os.Exit(1)
	}
}

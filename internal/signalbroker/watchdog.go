// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
)

// ForceExit terminates the process. Tests replace it.
var ForceExit = os.Exit

// Watch reads sigCh until it is closed. The first signal cancels the context; the
// second signal of a type already seen calls ForceExit.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Warn(ctx, "watchdog", "detail", "received second signal of type, exiting", "signal", sig.String())
			ForceExit(ForcedExitCode)

			return
		}

		ctxlog.Info(ctx, "watchdog", "detail", "received signal, stopping after the current chunk", "signal", sig.String())

		seen[sig] = struct{}{}

		cancel()
	}
}

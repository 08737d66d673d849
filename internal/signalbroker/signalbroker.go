// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker turns termination signals into context cancellation.
//
// The first signal cancels the context so running copies stop between chunks and
// their tees are flushed and closed. A second signal of the same type exits at once.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
)

// ForcedExitCode is the exit status used when a second signal arrives.
const ForcedExitCode = 130

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a channel notified of sigs, or of the termination signals if none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops delivery to sigCh and closes it, ending Watch.
func Stop(sigCh chan os.Signal) {
	signal.Stop(sigCh)
	close(sigCh)
}

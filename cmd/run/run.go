// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run provides the run command, which runs tee plans.
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/teeio/cmd/cmdstate"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/fetch"
	"github.com/matt-FFFFFF/teeio/internal/plan"
	"github.com/matt-FFFFFF/teeio/internal/progress"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag    = "file"
	eventBuffer = 64
)

var (
	// ErrNoPlan is returned when no plan file is given.
	ErrNoPlan = errors.New("specify at least one plan file")
	// ErrGetPlanFile is returned when a remote plan can not be downloaded.
	ErrGetPlanFile = errors.New("failed to get plan file")
)

// RunCmd is the run command.
var RunCmd = New()

// New returns a new run command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the jobs of one or more plan files",
		Description: `Run the jobs defined in YAML (.yaml, .yml) or HCL (.hcl) plan files, in order.
A failed job is reported and the remaining jobs still run.

Plan file URLs use Hashicorp's go-getter syntax, which allows for fetching files from
various sources. See https://github.com/hashicorp/go-getter.
Run 'teeio schema' for the plan file format.`,
		ArgsUsage: "[PLAN...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    fileFlag,
				Aliases: []string{"f"},
				Usage: "Specify the URL of a plan file to run. " +
					"Specify multiple times to run multiple files.",
				TakesFile: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	urls := slices.Concat(cmd.StringSlice(fileFlag), cmd.Args().Slice())
	if len(urls) == 0 {
		return cli.Exit(ErrNoPlan.Error(), 1)
	}

	plans := make([]*plan.Plan, 0, len(urls))

	for _, u := range urls {
		p, err := loadPlan(ctx, u)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to load plan %s", u), "error", err)
			return cli.Exit(err.Error(), 1)
		}

		plans = append(plans, p)
	}

	s := cmdstate.Streams(cmd)

	var result *multierror.Error

	for i, p := range plans {
		// each job reports at most two events
		reporter := progress.NewChannelReporter(max(eventBuffer, 2*len(p.Jobs)))
		reporter.Listen(logEvents(logger.With("plan", urls[i])))

		_, err := p.Run(ctx, s, reporter)

		reporter.Close()

		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// logEvents logs job events: completions at info, failures and skips at warn.
func logEvents(logger *slog.Logger) progress.Listener {
	return progress.ListenerFunc(func(ev progress.Event) {
		switch ev.Type {
		case progress.EventStarted:
			logger.Debug("job started", "job", ev.Job)
		case progress.EventCompleted:
			logger.Info("job completed", "job", ev.Job, "bytes", ev.Bytes)
		default:
			logger.Warn("job "+ev.Type.String(), "job", ev.Job, "bytes", ev.Bytes, "error", ev.Err)
		}
	})
}

// loadPlan loads a local plan through plan.Load or downloads a remote one first.
func loadPlan(ctx context.Context, u string) (*plan.Plan, error) {
	remote, err := fetch.IsRemote(u)
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	if !remote {
		return plan.Load(u) //nolint:wrapcheck
	}

	tmpDir, err := os.MkdirTemp("", "teeio-plan-*")
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	path, err := fetch.Fetch(ctx, u, tmpDir)
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	return plan.Parse(path, data) //nolint:wrapcheck
}

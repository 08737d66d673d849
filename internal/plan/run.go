// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/matt-FFFFFF/teeio/internal/progress"
	"github.com/matt-FFFFFF/teeio/internal/schema"
)

// Result is the outcome of one job.
type Result struct {
	Job   string
	Bytes int64
	Err   error
}

// Run runs every job in order on the filesystem returned by fsutil.FsFactory and
// reports each job to reporter, which may be nil.
// A failed job does not stop the jobs after it; cancelling ctx skips the rest.
// The returned error combines the errors of all failed jobs.
func (p *Plan) Run(ctx context.Context, s fsutil.Streams, reporter progress.Reporter) ([]Result, error) {
	if reporter == nil {
		reporter = progress.NullReporter{}
	}

	fs := fsutil.FsFactory()
	results := make([]Result, 0, len(p.Jobs))

	var result *multierror.Error

	for i, j := range p.Jobs {
		if err := ctx.Err(); err != nil {
			for _, skipped := range p.Jobs[i:] {
				reporter.Report(progress.NewEvent(skipped.Name, progress.EventSkipped, 0, err))
			}

			result = multierror.Append(result, err)

			break
		}

		reporter.Report(progress.NewEvent(j.Name, progress.EventStarted, 0, nil))

		n, err := j.Run(ctx, fs, s)
		if err != nil {
			ctxlog.Debug(ctx, "job failed", "job", j.Name, "error", err)
			reporter.Report(progress.NewEvent(j.Name, progress.EventFailed, n, err))

			result = multierror.Append(result, err)
		} else {
			reporter.Report(progress.NewEvent(j.Name, progress.EventCompleted, n, nil))
		}

		results = append(results, Result{Job: j.Name, Bytes: n, Err: err})
	}

	return results, result.ErrorOrNil()
}

// Describe documents the plan file format.
func Describe() (*schema.Document, error) {
	return schema.Generate( //nolint:wrapcheck
		"teeio plan",
		"A list of jobs, each copying a source to a primary sink and mirroring every byte read.",
		Plan{},
	)
}

// Example returns a plan showing the main job shapes.
func Example() *Plan {
	return &Plan{
		Jobs: []Job{
			{
				Name:    "copy",
				Source:  "input.txt",
				Primary: "output.txt",
				Mirrors: []string{"input.bak", fsutil.StderrSink},
			},
			{
				Name:    "head",
				Source:  "https://example.com/data.csv",
				Mirrors: []string{"header.csv"},
				Lines:   1,
			},
			{
				Name:    "range",
				Source:  "input.bin",
				Primary: "slice.bin",
				Mirrors: []string{"audit.bin"},
				Append:  true,
				Offset:  512,
				Length:  1024,
			},
		},
	}
}

// WriteYAML writes the plan as YAML.
func (p *Plan) WriteYAML(w io.Writer) error {
	bytes, err := yaml.MarshalWithOptions(p, yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	_, err = w.Write(bytes)

	return err //nolint:wrapcheck
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package plan loads and runs tee plans. A plan is a list of jobs, each copying one
// source to a primary sink while mirroring the bytes to zero or more other sinks.
//
// Plans are written in YAML (.yaml, .yml) or HCL (.hcl). HCL plans can refer to the
// process environment as env.NAME and use a few string functions:
//
//	job "backup" {
//	  source  = "${env.HOME}/notes.txt"
//	  primary = "-"
//	  mirrors = ["notes.bak"]
//	}
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/teeio/internal/fsutil"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var (
	// ErrReadPlan is returned when the plan file can not be read.
	ErrReadPlan = errors.New("failed to read plan")
	// ErrInvalidYaml is returned when a YAML plan can not be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidHcl is returned when an HCL plan can not be decoded.
	ErrInvalidHcl = errors.New("invalid HCL")
	// ErrUnknownFormat is returned for plan files with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown plan format, use .yaml, .yml or .hcl")
	// ErrNoJobs is returned when a plan has no jobs.
	ErrNoJobs = errors.New("no jobs specified")
	// ErrDuplicateJob is returned when two jobs share a name.
	ErrDuplicateJob = errors.New("duplicate job name")
)

// Environ returns the environment exposed to HCL plans as env.
var Environ = os.Environ

// Plan is a list of tee jobs run in order.
type Plan struct {
	Jobs []Job `yaml:"jobs" hcl:"job,block" docdesc:"Jobs to run in order"`
}

// Load reads the plan at path from the filesystem returned by fsutil.FsFactory and
// decodes it according to its extension.
func Load(path string) (*Plan, error) {
	data, err := afero.ReadFile(fsutil.FsFactory(), path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadPlan, path, err)
	}

	return Parse(path, data)
}

// Parse decodes data as a plan in the format given by the extension of path.
func Parse(path string, data []byte) (*Plan, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".hcl":
		return ParseHCL(filepath.Base(path), data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ParseYAML decodes and validates a YAML plan. Unknown fields are rejected.
// Jobs without a name are named after their position.
func ParseYAML(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.UnmarshalWithOptions(data, &p, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYaml, err)
	}

	for i := range p.Jobs {
		if p.Jobs[i].Name == "" {
			p.Jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// ParseHCL decodes and validates an HCL plan. filename is used in diagnostics and
// must end in .hcl.
func ParseHCL(filename string, data []byte) (*Plan, error) {
	var p Plan
	if err := hclsimple.Decode(filename, data, EvalContext(), &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHcl, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// EvalContext returns the context HCL plans are evaluated in.
func EvalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}

// Validate checks every job and that job names are unique.
func (p *Plan) Validate() error {
	if len(p.Jobs) == 0 {
		return ErrNoJobs
	}

	var result *multierror.Error

	seen := make(map[string]struct{}, len(p.Jobs))

	for _, j := range p.Jobs {
		if _, ok := seen[j.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrDuplicateJob, j.Name))
		}

		seen[j.Name] = struct{}{}

		if err := j.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

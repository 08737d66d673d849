// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema provides the schema command for displaying the plan file format.
package schema

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/teeio/internal/plan"
	"github.com/urfave/cli/v3"
)

const (
	formatFlag = "format"

	formatYAML     = "yaml"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// SchemaCmd is the schema command.
var SchemaCmd = New()

// New returns a new schema command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Display the plan file format",
		Description: `Display the plan file format as an example YAML plan, Markdown documentation
or a JSON Schema that editors can use to validate YAML plans.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        formatFlag,
				Aliases:     []string{"f"},
				Usage:       "Output format: yaml, markdown, or json",
				DefaultText: formatYAML,
				Value:       formatYAML,
				Validator: func(s string) error {
					switch s {
					case formatYAML, formatMarkdown, formatJSON:
						return nil
					default:
						return fmt.Errorf("invalid format: %s. Valid formats: yaml, markdown, json", s) //nolint:err113
					}
				},
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	if cmd.String(formatFlag) == formatYAML {
		if err := plan.Example().WriteYAML(w); err != nil {
			return cli.Exit(err.Error(), 1)
		}

		return nil
	}

	doc, err := plan.Describe()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if cmd.String(formatFlag) == formatMarkdown {
		err = doc.WriteMarkdownDoc(w)
	} else {
		err = doc.WriteJSONSchema(w)
	}

	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

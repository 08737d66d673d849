// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema describes configuration structs as JSON Schema and Markdown.
// Field names come from the yaml tag and descriptions from the docdesc tag.
// Fields tagged omitempty are optional.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

const draft = "https://json-schema.org/draft/2020-12/schema"

// ErrNotStruct is returned when the value described is not a struct.
var ErrNotStruct = errors.New("expected struct type")

// Field represents a field in a JSON schema.
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Items       *Field
	Fields      []Field
}

// Document is a described root struct.
type Document struct {
	Title       string
	Description string
	Fields      []Field
}

// Generate describes v, which must be a struct or a pointer to one.
func Generate(title, description string, v any) (*Document, error) {
	fields, err := extractFields(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}

	return &Document{Title: title, Description: description, Fields: fields}, nil
}

// WriteJSONSchema writes the document as an indented JSON Schema.
func (d *Document) WriteJSONSchema(w io.Writer) error {
	root := objectProperty(d.Fields)
	root["$schema"] = draft
	root["title"] = d.Title
	root["description"] = d.Description

	bytes, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintln(w, string(bytes))

	return err //nolint:wrapcheck
}

// WriteMarkdownDoc writes the document as a Markdown field reference.
func (d *Document) WriteMarkdownDoc(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n%s\n\n", d.Title, d.Description)
	writeMarkdownFields(&sb, d.Fields, 0)

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}

func writeMarkdownFields(sb *strings.Builder, fields []Field, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, f := range fields {
		typ := f.Type
		if f.Items != nil {
			typ = fmt.Sprintf("%s of %s", f.Type, f.Items.Type)
		}

		if !f.Required {
			typ += ", optional"
		}

		fmt.Fprintf(sb, "%s- **%s** (%s): %s\n", indent, f.Name, typ, f.Description)

		if f.Items != nil && len(f.Items.Fields) > 0 {
			writeMarkdownFields(sb, f.Items.Fields, depth+1)
		}
	}
}

func objectProperty(fields []Field) map[string]any {
	properties := make(map[string]any, len(fields))
	required := []string{}

	for _, f := range fields {
		properties[f.Name] = property(f)

		if f.Required {
			required = append(required, f.Name)
		}
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func property(f Field) map[string]any {
	var prop map[string]any

	switch {
	case f.Type == "object" && len(f.Fields) > 0:
		prop = objectProperty(f.Fields)
	case f.Type == "array" && f.Items != nil:
		prop = map[string]any{"type": "array", "items": property(*f.Items)}
	default:
		prop = map[string]any{"type": f.Type}
	}

	if f.Description != "" {
		prop["description"] = f.Description
	}

	return prop
}

// extractFields extracts schema fields from a struct type using reflection.
func extractFields(t reflect.Type) ([]Field, error) {
	if t == nil {
		return nil, ErrNotStruct
	}

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got %s", ErrNotStruct, t.Kind())
	}

	var fields []Field

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		if sf.Anonymous {
			embedded, err := extractFields(sf.Type)
			if err != nil {
				return nil, err
			}

			fields = append(fields, embedded...)

			continue
		}

		yamlTag := sf.Tag.Get("yaml")
		if yamlTag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(yamlTag, ",")
		if name == "" {
			name = strings.ToLower(sf.Name)
		}

		field := Field{
			Name:        name,
			Description: sf.Tag.Get("docdesc"),
			Required:    !strings.Contains(opts, "omitempty"),
		}

		if err := describeType(&field, sf.Type); err != nil {
			return nil, err
		}

		fields = append(fields, field)
	}

	return fields, nil
}

func describeType(f *Field, t reflect.Type) error {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	f.Type = schemaType(t)

	switch t.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		items := &Field{}
		if err := describeType(items, t.Elem()); err != nil {
			return err
		}

		f.Items = items
	case reflect.Struct:
		nested, err := extractFields(t)
		if err != nil {
			return err
		}

		f.Fields = nested
	}

	return nil
}

// schemaType converts a Go type to a JSON schema type.
func schemaType(t reflect.Type) string {
	switch t.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "string"
	}
}

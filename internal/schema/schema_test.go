// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package schema

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Path string `yaml:"path" docdesc:"Where to write"`
}

type sample struct {
	Name     string   `yaml:"name" docdesc:"The name"`
	Count    int64    `yaml:"count,omitempty" docdesc:"How many"`
	Enabled  bool     `yaml:"enabled,omitempty"`
	Tags     []string `yaml:"tags,omitempty" docdesc:"Free form tags"`
	Sinks    []inner  `yaml:"sinks" docdesc:"Sinks to use"`
	Ignored  string   `yaml:"-"`
	internal string
}

func TestGenerate_Fields(t *testing.T) {
	doc, err := Generate("Sample", "A sample", &sample{})
	require.NoError(t, err)

	names := make([]string, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"name", "count", "enabled", "tags", "sinks"}, names)

	assert.True(t, doc.Fields[0].Required)
	assert.False(t, doc.Fields[1].Required)
	assert.Equal(t, "integer", doc.Fields[1].Type)
	assert.Equal(t, "boolean", doc.Fields[2].Type)
	require.NotNil(t, doc.Fields[3].Items)
	assert.Equal(t, "string", doc.Fields[3].Items.Type)
	require.NotNil(t, doc.Fields[4].Items)
	assert.Equal(t, "object", doc.Fields[4].Items.Type)
	require.Len(t, doc.Fields[4].Items.Fields, 1)
	assert.Equal(t, "path", doc.Fields[4].Items.Fields[0].Name)
}

func TestGenerate_NotStruct(t *testing.T) {
	_, err := Generate("x", "y", "not a struct")
	assert.ErrorIs(t, err, ErrNotStruct)

	_, err = Generate("x", "y", nil)
	assert.ErrorIs(t, err, ErrNotStruct)
}

func TestWriteJSONSchema_ValidJSON(t *testing.T) {
	doc, err := Generate("Sample", "A sample", sample{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteJSONSchema(&buf))

	var root map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))

	assert.Equal(t, draft, root["$schema"])
	assert.Equal(t, "Sample", root["title"])
	assert.Equal(t, false, root["additionalProperties"])
	assert.ElementsMatch(t, []any{"name", "sinks"}, root["required"])

	properties, ok := root["properties"].(map[string]any)
	require.True(t, ok)

	sinks, ok := properties["sinks"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", sinks["type"])
	assert.Equal(t, "Sinks to use", sinks["description"])

	items, ok := sinks["items"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", items["type"])
	assert.Contains(t, items["properties"], "path")
}

func TestWriteMarkdownDoc(t *testing.T) {
	doc, err := Generate("Sample", "A sample", sample{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteMarkdownDoc(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Sample\n\nA sample\n")
	assert.Contains(t, out, "- **name** (string): The name\n")
	assert.Contains(t, out, "- **tags** (array of string, optional): Free form tags\n")
	assert.Contains(t, out, "  - **path** (string): Where to write\n")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package document

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_KeyOrderPreserved(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))

	for _, file := range []string{"petstore.yaml", "petstore.json"} {
		t.Run(file, func(t *testing.T) {
			doc, err := loader.LoadFile(file, "")
			require.NoError(t, err)

			props := doc.Lookup("components", "schemas", "Pet", "properties")
			require.NotNil(t, props)
			assert.Equal(t, []string{"zeta", "name", "age", "alpha"}, props.Keys())

			assert.Equal(t, []string{"200", "404"},
				doc.Lookup("paths", "/pets/{id}", "get", "responses").Keys())
		})
	}
}

func TestLoader_ScalarTypes(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))

	for _, file := range []string{"petstore.yaml", "petstore.json"} {
		t.Run(file, func(t *testing.T) {
			doc, err := loader.LoadFile(file, "")
			require.NoError(t, err)

			props := doc.Lookup("components", "schemas", "Pet", "properties")
			name := props.Lookup("name", "example")
			assert.Equal(t, StringScalar, name.ScalarType)
			assert.Equal(t, "Rex", name.String())

			age := props.Lookup("age", "example")
			assert.Equal(t, NumberScalar, age.ScalarType)
			assert.Equal(t, "7", age.String())

			alpha := props.Lookup("alpha", "example")
			assert.Equal(t, BoolScalar, alpha.ScalarType)
			assert.True(t, alpha.Bool())
		})
	}
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))

	_, err := loader.LoadFile("petstore.txt", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoader_ExplicitFormat(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))

	doc, err := loader.LoadFile("petstore.txt", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.Get("openapi").String())
}

func TestParserForFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "json", want: "json"},
		{format: "JSON", want: "json"},
		{format: "yaml", want: "yaml"},
		{format: "yml", want: "yaml"},
		{format: "xml", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			p, err := ParserForFormat(tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := YAML.Parse(strings.NewReader("  \n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = JSON.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := JSON.Parse(strings.NewReader(`{"a": [1, 2`))
	assert.Error(t, err)
}

func TestParseJSON_TrailingData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "trailing whitespace", input: "{\"paths\": {}}\n\n  "},
		{name: "trailing garbage", input: `{"paths": {}} garbage`, wantErr: true},
		{name: "second value", input: `{"a": 1} {"b": 2}`, wantErr: true},
		{name: "trailing bracket", input: `[1, 2]]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSON.Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTrailingData)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseYAML_AliasExpansionLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "a%d: &a%d [", i, i)
		for j := range 10 {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*a%d", i-1)
		}
		b.WriteString("]\n")
	}

	_, err := YAML.Parse(strings.NewReader(b.String()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAliasExpansion)
}

func TestParseYAML_RepeatedAliasesWithinBudget(t *testing.T) {
	var b strings.Builder
	b.WriteString("shared: &shared\n  type: string\n  maxLength: 10\nfields:\n")
	for i := range 200 {
		fmt.Fprintf(&b, "  f%d: *shared\n", i)
	}

	doc, err := YAML.Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, 200, doc.Get("fields").Len())
	assert.Equal(t, "string", doc.Lookup("fields", "f199", "type").String())
}

func TestParseYAML_AliasAndMerge(t *testing.T) {
	data := `
base: &base
  type: string
  description: shared
first:
  <<: *base
  description: overridden
second: *base
`
	doc, err := YAML.Parse(strings.NewReader(data))
	require.NoError(t, err)

	first := doc.Get("first")
	assert.Equal(t, "string", first.Get("type").String())
	assert.Equal(t, "overridden", first.Get("description").String())

	second := doc.Get("second")
	assert.Equal(t, "shared", second.Get("description").String())
}

func TestParseYAML_Null(t *testing.T) {
	doc, err := YAML.Parse(strings.NewReader("a: ~\nb: null\n"))
	require.NoError(t, err)

	assert.True(t, doc.Has("a"))
	assert.False(t, doc.Get("a").IsScalar())
	assert.Equal(t, "", doc.Get("b").String())
}

func TestNode_NilSafe(t *testing.T) {
	var n *Node
	assert.Nil(t, n.Get("x"))
	assert.Nil(t, n.Lookup("a", "b"))
	assert.Equal(t, "", n.String())
	assert.False(t, n.Bool())
	assert.Equal(t, 0, n.Len())
	assert.Empty(t, n.Keys())
	assert.Empty(t, n.Strings())
	_, ok := n.Int()
	assert.False(t, ok)
}

func TestNode_SetKeepsPosition(t *testing.T) {
	m := NewMapping()
	m.Set("a", NewString("1"))
	m.Set("b", NewString("2"))
	m.Set("a", NewString("3"))

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, "3", m.Get("a").String())
}

func TestNode_MarshalJSON(t *testing.T) {
	doc, err := YAML.Parse(strings.NewReader(`
z: 1
a: [true, null, "x"]
m:
  k: 1.50
`))
	require.NoError(t, err)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":[true,null,"x"],"m":{"k":1.50}}`, string(out))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package openapi provides a typed, read-only view of an OpenAPI document.
package openapi

import (
	"strings"

	"github.com/dacolabs/apisheet/internal/document"
)

// RefPrefix is the local pointer prefix of component schema references.
const RefPrefix = "#/components/schemas/"

// Kind classifies a Schema.
type Kind int

const (
	// KindObject is a schema with (possibly zero) named properties.
	KindObject Kind = iota
	// KindEnum is a schema declaring a non-empty enum list.
	KindEnum
	// KindArray is a type: array wrapper around items.
	KindArray
	// KindUnion is a schema listing oneOf alternatives.
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	default:
		return "object"
	}
}

// Schema is a named or inline type definition.
// The zero Schema is an object with no properties.
type Schema struct {
	Name        string
	Ref         string
	Type        string
	Format      string
	Description string
	// Example is the textual form of the example value; HasExample tells an
	// empty example apart from a missing one.
	Example    string
	HasExample bool
	ReadOnly   bool
	WriteOnly  bool
	Pattern    string
	MinLength  *int
	MaxLength  *int
	Enum       []string
	Items      *Schema
	Properties []Property
	Required   []string
	OneOf      []Schema
}

// Property is one named field inside an object Schema.
type Property struct {
	Name string
	// Required reports membership in the parent schema's required list.
	Required bool
	Schema
}

// Kind returns the variant of the schema.
func (s Schema) Kind() Kind {
	switch {
	case len(s.Enum) > 0:
		return KindEnum
	case len(s.OneOf) > 0:
		return KindUnion
	case s.Type == "array":
		return KindArray
	default:
		return KindObject
	}
}

// IsRequired reports whether name is listed in the schema's required list.
func (s Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ResolveRef returns the $ref of a property, or the $ref under its items when
// isArray is set. It returns "" when there is none.
func ResolveRef(p Property, isArray bool) string {
	if isArray {
		if p.Items == nil {
			return ""
		}
		return p.Items.Ref
	}
	return p.Ref
}

// StripRefPrefix turns a local component reference into a bare schema name.
func StripRefPrefix(ref string) string {
	return strings.TrimPrefix(ref, RefPrefix)
}

func decodeSchema(n *document.Node) Schema {
	s := Schema{
		Ref:         n.Get("$ref").String(),
		Type:        schemaType(n.Get("type")),
		Format:      n.Get("format").String(),
		Description: n.Get("description").String(),
		ReadOnly:    n.Get("readOnly").Bool(),
		WriteOnly:   n.Get("writeOnly").Bool(),
		Pattern:     n.Get("pattern").String(),
		MinLength:   intPtr(n.Get("minLength")),
		MaxLength:   intPtr(n.Get("maxLength")),
		Enum:        n.Get("enum").Strings(),
		Required:    n.Get("required").Strings(),
	}
	s.Example, s.HasExample = exampleText(n)

	if items := n.Get("items"); items.IsMapping() {
		it := decodeSchema(items)
		s.Items = &it
	}

	for _, p := range n.Get("properties").Pairs() {
		if !p.Value.IsMapping() {
			continue
		}
		s.Properties = append(s.Properties, Property{
			Name:     p.Key,
			Required: s.IsRequired(p.Key),
			Schema:   decodeSchema(p.Value),
		})
	}

	for _, alt := range n.Get("oneOf").Items() {
		if alt.IsMapping() {
			s.OneOf = append(s.OneOf, decodeSchema(alt))
		}
	}

	return s
}

// schemaType reads type, accepting the list form where the first non-null
// entry wins.
func schemaType(n *document.Node) string {
	if n.IsSequence() {
		for _, t := range n.Strings() {
			if t != "null" {
				return t
			}
		}
		return ""
	}
	return n.String()
}

// exampleText renders example, falling back to the first entry of examples.
func exampleText(n *document.Node) (string, bool) {
	ex := n.Get("example")
	if ex == nil && n.Get("examples").IsSequence() && n.Get("examples").Len() > 0 {
		ex = n.Get("examples").Items()[0]
	}
	if ex == nil {
		return "", false
	}
	if ex.IsMapping() || ex.IsSequence() {
		b, err := ex.MarshalJSON()
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	if !ex.IsScalar() {
		return "", false
	}
	return ex.String(), true
}

func intPtr(n *document.Node) *int {
	i, ok := n.Int()
	if !ok {
		return nil
	}
	return &i
}

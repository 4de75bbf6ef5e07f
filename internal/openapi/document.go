// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package openapi

import (
	"strings"

	"github.com/dacolabs/apisheet/internal/document"
)

const (
	jsonMediaType    = "application/json"
	parameterRefPref = "#/components/parameters/"
)

// httpMethods lists the path item keys that hold operations.
var httpMethods = map[string]struct{}{
	"get": {}, "put": {}, "post": {}, "delete": {},
	"options": {}, "head": {}, "patch": {}, "trace": {},
}

// Document is the typed projection of a decoded API description.
type Document struct {
	Title      string
	Version    string
	Operations []Operation
	// Schemas holds components.schemas in declared order.
	Schemas []Schema

	schemaIndex map[string]int
}

// Operation is one (path, method) pair.
type Operation struct {
	Path        string
	Method      string
	Tags        []string
	OperationID string
	Summary     string
	Description string
	Parameters  []Parameter
	// RequestBody is the application/json request body schema, nil when the
	// operation declares none.
	RequestBody *Schema
	Responses   []Response
}

// Response is one declared response status code.
type Response struct {
	Code string
	// Body is the application/json response schema, nil when absent.
	Body *Schema
}

// Parameter is a query, path, header or cookie parameter.
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	Example     string
	HasExample  bool
	Enum        []string
	Schema      Schema
}

// ResponseCodes returns the declared status codes in document order.
func (o Operation) ResponseCodes() []string {
	codes := make([]string, len(o.Responses))
	for i, r := range o.Responses {
		codes[i] = r.Code
	}
	return codes
}

// Response returns the response declared for code.
func (o Operation) Response(code string) (Response, bool) {
	for _, r := range o.Responses {
		if r.Code == code {
			return r, true
		}
	}
	return Response{}, false
}

// Decode builds a Document from a decoded tree.
func Decode(root *document.Node) *Document {
	doc := &Document{
		Title:       root.Lookup("info", "title").String(),
		Version:     root.Lookup("info", "version").String(),
		schemaIndex: make(map[string]int),
	}

	for _, p := range root.Lookup("components", "schemas").Pairs() {
		s := decodeSchema(p.Value)
		s.Name = p.Key
		doc.schemaIndex[p.Key] = len(doc.Schemas)
		doc.Schemas = append(doc.Schemas, s)
	}

	componentParams := root.Lookup("components", "parameters")

	for _, pathItem := range root.Get("paths").Pairs() {
		shared := decodeParameters(pathItem.Value.Get("parameters"), componentParams)
		for _, m := range pathItem.Value.Pairs() {
			if _, ok := httpMethods[strings.ToLower(m.Key)]; !ok {
				continue
			}
			doc.Operations = append(doc.Operations,
				decodeOperation(pathItem.Key, m.Key, m.Value, shared, componentParams))
		}
	}

	return doc
}

// Schema returns the top-level schema called name. A missing name yields the
// zero Schema, an object with no properties.
func (d *Document) Schema(name string) Schema {
	if d == nil {
		return Schema{}
	}
	i, ok := d.schemaIndex[name]
	if !ok {
		return Schema{}
	}
	return d.Schemas[i]
}

// HasSchema reports whether components.schemas declares name.
func (d *Document) HasSchema(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.schemaIndex[name]
	return ok
}

// EnumSchema returns the schema called name when it declares a non-empty
// enum list.
func (d *Document) EnumSchema(name string) (Schema, bool) {
	s := d.Schema(name)
	if s.Kind() != KindEnum {
		return Schema{}, false
	}
	return s, true
}

func decodeOperation(path, method string, n *document.Node, shared []Parameter, componentParams *document.Node) Operation {
	op := Operation{
		Path:        path,
		Method:      method,
		Tags:        n.Get("tags").Strings(),
		OperationID: n.Get("operationId").String(),
		Summary:     n.Get("summary").String(),
		Description: n.Get("description").String(),
		Parameters:  mergeParameters(shared, decodeParameters(n.Get("parameters"), componentParams)),
		RequestBody: jsonBodySchema(n.Get("requestBody")),
	}

	for _, r := range n.Get("responses").Pairs() {
		op.Responses = append(op.Responses, Response{
			Code: r.Key,
			Body: jsonBodySchema(r.Value),
		})
	}

	return op
}

func jsonBodySchema(n *document.Node) *Schema {
	schema := n.Lookup("content", jsonMediaType, "schema")
	if !schema.IsMapping() {
		return nil
	}
	s := decodeSchema(schema)
	return &s
}

func decodeParameters(n *document.Node, componentParams *document.Node) []Parameter {
	var params []Parameter
	for _, item := range n.Items() {
		if ref := item.Get("$ref").String(); ref != "" {
			item = componentParams.Get(strings.TrimPrefix(ref, parameterRefPref))
			if item == nil {
				continue
			}
		}
		p := Parameter{
			Name:        item.Get("name").String(),
			In:          item.Get("in").String(),
			Description: item.Get("description").String(),
			Required:    item.Get("required").Bool(),
			Enum:        item.Get("enum").Strings(),
			Schema:      decodeSchema(item.Get("schema")),
		}
		p.Example, p.HasExample = exampleText(item)
		if !p.HasExample {
			p.Example, p.HasExample = p.Schema.Example, p.Schema.HasExample
		}
		if len(p.Enum) == 0 {
			p.Enum = p.Schema.Enum
		}
		params = append(params, p)
	}
	return params
}

// mergeParameters prepends path-level parameters that the operation does not
// override by (name, in).
func mergeParameters(shared, own []Parameter) []Parameter {
	if len(shared) == 0 {
		return own
	}
	out := make([]Parameter, 0, len(shared)+len(own))
	for _, s := range shared {
		overridden := false
		for _, o := range own {
			if o.Name == s.Name && o.In == s.In {
				overridden = true
				break
			}
		}
		if !overridden {
			out = append(out, s)
		}
	}
	return append(out, own...)
}

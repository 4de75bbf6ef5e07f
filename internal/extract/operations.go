// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package extract builds the flat operation and schema tables of a document.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dacolabs/apisheet/internal/flatten"
	"github.com/dacolabs/apisheet/internal/openapi"
)

// Field types of operation rows that do not come from a parameter location.
const (
	FieldTypeRequestBody  = "requestBody"
	FieldTypeResponseBody = "responseBody"
)

// successCode is the response whose JSON body is flattened.
const successCode = "200"

// ErrMissingTag indicates an operation that declares no tag.
var ErrMissingTag = errors.New("operation has no tags")

// MissingTagError names the operation that declares no tag.
type MissingTagError struct {
	Path   string
	Method string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("%s %s: %v", strings.ToUpper(e.Method), e.Path, ErrMissingTag)
}

func (e *MissingTagError) Unwrap() error {
	return ErrMissingTag
}

// OperationRecord is one row of the operations table.
type OperationRecord struct {
	Tag         string
	OperationID string
	Path        string
	Method      string
	Summary     string
	Description string
	// FieldType is the parameter location, FieldTypeRequestBody or
	// FieldTypeResponseBody.
	FieldType string
	flatten.Field
	// Responses is the comma-joined list of declared status codes.
	Responses string
}

// OperationColumns is the header of the operations table.
var OperationColumns = concat(
	[]string{"tag", "operationId", "path", "method", "summary", "description", "fieldType"},
	flatten.FieldColumns,
	[]string{"responses"},
)

// Values returns the row in OperationColumns order.
func (r OperationRecord) Values() []string {
	return concat(
		[]string{r.Tag, r.OperationID, r.Path, r.Method, r.Summary, r.Description, r.FieldType},
		r.Field.Values(),
		[]string{r.Responses},
	)
}

// Operations flattens every operation of doc: parameter rows first, then the
// request body, then the 200 response body.
func Operations(doc *openapi.Document, opts ...flatten.Option) ([]OperationRecord, error) {
	request := flatten.New(doc, flatten.ModeRequest, opts...)
	response := flatten.New(doc, flatten.ModeResponse, opts...)

	var records []OperationRecord
	for _, op := range doc.Operations {
		rows, err := operationRows(op, request, response)
		if err != nil {
			return nil, err
		}
		records = append(records, rows...)
	}
	return records, nil
}

func operationRows(op openapi.Operation, request, response *flatten.Flattener) ([]OperationRecord, error) {
	if len(op.Tags) == 0 {
		return nil, &MissingTagError{Path: op.Path, Method: op.Method}
	}

	base := OperationRecord{
		Tag:         op.Tags[0],
		OperationID: op.OperationID,
		Path:        op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
		Responses:   strings.Join(op.ResponseCodes(), ", "),
	}

	var rows []OperationRecord
	for _, p := range op.Parameters {
		r := base
		r.FieldType = p.In
		r.Field = parameterField(p)
		rows = append(rows, r)
	}

	bodyRows := func(s *openapi.Schema, f *flatten.Flattener, fieldType string) error {
		fields, err := flattenBody(s, f)
		if err != nil {
			return fmt.Errorf("%s %s %s: %w", base.Method, op.Path, fieldType, err)
		}
		for _, field := range fields {
			r := base
			r.FieldType = fieldType
			r.Field = field
			rows = append(rows, r)
		}
		return nil
	}

	if err := bodyRows(op.RequestBody, request, FieldTypeRequestBody); err != nil {
		return nil, err
	}
	if resp, ok := op.Response(successCode); ok {
		if err := bodyRows(resp.Body, response, FieldTypeResponseBody); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

// flattenBody flattens a body schema: a $ref by name, an inline object by
// its own properties.
func flattenBody(s *openapi.Schema, f *flatten.Flattener) ([]flatten.Field, error) {
	switch {
	case s == nil:
		return nil, nil
	case s.Ref != "":
		return f.Flatten(openapi.StripRefPrefix(s.Ref), "")
	case len(s.Properties) > 0:
		return f.FlattenInline(*s, "")
	default:
		return nil, nil
	}
}

// parameterField builds a parameter row. Parameters are never filtered by
// readOnly or writeOnly.
func parameterField(p openapi.Parameter) flatten.Field {
	return flatten.Field{
		Name:        p.Name,
		Description: p.Description,
		DataType:    p.Schema.Type,
		Required:    p.Required,
		Format:      p.Schema.Format,
		Example:     flatten.Example(openapi.Schema{Example: p.Example, HasExample: p.HasExample}),
		ReadOnly:    p.Schema.ReadOnly,
		WriteOnly:   p.Schema.WriteOnly,
		Pattern:     p.Schema.Pattern,
		MinLength:   p.Schema.MinLength,
		MaxLength:   p.Schema.MaxLength,
		Enum:        flatten.JoinEnum(p.Enum),
	}
}

func concat(parts ...[]string) []string {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]string, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

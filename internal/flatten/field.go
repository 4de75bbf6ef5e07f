// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package flatten

import (
	"strconv"
	"strings"

	"github.com/dacolabs/apisheet/internal/openapi"
)

// examplePrefix is prepended to example values so spreadsheets keep them as
// text instead of coercing numbers, dates and booleans.
const examplePrefix = "'"

// unionPrefix marks the data type of a field declaring oneOf alternatives.
const unionPrefix = "One of "

// Field is one flattened row.
type Field struct {
	Name        string // dotted path, e.g. "owner.pets[].name"
	Description string
	DataType    string
	Required    bool
	Format      string
	Example     string
	ReadOnly    bool
	WriteOnly   bool
	Pattern     string
	MinLength   *int
	MaxLength   *int
	Enum        string // comma-joined enum values
}

// Values returns the field columns as text, in FieldColumns order.
func (f Field) Values() []string {
	return []string{
		f.Name,
		f.Description,
		f.DataType,
		strconv.FormatBool(f.Required),
		f.Format,
		f.Example,
		strconv.FormatBool(f.ReadOnly),
		strconv.FormatBool(f.WriteOnly),
		f.Pattern,
		formatInt(f.MinLength),
		formatInt(f.MaxLength),
		f.Enum,
	}
}

// FieldColumns names the columns produced by Field.Values.
var FieldColumns = []string{
	"fieldName",
	"fieldDescription",
	"fieldDataType",
	"required",
	"fieldFormat",
	"fieldExampleValue",
	"fieldIsReadOnly",
	"fieldIsWriteOnly",
	"fieldValuePattern",
	"fieldMinLength",
	"fieldMaxLength",
	"enumListValue",
}

// BuildPath composes the display path of a field.
func BuildPath(parent, name string, isArray bool) string {
	var b strings.Builder
	if parent != "" {
		b.WriteString(parent)
		b.WriteByte('.')
	}
	b.WriteString(name)
	if isArray {
		b.WriteString("[]")
	}
	return b.String()
}

// Example renders an example value for a row, empty when there is none.
func Example(s openapi.Schema) string {
	if !s.HasExample {
		return ""
	}
	return examplePrefix + s.Example
}

// JoinEnum joins enum literals with a comma.
func JoinEnum(values []string) string {
	return strings.Join(values, ",")
}

// leafField builds a scalar row from the attributes of s.
func leafField(path string, s openapi.Schema, required bool) Field {
	return Field{
		Name:        path,
		Description: s.Description,
		DataType:    s.Type,
		Required:    required,
		Format:      s.Format,
		Example:     Example(s),
		ReadOnly:    s.ReadOnly,
		WriteOnly:   s.WriteOnly,
		Pattern:     s.Pattern,
		MinLength:   s.MinLength,
		MaxLength:   s.MaxLength,
		Enum:        JoinEnum(s.Enum),
	}
}

func formatInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

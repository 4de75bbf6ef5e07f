// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dacolabs/apisheet/internal/flatten"
	"github.com/dacolabs/apisheet/internal/openapi"
)

// SchemaRecord is one row of the schema catalog.
type SchemaRecord struct {
	SchemaName string
	flatten.Field
}

// SchemaColumns is the header of the schema catalog.
var SchemaColumns = concat([]string{"schemaName"}, flatten.FieldColumns)

// Values returns the row in SchemaColumns order.
func (r SchemaRecord) Values() []string {
	return concat([]string{r.SchemaName}, r.Field.Values())
}

// Catalog flattens every top-level schema of doc without visibility
// filtering.
func Catalog(doc *openapi.Document, opts ...flatten.Option) ([]SchemaRecord, error) {
	f := flatten.New(doc, flatten.ModeCatalog, opts...)

	var records []SchemaRecord
	for _, s := range doc.Schemas {
		fields, err := f.Flatten(s.Name, "")
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Name, err)
		}
		for _, field := range fields {
			records = append(records, SchemaRecord{SchemaName: s.Name, Field: field})
		}
	}
	return records, nil
}

// PropertyRecord is one row of the shallow property listing: the direct
// properties of a schema and the references they hold, without recursion.
type PropertyRecord struct {
	SchemaName    string
	PropertyName  string
	Type          string
	Format        string
	Description   string
	Example       string
	Required      bool
	Enum          string
	ModelRef      string
	ModelArrayRef string
}

// PropertyColumns is the header of the property listing.
var PropertyColumns = []string{
	"schema name",
	"properties name",
	"type",
	"format",
	"description",
	"example",
	"required",
	"enum",
	"modelRef",
	"modelArrayRef",
}

// Values returns the row in PropertyColumns order.
func (r PropertyRecord) Values() []string {
	return []string{
		r.SchemaName,
		r.PropertyName,
		r.Type,
		r.Format,
		r.Description,
		r.Example,
		strconv.FormatBool(r.Required),
		r.Enum,
		r.ModelRef,
		r.ModelArrayRef,
	}
}

// Properties lists the direct properties of every top-level schema.
func Properties(doc *openapi.Document) []PropertyRecord {
	var records []PropertyRecord
	for _, s := range doc.Schemas {
		for _, p := range s.Properties {
			r := PropertyRecord{
				SchemaName:   s.Name,
				PropertyName: p.Name,
				Type:         p.Type,
				Format:       p.Format,
				Description:  p.Description,
				Example:      p.Example,
				Required:     p.Required,
				Enum:         strings.Join(p.Enum, ", "),
				ModelRef:     p.Ref,
			}
			if p.Items != nil {
				r.ModelArrayRef = p.Items.Ref
			}
			records = append(records, r)
		}
	}
	return records
}

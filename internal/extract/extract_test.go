// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package extract

import (
	"os"
	"strings"
	"testing"

	"github.com/dacolabs/apisheet/internal/document"
	"github.com/dacolabs/apisheet/internal/flatten"
	"github.com/dacolabs/apisheet/internal/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadPetstore(t *testing.T) *openapi.Document {
	t.Helper()
	root, err := document.NewLoader(os.DirFS("testdata")).LoadFile("petstore.yaml", "")
	require.NoError(t, err)
	return openapi.Decode(root)
}

func filter(records []OperationRecord, operationID, fieldType string) []OperationRecord {
	var out []OperationRecord
	for _, r := range records {
		if r.OperationID == operationID && r.FieldType == fieldType {
			out = append(out, r)
		}
	}
	return out
}

func fieldNames(records []OperationRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Field.Name
	}
	return out
}

func TestOperations_Metadata(t *testing.T) {
	records, err := Operations(loadPetstore(t))
	require.NoError(t, err)
	require.NotEmpty(t, records)

	first := records[0]
	assert.Equal(t, "pets", first.Tag, "only the first tag is used")
	assert.Equal(t, "getPet", first.OperationID)
	assert.Equal(t, "/pets/{id}", first.Path)
	assert.Equal(t, "GET", first.Method)
	assert.Equal(t, "Find a pet", first.Summary)
	assert.Equal(t, "Returns a single pet", first.Description)
	assert.Equal(t, "200, 404", first.Responses)
}

func TestOperations_Parameters(t *testing.T) {
	records, err := Operations(loadPetstore(t))
	require.NoError(t, err)

	path := filter(records, "getPet", "path")
	require.Len(t, path, 1)
	assert.Equal(t, "id", path[0].Field.Name)
	assert.Equal(t, "integer", path[0].DataType)
	assert.Equal(t, "int64", path[0].Format)
	assert.True(t, path[0].Required)

	query := filter(records, "getPet", "query")
	require.Len(t, query, 1)
	assert.Equal(t, "limit", query[0].Field.Name)
	assert.Equal(t, "'10", query[0].Example)
	assert.False(t, query[0].Required)
}

func TestOperations_ResponseBody(t *testing.T) {
	records, err := Operations(loadPetstore(t))
	require.NoError(t, err)

	resp := filter(records, "getPet", FieldTypeResponseBody)
	assert.Equal(t, []string{
		"id", "name", "tag", "owner", "owner.id", "owner.name", "status", "toys[]", "toys[].kind",
	}, fieldNames(resp))

	for _, r := range resp {
		switch r.Field.Name {
		case "name":
			assert.True(t, r.Required)
		case "tag":
			assert.False(t, r.Required)
		case "status":
			assert.Equal(t, "available,sold", r.Enum)
		}
	}
}

func TestOperations_RequestBody(t *testing.T) {
	records, err := Operations(loadPetstore(t))
	require.NoError(t, err)

	req := filter(records, "updatePet", FieldTypeRequestBody)
	assert.Equal(t, []string{
		"name", "tag", "secret", "owner", "owner.name", "status", "toys[]", "toys[].kind",
	}, fieldNames(req))

	assert.Empty(t, filter(records, "getPet", FieldTypeRequestBody))
}

func TestOperations_InlineRequestBody(t *testing.T) {
	records, err := Operations(loadPetstore(t))
	require.NoError(t, err)

	req := filter(records, "createPet", FieldTypeRequestBody)
	require.Len(t, req, 1)
	assert.Equal(t, "name", req[0].Field.Name)
	assert.True(t, req[0].Required)
	assert.Equal(t, "POST", req[0].Method)
	assert.Equal(t, "201", req[0].Responses)

	assert.Empty(t, filter(records, "createPet", FieldTypeResponseBody), "only the 200 response body is flattened")
}

func TestOperations_RowOrder(t *testing.T) {
	records, err := Operations(loadPetstore(t))
	require.NoError(t, err)

	var kinds []string
	for _, r := range records {
		if r.OperationID != "getPet" {
			continue
		}
		if len(kinds) == 0 || kinds[len(kinds)-1] != r.FieldType {
			kinds = append(kinds, r.FieldType)
		}
	}
	assert.Equal(t, []string{"path", "query", FieldTypeResponseBody}, kinds)
}

func TestOperations_MissingTag(t *testing.T) {
	root, err := document.YAML.Parse(strings.NewReader(`
paths:
  /health:
    get:
      operationId: health
      responses:
        "200":
          description: ok
`))
	require.NoError(t, err)

	_, err = Operations(openapi.Decode(root))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingTag)

	var tagErr *MissingTagError
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, "/health", tagErr.Path)
	assert.Equal(t, "get", tagErr.Method)
	assert.Contains(t, err.Error(), "GET /health")
}

func TestOperations_StrictCyclePropagates(t *testing.T) {
	root, err := document.YAML.Parse(strings.NewReader(`
paths:
  /nodes:
    get:
      tags: [nodes]
      responses:
        "200":
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Node"
components:
  schemas:
    Node:
      properties:
        next:
          $ref: "#/components/schemas/Node"
`))
	require.NoError(t, err)
	doc := openapi.Decode(root)

	_, err = Operations(doc, flatten.WithStrictCycles(true))
	assert.ErrorIs(t, err, flatten.ErrCycle)

	records, err := Operations(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"next"}, fieldNames(records))
}

func TestOperationRecord_Values(t *testing.T) {
	r := OperationRecord{
		Tag:         "pets",
		OperationID: "getPet",
		Path:        "/pets",
		Method:      "GET",
		FieldType:   "query",
		Field:       flatten.Field{Name: "limit", DataType: "integer"},
		Responses:   "200",
	}

	values := r.Values()
	require.Len(t, values, len(OperationColumns))
	assert.Equal(t, "tag", OperationColumns[0])
	assert.Equal(t, "responses", OperationColumns[len(OperationColumns)-1])
	assert.Equal(t, "pets", values[0])
	assert.Equal(t, "limit", values[7])
	assert.Equal(t, "integer", values[9])
	assert.Equal(t, "200", values[len(values)-1])
}

func TestCatalog(t *testing.T) {
	records, err := Catalog(loadPetstore(t))
	require.NoError(t, err)

	var pet []string
	var schemas []string
	for _, r := range records {
		if r.SchemaName == "Pet" {
			pet = append(pet, r.Field.Name)
		}
		if len(schemas) == 0 || schemas[len(schemas)-1] != r.SchemaName {
			schemas = append(schemas, r.SchemaName)
		}
	}

	assert.Equal(t, []string{
		"id", "name", "tag", "secret", "owner", "owner.id", "owner.name", "status", "toys[]", "toys[].kind",
	}, pet, "catalog mode keeps readOnly and writeOnly fields")

	assert.Equal(t, []string{"Pet", "Owner", "Toy"}, schemas, "enum schemas have no properties")
}

func TestSchemaRecord_Values(t *testing.T) {
	r := SchemaRecord{SchemaName: "Pet", Field: flatten.Field{Name: "name", Required: true}}

	values := r.Values()
	require.Len(t, values, len(SchemaColumns))
	assert.Equal(t, []string{"schemaName", "fieldName"}, SchemaColumns[:2])
	assert.Equal(t, "Pet", values[0])
	assert.Equal(t, "name", values[1])
	assert.Equal(t, "true", values[4])
}

func TestProperties(t *testing.T) {
	records := Properties(loadPetstore(t))

	var toys PropertyRecord
	var owner PropertyRecord
	for _, r := range records {
		if r.SchemaName != "Pet" {
			continue
		}
		switch r.PropertyName {
		case "toys":
			toys = r
		case "owner":
			owner = r
		}
	}

	assert.Equal(t, "array", toys.Type)
	assert.Equal(t, "#/components/schemas/Toy", toys.ModelArrayRef)
	assert.Equal(t, "#/components/schemas/Owner", owner.ModelRef)

	for _, r := range records {
		assert.NotContains(t, r.PropertyName, ".", "property listing never recurses")
	}
	assert.Len(t, PropertyColumns, len(records[0].Values()))
}

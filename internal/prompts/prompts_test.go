// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, []ResultField{
		{Label: "Operations", Value: "out/api.operations.csv"},
		{Label: "Schemas", Value: "out/api.schemas.csv"},
	}, "Export complete")

	out := buf.String()
	assert.Contains(t, out, "Operations:")
	assert.Contains(t, out, "out/api.operations.csv")
	assert.Contains(t, out, "out/api.schemas.csv")
	assert.Contains(t, out, "Export complete")
}

func TestRequiredValidator(t *testing.T) {
	validate := requiredValidator("output directory")

	assert.NoError(t, validate("out"))
	err := validate("")
	require.Error(t, err)
	assert.Equal(t, "output directory is required", err.Error())
}

func TestRunExportForm_NothingToAsk(t *testing.T) {
	format, dir := "csv", "."
	require.NoError(t, RunExportForm(&format, &dir, []string{"csv"}, false, false))
	assert.Equal(t, "csv", format)
	assert.Equal(t, ".", dir)
}

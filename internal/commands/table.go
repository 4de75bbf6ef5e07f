// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dacolabs/apisheet/internal/export"
	"github.com/dacolabs/apisheet/internal/extract"
	"github.com/dacolabs/apisheet/internal/openapi"
	"github.com/dacolabs/apisheet/internal/session"
	"github.com/spf13/cobra"
)

// tableBuilder produces one table from a decoded document.
type tableBuilder func(ctx *session.Context, doc *openapi.Document) (export.Table, error)

type tableOptions struct {
	format string
	output string
}

func newOperationsCmd(writers export.Register) *cobra.Command {
	return newTableCmd(writers, tableCommand{
		use:   "operations FILE",
		short: "List every operation parameter and body field",
		long: `List one row per parameter, request body field and 200 response body
field of every operation. readOnly fields are left out of request bodies and
writeOnly fields out of response bodies.`,
		example: `  # Operations table as CSV on stdout
  apisheet operations openapi.yaml

  # Markdown into a file
  apisheet operations openapi.json -f markdown -o operations.md`,
		build: buildOperations,
	})
}

func newSchemasCmd(writers export.Register) *cobra.Command {
	return newTableCmd(writers, tableCommand{
		use:   "schemas FILE",
		short: "List every field of every component schema",
		long: `List one row per field of every schema under components/schemas,
following references and array items. No visibility filtering is applied.`,
		example: `  apisheet schemas openapi.yaml -f json`,
		build:   buildSchemas,
	})
}

func newPropertiesCmd(writers export.Register) *cobra.Command {
	return newTableCmd(writers, tableCommand{
		use:   "properties FILE",
		short: "List the direct properties of every component schema",
		long: `List one row per direct property of every schema under
components/schemas, with the schema it references. Nested schemas are not
expanded.`,
		example: `  apisheet properties openapi.yaml -f markdown`,
		build:   buildProperties,
	})
}

type tableCommand struct {
	use, short, long, example string
	build                     tableBuilder
}

func newTableCmd(writers export.Register, tc tableCommand) *cobra.Command {
	opts := &tableOptions{}

	cmd := &cobra.Command{
		Use:     tc.use,
		Short:   tc.short,
		Long:    tc.long,
		Example: tc.example,
		Args:    cobra.ExactArgs(1),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runTable(cmd, ctx, writers, tc.build, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s), defaults to output.format", strings.Join(writers.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, stdout when empty or -")

	return cmd
}

func runTable(cmd *cobra.Command, ctx *session.Context, writers export.Register, build tableBuilder, path string, opts *tableOptions) error {
	format := opts.format
	if format == "" {
		format = ctx.Config.Output.Format
	}
	writer, err := writers.Get(format)
	if err != nil {
		return fmt.Errorf("%w. Available formats: %s", err, strings.Join(writers.Available(), ", "))
	}

	doc, err := loadDocument(cmd, ctx, path)
	if err != nil {
		return err
	}

	table, err := build(ctx, doc)
	if err != nil {
		return err
	}

	if opts.output == "" || opts.output == "-" {
		return writer.Write(cmd.OutOrStdout(), table)
	}
	return writeFile(opts.output, func(w io.Writer) error {
		return writer.Write(w, table)
	})
}

func loadDocument(cmd *cobra.Command, ctx *session.Context, path string) (*openapi.Document, error) {
	format, _ := cmd.Flags().GetString(flagInputFormat)
	return ctx.LoadDocument(path, format)
}

func buildOperations(ctx *session.Context, doc *openapi.Document) (export.Table, error) {
	records, err := extract.Operations(doc, ctx.FlattenOptions()...)
	if err != nil {
		return export.Table{}, err
	}
	return export.NewTable(tableTitle(doc, "operations"), extract.OperationColumns, records), nil
}

func buildSchemas(ctx *session.Context, doc *openapi.Document) (export.Table, error) {
	records, err := extract.Catalog(doc, ctx.FlattenOptions()...)
	if err != nil {
		return export.Table{}, err
	}
	return export.NewTable(tableTitle(doc, "schemas"), extract.SchemaColumns, records), nil
}

func buildProperties(_ *session.Context, doc *openapi.Document) (export.Table, error) {
	records := extract.Properties(doc)
	return export.NewTable(tableTitle(doc, "properties"), extract.PropertyColumns, records), nil
}

func tableTitle(doc *openapi.Document, kind string) string {
	if doc.Title == "" {
		return strings.ToUpper(kind[:1]) + kind[1:]
	}
	return doc.Title + " " + kind
}

// writeFile creates path and hands it to write, reporting close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacolabs/apisheet/internal/export"
	"github.com/dacolabs/apisheet/internal/openapi"
	"github.com/dacolabs/apisheet/internal/prompts"
	"github.com/dacolabs/apisheet/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type exportOptions struct {
	format         string
	dir            string
	withProperties bool
	nonInteractive bool
}

// exportTarget is one table written by the export command.
type exportTarget struct {
	label string
	kind  string
	build tableBuilder
}

func newExportCmd(writers export.Register) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the operations and schemas tables to files",
		Long: fmt.Sprintf(`Write the operations table and the schema catalog of a document to
<name>.operations<ext> and <name>.schemas<ext> in the output directory.

Missing format and directory are prompted for when running in a terminal.

Available formats: %s`, strings.Join(writers.Available(), ", ")),
		Example: `  # Interactive mode
  apisheet export openapi.yaml

  # Non-interactive
  apisheet export openapi.yaml --format markdown --dir docs --non-interactive

  # Include the shallow property listing
  apisheet export openapi.yaml -f csv -d out --with-properties`,
		Args:    cobra.ExactArgs(1),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runExport(cmd, ctx, writers, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(writers.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Output directory, defaults to output.dir")
	cmd.Flags().BoolVar(&opts.withProperties, "with-properties", false, "Also write <name>.properties<ext>")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runExport(cmd *cobra.Command, ctx *session.Context, writers export.Register, path string, opts *exportOptions) error {
	format := opts.format
	if format == "" {
		format = ctx.Config.Output.Format
	}
	dir := opts.dir
	if dir == "" {
		dir = ctx.Config.Output.Dir
	}

	// Prompt for any missing values
	if !opts.nonInteractive && prompts.IsInteractive() {
		err := prompts.RunExportForm(
			&format, &dir, writers.Available(),
			!cmd.Flags().Changed("format"),
			!cmd.Flags().Changed("dir"),
		)
		if err != nil {
			return err
		}
	}

	writer, err := writers.Get(format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			format, strings.Join(writers.Available(), ", "))
	}

	doc, err := loadDocument(cmd, ctx, path)
	if err != nil {
		return err
	}

	targets := []exportTarget{
		{label: "Operations", kind: "operations", build: buildOperations},
		{label: "Schemas", kind: "schemas", build: buildSchemas},
	}
	if opts.withProperties {
		targets = append(targets, exportTarget{label: "Properties", kind: "properties", build: buildProperties})
	}

	tables, err := buildTables(cmd.Context(), ctx, doc, targets)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	results := make([]prompts.ResultField, len(targets))

	var g errgroup.Group
	for i, target := range targets {
		outFile := filepath.Join(dir, base+"."+target.kind+writer.FileExtension())
		results[i] = prompts.ResultField{Label: target.label, Value: outFile}
		table := tables[i]

		g.Go(func() error {
			ctx.Logger.Debug().
				Str("table", target.kind).
				Int("rows", len(table.Rows)).
				Str("file", outFile).
				Msg("writing table")
			return writeFile(outFile, func(w io.Writer) error {
				return writer.Write(w, table)
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	prompts.PrintResult(cmd.OutOrStdout(), results, "Export complete")
	return nil
}

// buildTables builds every target concurrently. No table is returned unless
// all of them succeed.
func buildTables(parent context.Context, ctx *session.Context, doc *openapi.Document, targets []exportTarget) ([]export.Table, error) {
	tables := make([]export.Table, len(targets))

	g, gctx := errgroup.WithContext(parent)
	for i, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := target.build(ctx, doc)
			if err != nil {
				return fmt.Errorf("%s: %w", target.kind, err)
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

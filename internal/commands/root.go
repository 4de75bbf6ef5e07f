// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/dacolabs/apisheet/internal/config"
	"github.com/dacolabs/apisheet/internal/export"
	"github.com/dacolabs/apisheet/internal/session"
	"github.com/spf13/cobra"
)

// flagInputFormat overrides extension based document format detection.
const flagInputFormat = "input-format"

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(writers export.Register) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "apisheet",
		Short: "Flatten OpenAPI documents into tables",
		Long: `apisheet turns an OpenAPI 3 document into flat tables: one row per
operation parameter or body field, and one row per field of every schema.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(session.FlagConfig, config.DefaultFileName, "Config file (optional)")
	flags.String(session.FlagLogLevel, "", "Log level (trace, debug, info, warn, error, disabled)")
	flags.Bool(session.FlagPretty, false, "Human readable logs")
	flags.Bool(session.FlagStrictCycles, false, "Fail on recursive schema references instead of skipping them")
	flags.String(flagInputFormat, "", "Document format (json or yaml), detected from the extension by default")

	rootCmd.AddCommand(
		newOperationsCmd(writers),
		newSchemasCmd(writers),
		newPropertiesCmd(writers),
		newExportCmd(writers),
		newDescribeCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"
	"io"

	"github.com/dacolabs/apisheet/internal/commands"
	"github.com/dacolabs/apisheet/internal/export"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, arguments, output).
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := commands.NewRootCmd(export.Default())
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

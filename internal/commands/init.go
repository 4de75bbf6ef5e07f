// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"

	"github.com/dacolabs/apisheet/internal/config"
	"github.com/dacolabs/apisheet/internal/prompts"
	"github.com/dacolabs/apisheet/internal/session"
	"github.com/spf13/cobra"
)

type initOptions struct {
	force bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default apisheet.yaml",
		Long: `Write a configuration file holding the default settings, at the
path given by --config.`,
		Example: `  # Create apisheet.yaml in the current directory
  apisheet init

  # Overwrite an existing file
  apisheet init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString(session.FlagConfig)
			return runInit(cmd, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, path string, opts *initOptions) error {
	if path == "" {
		path = config.DefaultFileName
	}

	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}

	cfg, err := config.Load("", nil)
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: path},
		{Label: "Format", Value: cfg.Output.Format},
		{Label: "Directory", Value: cfg.Output.Dir},
	}, "Initialization completed")
	return nil
}

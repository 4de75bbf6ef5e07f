// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/dacolabs/apisheet/internal/version"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				data, err := json.Marshal(version.Current())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case short:
				_, err := fmt.Fprintln(out, version.Short())
				return err
			default:
				_, err := fmt.Fprintln(out, version.Info())
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")

	return cmd
}

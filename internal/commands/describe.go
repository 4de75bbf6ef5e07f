// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"strconv"
	"strings"

	"github.com/dacolabs/apisheet/internal/openapi"
	"github.com/dacolabs/apisheet/internal/prompts"
	"github.com/dacolabs/apisheet/internal/session"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Show a document overview",
		Long: `Show the title and version of a document with the number of
operations and component schemas it declares and the tags it uses.`,
		Example: `  # Describe a document
  apisheet describe openapi.yaml`,
		Args:    cobra.ExactArgs(1),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, ctx, args[0])
			if err != nil {
				return err
			}
			return runDescribe(cmd, doc)
		},
	}
	return cmd
}

func runDescribe(cmd *cobra.Command, doc *openapi.Document) error {
	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Title", Value: doc.Title},
		{Label: "Version", Value: doc.Version},
		{Label: "Operations", Value: strconv.Itoa(len(doc.Operations))},
		{Label: "Schemas", Value: strconv.Itoa(len(doc.Schemas))},
		{Label: "Tags", Value: strings.Join(documentTags(doc), ", ")},
	}, "")
	return nil
}

// documentTags returns the first tag of every operation, deduplicated in
// declaration order.
func documentTags(doc *openapi.Document) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, op := range doc.Operations {
		if len(op.Tags) == 0 || seen[op.Tags[0]] {
			continue
		}
		seen[op.Tags[0]] = true
		tags = append(tags, op.Tags[0])
	}
	return tags
}

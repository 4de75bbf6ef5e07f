// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package export

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
)

//go:embed markdown.md.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"cells": formatCells,
}

var tmpl = template.Must(template.New("markdown.md.tmpl").Funcs(funcMap).ParseFS(tmplFS, "markdown.md.tmpl"))

var cellReplacer = strings.NewReplacer(
	`|`, `\|`,
	"\r\n", "<br>",
	"\n", "<br>",
)

// Markdown writes tables as GitHub-flavored markdown.
type Markdown struct{}

// Name returns the format identifier.
func (m *Markdown) Name() string {
	return "markdown"
}

// FileExtension returns the file extension for markdown files.
func (m *Markdown) FileExtension() string {
	return ".md"
}

// Write renders the table as a markdown table, preceded by its title.
func (m *Markdown) Write(w io.Writer, t Table) error {
	if err := tmpl.ExecuteTemplate(w, "markdown.md.tmpl", t); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// formatCells escapes pipes and line breaks and joins cells with separators.
func formatCells(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = cellReplacer.Replace(c)
	}
	return strings.Join(escaped, " | ")
}

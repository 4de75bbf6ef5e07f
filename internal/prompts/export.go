// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// FormatSelect returns a select field for choosing the table format.
func FormatSelect(value *string, formats []string) *huh.Select[string] {
	options := make([]huh.Option[string], len(formats))
	for i, f := range formats {
		options[i] = huh.NewOption(f, f)
	}
	return huh.NewSelect[string]().
		Title("Output format").
		Options(options...).
		Value(value)
}

// RunExportForm asks for the values the export command was not given.
// It returns without prompting when neither is requested.
func RunExportForm(format, dir *string, formats []string, askFormat, askDir bool) error {
	var fields []huh.Field
	if askFormat {
		fields = append(fields, FormatSelect(format, formats))
	}
	if askDir {
		fields = append(fields, huh.NewInput().
			Title("Output directory").
			Placeholder(".").
			Validate(requiredValidator("output directory")).
			Value(dir))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(Theme()).Run()
}

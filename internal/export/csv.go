// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package export

import (
	"encoding/csv"
	"io"
)

// CSV writes tables as comma-separated values with a header row.
type CSV struct{}

// Name returns the format identifier.
func (c *CSV) Name() string {
	return "csv"
}

// FileExtension returns the file extension for CSV files.
func (c *CSV) FileExtension() string {
	return ".csv"
}

// Write serializes the table as CSV.
func (c *CSV) Write(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

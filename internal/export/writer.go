// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package export writes flat tables in tabular file formats.
package export

import (
	"fmt"
	"io"
	"sort"
)

// Table is a header plus rows of text cells.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Row is anything that renders itself as a table row.
type Row interface {
	Values() []string
}

// NewTable builds a table from rows sharing the given columns.
func NewTable[R Row](title string, columns []string, rows []R) Table {
	t := Table{
		Title:   title,
		Columns: columns,
		Rows:    make([][]string, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = r.Values()
	}
	return t
}

// Writer defines the interface all table formats must implement.
type Writer interface {
	// Name returns the format identifier (e.g., "csv", "markdown").
	Name() string

	// Write serializes the table to w.
	Write(w io.Writer, t Table) error

	// FileExtension returns the appropriate file extension (e.g., ".csv").
	FileExtension() string
}

// Register maps format names to writers.
type Register map[string]Writer

// Default returns a register holding every built-in writer.
func Default() Register {
	r := make(Register)
	r.Add(&CSV{})
	r.Add(&Markdown{})
	r.Add(&JSON{})
	r.Add(&YAML{})
	return r
}

// Add registers w under its name.
func (r Register) Add(w Writer) {
	r[w.Name()] = w
}

// Get retrieves a writer by name.
func (r Register) Get(name string) (Writer, error) {
	w, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
	return w, nil
}

// Available returns all registered format names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

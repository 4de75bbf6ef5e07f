// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package export

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
)

// JSON writes tables as an array of objects keyed by column name.
type JSON struct{}

// Name returns the format identifier.
func (j *JSON) Name() string {
	return "json"
}

// FileExtension returns the file extension for JSON files.
func (j *JSON) FileExtension() string {
	return ".json"
}

// Write serializes the table as an indented JSON array. Object keys follow
// the column order.
func (j *JSON) Write(w io.Writer, t Table) error {
	rows := make([]jsonRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = jsonRow{columns: t.Columns, values: r}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

type jsonRow struct {
	columns []string
	values  []string
}

func (r jsonRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		var value string
		if i < len(r.values) {
			value = r.values[i]
		}
		val, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

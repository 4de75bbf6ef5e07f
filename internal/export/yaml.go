// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package export

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAML writes tables as a sequence of mappings keyed by column name.
type YAML struct{}

// Name returns the format identifier.
func (y *YAML) Name() string {
	return "yaml"
}

// FileExtension returns the file extension for YAML files.
func (y *YAML) FileExtension() string {
	return ".yaml"
}

// Write serializes the table as YAML. Mapping keys follow the column order.
func (y *YAML) Write(w io.Writer, t Table) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range t.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range t.Columns {
			var value string
			if i < len(r) {
				value = r[i]
			}
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
			)
		}
		seq.Content = append(seq.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return err
	}
	return enc.Close()
}

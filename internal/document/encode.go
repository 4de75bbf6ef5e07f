// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package document

import (
	"bytes"

	"github.com/goccy/go-json"
)

// MarshalJSON encodes the node as compact JSON, keeping mapping keys in
// declared order and numbers in their literal form.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encodeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case MappingKind:
		buf.WriteByte('{')
		for i, p := range n.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := p.Value.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case SequenceKind:
		buf.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		switch n.ScalarType {
		case NullScalar:
			buf.WriteString("null")
		case BoolScalar:
			if n.Bool() {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
		case NumberScalar:
			if !json.Valid([]byte(n.Value)) {
				// YAML literals such as 0x1F or .inf are not JSON numbers.
				return writeJSONString(buf, n.Value)
			}
			buf.WriteString(n.Value)
		default:
			return writeJSONString(buf, n.Value)
		}
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

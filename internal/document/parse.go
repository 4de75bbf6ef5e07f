// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat indicates a document format other than JSON or YAML.
	ErrUnsupportedFormat = errors.New("unsupported file format, only JSON and YAML are supported")

	// ErrEmptyDocument indicates the input held no document at all.
	ErrEmptyDocument = errors.New("empty document")

	// ErrTrailingData indicates content after the top-level JSON value.
	ErrTrailingData = errors.New("unexpected data after top-level value")

	// ErrAliasExpansion indicates YAML aliases expanding far beyond the size
	// of the source document.
	ErrAliasExpansion = errors.New("yaml alias expansion limit exceeded")
)

// Parser decodes a document from an io.Reader.
type Parser struct {
	name  string
	parse func([]byte) (*Node, error)
}

var (
	// JSON parses JSON documents.
	JSON = Parser{name: "json", parse: parseJSON}
	// YAML parses YAML documents.
	YAML = Parser{name: "yaml", parse: parseYAML}
)

// Name returns the format handled by the parser.
func (p Parser) Name() string {
	return p.name
}

// Parse reads r fully and decodes it into a Node tree.
func (p Parser) Parse(r io.Reader) (*Node, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if p.parse == nil {
		return nil, ErrUnsupportedFormat
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	return p.parse(data)
}

// ParserFor selects a parser from the file extension of path.
func ParserFor(path string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	p, err := ParserForFormat(ext)
	if err != nil {
		return Parser{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParserForFormat selects a parser by format name: json, yaml or yml.
func ParserForFormat(format string) (Parser, error) {
	switch strings.ToLower(format) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return Parser{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func parseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	root, err := decodeJSONToken(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return root, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, err)
				}
				m.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			s := NewSequence()
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				s.Append(item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return s, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case string:
		return NewString(v), nil
	case json.Number:
		return NewScalar(NumberScalar, v.String()), nil
	case bool:
		if v {
			return NewScalar(BoolScalar, "true"), nil
		}
		return NewScalar(BoolScalar, "false"), nil
	case nil:
		return NewScalar(NullScalar, ""), nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

// Alias expansion may produce at most aliasBudgetRatio nodes per source
// node, and never fewer than minAliasBudget.
const (
	minAliasBudget   = 10_000
	aliasBudgetRatio = 10
)

func parseYAML(data []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrEmptyDocument
	}
	c := &yamlConverter{budget: max(minAliasBudget, aliasBudgetRatio*countYAML(&root))}
	return c.convert(root.Content[0])
}

// countYAML counts the nodes written in the source, without following aliases.
func countYAML(n *yaml.Node) int {
	count := 1
	for _, c := range n.Content {
		count += countYAML(c)
	}
	return count
}

// yamlConverter turns a yaml.Node tree into a Node tree, expanding aliases
// within a node budget.
type yamlConverter struct {
	budget     int
	aliasDepth int
}

func (c *yamlConverter) convert(n *yaml.Node) (*Node, error) {
	if c.aliasDepth > 0 {
		c.budget--
		if c.budget < 0 {
			return nil, fmt.Errorf("line %d: %w", n.Line, ErrAliasExpansion)
		}
	}

	switch n.Kind {
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.ShortTag() == "!!merge" {
				if err := c.merge(m, valueNode); err != nil {
					return nil, err
				}
				continue
			}
			value, err := c.convert(valueNode)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", keyNode.Value, err)
			}
			m.Set(keyNode.Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		s := NewSequence()
		for _, item := range n.Content {
			converted, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			s.Append(converted)
		}
		return s, nil
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unresolved alias %q", n.Line, n.Value)
		}
		c.aliasDepth++
		defer func() { c.aliasDepth-- }()
		return c.convert(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float":
			return NewScalar(NumberScalar, n.Value), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			if b {
				return NewScalar(BoolScalar, "true"), nil
			}
			return NewScalar(BoolScalar, "false"), nil
		case "!!null":
			return NewScalar(NullScalar, ""), nil
		default:
			return NewString(n.Value), nil
		}
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// merge applies a "<<" merge key. Keys already declared on the target win.
func (c *yamlConverter) merge(target *Node, src *yaml.Node) error {
	merged, err := c.convert(src)
	if err != nil {
		return err
	}
	sources := []*Node{merged}
	if merged.IsSequence() {
		sources = merged.Items()
	}
	for _, s := range sources {
		if !s.IsMapping() {
			return errors.New("merge key value must be a mapping or a sequence of mappings")
		}
		for _, p := range s.Pairs() {
			if !target.Has(p.Key) {
				target.Set(p.Key, p.Value)
			}
		}
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package document provides an ordered, format-independent tree for decoded
// JSON and YAML API description documents.
package document

import (
	"strconv"
)

// Kind identifies the shape of a Node.
type Kind int

const (
	// ScalarKind is a string, number, boolean or null leaf.
	ScalarKind Kind = iota
	// MappingKind is an object with string keys in declared order.
	MappingKind
	// SequenceKind is an ordered list of nodes.
	SequenceKind
)

// ScalarType classifies the literal held by a scalar Node.
type ScalarType int

const (
	StringScalar ScalarType = iota
	NumberScalar
	BoolScalar
	NullScalar
)

// Pair is a single key/value entry of a mapping.
type Pair struct {
	Key   string
	Value *Node
}

// Node is one element of a decoded document.
// All accessors are safe to call on a nil *Node and return zero values, so
// optional keys can be read without checking every level.
type Node struct {
	Kind       Kind
	ScalarType ScalarType
	// Value is the literal text of a scalar, as written in the source.
	Value string

	pairs []Pair
	index map[string]int
	items []*Node
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{Kind: MappingKind, index: make(map[string]int)}
}

// NewSequence returns a sequence node holding items.
func NewSequence(items ...*Node) *Node {
	return &Node{Kind: SequenceKind, items: items}
}

// NewScalar returns a scalar node.
func NewScalar(t ScalarType, value string) *Node {
	return &Node{Kind: ScalarKind, ScalarType: t, Value: value}
}

// NewString returns a string scalar node.
func NewString(value string) *Node {
	return NewScalar(StringScalar, value)
}

// Set adds or replaces key. A replaced key keeps its original position.
func (n *Node) Set(key string, value *Node) {
	if i, ok := n.index[key]; ok {
		n.pairs[i].Value = value
		return
	}
	n.index[key] = len(n.pairs)
	n.pairs = append(n.pairs, Pair{Key: key, Value: value})
}

// Append adds an item to a sequence.
func (n *Node) Append(item *Node) {
	n.items = append(n.items, item)
}

// IsMapping reports whether n is a mapping.
func (n *Node) IsMapping() bool {
	return n != nil && n.Kind == MappingKind
}

// IsSequence reports whether n is a sequence.
func (n *Node) IsSequence() bool {
	return n != nil && n.Kind == SequenceKind
}

// IsScalar reports whether n is a non-null scalar.
func (n *Node) IsScalar() bool {
	return n != nil && n.Kind == ScalarKind && n.ScalarType != NullScalar
}

// Get returns the value stored under key, or nil.
func (n *Node) Get(key string) *Node {
	if !n.IsMapping() {
		return nil
	}
	i, ok := n.index[key]
	if !ok {
		return nil
	}
	return n.pairs[i].Value
}

// Has reports whether the mapping declares key.
func (n *Node) Has(key string) bool {
	if !n.IsMapping() {
		return false
	}
	_, ok := n.index[key]
	return ok
}

// Lookup walks a chain of mapping keys and returns the final value, or nil
// as soon as one step is missing.
func (n *Node) Lookup(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Pairs returns the mapping entries in declared order.
func (n *Node) Pairs() []Pair {
	if !n.IsMapping() {
		return nil
	}
	return n.pairs
}

// Keys returns the mapping keys in declared order.
func (n *Node) Keys() []string {
	pairs := n.Pairs()
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	return keys
}

// Items returns the sequence items.
func (n *Node) Items() []*Node {
	if !n.IsSequence() {
		return nil
	}
	return n.items
}

// Len returns the number of entries of a mapping or sequence.
func (n *Node) Len() int {
	switch {
	case n.IsMapping():
		return len(n.pairs)
	case n.IsSequence():
		return len(n.items)
	default:
		return 0
	}
}

// String returns the scalar text, or "" for nil, null and container nodes.
func (n *Node) String() string {
	if !n.IsScalar() {
		return ""
	}
	return n.Value
}

// Bool returns the boolean value of a scalar. Anything that is not a true
// literal is false.
func (n *Node) Bool() bool {
	if !n.IsScalar() {
		return false
	}
	b, err := strconv.ParseBool(n.Value)
	return err == nil && b
}

// Int returns the integer value of a numeric scalar.
func (n *Node) Int() (int, bool) {
	if !n.IsScalar() {
		return 0, false
	}
	i, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Strings returns the text of every scalar item of a sequence.
func (n *Node) Strings() []string {
	items := n.Items()
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsScalar() {
			out = append(out, it.Value)
		}
	}
	return out
}

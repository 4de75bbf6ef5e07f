// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package flatten turns nested OpenAPI schemas into flat, path-named rows.
package flatten

import (
	"errors"
	"fmt"

	"github.com/dacolabs/apisheet/internal/openapi"
	"github.com/rs/zerolog"
)

// Mode selects the visibility filtering applied while flattening.
type Mode int

const (
	// ModeCatalog keeps every field.
	ModeCatalog Mode = iota
	// ModeRequest drops readOnly fields.
	ModeRequest
	// ModeResponse drops writeOnly fields.
	ModeResponse
)

func (m Mode) String() string {
	switch m {
	case ModeRequest:
		return "request"
	case ModeResponse:
		return "response"
	default:
		return "catalog"
	}
}

// Excludes reports whether a field with the given flags is hidden in mode m.
func (m Mode) Excludes(readOnly, writeOnly bool) bool {
	return (m == ModeRequest && readOnly) || (m == ModeResponse && writeOnly)
}

// ErrCycle is returned in strict mode when a schema references itself,
// directly or through other schemas.
var ErrCycle = errors.New("schema reference cycle")

// CycleError names the schema that was re-entered and where.
type CycleError struct {
	Schema string
	Path   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %q re-entered at %q", ErrCycle, e.Schema, e.Path)
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithLogger sets the logger used for trace and cycle diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Flattener) {
		f.log = l
	}
}

// WithStrictCycles makes a reference cycle fail with ErrCycle instead of
// being skipped.
func WithStrictCycles(strict bool) Option {
	return func(f *Flattener) {
		f.strict = strict
	}
}

// Flattener flattens schemas of one document under one visibility mode.
// It holds no state between calls and is safe for concurrent use.
type Flattener struct {
	doc    *openapi.Document
	mode   Mode
	strict bool
	log    zerolog.Logger
}

// New creates a Flattener.
func New(doc *openapi.Document, mode Mode, opts ...Option) *Flattener {
	f := &Flattener{
		doc:  doc,
		mode: mode,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Mode returns the visibility mode of f.
func (f *Flattener) Mode() Mode {
	return f.mode
}

// Flatten returns the rows of the top-level schema called name, with every
// path prefixed by parentPath. A missing schema yields no rows.
func (f *Flattener) Flatten(name, parentPath string) ([]Field, error) {
	w := f.newWalk()
	if err := w.named(name, parentPath); err != nil {
		return nil, err
	}
	return w.out, nil
}

// FlattenInline returns the rows of the properties declared on an inline
// schema. References on s itself are not followed.
func (f *Flattener) FlattenInline(s openapi.Schema, parentPath string) ([]Field, error) {
	w := f.newWalk()
	if err := w.properties(s, parentPath); err != nil {
		return nil, err
	}
	return w.out, nil
}

func (f *Flattener) newWalk() *walk {
	return &walk{
		f:      f,
		active: make(map[string]struct{}),
	}
}

// walk is the state of a single Flatten call.
type walk struct {
	f *Flattener
	// active holds the schema names being expanded on the current recursion
	// path, not every schema seen so far: a schema reached twice through
	// sibling properties is expanded twice.
	active map[string]struct{}
	out    []Field
}

func (w *walk) named(name, path string) error {
	if !w.f.doc.HasSchema(name) {
		w.f.log.Debug().Str("schema", name).Str("path", path).Msg("unresolved schema reference")
		return nil
	}

	if _, ok := w.active[name]; ok {
		if w.f.strict {
			return &CycleError{Schema: name, Path: path}
		}
		w.f.log.Debug().
			Str("schema", name).
			Str("path", path).
			Str("mode", w.f.mode.String()).
			Msg("skipping recursive schema reference")
		return nil
	}

	w.active[name] = struct{}{}
	defer delete(w.active, name)

	w.f.log.Trace().Str("schema", name).Str("path", path).Msg("expanding schema")
	return w.properties(w.f.doc.Schema(name), path)
}

func (w *walk) properties(s openapi.Schema, path string) error {
	for _, p := range s.Properties {
		if err := w.property(p, path); err != nil {
			return err
		}
	}
	return nil
}

func (w *walk) property(p openapi.Property, parent string) error {
	doc := w.f.doc

	// A property may point at a named array schema; its items then hold the
	// effective reference.
	direct := doc.Schema(openapi.StripRefPrefix(openapi.ResolveRef(p, false)))
	viaArraySchema := direct.Kind() == openapi.KindArray
	isArray := p.Type == "array" || viaArraySchema

	var ref string
	if viaArraySchema {
		ref = openapi.ResolveRef(openapi.Property{Schema: direct}, true)
	} else {
		ref = openapi.ResolveRef(p, isArray)
	}

	path := BuildPath(parent, p.Name, isArray)

	if name := openapi.StripRefPrefix(ref); name != "" {
		target := doc.Schema(name)
		switch target.Kind() {
		case openapi.KindEnum:
			if w.f.mode.Excludes(target.ReadOnly, target.WriteOnly) {
				return nil
			}
			w.out = append(w.out, leafField(path, target, p.Required))
			return nil
		default:
			if w.f.mode.Excludes(p.ReadOnly, p.WriteOnly) {
				return nil
			}
			w.out = append(w.out, structuralField(path, p))
			return w.named(name, path)
		}
	}

	if w.f.mode.Excludes(p.ReadOnly, p.WriteOnly) {
		return nil
	}
	leaf := leafField(path, p.Schema, p.Required)
	if len(p.OneOf) > 0 {
		leaf.DataType = unionPrefix + p.Type
	}
	w.out = append(w.out, leaf)

	// Alternatives are flattened from their own properties, as siblings of
	// the union field.
	for _, alt := range p.OneOf {
		if err := w.properties(alt, parent); err != nil {
			return err
		}
	}
	return nil
}

// structuralField is the placeholder row of an object or array-of-object
// field. Format, example, pattern and enum belong to its descendants.
func structuralField(path string, p openapi.Property) Field {
	return Field{
		Name:        path,
		Description: p.Description,
		DataType:    p.Type,
		Required:    p.Required,
		ReadOnly:    p.ReadOnly,
		WriteOnly:   p.WriteOnly,
	}
}

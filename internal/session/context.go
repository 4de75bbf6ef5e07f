// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides configuration and document loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dacolabs/apisheet/internal/config"
	"github.com/dacolabs/apisheet/internal/document"
	"github.com/dacolabs/apisheet/internal/flatten"
	"github.com/dacolabs/apisheet/internal/logger"
	"github.com/dacolabs/apisheet/internal/openapi"
	"github.com/rs/zerolog"
)

var (
	// ErrDocumentNotFound indicates the OpenAPI document doesn't exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidDocument indicates the document exists but couldn't be parsed.
	ErrInvalidDocument = errors.New("invalid OpenAPI document")
)

// Options selects where configuration comes from.
type Options struct {
	// ConfigPath is the config file to read. A missing file is ignored.
	ConfigPath string

	// Overrides take precedence over every other source. Keys are dotted
	// config paths such as "log.level".
	Overrides map[string]any

	// LogOutput receives diagnostic logs. Defaults to os.Stderr.
	LogOutput io.Writer
}

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved configuration and logger of a command run.
type Context struct {
	// Config is the fully resolved configuration.
	Config *config.Config

	// Logger writes diagnostics at the configured level.
	Logger zerolog.Logger
}

// Load resolves the configuration and returns a new context.Context with
// the session Context and its logger stored in it.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty, out)
	log.Debug().
		Str("config", opts.ConfigPath).
		Str("format", cfg.Output.Format).
		Bool("strict", cfg.Flatten.Strict).
		Msg("configuration loaded")

	sessCtx := &Context{
		Config: cfg,
		Logger: log,
	}

	ctx = logger.WithContext(ctx, log)
	return context.WithValue(ctx, contextKey{}, sessCtx), nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sessCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sessCtx
	}
	return nil
}

// LoadDocument reads and decodes the OpenAPI document at path. The format
// is taken from the file extension unless format is set.
func (c *Context) LoadDocument(path, format string) (*openapi.Document, error) {
	loader := document.NewLoader(os.DirFS(filepath.Dir(path)))
	root, err := loader.LoadFile(filepath.Base(path), format)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	case errors.Is(err, document.ErrUnsupportedFormat):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if !root.IsMapping() {
		return nil, fmt.Errorf("%w: %s: top level is not a mapping", ErrInvalidDocument, path)
	}

	doc := openapi.Decode(root)
	c.Logger.Debug().
		Str("path", path).
		Str("title", doc.Title).
		Int("operations", len(doc.Operations)).
		Int("schemas", len(doc.Schemas)).
		Msg("document loaded")
	return doc, nil
}

// FlattenOptions returns the flattener options implied by the configuration.
func (c *Context) FlattenOptions() []flatten.Option {
	return []flatten.Option{
		flatten.WithLogger(c.Logger),
		flatten.WithStrictCycles(c.Config.Flatten.Strict),
	}
}

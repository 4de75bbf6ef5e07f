// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package document

import (
	"fmt"
	"io/fs"
)

// Loader loads documents from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and decodes a document.
// The format is determined from the file extension unless format is set.
func (l *Loader) LoadFile(filePath, format string) (*Node, error) {
	var (
		parser Parser
		err    error
	)
	if format != "" {
		parser, err = ParserForFormat(format)
	} else {
		parser, err = ParserFor(filePath)
	}
	if err != nil {
		return nil, err
	}

	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	node, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return node, nil
}

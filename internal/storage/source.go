// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/morganforge/ownertag/internal/model"
)

var (
	// ErrNoSnapshot is returned when the snapshot source does not exist.
	ErrNoSnapshot = errors.New("snapshot not found")

	// ErrUnsupportedFormat is returned for an unknown snapshot format.
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
)

// Source produces host snapshots.
type Source interface {
	// Load reads a complete snapshot. The returned snapshot is indexed.
	Load(ctx context.Context) (*model.Snapshot, error)

	// Path is the file backing the source, used for watching.
	Path() string
}

// Format names a snapshot encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// DetectFormat guesses the snapshot format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// NewSource returns the source for path. An empty format is detected from
// the extension.
func NewSource(path string, format Format) (Source, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	switch format {
	case FormatJSON:
		return NewJSONSource(path), nil
	case FormatSQLite:
		return NewSQLiteSource(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

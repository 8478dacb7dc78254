// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/util"
)

// =============================================================================
// JSON SNAPSHOTS
// =============================================================================

// JSONSource reads snapshots exported by the host as JSON.
type JSONSource struct {
	path string
}

// NewJSONSource creates a source reading path.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

// Path implements Source.
func (s *JSONSource) Path() string {
	return s.path
}

// Load implements Source.
func (s *JSONSource) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadJSON(s.path)
}

// LoadJSON decodes, validates and indexes the snapshot at path.
func LoadJSON(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, path)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snap := &model.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	snap.Index()
	return snap, nil
}

// SaveJSON writes snap to path atomically.
func SaveJSON(path string, snap *model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

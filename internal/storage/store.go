// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/morganforge/ownertag/internal/model"
)

// =============================================================================
// STORE
// =============================================================================

// Store holds the current snapshot. Readers always see a complete snapshot;
// Reload swaps the pointer, it never mutates a snapshot in place.
type Store struct {
	source Source
	logger *slog.Logger

	mu       sync.RWMutex
	current  *model.Snapshot
	onReload []func(*model.Snapshot)
}

// Open creates a store and performs the initial load.
func Open(ctx context.Context, source Source, logger *slog.Logger) (*Store, error) {
	s := NewStore(source, logger)
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore creates a store holding an empty snapshot. Call Reload to fill it.
func NewStore(source Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	empty := &model.Snapshot{Version: uuid.NewString()}
	empty.Index()
	return &Store{
		source:  source,
		logger:  logger,
		current: empty,
	}
}

// NewStaticStore wraps an in-memory snapshot. Reload is a no-op.
func NewStaticStore(snap *model.Snapshot) *Store {
	if snap.Version == "" {
		snap.Version = uuid.NewString()
	}
	snap.Index()
	return &Store{logger: slog.Default(), current: snap}
}

// Current returns the current snapshot.
func (s *Store) Current() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Source returns the backing source, or nil for a static store.
func (s *Store) Source() Source {
	return s.source
}

// OnReload registers fn to run after every successful reload.
func (s *Store) OnReload(fn func(*model.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// Reload reads a fresh snapshot from the source. A snapshot that carries no
// version, or the same version as the current one, gets a new random one, so
// every reload invalidates cached results. On failure the previous snapshot
// stays current.
func (s *Store) Reload(ctx context.Context) error {
	if s.source == nil {
		return nil
	}

	snap, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Warn("snapshot reload failed", "path", s.source.Path(), "error", err)
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.mu.Lock()
	if snap.Version == "" || snap.Version == s.current.Version {
		snap.Version = uuid.NewString()
	}
	s.current = snap
	callbacks := append(([]func(*model.Snapshot))(nil), s.onReload...)
	s.mu.Unlock()

	s.logger.Info("snapshot loaded",
		"path", s.source.Path(),
		"version", snap.Version,
		"guilds", len(snap.Guilds),
		"members", len(snap.Members),
		"channels", len(snap.Channels),
		"messages", len(snap.Messages))

	for _, fn := range callbacks {
		fn(snap)
	}
	return nil
}

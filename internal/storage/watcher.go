// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// SNAPSHOT WATCHER
// =============================================================================

// Watcher reloads a Store when its snapshot file changes.
//
// The parent directory is watched rather than the file itself, because the
// host (and SaveJSON) replace the file by renaming a temp file over it.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	target   string
	debounce time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	pending time.Time

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher for store's source file. Changes are coalesced
// for debounce, and reloads run at most once per debounce interval.
func NewWatcher(store *Store, debounce time.Duration) (*Watcher, error) {
	if store.Source() == nil {
		return nil, errors.New("store has no source to watch")
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	target, err := filepath.Abs(store.Source().Path())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve snapshot path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		store:    store,
		watcher:  fw,
		target:   target,
		debounce: debounce,
		limiter:  rate.NewLimiter(rate.Every(debounce), 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// Watch starts watching in the background.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.target), err)
	}
	go w.run()
	return nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.pending = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.store.logger.Warn("snapshot watcher error", "error", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

// flush reloads once the last change is older than the debounce window.
func (w *Watcher) flush() {
	w.mu.Lock()
	due := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
	if due {
		w.pending = time.Time{}
	}
	w.mu.Unlock()
	if !due {
		return
	}

	if err := w.limiter.Wait(w.ctx); err != nil {
		return
	}
	// Reload logs its own failures; the previous snapshot stays current.
	_ = w.store.Reload(w.ctx)
}

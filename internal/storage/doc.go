// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides access to host snapshots for ownertag.
//
// The host's object model reaches ownertag as a snapshot, either a JSON file
// exported by the host or a SQLite database built from one. Store holds the
// current snapshot and swaps in a fresh one on Reload; Watcher triggers
// reloads when the snapshot file changes on disk.
//
// # Key Types
//
//   - Source: anything that can produce a snapshot (JSONSource, SQLiteSource)
//   - Store: concurrency-safe holder of the current snapshot
//   - Watcher: fsnotify-based reloader
//
// # Usage
//
//	store, err := storage.Open(ctx, storage.NewJSONSource(path), logger)
//	if err != nil {
//	    return err
//	}
//	snap := store.Current()
//	guild := snap.Guild(channel.GuildID)
//
// Convert a JSON export to SQLite:
//
//	snap, err := storage.LoadJSON(jsonPath)
//	db, err := storage.OpenSQLite(dbPath)
//	err = db.Import(ctx, snap)
package storage

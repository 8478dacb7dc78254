// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the host's object model as ownertag sees it.
//
// These types mirror what the chat host exposes: guilds with their role table,
// members and their role assignments, channels, users and messages. They are
// read-only snapshots; ownertag never mutates host state.
//
// # Key Types
//
//   - Guild: a community with an owner and a role table keyed by role ID
//   - Member: a user's role assignments inside one guild
//   - Channel: a guild channel, a direct message, or a group conversation
//   - Snapshot: a point-in-time copy of everything above, indexed for lookup
//
// Guild and Member satisfy the permission package's read-only interfaces, so
// they can be handed straight to permission.ResolvePermissions.
package model

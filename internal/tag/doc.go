// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tag decides which authority badge, if any, a user gets.
//
// There are two places a badge can appear: next to the author in a message
// header, and in a member list row. Each is governed by its own toggle in
// Settings. The Resolver reads the current snapshot, resolves the user's
// permissions through the permission package and returns a Tag describing
// the badge to draw.
//
//	r := tag.NewResolver(store, tag.WithCache(tag.NewCache()))
//	if t, ok := r.ForMessage(settings, msg); ok {
//	    header = components.InsertBeforeLast(header, badge.Render(t))
//	}
//
// Missing host objects (no channel, no guild, no member) are not errors: they
// simply produce no badge.
package tag

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package permission classifies a user's authority within a guild.
//
// The host encodes capabilities as bits of a 64-bit integer. This package
// carries the host's bit table as a fixed set of named flags, resolves the
// combined bitfield a member holds, and maps it onto a coarse authority tier.
//
// # Resolution
//
// ResolvePermissions ORs the base role (keyed by the guild's own ID) with
// every role the member holds. The guild owner and anyone holding
// Administrator resolve to All.
//
//	perms := permission.ResolvePermissions(guild, member, userID)
//	tier := permission.ClassifyTier(perms, guild.OwnerID == userID, false)
//
// # Tiers
//
// Tiers are ordered NONE < MANAGEMENT < ADMIN < OWNER. ClassifyTier evaluates
// owner, administrator, moderation bits, then the group conversation owner
// fallback, first match wins.
package permission

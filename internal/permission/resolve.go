// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package permission

// Guild is the read-only view of a guild the resolver needs.
type Guild interface {
	GuildID() string
	Owner() string
	// RolePermissions returns the bitfield of a role. ok is false when the
	// role is not in the guild.
	RolePermissions(roleID string) (perms Permission, ok bool)
}

// Member is the read-only view of a guild member the resolver needs.
// The base role is never listed; it applies to every member.
type Member interface {
	RoleIDs() []string
}

// ResolvePermissions returns the combined bitfield userID holds in guild.
//
// A nil guild or member yields 0, which callers treat as "no guild context".
// The guild owner and any Administrator holder get All. Roles missing from
// the guild contribute nothing.
func ResolvePermissions(guild Guild, member Member, userID string) Permission {
	if isNil(guild) || isNil(member) {
		return 0
	}

	var perms Permission
	if guild.Owner() == userID {
		perms = Administrator
	} else {
		if base, ok := guild.RolePermissions(guild.GuildID()); ok {
			perms |= base
		}
		for _, roleID := range member.RoleIDs() {
			if rp, ok := guild.RolePermissions(roleID); ok {
				perms |= rp
			}
		}
	}

	if perms.Has(Administrator) {
		return All
	}
	return perms
}

// Classification is the result of classifying one user.
type Classification struct {
	Permissions Permission `json:"permissions"`
	Tier        Tier       `json:"tier"`
	IsOwner     bool       `json:"is_owner"`
}

// Classify resolves and classifies userID inside guild. Ownership is taken
// from the guild record, so an owner without a member record is still OWNER.
func Classify(guild Guild, member Member, userID string) Classification {
	if isNil(guild) {
		return Classification{}
	}
	perms := ResolvePermissions(guild, member, userID)
	owner := guild.Owner() == userID
	return Classification{
		Permissions: perms,
		Tier:        ClassifyTier(perms, owner, false),
		IsOwner:     owner,
	}
}

// isNil catches typed nil pointers stored in an interface.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case interface{ IsNil() bool }:
		return x.IsNil()
	}
	return false
}

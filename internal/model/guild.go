// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"

	"github.com/morganforge/ownertag/internal/permission"
)

// =============================================================================
// USER
// =============================================================================

// User is a host account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot,omitempty"`
}

// =============================================================================
// ROLE
// =============================================================================

// Role is a named permission grant inside a guild.
type Role struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Permissions permission.Permission `json:"permissions"`
	Color       string                `json:"color,omitempty"`
	Position    int                   `json:"position"`
}

// =============================================================================
// GUILD
// =============================================================================

// Guild is a community. The base role every member holds is stored in Roles
// under the guild's own ID.
type Guild struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	OwnerID string          `json:"owner_id"`
	Roles   map[string]Role `json:"roles"`
}

// GuildID implements permission.Guild.
func (g *Guild) GuildID() string {
	return g.ID
}

// Owner implements permission.Guild.
func (g *Guild) Owner() string {
	return g.OwnerID
}

// RolePermissions implements permission.Guild.
func (g *Guild) RolePermissions(roleID string) (permission.Permission, bool) {
	role, ok := g.Roles[roleID]
	if !ok {
		return 0, false
	}
	return role.Permissions, true
}

// IsNil reports whether g is a nil pointer.
func (g *Guild) IsNil() bool {
	return g == nil
}

// BaseRole returns the role every member holds implicitly.
func (g *Guild) BaseRole() (Role, bool) {
	role, ok := g.Roles[g.ID]
	return role, ok
}

// SortedRoles returns the guild's roles, highest position first.
func (g *Guild) SortedRoles() []Role {
	roles := make([]Role, 0, len(g.Roles))
	for _, r := range g.Roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool {
		if roles[i].Position != roles[j].Position {
			return roles[i].Position > roles[j].Position
		}
		return roles[i].ID < roles[j].ID
	})
	return roles
}

// =============================================================================
// MEMBER
// =============================================================================

// Member is a user's membership in a guild. Roles never lists the base role.
type Member struct {
	GuildID     string   `json:"guild_id"`
	UserID      string   `json:"user_id"`
	Nick        string   `json:"nick,omitempty"`
	Roles       []string `json:"roles"`
	ColorString string   `json:"color_string,omitempty"`
}

// RoleIDs implements permission.Member.
func (m *Member) RoleIDs() []string {
	return m.Roles
}

// IsNil reports whether m is a nil pointer.
func (m *Member) IsNil() bool {
	return m == nil
}

// HasRole reports whether the member holds roleID.
func (m *Member) HasRole(roleID string) bool {
	if m == nil {
		return false
	}
	for _, id := range m.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

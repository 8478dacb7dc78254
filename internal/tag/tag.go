// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tag

import (
	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/permission"
)

// Settings holds the two display toggles.
type Settings struct {
	DisplayMessages bool `json:"display_messages"`
	DisplayMembers  bool `json:"display_members"`
}

// DefaultSettings shows badges everywhere.
func DefaultSettings() Settings {
	return Settings{DisplayMessages: true, DisplayMembers: true}
}

// Tag describes one badge.
type Tag struct {
	UserID string          `json:"user_id"`
	Tier   permission.Tier `json:"tier"`
	// Color is the member's role color, empty outside guilds or when the
	// member has none.
	Color string `json:"color,omitempty"`
}

// Label returns the badge text.
func (t Tag) Label() string {
	return t.Tier.Label()
}

// Snapshots supplies the current host snapshot.
type Snapshots interface {
	Current() *model.Snapshot
}

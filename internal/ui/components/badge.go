// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/ui/styles"
)

// BadgeVariant selects where a badge is drawn.
type BadgeVariant int

const (
	BadgeMessage BadgeVariant = iota
	BadgeMemberList
)

// Class returns the host class name of the variant.
func (v BadgeVariant) Class() string {
	if v == BadgeMemberList {
		return "ownertag-list"
	}
	return "ownertag"
}

// RenderBadge draws t in the given variant. The member's role color is the
// background when present, otherwise the tier's default.
func RenderBadge(theme *styles.Theme, t tag.Tag, v BadgeVariant) string {
	style := theme.MessageBadge
	if v == BadgeMemberList {
		style = theme.ListBadge
	}
	return style.
		Background(styles.BadgeBackground(t.Tier, t.Color)).
		Foreground(styles.BadgeForeground(t.Tier, t.Color)).
		Render(t.Label())
}

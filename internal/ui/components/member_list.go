// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/ui/styles"
	"github.com/morganforge/ownertag/internal/util"
)

// =============================================================================
// MEMBER LIST
// =============================================================================

// MemberRow is one row of the member list.
type MemberRow struct {
	UserID string
	Name   string
	// Decorators are drawn in front of the name, in order.
	Decorators []string
	Tag        *tag.Tag
}

// MemberList renders the participants of a channel.
type MemberList struct {
	theme    *styles.Theme
	resolver *tag.Resolver
	collator *util.NameCollator
	Width    int
}

// NewMemberList creates a member list sorting names with the collation rules
// of locale (a BCP 47 tag, "und" for the root order).
func NewMemberList(theme *styles.Theme, resolver *tag.Resolver, locale string, width int) *MemberList {
	return &MemberList{
		theme:    theme,
		resolver: resolver,
		collator: util.NewNameCollator(locale),
		Width:    width,
	}
}

// Rows returns the member rows of channel sorted by display name.
func (l *MemberList) Rows(settings tag.Settings, channel *model.Channel) []MemberRow {
	snap := l.resolver.Snapshot()
	ids := snap.Participants(channel)
	rows := make([]MemberRow, 0, len(ids))

	for _, id := range ids {
		row := MemberRow{
			UserID: id,
			Name:   util.NormalizeName(snap.DisplayName(channel, id)),
		}
		if u := snap.User(id); u != nil && u.Bot {
			row.Decorators = append(row.Decorators, l.theme.BotTag.Render("BOT"))
		}
		if t, ok := l.resolver.ForMember(settings, channel, id); ok {
			row.Tag = &t
			row.Decorators = Prepend(row.Decorators, RenderBadge(l.theme, t, BadgeMemberList))
		}
		rows = append(rows, row)
	}

	util.SortStable(l.collator, rows, func(r MemberRow) string { return r.Name })
	return rows
}

// RenderRow draws a row padded or truncated to the list width.
func (l *MemberList) RenderRow(row MemberRow) string {
	prefix := strings.Join(row.Decorators, " ")
	if prefix != "" {
		prefix += " "
	}
	if l.Width <= 0 {
		return prefix + l.theme.MemberName.Render(row.Name)
	}

	room := l.Width - lipgloss.Width(prefix)
	if room < 1 {
		room = 1
	}
	name := util.PadRight(util.TruncateWidth(row.Name, room), room)
	return prefix + l.theme.MemberName.Render(name)
}

// View renders the whole member list of channel.
func (l *MemberList) View(settings tag.Settings, channel *model.Channel) string {
	rows := l.Rows(settings, channel)
	if len(rows) == 0 {
		return l.theme.Empty.Render("No members")
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = l.RenderRow(row)
	}
	return strings.Join(lines, "\n")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/ui/styles"
)

// =============================================================================
// MESSAGE VIEW
// =============================================================================

// MessageView renders messages of the resolver's current snapshot.
type MessageView struct {
	theme    *styles.Theme
	resolver *tag.Resolver
	markdown *Markdown
	now      func() time.Time
}

// NewMessageView creates a message view. markdown may be nil for plain
// message bodies.
func NewMessageView(theme *styles.Theme, resolver *tag.Resolver, markdown *Markdown) *MessageView {
	return &MessageView{
		theme:    theme,
		resolver: resolver,
		markdown: markdown,
		now:      time.Now,
	}
}

// HeaderParts returns the undecorated header of msg: the author name, a BOT
// marker for bot accounts, and the timestamp last.
func (v *MessageView) HeaderParts(snap *model.Snapshot, msg *model.Message) []string {
	channel := snap.Channel(msg.ChannelID)
	parts := []string{v.theme.AuthorName.Render(snap.DisplayName(channel, msg.AuthorID))}
	if u := snap.User(msg.AuthorID); u != nil && u.Bot {
		parts = append(parts, v.theme.BotTag.Render("BOT"))
	}
	return append(parts, v.theme.Timestamp.Render(msg.FormatTimestamp(v.now())))
}

// Header returns the header parts of msg with the author's badge spliced in
// before the timestamp. The badge is resolved in the host's selected channel.
func (v *MessageView) Header(settings tag.Settings, msg *model.Message) []string {
	snap := v.resolver.Snapshot()
	return v.HeaderIn(settings, snap.Channel(snap.SelectedChannelID), msg)
}

// HeaderIn is Header with the selected channel given by the caller.
func (v *MessageView) HeaderIn(settings tag.Settings, selected *model.Channel, msg *model.Message) []string {
	parts := v.HeaderParts(v.resolver.Snapshot(), msg)
	if t, ok := v.resolver.ForMessageIn(settings, selected, msg); ok {
		parts = InsertBeforeLast(parts, RenderBadge(v.theme, t, BadgeMessage))
	}
	return parts
}

// Render returns the full message: decorated header and body.
func (v *MessageView) Render(settings tag.Settings, msg *model.Message) string {
	snap := v.resolver.Snapshot()
	return v.render(settings, snap.Channel(snap.SelectedChannelID), msg)
}

func (v *MessageView) render(settings tag.Settings, selected *model.Channel, msg *model.Message) string {
	header := strings.Join(v.HeaderIn(settings, selected, msg), " ")
	body := v.markdown.Render(msg.Content)
	if body == "" {
		return header
	}
	return header + "\n" + v.theme.MessageBody.Render(body)
}

// RenderChannel renders every message of channelID, oldest first, separated
// by blank lines. The rendered channel counts as the selected one.
func (v *MessageView) RenderChannel(settings tag.Settings, channelID string) string {
	snap := v.resolver.Snapshot()
	msgs := snap.ChannelMessages(channelID)
	if len(msgs) == 0 {
		return v.theme.Empty.Render("No messages")
	}
	selected := snap.Channel(channelID)
	out := make([]string, 0, len(msgs))
	for i := range msgs {
		out = append(out, v.render(settings, selected, &msgs[i]))
	}
	return strings.Join(out, "\n\n")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// ChannelType is the host's channel type enum.
type ChannelType int

const (
	ChannelGuildText  ChannelType = 0
	ChannelDM         ChannelType = 1
	ChannelGuildVoice ChannelType = 2
	ChannelGroupDM    ChannelType = 3
)

// String returns a short name for the channel type.
func (t ChannelType) String() string {
	switch t {
	case ChannelGuildText:
		return "text"
	case ChannelDM:
		return "dm"
	case ChannelGuildVoice:
		return "voice"
	case ChannelGroupDM:
		return "group"
	default:
		return "unknown"
	}
}

// Channel is a conversation. GuildID is empty for direct and group
// conversations; OwnerID is only set for group conversations.
type Channel struct {
	ID         string      `json:"id"`
	Type       ChannelType `json:"type"`
	GuildID    string      `json:"guild_id,omitempty"`
	OwnerID    string      `json:"owner_id,omitempty"`
	Name       string      `json:"name,omitempty"`
	Recipients []string    `json:"recipients,omitempty"`
}

// InGuild reports whether the channel belongs to a guild.
func (c *Channel) InGuild() bool {
	return c != nil && c.GuildID != ""
}

// IsGroupOwner reports whether userID owns this group conversation.
func (c *Channel) IsGroupOwner(userID string) bool {
	return c != nil && c.Type == ChannelGroupDM && c.OwnerID != "" && c.OwnerID == userID
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"sort"
)

// Snapshot is a point-in-time copy of the host's object model.
//
// The exported slices are the wire form. Call Index after filling them (or
// after decoding) so the lookup methods work; lookups on an unindexed
// snapshot fall back to linear scans.
type Snapshot struct {
	Version           string    `json:"version,omitempty"`
	SelectedChannelID string    `json:"selected_channel_id,omitempty"`
	Guilds            []Guild   `json:"guilds"`
	Members           []Member  `json:"members"`
	Channels          []Channel `json:"channels"`
	Users             []User    `json:"users"`
	Messages          []Message `json:"messages"`

	guilds   map[string]*Guild
	members  map[memberKey]*Member
	channels map[string]*Channel
	users    map[string]*User
}

type memberKey struct {
	guildID string
	userID  string
}

// Index builds the lookup tables. It is idempotent.
func (s *Snapshot) Index() {
	s.guilds = make(map[string]*Guild, len(s.Guilds))
	for i := range s.Guilds {
		s.guilds[s.Guilds[i].ID] = &s.Guilds[i]
	}
	s.members = make(map[memberKey]*Member, len(s.Members))
	for i := range s.Members {
		m := &s.Members[i]
		s.members[memberKey{m.GuildID, m.UserID}] = m
	}
	s.channels = make(map[string]*Channel, len(s.Channels))
	for i := range s.Channels {
		s.channels[s.Channels[i].ID] = &s.Channels[i]
	}
	s.users = make(map[string]*User, len(s.Users))
	for i := range s.Users {
		s.users[s.Users[i].ID] = &s.Users[i]
	}
	sort.SliceStable(s.Messages, func(i, j int) bool {
		return s.Messages[i].Timestamp.Before(s.Messages[j].Timestamp)
	})
}

// Guild returns the guild with the given ID, or nil.
func (s *Snapshot) Guild(id string) *Guild {
	if id == "" {
		return nil
	}
	if s.guilds != nil {
		return s.guilds[id]
	}
	for i := range s.Guilds {
		if s.Guilds[i].ID == id {
			return &s.Guilds[i]
		}
	}
	return nil
}

// Member returns userID's membership in guildID, or nil.
func (s *Snapshot) Member(guildID, userID string) *Member {
	if s.members != nil {
		return s.members[memberKey{guildID, userID}]
	}
	for i := range s.Members {
		if s.Members[i].GuildID == guildID && s.Members[i].UserID == userID {
			return &s.Members[i]
		}
	}
	return nil
}

// Channel returns the channel with the given ID, or nil.
func (s *Snapshot) Channel(id string) *Channel {
	if id == "" {
		return nil
	}
	if s.channels != nil {
		return s.channels[id]
	}
	for i := range s.Channels {
		if s.Channels[i].ID == id {
			return &s.Channels[i]
		}
	}
	return nil
}

// User returns the user with the given ID, or nil.
func (s *Snapshot) User(id string) *User {
	if s.users != nil {
		return s.users[id]
	}
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// GuildMembers returns every member of guildID in snapshot order.
func (s *Snapshot) GuildMembers(guildID string) []Member {
	var out []Member
	for _, m := range s.Members {
		if m.GuildID == guildID {
			out = append(out, m)
		}
	}
	return out
}

// ChannelMessages returns the messages posted in channelID, oldest first.
func (s *Snapshot) ChannelMessages(channelID string) []Message {
	var out []Message
	for _, m := range s.Messages {
		if m.ChannelID == channelID {
			out = append(out, m)
		}
	}
	return out
}

// Validate checks that every record carries its identifiers.
func (s *Snapshot) Validate() error {
	var errs []error
	for i, g := range s.Guilds {
		if g.ID == "" {
			errs = append(errs, fmt.Errorf("guilds[%d]: missing id", i))
		}
		for key, r := range g.Roles {
			if r.ID != "" && r.ID != key {
				errs = append(errs, fmt.Errorf("guild %s: role key %q does not match id %q", g.ID, key, r.ID))
			}
		}
	}
	for i, m := range s.Members {
		if m.GuildID == "" || m.UserID == "" {
			errs = append(errs, fmt.Errorf("members[%d]: missing guild_id or user_id", i))
		}
	}
	for i, c := range s.Channels {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("channels[%d]: missing id", i))
		}
	}
	for i, u := range s.Users {
		if u.ID == "" {
			errs = append(errs, fmt.Errorf("users[%d]: missing id", i))
		}
	}
	return errors.Join(errs...)
}

// DisplayName returns the name to show for userID inside channel: the member
// nickname when set, then the username, then the raw ID.
func (s *Snapshot) DisplayName(channel *Channel, userID string) string {
	if channel.InGuild() {
		if m := s.Member(channel.GuildID, userID); m != nil && m.Nick != "" {
			return m.Nick
		}
	}
	if u := s.User(userID); u != nil && u.Username != "" {
		return u.Username
	}
	return userID
}

// Participants returns the user IDs shown in channel's member list: the guild
// members for a guild channel, the recipients for anything else.
func (s *Snapshot) Participants(channel *Channel) []string {
	if channel == nil {
		return nil
	}
	if channel.InGuild() {
		members := s.GuildMembers(channel.GuildID)
		ids := make([]string, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.UserID)
		}
		return ids
	}
	ids := append([]string(nil), channel.Recipients...)
	if channel.OwnerID != "" {
		found := false
		for _, id := range ids {
			if id == channel.OwnerID {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, channel.OwnerID)
		}
	}
	return ids
}

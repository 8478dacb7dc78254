// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tag

import (
	"log/slog"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/permission"
)

// Resolver computes badges from host snapshots.
type Resolver struct {
	snapshots Snapshots
	cache     *Cache
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache memoizes guild classifications per snapshot version.
func WithCache(c *Cache) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver reading from snapshots.
func NewResolver(snapshots Snapshots, opts ...Option) *Resolver {
	r := &Resolver{snapshots: snapshots, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns the snapshot the resolver currently reads.
func (r *Resolver) Snapshot() *model.Snapshot {
	return r.snapshots.Current()
}

// ForMessage returns the badge for a message author. The channel is the one
// the host has selected, falling back to the message's own channel.
func (r *Resolver) ForMessage(settings Settings, msg *model.Message) (Tag, bool) {
	snap := r.snapshots.Current()
	return r.forMessage(snap, settings, snap.Channel(snap.SelectedChannelID), msg)
}

// ForMessageIn is ForMessage with the selected channel given by the caller.
// A nil selected channel falls back to the message's own channel.
func (r *Resolver) ForMessageIn(settings Settings, selected *model.Channel, msg *model.Message) (Tag, bool) {
	return r.forMessage(r.snapshots.Current(), settings, selected, msg)
}

func (r *Resolver) forMessage(snap *model.Snapshot, settings Settings, selected *model.Channel, msg *model.Message) (Tag, bool) {
	if !settings.DisplayMessages || msg == nil {
		return Tag{}, false
	}
	if selected == nil {
		selected = snap.Channel(msg.ChannelID)
	}
	return r.resolve(snap, selected, msg.AuthorID)
}

// ForMember returns the badge for a member list row of channel.
func (r *Resolver) ForMember(settings Settings, channel *model.Channel, userID string) (Tag, bool) {
	if !settings.DisplayMembers {
		return Tag{}, false
	}
	return r.resolve(r.snapshots.Current(), channel, userID)
}

// Resolve returns the badge for userID in channel regardless of settings.
func (r *Resolver) Resolve(channel *model.Channel, userID string) (Tag, bool) {
	return r.resolve(r.snapshots.Current(), channel, userID)
}

func (r *Resolver) resolve(snap *model.Snapshot, channel *model.Channel, userID string) (Tag, bool) {
	if channel == nil || userID == "" {
		return Tag{}, false
	}

	t := Tag{UserID: userID}
	if channel.InGuild() {
		guild := snap.Guild(channel.GuildID)
		if guild == nil {
			r.logger.Debug("no guild for channel", "channel", channel.ID, "guild", channel.GuildID)
			return Tag{}, false
		}
		member := snap.Member(guild.ID, userID)
		t.Tier = r.classify(snap.Version, guild, member, userID)
		if member != nil {
			t.Color = member.ColorString
		}
	} else {
		t.Tier = permission.ClassifyTier(0, false, channel.IsGroupOwner(userID))
	}

	if t.Tier == permission.TierNone {
		return Tag{}, false
	}
	return t, true
}

func (r *Resolver) classify(version string, guild *model.Guild, member *model.Member, userID string) permission.Tier {
	if r.cache != nil {
		if c, ok := r.cache.Get(version, guild.ID, userID); ok {
			return c.Tier
		}
	}
	c := permission.Classify(guild, member, userID)
	if r.cache != nil {
		r.cache.Put(version, guild.ID, userID, c)
	}
	return c.Tier
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/permission"
	"github.com/morganforge/ownertag/internal/tag"
)

// HandleClassify prints the badge tier of a user.
//
//	ownertag classify <user> [--guild G | --channel C]
//
// Without --guild or --channel the snapshot's selected channel is used.
func HandleClassify(env *Env, args Args) error {
	p := NewArgParser(args.Raw)
	userID := p.Positional(0)
	if userID == "" {
		return ErrMissingArgument("user", "ownertag classify U1 --guild G1")
	}

	store, err := env.OpenStore(context.Background())
	if err != nil {
		return err
	}
	snap := store.Current()

	channel, err := targetChannel(snap, p.Flag("guild"), p.Flag("channel"))
	if err != nil {
		return err
	}

	resolver := tag.NewResolver(store, tag.WithLogger(env.Logger))
	data := ClassifyData{
		UserID:       userID,
		GuildID:      channel.GuildID,
		ChannelID:    channel.ID,
		Tier:         permission.TierNone.String(),
		IsGroupOwner: channel.IsGroupOwner(userID),
		Permissions:  "0",
		Names:        []string{},
	}
	var perms permission.Permission
	if channel.InGuild() {
		c := permission.Classify(snap.Guild(channel.GuildID), snap.Member(channel.GuildID, userID), userID)
		perms = c.Permissions
		data.IsOwner = c.IsOwner
		data.Permissions = strconv.FormatUint(uint64(c.Permissions), 10)
		data.Names = c.Permissions.Names()
	}
	if t, ok := resolver.Resolve(channel, userID); ok {
		data.Tier = t.Tier.String()
		data.Badge = t.Label()
		data.Color = t.Color
	}

	if env.JSON {
		return NewJSONResponse("classify", data).Write(env.Out)
	}

	fmt.Fprintln(env.Out, RenderField("User", userID))
	if data.GuildID != "" {
		fmt.Fprintln(env.Out, RenderField("Guild", data.GuildID))
	}
	if data.ChannelID != "" {
		fmt.Fprintln(env.Out, RenderField("Channel", data.ChannelID))
	}
	fmt.Fprintln(env.Out, RenderField("Tier", data.Tier))
	if data.Badge != "" {
		fmt.Fprintln(env.Out, RenderField("Badge", data.Badge))
	} else {
		fmt.Fprintln(env.Out, RenderField("Badge", DimStyle.Render("(none)")))
	}
	if data.Color != "" {
		fmt.Fprintln(env.Out, RenderField("Color", data.Color))
	}
	if channel.InGuild() {
		fmt.Fprintln(env.Out, RenderField("Owner", strconv.FormatBool(data.IsOwner)))
		fmt.Fprintln(env.Out, RenderField("Permissions", perms.String()))
	} else if channel.Type == model.ChannelGroupDM {
		fmt.Fprintln(env.Out, RenderField("Group owner", strconv.FormatBool(data.IsGroupOwner)))
	}
	return nil
}

// HandlePermissions prints the effective permissions of a user in a guild.
//
//	ownertag permissions <user> --guild G
func HandlePermissions(env *Env, args Args) error {
	p := NewArgParser(args.Raw)
	userID := p.Positional(0)
	if userID == "" {
		return ErrMissingArgument("user", "ownertag permissions U1 --guild G1")
	}
	guildID := p.Flag("guild")
	if guildID == "" {
		return ErrMissingArgument("--guild", "ownertag permissions U1 --guild G1")
	}

	store, err := env.OpenStore(context.Background())
	if err != nil {
		return err
	}
	snap := store.Current()
	guild := snap.Guild(guildID)
	if guild == nil {
		return ErrNotFound("guild", guildID)
	}

	member := snap.Member(guildID, userID)
	perms := permission.ResolvePermissions(guild, member, userID)
	data := PermissionsData{
		UserID:  userID,
		GuildID: guildID,
		Value:   strconv.FormatUint(uint64(perms), 10),
		Names:   perms.Names(),
		Roles:   memberRoles(guild, member),
	}

	if env.JSON {
		return NewJSONResponse("permissions", data).Write(env.Out)
	}

	fmt.Fprintln(env.Out, RenderField("User", userID))
	fmt.Fprintln(env.Out, RenderField("Guild", guildID))
	fmt.Fprintln(env.Out, RenderField("Value", data.Value))
	if len(data.Roles) > 0 {
		fmt.Fprintln(env.Out, RenderField("Roles", strings.Join(data.Roles, ", ")))
	}
	if len(data.Names) == 0 {
		fmt.Fprintln(env.Out, RenderField("Names", DimStyle.Render("(none)")))
		return nil
	}
	fmt.Fprintln(env.Out, RenderField("Names", strings.Join(data.Names, ", ")))
	return nil
}

// memberRoles names the roles member holds in guild, highest first. The base
// role applies to everyone, members or not.
func memberRoles(guild *model.Guild, member *model.Member) []string {
	names := []string{}
	for _, r := range guild.SortedRoles() {
		if r.ID == guild.ID || !member.HasRole(r.ID) {
			continue
		}
		names = append(names, roleName(r))
	}
	if base, ok := guild.BaseRole(); ok {
		names = append(names, roleName(base))
	}
	return names
}

func roleName(r model.Role) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// targetChannel picks the channel a command runs in. --guild yields a
// synthetic text channel of that guild.
func targetChannel(snap *model.Snapshot, guildID, channelID string) (*model.Channel, error) {
	switch {
	case guildID != "" && channelID != "":
		return nil, &ValidationError{Field: "--guild/--channel", Reason: "use only one of --guild and --channel"}
	case guildID != "":
		if snap.Guild(guildID) == nil {
			return nil, ErrNotFound("guild", guildID)
		}
		return &model.Channel{Type: model.ChannelGuildText, GuildID: guildID}, nil
	case channelID != "":
		c := snap.Channel(channelID)
		if c == nil {
			return nil, ErrNotFound("channel", channelID)
		}
		return c, nil
	}

	if snap.SelectedChannelID == "" {
		return nil, ErrMissingArgument("--guild or --channel", "no channel is selected in the snapshot")
	}
	c := snap.Channel(snap.SelectedChannelID)
	if c == nil {
		return nil, ErrNotFound("channel", snap.SelectedChannelID)
	}
	return c, nil
}

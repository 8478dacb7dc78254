// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/ui/components"
	"github.com/morganforge/ownertag/internal/ui/styles"
)

// HandleRender prints decorated message headers or member rows, using the
// configured display toggles.
//
//	ownertag render messages|members [--channel C] [--width N]
func HandleRender(env *Env, args Args) error {
	p := NewArgParser(args.Raw)
	view := p.Subcommand()
	if view != "messages" && view != "members" {
		return ErrInvalidValue("view", view, "ownertag render messages|members")
	}

	width := 0
	if p.HasFlag("width") {
		w, err := ParseIntWithValidation(p.Flag("width"), "--width")
		if err != nil {
			return &ValidationError{Field: "--width", Value: p.Flag("width"), Reason: err.Error()}
		}
		width = w
	}

	store, err := env.OpenStore(context.Background())
	if err != nil {
		return err
	}
	snap := store.Current()

	channelID := p.FlagOrDefault("channel", snap.SelectedChannelID)
	if channelID == "" {
		return ErrMissingArgument("--channel", "ownertag render "+view+" --channel C1")
	}
	channel := snap.Channel(channelID)
	if channel == nil {
		return ErrNotFound("channel", channelID)
	}

	mode, err := styles.ParseMode(env.Config.UI.Theme)
	if err != nil {
		return err
	}
	theme := styles.NewTheme(mode)
	resolver := tag.NewResolver(store, tag.WithCache(tag.NewCache()), tag.WithLogger(env.Logger))
	settings := env.Config.DisplaySettings()

	if view == "members" {
		if width == 0 {
			width = env.Config.UI.MemberListWidth
		}
		return renderMembers(env, components.NewMemberList(theme, resolver, env.Config.UI.Locale, width), settings, channel)
	}

	if width == 0 {
		width = GetTerminalWidth()
	}
	var md *components.Markdown
	if env.Config.UI.Markdown && !env.JSON {
		style := "notty"
		if ColorsEnabled() {
			style = ""
		}
		md = components.NewMarkdown(width, style)
	}
	return renderMessages(env, components.NewMessageView(theme, resolver, md), resolver, settings, channel)
}

func renderMessages(env *Env, view *components.MessageView, resolver *tag.Resolver, settings tag.Settings, channel *model.Channel) error {
	if !env.JSON {
		fmt.Fprintln(env.Out, view.RenderChannel(settings, channel.ID))
		return nil
	}

	msgs := resolver.Snapshot().ChannelMessages(channel.ID)
	data := RenderData{ChannelID: channel.ID, View: "messages", Rows: make([]RenderRow, 0, len(msgs))}
	for i := range msgs {
		row := RenderRow{ID: msgs[i].ID, Parts: view.HeaderIn(settings, channel, &msgs[i])}
		if t, ok := resolver.ForMessageIn(settings, channel, &msgs[i]); ok {
			row.Badge = t.Label()
			row.Class = components.BadgeMessage.Class()
		}
		data.Rows = append(data.Rows, row)
	}
	return NewJSONResponse("render", data).Write(env.Out)
}

func renderMembers(env *Env, list *components.MemberList, settings tag.Settings, channel *model.Channel) error {
	if !env.JSON {
		fmt.Fprintln(env.Out, list.View(settings, channel))
		return nil
	}

	rows := list.Rows(settings, channel)
	data := RenderData{ChannelID: channel.ID, View: "members", Rows: make([]RenderRow, 0, len(rows))}
	for _, r := range rows {
		row := RenderRow{ID: r.UserID, Parts: append(append([]string{}, r.Decorators...), r.Name)}
		if r.Tag != nil {
			row.Badge = r.Tag.Label()
			row.Class = components.BadgeMemberList.Class()
		}
		data.Rows = append(data.Rows, row)
	}
	return NewJSONResponse("render", data).Write(env.Out)
}

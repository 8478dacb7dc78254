// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/permission"
	"github.com/morganforge/ownertag/internal/storage"
	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/ui/styles"
)

// =============================================================================
// SPLICE TESTS
// =============================================================================

func TestInsertBeforeLast(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  []string
	}{
		{"empty", nil, []string{"B"}},
		{"timestamp only", []string{"ts"}, []string{"B", "ts"}},
		{"name and timestamp", []string{"name", "ts"}, []string{"name", "B", "ts"}},
		{"with bot marker", []string{"name", "BOT", "ts"}, []string{"name", "BOT", "B", "ts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]string(nil), tt.parts...)
			got := InsertBeforeLast(in, "B")
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("InsertBeforeLast(%v) = %v, want %v", tt.parts, got, tt.want)
			}
			if strings.Join(in, ",") != strings.Join(tt.parts, ",") {
				t.Errorf("input was modified: %v", in)
			}
		})
	}
}

func TestPrepend(t *testing.T) {
	if got := Prepend(nil, "B"); len(got) != 1 || got[0] != "B" {
		t.Errorf("Prepend(nil) = %v", got)
	}
	in := []string{"BOT", "x"}
	got := Prepend(in, "B")
	if strings.Join(got, ",") != "B,BOT,x" {
		t.Errorf("Prepend = %v", got)
	}
	if in[0] != "BOT" {
		t.Error("input was modified")
	}
}

func TestBadgeVariantClass(t *testing.T) {
	if BadgeMessage.Class() != "ownertag" {
		t.Errorf("message class = %q", BadgeMessage.Class())
	}
	if BadgeMemberList.Class() != "ownertag-list" {
		t.Errorf("list class = %q", BadgeMemberList.Class())
	}
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func fixture() *model.Snapshot {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	return &model.Snapshot{
		Version:           "v1",
		SelectedChannelID: "C1",
		Guilds: []model.Guild{{
			ID:      "G1",
			OwnerID: "U1",
			Roles: map[string]model.Role{
				"R1": {ID: "R1", Permissions: permission.BanMembers},
				"R2": {ID: "R2", Permissions: permission.Administrator},
			},
		}},
		Members: []model.Member{
			{GuildID: "G1", UserID: "U1", Nick: "founder"},
			{GuildID: "G1", UserID: "U2", Roles: []string{"R1"}, ColorString: "#3498db"},
			{GuildID: "G1", UserID: "U3", Roles: []string{"R2"}},
			{GuildID: "G1", UserID: "U4"},
			{GuildID: "G1", UserID: "U5"},
		},
		Channels: []model.Channel{
			{ID: "C1", Type: model.ChannelGuildText, GuildID: "G1", Name: "general"},
			{ID: "C2", Type: model.ChannelGroupDM, OwnerID: "U4", Recipients: []string{"U2"}},
		},
		Users: []model.User{
			{ID: "U1", Username: "alice"},
			{ID: "U2", Username: "bob"},
			{ID: "U3", Username: "Carol"},
			{ID: "U4", Username: "dave"},
			{ID: "U5", Username: "helper", Bot: true},
		},
		Messages: []model.Message{
			{ID: "M1", ChannelID: "C1", AuthorID: "U1", Content: "hello", Timestamp: ts},
			{ID: "M2", ChannelID: "C1", AuthorID: "U4", Content: "hi", Timestamp: ts.Add(time.Minute)},
			{ID: "M3", ChannelID: "C1", AuthorID: "U5", Content: "beep", Timestamp: ts.Add(2 * time.Minute)},
		},
	}
}

func newViews(t *testing.T) (*MessageView, *MemberList, *model.Snapshot) {
	t.Helper()
	theme := styles.NewTheme(styles.ModeDark)
	resolver := tag.NewResolver(storage.NewStaticStore(fixture()))
	mv := NewMessageView(theme, resolver, nil)
	mv.now = func() time.Time { return time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC) }
	return mv, NewMemberList(theme, resolver, "en", 0), resolver.Snapshot()
}

func TestMessageHeader_BadgeBeforeTimestamp(t *testing.T) {
	mv, _, snap := newViews(t)
	msg := &snap.ChannelMessages("C1")[0]

	parts := mv.Header(tag.DefaultSettings(), msg)
	require.Len(t, parts, 3)
	assert.Contains(t, parts[0], "founder")
	assert.Contains(t, parts[1], "Owner")
	assert.Equal(t, mv.HeaderParts(snap, msg)[1], parts[2], "timestamp stays last")
}

func TestMessageHeader_BotMarkerAndNoBadge(t *testing.T) {
	mv, _, snap := newViews(t)
	msg := &snap.ChannelMessages("C1")[2]
	require.Equal(t, "U5", msg.AuthorID)

	parts := mv.Header(tag.DefaultSettings(), msg)
	require.Len(t, parts, 3)
	assert.Contains(t, parts[1], "BOT")
	for _, p := range parts {
		assert.NotContains(t, p, "Owner")
		assert.NotContains(t, p, "Mod")
	}
}

func TestMessageHeader_Disabled(t *testing.T) {
	mv, _, snap := newViews(t)
	msg := &snap.ChannelMessages("C1")[0]

	parts := mv.Header(tag.Settings{DisplayMessages: false, DisplayMembers: true}, msg)
	assert.Equal(t, mv.HeaderParts(snap, msg), parts)
}

func TestRenderChannel(t *testing.T) {
	mv, _, _ := newViews(t)
	out := mv.RenderChannel(tag.DefaultSettings(), "C1")

	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "beep")
	assert.Less(t, strings.Index(out, "hello"), strings.Index(out, "beep"), "oldest message first")
	assert.Contains(t, mv.RenderChannel(tag.DefaultSettings(), "C2"), "No messages")
}

func TestRenderChannel_UsesRenderedChannel(t *testing.T) {
	snap := fixture()
	snap.Messages = append(snap.Messages, model.Message{
		ID: "M4", ChannelID: "C2", AuthorID: "U4", Content: "group hello",
		Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})
	resolver := tag.NewResolver(storage.NewStaticStore(snap))
	mv := NewMessageView(styles.NewTheme(styles.ModeDark), resolver, nil)

	// U4 owns the group conversation C2 but holds nothing in the selected C1.
	assert.NotContains(t, strings.Join(mv.Header(tag.DefaultSettings(), &snap.Messages[3]), " "), "Owner")
	assert.Contains(t, mv.RenderChannel(tag.DefaultSettings(), "C2"), "Owner")

	parts := mv.HeaderIn(tag.DefaultSettings(), snap.Channel("C2"), &snap.Messages[3])
	require.Len(t, parts, 3)
	assert.Contains(t, parts[1], "Owner", "badge sits before the timestamp")
}

func TestMemberList_SortedWithBadgesFirst(t *testing.T) {
	_, ml, snap := newViews(t)
	rows := ml.Rows(tag.DefaultSettings(), snap.Channel("C1"))
	require.Len(t, rows, 5)

	var names []string
	for _, r := range rows {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"bob", "Carol", "dave", "founder", "helper"}, names)

	byID := map[string]MemberRow{}
	for _, r := range rows {
		byID[r.UserID] = r
	}

	require.NotNil(t, byID["U2"].Tag)
	assert.Equal(t, permission.TierManagement, byID["U2"].Tag.Tier)
	assert.Contains(t, byID["U2"].Decorators[0], "Mod")

	require.NotNil(t, byID["U3"].Tag)
	assert.Contains(t, byID["U3"].Decorators[0], "Admin")

	assert.Nil(t, byID["U4"].Tag)
	assert.Empty(t, byID["U4"].Decorators)

	assert.Len(t, byID["U5"].Decorators, 1)
	assert.Contains(t, byID["U5"].Decorators[0], "BOT")
}

func TestMemberList_Disabled(t *testing.T) {
	_, ml, snap := newViews(t)
	rows := ml.Rows(tag.Settings{DisplayMessages: true}, snap.Channel("C1"))
	for _, r := range rows {
		assert.Nil(t, r.Tag, r.UserID)
	}
}

func TestMemberList_GroupOwner(t *testing.T) {
	_, ml, snap := newViews(t)
	rows := ml.Rows(tag.DefaultSettings(), snap.Channel("C2"))
	require.Len(t, rows, 2)

	assert.Equal(t, "U2", rows[0].UserID)
	assert.Nil(t, rows[0].Tag, "guild roles do not apply in a group conversation")
	assert.Equal(t, "U4", rows[1].UserID)
	require.NotNil(t, rows[1].Tag)
	assert.Equal(t, permission.TierOwner, rows[1].Tag.Tier)
}

func TestMemberList_RenderRowWidth(t *testing.T) {
	_, ml, snap := newViews(t)
	ml.Width = 16
	for _, row := range ml.Rows(tag.DefaultSettings(), snap.Channel("C1")) {
		assert.Equal(t, 16, lipgloss.Width(ml.RenderRow(row)), row.UserID)
	}

	ml.Width = 0
	assert.Contains(t, ml.View(tag.DefaultSettings(), snap.Channel("C1")), "founder")
}

func TestMarkdown(t *testing.T) {
	var nilMD *Markdown
	assert.Equal(t, "**x**", nilMD.Render("**x**"))

	md := NewMarkdown(40, "notty")
	out := md.Render("hello **world**")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
	assert.Equal(t, "", md.Render(""))
}

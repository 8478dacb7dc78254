// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/permission"
	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/ui/styles"
)

// fakeStore serves a snapshot and swaps in next on Reload.
type fakeStore struct {
	mu      sync.Mutex
	current *model.Snapshot
	next    *model.Snapshot
	err     error
}

func (f *fakeStore) Current() *model.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeStore) Reload(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.next != nil {
		f.current, f.next = f.next, nil
	}
	return nil
}

func snapshot(version string) *model.Snapshot {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	s := &model.Snapshot{
		Version:           version,
		SelectedChannelID: "C1",
		Guilds: []model.Guild{{
			ID:      "G1",
			OwnerID: "U1",
			Roles: map[string]model.Role{
				"R1": {ID: "R1", Permissions: permission.KickMembers},
			},
		}},
		Members: []model.Member{
			{GuildID: "G1", UserID: "U1"},
			{GuildID: "G1", UserID: "U2", Roles: []string{"R1"}},
			{GuildID: "G1", UserID: "U3"},
		},
		Channels: []model.Channel{
			{ID: "C1", Type: model.ChannelGuildText, GuildID: "G1", Name: "general"},
			{ID: "C2", Type: model.ChannelGroupDM, OwnerID: "U3", Name: "planning", Recipients: []string{"U2", "U3"}},
		},
		Users: []model.User{
			{ID: "U1", Username: "alice"},
			{ID: "U2", Username: "bob"},
			{ID: "U3", Username: "carol"},
		},
		Messages: []model.Message{
			{ID: "M1", ChannelID: "C1", AuthorID: "U1", Content: "welcome", Timestamp: ts},
			{ID: "M2", ChannelID: "C2", AuthorID: "U3", Content: "agenda", Timestamp: ts},
		},
	}
	s.Index()
	return s
}

type harness struct {
	m     Model
	store *fakeStore
	saved []tag.Settings
}

func newHarness(t *testing.T, width int) *harness {
	t.Helper()
	statusTTL = time.Millisecond

	h := &harness{store: &fakeStore{current: snapshot("v1")}}
	h.m = New(Options{
		Theme:           styles.NewTheme(styles.ModeDark),
		Store:           h.store,
		Settings:        tag.DefaultSettings(),
		MemberListWidth: 24,
		SaveSettings: func(s tag.Settings) error {
			h.saved = append(h.saved, s)
			return nil
		},
	})
	h.send(tea.WindowSizeMsg{Width: width, Height: 30})
	return h
}

// send delivers msg and runs the resulting commands to completion, feeding
// their messages back in.
func (h *harness) send(msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		updated, cmd := h.m.Update(next)
		h.m = updated.(Model)
		queue = append(queue, run(cmd)...)
	}
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}
		return out
	case tea.QuitMsg, clearStatusMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNew_SelectsChannel(t *testing.T) {
	m := New(Options{Store: &fakeStore{current: snapshot("v1")}})
	assert.Equal(t, "C1", m.ChannelID())
	assert.Equal(t, "Loading...", m.View())

	s := snapshot("v1")
	s.SelectedChannelID = "C404"
	m = New(Options{Store: &fakeStore{current: s}})
	assert.Equal(t, "C1", m.ChannelID(), "unknown selection falls back to the first channel")
}

func TestView_ShowsBadges(t *testing.T) {
	h := newHarness(t, 120)
	view := h.m.View()
	assert.Contains(t, view, "# general")
	assert.Contains(t, view, "Owner")
	assert.Contains(t, view, "Mod")
	assert.Contains(t, view, "Members")
}

func TestToggle_HidesBadgesAndSaves(t *testing.T) {
	h := newHarness(t, 120)

	h.send(keyPress("m"))
	assert.False(t, h.m.Settings().DisplayMessages)
	assert.True(t, h.m.Settings().DisplayMembers)

	h.send(keyPress("l"))
	assert.False(t, h.m.Settings().DisplayMembers)

	require.Len(t, h.saved, 2)
	assert.Equal(t, tag.Settings{DisplayMessages: false, DisplayMembers: true}, h.saved[0])
	assert.Equal(t, tag.Settings{}, h.saved[1])

	view := h.m.View()
	assert.NotContains(t, view, "Owner")
	assert.NotContains(t, view, "Mod ")

	h.send(keyPress("m"))
	assert.Contains(t, h.m.View(), "Owner")
}

func TestToggle_SaveFailureShowsStatus(t *testing.T) {
	h := newHarness(t, 120)
	h.m.saveSettings = func(tag.Settings) error { return errors.New("read-only") }

	updated, cmd := h.m.Update(keyPress("m"))
	h.m = updated.(Model)
	for _, msg := range run(cmd) {
		if saved, ok := msg.(SettingsSavedMsg); ok {
			updated, _ = h.m.Update(saved)
			h.m = updated.(Model)
		}
	}
	assert.Contains(t, h.m.View(), "read-only")
}

func TestReload_NewSnapshot(t *testing.T) {
	h := newHarness(t, 120)

	next := snapshot("v2")
	next.Guilds[0].OwnerID = "U3"
	next.Channels = next.Channels[1:]
	next.SelectedChannelID = ""
	next.Index()
	h.store.next = next

	h.send(keyPress("r"))
	assert.Equal(t, "C2", h.m.ChannelID(), "the viewed channel vanished")
	assert.Contains(t, h.m.View(), "planning")
}

func TestReload_WatcherMessage(t *testing.T) {
	h := newHarness(t, 120)
	h.store.current = snapshot("v2")
	h.store.current.Guilds[0].OwnerID = "U2"

	updated, _ := h.m.Update(SnapshotReloadedMsg{Version: "v2"})
	h.m = updated.(Model)
	assert.Contains(t, h.m.View(), "Snapshot reloaded")
}

func TestReload_Failure(t *testing.T) {
	h := newHarness(t, 120)
	h.store.err = errors.New("disk gone")

	updated, cmd := h.m.Update(keyPress("r"))
	h.m = updated.(Model)
	for _, msg := range run(cmd) {
		updated, _ = h.m.Update(msg)
		h.m = updated.(Model)
	}
	assert.Contains(t, h.m.View(), "disk gone")
	assert.Equal(t, "C1", h.m.ChannelID())
}

func TestCycleChannel(t *testing.T) {
	h := newHarness(t, 120)

	h.send(keyPress("]"))
	assert.Equal(t, "C2", h.m.ChannelID())
	h.send(keyPress("]"))
	assert.Equal(t, "C1", h.m.ChannelID())
	h.send(keyPress("["))
	assert.Equal(t, "C2", h.m.ChannelID())
}

func TestGroupOwnerBadge(t *testing.T) {
	h := newHarness(t, 120)
	h.send(keyPress("]"))

	view := h.m.View()
	assert.Contains(t, view, "planning")
	assert.Contains(t, view, "Owner", "the group owner gets a badge")
	assert.Contains(t, view, "agenda")
}

func TestNarrowLayoutHidesMembers(t *testing.T) {
	h := newHarness(t, 50)
	assert.NotContains(t, h.m.View(), "Members")

	h.send(keyPress("tab"))
	assert.Equal(t, PaneMessages, h.m.Focus())
}

func TestSwitchPane(t *testing.T) {
	h := newHarness(t, 120)
	h.send(keyPress("tab"))
	assert.Equal(t, PaneMembers, h.m.Focus())
	h.send(keyPress("tab"))
	assert.Equal(t, PaneMessages, h.m.Focus())
}

func TestQuit(t *testing.T) {
	h := newHarness(t, 120)
	_, cmd := h.m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t, 120)
	assert.False(t, strings.Contains(h.m.View(), "next channel"))
	h.send(keyPress("?"))
	assert.Contains(t, h.m.View(), "next channel")
}

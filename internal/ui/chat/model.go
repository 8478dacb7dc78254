// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/tag"
	"github.com/morganforge/ownertag/internal/ui/components"
	"github.com/morganforge/ownertag/internal/ui/styles"
)

// reloadTimeout bounds a manual snapshot reload.
const reloadTimeout = 10 * time.Second

// statusTTL is how long a status line stays visible.
var statusTTL = 4 * time.Second

// Snapshots is the snapshot source the viewer reads and reloads.
type Snapshots interface {
	Current() *model.Snapshot
	Reload(ctx context.Context) error
}

// Pane identifies a focusable pane.
type Pane int

const (
	PaneMessages Pane = iota
	PaneMembers
)

// Options configures a viewer.
type Options struct {
	Theme    *styles.Theme
	Store    Snapshots
	Resolver *tag.Resolver // defaults to an uncached resolver over Store
	Markdown *components.Markdown

	Settings tag.Settings
	// SaveSettings persists the toggles. It runs outside the update loop.
	SaveSettings func(tag.Settings) error

	MemberListWidth int // 0 hides the member list
	Locale          string
	Logger          *slog.Logger
}

// Model is the viewer state.
type Model struct {
	theme    *styles.Theme
	store    Snapshots
	resolver *tag.Resolver
	logger   *slog.Logger

	messageView *components.MessageView
	memberList  *components.MemberList
	markdown    *components.Markdown

	settings     tag.Settings
	saveSettings func(tag.Settings) error
	keyMap       KeyMap

	messages viewport.Model
	members  viewport.Model
	focus    Pane

	memberWidth int
	channelID   string
	version     string

	status    string
	statusErr bool
	statusAt  time.Time
	showHelp  bool

	width  int
	height int
	ready  bool
}

// New creates a viewer. The initial channel is the snapshot's selected
// channel, or the first channel when none is selected.
func New(opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ModeAuto)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Resolver == nil {
		opts.Resolver = tag.NewResolver(opts.Store, tag.WithLogger(opts.Logger))
	}

	m := Model{
		theme:        opts.Theme,
		store:        opts.Store,
		resolver:     opts.Resolver,
		logger:       opts.Logger,
		markdown:     opts.Markdown,
		settings:     opts.Settings,
		saveSettings: opts.SaveSettings,
		keyMap:       DefaultKeyMap(),
		memberWidth:  opts.MemberListWidth,
		messages:     viewport.New(0, 0),
		members:      viewport.New(0, 0),
	}
	m.messageView = components.NewMessageView(opts.Theme, opts.Resolver, opts.Markdown)
	m.memberList = components.NewMemberList(opts.Theme, opts.Resolver, opts.Locale, opts.MemberListWidth)

	snap := opts.Store.Current()
	m.version = snap.Version
	m.channelID = defaultChannel(snap)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Settings returns the current display toggles.
func (m Model) Settings() tag.Settings {
	return m.settings
}

// ChannelID returns the channel being viewed.
func (m Model) ChannelID() string {
	return m.channelID
}

// Focus returns the focused pane.
func (m Model) Focus() Pane {
	return m.focus
}

// channel returns the viewed channel from the current snapshot, or nil.
func (m Model) channel() *model.Channel {
	return m.store.Current().Channel(m.channelID)
}

// memberPaneVisible reports whether the layout has room for the member list.
func (m Model) memberPaneVisible() bool {
	return m.memberWidth > 0 && m.theme.GetLayoutMode() != styles.LayoutNarrow
}

// refresh re-renders both panes from the current snapshot and settings.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	atBottom := m.messages.AtBottom()
	m.messages.SetContent(m.messageView.RenderChannel(m.settings, m.channelID))
	if atBottom {
		m.messages.GotoBottom()
	}
	m.members.SetContent(m.memberList.View(m.settings, m.channel()))
}

// setStatus shows a transient status line and schedules its removal.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	now := time.Now()
	m.status = text
	m.statusErr = isErr
	m.statusAt = now
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{set: now}
	})
}

// saveCmd persists s outside the update loop.
func (m Model) saveCmd(s tag.Settings) tea.Cmd {
	if m.saveSettings == nil {
		return nil
	}
	save := m.saveSettings
	return func() tea.Msg {
		return SettingsSavedMsg{Settings: s, Err: save(s)}
	}
}

// reloadCmd reloads the snapshot outside the update loop.
func (m Model) reloadCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		if err := store.Reload(ctx); err != nil {
			return ReloadErrorMsg{Err: err}
		}
		return SnapshotReloadedMsg{Version: store.Current().Version}
	}
}

func defaultChannel(snap *model.Snapshot) string {
	if snap.SelectedChannelID != "" && snap.Channel(snap.SelectedChannelID) != nil {
		return snap.SelectedChannelID
	}
	if len(snap.Channels) > 0 {
		return snap.Channels[0].ID
	}
	return ""
}

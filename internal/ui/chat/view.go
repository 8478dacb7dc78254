// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/ownertag/internal/model"
	"github.com/morganforge/ownertag/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	panes := m.renderMessagesPane()
	if m.memberPaneVisible() {
		panes = lipgloss.JoinHorizontal(lipgloss.Top, panes, m.renderMembersPane())
	}

	sections := []string{panes}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}
	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderMessagesPane() string {
	title := m.theme.PaneTitle.Render(channelTitle(m.channel()))
	body := m.messages.View()
	return m.paneStyle(PaneMessages).
		Width(m.messages.Width + 2).
		Render(title + "\n" + body)
}

func (m Model) renderMembersPane() string {
	title := m.theme.PaneTitle.Render("Members")
	return m.paneStyle(PaneMembers).
		Width(m.memberWidth + 2).
		Render(title + "\n" + m.members.View())
}

func (m Model) paneStyle(p Pane) lipgloss.Style {
	if m.focus == p {
		return m.theme.PaneFocused
	}
	return m.theme.Pane
}

func (m Model) renderStatusBar() string {
	left := "msgs " + m.renderToggle(m.settings.DisplayMessages) +
		"  list " + m.renderToggle(m.settings.DisplayMembers)

	var middle string
	switch {
	case m.status != "" && m.statusErr:
		middle = styles.RenderError(m.status)
	case m.status != "":
		middle = styles.RenderSuccess(m.status)
	default:
		middle = m.renderShortcuts()
	}

	line := left + "  " + middle
	room := m.width - 2
	if room < 1 {
		room = 1
	}
	if lipgloss.Width(line) > room {
		line = lipgloss.NewStyle().MaxWidth(room).Render(line)
	}
	return m.theme.StatusBar.Width(m.width).Render(line)
}

func (m Model) renderToggle(on bool) string {
	if on {
		return m.theme.ToggleOn.Render("on")
	}
	return m.theme.ToggleOff.Render("off")
}

func (m Model) renderShortcuts() string {
	return m.renderBindings(m.keyMap.ShortHelp())
}

func (m Model) renderBindings(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	groups := m.keyMap.FullHelp()
	lines := make([]string, 0, helpHeight)
	for _, g := range groups {
		lines = append(lines, " "+m.renderBindings(g))
	}
	for len(lines) < helpHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines[:helpHeight], "\n")
}

// channelTitle names a channel the way the host's header does.
func channelTitle(c *model.Channel) string {
	if c == nil {
		return "No channel"
	}
	switch {
	case c.InGuild():
		return "# " + c.Name
	case c.Name != "":
		return c.Name
	case c.Type == model.ChannelGroupDM:
		return "Group conversation"
	default:
		return "Direct message"
	}
}

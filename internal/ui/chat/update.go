// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Layout constants. They must match the rendered heights in view.go.
const (
	statusBarHeight = 1
	helpHeight      = 5
	paneChrome      = 3 // border top and bottom plus the title line
	paneHorizontal  = 4 // border and padding on both sides
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotReloadedMsg:
		return m.handleReloaded(msg)

	case ReloadErrorMsg:
		m.logger.Warn("snapshot reload failed", "error", msg.Err)
		return m, m.setStatus(fmt.Sprintf("Reload failed: %v", msg.Err), true)

	case SettingsSavedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to save display settings", "error", msg.Err)
			return m, m.setStatus(fmt.Sprintf("Could not save settings: %v", msg.Err), true)
		}
		return m, nil

	case clearStatusMsg:
		if msg.set.Equal(m.statusAt) {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Mouse and other messages go to the focused pane.
	var cmd tea.Cmd
	if m.focus == PaneMembers {
		m.members, cmd = m.members.Update(msg)
	} else {
		m.messages, cmd = m.messages.Update(msg)
	}
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.ready = true
	m.layout()
	m.refresh()
	return m, nil
}

// layout sizes the panes for the current window.
func (m *Model) layout() {
	reserved := statusBarHeight + paneChrome
	if m.showHelp {
		reserved += helpHeight
	}
	height := m.height - reserved
	if height < 1 {
		height = 1
	}

	messagesWidth := m.width - paneHorizontal
	if m.memberPaneVisible() {
		messagesWidth -= m.memberWidth + paneHorizontal
		m.members.Width = m.memberWidth
		m.members.Height = height
	} else if m.focus == PaneMembers {
		m.focus = PaneMessages
	}
	if messagesWidth < 1 {
		messagesWidth = 1
	}
	m.messages.Width = messagesWidth
	m.messages.Height = height

	if m.markdown != nil {
		m.markdown.SetWidth(messagesWidth - 2)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ToggleMessages):
		m.settings.DisplayMessages = !m.settings.DisplayMessages
		m.refresh()
		return m, tea.Batch(m.saveCmd(m.settings), m.setStatus(toggleStatus("Message badges", m.settings.DisplayMessages), false))

	case key.Matches(msg, m.keyMap.ToggleMembers):
		m.settings.DisplayMembers = !m.settings.DisplayMembers
		m.refresh()
		return m, tea.Batch(m.saveCmd(m.settings), m.setStatus(toggleStatus("Member list badges", m.settings.DisplayMembers), false))

	case key.Matches(msg, m.keyMap.Reload):
		return m, tea.Batch(m.reloadCmd(), m.setStatus("Reloading snapshot...", false))

	case key.Matches(msg, m.keyMap.NextChannel):
		m.cycleChannel(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PrevChannel):
		m.cycleChannel(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.SwitchPane):
		if m.focus == PaneMessages && m.memberPaneVisible() {
			m.focus = PaneMembers
		} else {
			m.focus = PaneMessages
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		m.layout()
		m.refresh()
		return m, nil
	}

	return m.handleNavigationKeys(msg)
}

func (m Model) handleNavigationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.messages
	if m.focus == PaneMembers {
		vp = &m.members
	}

	switch {
	case key.Matches(msg, m.keyMap.Up):
		vp.LineUp(1)
	case key.Matches(msg, m.keyMap.Down):
		vp.LineDown(1)
	case key.Matches(msg, m.keyMap.PageUp):
		vp.HalfViewUp()
	case key.Matches(msg, m.keyMap.PageDown):
		vp.HalfViewDown()
	case key.Matches(msg, m.keyMap.Home):
		vp.GotoTop()
	case key.Matches(msg, m.keyMap.End):
		vp.GotoBottom()
	}
	return m, nil
}

func (m Model) handleReloaded(msg SnapshotReloadedMsg) (tea.Model, tea.Cmd) {
	m.version = msg.Version

	snap := m.store.Current()
	if snap.Channel(m.channelID) == nil {
		m.channelID = defaultChannel(snap)
	}
	m.refresh()
	m.logger.Debug("viewer refreshed", "version", msg.Version, "channel", m.channelID)
	return m, m.setStatus("Snapshot reloaded", false)
}

// cycleChannel moves delta channels through the snapshot's channel list.
func (m *Model) cycleChannel(delta int) {
	channels := m.store.Current().Channels
	if len(channels) == 0 {
		return
	}
	idx := 0
	for i := range channels {
		if channels[i].ID == m.channelID {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(channels)) % len(channels)
	m.channelID = channels[idx].ID
	m.messages.GotoBottom()
	m.members.GotoTop()
	m.refresh()
}

func toggleStatus(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}

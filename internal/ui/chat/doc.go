// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the interactive viewer for ownertag.

The viewer is a Bubble Tea model with two panes: the messages of the current
channel, each header decorated with the author's badge, and the channel's
member list with badges in front of the names.

# Key Components

## Model (model.go)

Holds the panes, the display settings and the snapshot source. The settings
are the two toggles persisted in the config file.

## Update Loop (update.go)

Handles keys, window resizes and snapshot reloads. Reloads triggered by the
snapshot watcher arrive as SnapshotReloadedMsg through Program.Send.

## View Rendering (view.go)

Lays out the panes side by side above a status bar showing the toggles.
Narrow terminals hide the member list.

# Usage

	m := chat.New(chat.Options{
		Theme:    theme,
		Store:    store,
		Resolver: resolver,
		Settings: cfg.DisplaySettings(),
		SaveSettings: func(s tag.Settings) error {
			cfg.SetDisplaySettings(s)
			return config.Save(cfg)
		},
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	store.OnReload(func(s *model.Snapshot) {
		p.Send(chat.SnapshotReloadedMsg{Version: s.Version})
	})
*/
package chat

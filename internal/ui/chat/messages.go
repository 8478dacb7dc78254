// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/morganforge/ownertag/internal/tag"
)

// SnapshotReloadedMsg reports that a new snapshot is current.
type SnapshotReloadedMsg struct {
	Version string
}

// ReloadErrorMsg reports a failed manual reload. The previous snapshot is
// still current.
type ReloadErrorMsg struct {
	Err error
}

// SettingsSavedMsg reports the result of persisting the display toggles.
type SettingsSavedMsg struct {
	Settings tag.Settings
	Err      error
}

// clearStatusMsg clears a status line set at the given time.
type clearStatusMsg struct {
	set time.Time
}

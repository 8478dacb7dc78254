// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and persistence for ownertag.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - DisplayConfig: The two badge toggles
//   - SnapshotConfig: Where the host snapshot lives and how it is watched
//   - UIConfig: Viewer theme and layout
//   - LogConfig: slog level, format and destination
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (OWNERTAG_*)
//   - ~/.ownertag/config.toml
//   - ~/.ownertag/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	settings := cfg.DisplaySettings()
package config

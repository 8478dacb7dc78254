// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of ownertag.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed global flags plus the remaining command arguments
//   - ArgParser: Per-command flag and positional parsing
//   - Env: Loaded configuration, logger and output streams for a command
//
// # Commands Overview
//
//   - classify: Tier and badge of a user in a guild or channel
//   - permissions: Resolved permission bits of a guild member
//   - render: Decorated message headers or member list, as text
//   - config: Show, get and set configuration values
//   - toggle: Flip one of the two badge toggles
//   - import: Convert a JSON snapshot into a SQLite snapshot
//
// All commands support the --json flag for machine-readable output.
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across ownertag.
//
// # Key Functions
//
// Files:
//   - AtomicWriteFile: write-temp, fsync, rename
//
// Display text:
//   - StringWidth, TruncateWidth, PadRight: terminal-column aware helpers
//   - NormalizeName: NFC normalization and whitespace cleanup for names
//   - NameCollator: locale-aware ordering for member lists
package util

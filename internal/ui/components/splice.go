// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

// InsertBeforeLast returns parts with part inserted in front of the last
// element. The last element shifts one slot right. An empty list yields a
// list holding only part. The input slice is not modified.
func InsertBeforeLast(parts []string, part string) []string {
	if len(parts) == 0 {
		return []string{part}
	}
	out := make([]string, 0, len(parts)+1)
	out = append(out, parts[:len(parts)-1]...)
	out = append(out, part, parts[len(parts)-1])
	return out
}

// Prepend returns parts with part at the front. The input slice is not
// modified.
func Prepend(parts []string, part string) []string {
	out := make([]string, 0, len(parts)+1)
	out = append(out, part)
	return append(out, parts...)
}

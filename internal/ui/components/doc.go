// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components renders the decorated chat views.

# Badges (badge.go)

A badge is drawn in one of two variants, matching the two places the host
shows it:

	BadgeMessage    - after the author name in a message header
	BadgeMemberList - at the front of a member list row

# Injection (splice.go)

The host builds each header and row as a list of rendered parts. Badges are
spliced into those lists rather than appended:

	InsertBeforeLast(parts, badge) - message headers, the timestamp stays last
	Prepend(parts, badge)          - member list decorators

# Views

	MessageView - header plus markdown body for each message (message.go)
	MemberList  - sorted, width-aligned member rows (member_list.go)
	Markdown    - glamour renderer with a plain-text fallback (markdown.go)
*/
package components

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Message is a chat message as the host stores it.
type Message struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// FormatTimestamp returns the header timestamp, "15:04" for today and
// "2006-01-02 15:04" otherwise.
func (m *Message) FormatTimestamp(now time.Time) string {
	if m.Timestamp.IsZero() {
		return ""
	}
	ts := m.Timestamp.Local()
	y1, m1, d1 := ts.Date()
	y2, m2, d2 := now.Local().Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return ts.Format("15:04")
	}
	return ts.Format("2006-01-02 15:04")
}

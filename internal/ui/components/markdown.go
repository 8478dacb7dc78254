// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown renders message content. A nil *Markdown, or one whose renderer
// failed to build, returns content unchanged.
type Markdown struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// NewMarkdown creates a renderer wrapping at width. style is a glamour
// standard style name ("dark", "light", "notty") or empty for auto.
func NewMarkdown(width int, style string) *Markdown {
	m := &Markdown{style: style}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the renderer for a new wrap width.
func (m *Markdown) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renderer != nil && width == m.width {
		return
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if m.style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		// Fall back to plain text
		r = nil
	}
	m.renderer = r
	m.width = width
}

// Render renders content, trimming the blank lines glamour adds around it.
func (m *Markdown) Render(content string) string {
	if m == nil || content == "" {
		return content
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the light or dark palette.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode parses a theme mode from configuration. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeDark, ModeLight:
		return m, nil
	default:
		return "", fmt.Errorf("unknown theme %q (expected auto, dark or light)", s)
	}
}

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	AuthorName  lipgloss.Style
	BotTag      lipgloss.Style
	Timestamp   lipgloss.Style
	MessageBody lipgloss.Style

	// ==========================================================================
	// BADGE STYLES
	// ==========================================================================

	// MessageBadge and ListBadge are the two badge variants. Colors are
	// applied per badge on top of these.
	MessageBadge lipgloss.Style
	ListBadge    lipgloss.Style

	// ==========================================================================
	// PANE STYLES
	// ==========================================================================

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style
	MemberName  lipgloss.Style
	Empty       lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ToggleOn     lipgloss.Style
	ToggleOff    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. ModeDark and
// ModeLight override the terminal background detection.
func NewTheme(mode Mode) *Theme {
	colorProfile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()
	switch mode {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Messages
	t.AuthorName = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.BotTag = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Purple).
		Padding(0, 1)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.MessageBody = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	// Badges
	t.MessageBadge = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	t.ListBadge = lipgloss.NewStyle().
		Padding(0, 1)

	// Panes
	t.Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PaneFocused = t.Pane.
		BorderForeground(Purple)

	t.PaneTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.MemberName = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Empty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ToggleOn = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ToggleOff = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, member list hidden
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

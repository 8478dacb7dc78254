// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/morganforge/ownertag/internal/permission"
)

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple - Selection, focused pane border
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, key hints
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Toggle on
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// BADGE COLORS
// =============================================================================

// Fallback badge backgrounds, used when a member has no role color.
var (
	OwnerBadge = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	AdminBadge = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#F43F5E"}
	ModBadge   = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#06B6D4"}
)

// Badge text on the fallback backgrounds.
var BadgeText = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Headers and the status bar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// BADGE HELPERS
// =============================================================================

// TierColor returns the fallback badge background for a tier.
func TierColor(tier permission.Tier) lipgloss.TerminalColor {
	switch tier {
	case permission.TierOwner:
		return OwnerBadge
	case permission.TierAdmin:
		return AdminBadge
	case permission.TierManagement:
		return ModBadge
	default:
		return lipgloss.NoColor{}
	}
}

// BadgeBackground returns the background for a badge: the member's role
// color when it parses as a hex color, otherwise the tier fallback.
func BadgeBackground(tier permission.Tier, roleColor string) lipgloss.TerminalColor {
	if _, err := colorful.Hex(roleColor); err == nil {
		return lipgloss.Color(roleColor)
	}
	return TierColor(tier)
}

// BadgeForeground returns readable text for a badge background. Role colors
// get black or white depending on their lightness; fallbacks use BadgeText.
func BadgeForeground(tier permission.Tier, roleColor string) lipgloss.TerminalColor {
	c, err := colorful.Hex(roleColor)
	if err != nil {
		if tier == permission.TierNone {
			return lipgloss.NoColor{}
		}
		return BadgeText
	}
	if l, _, _ := c.Lab(); l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#FFFFFF")
}

// RenderError renders an error line for the viewer status bar and the CLI.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Bold(true).Render("[X] " + message)
}

// RenderSuccess renders a confirmation line.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Bold(true).Render("[OK] " + message)
}

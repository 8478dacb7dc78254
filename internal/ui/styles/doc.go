// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the ownertag viewer and
the CLI renderers.

All palette colors use Lip Gloss AdaptiveColor so they follow the terminal's
light or dark background. The theme mode can be forced from configuration.

# Color System (colors.go)

## Badge Colors

Each authority tier has a fallback badge color, used when the member has no
role color of their own:

	OwnerBadge - Amber, the guild or group owner
	AdminBadge - Rose, holders of Administrator
	ModBadge   - Cyan, kick / ban / manage messages

BadgeForeground picks black or white text for an arbitrary hex background
based on its lightness.

## Surface and Text Colors

	Surface, SurfaceDim, Overlay          - backgrounds and separators
	TextPrimary, TextSecondary, TextMuted - body text, names, timestamps

# Theme (theme.go)

Theme groups the styles used to draw message headers, message bodies, the
member list and the status bar:

	theme := styles.NewTheme(styles.ModeAuto)
	header := theme.AuthorName.Render(name)
*/
package styles

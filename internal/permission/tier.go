// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package permission

import (
	"fmt"
	"strings"
)

// Tier is a coarse authority classification.
type Tier int

const (
	TierNone Tier = iota
	TierManagement
	TierAdmin
	TierOwner
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierNone:
		return "NONE"
	case TierManagement:
		return "MANAGEMENT"
	case TierAdmin:
		return "ADMIN"
	case TierOwner:
		return "OWNER"
	default:
		return "UNKNOWN"
	}
}

// Label returns the badge text for the tier. TierNone has no badge.
func (t Tier) Label() string {
	switch t {
	case TierManagement:
		return "Mod"
	case TierAdmin:
		return "Admin"
	case TierOwner:
		return "Owner"
	default:
		return ""
	}
}

// ParseTier parses a tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE", "":
		return TierNone, nil
	case "MANAGEMENT", "MOD":
		return TierManagement, nil
	case "ADMIN":
		return TierAdmin, nil
	case "OWNER":
		return TierOwner, nil
	default:
		return TierNone, fmt.Errorf("unknown tier %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ClassifyTier maps resolved permissions to a tier. Checks run in order and the
// first match wins: guild owner, administrator, moderation bits, then the
// group conversation owner, which only applies outside a guild.
func ClassifyTier(perms Permission, isOwner, isGroupOwner bool) Tier {
	switch {
	case isOwner:
		return TierOwner
	case perms.Has(Administrator):
		return TierAdmin
	case perms.HasAny(Moderation):
		return TierManagement
	case isGroupOwner:
		return TierOwner
	default:
		return TierNone
	}
}

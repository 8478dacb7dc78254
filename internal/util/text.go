// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// StringWidth returns the number of terminal columns s occupies.
// East Asian wide characters count as 2.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth cuts s to at most maxWidth columns, ending with "…" when
// anything was removed.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// PadRight pads s with spaces to width columns. Longer strings are returned
// unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// NormalizeName returns name in NFC form with surrounding whitespace removed
// and inner runs of whitespace collapsed to one space.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// NameCollator orders display names the way a reader expects: case and
// accents are secondary to the base letters. A NameCollator is not safe for
// concurrent use.
type NameCollator struct {
	c *collate.Collator
}

// NewNameCollator creates a collator for tag, or the root locale when tag is
// empty or unparseable.
func NewNameCollator(tag string) *NameCollator {
	lang := language.Und
	if tag != "" {
		if parsed, err := language.Parse(tag); err == nil {
			lang = parsed
		}
	}
	return &NameCollator{c: collate.New(lang, collate.IgnoreCase, collate.Loose)}
}

// Compare returns -1, 0 or 1.
func (n *NameCollator) Compare(a, b string) int {
	return n.c.CompareString(NormalizeName(a), NormalizeName(b))
}

// SortStable sorts items by the name key returns, keeping input order for ties.
func SortStable[T any](n *NameCollator, items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return n.Compare(key(items[i]), key(items[j])) < 0
	})
}

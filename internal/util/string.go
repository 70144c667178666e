// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small text and file helpers shared by careerdesk.
package util

import (
	"math"
	"strconv"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// UNICODE: All truncation counts runes or display cells, never bytes.

// Snippet keeps the first maxRunes runes of s and appends Ellipsis when
// anything was cut. Text at or under the budget is returned unchanged.
func Snippet(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + Ellipsis
}

// TruncateWidth truncates s to at most maxWidth terminal cells, counting
// wide (CJK, emoji) runes as two cells. The result includes the ellipsis.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// Plural formats a count with its noun, adding "s" unless n is exactly 1.
func Plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// FormatScore renders a score with no trailing zeros: 9 -> "9", 8.5 -> "8.5".
func FormatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatTenths renders f with one decimal place: 8.55 -> "8.6". Exact
// halves round away from zero (8.25 -> "8.3").
func FormatTenths(f float64) string {
	// Only multiples of 0.25 can sit exactly on a tie; f*4 is exact.
	if q := f * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		f = math.Round(f*10) / 10
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

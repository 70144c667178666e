// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small text and file helpers shared by careerdesk.
package util

import (
	"fmt"
	"html"
	"strings"
)

// EscapeMarkup converts s into text that renders literally inside HTML.
// The characters < > & ' " are replaced by entities.
func EscapeMarkup(s string) string {
	if s == "" {
		return ""
	}
	return html.EscapeString(s)
}

// SECURITY: Terminal control sequences in server text must never reach the
// terminal. Escape them instead of stripping so the text stays faithful.

// EscapeTerminal converts s into text that renders literally in a terminal.
// C0 and C1 control characters other than newline and tab, plus DEL, are
// written as \xNN (or \u00NN for C1). Everything else passes through.
func EscapeTerminal(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsFunc(s, isControl) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if !isControl(r) {
			b.WriteRune(r)
			continue
		}
		if r < 0x80 {
			fmt.Fprintf(&b, `\x%02x`, r)
		} else {
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	switch {
	case r == '\n' || r == '\t':
		return false
	case r < 0x20, r == 0x7f:
		return true
	case r >= 0x80 && r <= 0x9f:
		return true
	}
	return false
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
)

// =============================================================================
// HELPER FUNCTION TESTS
// =============================================================================

func TestWordWrap_Table(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "short line", 20, "short line"},
		{"wraps at word boundary", "one two three four", 9, "one two\nthree\nfour"},
		{"long word stays whole", "supercalifragilistic", 5, "supercalifragilistic"},
		{"keeps blank lines", "a\n\nb", 10, "a\n\nb"},
		{"collapses runs of spaces", "a    b", 10, "a b"},
		{"zero width is a no-op", "a b c", 0, "a b c"},
		{"wide runes count double", "日本語 日本語", 7, "日本語\n日本語"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wordWrap(tc.text, tc.width); got != tc.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}

func TestBubbleWidth(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		available int
		want      int
	}{
		{"short text keeps its width", "hello", 80, 5},
		{"long text caps at three quarters", "0123456789012345678901234567890123456789", 40, 30},
		{"narrow space uses nearly all of it", "0123456789012345678901234567890123456789", 20, 16},
		{"never below one", "abc", 2, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := bubbleWidth(tc.text, tc.available); got != tc.want {
				t.Errorf("bubbleWidth(%q, %d) = %d, want %d", tc.text, tc.available, got, tc.want)
			}
		})
	}
}

func TestMaxInt(t *testing.T) {
	if maxInt(3, 7) != 7 || maxInt(7, 3) != 7 || maxInt(-1, -1) != -1 {
		t.Error("maxInt returned the wrong value")
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/gauge"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"Card", theme.Card},
		{"EmployerBubble", theme.EmployerBubble},
		{"AgentBubble", theme.AgentBubble},
		{"FlaggedBubble", theme.FlaggedBubble},
		{"Panel", theme.Panel},
		{"StatusBar", theme.StatusBar},
	}
	for _, s := range styles {
		if s.style.Render("test") == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

func TestNewThemeFor_PinsBackground(t *testing.T) {
	defer lipgloss.SetHasDarkBackground(lipgloss.HasDarkBackground())

	if !NewThemeFor(ModeDark).IsDark {
		t.Error("dark mode should report IsDark")
	}
	if NewThemeFor(ModeLight).IsDark {
		t.Error("light mode should not report IsDark")
	}
}

// =============================================================================
// BAND MAPPING TESTS
// =============================================================================

func TestGaugeBandStyles(t *testing.T) {
	theme := NewTheme()
	tests := []struct {
		band gauge.Band
		want lipgloss.TerminalColor
	}{
		{gauge.BandPositive, Emerald},
		{gauge.BandWarning, Amber},
		{gauge.BandDanger, Rose},
	}
	for _, tc := range tests {
		if got := theme.GaugeBand(tc.band).GetForeground(); got != tc.want {
			t.Errorf("GaugeBand(%v) foreground = %v, want %v", tc.band, got, tc.want)
		}
	}
}

func TestScoreBandStyles(t *testing.T) {
	theme := NewTheme()
	tests := []struct {
		band gauge.ScoreBand
		want lipgloss.TerminalColor
	}{
		{gauge.ScoreSuccess, Emerald},
		{gauge.ScoreNeutral, Slate},
		{gauge.ScoreDanger, Rose},
		{gauge.ScoreNone, Overlay},
	}
	for _, tc := range tests {
		if got := theme.ScoreBand(tc.band).GetForeground(); got != tc.want {
			t.Errorf("ScoreBand(%v) foreground = %v, want %v", tc.band, got, tc.want)
		}
	}
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}
	theme := NewTheme()
	for _, tc := range tests {
		theme.SetSize(tc.width, 30)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("width %d: GetLayoutMode() = %v, want %v", tc.width, got, tc.want)
		}
	}
}

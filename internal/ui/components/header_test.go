// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
)

// =============================================================================
// HEALTH TESTS
// =============================================================================

func TestHealthString(t *testing.T) {
	tests := []struct {
		health Health
		want   string
	}{
		{HealthUnknown, "checking"},
		{HealthUp, "online"},
		{HealthDown, "offline"},
		{Health(99), "checking"},
	}

	for _, tc := range tests {
		got := tc.health.String()
		if got != tc.want {
			t.Errorf("Health(%d).String() = %q, want %q", tc.health, got, tc.want)
		}
	}
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	h := NewHeader(styles.NewTheme())

	if h == nil {
		t.Fatal("NewHeader() returned nil")
	}
	if h.Title != "careerdesk" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "careerdesk")
	}
	if h.Health != HealthUnknown {
		t.Errorf("NewHeader() Health = %v, want %v", h.Health, HealthUnknown)
	}
	if h.Width != 80 {
		t.Errorf("NewHeader() Width = %d, want 80", h.Width)
	}
}

func TestHeaderView_ShowsBaseURL(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.BaseURL = "http://127.0.0.1:8000"
	h.SetHealth(HealthUp)

	view := h.View()
	if !strings.Contains(view, "http://127.0.0.1:8000") {
		t.Errorf("View() missing base URL: %q", view)
	}
	if !strings.Contains(view, "online") {
		t.Errorf("View() missing health: %q", view)
	}
}

func TestHeaderView_EscapesAgentName(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.AgentName = "Agent\x1b[31m"

	view := h.View()
	if strings.Contains(view, "Agent\x1b[31m") {
		t.Error("View() passed a raw escape sequence through")
	}
	if !strings.Contains(view, `Agent\x1b[31m`) {
		t.Errorf("View() = %q, want the escaped agent name", view)
	}
}

func TestHeaderView_NarrowWidthClamps(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(10)

	for _, line := range strings.Split(h.View(), "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line width = %d, want <= 40 at the minimum header width", w)
		}
	}
}

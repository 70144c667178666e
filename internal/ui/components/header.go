// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the careerdesk
// TUI. Components are projections: they read state and return strings.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Health is the last known state of the evaluation service.
type Health int

const (
	HealthUnknown Health = iota
	HealthUp
	HealthDown
)

// String returns the display string for the health state.
func (h Health) String() string {
	switch h {
	case HealthUp:
		return "online"
	case HealthDown:
		return "offline"
	default:
		return "checking"
	}
}

// Header is the title bar: brand, agent name and service health.
type Header struct {
	Title     string
	AgentName string
	BaseURL   string
	Health    Health
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "careerdesk",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetHealth records the service health.
func (h *Header) SetHealth(health Health) {
	h.Health = health
}

// View renders the header on one line.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	left := []string{h.theme.HeaderTitle.Render("< " + h.Title + " >")}
	if h.AgentName != "" {
		left = append(left, h.theme.HeaderSubtitle.Render(util.EscapeTerminal(h.AgentName)))
	}
	leftText := strings.Join(left, " ")

	right := h.renderHealth()
	if h.BaseURL != "" {
		url := util.TruncateWidth(h.BaseURL, maxInt(width/3, 12))
		right = h.theme.Muted.Render(url) + " " + right
	}

	gap := width - lipgloss.Width(leftText) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(width).Render(leftText + strings.Repeat(" ", gap) + right)
}

func (h *Header) renderHealth() string {
	switch h.Health {
	case HealthUp:
		return h.theme.HealthUp.Render(styles.StatusIndicators.Active + " " + h.Health.String())
	case HealthDown:
		return h.theme.HealthDown.Render(styles.StatusIndicators.Error + " " + h.Health.String())
	default:
		return h.theme.Muted.Render(styles.StatusIndicators.Pending + " " + h.Health.String())
	}
}

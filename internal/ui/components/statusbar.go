// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusSubmitting
	StatusApproved
	StatusFlagged
	StatusError
)

// StatusFor maps a verdict phase onto a bar status.
func StatusFor(p verdict.Phase) Status {
	switch p {
	case verdict.PhaseLoading:
		return StatusSubmitting
	case verdict.PhaseApproved:
		return StatusApproved
	case verdict.PhaseFlagged:
		return StatusFlagged
	case verdict.PhaseError:
		return StatusError
	default:
		return StatusReady
	}
}

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusSubmitting:
		return "Processing..."
	case StatusApproved:
		return "Approved"
	case StatusFlagged:
		return "Flagged"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady, StatusApproved:
		return styles.StatusIndicators.Success
	case StatusSubmitting:
		return styles.StatusIndicators.Active
	case StatusFlagged:
		return styles.StatusIndicators.Warning
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom bar: status, key hints and the log count.
type StatusBar struct {
	Status   Status
	LogCount int
	Width    int
	Keys     help.KeyMap
	help     help.Model
	theme    *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme, keys help.KeyMap) *StatusBar {
	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.ShortSeparator = theme.Muted
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDesc
	h.Styles.FullSeparator = theme.Muted
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		Keys:   keys,
		help:   h,
		theme:  theme,
	}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
	s.help.Width = width
}

// SetShowAll switches between the short and the full key help.
func (s *StatusBar) SetShowAll(all bool) {
	s.help.ShowAll = all
}

// ShowAll reports whether the full key help is shown.
func (s *StatusBar) ShowAll() bool {
	return s.help.ShowAll
}

// View renders the status bar.
func (s *StatusBar) View() string {
	status := s.getStatusStyle().Render(s.Status.Icon() + " " + s.Status.String())
	logs := s.theme.Muted.Render("logs: " + strconv.Itoa(s.LogCount))

	var keys string
	if s.Keys != nil {
		if s.help.ShowAll {
			keys = s.help.FullHelpView(s.Keys.FullHelp())
		} else {
			keys = s.help.ShortHelpView(s.Keys.ShortHelp())
		}
	}

	if s.help.ShowAll {
		return s.theme.StatusBar.Width(s.Width).Render(status+"  "+logs) + "\n" + keys
	}

	gap := s.Width - lipgloss.Width(status) - lipgloss.Width(logs) - lipgloss.Width(keys) - 6
	if gap < 1 {
		// Not enough room for hints.
		return s.theme.StatusBar.Width(s.Width).Render(status + "  " + logs)
	}
	line := status + "  " + keys + strings.Repeat(" ", gap) + logs
	return s.theme.StatusBar.Width(s.Width).Render(line)
}

func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusApproved, StatusReady:
		return s.theme.SuccessStyle
	case StatusSubmitting:
		return s.theme.InfoStyle
	case StatusFlagged:
		return s.theme.WarningStyle
	case StatusError:
		return s.theme.ErrorStyle
	default:
		return s.theme.Muted
	}
}

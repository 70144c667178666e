// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/util"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// =============================================================================
// VERDICT CARD
// =============================================================================

// VerdictCard projects a verdict.State onto the terminal.
type VerdictCard struct {
	Width        int
	SpinnerFrame string
	// IncludeThread appends the conversation thread. The app leaves it off
	// and renders the thread in its own viewport.
	IncludeThread bool
	theme         *styles.Theme
}

// NewVerdictCard creates a verdict card.
func NewVerdictCard(theme *styles.Theme) *VerdictCard {
	return &VerdictCard{Width: 80, IncludeThread: true, theme: theme}
}

// SetWidth updates the card width.
func (c *VerdictCard) SetWidth(width int) {
	c.Width = width
}

// View renders s. The form phase renders nothing.
func (c *VerdictCard) View(s verdict.State) string {
	var sections []string

	switch s.Phase {
	case verdict.PhaseLoading:
		sections = append(sections, RenderStages(c.theme, s.Stages, c.SpinnerFrame))
	case verdict.PhaseApproved:
		sections = append(sections, c.renderApproved(s))
	case verdict.PhaseFlagged:
		sections = append(sections, c.renderFlagged(s))
	case verdict.PhaseError:
		sections = append(sections, c.renderError(s))
	default:
		return ""
	}

	if s.Phase.Terminal() {
		if s.ShowGauge {
			sections = append(sections, RenderGauge(c.theme, s.DrawnGauge(), c.meterWidth()))
		}
		if s.ShowScores {
			sections = append(sections, RenderScorecard(c.theme, s, c.meterWidth()))
		}
		if c.IncludeThread && s.ShowThread() {
			sections = append(sections, RenderThread(c.theme, s.Thread, c.Width))
		}
	}

	return strings.Join(sections, "\n\n")
}

func (c *VerdictCard) meterWidth() int {
	w := c.Width - 30
	if w > 40 {
		w = 40
	}
	if w < 10 {
		w = 10
	}
	return w
}

func (c *VerdictCard) headline(s verdict.State, title lipgloss.Style) string {
	t, sub := s.Headline()
	out := title.Render(t)
	if sub != "" {
		out += "\n" + c.theme.Subtitle.Render(util.EscapeTerminal(sub))
	}
	return out
}

func (c *VerdictCard) renderApproved(s verdict.State) string {
	a := s.Approved
	var sb strings.Builder
	sb.WriteString(c.headline(s, c.theme.ApprovedTitle))
	sb.WriteString("\n\n")
	sb.WriteString(c.theme.ResponseText.Render(wordWrap(util.EscapeTerminal(a.ResponseText), maxInt(c.Width-4, 20))))
	sb.WriteString("\n\n")

	badges := []string{c.theme.Badge.Render(a.RevisionBadge)}
	if a.Email != nil {
		style := c.theme.BadgeSuccess
		if !a.Email.Sent {
			style = c.theme.BadgeDanger
		}
		badges = append(badges, " ", style.Render(a.Email.Text))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, badges...))

	if a.Email != nil && a.Email.Detail != "" {
		sb.WriteString("\n")
		sb.WriteString(c.theme.Detail.Render(util.EscapeTerminal(a.Email.Detail)))
	}
	return sb.String()
}

func (c *VerdictCard) renderFlagged(s verdict.State) string {
	f := s.Flagged
	var sb strings.Builder
	sb.WriteString(c.headline(s, c.theme.FlaggedTitle))
	sb.WriteString("\n\n")
	if f.Reason != "" {
		sb.WriteString(c.theme.ResponseText.Render("Reason: " + util.EscapeTerminal(f.Reason)))
		sb.WriteString("\n")
	}
	sb.WriteString(c.theme.BadgeWarning.Render("Category: " + util.EscapeTerminal(f.Category)))
	return sb.String()
}

func (c *VerdictCard) renderError(s verdict.State) string {
	var sb strings.Builder
	sb.WriteString(c.headline(s, c.theme.ErrorTitle))
	sb.WriteString("\n\n")
	sb.WriteString(c.theme.ResponseText.Render(s.Body()))
	return sb.String()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/careerdesk-tui/internal/gauge"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/util"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// =============================================================================
// SCORECARD
// =============================================================================

// ScorecardTitle heads the critic evaluation section.
const ScorecardTitle = "Critic Evaluation"

// DefaultBarWidth is the score bar width used when none is set.
const DefaultBarWidth = 20

// RenderScorecard draws the five score bars, the overall score and the
// critic's feedback. Bar fill follows State.DrawnWidth.
func RenderScorecard(theme *styles.Theme, s verdict.State, barWidth int) string {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}

	var sb strings.Builder
	sb.WriteString(theme.PanelTitle.Render(ScorecardTitle))
	sb.WriteString("\n")

	for i, bar := range s.Scores.Bars {
		sb.WriteString(renderBar(theme, bar, s.DrawnWidth(i), barWidth))
		sb.WriteString("\n")
	}

	sb.WriteString(theme.BarLabel.Render("Overall"))
	sb.WriteString(theme.BubbleLabel.Render(s.Scores.Overall))

	if fb := strings.TrimSpace(s.Scores.Feedback); fb != "" {
		sb.WriteString("\n")
		sb.WriteString(theme.Detail.Render(util.EscapeTerminal(fb)))
	}
	return sb.String()
}

// renderBar draws one labelled bar filled to drawn percent.
func renderBar(theme *styles.Theme, bar gauge.Bar, drawn float64, width int) string {
	fill := styles.RenderProgressBar(width, drawn)
	return theme.BarLabel.Render(bar.Name) +
		theme.ScoreBand(bar.Band).Render(fill) +
		" " + theme.Muted.Render(bar.Label)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/gauge"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// =============================================================================
// CONFIDENCE GAUGE
// =============================================================================

// GaugeTitle heads the confidence section.
const GaugeTitle = "Confidence"

// DefaultMeterWidth is the meter width used when none is set.
const DefaultMeterWidth = 30

// RenderGauge draws the confidence meter. The needle and fill come from g
// as given, so callers pass State.DrawnGauge to respect the engage delay.
func RenderGauge(theme *styles.Theme, g gauge.Gauge, width int) string {
	if width <= 0 {
		width = DefaultMeterWidth
	}
	band := theme.GaugeBand(g.Band)

	meter := styles.RenderMeter(width, g.Fill/gauge.ArcLength*100, g.Needle)
	percent := band.Bold(true).Render(g.PercentText())

	label := util.EscapeTerminal(g.Label)
	category := theme.Muted.Render("category: " + util.EscapeTerminal(g.Category))

	var sb strings.Builder
	sb.WriteString(theme.PanelTitle.Render(GaugeTitle))
	sb.WriteString("\n")
	sb.WriteString(band.Render("[" + meter + "]"))
	sb.WriteString(" ")
	sb.WriteString(percent)
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, "  ", category))
	return sb.String()
}

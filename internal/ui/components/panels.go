// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/careerdesk-tui/internal/panels"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// =============================================================================
// HISTORY AND LOG PANELS
// =============================================================================

// Panel titles.
const (
	HistoryPanelTitle = "Conversation History"
	LogPanelTitle     = "Processing Logs"
	loadingText       = "Loading..."
)

// RenderHistoryPanel draws the per-sender conversation index. Every line is
// truncated to width display columns.
func RenderHistoryPanel(theme *styles.Theme, v panels.HistoryView, width int) string {
	lines := []string{theme.PanelTitle.Render(HistoryPanelTitle)}

	switch {
	case !v.Loaded:
		lines = append(lines, theme.PanelEmpty.Render(loadingText))
	case v.Empty():
		lines = append(lines, theme.PanelEmpty.Render(panels.EmptyHistoryText))
	}

	for _, s := range v.Senders {
		head := util.TruncateWidth(util.EscapeTerminal(s.Email), maxInt(width-16, 8)) + "  " + s.CountText
		lines = append(lines, theme.PanelEmail.Render(head))
		for _, e := range s.Entries {
			glyph := theme.SuccessStyle.Render(e.Glyph)
			if !e.Approved {
				glyph = theme.WarningStyle.Render(e.Glyph)
			}
			when := util.EscapeTerminal(e.Time)
			text := util.TruncateWidth(util.EscapeTerminal(e.Snippet), maxInt(width-runewidth.StringWidth(when)-6, 10))
			lines = append(lines, "  "+glyph+" "+text+"  "+theme.Muted.Render(when))
		}
	}

	return theme.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

// RenderLogPanel draws the processing log, newest first.
func RenderLogPanel(theme *styles.Theme, v panels.LogView, width int) string {
	title := theme.PanelTitle.Render(LogPanelTitle) + theme.Muted.Render(" ("+strconv.Itoa(v.Total)+")")
	lines := []string{title}

	switch {
	case !v.Loaded:
		lines = append(lines, theme.PanelEmpty.Render(loadingText))
	case v.Empty():
		lines = append(lines, theme.PanelEmpty.Render(panels.EmptyLogsText))
	}

	for _, l := range v.Entries {
		badge := theme.SuccessStyle.Render("[" + l.Badge + "]")
		if !l.Approved {
			badge = theme.WarningStyle.Render("[" + l.Badge + "]")
		}
		head := util.EscapeTerminal(l.Sender) + " - " + util.EscapeTerminal(l.Subject)
		lines = append(lines, theme.PanelEmail.Render(util.TruncateWidth(head, maxInt(width-4, 10))))

		meta := []string{util.EscapeTerminal(l.Time)}
		for _, m := range []string{l.Score, l.Conf, l.Revisions} {
			if m != "" {
				meta = append(meta, m)
			}
		}
		lines = append(lines, badge+" "+theme.Muted.Render(strings.Join(meta, "  ")))
	}

	return theme.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

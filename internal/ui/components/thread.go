// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/thread"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// =============================================================================
// CONVERSATION THREAD
// =============================================================================

// ThreadTitle heads the conversation section.
const ThreadTitle = "Conversation History"

// RenderThread draws every bubble, oldest first. Employer bubbles hug the
// left edge; agent and flagged bubbles the right. All service text passes
// through util.EscapeTerminal before styling.
func RenderThread(theme *styles.Theme, bubbles []thread.Bubble, width int) string {
	if len(bubbles) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	parts := make([]string, 0, len(bubbles)+1)
	parts = append(parts, theme.PanelTitle.Render(ThreadTitle))
	for _, b := range bubbles {
		parts = append(parts, RenderBubble(theme, b, width))
	}
	return strings.Join(parts, "\n")
}

// RenderBubble draws one bubble.
func RenderBubble(theme *styles.Theme, b thread.Bubble, width int) string {
	style := bubbleStyle(theme, b.Kind)

	// Border, padding and margin take eight columns.
	inner := maxInt(width-8, 10)
	text := wordWrap(util.EscapeTerminal(b.Text), inner)
	header := theme.BubbleLabel.Render(util.EscapeTerminal(b.Label))
	if b.Time != "" {
		header += "  " + theme.BubbleTime.Render(util.EscapeTerminal(b.Time))
	}
	body := header + "\n" + text

	rendered := style.Width(bubbleWidth(body, inner) + 2).Render(body)
	if b.Kind == thread.Employer {
		return rendered
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, rendered)
}

func bubbleStyle(theme *styles.Theme, kind thread.Kind) lipgloss.Style {
	switch kind {
	case thread.Agent:
		return theme.AgentBubble
	case thread.Flagged:
		return theme.FlaggedBubble
	default:
		return theme.EmployerBubble
	}
}

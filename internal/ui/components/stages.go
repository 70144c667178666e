// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/careerdesk-tui/internal/stages"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
)

// =============================================================================
// STAGE LIST
// =============================================================================

// RenderStages draws the five pipeline stages with their indicators and a
// "n/5" counter. spinnerFrame decorates the active stage; it may be empty.
func RenderStages(theme *styles.Theme, board stages.Board, spinnerFrame string) string {
	var sb strings.Builder

	sb.WriteString(theme.PanelTitle.Render("Processing"))
	sb.WriteString(theme.Muted.Render(" " + strconv.Itoa(board.DoneCount()) + "/" + strconv.Itoa(stages.Count)))

	for _, st := range board.Stages() {
		sb.WriteString("\n")
		sb.WriteString(renderStage(theme, st.Name, st.Status, spinnerFrame))
	}
	return sb.String()
}

func renderStage(theme *styles.Theme, name string, status stages.Status, frame string) string {
	switch status {
	case stages.Done:
		return theme.StageDone.Render(styles.StatusIndicators.Success + " " + name)
	case stages.Active:
		line := styles.StatusIndicators.Active + " " + name
		if frame != "" {
			line += " " + frame
		}
		return theme.StageActive.Render(line)
	default:
		return theme.StagePending.Render(styles.StatusIndicators.Pending + " " + name)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/careerdesk-tui/internal/ui/components"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// View renders the screen: header, main area, panels, toasts, status bar.
func (m Model) View() string {
	sections := []string{m.header.View(), m.renderMain()}

	if m.panelsOpen() {
		panels := m.renderPanels()
		if m.theme.GetLayoutMode() == styles.LayoutWide {
			sections[1] = lipgloss.JoinHorizontal(lipgloss.Top, sections[1], panels)
		} else {
			sections = append(sections, panels)
		}
	}

	if toasts := m.toasts.View(m.theme, m.width); toasts != "" {
		sections = append(sections, toasts)
	}

	m.statusBar.Status = components.StatusFor(m.state.Phase)
	m.statusBar.LogCount = m.panels.LogCount()
	sections = append(sections, m.statusBar.View())

	return m.theme.App.Render(strings.Join(sections, "\n"))
}

func (m Model) renderMain() string {
	width := m.mainWidth()
	style := m.theme.Container.Width(width)

	switch m.state.Phase {
	case verdict.PhaseForm:
		return style.Render(m.form.View(m.theme, m.busy))

	case verdict.PhaseLoading:
		m.card.SpinnerFrame = m.spinner.Frame()
		return style.Render(m.card.View(m.state) + "\n\n" + m.spinner.View(m.theme))
	}

	m.card.SpinnerFrame = ""
	body := m.card.View(m.state)
	if m.state.ShowThread() {
		body += "\n\n" + m.thread.View()
	}
	body += "\n" + m.theme.Muted.Render("esc: new message  ctrl+e: export")
	return style.Render(body)
}

func (m Model) renderPanels() string {
	width := m.width
	if m.theme.GetLayoutMode() == styles.LayoutWide {
		width = m.width - m.mainWidth()
	}

	var parts []string
	if m.panels.HistoryOpen {
		parts = append(parts, components.RenderHistoryPanel(m.theme, m.panels.History, width-2))
	}
	if m.panels.LogsOpen {
		parts = append(parts, components.RenderLogPanel(m.theme, m.panels.Logs, width-2))
	}
	return strings.Join(parts, "\n")
}

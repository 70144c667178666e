// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/export"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// =============================================================================
// COMMANDS
// =============================================================================

// submitCmd posts sub and reports the outcome for gen. The client bounds
// the call with its configured timeout.
func (m Model) submitCmd(gen uint64, sub api.Submission) tea.Cmd {
	client, ctx := m.client, m.ctx // Capture before closure
	return func() tea.Msg {
		payload, err := client.SubmitMessage(ctx, sub)
		return submitResultMsg{Gen: gen, Payload: payload, Err: err}
	}
}

// engageCmds schedule the deferred gauge and bar fills for gen.
func (m Model) engageCmds(gen uint64) []tea.Cmd {
	return []tea.Cmd{
		tea.Tick(m.gaugeDelay, func(time.Time) tea.Msg { return verdict.GaugeEngaged{Gen: gen} }),
		tea.Tick(m.barDelay, func(time.Time) tea.Msg { return verdict.BarsEngaged{Gen: gen} }),
	}
}

// checkHealth probes the service for the header indicator.
func (m Model) checkHealth() tea.Cmd {
	client, parent := m.client, m.ctx
	return func() tea.Msg {
		if client == nil {
			return healthMsg{Err: context.Canceled}
		}
		ctx, cancel := context.WithTimeout(parent, healthTimeout)
		defer cancel()

		resp, err := client.Health(ctx)
		return healthMsg{Resp: resp, Err: err}
	}
}

// exportCmd writes s as HTML into the export directory.
func (m Model) exportCmd(s verdict.State) tea.Cmd {
	opts := export.DefaultOptions()
	opts.OutputDir = m.exportDir
	opts.AgentName = m.agentName
	if !m.theme.IsDark {
		opts.Theme = "light"
	}
	return func() tea.Msg {
		path, err := export.ExportHTML(s, opts)
		return exportDoneMsg{Path: path, Err: err}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/panels"
	"github.com/jeranaias/careerdesk-tui/internal/stages"
	"github.com/jeranaias/careerdesk-tui/internal/ui/components"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case stages.TickMsg:
		m.state = m.reducer.Reduce(m.state, verdict.StageAdvanced{Tick: msg})
		return m, nil

	case verdict.GaugeEngaged:
		m.state = m.reducer.Reduce(m.state, msg)
		return m, nil

	case verdict.BarsEngaged:
		m.state = m.reducer.Reduce(m.state, msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case panels.HistoryMsg, panels.LogsMsg:
		var cmd tea.Cmd
		m.panels, cmd = m.panels.Update(msg)
		m.statusBar.LogCount = m.panels.LogCount()
		return m, cmd

	case healthMsg:
		return m.handleHealth(msg)

	case exportDoneMsg:
		return m.handleExportDone(msg)

	case components.ToastExpiredMsg:
		m.toasts = m.toasts.Dismiss(msg.ID)
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)
	}

	// Cursor blink and anything else the focused field cares about.
	if m.state.Phase == verdict.PhaseForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.statusBar.SetShowAll(!m.statusBar.ShowAll())
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case key.Matches(msg, m.keys.ToggleHistory):
		var cmd tea.Cmd
		m.panels, cmd = m.panels.ToggleHistory()
		resized, _ := m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return resized, cmd

	case key.Matches(msg, m.keys.ToggleLogs):
		var cmd tea.Cmd
		m.panels, cmd = m.panels.ToggleLogs()
		resized, _ := m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return resized, cmd

	case key.Matches(msg, m.keys.ClearHistory):
		return m, m.panels.ClearHistory()

	case key.Matches(msg, m.keys.ClearLogs):
		return m, m.panels.ClearLogs()

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.panels.Refresh(), m.checkHealth())
	}

	switch m.state.Phase {
	case verdict.PhaseForm:
		return m.handleFormKey(msg)
	case verdict.PhaseLoading:
		if key.Matches(msg, m.keys.Back) {
			return m.reset()
		}
	default:
		return m.handleVerdictKey(msg)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.Next()
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.Prev()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleVerdictKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.reset()
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd(m.state)
	case key.Matches(msg, m.keys.ScrollUp):
		m.thread.HalfViewUp()
	case key.Matches(msg, m.keys.ScrollDown):
		m.thread.HalfViewDown()
	}
	return m, nil
}

// =============================================================================
// SUBMISSION LIFECYCLE
// =============================================================================

// submit validates the form, closes the gate and starts the stage timers,
// the spinner and the request together.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		m.logger.Debug("submit ignored, request in flight")
		return m, nil
	}

	sub := m.form.Submission()
	if err := sub.Validate(); err != nil {
		var se *api.SubmissionError
		if errors.As(err, &se) && len(se.Missing) > 0 {
			m.logger.Debug("submission incomplete", zap.Strings("missing", se.Missing))
			return m, m.form.Focus(FieldIndex(se.Missing[0]))
		}
		return m, nil
	}

	m.busy = true
	m.state = m.reducer.Reduce(m.state, verdict.Submitted{Submission: sub})
	gen := m.state.Gen
	m.form.Blur()
	m.logger.Info("submitting message",
		zap.Uint64("gen", gen),
		zap.String("sender", m.state.Submission.SenderEmail))

	cmds := stages.Schedule(gen, m.timeline)
	cmds = append(cmds, m.spinner.Start(), m.submitCmd(gen, m.state.Submission))
	return m, tea.Batch(cmds...)
}

// handleSubmitResult opens the gate, whatever the outcome, and hands the
// result to the reducer. Results from an earlier generation change nothing
// else on screen.
func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.spinner.Stop()

	prev := m.state
	if msg.Err != nil {
		m.state = m.reducer.Reduce(m.state, verdict.Failed{Gen: msg.Gen, Err: msg.Err})
	} else {
		m.state = m.reducer.Reduce(m.state, verdict.Resolved{Gen: msg.Gen, Payload: msg.Payload})
	}

	var cmds []tea.Cmd
	if msg.Err == nil {
		cmds = append(cmds, m.panels.AfterSubmission())
	}

	if prev.Phase != verdict.PhaseLoading || prev.Gen != msg.Gen {
		m.logger.Debug("stale submission result dropped",
			zap.Uint64("gen", msg.Gen), zap.Uint64("current", prev.Gen))
		return m, tea.Batch(cmds...)
	}

	if msg.Err != nil {
		m.logger.Warn("submission failed", zap.Uint64("gen", msg.Gen), zap.Error(msg.Err))
	} else {
		m.logger.Info("submission resolved",
			zap.Uint64("gen", msg.Gen), zap.Stringer("verdict", m.state.Phase))
	}

	cmds = append(cmds, m.engageCmds(msg.Gen)...)
	m.refreshThread()
	return m, tea.Batch(cmds...)
}

// reset returns to the form. The gate stays as it is: a request still in
// flight keeps it closed until it resolves.
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.state = m.reducer.Reduce(m.state, verdict.Reset{})
	m.spinner.Stop()
	m.refreshThread()
	return m, m.form.Focus(m.form.Focused())
}

// =============================================================================
// SERVICE RESULTS
// =============================================================================

func (m Model) handleHealth(msg healthMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("health check failed", zap.Error(msg.Err))
		m.header.SetHealth(components.HealthDown)
		return m, nil
	}
	m.header.SetHealth(components.HealthUp)
	return m, nil
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.Err != nil {
		m.logger.Warn("export failed", zap.Error(msg.Err))
		m.toasts, cmd = m.toasts.Add(components.ToastKindError, "Export failed: "+msg.Err.Error())
		return m, cmd
	}
	m.logger.Info("verdict exported", zap.String("path", msg.Path))
	m.toasts, cmd = m.toasts.Add(components.ToastKindSuccess, "Exported to "+msg.Path)
	return m, cmd
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.Config == nil {
		m.logger.Warn("config reload failed, keeping current settings", zap.Error(msg.Err))
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Add(components.ToastKindWarning, "Config reload failed")
		return m, cmd
	}
	m.applyConfig(msg.Config)
	m.refreshThread()
	m.logger.Info("config reloaded")

	var cmd tea.Cmd
	m.toasts, cmd = m.toasts.Add(components.ToastKindStatus, "Config reloaded")
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width > 0 {
		m.width = msg.Width
	}
	if msg.Height > 0 {
		m.height = msg.Height
	}
	m.theme.SetSize(m.width, m.height)

	main := m.mainWidth()
	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.card.SetWidth(main)
	m.form.SetWidth(main - 2)
	m.thread.Width = main
	m.refreshThread()
	return m, nil
}

// mainWidth is the width left for the form or verdict. Wide terminals put
// open panels beside it; narrower ones stack them below.
func (m Model) mainWidth() int {
	if m.panelsOpen() && m.theme.GetLayoutMode() == styles.LayoutWide {
		return m.width * 3 / 5
	}
	return m.width
}

func (m Model) panelsOpen() bool {
	return m.panels.HistoryOpen || m.panels.LogsOpen
}

// refreshThread re-renders the thread into its viewport, scrolled to the
// newest bubble.
func (m *Model) refreshThread() {
	if !m.state.ShowThread() {
		m.thread.SetContent("")
		return
	}
	m.thread.SetContent(components.RenderThread(m.theme, m.state.Thread, m.thread.Width))
	m.thread.GotoBottom()
}

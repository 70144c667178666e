// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panels keeps the history and log views in step with the server.
package panels

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/careerdesk-tui/internal/api"
)

// Source is the slice of the API client the panels need.
type Source interface {
	Conversations(ctx context.Context) (*api.ConversationsResponse, error)
	ClearConversations(ctx context.Context) error
	Logs(ctx context.Context) (*api.LogsResponse, error)
	ClearLogs(ctx context.Context) error
}

// Op says what produced a panel message.
type Op int

const (
	OpFetch Op = iota
	OpClear
)

// String returns the operation name for logs.
func (o Op) String() string {
	if o == OpClear {
		return "clear"
	}
	return "fetch"
}

// =============================================================================
// MESSAGES
// =============================================================================

// HistoryMsg carries a conversations fetch (possibly after a clear).
type HistoryMsg struct {
	Op   Op
	Resp *api.ConversationsResponse
	Err  error
}

// LogsMsg carries a logs fetch (possibly after a clear).
type LogsMsg struct {
	Op   Op
	Resp *api.LogsResponse
	Err  error
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	// Context bounds every request; cancelled on shutdown.
	Context context.Context
	// SnippetLength is the history preview budget in runes.
	SnippetLength int
	// Location is used for timestamps (default time.Local).
	Location *time.Location
	Logger   *zap.Logger
}

// Model holds both panels. Results apply in arrival order, so concurrent
// fetches resolve last-write-wins.
type Model struct {
	src  Source
	opts Options

	HistoryOpen bool
	LogsOpen    bool
	History     HistoryView
	Logs        LogView
}

// New creates the panels model.
func New(src Source, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.SnippetLength <= 0 {
		opts.SnippetLength = DefaultSnippetLength
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return Model{src: src, opts: opts}
}

// SetSnippetLength changes the preview budget for subsequent fetches.
func (m Model) SetSnippetLength(n int) Model {
	if n > 0 {
		m.opts.SnippetLength = n
	}
	return m
}

// LogCount is the total shown next to the log toggle.
func (m Model) LogCount() int {
	return m.Logs.Total
}

// ToggleHistory opens or closes the history panel. Opening fetches.
func (m Model) ToggleHistory() (Model, tea.Cmd) {
	m.HistoryOpen = !m.HistoryOpen
	if m.HistoryOpen {
		return m, m.FetchHistory()
	}
	return m, nil
}

// ToggleLogs opens or closes the log panel. Opening fetches.
func (m Model) ToggleLogs() (Model, tea.Cmd) {
	m.LogsOpen = !m.LogsOpen
	if m.LogsOpen {
		return m, m.FetchLogs()
	}
	return m, nil
}

// Refresh re-fetches every open panel.
func (m Model) Refresh() tea.Cmd {
	var cmds []tea.Cmd
	if m.HistoryOpen {
		cmds = append(cmds, m.FetchHistory())
	}
	if m.LogsOpen {
		cmds = append(cmds, m.FetchLogs())
	}
	return tea.Batch(cmds...)
}

// AfterSubmission refreshes the log count and any open history panel.
func (m Model) AfterSubmission() tea.Cmd {
	cmds := []tea.Cmd{m.FetchLogs()}
	if m.HistoryOpen {
		cmds = append(cmds, m.FetchHistory())
	}
	return tea.Batch(cmds...)
}

// FetchHistory loads the conversation index.
func (m Model) FetchHistory() tea.Cmd {
	ctx, src := m.opts.Context, m.src
	return func() tea.Msg {
		resp, err := src.Conversations(ctx)
		return HistoryMsg{Op: OpFetch, Resp: resp, Err: err}
	}
}

// FetchLogs loads the processing log.
func (m Model) FetchLogs() tea.Cmd {
	ctx, src := m.opts.Context, m.src
	return func() tea.Msg {
		resp, err := src.Logs(ctx)
		return LogsMsg{Op: OpFetch, Resp: resp, Err: err}
	}
}

// ClearHistory deletes every conversation, then fetches the (now empty)
// index so the panel reflects what the server holds.
func (m Model) ClearHistory() tea.Cmd {
	ctx, src := m.opts.Context, m.src
	return func() tea.Msg {
		if err := src.ClearConversations(ctx); err != nil {
			return HistoryMsg{Op: OpClear, Err: fmt.Errorf("clear conversations: %w", err)}
		}
		resp, err := src.Conversations(ctx)
		return HistoryMsg{Op: OpClear, Resp: resp, Err: err}
	}
}

// ClearLogs deletes the processing log, then fetches it again.
func (m Model) ClearLogs() tea.Cmd {
	ctx, src := m.opts.Context, m.src
	return func() tea.Msg {
		if err := src.ClearLogs(ctx); err != nil {
			return LogsMsg{Op: OpClear, Err: fmt.Errorf("clear logs: %w", err)}
		}
		resp, err := src.Logs(ctx)
		return LogsMsg{Op: OpClear, Resp: resp, Err: err}
	}
}

// Update applies panel messages. Failures are logged and change nothing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case HistoryMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn("history panel refresh failed",
				zap.Stringer("op", msg.Op), zap.Error(msg.Err))
			return m, nil
		}
		m.History = BuildHistory(msg.Resp, m.opts.SnippetLength, m.opts.Location)

	case LogsMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn("log panel refresh failed",
				zap.Stringer("op", msg.Op), zap.Error(msg.Err))
			return m, nil
		}
		m.Logs = BuildLogs(msg.Resp, m.opts.Location)
	}
	return m, nil
}

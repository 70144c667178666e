// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/careerdesk-tui/internal/api"
)

// fakeSource records calls and serves canned data.
type fakeSource struct {
	calls []string
	convs *api.ConversationsResponse
	logs  *api.LogsResponse
	err   error
}

func (f *fakeSource) Conversations(context.Context) (*api.ConversationsResponse, error) {
	f.calls = append(f.calls, "GET conversations")
	if f.err != nil {
		return nil, f.err
	}
	return f.convs, nil
}

func (f *fakeSource) ClearConversations(context.Context) error {
	f.calls = append(f.calls, "DELETE conversations")
	if f.err != nil {
		return f.err
	}
	f.convs = &api.ConversationsResponse{Conversations: map[string][]api.Exchange{}}
	return nil
}

func (f *fakeSource) Logs(context.Context) (*api.LogsResponse, error) {
	f.calls = append(f.calls, "GET logs")
	if f.err != nil {
		return nil, f.err
	}
	return f.logs, nil
}

func (f *fakeSource) ClearLogs(context.Context) error {
	f.calls = append(f.calls, "DELETE logs")
	if f.err != nil {
		return f.err
	}
	f.logs = &api.LogsResponse{}
	return nil
}

func sampleSource() *fakeSource {
	long := strings.Repeat("x", 95)
	return &fakeSource{
		convs: &api.ConversationsResponse{
			TotalEmployers: 2,
			Conversations: map[string][]api.Exchange{
				"zed@beta.io": {
					{EmployerMessage: "Quick question", AgentResponse: "Sure", Status: api.StatusApproved, Timestamp: "2025-02-01T08:00:00"},
				},
				"ada@acme.io": {
					{EmployerMessage: long, AgentResponse: "Thanks", Status: api.StatusApproved, Timestamp: "2025-01-01T10:00:00"},
					{EmployerMessage: "What salary?", AgentResponse: "", Status: api.StatusFlaggedUnknown, Timestamp: "2025-01-02T10:00:00"},
				},
			},
		},
		logs: &api.LogsResponse{
			Total: 2,
			Logs: []api.LogEntry{
				{
					SenderName: "Ada", Subject: "Role", Status: api.StatusApproved, RevisionCount: 1,
					Evaluation: &api.Evaluation{OverallScore: 8.56},
					Confidence: &api.Confidence{Confidence: 0.873},
					Timestamp:  "2025-01-02T10:00:00",
				},
				{SenderName: "Zed", Subject: "Salary", Status: api.StatusFlaggedUnknown, Timestamp: "2025-01-01T10:00:00"},
			},
		},
	}
}

func newModel(src Source, logger *zap.Logger) Model {
	return New(src, Options{Location: time.UTC, Logger: logger})
}

// run executes a command and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func TestBuildHistory(t *testing.T) {
	view := BuildHistory(sampleSource().convs, 80, time.UTC)
	require.Len(t, view.Senders, 2)

	ada := view.Senders[0]
	assert.Equal(t, "ada@acme.io", ada.Email, "senders are sorted by email")
	assert.Equal(t, "2 messages", ada.CountText)
	require.Len(t, ada.Entries, 2)
	assert.Equal(t, strings.Repeat("x", 80)+"...", ada.Entries[0].Snippet)
	assert.Equal(t, GlyphApproved, ada.Entries[0].Glyph)
	assert.Equal(t, GlyphFlagged, ada.Entries[1].Glyph)

	assert.Equal(t, "1 message", view.Senders[1].CountText)
}

func TestBuildHistory_Empty(t *testing.T) {
	view := BuildHistory(&api.ConversationsResponse{}, 80, time.UTC)
	assert.True(t, view.Loaded)
	assert.True(t, view.Empty())
}

func TestBuildLogs(t *testing.T) {
	view := BuildLogs(sampleSource().logs, time.UTC)
	require.Len(t, view.Entries, 2)
	assert.Equal(t, 2, view.Total)

	first := view.Entries[0]
	assert.Equal(t, "Ada", first.Sender)
	assert.Equal(t, BadgeApproved, first.Badge)
	assert.Equal(t, "Score: 8.6/10", first.Score)
	assert.Equal(t, "Conf: 87%", first.Conf)
	assert.Equal(t, "1 revision", first.Revisions)
	assert.Equal(t, "Jan 2, 2025 10:00 AM", first.Time)

	second := view.Entries[1]
	assert.Equal(t, BadgeFlagged, second.Badge)
	assert.Empty(t, second.Score)
	assert.Empty(t, second.Conf)
	assert.Empty(t, second.Revisions, "zero revisions are not shown")
}

func TestToggleHistory_FetchesOnOpen(t *testing.T) {
	src := sampleSource()
	m := newModel(src, nil)

	m, cmd := m.ToggleHistory()
	require.True(t, m.HistoryOpen)
	m = run(t, m, cmd)
	assert.Len(t, m.History.Senders, 2)

	m, cmd = m.ToggleHistory()
	assert.False(t, m.HistoryOpen)
	assert.Nil(t, cmd, "closing does not fetch")
	assert.Equal(t, []string{"GET conversations"}, src.calls)
}

func TestClearLogs_DeletesThenRefetches(t *testing.T) {
	src := sampleSource()
	m := newModel(src, nil)

	m = run(t, m, m.FetchLogs())
	require.Equal(t, 2, m.LogCount())

	m = run(t, m, m.ClearLogs())
	assert.Equal(t, []string{"GET logs", "DELETE logs", "GET logs"}, src.calls)
	assert.Equal(t, 0, m.LogCount())
	assert.True(t, m.Logs.Empty())
}

func TestClearHistory_DeletesThenRefetches(t *testing.T) {
	src := sampleSource()
	m := newModel(src, nil)
	m = run(t, m, m.FetchHistory())
	m = run(t, m, m.ClearHistory())

	assert.Equal(t, []string{"GET conversations", "DELETE conversations", "GET conversations"}, src.calls)
	assert.True(t, m.History.Empty())
}

func TestFailureKeepsSnapshotAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := sampleSource()
	m := newModel(src, zap.New(core))

	m = run(t, m, m.FetchLogs())
	m = run(t, m, m.FetchHistory())
	beforeLogs, beforeHistory := m.Logs, m.History

	src.err = errors.New("connection refused")
	m = run(t, m, m.FetchLogs())
	m = run(t, m, m.ClearHistory())

	assert.Equal(t, beforeLogs, m.Logs, "log panel keeps its last snapshot")
	assert.Equal(t, beforeHistory, m.History, "history panel keeps its last snapshot")

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "log panel refresh failed", entries[0].Message)
	assert.Equal(t, "history panel refresh failed", entries[1].Message)
	assert.Equal(t, "clear", entries[1].ContextMap()["op"])
}

func TestLastWriteWins(t *testing.T) {
	m := newModel(sampleSource(), nil)
	older := LogsMsg{Resp: &api.LogsResponse{Total: 5, Logs: make([]api.LogEntry, 5)}}
	newer := LogsMsg{Resp: &api.LogsResponse{Total: 1, Logs: make([]api.LogEntry, 1)}}

	m, _ = m.Update(older)
	m, _ = m.Update(newer)
	assert.Equal(t, 1, m.LogCount())
	assert.Len(t, m.Logs.Entries, 1)
}

func TestAfterSubmission_RefreshesOpenPanels(t *testing.T) {
	src := sampleSource()
	m := newModel(src, nil)
	assert.NotNil(t, m.AfterSubmission())

	m.HistoryOpen = true
	assert.NotNil(t, m.AfterSubmission())
	assert.NotNil(t, m.Refresh())
}

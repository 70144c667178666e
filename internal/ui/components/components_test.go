// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/gauge"
	"github.com/jeranaias/careerdesk-tui/internal/panels"
	"github.com/jeranaias/careerdesk-tui/internal/stages"
	"github.com/jeranaias/careerdesk-tui/internal/thread"
	"github.com/jeranaias/careerdesk-tui/internal/ui/styles"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

func testSubmission() api.Submission {
	return api.Submission{SenderName: "Ada", SenderEmail: "ada@acme.io", Subject: "Role", Message: "Open to a chat?"}
}

// resolved drives a fresh state through submit and resolution.
func resolved(t *testing.T, p *api.ResponsePayload) verdict.State {
	t.Helper()
	s := verdict.Reduce(verdict.Initial(), verdict.Submitted{Submission: testSubmission()})
	s = verdict.Reduce(s, verdict.Resolved{Gen: s.Gen, Payload: p})
	require.True(t, s.Phase.Terminal())
	return s
}

func approvedPayload() *api.ResponsePayload {
	return &api.ResponsePayload{
		Status:        api.StatusApproved,
		ResponseText:  "Happy to talk.",
		RevisionCount: 2,
		Evaluation: &api.Evaluation{
			ToneScore: 9, ClarityScore: 8, CompletenessScore: 7, SafetyScore: 10, RelevanceScore: 5,
			OverallScore: 7.8, Feedback: "Solid reply",
		},
		Confidence:  &api.Confidence{Confidence: 0.87, Category: "safe"},
		EmailResult: &api.EmailResult{Success: true, Message: "Email sent successfully"},
		ConversationHistory: []api.Exchange{
			{EmployerMessage: "Open to a chat?", AgentResponse: "Happy to talk.", Status: api.StatusApproved},
		},
	}
}

// =============================================================================
// GAUGE AND SCORECARD
// =============================================================================

func TestRenderGauge(t *testing.T) {
	theme := styles.NewTheme()
	g := gauge.FromConfidence(api.Confidence{Confidence: 0.5, Category: "ambiguous"})

	out := RenderGauge(theme, g, 10)
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Message intent is ambiguous")
	assert.Contains(t, out, "category: ambiguous")
	assert.Contains(t, out, "[#####|----]")
}

func TestRenderScorecard_FillsOnlyWhenEngaged(t *testing.T) {
	theme := styles.NewTheme()
	s := resolved(t, approvedPayload())
	require.True(t, s.ShowScores)

	before := RenderScorecard(theme, s, 10)
	assert.Contains(t, before, "Tone")
	assert.Contains(t, before, "9/10")
	assert.Contains(t, before, "7.8/10")
	assert.Contains(t, before, "Solid reply")
	assert.NotContains(t, before, "#", "bars stay empty until engaged")

	s = verdict.Reduce(s, verdict.BarsEngaged{Gen: s.Gen})
	after := RenderScorecard(theme, s, 10)
	assert.Contains(t, after, "#########-", "tone 9 fills nine of ten cells")
	assert.Contains(t, after, "#####-----", "relevance 5 fills half")
}

// =============================================================================
// STAGES
// =============================================================================

func TestRenderStages(t *testing.T) {
	theme := styles.NewTheme()
	board := stages.NewBoard().
		Apply(0, stages.Activate).
		Apply(0, stages.Complete).
		Apply(1, stages.Activate)

	out := RenderStages(theme, board, "/")
	assert.Contains(t, out, "1/5")
	assert.Contains(t, out, styles.StatusIndicators.Success+" "+stages.Names[0])
	assert.Contains(t, out, styles.StatusIndicators.Active+" "+stages.Names[1]+" /")
	assert.Contains(t, out, styles.StatusIndicators.Pending+" "+stages.Names[4])
}

// =============================================================================
// THREAD
// =============================================================================

func TestRenderThread_EscapesServiceText(t *testing.T) {
	theme := styles.NewTheme()
	bubbles := []thread.Bubble{
		{Kind: thread.Employer, Label: thread.EmployerLabel, Text: "hi \x1b[31mred", Time: "Jan 2, 2025 10:00 AM"},
		{Kind: thread.Flagged, Label: thread.FlaggedLabel, Text: thread.FlaggedText},
	}

	out := RenderThread(theme, bubbles, 100)
	assert.Contains(t, out, ThreadTitle)
	assert.Contains(t, out, `\x1b[31mred`)
	assert.NotContains(t, out, "\x1b[31mred")
	assert.Contains(t, out, thread.FlaggedText)
	assert.Contains(t, out, "Jan 2, 2025 10:00 AM")
}

func TestRenderThread_EmptyIsBlank(t *testing.T) {
	assert.Empty(t, RenderThread(styles.NewTheme(), nil, 80))
}

// =============================================================================
// VERDICT CARD
// =============================================================================

func TestVerdictCard_Approved(t *testing.T) {
	card := NewVerdictCard(styles.NewTheme())
	card.SetWidth(100)

	out := card.View(resolved(t, approvedPayload()))
	assert.Contains(t, out, verdict.ApprovedTitle)
	assert.Contains(t, out, "Happy to talk.")
	assert.Contains(t, out, "2 revisions")
	assert.Contains(t, out, verdict.EmailSentText)
	assert.Contains(t, out, "87%")
	assert.Contains(t, out, ScorecardTitle)
	assert.Contains(t, out, ThreadTitle)

	card.IncludeThread = false
	assert.NotContains(t, card.View(resolved(t, approvedPayload())), ThreadTitle)
}

func TestVerdictCard_Flagged(t *testing.T) {
	card := NewVerdictCard(styles.NewTheme())
	out := card.View(resolved(t, &api.ResponsePayload{
		Status:           api.StatusFlaggedUnknown,
		UnknownDetection: &api.UnknownDetection{Reason: "Salary talk", Category: "salary"},
	}))

	assert.Contains(t, out, verdict.FlaggedTitle)
	assert.Contains(t, out, "Reason: Salary talk")
	assert.Contains(t, out, "Category: salary")
	assert.NotContains(t, out, ScorecardTitle)
}

func TestVerdictCard_Error(t *testing.T) {
	card := NewVerdictCard(styles.NewTheme())
	s := verdict.Reduce(verdict.Initial(), verdict.Submitted{Submission: testSubmission()})
	s = verdict.Reduce(s, verdict.Failed{Gen: s.Gen, Err: errors.New("boom")})

	out := card.View(s)
	assert.Contains(t, out, verdict.ErrorTitle)
	assert.Contains(t, out, verdict.ErrorBody)
}

func TestVerdictCard_LoadingAndForm(t *testing.T) {
	card := NewVerdictCard(styles.NewTheme())
	assert.Empty(t, card.View(verdict.Initial()))

	s := verdict.Reduce(verdict.Initial(), verdict.Submitted{Submission: testSubmission()})
	assert.Contains(t, card.View(s), "0/5")
}

// =============================================================================
// PANELS
// =============================================================================

func TestRenderPanels_EmptyStates(t *testing.T) {
	theme := styles.NewTheme()

	assert.Contains(t, RenderHistoryPanel(theme, panels.HistoryView{}, 80), "Loading...")
	assert.Contains(t, RenderHistoryPanel(theme, panels.HistoryView{Loaded: true}, 80), panels.EmptyHistoryText)
	assert.Contains(t, RenderLogPanel(theme, panels.LogView{Loaded: true}, 80), panels.EmptyLogsText)
}

func TestRenderLogPanel(t *testing.T) {
	view := panels.LogView{Loaded: true, Total: 1, Entries: []panels.LogLine{{
		Sender: "Ada", Subject: "Role", Time: "Jan 2, 2025 10:00 AM",
		Approved: true, Badge: panels.BadgeApproved, Score: "Score: 8.6/10", Conf: "Conf: 87%",
	}}}

	out := RenderLogPanel(styles.NewTheme(), view, 80)
	assert.Contains(t, out, LogPanelTitle+" (1)")
	assert.Contains(t, out, "Ada - Role")
	assert.Contains(t, out, "[Approved]")
	assert.Contains(t, out, "Score: 8.6/10  Conf: 87%")
}

func TestRenderPanels_EscapeServiceTimestamps(t *testing.T) {
	const osc = "\x1b]0;pwned\x07"
	theme := styles.NewTheme()

	history := panels.BuildHistory(&api.ConversationsResponse{
		TotalEmployers: 1,
		Conversations: map[string][]api.Exchange{
			"ada@acme.io": {{EmployerMessage: "Open to a chat?", Status: api.StatusFlaggedUnknown, Timestamp: osc}},
		},
	}, 80, time.UTC)
	logs := panels.BuildLogs(&api.LogsResponse{Total: 1, Logs: []api.LogEntry{{
		Timestamp: osc, SenderName: "Ada", Subject: "Role", Status: api.StatusFlaggedUnknown,
	}}}, time.UTC)

	for name, out := range map[string]string{
		"history": RenderHistoryPanel(theme, history, 80),
		"logs":    RenderLogPanel(theme, logs, 80),
	} {
		assert.NotContains(t, out, "\x1b]0;", name)
		assert.NotContains(t, out, "\x07", name)
		assert.Contains(t, out, `\x1b]0;pwned\x07`, name)
	}
}

// =============================================================================
// HEADER, STATUS BAR, TOASTS
// =============================================================================

func TestHeaderView(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.AgentName = "Career Agent"
	h.SetWidth(80)
	assert.Contains(t, h.View(), "checking")

	h.SetHealth(HealthDown)
	out := h.View()
	assert.Contains(t, out, "careerdesk")
	assert.Contains(t, out, "Career Agent")
	assert.Contains(t, out, "offline")
}

type testKeys struct{ submit key.Binding }

func (k testKeys) ShortHelp() []key.Binding  { return []key.Binding{k.submit} }
func (k testKeys) FullHelp() [][]key.Binding { return [][]key.Binding{{k.submit}} }

func TestStatusBarView(t *testing.T) {
	keys := testKeys{submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "submit"))}
	bar := NewStatusBar(styles.NewTheme(), keys)
	bar.SetWidth(100)
	bar.LogCount = 3
	bar.Status = StatusFor(verdict.PhaseFlagged)

	out := bar.View()
	assert.Contains(t, out, "Flagged")
	assert.Contains(t, out, "logs: 3")
	assert.Contains(t, out, "C-s")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusReady, StatusFor(verdict.PhaseForm))
	assert.Equal(t, StatusSubmitting, StatusFor(verdict.PhaseLoading))
	assert.Equal(t, StatusApproved, StatusFor(verdict.PhaseApproved))
	assert.Equal(t, StatusError, StatusFor(verdict.PhaseError))
}

func TestToasts(t *testing.T) {
	var toasts Toasts
	toasts, cmd := toasts.Add(ToastKindSuccess, "Exported to verdict.html")
	require.NotNil(t, cmd)
	toasts, _ = toasts.Add(ToastKindError, "write failed")
	require.Len(t, toasts.Items(), 2)

	out := toasts.View(styles.NewTheme(), 80)
	assert.Contains(t, out, "Exported to verdict.html")
	assert.True(t, strings.Contains(out, styles.StatusIndicators.Error))

	toasts = toasts.Dismiss(toasts.Items()[0].ID)
	require.Len(t, toasts.Items(), 1)
	assert.Equal(t, "write failed", toasts.Items()[0].Message)
}

func TestSpinnerFrame(t *testing.T) {
	s := NewSpinner()
	assert.Empty(t, s.Frame())
	require.NotNil(t, s.Start())
	assert.Equal(t, styles.LoadingSpinner.Frames[0], s.Frame())
	s.Stop()
	assert.Empty(t, s.View(styles.NewTheme()))
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wordWrap("one two three", 7))
	assert.Equal(t, "a\n\nb", wordWrap("a\n\nb", 10))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package verdict

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/gauge"
	"github.com/jeranaias/careerdesk-tui/internal/stages"
	"github.com/jeranaias/careerdesk-tui/internal/thread"
)

var testReducer = Reducer{AgentName: "Deniz (AI Agent)", Location: time.UTC}

func submit(s State) State {
	return testReducer.Reduce(s, Submitted{Submission: api.Submission{
		SenderName: " Ada ", SenderEmail: "ada@acme.io", Subject: "Role", Message: "Hello",
	}})
}

func flaggedPayload() *api.ResponsePayload {
	return &api.ResponsePayload{
		Status:           api.StatusFlaggedUnknown,
		UnknownDetection: &api.UnknownDetection{IsUnknown: true, Reason: "Salary negotiation", Category: "salary"},
		Confidence:       &api.Confidence{Confidence: 0.42, Category: "salary", IsUnknown: true},
	}
}

func approvedPayload() *api.ResponsePayload {
	return &api.ResponsePayload{
		Status:        api.StatusResponded,
		ResponseText:  "Thanks for reaching out!",
		RevisionCount: 1,
		Evaluation: &api.Evaluation{
			ToneScore: 9, ClarityScore: 8, CompletenessScore: 7, SafetyScore: 10, RelevanceScore: 9,
			OverallScore: 8.6, Feedback: "Solid",
		},
		EmailResult: &api.EmailResult{Success: true},
		Confidence:  &api.Confidence{Confidence: 0.91, Category: "safe"},
		ConversationHistory: []api.Exchange{
			{EmployerMessage: "Hi", AgentResponse: "Hello", Timestamp: "2025-01-01T10:00:00"},
		},
	}
}

// terminalSections counts how many outcome sections are populated.
func terminalSections(s State) int {
	n := 0
	for _, present := range []bool{s.Approved != nil, s.Flagged != nil, s.Failure != nil} {
		if present {
			n++
		}
	}
	return n
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenario_Flagged(t *testing.T) {
	s := submit(Initial())
	require.Equal(t, PhaseLoading, s.Phase)

	s = testReducer.Reduce(s, Resolved{Gen: s.Gen, Payload: flaggedPayload()})

	require.Equal(t, PhaseFlagged, s.Phase)
	require.NotNil(t, s.Flagged)
	assert.Equal(t, "Salary negotiation", s.Flagged.Reason)
	assert.Equal(t, "salary", s.Flagged.Category)
	assert.Nil(t, s.Approved, "response body hidden")
	assert.False(t, s.ShowScores, "scorecard hidden")

	title, sub := s.Headline()
	assert.Equal(t, "Question Flagged", title)
	assert.Equal(t, "This question requires human intervention", sub)

	require.True(t, s.ShowGauge)
	assert.Equal(t, 42, s.Gauge.Percent)
	assert.Equal(t, gauge.BandDanger, s.Gauge.Band)
	assert.False(t, s.ShowThread())
}

func TestScenario_Approved(t *testing.T) {
	s := submit(Initial())
	s = testReducer.Reduce(s, Resolved{Gen: s.Gen, Payload: approvedPayload()})

	require.Equal(t, PhaseApproved, s.Phase)
	require.NotNil(t, s.Approved)
	assert.Equal(t, "1 revision", s.Approved.RevisionBadge)
	require.NotNil(t, s.Approved.Email)
	assert.Equal(t, "✓ Email sent", s.Approved.Email.Text)
	assert.Equal(t, "Thanks for reaching out!", s.Body())

	title, sub := s.Headline()
	assert.Equal(t, "Response Generated", title)
	assert.Equal(t, "Evaluated and approved by the critic agent", sub)

	require.True(t, s.ShowScores)
	assert.Equal(t, "8.6/10", s.Scores.Overall)
	assert.Equal(t, 90.0, s.Scores.Bars[0].Width)

	require.True(t, s.ShowThread())
	require.Len(t, s.Thread, 2)
	assert.Equal(t, thread.Agent, s.Thread[1].Kind)
	assert.Equal(t, "Deniz (AI Agent)", s.Thread[1].Label)
}

func TestScenario_TransportFailure(t *testing.T) {
	s := submit(Initial())
	err := &api.ClientError{Type: api.ErrTypeTransport, Message: "connection failed", Cause: errors.New("connection refused")}
	s = testReducer.Reduce(s, Failed{Gen: s.Gen, Err: err})

	require.Equal(t, PhaseError, s.Phase)
	require.NotNil(t, s.Failure)
	assert.Equal(t, api.ErrTypeTransport, s.Failure.Kind)
	assert.Equal(t, ErrorBody, s.Body())
	title, sub := s.Headline()
	assert.Equal(t, "Error Occurred", title)
	assert.Equal(t, "Could not reach the evaluation service: connection refused", sub)
	assert.False(t, s.ShowGauge)
	assert.False(t, s.ShowThread())
}

func TestFailed_ServerDetail(t *testing.T) {
	s := submit(Initial())
	s = Reduce(s, Failed{Gen: s.Gen, Err: &api.ClientError{Type: api.ErrTypeServer, StatusCode: 500, Detail: "Pipeline crashed"}})
	_, sub := s.Headline()
	assert.Equal(t, "Pipeline crashed", sub)

	s = submit(s)
	s = Reduce(s, Failed{Gen: s.Gen, Err: &api.ClientError{Type: api.ErrTypeServer, StatusCode: 500}})
	_, sub = s.Headline()
	assert.Equal(t, "Server error: 500", sub)
}

func TestFailed_Timeout(t *testing.T) {
	s := submit(Initial())
	s = Reduce(s, Failed{Gen: s.Gen, Err: &api.ClientError{Type: api.ErrTypeTimeout, Timeout: 90 * time.Second}})
	require.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, api.ErrTypeTimeout, s.Failure.Kind)
	assert.Equal(t, "Request timed out after 1m30s", s.Failure.Message)
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestExactlyOneTerminalState(t *testing.T) {
	events := []func(State) Event{
		func(s State) Event { return Resolved{Gen: s.Gen, Payload: flaggedPayload()} },
		func(s State) Event { return Resolved{Gen: s.Gen, Payload: approvedPayload()} },
		func(s State) Event { return Resolved{Gen: s.Gen, Payload: &api.ResponsePayload{Status: "something_new"}} },
		func(s State) Event { return Resolved{Gen: s.Gen, Payload: nil} },
		func(s State) Event { return Failed{Gen: s.Gen, Err: errors.New("boom")} },
	}
	for i, ev := range events {
		s := submit(Initial())
		s = testReducer.Reduce(s, ev(s))
		assert.True(t, s.Phase.Terminal(), "event %d left phase %v", i, s.Phase)
		assert.Equal(t, 1, terminalSections(s), "event %d", i)
	}
}

func TestResolved_UnknownStatusIsApproved(t *testing.T) {
	s := submit(Initial())
	s = Reduce(s, Resolved{Gen: s.Gen, Payload: &api.ResponsePayload{Status: "approved", ResponseText: "ok"}})
	require.Equal(t, PhaseApproved, s.Phase)
	assert.Equal(t, "0 revisions", s.Approved.RevisionBadge)
	assert.Nil(t, s.Approved.Email, "email badge omitted when absent")
	assert.False(t, s.ShowScores, "scorecard hidden without evaluation")
	assert.False(t, s.ShowGauge, "gauge hidden without confidence")
}

func TestResolved_EmailFailed(t *testing.T) {
	p := approvedPayload()
	p.EmailResult = &api.EmailResult{Success: false, Error: "Resend returned status 403"}
	p.RevisionCount = 2

	s := submit(Initial())
	s = Reduce(s, Resolved{Gen: s.Gen, Payload: p})
	assert.Equal(t, "✗ Email failed", s.Approved.Email.Text)
	assert.Equal(t, "Resend returned status 403", s.Approved.Email.Detail)
	assert.Equal(t, "2 revisions", s.Approved.RevisionBadge)
}

func TestResolved_FlaggedWithoutDetection(t *testing.T) {
	s := submit(Initial())
	s = Reduce(s, Resolved{Gen: s.Gen, Payload: &api.ResponsePayload{Status: api.StatusFlaggedUnknown}})
	require.Equal(t, PhaseFlagged, s.Phase)
	assert.Equal(t, "unknown", s.Flagged.Category)
	assert.Equal(t, "", s.Flagged.Reason)
}

func TestFlaggedThreadBubble(t *testing.T) {
	p := flaggedPayload()
	p.ConversationHistory = []api.Exchange{{EmployerMessage: "Salary?", Timestamp: "2025-01-01T10:00:00"}}
	s := submit(Initial())
	s = testReducer.Reduce(s, Resolved{Gen: s.Gen, Payload: p})

	require.Len(t, s.Thread, 2)
	assert.Equal(t, thread.Flagged, s.Thread[1].Kind)
	assert.Equal(t, thread.FlaggedText, s.Thread[1].Text)
}

// =============================================================================
// GENERATIONS
// =============================================================================

func TestStaleEventsAreIgnored(t *testing.T) {
	first := submit(Initial())
	staleGen := first.Gen

	// User resets and submits again before the first request returns.
	s := Reduce(first, Reset{})
	s = submit(s)
	require.NotEqual(t, staleGen, s.Gen)

	before := s
	s = Reduce(s, Resolved{Gen: staleGen, Payload: approvedPayload()})
	assert.Equal(t, before, s, "stale response must not change state")

	s = Reduce(s, StageAdvanced{Tick: stages.TickMsg{Gen: staleGen, Index: 0, Transition: stages.Complete}})
	assert.Equal(t, stages.Pending, s.Stages[0], "stale timer must not touch the board")

	s = Reduce(s, StageAdvanced{Tick: stages.TickMsg{Gen: s.Gen, Index: 0, Transition: stages.Activate}})
	assert.Equal(t, stages.Active, s.Stages[0])
}

func TestStageTicksAfterResolution(t *testing.T) {
	s := submit(Initial())
	s = Reduce(s, Resolved{Gen: s.Gen, Payload: approvedPayload()})
	s = Reduce(s, StageAdvanced{Tick: stages.TickMsg{Gen: s.Gen, Index: 4, Transition: stages.Complete}})
	assert.Equal(t, PhaseApproved, s.Phase, "late same-generation ticks keep the verdict")
	assert.Equal(t, stages.Done, s.Stages[4])
}

func TestResolvedOutsideLoadingIgnored(t *testing.T) {
	s := submit(Initial())
	s = Reduce(s, Resolved{Gen: s.Gen, Payload: approvedPayload()})
	again := Reduce(s, Failed{Gen: s.Gen, Err: errors.New("late")})
	assert.Equal(t, PhaseApproved, again.Phase)
}

func TestEngageDeferredDrawing(t *testing.T) {
	s := submit(Initial())
	s = Reduce(s, Resolved{Gen: s.Gen, Payload: approvedPayload()})

	drawn := s.DrawnGauge()
	assert.Equal(t, 91, drawn.Percent, "percent text shows immediately")
	assert.Equal(t, 0.0, drawn.Fill)
	assert.Equal(t, -90.0, drawn.Needle)
	assert.Equal(t, 0.0, s.DrawnWidth(0))

	s = Reduce(s, GaugeEngaged{Gen: s.Gen - 1})
	assert.False(t, s.GaugeEngaged, "stale engage ignored")

	s = Reduce(s, GaugeEngaged{Gen: s.Gen})
	s = Reduce(s, BarsEngaged{Gen: s.Gen})
	assert.InDelta(t, 0.91*gauge.ArcLength, s.DrawnGauge().Fill, 1e-9)
	assert.Equal(t, 90.0, s.DrawnWidth(0))
}

func TestReset_ZeroesVisuals(t *testing.T) {
	s := submit(Initial())
	s = Reduce(s, Resolved{Gen: s.Gen, Payload: approvedPayload()})
	s = Reduce(s, GaugeEngaged{Gen: s.Gen})
	s = Reduce(s, BarsEngaged{Gen: s.Gen})
	s = Reduce(s, StageAdvanced{Tick: stages.TickMsg{Gen: s.Gen, Index: 1, Transition: stages.Activate}})

	r := Reduce(s, Reset{})
	assert.Equal(t, PhaseForm, r.Phase)
	assert.Equal(t, 0, terminalSections(r))
	for i, b := range r.Scores.Bars {
		assert.Equal(t, 0.0, b.Width, "bar %d", i)
		assert.Equal(t, gauge.Placeholder, b.Label, "bar %d", i)
		assert.Equal(t, 0.0, r.DrawnWidth(i))
	}
	assert.Equal(t, "0 251.2", r.DrawnGauge().DashArray())
	assert.Equal(t, -90.0, r.DrawnGauge().Needle)
	assert.Equal(t, 0, r.Gauge.Percent)
	assert.Equal(t, stages.NewBoard(), r.Stages)
	assert.Nil(t, r.Thread)

	// The pre-reset state is untouched.
	assert.Equal(t, PhaseApproved, s.Phase)
}

func TestSubmitted_TrimsSubmission(t *testing.T) {
	s := submit(Initial())
	assert.Equal(t, "Ada", s.Submission.SenderName)
	assert.Equal(t, uint64(1), s.Gen)
}

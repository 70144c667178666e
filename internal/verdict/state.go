// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package verdict maps submissions and their outcomes onto a single
// immutable view state.
//
// State is a value. Reduce never mutates its input: it returns a new State
// built from the old one and an Event. Rendering (terminal, HTML, plain
// text) is a projection of State and lives elsewhere.
//
// Every asynchronous event carries the generation of the submission that
// caused it. A state only accepts events from its own generation, so timers
// and responses that outlive a reset or a newer submission are dropped.
package verdict

import (
	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/gauge"
	"github.com/jeranaias/careerdesk-tui/internal/stages"
	"github.com/jeranaias/careerdesk-tui/internal/thread"
)

// Phase is which screen the state describes.
type Phase int

const (
	PhaseForm Phase = iota
	PhaseLoading
	PhaseApproved
	PhaseFlagged
	PhaseError
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseApproved:
		return "approved"
	case PhaseFlagged:
		return "flagged_unknown"
	case PhaseError:
		return "error"
	default:
		return "form"
	}
}

// Terminal reports whether the phase is a resolved outcome.
func (p Phase) Terminal() bool {
	return p == PhaseApproved || p == PhaseFlagged || p == PhaseError
}

// Fixed headline text per outcome.
const (
	ApprovedTitle    = "Response Generated"
	ApprovedSubtitle = "Evaluated and approved by the critic agent"
	FlaggedTitle     = "Question Flagged"
	FlaggedSubtitle  = "This question requires human intervention"
	ErrorTitle       = "Error Occurred"
	ErrorBody        = "An error occurred while processing the message. Please try again."

	EmailSentText   = "✓ Email sent"
	EmailFailedText = "✗ Email failed"
)

// State is the complete view state. Exactly one of Approved, Flagged and
// Failure is non-nil in a terminal phase; all three are nil otherwise.
type State struct {
	Phase Phase
	// Gen identifies the current submission (or reset). Events from any
	// other generation are ignored.
	Gen uint64

	// Submission is what was sent, for headers and exports.
	Submission api.Submission

	Stages stages.Board

	Approved *Approved
	Flagged  *Flagged
	Failure  *Failure

	// Gauge is shown when ShowGauge is set. Until GaugeEngaged the arc and
	// needle draw at their zero position.
	Gauge        gauge.Gauge
	ShowGauge    bool
	GaugeEngaged bool

	// Scores is shown when ShowScores is set. Until BarsEngaged the bars
	// draw empty.
	Scores      gauge.Scorecard
	ShowScores  bool
	BarsEngaged bool

	// Thread is the sender's history, oldest first. Empty hides it.
	Thread []thread.Bubble
}

// Approved is the Approved outcome.
type Approved struct {
	ResponseText  string
	RevisionCount int
	RevisionBadge string
	// Email is nil when the service did not report an email attempt.
	Email *EmailBadge
}

// EmailBadge reports the email delivery attempt.
type EmailBadge struct {
	Sent bool
	Text string
	// Detail is the service's message or error, if any.
	Detail string
}

// Flagged is the FlaggedUnknown outcome.
type Flagged struct {
	Reason   string
	Category string
}

// Failure is the Error outcome.
type Failure struct {
	Message string
	Body    string
	Kind    api.ErrorType
}

// Initial returns the form state with zeroed visuals.
func Initial() State {
	return State{
		Phase:  PhaseForm,
		Stages: stages.NewBoard(),
		Gauge:  gauge.Zero(),
		Scores: gauge.ZeroScorecard(),
	}
}

// Headline returns the title and subtitle for the current phase. Both are
// empty outside terminal phases.
func (s State) Headline() (title, subtitle string) {
	switch s.Phase {
	case PhaseApproved:
		return ApprovedTitle, ApprovedSubtitle
	case PhaseFlagged:
		return FlaggedTitle, FlaggedSubtitle
	case PhaseError:
		if s.Failure != nil {
			return ErrorTitle, s.Failure.Message
		}
		return ErrorTitle, ""
	}
	return "", ""
}

// Body returns the main text block: the response for Approved, the fixed
// apology for Error, nothing otherwise.
func (s State) Body() string {
	switch {
	case s.Approved != nil:
		return s.Approved.ResponseText
	case s.Failure != nil:
		return s.Failure.Body
	}
	return ""
}

// ShowThread reports whether the conversation thread is visible.
func (s State) ShowThread() bool {
	return len(s.Thread) > 0
}

// DrawnGauge is the gauge as it should be drawn right now: the computed
// gauge once engaged, otherwise the computed labels over a zero arc.
func (s State) DrawnGauge() gauge.Gauge {
	if s.GaugeEngaged {
		return s.Gauge
	}
	g := s.Gauge
	zero := gauge.Zero()
	g.Fill, g.Needle = zero.Fill, zero.Needle
	return g
}

// DrawnWidth is a bar's width as it should be drawn right now.
func (s State) DrawnWidth(i int) float64 {
	if !s.BarsEngaged || i < 0 || i >= gauge.BarCount {
		return 0
	}
	return s.Scores.Bars[i].Width
}

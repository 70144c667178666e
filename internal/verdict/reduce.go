// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package verdict maps submissions and their outcomes onto view state.
package verdict

import (
	"errors"
	"strings"
	"time"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/gauge"
	"github.com/jeranaias/careerdesk-tui/internal/stages"
	"github.com/jeranaias/careerdesk-tui/internal/thread"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event is anything Reduce consumes.
type Event interface {
	event()
}

// Submitted starts a new submission: Loading with a fresh generation.
type Submitted struct {
	Submission api.Submission
}

// Resolved delivers the service's payload for submission Gen.
type Resolved struct {
	Gen     uint64
	Payload *api.ResponsePayload
}

// Failed delivers a request failure for submission Gen.
type Failed struct {
	Gen uint64
	Err error
}

// StageAdvanced applies one stage timer.
type StageAdvanced struct {
	Tick stages.TickMsg
}

// GaugeEngaged lets the gauge draw its arc and needle.
type GaugeEngaged struct {
	Gen uint64
}

// BarsEngaged lets the score bars fill.
type BarsEngaged struct {
	Gen uint64
}

// Reset returns to the form and invalidates everything in flight.
type Reset struct{}

func (Submitted) event()     {}
func (Resolved) event()      {}
func (Failed) event()        {}
func (StageAdvanced) event() {}
func (GaugeEngaged) event()  {}
func (BarsEngaged) event()   {}
func (Reset) event()         {}

// =============================================================================
// REDUCER
// =============================================================================

// Reducer carries presentation settings that shape mapped state.
type Reducer struct {
	// AgentName labels agent bubbles in the thread.
	AgentName string
	// Location is used for thread timestamps (default time.Local).
	Location *time.Location
}

// Reduce applies e to s with default settings.
func Reduce(s State, e Event) State {
	return Reducer{}.Reduce(s, e)
}

// Reduce applies e to s and returns the new state. s is never modified.
func (r Reducer) Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Submitted:
		next := Initial()
		next.Phase = PhaseLoading
		next.Gen = s.Gen + 1
		next.Submission = e.Submission.Trimmed()
		return next

	case Resolved:
		if e.Gen != s.Gen || s.Phase != PhaseLoading {
			return s
		}
		if e.Payload == nil {
			return fail(s, &api.ClientError{Type: api.ErrTypeInvalidResponse, Message: "empty response"})
		}
		return r.resolve(s, e.Payload)

	case Failed:
		if e.Gen != s.Gen || s.Phase != PhaseLoading {
			return s
		}
		return fail(s, e.Err)

	case StageAdvanced:
		if e.Tick.Gen != s.Gen {
			return s
		}
		s.Stages = s.Stages.Apply(e.Tick.Index, e.Tick.Transition)
		return s

	case GaugeEngaged:
		if e.Gen != s.Gen || !s.ShowGauge {
			return s
		}
		s.GaugeEngaged = true
		return s

	case BarsEngaged:
		if e.Gen != s.Gen || !s.ShowScores {
			return s
		}
		s.BarsEngaged = true
		return s

	case Reset:
		next := Initial()
		next.Gen = s.Gen + 1
		return next
	}
	return s
}

// resolve maps a payload onto exactly one terminal outcome.
func (r Reducer) resolve(s State, p *api.ResponsePayload) State {
	next := s
	next.Approved, next.Flagged, next.Failure = nil, nil, nil
	next.Gauge, next.ShowGauge, next.GaugeEngaged = gauge.Zero(), false, false
	next.Scores, next.ShowScores, next.BarsEngaged = gauge.ZeroScorecard(), false, false

	if p.Confidence != nil {
		next.Gauge = gauge.FromConfidence(*p.Confidence)
		next.ShowGauge = true
	}

	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	next.Thread = thread.BuildIn(p.ConversationHistory, r.AgentName, loc)

	if p.Status.IsFlagged() {
		next.Phase = PhaseFlagged
		f := &Flagged{Category: gauge.UnknownCategory}
		if d := p.UnknownDetection; d != nil {
			f.Reason = strings.TrimSpace(d.Reason)
			if d.Category != "" {
				f.Category = d.Category
			}
		}
		next.Flagged = f
		return next
	}

	next.Phase = PhaseApproved
	a := &Approved{
		ResponseText:  p.ResponseText,
		RevisionCount: p.RevisionCount,
		RevisionBadge: util.Plural(p.RevisionCount, "revision"),
	}
	if er := p.EmailResult; er != nil {
		badge := &EmailBadge{Sent: er.Success, Text: EmailFailedText, Detail: er.Error}
		if er.Success {
			badge.Text = EmailSentText
			badge.Detail = er.Message
		}
		a.Email = badge
	}
	next.Approved = a

	if p.Evaluation != nil {
		next.Scores = gauge.FromEvaluation(*p.Evaluation)
		next.ShowScores = true
	}
	return next
}

// fail maps an error onto the Error outcome. Gauge, scores and thread are
// hidden.
func fail(s State, err error) State {
	next := s
	next.Phase = PhaseError
	next.Approved, next.Flagged = nil, nil
	next.Gauge, next.ShowGauge, next.GaugeEngaged = gauge.Zero(), false, false
	next.Scores, next.ShowScores, next.BarsEngaged = gauge.ZeroScorecard(), false, false
	next.Thread = nil

	f := &Failure{Message: api.UserMessage(err), Body: ErrorBody}
	if f.Message == "" {
		f.Message = "Unknown error"
	}
	var cerr *api.ClientError
	if errors.As(err, &cerr) {
		f.Kind = cerr.Type
	}
	next.Failure = f
	return next
}

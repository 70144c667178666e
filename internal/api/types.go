// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP/JSON boundary to the evaluation service.
package api

import (
	"errors"
	"strings"
)

// =============================================================================
// SUBMISSION
// =============================================================================

// Submission is one inbound employer message.
type Submission struct {
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// ErrInvalidSubmission is matched by every *SubmissionError.
var ErrInvalidSubmission = errors.New("invalid submission")

// SubmissionError lists the fields that were empty after trimming.
type SubmissionError struct {
	Missing []string
}

func (e *SubmissionError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Is reports ErrInvalidSubmission.
func (e *SubmissionError) Is(target error) bool {
	return target == ErrInvalidSubmission
}

// Trimmed returns a copy with surrounding whitespace removed from each field.
func (s Submission) Trimmed() Submission {
	return Submission{
		SenderName:  strings.TrimSpace(s.SenderName),
		SenderEmail: strings.TrimSpace(s.SenderEmail),
		Subject:     strings.TrimSpace(s.Subject),
		Message:     strings.TrimSpace(s.Message),
	}
}

// Validate requires every field to be non-empty after trimming. Missing
// fields are reported in form order.
func (s Submission) Validate() error {
	t := s.Trimmed()
	var missing []string
	if t.SenderName == "" {
		missing = append(missing, "sender_name")
	}
	if t.SenderEmail == "" {
		missing = append(missing, "sender_email")
	}
	if t.Subject == "" {
		missing = append(missing, "subject")
	}
	if t.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &SubmissionError{Missing: missing}
	}
	return nil
}

// =============================================================================
// RESPONSE PAYLOAD
// =============================================================================

// Status is the pipeline outcome for one submission.
type Status string

const (
	StatusResponded      Status = "responded"
	StatusApproved       Status = "approved"
	StatusFlaggedUnknown Status = "flagged_unknown"
)

// IsFlagged reports whether a human must handle the message. Every other
// status, including unknown ones, counts as a generated response.
func (s Status) IsFlagged() bool {
	return s == StatusFlaggedUnknown
}

// IsApproved reports whether a stored record was answered automatically.
func (s Status) IsApproved() bool {
	return s == StatusApproved || s == StatusResponded
}

// ResponsePayload is the structured verdict returned by POST /api/message.
// Pointer fields are optional sections: nil means the section is absent.
type ResponsePayload struct {
	Status              Status            `json:"status"`
	ResponseText        string            `json:"response_text"`
	Confidence          *Confidence       `json:"confidence,omitempty"`
	Evaluation          *Evaluation       `json:"evaluation,omitempty"`
	RevisionCount       int               `json:"revision_count"`
	EmailResult         *EmailResult      `json:"email_result,omitempty"`
	UnknownDetection    *UnknownDetection `json:"unknown_detection,omitempty"`
	ConversationHistory []Exchange        `json:"conversation_history,omitempty"`
	NotificationResult  map[string]any    `json:"notification_result,omitempty"`
	Error               string            `json:"error,omitempty"`
}

// Confidence is the screening stage's assessment of the message.
type Confidence struct {
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
	IsUnknown  bool    `json:"is_unknown"`
	Reason     string  `json:"reason"`
}

// Evaluation holds the critic's sub-scores, each in [0,10].
type Evaluation struct {
	ToneScore         float64 `json:"tone_score"`
	ClarityScore      float64 `json:"clarity_score"`
	CompletenessScore float64 `json:"completeness_score"`
	SafetyScore       float64 `json:"safety_score"`
	RelevanceScore    float64 `json:"relevance_score"`
	OverallScore      float64 `json:"overall_score"`
	Feedback          string  `json:"feedback"`
	Approved          bool    `json:"approved"`
}

// EmailResult reports whether the drafted reply was delivered.
type EmailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	ID      string `json:"id,omitempty"`
}

// UnknownDetection explains why a message was flagged.
type UnknownDetection struct {
	IsUnknown  bool    `json:"is_unknown"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Category   string  `json:"category"`
}

// =============================================================================
// HISTORY
// =============================================================================

// Exchange is one employer message and the agent's reply, if any.
type Exchange struct {
	EmployerMessage string `json:"employer_message"`
	AgentResponse   string `json:"agent_response,omitempty"`
	Status          Status `json:"status,omitempty"`
	Timestamp       string `json:"timestamp"`
}

// Answered reports whether an automated reply exists. The service stores an
// empty string for flagged exchanges.
func (e Exchange) Answered() bool {
	return e.AgentResponse != ""
}

// Approved reports whether the exchange was answered automatically. Older
// records without a status fall back to whether a reply exists.
func (e Exchange) Approved() bool {
	if e.Status != "" {
		return e.Status.IsApproved()
	}
	return e.Answered()
}

// ConversationsResponse is GET /api/conversations.
type ConversationsResponse struct {
	TotalEmployers int                   `json:"total_employers"`
	Conversations  map[string][]Exchange `json:"conversations"`
}

// ConversationResponse is GET /api/conversations/{email}.
type ConversationResponse struct {
	Email         string     `json:"email"`
	TotalMessages int        `json:"total_messages"`
	History       []Exchange `json:"history"`
}

// LogEntry is one processed submission in the global log.
type LogEntry struct {
	Timestamp        string            `json:"timestamp"`
	SenderName       string            `json:"sender_name"`
	SenderEmail      string            `json:"sender_email,omitempty"`
	Subject          string            `json:"subject"`
	EmployerMessage  string            `json:"employer_message,omitempty"`
	ResponseText     string            `json:"response_text,omitempty"`
	Evaluation       *Evaluation       `json:"evaluation,omitempty"`
	RevisionCount    int               `json:"revision_count"`
	Status           Status            `json:"status"`
	UnknownDetection *UnknownDetection `json:"unknown_detection,omitempty"`
	Confidence       *Confidence       `json:"confidence,omitempty"`
}

// LogsResponse is GET /api/logs. Entries arrive newest first.
type LogsResponse struct {
	Total int        `json:"total"`
	Logs  []LogEntry `json:"logs"`
}

// HealthResponse is GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// MessageResponse is the acknowledgement body of the DELETE endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

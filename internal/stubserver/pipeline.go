// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stubserver

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jeranaias/careerdesk-tui/internal/api"
)

// =============================================================================
// SCREENING
// =============================================================================

// rule flags messages that mention any of its keywords.
type rule struct {
	category   string
	confidence float64
	reason     string
	keywords   []string
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{"salary", 0.92, "Salary negotiation needs a human decision", []string{"salary", "compensation", "pay range", "equity", "maaş"}},
	{"legal", 0.9, "Legal or contractual question", []string{"contract", "nda", "non compete", "visa", "immigration", "lawyer"}},
	{"sensitive", 0.95, "Request for personal or sensitive information", []string{"ssn", "social security", "bank account", "passport number", "date of birth"}},
	{"out_of_domain", 0.8, "Question outside the candidate's expertise", []string{"fpga", "biotech", "quantum", "vhdl"}},
	{"ambiguous", 0.7, "Vague or suspicious offer", []string{"mlm", "investment opportunity", "pay upfront", "wire transfer"}},
}

// lowConfidence flags otherwise safe messages the screen is unsure about.
const lowConfidence = 0.3

// Screen classifies a message. Safe messages get a confidence that grows
// with how much there is to go on.
func Screen(message string) api.Confidence {
	text := normalize(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, " "+kw+" ") {
				return api.Confidence{
					Confidence: r.confidence,
					Category:   r.category,
					IsUnknown:  true,
					Reason:     r.reason,
				}
			}
		}
	}

	words := len(strings.Fields(message))
	conf := math.Min(0.95, 0.2+float64(words)*0.05)
	c := api.Confidence{
		Confidence: round2(conf),
		Category:   "safe",
		Reason:     "Standard recruiting message",
	}
	if c.Confidence < lowConfidence {
		c.IsUnknown = true
		c.Category = "ambiguous"
		c.Reason = fmt.Sprintf("Low confidence (%.2f): message too short to assess", c.Confidence)
	}
	return c
}

// normalize lowercases s and turns every run of non-letters into a single
// space, padded on both ends, so keywords match whole words only.
func normalize(s string) string {
	var sb strings.Builder
	sb.WriteByte(' ')
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			space = false
			continue
		}
		if !space {
			sb.WriteByte(' ')
			space = true
		}
	}
	if !space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline turns a submission into a verdict and records it.
type Pipeline struct {
	Store     *Store
	AgentName string
	// ApproveAt is the overall score a draft needs; below it the draft is
	// revised once.
	ApproveAt float64
}

// Process screens sub, drafts and scores a reply when it is safe, and
// records the exchange and log entry.
func (p *Pipeline) Process(sub api.Submission) *api.ResponsePayload {
	sub = sub.Trimmed()
	conf := Screen(sub.Message)

	if conf.IsUnknown {
		p.Store.AddExchange(sub.SenderEmail, api.Exchange{
			EmployerMessage: sub.Message,
			Status:          api.StatusFlaggedUnknown,
		})
		detection := &api.UnknownDetection{
			IsUnknown:  true,
			Confidence: conf.Confidence,
			Reason:     conf.Reason,
			Category:   conf.Category,
		}
		p.Store.AddLog(api.LogEntry{
			SenderName:       sub.SenderName,
			SenderEmail:      sub.SenderEmail,
			Subject:          sub.Subject,
			EmployerMessage:  sub.Message,
			Status:           api.StatusFlaggedUnknown,
			UnknownDetection: detection,
			Confidence:       &conf,
		})
		return &api.ResponsePayload{
			Status:              api.StatusFlaggedUnknown,
			UnknownDetection:    detection,
			Confidence:          &conf,
			ConversationHistory: p.Store.History(sub.SenderEmail),
		}
	}

	prior := len(p.Store.History(sub.SenderEmail))
	text := p.draft(sub, prior)
	eval := Evaluate(sub, text)
	revisions := 0
	if eval.OverallScore < p.approveAt() {
		revisions++
		text = text + "\n\nI'd be glad to share more detail on any of this."
		eval = Evaluate(sub, text)
		eval.CompletenessScore = math.Min(10, eval.CompletenessScore+1)
		eval.OverallScore = overall(eval)
	}
	eval.Approved = true

	p.Store.AddExchange(sub.SenderEmail, api.Exchange{
		EmployerMessage: sub.Message,
		AgentResponse:   text,
		Status:          api.StatusApproved,
	})
	p.Store.AddLog(api.LogEntry{
		SenderName:      sub.SenderName,
		SenderEmail:     sub.SenderEmail,
		Subject:         sub.Subject,
		EmployerMessage: sub.Message,
		ResponseText:    text,
		Evaluation:      &eval,
		RevisionCount:   revisions,
		Status:          api.StatusApproved,
		Confidence:      &conf,
	})

	return &api.ResponsePayload{
		Status:        api.StatusApproved,
		ResponseText:  text,
		Confidence:    &conf,
		Evaluation:    &eval,
		RevisionCount: revisions,
		EmailResult: &api.EmailResult{
			Success: true,
			Message: "Email sent (stub, not delivered)",
			ID:      uuid.NewString(),
		},
		ConversationHistory: p.Store.History(sub.SenderEmail),
	}
}

func (p *Pipeline) approveAt() float64 {
	if p.ApproveAt <= 0 {
		return 7
	}
	return p.ApproveAt
}

func (p *Pipeline) draft(sub api.Submission, prior int) string {
	name := firstName(sub.SenderName)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", name)
	if prior > 0 {
		sb.WriteString("Thanks for following up. ")
	}
	fmt.Fprintf(&sb, "Thank you for reaching out about \"%s\". ", sub.Subject)
	sb.WriteString("I'm interested and happy to set up a call this week to learn more about the role and the team.")
	fmt.Fprintf(&sb, "\n\nBest regards,\n%s", p.AgentName)
	return sb.String()
}

// Evaluate scores a draft deterministically from its length and how much
// of the employer's message it picks up.
func Evaluate(sub api.Submission, text string) api.Evaluation {
	words := len(strings.Fields(text))
	e := api.Evaluation{
		ToneScore:         9,
		ClarityScore:      clampScore(10 - float64(words)/40),
		CompletenessScore: clampScore(float64(len(strings.Fields(sub.Message)))/3 + 4),
		SafetyScore:       10,
		RelevanceScore:    relevance(sub, text),
	}
	e.OverallScore = overall(e)
	switch {
	case e.OverallScore >= 8:
		e.Feedback = "Clear, friendly and on topic."
	case e.OverallScore >= 6:
		e.Feedback = "Acceptable; could address the message in more detail."
	default:
		e.Feedback = "Too generic for the message received."
	}
	return e
}

func relevance(sub api.Submission, text string) float64 {
	lower := strings.ToLower(text)
	if strings.Contains(lower, strings.ToLower(sub.Subject)) {
		return 9
	}
	return 6
}

func overall(e api.Evaluation) float64 {
	sum := e.ToneScore + e.ClarityScore + e.CompletenessScore + e.SafetyScore + e.RelevanceScore
	return round2(sum / 5)
}

func clampScore(v float64) float64 {
	return math.Round(math.Max(0, math.Min(10, v)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return "there"
}

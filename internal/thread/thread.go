// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package thread turns a sender's exchange history into an ordered list of
// chat bubbles.
package thread

import (
	"time"

	"github.com/jeranaias/careerdesk-tui/internal/api"
)

// Kind identifies who a bubble speaks for.
type Kind int

const (
	Employer Kind = iota
	Agent
	Flagged
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Agent:
		return "agent"
	case Flagged:
		return "flagged"
	default:
		return "employer"
	}
}

// Fixed bubble text.
const (
	EmployerLabel = "Employer"
	FlaggedLabel  = "⚠ Flagged for human review"
	FlaggedText   = "No automated response was sent for this message."
)

// DefaultAgentName labels agent bubbles when none is configured.
const DefaultAgentName = "Career Agent"

// Bubble is one rendered message in the thread. Text is raw and must be
// escaped by whatever draws it.
type Bubble struct {
	Kind  Kind
	Label string
	Text  string
	// Time is the display timestamp (local time, or the raw value when it
	// could not be parsed).
	Time string
}

// Build expands exchanges, oldest first, into bubbles using local time.
func Build(exchanges []api.Exchange, agentName string) []Bubble {
	return BuildIn(exchanges, agentName, time.Local)
}

// BuildIn is Build with an explicit display location. Every exchange yields
// an employer bubble followed by either an agent bubble or, when the agent
// response is empty, a flagged bubble.
func BuildIn(exchanges []api.Exchange, agentName string, loc *time.Location) []Bubble {
	if len(exchanges) == 0 {
		return nil
	}
	if agentName == "" {
		agentName = DefaultAgentName
	}

	bubbles := make([]Bubble, 0, 2*len(exchanges))
	for _, ex := range exchanges {
		ts := FormatTimestamp(ex.Timestamp, loc)
		bubbles = append(bubbles, Bubble{
			Kind:  Employer,
			Label: EmployerLabel,
			Text:  ex.EmployerMessage,
			Time:  ts,
		})
		if ex.Answered() {
			bubbles = append(bubbles, Bubble{
				Kind:  Agent,
				Label: agentName,
				Text:  ex.AgentResponse,
				Time:  ts,
			})
			continue
		}
		bubbles = append(bubbles, Bubble{
			Kind:  Flagged,
			Label: FlaggedLabel,
			Text:  FlaggedText,
			Time:  ts,
		})
	}
	return bubbles
}

// =============================================================================
// TIMESTAMPS
// =============================================================================

// DisplayLayout is how timestamps are shown.
const DisplayLayout = "Jan 2, 2006 3:04 PM"

// zoned layouts carry their own offset; naive ones are read in loc.
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
	}
)

// ParseTimestamp reads an RFC 3339 or naive ISO-8601 timestamp. Naive
// values are interpreted in loc.
func ParseTimestamp(ts string, loc *time.Location) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, ts, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders ts in loc, or returns it verbatim if unparseable.
func FormatTimestamp(ts string, loc *time.Location) string {
	t, ok := ParseTimestamp(ts, loc)
	if !ok {
		return ts
	}
	return t.In(loc).Format(DisplayLayout)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panels keeps the conversation-history and processing-log views in
// step with the server.
//
// Both views are pull-based: opening a panel fetches the full collection and
// replaces whatever was shown. Clearing deletes on the server and fetches
// again. Failures are written to the diagnostic log and leave the last
// snapshot on screen.
package panels

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/thread"
	"github.com/jeranaias/careerdesk-tui/internal/util"
)

// Empty-state text.
const (
	EmptyHistoryText = "No conversations yet. Process a message to start tracking."
	EmptyLogsText    = "No logs yet. Process a message to see evaluation history."
)

// Status glyphs and badges.
const (
	GlyphApproved = "✓"
	GlyphFlagged  = "⚠"
	BadgeApproved = "Approved"
	BadgeFlagged  = "Flagged"
)

// DefaultSnippetLength is the employer-message preview budget in runes.
const DefaultSnippetLength = 80

// =============================================================================
// HISTORY VIEW
// =============================================================================

// HistoryView is the rendered conversation index.
type HistoryView struct {
	Loaded  bool
	Senders []Sender
}

// Sender is one employer's block in the history panel.
type Sender struct {
	Email     string
	Count     int
	CountText string
	Entries   []HistoryEntry
}

// HistoryEntry is one exchange preview.
type HistoryEntry struct {
	Snippet  string
	Approved bool
	Glyph    string
	Time     string
}

// Empty reports whether the empty-state text should be shown.
func (v HistoryView) Empty() bool {
	return len(v.Senders) == 0
}

// BuildHistory converts a conversations response into a view. Senders are
// ordered by email; exchanges keep server order.
func BuildHistory(resp *api.ConversationsResponse, snippetLen int, loc *time.Location) HistoryView {
	view := HistoryView{Loaded: true}
	if resp == nil {
		return view
	}
	if snippetLen <= 0 {
		snippetLen = DefaultSnippetLength
	}

	emails := make([]string, 0, len(resp.Conversations))
	for email := range resp.Conversations {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	for _, email := range emails {
		exchanges := resp.Conversations[email]
		s := Sender{
			Email:     email,
			Count:     len(exchanges),
			CountText: util.Plural(len(exchanges), "message"),
			Entries:   make([]HistoryEntry, 0, len(exchanges)),
		}
		for _, ex := range exchanges {
			e := HistoryEntry{
				Snippet:  util.Snippet(ex.EmployerMessage, snippetLen),
				Approved: ex.Approved(),
				Glyph:    GlyphFlagged,
				Time:     thread.FormatTimestamp(ex.Timestamp, loc),
			}
			if e.Approved {
				e.Glyph = GlyphApproved
			}
			s.Entries = append(s.Entries, e)
		}
		view.Senders = append(view.Senders, s)
	}
	return view
}

// =============================================================================
// LOG VIEW
// =============================================================================

// LogView is the rendered processing log.
type LogView struct {
	Loaded  bool
	Total   int
	Entries []LogLine
}

// LogLine is one processed submission. Optional fields are empty when the
// entry lacks the data.
type LogLine struct {
	Sender    string
	Subject   string
	Time      string
	Approved  bool
	Badge     string
	Score     string
	Conf      string
	Revisions string
}

// Empty reports whether the empty-state text should be shown.
func (v LogView) Empty() bool {
	return len(v.Entries) == 0
}

// BuildLogs converts a logs response into a view, keeping server order
// (newest first).
func BuildLogs(resp *api.LogsResponse, loc *time.Location) LogView {
	view := LogView{Loaded: true}
	if resp == nil {
		return view
	}
	view.Total = resp.Total
	view.Entries = make([]LogLine, 0, len(resp.Logs))
	for _, entry := range resp.Logs {
		view.Entries = append(view.Entries, NewLogLine(entry, loc))
	}
	return view
}

// NewLogLine formats one log entry.
func NewLogLine(entry api.LogEntry, loc *time.Location) LogLine {
	line := LogLine{
		Sender:   entry.SenderName,
		Subject:  entry.Subject,
		Time:     thread.FormatTimestamp(entry.Timestamp, loc),
		Approved: entry.Status.IsApproved(),
		Badge:    BadgeFlagged,
	}
	if line.Approved {
		line.Badge = BadgeApproved
	}
	if entry.Evaluation != nil {
		line.Score = "Score: " + util.FormatTenths(entry.Evaluation.OverallScore) + "/10"
	}
	if entry.Confidence != nil {
		line.Conf = fmt.Sprintf("Conf: %d%%", int(math.Round(entry.Confidence.Confidence*100)))
	}
	if entry.RevisionCount > 0 {
		line.Revisions = util.Plural(entry.RevisionCount, "revision")
	}
	return line
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/verdict"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func testOptions(dir string) *Options {
	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func resolve(t *testing.T, sub api.Submission, p *api.ResponsePayload) verdict.State {
	t.Helper()
	r := verdict.Reducer{AgentName: "Deniz", Location: time.UTC}
	s := r.Reduce(verdict.Initial(), verdict.Submitted{Submission: sub})
	s = r.Reduce(s, verdict.Resolved{Gen: s.Gen, Payload: p})
	require.True(t, s.Phase.Terminal())
	return s
}

func sampleSubmission() api.Submission {
	return api.Submission{SenderName: "Ada", SenderEmail: "ada@acme.io", Subject: "Role", Message: "Open to a chat?"}
}

func approvedPayload() *api.ResponsePayload {
	return &api.ResponsePayload{
		Status:        api.StatusApproved,
		ResponseText:  "Happy to talk.",
		RevisionCount: 1,
		Evaluation: &api.Evaluation{
			ToneScore: 9, ClarityScore: 8, CompletenessScore: 7, SafetyScore: 10, RelevanceScore: 5,
			OverallScore: 7.8, Feedback: "Solid reply",
		},
		Confidence:  &api.Confidence{Confidence: 0.5, Category: "safe"},
		EmailResult: &api.EmailResult{Success: true},
		ConversationHistory: []api.Exchange{
			{EmployerMessage: "Open to a chat?", AgentResponse: "Happy to talk.", Status: api.StatusApproved},
		},
	}
}

// =============================================================================
// HTML
// =============================================================================

func TestHTMLExport_EscapesMarkup(t *testing.T) {
	sub := sampleSubmission()
	sub.Subject = "<script>alert('xss')</script>"
	p := approvedPayload()
	p.ResponseText = "<b>bold</b> & more"
	p.ConversationHistory[0].EmployerMessage = "<img src=x onerror=alert(1)>"

	out, err := NewHTMLExporter(testOptions(t.TempDir())).Export(resolve(t, sub, p))
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>bold</b>")
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;")
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt; &amp; more")
}

func TestHTMLExport_Approved(t *testing.T) {
	out, err := NewHTMLExporter(testOptions(t.TempDir())).Export(resolve(t, sampleSubmission(), approvedPayload()))
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, verdict.ApprovedTitle)
	assert.Contains(t, html, "1 revision")
	assert.Contains(t, html, `stroke-dasharray="125.6 251.2"`)
	assert.Contains(t, html, `rotate(0 100 100)`)
	assert.Contains(t, html, "50%")
	assert.Contains(t, html, "Critic Evaluation")
	assert.Contains(t, html, `style="width: 90%"`)
	assert.Contains(t, html, "Conversation History")
	assert.Contains(t, html, "dark-theme")
}

func TestHTMLExport_FlaggedWithoutExtras(t *testing.T) {
	p := &api.ResponsePayload{
		Status:           api.StatusFlaggedUnknown,
		UnknownDetection: &api.UnknownDetection{IsUnknown: true, Reason: "Salary question", Category: "salary"},
	}
	opts := testOptions(t.TempDir())
	opts.Theme = "light"

	out, err := NewHTMLExporter(opts).Export(resolve(t, sampleSubmission(), p))
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, verdict.FlaggedTitle)
	assert.Contains(t, html, "Salary question")
	assert.Contains(t, html, "Category: salary")
	assert.NotContains(t, html, "<svg")
	assert.NotContains(t, html, "Critic Evaluation")
	assert.Contains(t, html, "light-theme")
}

func TestHTMLExport_RejectsPendingVerdict(t *testing.T) {
	_, err := NewHTMLExporter(nil).Export(verdict.Initial())
	assert.True(t, errors.Is(err, ErrNotTerminal))
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONExport(t *testing.T) {
	out, err := NewJSONExporter(testOptions(t.TempDir())).Export(resolve(t, sampleSubmission(), approvedPayload()))
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "approved", doc.Verdict)
	assert.Equal(t, "Happy to talk.", doc.Response)
	require.NotNil(t, doc.Revisions)
	assert.Equal(t, 1, *doc.Revisions)
	require.NotNil(t, doc.Confidence)
	assert.Equal(t, 50, doc.Confidence.Percent)
	require.NotNil(t, doc.Scores)
	assert.Equal(t, 9.0, doc.Scores.Bars["Tone"])
	assert.True(t, doc.ExportedAt.Equal(fixedNow))
}

func TestJSONExport_Error(t *testing.T) {
	s := verdict.Reduce(verdict.Initial(), verdict.Submitted{Submission: sampleSubmission()})
	s = verdict.Reduce(s, verdict.Failed{Gen: s.Gen, Err: &api.ClientError{Type: api.ErrTypeServer, Message: "boom"}})

	doc, err := NewDocument(s, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "error", doc.Verdict)
	assert.Nil(t, doc.Confidence)
	assert.Nil(t, doc.Scores)
}

// =============================================================================
// FILES
// =============================================================================

func TestExportToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	opts := testOptions(dir)

	path, err := ExportHTML(resolve(t, sampleSubmission(), approvedPayload()), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "verdict_ada@acme.io_approved_20250314_092653.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}

func TestExportToFile_NotTerminal(t *testing.T) {
	dir := t.TempDir()
	_, err := ExportJSON(verdict.Initial(), testOptions(dir))
	assert.ErrorIs(t, err, ErrNotTerminal)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ada@acme.io", "ada@acme.io"},
		{"a/b\\c:d", "a-b-c-d"},
		{"two words", "two_words"},
		{"bell\x07", "bell-"},
		{"", "anonymous"},
		{strings.Repeat("x", 60), strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.in))
		})
	}
}

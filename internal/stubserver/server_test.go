// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stubserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/careerdesk-tui/internal/api"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *api.Client) {
	t.Helper()
	s := New(cfg, nil)
	ts := httptest.NewServer(s.Router)
	t.Cleanup(ts.Close)
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: ts.URL})
	return s, client
}

func unlimited() Config {
	cfg := DefaultConfig()
	cfg.RateLimitRPS = 0
	cfg.AgentName = "Deniz"
	return cfg
}

func submission(msg string) api.Submission {
	return api.Submission{SenderName: "Ada Lovelace", SenderEmail: "ada@acme.io", Subject: "Backend role", Message: msg}
}

// =============================================================================
// SCREENING
// =============================================================================

func TestScreen(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		category string
		flagged  bool
	}{
		{"salary", "What are your salary expectations for this role?", "salary", true},
		{"legal", "Can you sign an NDA before the interview?", "legal", true},
		{"sensitive", "Please send your bank account details", "sensitive", true},
		{"too short", "Hi", "ambiguous", true},
		{"keyword inside a word", "Our standard calendar invite is attached for the onsite interview next Tuesday morning", "safe", false},
		{"safe", "We are hiring a backend engineer with Go and Docker experience, are you available for a call next week?", "safe", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Screen(tt.msg)
			assert.Equal(t, tt.category, c.Category)
			assert.Equal(t, tt.flagged, c.IsUnknown)
			assert.GreaterOrEqual(t, c.Confidence, 0.0)
			assert.LessOrEqual(t, c.Confidence, 1.0)
		})
	}
}

// =============================================================================
// ENDPOINTS
// =============================================================================

func TestSubmitApproved(t *testing.T) {
	_, client := newTestServer(t, unlimited())
	ctx := context.Background()

	p, err := client.SubmitMessage(ctx, submission("We are hiring a backend engineer with Go and Docker experience, are you available for a call next week?"))
	require.NoError(t, err)

	assert.Equal(t, api.StatusApproved, p.Status)
	assert.Contains(t, p.ResponseText, "Hi Ada")
	assert.Contains(t, p.ResponseText, "Deniz")
	require.NotNil(t, p.Evaluation)
	assert.True(t, p.Evaluation.Approved)
	require.NotNil(t, p.EmailResult)
	assert.True(t, p.EmailResult.Success)
	require.Len(t, p.ConversationHistory, 1)
	assert.Equal(t, p.ResponseText, p.ConversationHistory[0].AgentResponse)
}

func TestSubmitFlagged(t *testing.T) {
	_, client := newTestServer(t, unlimited())

	p, err := client.SubmitMessage(context.Background(), submission("What salary range do you expect?"))
	require.NoError(t, err)

	assert.Equal(t, api.StatusFlaggedUnknown, p.Status)
	assert.Empty(t, p.ResponseText)
	require.NotNil(t, p.UnknownDetection)
	assert.Equal(t, "salary", p.UnknownDetection.Category)
	require.Len(t, p.ConversationHistory, 1)
	assert.False(t, p.ConversationHistory[0].Answered())
}

func TestConversationsAndLogs(t *testing.T) {
	_, client := newTestServer(t, unlimited())
	ctx := context.Background()

	_, err := client.SubmitMessage(ctx, submission("What salary range do you expect?"))
	require.NoError(t, err)
	_, err = client.SubmitMessage(ctx, submission("Would you be available for a technical interview on Thursday afternoon?"))
	require.NoError(t, err)

	convs, err := client.Conversations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, convs.TotalEmployers)
	assert.Len(t, convs.Conversations["ada@acme.io"], 2)

	one, err := client.Conversation(ctx, "ada@acme.io")
	require.NoError(t, err)
	assert.Equal(t, 2, one.TotalMessages)

	logs, err := client.Logs(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, logs.Total)
	assert.Equal(t, api.StatusApproved, logs.Logs[0].Status, "newest first")
	assert.Equal(t, api.StatusFlaggedUnknown, logs.Logs[1].Status)

	require.NoError(t, client.ClearLogs(ctx))
	logs, err = client.Logs(ctx)
	require.NoError(t, err)
	assert.Zero(t, logs.Total)

	require.NoError(t, client.ClearConversations(ctx))
	convs, err = client.Conversations(ctx)
	require.NoError(t, err)
	assert.Zero(t, convs.TotalEmployers)
}

func TestHealth(t *testing.T) {
	_, client := newTestServer(t, unlimited())
	h, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, ServiceName, h.Service)
}

func TestValidationErrorIsList(t *testing.T) {
	s := New(unlimited(), nil)
	body, _ := json.Marshal(api.Submission{SenderName: "Ada"})
	req := httptest.NewRequest(http.MethodPost, "/api/message", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var out struct {
		Detail []validationIssue `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Detail, 3)
	assert.Equal(t, []string{"body", "sender_email"}, out.Detail[0].Loc)
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func TestRequestIDEchoed(t *testing.T) {
	s := New(unlimited(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestRateLimit(t *testing.T) {
	cfg := unlimited()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	s := New(cfg, nil)

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
}

func TestRequestsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := New(unlimited(), zap.New(core))

	s.Router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/logs", nil))

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/logs", entries[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	return Submission{
		SenderName:  "  Ada Recruiter ",
		SenderEmail: "ada@acme.io",
		Subject:     "Backend role",
		Message:     "Would you be open to a chat about a Go position?",
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClientWithConfig(&ClientConfig{BaseURL: server.URL + "/", Timeout: 2 * time.Second}), server
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmitMessage_Approved(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/message", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id must be a uuid")

		var got Submission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Ada Recruiter", got.SenderName, "fields are sent trimmed")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "approved",
			"response_text": "Thanks, happy to talk.",
			"revision_count": 1,
			"evaluation": {"tone_score": 9, "clarity_score": 8, "completeness_score": 7,
				"safety_score": 10, "relevance_score": 9, "overall_score": 8.6,
				"feedback": "Good", "approved": true},
			"confidence": {"confidence": 0.92, "category": "safe", "is_unknown": false, "reason": ""},
			"email_result": {"success": true, "message": "Email sent successfully"},
			"conversation_history": [
				{"employer_message": "Hi", "agent_response": "Hello", "status": "approved", "timestamp": "2025-01-01T10:00:00"}
			]
		}`))
	})

	payload, err := client.SubmitMessage(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, payload.Status)
	assert.False(t, payload.Status.IsFlagged())
	require.NotNil(t, payload.Evaluation)
	assert.Equal(t, 8.6, payload.Evaluation.OverallScore)
	require.NotNil(t, payload.EmailResult)
	assert.True(t, payload.EmailResult.Success)
	require.Len(t, payload.ConversationHistory, 1)
	assert.True(t, payload.ConversationHistory[0].Approved())
	assert.Nil(t, payload.UnknownDetection)
}

func TestSubmitMessage_InvalidNeverCallsServer(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	sub := validSubmission()
	sub.Subject = "   "
	_, err := client.SubmitMessage(context.Background(), sub)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSubmission))
	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, []string{"subject"}, subErr.Missing)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSubmitMessage_ServerErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", http.StatusInternalServerError, `{"detail": "LLM quota exhausted"}`, "LLM quota exhausted"},
		{"no body", http.StatusBadGateway, ``, "Server error: 502"},
		{"plain text", http.StatusInternalServerError, `Internal Server Error`, "Server error: 500"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail": [{"loc": ["body", "message"], "msg": "field required"}]}`, "Server error: 422"},
		{"empty detail", http.StatusServiceUnavailable, `{"detail": ""}`, "Server error: 503"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := client.SubmitMessage(context.Background(), validSubmission())
			require.Error(t, err)
			assert.True(t, IsServer(err))
			assert.True(t, errors.Is(err, ErrServer))
			assert.Equal(t, tt.want, UserMessage(err))

			var cerr *ClientError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.status, cerr.StatusCode)
		})
	}
}

func TestSubmitMessage_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	_, err := client.SubmitMessage(context.Background(), validSubmission())

	require.Error(t, err)
	assert.True(t, IsTimeout(err), "got %v", err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Equal(t, "Request timed out after 50ms", UserMessage(err))
}

func TestSubmitMessage_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: url, Timeout: time.Second})
	_, err := client.SubmitMessage(context.Background(), validSubmission())

	require.Error(t, err)
	assert.True(t, IsTransport(err), "got %v", err)
	assert.Contains(t, UserMessage(err), "Could not reach the evaluation service")
}

func TestSubmitMessage_InvalidJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": `))
	})
	_, err := client.SubmitMessage(context.Background(), validSubmission())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

// =============================================================================
// HISTORY ENDPOINTS
// =============================================================================

func TestHistoryEndpoints(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.Method + " " + r.URL.Path {
		case "GET /api/conversations":
			w.Write([]byte(`{"total_employers": 1, "conversations": {"ada@acme.io": [
				{"employer_message": "Salary?", "agent_response": "", "status": "flagged_unknown", "timestamp": "2025-01-01T10:00:00"}]}}`))
		case "GET /api/conversations/ada@acme.io":
			w.Write([]byte(`{"email": "ada@acme.io", "total_messages": 1, "history": [
				{"employer_message": "Salary?", "agent_response": "", "timestamp": "2025-01-01T10:00:00"}]}`))
		case "GET /api/logs":
			w.Write([]byte(`{"total": 2, "logs": [
				{"sender_name": "B", "subject": "second", "status": "approved", "revision_count": 0, "timestamp": "t2"},
				{"sender_name": "A", "subject": "first", "status": "flagged_unknown", "revision_count": 0, "timestamp": "t1"}]}`))
		case "GET /api/health":
			w.Write([]byte(`{"status": "healthy", "service": "Career Assistant AI Agent"}`))
		case "DELETE /api/logs", "DELETE /api/conversations":
			w.Write([]byte(`{"message": "cleared"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	convs, err := client.Conversations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, convs.TotalEmployers)
	ex := convs.Conversations["ada@acme.io"]
	require.Len(t, ex, 1)
	assert.False(t, ex[0].Answered())
	assert.False(t, ex[0].Approved())

	one, err := client.Conversation(ctx, "ada@acme.io")
	require.NoError(t, err)
	assert.Equal(t, 1, one.TotalMessages)

	logs, err := client.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs.Logs, 2)
	assert.Equal(t, "second", logs.Logs[0].Subject, "server order is preserved")

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)

	require.NoError(t, client.ClearLogs(ctx))
	require.NoError(t, client.ClearConversations(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /api/conversations",
		"GET /api/conversations/ada@acme.io",
		"GET /api/logs",
		"GET /api/health",
		"DELETE /api/logs",
		"DELETE /api/conversations",
	}, seen)
}

func TestConversations_NullMapIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_employers": 0, "conversations": null}`))
	})
	convs, err := client.Conversations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, convs.Conversations)
	assert.Empty(t, convs.Conversations)
}

func TestSubmissionValidate(t *testing.T) {
	err := Submission{SenderEmail: "x@y.z", Message: "\n\t"}.Validate()
	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, []string{"sender_name", "subject", "message"}, subErr.Missing)
	assert.NoError(t, validSubmission().Validate())
}

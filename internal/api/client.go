// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP/JSON boundary to the evaluation service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

const tracerName = "github.com/jeranaias/careerdesk-tui/internal/api"

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the client.
type ClientConfig struct {
	// BaseURL is the service root (default: http://127.0.0.1:8000).
	BaseURL string

	// Timeout bounds each request, including reading the body (default: 90s).
	Timeout time.Duration

	// UserAgent is sent on every request (default: careerdesk).
	UserAgent string

	// Transport overrides the base round tripper. It is wrapped with
	// OpenTelemetry instrumentation either way.
	Transport http.RoundTripper

	// Logger receives one debug line per request. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   "http://127.0.0.1:8000",
		Timeout:   90 * time.Second,
		UserAgent: "careerdesk",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the evaluation service. It is safe for concurrent use.
//
// Example:
//
//	client := api.NewClient()
//	payload, err := client.SubmitMessage(ctx, api.Submission{...})
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client, filling zero values with defaults.
func NewClientWithConfig(config *ClientConfig) *Client {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	cfg := *config
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	transport := otelhttp.NewTransport(base,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:     &cfg,
		httpClient: &http.Client{Transport: transport},
		logger:     logger,
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Timeout returns the per-request deadline.
func (c *Client) Timeout() time.Duration {
	return c.config.Timeout
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// SubmitMessage posts a submission and returns the pipeline's verdict.
// The submission is validated locally first; an invalid one never reaches
// the network.
func (c *Client) SubmitMessage(ctx context.Context, sub Submission) (*ResponsePayload, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "careerdesk.submit_message",
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	var payload ResponsePayload
	if err := c.do(ctx, http.MethodPost, "/api/message", sub.Trimmed(), &payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, UserMessage(err))
		return nil, err
	}
	span.SetAttributes(
		attribute.String("careerdesk.status", string(payload.Status)),
		attribute.Int("careerdesk.revision_count", payload.RevisionCount),
	)
	return &payload, nil
}

// Conversations fetches every sender's exchange history.
func (c *Client) Conversations(ctx context.Context) (*ConversationsResponse, error) {
	var resp ConversationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Conversations == nil {
		resp.Conversations = map[string][]Exchange{}
	}
	return &resp, nil
}

// Conversation fetches one sender's exchange history.
func (c *Client) Conversation(ctx context.Context, email string) (*ConversationResponse, error) {
	var resp ConversationResponse
	path := "/api/conversations/" + url.PathEscape(strings.TrimSpace(email))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearConversations deletes every sender's history on the server.
func (c *Client) ClearConversations(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/conversations", nil, nil)
}

// Logs fetches the processing log, newest first.
func (c *Client) Logs(ctx context.Context) (*LogsResponse, error) {
	var resp LogsResponse
	if err := c.do(ctx, http.MethodGet, "/api/logs", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearLogs deletes the processing log on the server.
func (c *Client) ClearLogs(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/logs", nil, nil)
}

// Health checks that the service is up.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do sends one request and decodes a 2xx body into out (when non-nil).
// It never retries.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cerr := c.classify(ctx, err)
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Stringer("kind", cerr.Type),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return cerr
	}
	defer drainAndClose(resp.Body)

	c.logger.Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return c.classify(ctx, ctxErr)
		}
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// classify maps a transport-level failure onto a ClientError.
func (c *Client) classify(ctx context.Context, err error) *ClientError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Timeout: c.config.Timeout, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Timeout: c.config.Timeout, Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &ClientError{Type: ErrTypeTransport, Message: "request cancelled", Cause: err}
	}
	return &ClientError{Type: ErrTypeTransport, Message: "connection failed", Cause: unwrapURLError(err)}
}

// serverError builds an ErrTypeServer error, keeping the body's "detail"
// only when it is a non-empty string.
func serverError(resp *http.Response) *ClientError {
	cerr := &ClientError{
		Type:       ErrTypeServer,
		Message:    "server returned " + resp.Status,
		StatusCode: resp.StatusCode,
	}

	var errBody struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&errBody); err != nil {
		return cerr
	}
	var detail string
	if err := json.Unmarshal(errBody.Detail, &detail); err == nil {
		cerr.Detail = strings.TrimSpace(detail)
	}
	if cerr.Detail != "" {
		cerr.Message = fmt.Sprintf("server returned %s: %s", resp.Status, cerr.Detail)
	}
	return cerr
}

// unwrapURLError strips the *url.Error wrapper, whose text repeats the URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(r, maxBodyBytes))
	r.Close()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/logging"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "careerdesk stub evaluation service"

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds stub server configuration.
type Config struct {
	// Addr is the listen address (default: 127.0.0.1:8000).
	Addr string
	// RateLimitRPS and RateLimitBurst bound the whole server. Zero RPS
	// disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
	// AgentName signs drafted replies.
	AgentName string
	// Delay is added before answering a submission, to exercise the
	// client's stage animation.
	Delay time.Duration
}

// DefaultConfig returns the default stub configuration.
func DefaultConfig() Config {
	return Config{
		Addr:           "127.0.0.1:8000",
		RateLimitRPS:   5,
		RateLimitBurst: 10,
		AgentName:      "Career Agent",
	}
}

// =============================================================================
// SERVER
// =============================================================================

// Server is a local stand-in for the evaluation service.
type Server struct {
	Router   *chi.Mux
	config   Config
	logger   *zap.Logger
	store    *Store
	pipeline *Pipeline
}

// New creates a stub server with its routes and middleware installed.
func New(cfg Config, logger *zap.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	logger = logging.OrNop(logger)
	store := NewStore()
	s := &Server{
		Router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
		pipeline: &Pipeline{
			Store:     store,
			AgentName: cfg.AgentName,
		},
	}

	r := s.Router
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		r.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)))
	}
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "careerdesk-stub")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/message", s.handleMessage)
		r.Get("/conversations", s.handleConversations)
		r.Delete("/conversations", s.handleClearConversations)
		r.Get("/conversations/{email}", s.handleConversation)
		r.Get("/logs", s.handleLogs)
		r.Delete("/logs", s.handleClearLogs)
	})
	return s
}

// Store returns the server's store.
func (s *Server) Store() *Store {
	return s.store
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub server listening", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("stub server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "healthy", Service: ServiceName})
}

// validationIssue mirrors one entry of a framework validation error list.
type validationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var sub api.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&sub); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	if err := sub.Validate(); err != nil {
		var se *api.SubmissionError
		if errors.As(err, &se) {
			issues := make([]validationIssue, 0, len(se.Missing))
			for _, f := range se.Missing {
				issues = append(issues, validationIssue{Loc: []string{"body", f}, Msg: "Field required", Type: "missing"})
			}
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": issues})
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if s.config.Delay > 0 {
		select {
		case <-time.After(s.config.Delay):
		case <-r.Context().Done():
			return
		}
	}

	payload := s.pipeline.Process(sub)
	s.logger.Info("message processed",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("sender", sub.Trimmed().SenderEmail),
		zap.String("status", string(payload.Status)))
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	convs := s.store.Conversations()
	writeJSON(w, http.StatusOK, api.ConversationsResponse{
		TotalEmployers: len(convs),
		Conversations:  convs,
	})
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	history := s.store.History(email)
	writeJSON(w, http.StatusOK, api.ConversationResponse{
		Email:         email,
		TotalMessages: len(history),
		History:       history,
	})
}

func (s *Server) handleClearConversations(w http.ResponseWriter, r *http.Request) {
	s.store.ClearConversations()
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Conversation history cleared successfully"})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	logs := s.store.Logs()
	writeJSON(w, http.StatusOK, api.LogsResponse{Total: len(logs), Logs: logs})
}

func (s *Server) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	s.store.ClearLogs()
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Logs cleared successfully"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/careerdesk-tui/internal/api"
	"github.com/jeranaias/careerdesk-tui/internal/config"
	"github.com/jeranaias/careerdesk-tui/internal/logging"
)

// Client is the part of the evaluation service the commands use.
// *api.Client satisfies it.
type Client interface {
	SubmitMessage(ctx context.Context, sub api.Submission) (*api.ResponsePayload, error)
	Conversations(ctx context.Context) (*api.ConversationsResponse, error)
	Conversation(ctx context.Context, email string) (*api.ConversationResponse, error)
	ClearConversations(ctx context.Context) error
	Logs(ctx context.Context) (*api.LogsResponse, error)
	ClearLogs(ctx context.Context) error
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// Env carries everything a command touches outside its arguments.
type Env struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader

	Config *config.Config
	// ConfigPath is where `config init` writes and `config path` points.
	ConfigPath string
	Client     Client
	Logger     *zap.Logger

	// Prompter asks for missing send fields. When nil, send prompts only if
	// stdin is a terminal.
	Prompter Prompter
	// Location formats timestamps (default time.Local).
	Location *time.Location
	Now      func() time.Time
}

// NewEnv returns an Env bound to the process streams.
func NewEnv(cfg *config.Config, client Client, logger *zap.Logger) *Env {
	return &Env{
		Out:    os.Stdout,
		Err:    os.Stderr,
		In:     os.Stdin,
		Config: cfg,
		Client: client,
		Logger: logger,
	}
}

func (e *Env) logger() *zap.Logger {
	return logging.OrNop(e.Logger)
}

func (e *Env) config() *config.Config {
	if e.Config == nil {
		return config.Default()
	}
	return e.Config
}

func (e *Env) location() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

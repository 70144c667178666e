// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for careerdesk.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, validation, and hot reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Evaluation service endpoint and request timeout
//   - AnimationConfig: Stage timeline and deferred gauge/bar delays
//   - UIConfig: Theme, agent label, snippet budget, export directory
//   - LogConfig / TelemetryConfig: Diagnostic outputs
//   - StubConfig: Local stub evaluation service
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CAREERDESK_*), including ones set by ./.env
//   - ~/.careerdesk/config.toml
//   - ~/.careerdesk/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	timeout := cfg.API.Timeout()
//
// Watch for edits:
//
//	err := config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
package config
